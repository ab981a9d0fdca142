// Clkctl switches SM6375 clocks, resets, power domains and pin functions from
// the command line or a bring-up script.
//
//	clkctl [-n] [-s] [-dtb FILE] [-base ADDR] [-size N] [-tlmm ADDR]
//		[-script FILE] [-retries N] [-delay D] [COMMAND...]
//
// Commands are ENABLE, DISABLE, RATE, STATUS, RESET, GDSC, MUX, LIST and
// QUIT; several may be given on the command line separated by ';'. With -n
// the registers are emulated in memory and nothing touches the hardware.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/Jon-Bright/clkctl/qcom"
	"github.com/Jon-Bright/clkctl/sm6375"
	"github.com/Jon-Bright/clkctl/tlmm"
	"github.com/mattn/go-isatty"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/log"
	"github.com/platinasystems/parms"
)

const (
	GCC_BASE  = 0x01400000
	GCC_SIZE  = 0x1f0000
	TLMM_BASE = 0x00500000
	TLMM_SIZE = 0x800000
)

type config struct {
	dryRun   bool
	strict   bool
	gccBase  uint64
	gccSize  uint64
	tlmmBase uint64
	tlmmSize uint64
	script   string
	retries  int
	delay    time.Duration
}

func parseUint(parm *parms.Parms, name string, dst *uint64) error {
	s := parm.ByName[name]
	if s == "" {
		return nil
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return fmt.Errorf("error parsing %s: %v", name, err)
	}
	*dst = v
	return nil
}

// parseConfig consumes the options in args and returns the remaining words.
func parseConfig(args []string) (*config, []string, error) {
	flag, args := flags.New(args, "-n", "-s")
	parm, args := parms.New(args, "-dtb", "-base", "-size", "-tlmm",
		"-script", "-retries", "-delay")
	cfg := &config{
		dryRun:   flag.ByName["-n"],
		strict:   flag.ByName["-s"],
		gccBase:  GCC_BASE,
		gccSize:  GCC_SIZE,
		tlmmBase: TLMM_BASE,
		tlmmSize: TLMM_SIZE,
		script:   parm.ByName["-script"],
		retries:  qcom.DefaultRetries,
		delay:    qcom.DefaultDelay,
	}
	if dtb := parm.ByName["-dtb"]; dtb != "" {
		t, err := loadDTB(dtb)
		if err != nil {
			return nil, nil, err
		}
		if cfg.gccBase, cfg.gccSize, err = findReg(t, sm6375.COMPATIBLE); err != nil {
			return nil, nil, err
		}
		if cfg.tlmmBase, cfg.tlmmSize, err = findReg(t, sm6375.TLMM_COMPATIBLE); err != nil {
			return nil, nil, err
		}
	}
	if err := parseUint(parm, "-base", &cfg.gccBase); err != nil {
		return nil, nil, err
	}
	if err := parseUint(parm, "-size", &cfg.gccSize); err != nil {
		return nil, nil, err
	}
	if err := parseUint(parm, "-tlmm", &cfg.tlmmBase); err != nil {
		return nil, nil, err
	}
	if s := parm.ByName["-retries"]; s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, nil, fmt.Errorf("invalid -retries %q", s)
		}
		cfg.retries = n
	}
	if s := parm.ByName["-delay"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, nil, fmt.Errorf("error parsing -delay: %v", err)
		}
		cfg.delay = d
	}
	return cfg, args, nil
}

// open maps both controllers, or emulates them for a dry-run. The returned
// function releases the mappings.
func (cfg *config) open() (*Server, func(), error) {
	var gccRegs, tlmmRegs mmio.Regs
	closer := func() {}
	if cfg.dryRun {
		s := mmio.NewSim()
		qcom.Emulate(s, sm6375.GCC)
		gccRegs, tlmmRegs = s, mmio.NewSim()
	} else {
		gcc, err := mmio.Open(uintptr(cfg.gccBase), uint32(cfg.gccSize))
		if err != nil {
			return nil, nil, fmt.Errorf("couldn't map GCC: %v", err)
		}
		pins, err := mmio.Open(uintptr(cfg.tlmmBase), uint32(cfg.tlmmSize))
		if err != nil {
			gcc.Close()
			return nil, nil, fmt.Errorf("couldn't map TLMM: %v", err)
		}
		gccRegs, tlmmRegs = gcc, pins
		closer = func() {
			gcc.Close()
			pins.Close()
		}
	}
	opts := []qcom.Option{qcom.WithRetries(cfg.retries), qcom.WithDelay(cfg.delay)}
	if cfg.strict {
		opts = append(opts, qcom.WithStrict())
	}
	clk, err := qcom.New(gccRegs, sm6375.GCC, opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	aligned := isatty.IsTerminal(os.Stdout.Fd())
	return NewServer(clk, tlmm.New(tlmmRegs), aligned), closer, nil
}

func main() {
	cfg, args, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "clkctl:", err)
		os.Exit(2)
	}
	s, closer, err := cfg.open()
	if err != nil {
		log.Print("err", "Failed open: ", err)
		fmt.Fprintln(os.Stderr, "clkctl:", err)
		os.Exit(1)
	}
	defer closer()

	var r io.Reader = os.Stdin
	switch {
	case len(args) > 0:
		r = strings.NewReader(strings.ReplaceAll(strings.Join(args, " "), ";", "\n"))
	case cfg.script != "" && cfg.script != "-":
		f, err := os.Open(cfg.script)
		if err != nil {
			fmt.Fprintln(os.Stderr, "clkctl:", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}
	if err := s.run(r, os.Stdout); err != nil {
		closer()
		os.Exit(1)
	}
}
