package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/Jon-Bright/clkctl/qcom"
	"github.com/Jon-Bright/clkctl/sm6375"
	"github.com/Jon-Bright/clkctl/tlmm"
	"github.com/google/go-cmp/cmp"
)

func newDryServer(t *testing.T, opts ...qcom.Option) (*Server, *mmio.Sim, *mmio.Sim) {
	t.Helper()
	gcc := mmio.NewSim()
	qcom.Emulate(gcc, sm6375.GCC)
	pins := mmio.NewSim()
	opts = append([]qcom.Option{qcom.WithRetries(5), qcom.WithDelay(0)}, opts...)
	clk, err := qcom.New(gcc, sm6375.GCC, opts...)
	if err != nil {
		t.Fatalf("Failed New: %v", err)
	}
	return NewServer(clk, tlmm.New(pins), false), gcc, pins
}

func TestScript(t *testing.T) {
	s, gcc, pins := newDryServer(t)
	script := `ENABLE GCC_USB30_PRIM_MASTER_CLK
status gcc_usb30_prim_master_clk
RATE GCC_SDCC2_APPS_CLK 100000000
RATE GCC_SDCC1_APPS_CLK 1
RATE GCC_UFS_PHY_AXI_CLK 1
# bring the card slot out of reset
RESET GCC_SDCC2_BCR ASSERT
GDSC ufs_phy_gdsc on
MUX GPIO4 QUP04
DISABLE GCC_USB30_PRIM_MASTER_CLK
STATUS GCC_USB30_PRIM_MASTER_CLK
ENABLE 999
QUIT
ENABLE bogus
`
	var out bytes.Buffer
	if err := s.run(strings.NewReader(script), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "OK\n1\n100000000\n384000000\n0\nOK\nOK\nOK\nOK\n0\nOK\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("replies mismatch (-want +got):\n%s", diff)
	}
	if got := gcc.Peek(0x1e000); got != 1 {
		t.Errorf("SDCC2 BCR got: %08X, want: %08X", got, 1)
	}
	if got := gcc.Peek(0x45004); got&qcom.GDSC_SW_COLLAPSE != 0 {
		t.Errorf("UFS GDSC got: %08X, want collapse clear", got)
	}
	if got := pins.Peek(0x4000); got != 1<<tlmm.GPIO_CFG_FUNC_SHIFT {
		t.Errorf("gpio4 cfg got: %08X, want: %08X", got, 1<<tlmm.GPIO_CFG_FUNC_SHIFT)
	}
}

func TestScriptNoTrailingNewline(t *testing.T) {
	s, _, _ := newDryServer(t)
	var out bytes.Buffer
	if err := s.run(strings.NewReader("ENABLE GCC_SDCC2_AHB_CLK"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "OK\n" {
		t.Errorf("reply got: %q, want: %q", out.String(), "OK\n")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		line    string
		wantErr error
	}{
		{"RATE GCC_SDCC2_APPS_CLK 123456", qcom.ErrNotFound},
		{"FROB GCC_SDCC2_AHB_CLK", nil},
		{"ENABLE no_such_clock", nil},
		{"RATE GCC_SDCC2_APPS_CLK", nil},
		{"RATE GCC_SDCC2_APPS_CLK fast", nil},
		{"RESET GCC_SDCC2_BCR WIGGLE", nil},
		{"RESET NO_SUCH_BCR ASSERT", nil},
		{"GDSC UFS_PHY_GDSC", nil},
		{"MUX gpio200 gpio", nil},
		{"MUX gpio4 uart9", nil},
	}
	for _, test := range tests {
		s, _, _ := newDryServer(t)
		var out bytes.Buffer
		err := s.run(strings.NewReader(test.line+"\nENABLE GCC_SDCC2_AHB_CLK\n"), &out)
		if err == nil {
			t.Errorf("%s: run succeeded", test.line)
			continue
		}
		if test.wantErr != nil && !errors.Is(err, test.wantErr) {
			t.Errorf("%s: err got: %v, want: %v", test.line, err, test.wantErr)
		}
		if !strings.HasPrefix(out.String(), "ERR: ") || strings.Count(out.String(), "\n") != 1 {
			t.Errorf("%s: reply got: %q, want a single ERR line", test.line, out.String())
		}
	}
}

func TestScriptStrict(t *testing.T) {
	s, _, _ := newDryServer(t, qcom.WithStrict())
	var out bytes.Buffer
	err := s.run(strings.NewReader("ENABLE 999\n"), &out)
	if !errors.Is(err, qcom.ErrInvalidClock) {
		t.Errorf("err got: %v, want: %v", err, qcom.ErrInvalidClock)
	}
}

func TestList(t *testing.T) {
	s, _, _ := newDryServer(t)
	var out bytes.Buffer
	if err := s.run(strings.NewReader("ENABLE GCC_SDCC1_APPS_CLK\nLIST\n"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != int(sm6375.NUM_CLKS)+1 {
		t.Fatalf("LIST got %d lines, want: %d", len(lines)-1, sm6375.NUM_CLKS)
	}
	want := []string{
		fmt.Sprintf("%d\tGCC_SDCC1_APPS_CLK\ton\tfixed 384000000", sm6375.GCC_SDCC1_APPS_CLK),
		fmt.Sprintf("%d\tGCC_SDCC2_APPS_CLK\toff\ttable, votes gpll0", sm6375.GCC_SDCC2_APPS_CLK),
		fmt.Sprintf("%d\tGCC_QUPV3_WRAP0_S4_CLK\toff\ttable", sm6375.GCC_QUPV3_WRAP0_S4_CLK),
		fmt.Sprintf("%d\tGCC_SDCC2_AHB_CLK\toff\tgate", sm6375.GCC_SDCC2_AHB_CLK),
	}
	for _, w := range want {
		found := false
		for _, l := range lines {
			if l == w {
				found = true
			}
		}
		if !found {
			t.Errorf("LIST missing %q", w)
		}
	}
}

func TestParseConfig(t *testing.T) {
	cfg, args, err := parseConfig([]string{"-n", "-base=0x1000", "-retries", "7",
		"-delay", "10us", "ENABLE", "GCC_SDCC2_AHB_CLK"})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if !cfg.dryRun || cfg.strict {
		t.Errorf("flags got: dryRun=%v strict=%v", cfg.dryRun, cfg.strict)
	}
	if cfg.gccBase != 0x1000 || cfg.gccSize != GCC_SIZE || cfg.tlmmBase != TLMM_BASE {
		t.Errorf("windows got: %X/%X %X", cfg.gccBase, cfg.gccSize, cfg.tlmmBase)
	}
	if cfg.retries != 7 || cfg.delay.Microseconds() != 10 {
		t.Errorf("polling got: %d, %v", cfg.retries, cfg.delay)
	}
	if diff := cmp.Diff([]string{"ENABLE", "GCC_SDCC2_AHB_CLK"}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range [][]string{
		{"-retries", "0"},
		{"-delay", "soon"},
		{"-base", "nowhere"},
		{"-dtb", "/nonexistent/clkctl.dtb"},
	} {
		if _, _, err := parseConfig(bad); err == nil {
			t.Errorf("parseConfig(%v) succeeded", bad)
		}
	}
}

func TestOpenDryRun(t *testing.T) {
	cfg, _, err := parseConfig([]string{"-n", "-s", "-delay", "0s"})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	s, closer, err := cfg.open()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer closer()
	s.aligned = false
	var out bytes.Buffer
	if err := s.run(strings.NewReader("RATE GCC_SDCC2_APPS_CLK 400000\n"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "400000\n" {
		t.Errorf("reply got: %q, want: %q", out.String(), "400000\n")
	}
}
