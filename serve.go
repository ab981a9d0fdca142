package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Jon-Bright/clkctl/qcom"
	"github.com/Jon-Bright/clkctl/tlmm"
	"github.com/platinasystems/log"
)

type Server struct {
	clk     *qcom.Controller
	pins    *tlmm.Controller
	aligned bool
}

func NewServer(clk *qcom.Controller, pins *tlmm.Controller, aligned bool) *Server {
	return &Server{clk, pins, aligned}
}

// parseClock accepts a clock name in any case or a numeric identifier.
// Numeric identifiers aren't checked here; the controller decides what an
// unknown one means.
func (s *Server) parseClock(parms []string) ([]string, qcom.ID, error) {
	if len(parms) == 0 {
		return nil, 0, fmt.Errorf("missing clock")
	}
	if id, ok := s.clk.Lookup(strings.ToUpper(parms[0])); ok {
		return parms[1:], id, nil
	}
	n, err := strconv.ParseUint(parms[0], 0, 32)
	if err != nil {
		return nil, 0, fmt.Errorf("unknown clock %s", parms[0])
	}
	return parms[1:], qcom.ID(n), nil
}

func (s *Server) handleCommand(cmd string, parms []string, w *bufio.Writer) error {
	switch cmd {
	case "ENABLE":
		_, id, err := s.parseClock(parms)
		if err != nil {
			return err
		}
		if err := s.clk.Enable(id); err != nil {
			return err
		}
		w.WriteString("OK\n")
	case "DISABLE":
		_, id, err := s.parseClock(parms)
		if err != nil {
			return err
		}
		if err := s.clk.Disable(id); err != nil {
			return err
		}
		w.WriteString("OK\n")
	case "RATE":
		parms, id, err := s.parseClock(parms)
		if err != nil {
			return err
		}
		if len(parms) != 1 {
			return fmt.Errorf("usage: RATE clk hz")
		}
		hz, err := strconv.ParseUint(parms[0], 0, 64)
		if err != nil {
			return fmt.Errorf("error parsing rate: %v", err)
		}
		got, err := s.clk.SetRate(id, hz)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\n", got)
	case "STATUS":
		_, id, err := s.parseClock(parms)
		if err != nil {
			return err
		}
		on, err := s.clk.IsEnabled(id)
		if err != nil {
			return err
		}
		if on {
			w.WriteString("1\n")
		} else {
			w.WriteString("0\n")
		}
	case "RESET":
		if err := s.reset(parms); err != nil {
			return err
		}
		w.WriteString("OK\n")
	case "GDSC":
		if err := s.power(parms); err != nil {
			return err
		}
		w.WriteString("OK\n")
	case "MUX":
		if len(parms) != 2 {
			return fmt.Errorf("usage: MUX pin function")
		}
		pin, err := tlmm.FindPin(strings.ToLower(parms[0]))
		if err != nil {
			return err
		}
		sel, err := tlmm.FindFunction(strings.ToLower(parms[1]))
		if err != nil {
			return err
		}
		if err := s.pins.SetMux(pin, sel); err != nil {
			return err
		}
		w.WriteString("OK\n")
	case "LIST":
		return s.list(w)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func rateKind(r qcom.Rate) string {
	switch r := r.(type) {
	case qcom.Fixed:
		return fmt.Sprintf("fixed %d", r.Hz)
	case qcom.VoteThenTable:
		return "table, votes " + r.Vote.Name
	case qcom.DirectTable:
		return "table"
	}
	return "gate"
}

func (s *Server) list(w *bufio.Writer) error {
	for i, clk := range s.clk.Desc().Clocks {
		if clk.Name == "" {
			continue
		}
		on, err := s.clk.IsEnabled(qcom.ID(i))
		if err != nil {
			return err
		}
		state := "off"
		if on {
			state = "on"
		}
		if s.aligned {
			fmt.Fprintf(w, "%3d  %-36s %-4s %s\n", i, clk.Name, state, rateKind(clk.Rate))
		} else {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, clk.Name, state, rateKind(clk.Rate))
		}
	}
	return nil
}

// run executes commands from r, one per line, writing each reply to w. It
// stops at QUIT, at the end of input, or after replying to the first failed
// command.
func (s *Server) run(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for {
		l, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("error reading command: %v", err)
		}
		eof := err == io.EOF
		l = strings.TrimSpace(l)
		if i := strings.IndexByte(l, '#'); i >= 0 {
			l = strings.TrimSpace(l[:i])
		}
		if l != "" {
			log.Print("debug", "Got line '", l, "'")
			t := strings.Fields(l)
			cmd := strings.ToUpper(t[0])
			if cmd == "QUIT" {
				return nil
			}
			if err := s.handleCommand(cmd, t[1:], bw); err != nil {
				log.Print("err", l, ": ", err)
				bw.WriteString("ERR: " + err.Error() + "\n")
				return fmt.Errorf("%s: %w", l, err)
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("error writing reply: %v", err)
			}
		}
		if eof {
			return nil
		}
	}
}
