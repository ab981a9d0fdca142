package qcom

import "github.com/Jon-Bright/clkctl/mmio"

// Emulate makes s behave like the clock controller described by d for
// dry-runs: gates report CLK_OFF until enabled, RCGs clear UPDATE as soon as
// it's written, and voted resources report running while any vote bit is set.
func Emulate(s *mmio.Sim, d *Desc) {
	gates := make(map[uint32]uint32)
	rcgs := make(map[uint32]bool)
	votes := make(map[uint32][]*Vote)
	for i := range d.Clocks {
		clk := &d.Clocks[i]
		if clk.Name == "" {
			continue
		}
		if !clk.SkipAck {
			gates[clk.Reg] |= clk.Enable
		}
		switch r := clk.Rate.(type) {
		case VoteThenTable:
			rcgs[r.RCG.CmdRCGR] = true
			votes[r.Vote.Reg] = appendVote(votes[r.Vote.Reg], r.Vote)
		case DirectTable:
			rcgs[r.RCG.CmdRCGR] = true
		}
	}
	for off := range gates {
		s.Poke(off, s.Peek(off)|CBCR_CLK_OFF)
	}
	s.OnWrite(func(s *mmio.Sim, off, val uint32) {
		if en, ok := gates[off]; ok {
			if val&en != 0 {
				s.Poke(off, val&^CBCR_CLK_OFF)
			} else {
				s.Poke(off, val|CBCR_CLK_OFF)
			}
		}
		if rcgs[off] {
			s.Poke(off, val&^RCG_CMD_UPDATE)
		}
		for _, v := range votes[off] {
			if val&v.Bit != 0 {
				s.Poke(v.Status, s.Peek(v.Status)|v.StatusBit)
			}
		}
	})
}

func appendVote(vs []*Vote, v *Vote) []*Vote {
	for _, o := range vs {
		if o == v {
			return vs
		}
	}
	return append(vs, v)
}
