package qcom

import (
	"fmt"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

// Root clock generator register block, offsets from CMD_RCGR.
const (
	RCG_CMD = 0x0
	RCG_CFG = 0x4
	RCG_M   = 0x8
	RCG_N   = 0xc
	RCG_D   = 0x10

	RCG_CMD_UPDATE   = 1 << 0
	RCG_CMD_ROOT_OFF = uint32(1 << 31)

	RCG_CFG_SRC_DIV_MASK   = 0x1f
	RCG_CFG_SRC_SEL_SHIFT  = 8
	RCG_CFG_SRC_SEL_MASK   = 0x7 << RCG_CFG_SRC_SEL_SHIFT
	RCG_CFG_MODE_MASK      = 0x3 << 12
	RCG_CFG_MODE_DUAL_EDGE = 0x2 << 12
	RCG_CFG_HW_CLK_CTRL    = 1 << 20
)

// RCG describes one root clock generator: where its register block lives,
// the rates it supports and the width of its M/N/D counters (8 or 16 bits).
type RCG struct {
	CmdRCGR  uint32
	Table    Table
	MNDWidth uint
}

func (r *RCG) validate() error {
	if r.MNDWidth != 8 && r.MNDWidth != 16 {
		return fmt.Errorf("rcg %05X: mnd width %d, want 8 or 16", r.CmdRCGR, r.MNDWidth)
	}
	if err := r.Table.Validate(); err != nil {
		return fmt.Errorf("rcg %05X: %w", r.CmdRCGR, err)
	}
	return nil
}

// preDivField encodes a pre-divider in half steps: 1 -> 1, 2.5 -> 4, 3 -> 5.
func preDivField(preDiv float64) uint32 {
	return uint32(2*preDiv) - 1
}

// mndFields returns the M, N and D register values for an M/N ratio. N holds
// NOT(N-M). D holds NOT(2D), where 2D is N for a 50% duty cycle, clamped to
// [M, N-M].
func mndFields(m, n uint32, width uint) (mVal, nVal, dVal uint32) {
	mask := uint32(1)<<width - 1
	nMinusM := n - m
	d := n
	if d < m {
		d = m
	}
	if d > nMinusM {
		d = nMinusM
	}
	return m & mask, ^nMinusM & mask, ^d & mask
}

// program writes f into the RCG and waits for the hardware to latch it.
func (c *Controller) program(r *RCG, f Freq) (uint64, error) {
	base := r.CmdRCGR
	div := preDivField(f.PreDiv)
	if f.fractional() {
		m, n, d := mndFields(f.M, f.N, r.MNDWidth)
		log.Print("debug", fmt.Sprintf("gcc: rcg %05X m %#x n %#x d %#x div %#x", base, m, n, d, div))
		c.regs.Write32(base+RCG_M, m)
		c.regs.Write32(base+RCG_N, n)
		c.regs.Write32(base+RCG_D, d)
	}

	cfg := c.regs.Read32(base + RCG_CFG)
	cfg &^= RCG_CFG_SRC_SEL_MASK | RCG_CFG_MODE_MASK | RCG_CFG_HW_CLK_CTRL | RCG_CFG_SRC_DIV_MASK
	cfg |= (uint32(f.Src) << RCG_CFG_SRC_SEL_SHIFT) & RCG_CFG_SRC_SEL_MASK
	cfg |= div & RCG_CFG_SRC_DIV_MASK
	if f.fractional() && f.N != f.M {
		cfg |= RCG_CFG_MODE_DUAL_EDGE
	}
	c.regs.Write32(base+RCG_CFG, cfg)

	// Tell the RCG to switch to the new configuration. It clears UPDATE
	// once it has.
	mmio.SetBits(c.regs, base+RCG_CMD, RCG_CMD_UPDATE)
	if err := c.poll.wait(c.regs, base+RCG_CMD, RCG_CMD_UPDATE, false); err != nil {
		return 0, fmt.Errorf("couldn't update rcg %05X to %v: %w", base, f, err)
	}
	return f.Rate, nil
}
