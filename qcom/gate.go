package qcom

import (
	"fmt"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

// Branch control register (CBCR) bits. The enable bit is per-clock and comes
// from the descriptor.
const (
	CBCR_CLK_OFF = uint32(1 << 31)
)

// Enable turns on the clock's gate, after first turning on any clocks it
// requires. A failed prerequisite aborts before the clock's own gate is
// touched.
func (c *Controller) Enable(id ID) error {
	clk, ok := c.clock(id)
	if !ok {
		return c.invalid("enable", id)
	}
	log.Print("debug", "gcc: enable ", clk.Name)
	return c.enable(clk)
}

func (c *Controller) enable(clk *Clock) error {
	for _, r := range clk.Requires {
		if err := c.enable(&c.desc.Clocks[r]); err != nil {
			return fmt.Errorf("couldn't enable %s prerequisite: %w", clk.Name, err)
		}
	}
	mmio.SetBits(c.regs, clk.Reg, clk.Enable)
	if clk.SkipAck {
		return nil
	}
	if err := c.poll.wait(c.regs, clk.Reg, CBCR_CLK_OFF, false); err != nil {
		return fmt.Errorf("couldn't enable %s: %w", clk.Name, err)
	}
	return nil
}

// Disable clears the clock's gate bit. Prerequisites are left alone, since
// other clocks may still need them.
func (c *Controller) Disable(id ID) error {
	clk, ok := c.clock(id)
	if !ok {
		return c.invalid("disable", id)
	}
	log.Print("debug", "gcc: disable ", clk.Name)
	mmio.ClearBits(c.regs, clk.Reg, clk.Enable)
	return nil
}

// IsEnabled reads the clock's gate bit.
func (c *Controller) IsEnabled(id ID) (bool, error) {
	clk, ok := c.clock(id)
	if !ok {
		return false, fmt.Errorf("clock %d: %w", id, ErrInvalidClock)
	}
	return mmio.HasBits(c.regs, clk.Reg, clk.Enable), nil
}
