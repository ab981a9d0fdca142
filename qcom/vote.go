package qcom

import (
	"fmt"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

// Vote is a shared resource, typically a PLL, enabled by voting. Every
// consumer has its own vote bit; the hardware ORs them together and reports
// the result in the status bit. There is no software reference count: the
// status bit is the only state.
type Vote struct {
	Name      string
	Status    uint32
	StatusBit uint32
	Reg       uint32
	Bit       uint32
}

// EnableVote sets our vote for v and waits for the resource to come up.
// Voting again for a running resource is harmless. There's no way to withdraw
// a vote.
func (c *Controller) EnableVote(v *Vote) error {
	log.Print("debug", "gcc: vote ", v.Name)
	mmio.SetBits(c.regs, v.Reg, v.Bit)
	if err := c.poll.wait(c.regs, v.Status, v.StatusBit, true); err != nil {
		return fmt.Errorf("couldn't enable %s: %w", v.Name, err)
	}
	return nil
}
