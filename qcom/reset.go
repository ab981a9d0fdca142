package qcom

import (
	"fmt"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

const (
	BCR_BLK_ARES     = 1 << 0
	GDSC_SW_COLLAPSE = 1 << 0
)

func lookupReg(regs []Reg, id ID) (*Reg, bool) {
	if int(id) >= len(regs) || regs[id].Name == "" {
		return nil, false
	}
	return &regs[id], true
}

// Reset asserts or deasserts a block reset.
func (c *Controller) Reset(id ID, assert bool) error {
	r, ok := lookupReg(c.desc.Resets, id)
	if !ok {
		return fmt.Errorf("reset %d: %w", id, ErrInvalidReset)
	}
	log.Print("debug", "gcc: reset ", r.Name, " assert=", assert)
	if assert {
		mmio.SetBits(c.regs, r.Off, BCR_BLK_ARES)
	} else {
		mmio.ClearBits(c.regs, r.Off, BCR_BLK_ARES)
	}
	return nil
}

// PowerDomain switches a power domain on or off.
func (c *Controller) PowerDomain(id ID, on bool) error {
	r, ok := lookupReg(c.desc.GDSCs, id)
	if !ok {
		return fmt.Errorf("power domain %d: %w", id, ErrInvalidGDSC)
	}
	log.Print("debug", "gcc: gdsc ", r.Name, " on=", on)
	if on {
		mmio.ClearBits(c.regs, r.Off, GDSC_SW_COLLAPSE)
	} else {
		mmio.SetBits(c.regs, r.Off, GDSC_SW_COLLAPSE)
	}
	return nil
}

// LookupReset and LookupGDSC find identifiers by name.
func (c *Controller) LookupReset(name string) (ID, bool) {
	return lookupName(c.desc.Resets, name)
}

func (c *Controller) LookupGDSC(name string) (ID, bool) {
	return lookupName(c.desc.GDSCs, name)
}

func lookupName(regs []Reg, name string) (ID, bool) {
	for i, r := range regs {
		if r.Name != "" && r.Name == name {
			return ID(i), true
		}
	}
	return 0, false
}
