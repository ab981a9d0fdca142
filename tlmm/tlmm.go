// Package tlmm multiplexes SM6375 pins between GPIO and peripheral functions.
package tlmm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

const (
	PIN_COUNT          = 164
	SPECIAL_PINS_START = 156

	GPIO_CFG_PITCH      = 0x1000
	GPIO_CFG_FUNC_SHIFT = 2
	GPIO_CFG_FUNC_MASK  = 0xf << GPIO_CFG_FUNC_SHIFT
)

var specialPins = [PIN_COUNT - SPECIAL_PINS_START]struct {
	name string
	off  uint32
}{
	{"ufs_reset", 0x0ae000},
	{"sdc1_rclk", 0x0a1000},
	{"sdc1_clk", 0x0a0000},
	{"sdc1_cmd", 0x0a0000},
	{"sdc1_data", 0x0a0000},
	{"sdc2_clk", 0x0a2000},
	{"sdc2_cmd", 0x0a2000},
	{"sdc2_data", 0x0a2000},
}

type Function struct {
	Name string
	Mux  uint32
}

var Functions = []Function{
	{"qup04", 1},
	{"gpio", 0},
}

// PinName returns the pin's name, "gpioN" for ordinary pins.
func PinName(pin uint) (string, error) {
	switch {
	case pin >= PIN_COUNT:
		return "", fmt.Errorf("pin %d out of range", pin)
	case pin >= SPECIAL_PINS_START:
		return specialPins[pin-SPECIAL_PINS_START].name, nil
	}
	return fmt.Sprintf("gpio%d", pin), nil
}

// FindPin parses a pin name as returned by PinName.
func FindPin(name string) (uint, error) {
	for i, sp := range specialPins {
		if sp.name == name {
			return SPECIAL_PINS_START + uint(i), nil
		}
	}
	if strings.HasPrefix(name, "gpio") {
		n, err := strconv.ParseUint(name[len("gpio"):], 10, 32)
		if err == nil && n < SPECIAL_PINS_START {
			return uint(n), nil
		}
	}
	return 0, fmt.Errorf("unknown pin %q", name)
}

func FunctionName(sel uint) (string, error) {
	if sel >= uint(len(Functions)) {
		return "", fmt.Errorf("function selector %d out of range", sel)
	}
	return Functions[sel].Name, nil
}

func FindFunction(name string) (uint, error) {
	for i, f := range Functions {
		if f.Name == name {
			return uint(i), nil
		}
	}
	return 0, fmt.Errorf("unknown function %q", name)
}

// cfgReg is the offset of the pin's GPIO_CFG register. SM6375 has a single
// tile, so ordinary pins have no tile offset.
func cfgReg(pin uint) uint32 {
	var off uint32
	if pin >= SPECIAL_PINS_START {
		off = specialPins[pin-SPECIAL_PINS_START].off
	}
	return off + GPIO_CFG_PITCH*uint32(pin)
}

type Controller struct {
	regs mmio.Regs
}

func New(regs mmio.Regs) *Controller {
	return &Controller{regs: regs}
}

// SetMux routes function sel to pin. Special pins have no mux and are left
// alone.
func (c *Controller) SetMux(pin, sel uint) error {
	name, err := PinName(pin)
	if err != nil {
		return err
	}
	if sel >= uint(len(Functions)) {
		return fmt.Errorf("%s: function selector %d out of range", name, sel)
	}
	if pin >= SPECIAL_PINS_START {
		return nil
	}
	f := Functions[sel]
	log.Print("debug", "tlmm: ", name, " -> ", f.Name)
	reg := cfgReg(pin)
	v := c.regs.Read32(reg)
	v &^= GPIO_CFG_FUNC_MASK
	v |= (f.Mux << GPIO_CFG_FUNC_SHIFT) & GPIO_CFG_FUNC_MASK
	c.regs.Write32(reg, v)
	return nil
}
