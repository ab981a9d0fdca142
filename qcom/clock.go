// Package qcom drives a Qualcomm global clock controller (GCC): gated branch
// clocks, root clock generators with M/N/D dividers, PLL votes, and the
// controller's block resets and power domains.
//
// A Controller is not safe for concurrent use. Register updates are plain
// read-modify-write sequences, so callers must serialise all requests to one
// controller.
package qcom

import (
	"fmt"
	"time"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/platinasystems/log"
)

// ID is a clock identifier, an index into the board's clock table.
type ID uint32

// Clock describes one gated clock. Reg is the branch control register and
// Enable the mask of its enable bit. Requires lists clocks that must be
// running before this one is enabled. SkipAck is for branches fed from
// outside the controller, which only report running once their source does.
type Clock struct {
	Name     string
	Reg      uint32
	Enable   uint32
	Requires []ID
	SkipAck  bool
	Rate     Rate
}

// Reg names a single-register resource, a block reset or a power domain.
type Reg struct {
	Name string
	Off  uint32
}

// Desc is a board's clock controller description. Clocks, Resets and GDSCs
// are indexed by identifier; entries without a name are unused identifiers.
type Desc struct {
	Name       string
	Compatible string
	Clocks     []Clock
	Resets     []Reg
	GDSCs      []Reg
}

// Rate is how a clock's rate is set. The set of behaviours is closed: Fixed,
// VoteThenTable and DirectTable.
type Rate interface {
	setRate(c *Controller, hz uint64) (uint64, error)
}

// Fixed is a clock with one hard-wired rate. Setting it is a no-op that
// reports that rate whatever was asked for.
type Fixed struct {
	Hz uint64
}

func (f Fixed) setRate(c *Controller, hz uint64) (uint64, error) {
	return f.Hz, nil
}

// VoteThenTable is a clock whose RCG is fed from a voted resource. The vote
// is always in place and acknowledged before the RCG is programmed.
type VoteThenTable struct {
	Vote *Vote
	RCG  RCG
}

func (v VoteThenTable) setRate(c *Controller, hz uint64) (uint64, error) {
	f, err := v.RCG.Table.Find(hz)
	if err != nil {
		return 0, err
	}
	if err := c.EnableVote(v.Vote); err != nil {
		return 0, err
	}
	return c.program(&v.RCG, f)
}

// DirectTable is a clock whose RCG is programmed without any vote.
type DirectTable struct {
	RCG RCG
}

func (d DirectTable) setRate(c *Controller, hz uint64) (uint64, error) {
	f, err := d.RCG.Table.Find(hz)
	if err != nil {
		return 0, err
	}
	return c.program(&d.RCG, f)
}

type Controller struct {
	regs   mmio.Regs
	desc   *Desc
	poll   poller
	strict bool
	byName map[string]ID
}

type Option func(*Controller)

// WithRetries sets how many times a status bit is read before giving up.
func WithRetries(n int) Option {
	return func(c *Controller) { c.poll.retries = n }
}

// WithDelay sets the fixed delay between status reads.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.poll.delay = d }
}

// WithStrict makes operations on unknown clock identifiers fail with
// ErrInvalidClock instead of succeeding as no-ops.
func WithStrict() Option {
	return func(c *Controller) { c.strict = true }
}

// New validates desc and returns a controller driving it through regs.
func New(regs mmio.Regs, desc *Desc, opts ...Option) (*Controller, error) {
	if err := desc.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s description: %w", desc.Name, err)
	}
	c := &Controller{
		regs: regs,
		desc: desc,
		poll: poller{
			retries: DefaultRetries,
			delay:   DefaultDelay,
			sleep:   time.Sleep,
		},
		byName: make(map[string]ID),
	}
	for i, clk := range desc.Clocks {
		if clk.Name != "" {
			c.byName[clk.Name] = ID(i)
		}
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (d *Desc) validate() error {
	for i := range d.Clocks {
		clk := &d.Clocks[i]
		if clk.Name == "" {
			continue
		}
		if clk.Enable == 0 {
			return fmt.Errorf("clock %s: no enable bit", clk.Name)
		}
		for _, r := range clk.Requires {
			if int(r) >= len(d.Clocks) || d.Clocks[r].Name == "" {
				return fmt.Errorf("clock %s: requires unknown clock %d", clk.Name, r)
			}
		}
		var err error
		switch r := clk.Rate.(type) {
		case VoteThenTable:
			if r.Vote == nil {
				return fmt.Errorf("clock %s: no vote", clk.Name)
			}
			err = r.RCG.validate()
		case DirectTable:
			err = r.RCG.validate()
		}
		if err != nil {
			return fmt.Errorf("clock %s: %w", clk.Name, err)
		}
	}
	// Prerequisites are enabled recursively, so they must not loop.
	state := make([]uint8, len(d.Clocks))
	var visit func(id ID) error
	visit = func(id ID) error {
		switch state[id] {
		case 1:
			return fmt.Errorf("clock %s: prerequisites form a cycle", d.Clocks[id].Name)
		case 2:
			return nil
		}
		state[id] = 1
		for _, r := range d.Clocks[id].Requires {
			if err := visit(r); err != nil {
				return err
			}
		}
		state[id] = 2
		return nil
	}
	for i := range d.Clocks {
		if err := visit(ID(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) clock(id ID) (*Clock, bool) {
	if int(id) >= len(c.desc.Clocks) || c.desc.Clocks[id].Name == "" {
		return nil, false
	}
	return &c.desc.Clocks[id], true
}

// invalid handles a request for an identifier the board doesn't describe.
// Callers may enumerate identifiers beyond the loaded table, so unless the
// controller is strict this is only worth a debug message.
func (c *Controller) invalid(op string, id ID) error {
	if c.strict {
		return fmt.Errorf("couldn't %s clock %d: %w", op, id, ErrInvalidClock)
	}
	log.Print("debug", fmt.Sprintf("gcc: %s: unknown clk id %d", op, id))
	return nil
}

// Desc returns the description the controller was built from.
func (c *Controller) Desc() *Desc {
	return c.desc
}

// Lookup returns the identifier of the clock called name.
func (c *Controller) Lookup(name string) (ID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// SetRate sets the clock's rate to exactly hz and returns the rate achieved.
// Clocks whose rate can't be set, including unknown identifiers, return 0
// with no error.
func (c *Controller) SetRate(id ID, hz uint64) (uint64, error) {
	clk, ok := c.clock(id)
	if !ok || clk.Rate == nil {
		log.Print("debug", fmt.Sprintf("gcc: set_rate: clk id %d has no settable rate", id))
		return 0, nil
	}
	log.Print("debug", fmt.Sprintf("gcc: set_rate: %s, requested rate=%d", clk.Name, hz))
	r, err := clk.Rate.setRate(c, hz)
	if err != nil {
		return 0, fmt.Errorf("couldn't set %s to %d Hz: %w", clk.Name, hz, err)
	}
	return r, nil
}
