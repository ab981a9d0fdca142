package mmio

import "fmt"

type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

func (op Op) String() string {
	if op == OpWrite {
		return "W"
	}
	return "R"
}

// Access is one entry of a Sim trace.
type Access struct {
	Op  Op
	Off uint32
	Val uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%v %05X %08X", a.Op, a.Off, a.Val)
}

// Sim is an emulated register file. Registers never written read as zero.
// After each write, every hook is called with the written offset and value and
// may update the register image to model hardware side effects, such as an
// acknowledgment bit settling.
type Sim struct {
	regs  map[uint32]uint32
	hooks []func(s *Sim, off, val uint32)
	Trace []Access
}

func NewSim() *Sim {
	return &Sim{regs: make(map[uint32]uint32)}
}

func (s *Sim) Read32(off uint32) uint32 {
	v := s.regs[off]
	s.Trace = append(s.Trace, Access{OpRead, off, v})
	return v
}

func (s *Sim) Write32(off uint32, val uint32) {
	s.regs[off] = val
	s.Trace = append(s.Trace, Access{OpWrite, off, val})
	for _, h := range s.hooks {
		h(s, off, val)
	}
}

// Peek and Poke access the register image without tracing or hooks.
func (s *Sim) Peek(off uint32) uint32 {
	return s.regs[off]
}

func (s *Sim) Poke(off uint32, val uint32) {
	s.regs[off] = val
}

// OnWrite adds a hook run after every traced write.
func (s *Sim) OnWrite(h func(s *Sim, off, val uint32)) {
	s.hooks = append(s.hooks, h)
}

// Snapshot returns a copy of the register image.
func (s *Sim) Snapshot() map[uint32]uint32 {
	m := make(map[uint32]uint32, len(s.regs))
	for k, v := range s.regs {
		m[k] = v
	}
	return m
}

// Writes returns only the write accesses of the trace.
func (s *Sim) Writes() []Access {
	var w []Access
	for _, a := range s.Trace {
		if a.Op == OpWrite {
			w = append(w, a)
		}
	}
	return w
}

func (s *Sim) ResetTrace() {
	s.Trace = nil
}
