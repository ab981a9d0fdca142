package qcom

import (
	"errors"
	"testing"
)

func TestReset(t *testing.T) {
	c, s := newTestController(t, true)
	s.Poke(0xa008, 0xf0)
	id, ok := c.LookupReset("BLK2_BCR")
	if !ok || id != 2 {
		t.Fatalf("LookupReset got: %d, %v, want: 2, true", id, ok)
	}
	if err := c.Reset(id, true); err != nil {
		t.Fatalf("Reset assert failed: %v", err)
	}
	if got := s.Peek(0xa008); got != 0xf1 {
		t.Errorf("asserted BCR got: %08X, want: %08X", got, 0xf1)
	}
	if err := c.Reset(id, false); err != nil {
		t.Fatalf("Reset deassert failed: %v", err)
	}
	if got := s.Peek(0xa008); got != 0xf0 {
		t.Errorf("deasserted BCR got: %08X, want: %08X", got, 0xf0)
	}
	for _, id := range []ID{1, 3} {
		if err := c.Reset(id, true); !errors.Is(err, ErrInvalidReset) {
			t.Errorf("Reset(%d) got: %v, want: %v", id, err, ErrInvalidReset)
		}
	}
}

func TestPowerDomain(t *testing.T) {
	c, s := newTestController(t, true)
	s.Poke(0xb004, GDSC_SW_COLLAPSE)
	id, ok := c.LookupGDSC("ISLAND_GDSC")
	if !ok {
		t.Fatalf("LookupGDSC failed")
	}
	if err := c.PowerDomain(id, true); err != nil {
		t.Fatalf("PowerDomain on failed: %v", err)
	}
	if got := s.Peek(0xb004); got != 0 {
		t.Errorf("GDSC on got: %08X, want: 0", got)
	}
	if err := c.PowerDomain(id, false); err != nil {
		t.Fatalf("PowerDomain off failed: %v", err)
	}
	if got := s.Peek(0xb004); got != GDSC_SW_COLLAPSE {
		t.Errorf("GDSC off got: %08X, want: %08X", got, GDSC_SW_COLLAPSE)
	}
	if err := c.PowerDomain(5, true); !errors.Is(err, ErrInvalidGDSC) {
		t.Errorf("PowerDomain(5) got: %v, want: %v", err, ErrInvalidGDSC)
	}
	if _, ok := c.LookupGDSC("NOPE"); ok {
		t.Errorf("LookupGDSC(NOPE) succeeded")
	}
}
