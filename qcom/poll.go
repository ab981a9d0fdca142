package qcom

import (
	"fmt"
	"time"

	"github.com/Jon-Bright/clkctl/mmio"
	"github.com/jpillora/backoff"
)

const (
	DefaultRetries = 50000
	DefaultDelay   = time.Microsecond
)

type poller struct {
	retries int
	delay   time.Duration
	sleep   func(time.Duration)
}

// wait busy-polls the register at off until the bits in mask are all set
// (set true) or all clear (set false). It reads at most retries times with a
// fixed delay between reads; running out of reads is ErrTimeout.
func (p *poller) wait(r mmio.Regs, off, mask uint32, set bool) error {
	// Factor 1 keeps every delay at Min.
	b := &backoff.Backoff{Min: p.delay, Max: p.delay, Factor: 1}
	tries := p.retries
	if tries < 1 {
		tries = 1
	}
	var v uint32
	for i := 1; ; i++ {
		v = r.Read32(off)
		if (set && v&mask == mask) || (!set && v&mask == 0) {
			return nil
		}
		if i == tries {
			break
		}
		if p.delay > 0 {
			p.sleep(b.Duration())
		}
	}
	want := "clear"
	if set {
		want = "set"
	}
	return fmt.Errorf("%w: bits %08X of %05X not %s after %d reads, last %08X", ErrTimeout, mask, off, want, tries, v)
}
