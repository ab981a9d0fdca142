package qcom

import "fmt"

// Source is the upstream clock a root clock generator selects. The values are
// the SRC_SEL field of the RCG's CFG register.
type Source uint32

const (
	SrcCXO       Source = 0
	SrcGPLL0     Source = 1
	SrcGPLL0Aux  Source = 2
	SrcGPLL0Odd  Source = 3
	SrcGPLL6     Source = 4
	SrcGPLL4     Source = 5
	SrcGPLL0Even Source = 6
)

var sourceNames = map[Source]string{
	SrcCXO:       "cxo",
	SrcGPLL0:     "gpll0",
	SrcGPLL0Aux:  "gpll0_aux2",
	SrcGPLL0Odd:  "gpll0_odd",
	SrcGPLL6:     "gpll6",
	SrcGPLL4:     "gpll4",
	SrcGPLL0Even: "gpll0_even",
}

func (s Source) String() string {
	if n, ok := sourceNames[s]; ok {
		return n
	}
	return fmt.Sprintf("src%d", uint32(s))
}

// Freq is one supported rate of a root clock generator. PreDiv is an integer
// or half-integer in [1, 16]. M and N both zero means no fractional division.
type Freq struct {
	Rate   uint64
	Src    Source
	PreDiv float64
	M      uint32
	N      uint32
}

func (f Freq) String() string {
	return fmt.Sprintf("%d Hz (%v / %g, m %d n %d)", f.Rate, f.Src, f.PreDiv, f.M, f.N)
}

func (f Freq) fractional() bool {
	return f.M != 0 && f.N != 0
}

// Table is a frequency table sorted ascending by rate.
type Table []Freq

// Find returns the entry whose rate is exactly rate.
func (t Table) Find(rate uint64) (Freq, error) {
	for _, f := range t {
		if f.Rate == rate {
			return f, nil
		}
		if f.Rate > rate {
			break
		}
	}
	return Freq{}, fmt.Errorf("%d Hz: %w", rate, ErrNotFound)
}

// Validate checks ordering and that every entry can be encoded.
func (t Table) Validate() error {
	for i, f := range t {
		if i > 0 && f.Rate <= t[i-1].Rate {
			return fmt.Errorf("entry %d: rate %d not above %d", i, f.Rate, t[i-1].Rate)
		}
		h := f.PreDiv * 2
		if h < 2 || h > 32 || h != float64(uint32(h)) {
			return fmt.Errorf("entry %d: pre-divider %g isn't a half-integer in [1, 16]", i, f.PreDiv)
		}
		if (f.M == 0) != (f.N == 0) {
			return fmt.Errorf("entry %d: m %d and n %d must both be set or both be zero", i, f.M, f.N)
		}
		if f.M > f.N {
			return fmt.Errorf("entry %d: m %d above n %d", i, f.M, f.N)
		}
		if f.Src > 7 {
			return fmt.Errorf("entry %d: source %d doesn't fit SRC_SEL", i, f.Src)
		}
	}
	return nil
}
