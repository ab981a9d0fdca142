package qcom

import (
	"errors"
	"testing"
)

func TestFindExact(t *testing.T) {
	for _, want := range testTable {
		got, err := testTable.Find(want.Rate)
		if err != nil {
			t.Errorf("Find(%d) failed: %v", want.Rate, err)
			continue
		}
		if got != want {
			t.Errorf("Find(%d) got: %v, want: %v", want.Rate, got, want)
		}
	}
}

func TestFindNeverRounds(t *testing.T) {
	for _, rate := range []uint64{0, 123456, 399999, 400001, 99999999, 100000001, 120000001, 1 << 40} {
		got, err := testTable.Find(rate)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Find(%d) got: %v, %v, want: %v", rate, got, err, ErrNotFound)
		}
	}
}

func TestPreDivField(t *testing.T) {
	tests := []struct {
		preDiv float64
		want   uint32
	}{
		{1, 1},
		{1.5, 2},
		{2.5, 4},
		{3, 5},
		{12, 23},
		{16, 31},
	}
	for _, test := range tests {
		if got := preDivField(test.preDiv); got != test.want {
			t.Errorf("preDivField(%g) got: %d, want: %d", test.preDiv, got, test.want)
		}
	}
}

func TestMNDFields(t *testing.T) {
	tests := []struct {
		m, n  uint32
		width uint
		wantM uint32
		wantN uint32
		wantD uint32
	}{
		{1, 4, 8, 0x1, 0xfc, 0xfc},
		{4, 25, 16, 0x4, 0xffea, 0xffea},
		{384, 15625, 16, 0x180, 0xc476, 0xc476},
		// 384 doesn't fit 8 bits; the fields are truncated to the counter.
		{384, 15625, 8, 0x80, 0x76, 0x76},
	}
	for _, test := range tests {
		m, n, d := mndFields(test.m, test.n, test.width)
		if m != test.wantM || n != test.wantN || d != test.wantD {
			t.Errorf("mndFields(%d, %d, %d) got: %X %X %X, want: %X %X %X",
				test.m, test.n, test.width, m, n, d, test.wantM, test.wantN, test.wantD)
		}
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		ok    bool
	}{
		{"good", testTable, true},
		{"empty", Table{}, true},
		{"duplicate rate", Table{{1000, SrcCXO, 1, 0, 0}, {1000, SrcCXO, 2, 0, 0}}, false},
		{"descending", Table{{2000, SrcCXO, 1, 0, 0}, {1000, SrcCXO, 2, 0, 0}}, false},
		{"quarter divider", Table{{1000, SrcCXO, 1.25, 0, 0}}, false},
		{"divider below one", Table{{1000, SrcCXO, 0.5, 0, 0}}, false},
		{"divider too big", Table{{1000, SrcCXO, 16.5, 0, 0}}, false},
		{"m without n", Table{{1000, SrcCXO, 1, 1, 0}}, false},
		{"m above n", Table{{1000, SrcCXO, 1, 5, 4}}, false},
		{"source too big", Table{{1000, Source(8), 1, 0, 0}}, false},
	}
	for _, test := range tests {
		err := test.table.Validate()
		if (err == nil) != test.ok {
			t.Errorf("%s: Validate got: %v, want ok %v", test.name, err, test.ok)
		}
	}
}

func TestSourceString(t *testing.T) {
	if got := SrcGPLL0Even.String(); got != "gpll0_even" {
		t.Errorf("String got: %q, want: %q", got, "gpll0_even")
	}
	if got := Source(7).String(); got != "src7" {
		t.Errorf("String got: %q, want: %q", got, "src7")
	}
}
