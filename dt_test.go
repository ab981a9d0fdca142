package main

import (
	"encoding/binary"
	"testing"

	"github.com/Jon-Bright/clkctl/sm6375"
	"github.com/platinasystems/fdt"
)

func cells(v ...uint32) []byte {
	b := make([]byte, 4*len(v))
	for i, c := range v {
		binary.BigEndian.PutUint32(b[4*i:], c)
	}
	return b
}

func node(name string, props map[string][]byte, children ...*fdt.Node) *fdt.Node {
	n := &fdt.Node{Name: name, Properties: props, Children: make(map[string]*fdt.Node)}
	for _, c := range children {
		n.Children[c.Name] = c
	}
	return n
}

func testTree() *fdt.Tree {
	gcc := node("clock-controller@1400000", map[string][]byte{
		"compatible": []byte(sm6375.COMPATIBLE + "\x00"),
		"reg":        cells(0, 0x01400000, 0, 0x1f0000),
	})
	pins := node("pinctrl@500000", map[string][]byte{
		"compatible": []byte(sm6375.TLMM_COMPATIBLE + "\x00"),
		"reg":        cells(0x00500000, 0x800000),
	})
	odd := node("timer@f120000", map[string][]byte{
		"compatible": []byte("arm,armv7-timer-mem\x00"),
		"reg":        cells(0x0f120000, 0x1000, 0x0f121000),
	})
	bare := node("rpmhcc", map[string][]byte{
		"compatible": []byte("qcom,sm6375-rpmhcc\x00"),
	})
	soc := node("soc@0", map[string][]byte{}, gcc, pins, odd, bare)
	return &fdt.Tree{RootNode: node("/", map[string][]byte{}, soc)}
}

func TestFindReg(t *testing.T) {
	tr := testTree()
	tests := []struct {
		compat   string
		wantBase uint64
		wantSize uint64
	}{
		{sm6375.COMPATIBLE, 0x01400000, 0x1f0000},
		{sm6375.TLMM_COMPATIBLE, 0x00500000, 0x800000},
	}
	for _, test := range tests {
		base, size, err := findReg(tr, test.compat)
		if err != nil {
			t.Errorf("findReg(%s) failed: %v", test.compat, err)
			continue
		}
		if base != test.wantBase || size != test.wantSize {
			t.Errorf("findReg(%s) got: %08X/%X, want: %08X/%X", test.compat, base, size, test.wantBase, test.wantSize)
		}
	}
	for _, compat := range []string{"qcom,gcc-sm8150", "arm,armv7-timer-mem", "qcom,sm6375-rpmhcc", "qcom,"} {
		if _, _, err := findReg(tr, compat); err == nil {
			t.Errorf("findReg(%s) succeeded", compat)
		}
	}
}
