package main

import (
	"fmt"
	"os"

	"github.com/platinasystems/fdt"
)

func loadDTB(path string) (*fdt.Tree, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read device tree: %v", err)
	}
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	if err := t.Parse(b); err != nil {
		return nil, fmt.Errorf("couldn't parse device tree %s: %v", path, err)
	}
	return t, nil
}

// findReg returns the first register window of the node compatible with
// compat. Both 64-bit (two address and two size cells) and 32-bit reg
// properties are understood; a reg that could be either is read as 64-bit.
func findReg(t *fdt.Tree, compat string) (base, size uint64, err error) {
	var nodes []*fdt.Node
	t.EachProperty("compatible", compat, func(n *fdt.Node, name, value string) {
		nodes = append(nodes, n)
	})
	switch len(nodes) {
	case 0:
		return 0, 0, fmt.Errorf("no node compatible with %s", compat)
	case 1:
	default:
		return 0, 0, fmt.Errorf("%d nodes compatible with %s", len(nodes), compat)
	}
	n := nodes[0]
	reg, ok := n.Properties["reg"]
	if !ok {
		return 0, 0, fmt.Errorf("%s has no reg property", n.Name)
	}
	cells := t.PropUint32Slice(reg)
	switch {
	case len(cells) >= 4 && len(cells)%4 == 0:
		base = uint64(cells[0])<<32 | uint64(cells[1])
		size = uint64(cells[2])<<32 | uint64(cells[3])
	case len(cells) >= 2 && len(cells)%2 == 0:
		base, size = uint64(cells[0]), uint64(cells[1])
	default:
		return 0, 0, fmt.Errorf("%s: can't decode %d-byte reg", n.Name, len(reg))
	}
	if size == 0 {
		return 0, 0, fmt.Errorf("%s: empty register window", n.Name)
	}
	return base, size, nil
}
