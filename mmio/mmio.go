// Package mmio provides 32-bit register access to a memory-mapped peripheral
// window, either through /dev/mem or through an emulated register file.
package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/platinasystems/log"
	"golang.org/x/sys/unix"
)

const MEM_FILE = "/dev/mem"

// Regs is a window of 32-bit registers addressed by byte offset from the
// start of the window.
type Regs interface {
	Read32(off uint32) uint32
	Write32(off uint32, val uint32)
}

// SetBits does a read-modify-write setting mask at off.
func SetBits(r Regs, off, mask uint32) {
	r.Write32(off, r.Read32(off)|mask)
}

// ClearBits does a read-modify-write clearing mask at off.
func ClearBits(r Regs, off, mask uint32) {
	r.Write32(off, r.Read32(off)&^mask)
}

// HasBits reports whether all bits of mask are set at off.
func HasBits(r Regs, off, mask uint32) bool {
	return r.Read32(off)&mask == mask
}

// Window is a physical register window mapped from /dev/mem.
type Window struct {
	buf  mmap.MMap
	offs uintptr
	size uint32
}

// Open maps size bytes of physical memory starting at physAddr. Since the
// mapping has to start at a page boundary, the physical address is rounded
// down to the nearest page and the remainder is kept as the offset into the
// mapping.
func Open(physAddr uintptr, size uint32) (*Window, error) {
	f, err := os.OpenFile(MEM_FILE, os.O_RDWR|unix.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %w", MEM_FILE, err)
	}
	defer f.Close() // The mapping stays valid after close

	pagemask := ^uintptr(unix.Getpagesize() - 1)
	mapAddr := physAddr & pagemask
	offs := physAddr - mapAddr
	mapSize := int(size) + int(offs)
	log.Print("debug", fmt.Sprintf("MapRegion(%s, %d, RDWR, 0, %08X), physAddr %08X", MEM_FILE, mapSize, mapAddr, physAddr))
	mm, err := mmap.MapRegion(f, mapSize, mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		return nil, fmt.Errorf("couldn't map region (%08X, %d): %w", physAddr, size, err)
	}
	return &Window{buf: mm, offs: offs, size: size}, nil
}

func (w *Window) reg(off uint32) *uint32 {
	if off&3 != 0 || off+4 > w.size {
		panic(fmt.Sprintf("mmio: register offset %#x outside %#x byte window", off, w.size))
	}
	return (*uint32)(unsafe.Pointer(&w.buf[w.offs+uintptr(off)]))
}

// Read32 reads the register at off. The load is atomic so the compiler can't
// merge or drop repeated reads of a polled status bit.
func (w *Window) Read32(off uint32) uint32 {
	return atomic.LoadUint32(w.reg(off))
}

func (w *Window) Write32(off uint32, val uint32) {
	atomic.StoreUint32(w.reg(off), val)
}

// Close unmaps the window.
func (w *Window) Close() error {
	if w.buf == nil {
		return nil
	}
	err := w.buf.Unmap()
	w.buf = nil
	return err
}
