// Package memory manages the physically contiguous buffer the fuzzer
// hammers, the reproducible fill written into it, and the scanner that
// detects bit flips against that fill.
package memory

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/dramsec/forge/internal/log"
)

// DefaultSize is the size of a hammering region: one superpage.
const DefaultSize = 1 << 30

// PageSize is the small-page granularity the fill and the scanner work at.
const PageSize = 4096

// HugetlbfsMount is where a pre-reserved superpage is expected when
// anonymous MAP_HUGETLB allocation is not available.
const HugetlbfsMount = "/mnt/huge/buff"

// mapHuge2MB and mapHuge1GB encode the huge page size into the mmap flags
// as Linux's MAP_HUGE_* macros do; golang.org/x/sys/unix exposes
// MAP_HUGE_SHIFT but not these size-specific constants.
const (
	mapHuge2MB = 21 << unix.MAP_HUGE_SHIFT
	mapHuge1GB = 30 << unix.MAP_HUGE_SHIFT
)

// ErrSuperpageUnavailable reports that no superpage-backed mapping could be
// created, even after falling back to smaller huge pages.
var ErrSuperpageUnavailable = errors.New("memory: superpage unavailable")

// Backing describes what kind of pages back a Region.
type Backing int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Backing -output=backing_string.go
const (
	// BackingSuperpage is a single 1 GiB page: physically contiguous and
	// 1 GiB-aligned, the assumption the DRAM address matrices are built on.
	BackingSuperpage Backing = iota
	// BackingHugepage is a run of 2 MiB pages.
	BackingHugepage
	// BackingTransparent is a plain mapping nudged at khugepaged.
	BackingTransparent
)

// Region is a contiguous virtual memory region used as the hammering or
// REF-sync buffer. It exclusively owns its mapping and unmaps on Close.
type Region struct {
	buf     []byte
	backing Backing
	log     *log.Logger
}

// Allocate maps a region of the given size. With wantSuperpage it first
// tries a 1 GiB page (anonymous, then the hugetlbfs mount), then 2 MiB huge
// pages, and finally a plain mapping, touched once per page, that
// khugepaged may promote. The plain fallback is still returned together with
// ErrSuperpageUnavailable so the caller can decide whether an unaligned,
// possibly fragmented buffer is acceptable.
func Allocate(size int, wantSuperpage bool, logger *log.Logger) (*Region, error) {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	if wantSuperpage {
		if buf, err := unix.Mmap(-1, 0, size,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB|mapHuge1GB|unix.MAP_POPULATE,
		); err == nil {
			return &Region{buf: buf, backing: BackingSuperpage, log: logger}, nil
		} else {
			logger.Warn("Anonymous superpage mapping failed", "err", err)
		}

		if buf, err := mapHugetlbfs(size); err == nil {
			return &Region{buf: buf, backing: BackingSuperpage, log: logger}, nil
		} else {
			logger.Warn("Hugetlbfs superpage mapping failed", "mount", HugetlbfsMount, "err", err)
		}

		if buf, err := unix.Mmap(-1, 0, size,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB|mapHuge2MB|unix.MAP_POPULATE,
		); err == nil {
			logger.Warn("Using 2 MiB huge pages; physical contiguity is per 2 MiB only")
			return &Region{buf: buf, backing: BackingHugepage, log: logger}, nil
		} else {
			logger.Warn("Huge page mapping failed", "err", err)
		}
	}

	buf, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS,
	)
	if err != nil {
		return nil, fmt.Errorf("memory: mmap of %d bytes: %w", size, err)
	}

	region := &Region{buf: buf, backing: BackingTransparent, log: logger}

	if wantSuperpage {
		// Give khugepaged a chance to promote the range.
		_ = unix.Madvise(buf, unix.MADV_HUGEPAGE)
		for i := 0; i < len(buf); i += PageSize {
			buf[i] = 'A'
		}

		logger.Info("Waiting for khugepaged")
		time.Sleep(10 * time.Second)

		return region, ErrSuperpageUnavailable
	}

	return region, nil
}

func mapHugetlbfs(size int) ([]byte, error) {
	f, err := os.OpenFile(HugetlbfsMount, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

// Base returns the region's base virtual address.
func (r *Region) Base() uintptr {
	return uintptr(unsafePointer(r.buf))
}

// Size returns the region's length in bytes.
func (r *Region) Size() int { return len(r.buf) }

// Backing reports what kind of pages back the region.
func (r *Region) Backing() Backing { return r.backing }

// Bytes exposes the mapping. The scanner and the fill use it; the hammerer
// works on raw addresses instead.
func (r *Region) Bytes() []byte { return r.buf }

// Contains reports whether addr falls inside the region.
func (r *Region) Contains(addr uintptr) bool {
	return addr >= r.Base() && addr < r.Base()+uintptr(len(r.buf))
}

// Close unmaps the region. The Region must not be used afterwards.
func (r *Region) Close() error {
	if r.buf == nil {
		return nil
	}

	err := unix.Munmap(r.buf)
	r.buf = nil

	return err
}
