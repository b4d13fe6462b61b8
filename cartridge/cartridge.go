// Package cartridge owns a loaded ROM's PRG/CHR data and PRG-RAM, and routes
// CPU/PPU accesses through the mapper the header selects.
package cartridge

import (
	"nescore/ines"
	"nescore/internal/log"
)

// Mirroring is the nametable-address translation policy a mapper imposes,
// mapping the CPU/PPU's four logical 1 KiB nametable pages onto one or two
// physical pages (or all four independently, for four-screen carts).
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorOneScreenLower
	MirrorOneScreenUpper
	MirrorFourScreen
)

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorOneScreenLower:
		return "one-screen-lower"
	case MirrorOneScreenUpper:
		return "one-screen-upper"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

// NametableOffset maps one of the four logical 1 KiB nametable pages (0-3)
// to a byte offset into nametable RAM: 0 or 0x400 for horizontal, vertical
// and one-screen mirroring, or page*0x400 for four-screen carts (the caller
// must own 4 KiB of nametable RAM in that case rather than the usual 2 KiB).
func (m Mirroring) NametableOffset(page int) int {
	switch m {
	case MirrorHorizontal:
		return page / 2 * 0x400
	case MirrorVertical:
		return page % 2 * 0x400
	case MirrorOneScreenLower:
		return 0
	case MirrorOneScreenUpper:
		return 0x400
	case MirrorFourScreen:
		return page * 0x400
	default:
		return 0
	}
}

// MappedAccess is what a Mapper's CPU read/write hooks resolve an address
// to: an offset into PRG-ROM or PRG-RAM, or a negative offset meaning
// "accept this access but produce/discard zero" (used for open PRG-RAM
// windows on carts with no RAM, and similar accept-but-ignore cases).
type MappedAccess struct {
	Offset   int
	IsPRGRAM bool
}

// Mapper implements the accept/reject capability interface every bank-switch
// scheme is expressed through: given an address, it either declines the
// access ("not mine", ok=false) or resolves it to an offset.
type Mapper interface {
	ID() uint8
	Mirroring() Mirroring
	Reset()
	CPURead(addr uint16) (MappedAccess, bool)
	CPUWrite(addr uint16, val uint8) (MappedAccess, bool)
	PPURead(addr uint16) (offset int, ok bool)
	PPUWrite(addr uint16) (offset int, ok bool)
}

const prgRAMSize = 8 * 1024

// Cartridge owns the PRG-ROM/CHR data, the fixed 8 KiB of PRG-RAM, and the
// mapper instance selected by the iNES header's mapper id.
type Cartridge struct {
	PRG        []byte
	CHR        []byte
	PRGRAM     [prgRAMSize]byte
	ChrIsRAM   bool
	HasBattery bool

	mapper Mapper
}

// Info summarizes a cartridge for introspection.
type Info struct {
	Mapper     uint8
	PRGSize    int
	CHRSize    int
	Mirroring  Mirroring
	HasBattery bool
}

// New builds a Cartridge from a decoded iNES rom and an already-selected
// mapper instance (typically built by cartridge/mappers.New, which knows
// how to turn the header's mapper id into a concrete Mapper -- kept out of
// this package to avoid a cartridge<->mappers import cycle, since mapper
// implementations need the Mapper/MappedAccess/Mirroring types defined
// here).
func New(rom *ines.Rom, mapper Mapper) *Cartridge {
	c := &Cartridge{
		ChrIsRAM:   len(rom.CHR) == 0,
		HasBattery: rom.HasPersistent(),
		mapper:     mapper,
	}
	c.PRG = rom.PRG
	if c.ChrIsRAM {
		c.CHR = make([]byte, 8*1024)
	} else {
		c.CHR = rom.CHR
	}

	log.ModMapper.InfoZ("cartridge loaded").
		Hex8("mapper", mapper.ID()).
		Uint("prg-size", uint64(len(c.PRG))).
		Uint("chr-size", uint64(len(c.CHR))).
		Bool("chr-ram", c.ChrIsRAM).
		Bool("battery", c.HasBattery).
		End()
	return c
}

func (c *Cartridge) Reset() { c.mapper.Reset() }

func (c *Cartridge) Mirroring() Mirroring { return c.mapper.Mirroring() }

func (c *Cartridge) Info() Info {
	return Info{
		Mapper:     c.mapper.ID(),
		PRGSize:    len(c.PRG),
		CHRSize:    len(c.CHR),
		Mirroring:  c.Mirroring(),
		HasBattery: c.HasBattery,
	}
}

// CPURead returns (value, true) if the mapper accepts addr.
func (c *Cartridge) CPURead(addr uint16) (uint8, bool) {
	acc, ok := c.mapper.CPURead(addr)
	if !ok {
		return 0, false
	}
	if acc.Offset < 0 {
		return 0, true
	}
	if acc.IsPRGRAM {
		return c.PRGRAM[acc.Offset&(prgRAMSize-1)], true
	}
	return c.PRG[acc.Offset%len(c.PRG)], true
}

// CPUWrite returns true if the mapper accepted addr (whether or not the
// write was applied to storage -- bank-register writes return true with no
// storage touched).
func (c *Cartridge) CPUWrite(addr uint16, val uint8) bool {
	acc, ok := c.mapper.CPUWrite(addr, val)
	if !ok {
		return false
	}
	if acc.Offset >= 0 && acc.IsPRGRAM {
		c.PRGRAM[acc.Offset&(prgRAMSize-1)] = val
	}
	return true
}

func (c *Cartridge) PPURead(addr uint16) (uint8, bool) {
	off, ok := c.mapper.PPURead(addr)
	if !ok {
		return 0, false
	}
	return c.CHR[off%len(c.CHR)], true
}

// PPUWrite applies a CHR-RAM write; writes to CHR-ROM carts are accepted by
// the mapper (so bank-select side-effects on $0000-$1FFF mirror writes, if
// any, still occur) but never touch storage.
func (c *Cartridge) PPUWrite(addr uint16, val uint8) bool {
	off, ok := c.mapper.PPUWrite(addr)
	if !ok {
		return false
	}
	if c.ChrIsRAM {
		c.CHR[off%len(c.CHR)] = val
	}
	return true
}
