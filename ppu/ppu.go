// Package ppu implements the picture processing unit: a 256x240 pixel
// raster generator clocked at three times CPU frequency, background/sprite
// compositing, the $2000-$2007 CPU-facing register interface (mirrored
// every 8 bytes through $3FFF), and the open-bus/reset-protection quirks
// software relies on.
package ppu

import (
	"nescore/cartridge"
	"nescore/hwio"
	"nescore/internal/log"
	"nescore/palette"
)

const (
	NumScanlines = 262 // scanlines per frame
	NumDots      = 341 // PPU dots per scanline

	screenWidth  = 256
	screenHeight = 240
)

// PPUCTRL ($2000) bits.
const (
	ctrlNametableMask = 0b11
	ctrlVRAMIncr32    = 1 << 2
	ctrlSpriteTable   = 1 << 3
	ctrlBgTable       = 1 << 4
	ctrlSpriteSize16  = 1 << 5
	ctrlMasterSlave   = 1 << 6
	ctrlNMIEnable     = 1 << 7
)

// PPUMASK ($2001) bits.
const (
	maskGreyscale       = 1 << 0
	maskShowBgLeft      = 1 << 1
	maskShowSpritesLeft = 1 << 2
	maskShowBg          = 1 << 3
	maskShowSprites     = 1 << 4
	maskEmphasizeRed    = 1 << 5
	maskEmphasizeGreen  = 1 << 6
	maskEmphasizeBlue   = 1 << 7
)

// PPUSTATUS ($2002) bits.
const (
	statusOverflow   = 1 << 5
	statusSprite0Hit = 1 << 6
	statusVBlank     = 1 << 7
)

// After a hard reset, resetProtect makes writes to $2000/$2001/$2005/$2006
// ignored until tickPreRender clears it at (scanline=261, dot=1) of the
// first frame; it is a flag tied to that dot, not a countdown.
const openBusDecayDots = 3_220_000 // ~600ms of PPU cycles, the commonly cited NES open-bus decay window

// Cartridge is the capability the PPU needs from the inserted cartridge:
// CHR pattern-table access (through the mapper) and the current nametable
// mirroring policy.
type Cartridge interface {
	PPURead(addr uint16) (uint8, bool)
	PPUWrite(addr uint16, val uint8) bool
	Mirroring() cartridge.Mirroring
}

// CPU is the capability the PPU needs to deliver an NMI.
type CPU interface {
	AssertNMI()
}

type sprite struct {
	y    uint8
	tile uint8
	attr uint8
	x    uint8
}

// PPU holds the NES picture processing unit's register and rendering
// state. Cart and Nmi must be assigned (by the console driver) before Tick
// is called.
type PPU struct {
	Cart Cartridge
	Nmi  CPU

	regs *hwio.Table

	PPUCTRL   hwio.Reg8 `hwio:"offset=0x0,writeonly,wcb"`
	PPUMASK   hwio.Reg8 `hwio:"offset=0x1,writeonly,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"offset=0x2,readonly,rcb"`
	OAMADDR   hwio.Reg8 `hwio:"offset=0x3,writeonly,wcb"`
	OAMDATA   hwio.Reg8 `hwio:"offset=0x4,rcb,wcb"`
	PPUSCROLL hwio.Reg8 `hwio:"offset=0x5,writeonly,wcb"`
	PPUADDR   hwio.Reg8 `hwio:"offset=0x6,writeonly,wcb"`
	PPUDATA   hwio.Reg8 `hwio:"offset=0x7,rcb,wcb"`

	Scanline int
	Dot      int
	Frames   uint64

	OAM [256]uint8

	nameTables [0x1000]uint8 // 4 KiB: enough for all 4 logical pages, four-screen included
	paletteRAM [0x20]uint8

	vramAddr   uint16 // v
	vramTmp    uint16 // t
	fineX      uint8
	writeLatch bool
	dataBuf    uint8

	resetProtect bool

	openBus    uint8
	openBusAge int

	// Rendering scratch, latched once per visible scanline at dot 1.
	renderV     uint16
	renderFineX uint8

	sprites        [8]sprite
	spriteCount    int
	spriteZeroHere bool

	frame [screenWidth * screenHeight * 4]byte
}

// New constructs a PPU with its register bank mapped and memory cleared.
// Cart and Nmi must still be set before use.
func New() *PPU {
	p := &PPU{
		regs:         hwio.NewTable("ppu-regs"),
		resetProtect: true,
	}
	hwio.MustInitRegs(p)
	p.regs.MapBank(0x0000, p, 0)
	for i := range p.frame {
		if i%4 == 3 {
			p.frame[i] = 0xFF
		}
	}
	return p
}

// Reset returns the PPU to its post-power-on state: counters at (0,0),
// write latch clear, scroll/address registers ignoring writes until the
// first pre-render scanline is reached.
func (p *PPU) Reset() {
	p.Scanline = 0
	p.Dot = 0
	p.Frames = 0
	p.vramAddr = 0
	p.vramTmp = 0
	p.fineX = 0
	p.writeLatch = false
	p.resetProtect = true
	p.PPUCTRL.Value = 0
	p.PPUMASK.Value = 0
	p.PPUSTATUS.Value = 0

	log.ModPPU.InfoZ("ppu reset").End()
}

// Framebuffer returns the current RGBA frame, 256x240 pixels, row-major,
// 4 bytes per pixel with alpha always 255.
func (p *PPU) Framebuffer() []byte { return p.frame[:] }

func (p *PPU) setPixel(x, y int, c palette.RGB) {
	off := (y*screenWidth + x) * 4
	p.frame[off+0] = c.R
	p.frame[off+1] = c.G
	p.frame[off+2] = c.B
	p.frame[off+3] = 0xFF
}

// ReadRegister services a CPU read of $2000-$3FFF; index is the address
// already reduced modulo 8 by the bus.
func (p *PPU) ReadRegister(index uint8) uint8 {
	val := p.regs.Read8(uint16(index&7), false)
	p.latchOpenBus(val)
	return val
}

// WriteRegister services a CPU write of $2000-$3FFF.
func (p *PPU) WriteRegister(index uint8, val uint8) {
	p.latchOpenBus(val)
	p.regs.Write8(uint16(index&7), val)
}

func (p *PPU) latchOpenBus(val uint8) {
	p.openBus = val
	p.openBusAge = 0
}

func (p *PPU) tickOpenBusDecay() {
	if p.openBus == 0 {
		return
	}
	p.openBusAge++
	if p.openBusAge >= openBusDecayDots {
		p.openBus = 0
		p.openBusAge = 0
	}
}

// --- register callbacks -----------------------------------------------

func (p *PPU) WritePPUCTRL(old, val uint8) {
	if p.resetProtect {
		p.PPUCTRL.Value = old
		return
	}
	wasEnabled := old&ctrlNMIEnable != 0
	nowEnabled := val&ctrlNMIEnable != 0
	p.vramTmp &^= uint16(ctrlNametableMask) << 10
	p.vramTmp |= uint16(val&ctrlNametableMask) << 10

	if nowEnabled && !wasEnabled && p.PPUSTATUS.Value&statusVBlank != 0 {
		// Toggling NMI-enable on while still in vblank re-arms the NMI,
		// which is how some games manage to take more than one NMI per
		// vertical blank.
		p.Nmi.AssertNMI()
	}
}

func (p *PPU) WritePPUMASK(old, val uint8) {
	if p.resetProtect {
		p.PPUMASK.Value = old
		return
	}
}

func (p *PPU) ReadPPUSTATUS(val uint8) uint8 {
	ret := val&(statusOverflow|statusSprite0Hit|statusVBlank) | p.openBus&0x1F
	p.PPUSTATUS.Value &^= statusVBlank
	p.writeLatch = false
	return ret
}

func (p *PPU) WriteOAMADDR(old, val uint8) {}

func (p *PPU) ReadOAMDATA(val uint8) uint8 {
	return p.OAM[p.OAMADDR.Value]
}

func (p *PPU) WriteOAMDATA(old, val uint8) {
	p.OAM[p.OAMADDR.Value] = val
	p.OAMADDR.Value++
}

// DMAWriteOAM is used by the bus's OAM DMA sequence: each of the 256 bytes
// copied from CPU memory is written exactly as a $2004 write would be.
func (p *PPU) DMAWriteOAM(val uint8) {
	p.WriteOAMDATA(p.OAMADDR.Value, val)
}

func (p *PPU) WritePPUSCROLL(old, val uint8) {
	if p.resetProtect {
		p.PPUSCROLL.Value = old
		return
	}
	if !p.writeLatch {
		p.fineX = val & 0x7
		p.vramTmp &^= 0x1F
		p.vramTmp |= uint16(val >> 3)
	} else {
		p.vramTmp &^= 0b0111_0011_1110_0000
		p.vramTmp |= uint16(val&0x7) << 12
		p.vramTmp |= uint16(val&0xF8) << 2
	}
	p.writeLatch = !p.writeLatch
}

func (p *PPU) WritePPUADDR(old, val uint8) {
	if p.resetProtect {
		p.PPUADDR.Value = old
		return
	}
	if !p.writeLatch {
		p.vramTmp &^= 0x3F00
		p.vramTmp |= uint16(val&0x3F) << 8
		p.vramTmp &^= 1 << 14
	} else {
		p.vramTmp &^= 0xFF
		p.vramTmp |= uint16(val)
		p.vramAddr = p.vramTmp
	}
	p.writeLatch = !p.writeLatch
}

func (p *PPU) ReadPPUDATA(_ uint8) uint8 {
	addr := p.vramAddr & 0x3FFF
	var val uint8
	if addr < 0x3F00 {
		val = p.dataBuf
		p.dataBuf = p.readVRAM(addr)
	} else {
		val = p.readVRAM(addr)&0x3F | p.openBus&0xC0
		p.dataBuf = p.readVRAM(addr - 0x1000)
	}
	p.incVRAMAddr()
	return val
}

func (p *PPU) WritePPUDATA(old, val uint8) {
	p.writeVRAM(p.vramAddr&0x3FFF, val)
	p.incVRAMAddr()
}

func (p *PPU) incVRAMAddr() {
	if p.PPUCTRL.Value&ctrlVRAMIncr32 != 0 {
		p.vramAddr += 32
	} else {
		p.vramAddr++
	}
	p.vramAddr &= 0x7FFF
}

// --- VRAM address space ($0000-$3FFF as seen through $2007) -----------

func normalizePalette(addr uint16) uint8 {
	idx := uint8(addr & 0x1F)
	if idx&0x13 == 0x10 {
		idx &^= 0x10
	}
	return idx
}

func (p *PPU) nametableOffset(addr uint16) uint16 {
	page := int(addr>>10) & 0x3
	return uint16(p.Cart.Mirroring().NametableOffset(page)) + addr&0x3FF
}

func (p *PPU) readVRAM(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		if v, ok := p.Cart.PPURead(addr); ok {
			return v
		}
		return 0
	case addr < 0x3F00:
		return p.nameTables[p.nametableOffset(addr)]
	default:
		return p.paletteRAM[normalizePalette(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	switch {
	case addr < 0x2000:
		p.Cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.nameTables[p.nametableOffset(addr)] = val
	default:
		p.paletteRAM[normalizePalette(addr)] = val & 0x3F
	}
}
