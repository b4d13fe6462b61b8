// Package bus implements the system bus: 2 KiB of work RAM mirrored across
// 0x0000-0x1FFF, the explicit priority-order address dispatch to the APU,
// cartridge, controllers and PPU register interface, and OAM DMA.
package bus

import "nescore/internal/log"

// CPU is the capability the bus needs from the CPU: charging OAM DMA's
// suspend as stall cycles, and knowing the current cycle parity to decide
// whether the DMA costs 513 or 514 of them.
type CPU interface {
	Stall(n int)
	OddCycle() bool
}

// PPU is the capability the bus needs from the PPU: the $2000-$2007
// register interface and the OAM DMA write path.
type PPU interface {
	ReadRegister(index uint8) uint8
	WriteRegister(index uint8, val uint8)
	DMAWriteOAM(val uint8)
}

// APU is the capability the bus needs from the APU: the $4000-$4017
// register interface.
type APU interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, val uint8)
}

// Cartridge is the capability the bus needs from the inserted cartridge.
type Cartridge interface {
	CPURead(addr uint16) (uint8, bool)
	CPUWrite(addr uint16, val uint8) bool
}

// Controllers is the capability the bus needs from the controller ports.
type Controllers interface {
	Strobe(on bool)
	Read1() uint8
	Read2() uint8
}

// Bus wires the CPU to work RAM, the PPU and APU register interfaces, the
// cartridge, and the controller ports. All fields must be assigned (by the
// console driver) before Read8/Write8 are called; Cart may be left nil to
// model "no cartridge inserted."
type Bus struct {
	CPU  CPU
	PPU  PPU
	APU  APU
	Cart Cartridge
	Pads Controllers

	ram     [0x800]byte
	openBus uint8
}

// New constructs an unwired Bus; its fields must still be set before use.
func New() *Bus { return &Bus{} }

// Reset clears work RAM and the open-bus latch.
func (b *Bus) Reset() {
	b.ram = [0x800]byte{}
	b.openBus = 0
	log.ModBus.InfoZ("bus reset").End()
}

// Read8 dispatches a CPU read in the priority order hardware actually
// resolves address conflicts in: APU status, then whichever address range
// the cartridge mapper claims, then the controller ports, then work RAM,
// then PPU registers, then a hardwired zero for an empty cartridge slot,
// and finally the open-bus latch.
func (b *Bus) Read8(addr uint16) uint8 {
	if addr == 0x4015 {
		return b.latch(b.APU.ReadRegister(addr))
	}
	if b.Cart != nil {
		if v, ok := b.Cart.CPURead(addr); ok {
			return b.latch(v)
		}
	}
	switch {
	case addr == 0x4016:
		return b.latch(b.readController(b.Pads.Read1()))
	case addr == 0x4017:
		return b.latch(b.readController(b.Pads.Read2()))
	case addr < 0x2000:
		return b.latch(b.ram[addr&0x07FF])
	case addr < 0x4000:
		return b.latch(b.PPU.ReadRegister(uint8(addr & 0x0007)))
	case addr >= 0x4020 && b.Cart == nil:
		return 0
	default:
		return b.openBus
	}
}

func (b *Bus) latch(val uint8) uint8 {
	b.openBus = val
	return val
}

// readController merges a single controller data bit into bit 0 of the
// open-bus latch, matching the hardware's mostly-unconnected $4016/$4017
// data line.
func (b *Bus) readController(bit uint8) uint8 {
	return b.openBus&0xFE | bit&1
}

// Write8 dispatches a CPU write: it always latches open bus, offers the
// address to the APU and the cartridge (both may accept a write the bus
// itself has no opinion on, such as a bank-select register), and then
// handles the bus's own address ranges.
func (b *Bus) Write8(addr uint16, val uint8) {
	b.openBus = val

	if addr == 0x4015 || addr == 0x4017 || (addr >= 0x4000 && addr <= 0x4013) {
		b.APU.WriteRegister(addr, val)
	}
	if b.Cart != nil {
		b.Cart.CPUWrite(addr, val)
	}

	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = val
	case addr < 0x4000:
		b.PPU.WriteRegister(uint8(addr&0x0007), val)
	case addr == 0x4014:
		b.oamDMA(val)
	case addr == 0x4016:
		b.Pads.Strobe(val&1 != 0)
	}
}

// oamDMA performs the 256-byte copy from CPU page*0x100 into the PPU's OAM,
// then charges the CPU 513 or 514 stall cycles depending on whether the
// transfer started on an even or odd cycle.
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.DMAWriteOAM(b.Read8(base + uint16(i)))
	}

	cycles := 513
	if b.CPU.OddCycle() {
		cycles = 514
	}
	b.CPU.Stall(cycles)
}

// ReadMemory is the DMC channel's sample-fetch callback: cartridge first,
// then work RAM, per spec's explicit ordering (never the APU, PPU, or
// controller ports, since DMC samples only ever live in PRG-ROM, PRG-RAM,
// or - for test purposes - RAM).
func (b *Bus) ReadMemory(addr uint16) uint8 {
	if b.Cart != nil {
		if v, ok := b.Cart.CPURead(addr); ok {
			return v
		}
	}
	return b.ram[addr&0x07FF]
}
