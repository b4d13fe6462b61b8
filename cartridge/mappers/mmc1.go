package mappers

import "nescore/cartridge"

// mmc1 is mapper 1: a 5-bit shift register loaded one bit per write (from
// bit 0 of the value written). On the fifth write the accumulated 5 bits
// are latched into one of four registers chosen by the write address' bits
// 14-13: control, CHR bank 0, CHR bank 1, PRG bank. Setting bit 7 of any
// write resets the shift register and forces 16 KiB PRG mode instead.
type mmc1 struct {
	prgSize, chrSize     int
	prgBankCount, chrBankCount int

	shift uint8
	count uint8

	ctrl     uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

func newMMC1(prgSize, chrSize int) *mmc1 {
	chrBanks := chrSize / 0x1000
	if chrBanks == 0 {
		chrBanks = 2
	}
	m := &mmc1{
		prgSize:      prgSize,
		chrSize:      chrSize,
		prgBankCount: prgSize / 0x4000,
		chrBankCount: chrBanks,
	}
	m.Reset()
	return m
}

func (m *mmc1) ID() uint8 { return 1 }

func (m *mmc1) Mirroring() cartridge.Mirroring {
	switch m.ctrl & 0x03 {
	case 0:
		return cartridge.MirrorOneScreenLower
	case 1:
		return cartridge.MirrorOneScreenUpper
	case 2:
		return cartridge.MirrorVertical
	default:
		return cartridge.MirrorHorizontal
	}
}

func (m *mmc1) Reset() {
	m.shift = 0
	m.count = 0
	m.ctrl = 0x0C
}

func (m *mmc1) CPURead(addr uint16) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		return prgRAMAccess(addr)
	case addr >= 0x8000:
		return cartridge.MappedAccess{Offset: m.prgOffset(addr)}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *mmc1) prgOffset(addr uint16) int {
	bank := int(m.prgBank) % m.prgBankCount
	switch (m.ctrl >> 2) & 0x03 {
	case 0, 1:
		base := (bank &^ 1) % m.prgBankCount
		return (base*0x4000 + int(addr-0x8000)) % m.prgSize
	case 2:
		if addr < 0xC000 {
			return int(addr-0x8000) % m.prgSize
		}
		return (bank*0x4000 + int(addr-0xC000)) % m.prgSize
	default: // 3
		if addr < 0xC000 {
			return (bank*0x4000 + int(addr-0x8000)) % m.prgSize
		}
		last := m.prgBankCount - 1
		return (last*0x4000 + int(addr-0xC000)) % m.prgSize
	}
}

func (m *mmc1) CPUWrite(addr uint16, val uint8) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		return prgRAMAccess(addr)
	case addr >= 0x8000:
		m.shiftWrite(addr, val)
		return cartridge.MappedAccess{Offset: -1}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *mmc1) shiftWrite(addr uint16, val uint8) {
	if val&0x80 != 0 {
		m.shift = 0
		m.count = 0
		m.ctrl |= 0x0C
		logBankSwitch("MMC1", "reset", 0)
		return
	}

	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	m.count++
	if m.count < 5 {
		return
	}

	reg := m.shift & 0x1F
	switch (addr >> 13) & 0x03 {
	case 0:
		m.ctrl = reg
		logBankSwitch("MMC1", "ctrl", int(reg))
	case 1:
		m.chrBank0 = reg
		logBankSwitch("MMC1", "chr0", int(reg))
	case 2:
		m.chrBank1 = reg
		logBankSwitch("MMC1", "chr1", int(reg))
	case 3:
		m.prgBank = reg & 0x0F
		logBankSwitch("MMC1", "prg", int(m.prgBank))
	}
	m.shift = 0
	m.count = 0
}

func (m *mmc1) chrOffset(addr uint16) int {
	if m.ctrl&0x10 == 0 {
		bank := int(m.chrBank0&^1) % m.chrBankCount
		return (bank*0x1000 + int(addr)) % m.chrSize
	}
	if addr < 0x1000 {
		bank := int(m.chrBank0) % m.chrBankCount
		return (bank*0x1000 + int(addr)) % m.chrSize
	}
	bank := int(m.chrBank1) % m.chrBankCount
	return (bank*0x1000 + int(addr-0x1000)) % m.chrSize
}

func (m *mmc1) PPURead(addr uint16) (int, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrOffset(addr), true
}

func (m *mmc1) PPUWrite(addr uint16) (int, bool) { return m.PPURead(addr) }
