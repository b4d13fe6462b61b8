package mappers

import "nescore/cartridge"

// uxrom is mapper 2: writes to 0x8000-0xFFFF select the 16 KiB PRG bank
// mapped at 0x8000-0xBFFF; 0xC000-0xFFFF is permanently fixed to the last
// bank. CHR is always a fixed 8 KiB (usually CHR-RAM).
type uxrom struct {
	prgSize   int
	chrSize   int
	mirroring cartridge.Mirroring
	bankCount int
	bank      int
}

func newUxROM(prgSize, chrSize int, mirroring cartridge.Mirroring) *uxrom {
	return &uxrom{
		prgSize:   prgSize,
		chrSize:   chrSize,
		mirroring: mirroring,
		bankCount: prgSize / 0x4000,
	}
}

func (m *uxrom) ID() uint8                      { return 2 }
func (m *uxrom) Mirroring() cartridge.Mirroring { return m.mirroring }
func (m *uxrom) Reset()                         { m.bank = 0 }

func (m *uxrom) CPURead(addr uint16) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		return prgRAMAccess(addr)
	case addr >= 0x8000 && addr <= 0xBFFF:
		return cartridge.MappedAccess{Offset: m.bank*0x4000 + int(addr-0x8000)}, true
	case addr >= 0xC000:
		last := m.bankCount - 1
		return cartridge.MappedAccess{Offset: last*0x4000 + int(addr-0xC000)}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		return prgRAMAccess(addr)
	case addr >= 0x8000:
		m.bank = int(val) % m.bankCount
		logBankSwitch("UxROM", "prg", m.bank)
		return cartridge.MappedAccess{Offset: -1}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *uxrom) PPURead(addr uint16) (int, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return int(addr) % m.chrSize, true
}

func (m *uxrom) PPUWrite(addr uint16) (int, bool) { return m.PPURead(addr) }
