package mappers

import "nescore/cartridge"

// mmc3 is mapper 4: an 8-entry bank-register file selected by even/odd
// writes in 0x8000-0x9FFF, PRG-RAM-enable/mirroring writes in
// 0xA000-0xBFFF, and a scanline IRQ counter in 0xC000-0xFFFF. The IRQ
// counter registers accept writes (as required by their presence on the
// bus) but never assert an IRQ: this core's scanline pipeline does not
// expose a PPU A12-toggle signal for the counter to clock against.
type mmc3 struct {
	prgSize, chrSize           int
	prgBankCount, chrBankCount int

	bankSelect uint8
	bankData   [8]uint8

	mirroring    cartridge.Mirroring
	prgRAMEnable bool

	irqLatch   uint8
	irqCounter uint8
	irqEnabled bool
	irqReload  bool
}

func newMMC3(prgSize, chrSize int, mirroring cartridge.Mirroring) *mmc3 {
	return &mmc3{
		prgSize:      prgSize,
		chrSize:      chrSize,
		prgBankCount: prgSize / 0x2000,
		chrBankCount: chrSize / 0x400,
		mirroring:    mirroring,
		prgRAMEnable: true,
	}
}

func (m *mmc3) ID() uint8                      { return 4 }
func (m *mmc3) Mirroring() cartridge.Mirroring { return m.mirroring }

func (m *mmc3) Reset() {
	m.bankSelect = 0
	m.bankData = [8]uint8{}
	m.irqLatch, m.irqCounter = 0, 0
	m.irqEnabled = false
}

func (m *mmc3) prgBank8k(idx int) int { return idx % m.prgBankCount }

func (m *mmc3) prgOffset(addr uint16) int {
	window := int((addr - 0x8000) / 0x2000)
	within := int(addr) & 0x1FFF

	r6 := m.prgBank8k(int(m.bankData[6]))
	r7 := m.prgBank8k(int(m.bankData[7]))
	secondLast := m.prgBank8k(m.prgBankCount - 2)
	last := m.prgBank8k(m.prgBankCount - 1)

	var bank int
	if m.bankSelect&0x40 == 0 {
		// 0x8000=R6, 0xA000=R7, 0xC000=second-last, 0xE000=last
		switch window {
		case 0:
			bank = r6
		case 1:
			bank = r7
		case 2:
			bank = secondLast
		default:
			bank = last
		}
	} else {
		// 0x8000=second-last, 0xA000=R7, 0xC000=R6, 0xE000=last
		switch window {
		case 0:
			bank = secondLast
		case 1:
			bank = r7
		case 2:
			bank = r6
		default:
			bank = last
		}
	}
	return (bank*0x2000 + within) % m.prgSize
}

func (m *mmc3) CPURead(addr uint16) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		if !m.prgRAMEnable {
			return cartridge.MappedAccess{Offset: -1}, true
		}
		return prgRAMAccess(addr)
	case addr >= 0x8000:
		return cartridge.MappedAccess{Offset: m.prgOffset(addr)}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *mmc3) CPUWrite(addr uint16, val uint8) (cartridge.MappedAccess, bool) {
	switch {
	case addr >= prgRAMLo && addr <= prgRAMHi:
		if !m.prgRAMEnable {
			return cartridge.MappedAccess{Offset: -1}, true
		}
		return prgRAMAccess(addr)
	case addr >= 0x8000 && addr <= 0x9FFF:
		if addr&1 == 0 {
			m.bankSelect = val
		} else {
			m.bankData[m.bankSelect&0x07] = val
			logBankSwitch("MMC3", "bank", int(val))
		}
	case addr >= 0xA000 && addr <= 0xBFFF:
		if addr&1 == 0 {
			if val&0x01 == 0 {
				m.mirroring = cartridge.MirrorVertical
			} else {
				m.mirroring = cartridge.MirrorHorizontal
			}
		} else {
			m.prgRAMEnable = val&0x80 != 0
		}
	case addr >= 0xC000 && addr <= 0xDFFF:
		if addr&1 == 0 {
			m.irqLatch = val
		} else {
			m.irqReload = true
		}
	case addr >= 0xE000:
		m.irqEnabled = addr&1 != 0
	}
	return cartridge.MappedAccess{Offset: -1}, true
}

func (m *mmc3) chrBank1k(idx int) int {
	if m.chrBankCount == 0 {
		return 0
	}
	return idx % m.chrBankCount
}

// doubled1k returns the 1 KiB bank for a 2 KiB register (R0 or R1), whose
// low bit is ignored, at sub-window 0 or 1 within its 2 KiB span.
func (m *mmc3) doubled1k(reg uint8, subWindow int) int {
	return m.chrBank1k(int(reg&^1) + subWindow)
}

func (m *mmc3) chrOffset(addr uint16) int {
	window := int(addr) / 0x400
	within := int(addr) & 0x3FF

	var bank int
	if m.bankSelect&0x80 == 0 {
		switch {
		case window < 2:
			bank = m.doubled1k(m.bankData[0], window)
		case window < 4:
			bank = m.doubled1k(m.bankData[1], window-2)
		default:
			bank = m.chrBank1k(int(m.bankData[2+window-4]))
		}
	} else {
		switch {
		case window < 4:
			bank = m.chrBank1k(int(m.bankData[2+window]))
		case window < 6:
			bank = m.doubled1k(m.bankData[0], window-4)
		default:
			bank = m.doubled1k(m.bankData[1], window-6)
		}
	}
	return (bank*0x400 + within) % m.chrSize
}

func (m *mmc3) PPURead(addr uint16) (int, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrOffset(addr), true
}

func (m *mmc3) PPUWrite(addr uint16) (int, bool) { return m.PPURead(addr) }
