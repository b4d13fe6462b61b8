// Package mappers implements the bank-switching schemes selected by an
// iNES header's mapper id, each satisfying cartridge.Mapper.
package mappers

import (
	"fmt"

	"nescore/cartridge"
	"nescore/internal/log"
)

// New builds the Mapper named by id. prgSize/chrSize are the cartridge's
// PRG-ROM/CHR byte counts (CHR-RAM carts pass the 8 KiB RAM size here too,
// since bank math only needs to know the window size modulo bank count).
func New(id uint8, prgSize, chrSize int, mirroring cartridge.Mirroring) (cartridge.Mapper, error) {
	switch id {
	case 0:
		return newNROM(prgSize, chrSize, mirroring), nil
	case 1:
		return newMMC1(prgSize, chrSize), nil
	case 2:
		return newUxROM(prgSize, chrSize, mirroring), nil
	case 3:
		return newCNROM(prgSize, chrSize, mirroring), nil
	case 4:
		return newMMC3(prgSize, chrSize, mirroring), nil
	default:
		return nil, fmt.Errorf("unsupported mapper id %d", id)
	}
}

func logBankSwitch(name, reg string, bank int) {
	log.ModMapper.DebugZ("bank switch").
		String("mapper", name).
		String("reg", reg).
		Int("bank", int64(bank)).
		End()
}

// prgRAMAccess builds a MappedAccess for the fixed 8 KiB PRG-RAM window at
// 0x6000-0x7FFF, shared by every mapper below.
func prgRAMAccess(addr uint16) (cartridge.MappedAccess, bool) {
	return cartridge.MappedAccess{Offset: int(addr - 0x6000), IsPRGRAM: true}, true
}

const prgRAMLo, prgRAMHi = 0x6000, 0x7FFF
