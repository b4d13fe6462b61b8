package cpu

// Addressing-mode helpers return the operand (or effective address) for an
// opcode and account for implied internal cycles (index computation,
// wrap-around) via tick(). Operand bytes are read with Read8, which
// charges the fetch cycle itself.

func (cpu *CPU) imm() uint8  { return cpu.Read8(cpu.PC + 1) }
func (cpu *CPU) absAddr() uint16 { return cpu.Read16(cpu.PC + 1) }
func (cpu *CPU) zp() uint8   { return cpu.Read8(cpu.PC + 1) }

func (cpu *CPU) zpx() uint8 {
	cpu.tick()
	return cpu.zp() + cpu.X
}

func (cpu *CPU) zpy() uint8 {
	cpu.tick()
	return cpu.zp() + cpu.Y
}

// abx returns the effective address and whether a page boundary was
// crossed; callers that always pay the crossing cost (read-modify-write,
// stores) use abxFixed instead.
func (cpu *CPU) abx() (uint16, bool) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.X)
	crossed := pagecrossed(base, dst)
	if crossed {
		cpu.tick()
	}
	return dst, crossed
}

// abxFixed always charges the extra cycle, for opcodes whose effective
// address is always computed to completion regardless of crossing.
func (cpu *CPU) abxFixed() uint16 {
	base := cpu.absAddr()
	cpu.tick()
	return base + uint16(cpu.X)
}

func (cpu *CPU) aby() (uint16, bool) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.Y)
	crossed := pagecrossed(base, dst)
	if crossed {
		cpu.tick()
	}
	return dst, crossed
}

func (cpu *CPU) abyFixed() uint16 {
	base := cpu.absAddr()
	cpu.tick()
	return base + uint16(cpu.Y)
}

// zpIndirect16 reads a 16-bit pointer out of the zero page, wrapping
// within page 0 rather than crossing into page 1.
func (cpu *CPU) zpIndirect16(addr uint8) uint16 {
	lo := cpu.Read8(uint16(addr))
	hi := cpu.Read8(uint16(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// izx is (zp,X): the zero-page pointer is indexed by X before the 16-bit
// target is read.
func (cpu *CPU) izx() uint16 {
	cpu.tick()
	ptr := cpu.zp() + cpu.X
	return cpu.zpIndirect16(ptr)
}

// izy is (zp),Y: the zero-page pointer is read, then indexed by Y.
func (cpu *CPU) izy() (uint16, bool) {
	ptr := cpu.zp()
	base := cpu.zpIndirect16(ptr)
	dst := base + uint16(cpu.Y)
	return dst, pagecrossed(base, dst)
}

func (cpu *CPU) izyFixed() uint16 {
	ptr := cpu.zp()
	base := cpu.zpIndirect16(ptr)
	cpu.tick()
	return base + uint16(cpu.Y)
}

// ind is the JMP (abs) indirect mode, reproducing the page-wrap bug: if
// the low byte of the pointer is 0xFF, the high byte is fetched from the
// start of the same page instead of the next one.
func (cpu *CPU) ind() uint16 {
	ptr := cpu.absAddr()
	lo := cpu.Read8(ptr)
	hi := cpu.Read8((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
	return uint16(hi)<<8 | uint16(lo)
}

// rel computes a branch target from the signed operand following the
// opcode byte.
func (cpu *CPU) rel() uint16 {
	off := int8(cpu.Read8(cpu.PC + 1))
	return uint16(int32(cpu.PC+2) + int32(off))
}

func (cpu *CPU) branch(taken bool) {
	dst := cpu.rel()
	if taken {
		if pagecrossed(cpu.PC+2, dst) {
			cpu.tick()
		}
		cpu.tick()
		cpu.PC = dst
		return
	}
	cpu.PC += 2
}
