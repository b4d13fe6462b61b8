package cpu

// Semantic bodies for each 6502 operation, shared across the addressing
// modes that can reach them. Each takes the already-fetched operand (or a
// pointer to the memory/register cell a read-modify-write opcode mutates
// in place) and updates flags.

func (cpu *CPU) ora(v uint8) { cpu.A |= v; cpu.checkNZ(cpu.A) }
func (cpu *CPU) and(v uint8) { cpu.A &= v; cpu.checkNZ(cpu.A) }
func (cpu *CPU) eor(v uint8) { cpu.A ^= v; cpu.checkNZ(cpu.A) }

func (cpu *CPU) adc(v uint8) {
	sum := uint16(cpu.A) + uint16(v) + uint16(b2u8(cpu.P.Carry()))
	result := uint8(sum)
	cpu.P.writeBit(pbitC, sum > 0xFF)
	cpu.P.writeBit(pbitV, (cpu.A^v)&0x80 == 0 && (cpu.A^result)&0x80 != 0)
	cpu.A = result
	cpu.checkNZ(cpu.A)
}

func (cpu *CPU) sbc(v uint8) { cpu.adc(v ^ 0xFF) }

func (cpu *CPU) cmp(reg, v uint8) {
	d := reg - v
	cpu.P.writeBit(pbitC, reg >= v)
	cpu.checkNZ(d)
}

func (cpu *CPU) bit(v uint8) {
	cpu.P.writeBit(pbitZ, cpu.A&v == 0)
	cpu.P.writeBit(pbitV, v&0x40 != 0)
	cpu.P.writeBit(pbitN, v&0x80 != 0)
}

func (cpu *CPU) asl(v *uint8) {
	cpu.P.writeBit(pbitC, *v&0x80 != 0)
	*v <<= 1
	cpu.checkNZ(*v)
}

func (cpu *CPU) lsr(v *uint8) {
	cpu.P.writeBit(pbitC, *v&0x01 != 0)
	*v >>= 1
	cpu.checkNZ(*v)
}

func (cpu *CPU) rol(v *uint8) {
	carryIn := b2u8(cpu.P.Carry())
	cpu.P.writeBit(pbitC, *v&0x80 != 0)
	*v = (*v << 1) | carryIn
	cpu.checkNZ(*v)
}

func (cpu *CPU) ror(v *uint8) {
	carryIn := b2u8(cpu.P.Carry())
	cpu.P.writeBit(pbitC, *v&0x01 != 0)
	*v = (*v >> 1) | (carryIn << 7)
	cpu.checkNZ(*v)
}

func (cpu *CPU) incVal(v *uint8) { *v++; cpu.checkNZ(*v) }
func (cpu *CPU) decVal(v *uint8) { *v--; cpu.checkNZ(*v) }
