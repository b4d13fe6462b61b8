package cpu

// Flags.

func opClearFlag(bit uint) func(cpu *CPU) {
	return func(cpu *CPU) { cpu.tick(); cpu.P.clearBit(bit); cpu.PC++ }
}

func opSetFlag(bit uint) func(cpu *CPU) {
	return func(cpu *CPU) { cpu.tick(); cpu.P.setBit(bit); cpu.PC++ }
}

// Register transfers.

func opTransfer(dst func(cpu *CPU, v uint8), src func(cpu *CPU) uint8, affectsFlags bool) func(cpu *CPU) {
	return func(cpu *CPU) {
		cpu.tick()
		v := src(cpu)
		dst(cpu, v)
		if affectsFlags {
			cpu.checkNZ(v)
		}
		cpu.PC++
	}
}

func setA(cpu *CPU, v uint8)  { cpu.A = v }
func setX(cpu *CPU, v uint8)  { cpu.X = v }
func setY(cpu *CPU, v uint8)  { cpu.Y = v }
func setSP(cpu *CPU, v uint8) { cpu.SP = v }
func getA(cpu *CPU) uint8     { return cpu.A }
func getX(cpu *CPU) uint8     { return cpu.X }
func getY(cpu *CPU) uint8     { return cpu.Y }
func getSP(cpu *CPU) uint8    { return cpu.SP }

func INX(cpu *CPU) { cpu.tick(); cpu.X++; cpu.checkNZ(cpu.X); cpu.PC++ }
func INY(cpu *CPU) { cpu.tick(); cpu.Y++; cpu.checkNZ(cpu.Y); cpu.PC++ }
func DEX(cpu *CPU) { cpu.tick(); cpu.X--; cpu.checkNZ(cpu.X); cpu.PC++ }
func DEY(cpu *CPU) { cpu.tick(); cpu.Y--; cpu.checkNZ(cpu.Y); cpu.PC++ }

// Stack.

func PHA(cpu *CPU) {
	cpu.tick()
	cpu.push8(cpu.A)
	cpu.PC++
}

func PHP(cpu *CPU) {
	cpu.tick()
	p := cpu.P | (1 << pbitB) | (1 << pbitU)
	cpu.push8(uint8(p))
	cpu.PC++
}

func PLA(cpu *CPU) {
	cpu.tick()
	cpu.tick()
	cpu.A = cpu.pull8()
	cpu.checkNZ(cpu.A)
	cpu.PC++
}

func PLP(cpu *CPU) {
	cpu.tick()
	cpu.tick()
	p := P(cpu.pull8())
	p.clearBit(pbitB)
	p.setBit(pbitU)
	cpu.P = p
	cpu.PC++
}

// Control flow.

func JMPabs(cpu *CPU) { cpu.PC = cpu.absAddr() }
func JMPind(cpu *CPU) { cpu.PC = cpu.ind() }

func JSR(cpu *CPU) {
	dst := cpu.absAddr()
	cpu.tick()
	cpu.push16(cpu.PC + 2)
	cpu.PC = dst
}

func RTS(cpu *CPU) {
	cpu.tick()
	cpu.tick()
	cpu.PC = cpu.pull16()
	cpu.tick()
	cpu.PC++
}

func RTI(cpu *CPU) {
	cpu.tick()
	cpu.tick()
	p := P(cpu.pull8())
	p.clearBit(pbitB)
	p.setBit(pbitU)
	cpu.P = p
	cpu.PC = cpu.pull16()
}

func BRK(cpu *CPU) {
	cpu.Read8(cpu.PC + 1) // padding byte, still fetched
	cpu.push16(cpu.PC + 2)
	p := cpu.P | (1 << pbitB) | (1 << pbitU)
	cpu.push8(uint8(p))
	cpu.P.setBit(pbitI)
	cpu.PC = cpu.Read16(irqVector)
}

func opBranch(cond func(cpu *CPU) bool) func(cpu *CPU) {
	return func(cpu *CPU) { cpu.branch(cond(cpu)) }
}

func condCarryClear(cpu *CPU) bool    { return !cpu.P.Carry() }
func condCarrySet(cpu *CPU) bool      { return cpu.P.Carry() }
func condZeroClear(cpu *CPU) bool     { return !cpu.P.Zero() }
func condZeroSet(cpu *CPU) bool       { return cpu.P.Zero() }
func condNegClear(cpu *CPU) bool      { return !cpu.P.Negative() }
func condNegSet(cpu *CPU) bool        { return cpu.P.Negative() }
func condOverflowClear(cpu *CPU) bool { return !cpu.P.Overflow() }
func condOverflowSet(cpu *CPU) bool   { return cpu.P.Overflow() }

// JAM (aka KIL/HLT) locks the bus; real hardware needs a reset line pulse
// to recover. Modeled by refusing to ever advance past the opcode.
func JAM(cpu *CPU) { cpu.tick() }

// NOP family: every addressing mode still performs its bus accesses, so
// unofficial multi-byte NOPs are built from the same generic mode
// wrappers as real operations, discarding the fetched value.

func nopDiscard(cpu *CPU, v uint8) {}

func NOPimp(cpu *CPU) { cpu.tick(); cpu.PC++ }

var (
	NOPimm  = opImm(nopDiscard)
	NOPzp   = opZp(nopDiscard)
	NOPzpx  = opZpx(nopDiscard)
	NOPabs  = opAbs(nopDiscard)
	NOPabx  = opAbx(nopDiscard)
)

// SH* family needs the raw base/effective address pair rather than a
// fetched value, so they are wired directly instead of through the
// generic read/store constructors.

func SHXaby(cpu *CPU) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.Y)
	cpu.shx(base, dst)
	cpu.PC += 3
}

func SHYabx(cpu *CPU) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.X)
	cpu.shy(base, dst)
	cpu.PC += 3
}

func SHAaby(cpu *CPU) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.Y)
	cpu.sha(base, dst)
	cpu.PC += 3
}

func SHAizy(cpu *CPU) {
	ptr := cpu.zp()
	base := cpu.zpIndirect16(ptr)
	dst := base + uint16(cpu.Y)
	cpu.sha(base, dst)
	cpu.PC += 2
}

func TASaby(cpu *CPU) {
	base := cpu.absAddr()
	dst := base + uint16(cpu.Y)
	cpu.tas(base, dst)
	cpu.PC += 3
}

var ops [256]func(cpu *CPU)

func init() {
	ops[0x00] = BRK
	ops[0x01] = opIzx(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x02] = JAM
	ops[0x03] = opRmwIzx(func(c *CPU, v *uint8) { c.slo(v) })
	ops[0x04] = NOPzp
	ops[0x05] = opZp(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x06] = opRmwZp(func(c *CPU, v *uint8) { c.asl(v) })
	ops[0x07] = opRmwZp(func(c *CPU, v *uint8) { c.slo(v) })
	ops[0x08] = PHP
	ops[0x09] = opImm(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x0A] = func(c *CPU) { c.tick(); c.asl(&c.A); c.PC++ }
	ops[0x0B] = opImm(func(c *CPU, v uint8) { c.anc(v) })
	ops[0x0C] = NOPabs
	ops[0x0D] = opAbs(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x0E] = opRmwAbs(func(c *CPU, v *uint8) { c.asl(v) })
	ops[0x0F] = opRmwAbs(func(c *CPU, v *uint8) { c.slo(v) })

	ops[0x10] = opBranch(condNegClear)
	ops[0x11] = opIzy(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x12] = JAM
	ops[0x13] = opRmwIzy(func(c *CPU, v *uint8) { c.slo(v) })
	ops[0x14] = NOPzpx
	ops[0x15] = opZpx(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x16] = opRmwZpx(func(c *CPU, v *uint8) { c.asl(v) })
	ops[0x17] = opRmwZpx(func(c *CPU, v *uint8) { c.slo(v) })
	ops[0x18] = opClearFlag(pbitC)
	ops[0x19] = opAby(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x1A] = NOPimp
	ops[0x1B] = opRmwAby(func(c *CPU, v *uint8) { c.slo(v) })
	ops[0x1C] = NOPabx
	ops[0x1D] = opAbx(func(c *CPU, v uint8) { c.ora(v) })
	ops[0x1E] = opRmwAbx(func(c *CPU, v *uint8) { c.asl(v) })
	ops[0x1F] = opRmwAbx(func(c *CPU, v *uint8) { c.slo(v) })

	ops[0x20] = JSR
	ops[0x21] = opIzx(func(c *CPU, v uint8) { c.and(v) })
	ops[0x22] = JAM
	ops[0x23] = opRmwIzx(func(c *CPU, v *uint8) { c.rla(v) })
	ops[0x24] = opZp(func(c *CPU, v uint8) { c.bit(v) })
	ops[0x25] = opZp(func(c *CPU, v uint8) { c.and(v) })
	ops[0x26] = opRmwZp(func(c *CPU, v *uint8) { c.rol(v) })
	ops[0x27] = opRmwZp(func(c *CPU, v *uint8) { c.rla(v) })
	ops[0x28] = PLP
	ops[0x29] = opImm(func(c *CPU, v uint8) { c.and(v) })
	ops[0x2A] = func(c *CPU) { c.tick(); c.rol(&c.A); c.PC++ }
	ops[0x2B] = opImm(func(c *CPU, v uint8) { c.anc(v) })
	ops[0x2C] = opAbs(func(c *CPU, v uint8) { c.bit(v) })
	ops[0x2D] = opAbs(func(c *CPU, v uint8) { c.and(v) })
	ops[0x2E] = opRmwAbs(func(c *CPU, v *uint8) { c.rol(v) })
	ops[0x2F] = opRmwAbs(func(c *CPU, v *uint8) { c.rla(v) })

	ops[0x30] = opBranch(condNegSet)
	ops[0x31] = opIzy(func(c *CPU, v uint8) { c.and(v) })
	ops[0x32] = JAM
	ops[0x33] = opRmwIzy(func(c *CPU, v *uint8) { c.rla(v) })
	ops[0x34] = NOPzpx
	ops[0x35] = opZpx(func(c *CPU, v uint8) { c.and(v) })
	ops[0x36] = opRmwZpx(func(c *CPU, v *uint8) { c.rol(v) })
	ops[0x37] = opRmwZpx(func(c *CPU, v *uint8) { c.rla(v) })
	ops[0x38] = opSetFlag(pbitC)
	ops[0x39] = opAby(func(c *CPU, v uint8) { c.and(v) })
	ops[0x3A] = NOPimp
	ops[0x3B] = opRmwAby(func(c *CPU, v *uint8) { c.rla(v) })
	ops[0x3C] = NOPabx
	ops[0x3D] = opAbx(func(c *CPU, v uint8) { c.and(v) })
	ops[0x3E] = opRmwAbx(func(c *CPU, v *uint8) { c.rol(v) })
	ops[0x3F] = opRmwAbx(func(c *CPU, v *uint8) { c.rla(v) })

	ops[0x40] = RTI
	ops[0x41] = opIzx(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x42] = JAM
	ops[0x43] = opRmwIzx(func(c *CPU, v *uint8) { c.sre(v) })
	ops[0x44] = NOPzp
	ops[0x45] = opZp(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x46] = opRmwZp(func(c *CPU, v *uint8) { c.lsr(v) })
	ops[0x47] = opRmwZp(func(c *CPU, v *uint8) { c.sre(v) })
	ops[0x48] = PHA
	ops[0x49] = opImm(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x4A] = func(c *CPU) { c.tick(); c.lsr(&c.A); c.PC++ }
	ops[0x4B] = opImm(func(c *CPU, v uint8) { c.alr(v) })
	ops[0x4C] = JMPabs
	ops[0x4D] = opAbs(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x4E] = opRmwAbs(func(c *CPU, v *uint8) { c.lsr(v) })
	ops[0x4F] = opRmwAbs(func(c *CPU, v *uint8) { c.sre(v) })

	ops[0x50] = opBranch(condOverflowClear)
	ops[0x51] = opIzy(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x52] = JAM
	ops[0x53] = opRmwIzy(func(c *CPU, v *uint8) { c.sre(v) })
	ops[0x54] = NOPzpx
	ops[0x55] = opZpx(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x56] = opRmwZpx(func(c *CPU, v *uint8) { c.lsr(v) })
	ops[0x57] = opRmwZpx(func(c *CPU, v *uint8) { c.sre(v) })
	ops[0x58] = opClearFlag(pbitI)
	ops[0x59] = opAby(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x5A] = NOPimp
	ops[0x5B] = opRmwAby(func(c *CPU, v *uint8) { c.sre(v) })
	ops[0x5C] = NOPabx
	ops[0x5D] = opAbx(func(c *CPU, v uint8) { c.eor(v) })
	ops[0x5E] = opRmwAbx(func(c *CPU, v *uint8) { c.lsr(v) })
	ops[0x5F] = opRmwAbx(func(c *CPU, v *uint8) { c.sre(v) })

	ops[0x60] = RTS
	ops[0x61] = opIzx(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x62] = JAM
	ops[0x63] = opRmwIzx(func(c *CPU, v *uint8) { c.rra(v) })
	ops[0x64] = NOPzp
	ops[0x65] = opZp(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x66] = opRmwZp(func(c *CPU, v *uint8) { c.ror(v) })
	ops[0x67] = opRmwZp(func(c *CPU, v *uint8) { c.rra(v) })
	ops[0x68] = PLA
	ops[0x69] = opImm(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x6A] = func(c *CPU) { c.tick(); c.ror(&c.A); c.PC++ }
	ops[0x6B] = opImm(func(c *CPU, v uint8) { c.arr(v) })
	ops[0x6C] = JMPind
	ops[0x6D] = opAbs(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x6E] = opRmwAbs(func(c *CPU, v *uint8) { c.ror(v) })
	ops[0x6F] = opRmwAbs(func(c *CPU, v *uint8) { c.rra(v) })

	ops[0x70] = opBranch(condOverflowSet)
	ops[0x71] = opIzy(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x72] = JAM
	ops[0x73] = opRmwIzy(func(c *CPU, v *uint8) { c.rra(v) })
	ops[0x74] = NOPzpx
	ops[0x75] = opZpx(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x76] = opRmwZpx(func(c *CPU, v *uint8) { c.ror(v) })
	ops[0x77] = opRmwZpx(func(c *CPU, v *uint8) { c.rra(v) })
	ops[0x78] = opSetFlag(pbitI)
	ops[0x79] = opAby(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x7A] = NOPimp
	ops[0x7B] = opRmwAby(func(c *CPU, v *uint8) { c.rra(v) })
	ops[0x7C] = NOPabx
	ops[0x7D] = opAbx(func(c *CPU, v uint8) { c.adc(v) })
	ops[0x7E] = opRmwAbx(func(c *CPU, v *uint8) { c.ror(v) })
	ops[0x7F] = opRmwAbx(func(c *CPU, v *uint8) { c.rra(v) })

	ops[0x80] = NOPimm
	ops[0x81] = opStoreIzx(getA)
	ops[0x82] = NOPimm
	ops[0x83] = opStoreIzx(func(c *CPU) uint8 { return c.saxVal() })
	ops[0x84] = opStoreZp(getY)
	ops[0x85] = opStoreZp(getA)
	ops[0x86] = opStoreZp(getX)
	ops[0x87] = opStoreZp(func(c *CPU) uint8 { return c.saxVal() })
	ops[0x88] = DEY
	ops[0x89] = NOPimm
	ops[0x8A] = opTransfer(setA, getX, true)
	ops[0x8B] = opImm(func(c *CPU, v uint8) { c.ane(v) })
	ops[0x8C] = opStoreAbs(getY)
	ops[0x8D] = opStoreAbs(getA)
	ops[0x8E] = opStoreAbs(getX)
	ops[0x8F] = opStoreAbs(func(c *CPU) uint8 { return c.saxVal() })

	ops[0x90] = opBranch(condCarryClear)
	ops[0x91] = opStoreIzy(getA)
	ops[0x92] = JAM
	ops[0x93] = SHAizy
	ops[0x94] = opStoreZpx(getY)
	ops[0x95] = opStoreZpx(getA)
	ops[0x96] = opStoreZpy(getX)
	ops[0x97] = opStoreZpy(func(c *CPU) uint8 { return c.saxVal() })
	ops[0x98] = opTransfer(setA, getY, true)
	ops[0x99] = opStoreAby(getA)
	ops[0x9A] = opTransfer(setSP, getX, false)
	ops[0x9B] = TASaby
	ops[0x9C] = SHYabx
	ops[0x9D] = opStoreAbx(getA)
	ops[0x9E] = SHXaby
	ops[0x9F] = SHAaby

	ops[0xA0] = opImm(func(c *CPU, v uint8) { c.Y = v; c.checkNZ(v) })
	ops[0xA1] = opIzx(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xA2] = opImm(func(c *CPU, v uint8) { c.X = v; c.checkNZ(v) })
	ops[0xA3] = opIzx(func(c *CPU, v uint8) { c.lax(v) })
	ops[0xA4] = opZp(func(c *CPU, v uint8) { c.Y = v; c.checkNZ(v) })
	ops[0xA5] = opZp(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xA6] = opZp(func(c *CPU, v uint8) { c.X = v; c.checkNZ(v) })
	ops[0xA7] = opZp(func(c *CPU, v uint8) { c.lax(v) })
	ops[0xA8] = opTransfer(setY, getA, true)
	ops[0xA9] = opImm(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xAA] = opTransfer(setX, getA, true)
	ops[0xAB] = opImm(func(c *CPU, v uint8) { c.lxa(v) })
	ops[0xAC] = opAbs(func(c *CPU, v uint8) { c.Y = v; c.checkNZ(v) })
	ops[0xAD] = opAbs(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xAE] = opAbs(func(c *CPU, v uint8) { c.X = v; c.checkNZ(v) })
	ops[0xAF] = opAbs(func(c *CPU, v uint8) { c.lax(v) })

	ops[0xB0] = opBranch(condCarrySet)
	ops[0xB1] = opIzy(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xB2] = JAM
	ops[0xB3] = opIzy(func(c *CPU, v uint8) { c.lax(v) })
	ops[0xB4] = opZpx(func(c *CPU, v uint8) { c.Y = v; c.checkNZ(v) })
	ops[0xB5] = opZpx(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xB6] = opZpy(func(c *CPU, v uint8) { c.X = v; c.checkNZ(v) })
	ops[0xB7] = opZpy(func(c *CPU, v uint8) { c.lax(v) })
	ops[0xB8] = opClearFlag(pbitV)
	ops[0xB9] = opAby(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xBA] = opTransfer(setX, getSP, true)
	ops[0xBB] = opAby(func(c *CPU, v uint8) { c.las(v) })
	ops[0xBC] = opAbx(func(c *CPU, v uint8) { c.Y = v; c.checkNZ(v) })
	ops[0xBD] = opAbx(func(c *CPU, v uint8) { c.A = v; c.checkNZ(v) })
	ops[0xBE] = opAby(func(c *CPU, v uint8) { c.X = v; c.checkNZ(v) })
	ops[0xBF] = opAby(func(c *CPU, v uint8) { c.lax(v) })

	ops[0xC0] = opImm(func(c *CPU, v uint8) { c.cmp(c.Y, v) })
	ops[0xC1] = opIzx(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xC2] = NOPimm
	ops[0xC3] = opRmwIzx(func(c *CPU, v *uint8) { c.dcp(v) })
	ops[0xC4] = opZp(func(c *CPU, v uint8) { c.cmp(c.Y, v) })
	ops[0xC5] = opZp(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xC6] = opRmwZp(func(c *CPU, v *uint8) { c.decVal(v) })
	ops[0xC7] = opRmwZp(func(c *CPU, v *uint8) { c.dcp(v) })
	ops[0xC8] = INY
	ops[0xC9] = opImm(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xCA] = DEX
	ops[0xCB] = opImm(func(c *CPU, v uint8) { c.sbx(v) })
	ops[0xCC] = opAbs(func(c *CPU, v uint8) { c.cmp(c.Y, v) })
	ops[0xCD] = opAbs(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xCE] = opRmwAbs(func(c *CPU, v *uint8) { c.decVal(v) })
	ops[0xCF] = opRmwAbs(func(c *CPU, v *uint8) { c.dcp(v) })

	ops[0xD0] = opBranch(condZeroClear)
	ops[0xD1] = opIzy(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xD2] = JAM
	ops[0xD3] = opRmwIzy(func(c *CPU, v *uint8) { c.dcp(v) })
	ops[0xD4] = NOPzpx
	ops[0xD5] = opZpx(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xD6] = opRmwZpx(func(c *CPU, v *uint8) { c.decVal(v) })
	ops[0xD7] = opRmwZpx(func(c *CPU, v *uint8) { c.dcp(v) })
	ops[0xD8] = opClearFlag(pbitD)
	ops[0xD9] = opAby(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xDA] = NOPimp
	ops[0xDB] = opRmwAby(func(c *CPU, v *uint8) { c.dcp(v) })
	ops[0xDC] = NOPabx
	ops[0xDD] = opAbx(func(c *CPU, v uint8) { c.cmp(c.A, v) })
	ops[0xDE] = opRmwAbx(func(c *CPU, v *uint8) { c.decVal(v) })
	ops[0xDF] = opRmwAbx(func(c *CPU, v *uint8) { c.dcp(v) })

	ops[0xE0] = opImm(func(c *CPU, v uint8) { c.cmp(c.X, v) })
	ops[0xE1] = opIzx(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xE2] = NOPimm
	ops[0xE3] = opRmwIzx(func(c *CPU, v *uint8) { c.isb(v) })
	ops[0xE4] = opZp(func(c *CPU, v uint8) { c.cmp(c.X, v) })
	ops[0xE5] = opZp(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xE6] = opRmwZp(func(c *CPU, v *uint8) { c.incVal(v) })
	ops[0xE7] = opRmwZp(func(c *CPU, v *uint8) { c.isb(v) })
	ops[0xE8] = INX
	ops[0xE9] = opImm(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xEA] = NOPimp
	ops[0xEB] = opImm(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xEC] = opAbs(func(c *CPU, v uint8) { c.cmp(c.X, v) })
	ops[0xED] = opAbs(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xEE] = opRmwAbs(func(c *CPU, v *uint8) { c.incVal(v) })
	ops[0xEF] = opRmwAbs(func(c *CPU, v *uint8) { c.isb(v) })

	ops[0xF0] = opBranch(condZeroSet)
	ops[0xF1] = opIzy(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xF2] = JAM
	ops[0xF3] = opRmwIzy(func(c *CPU, v *uint8) { c.isb(v) })
	ops[0xF4] = NOPzpx
	ops[0xF5] = opZpx(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xF6] = opRmwZpx(func(c *CPU, v *uint8) { c.incVal(v) })
	ops[0xF7] = opRmwZpx(func(c *CPU, v *uint8) { c.isb(v) })
	ops[0xF8] = opSetFlag(pbitD)
	ops[0xF9] = opAby(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xFA] = NOPimp
	ops[0xFB] = opRmwAby(func(c *CPU, v *uint8) { c.isb(v) })
	ops[0xFC] = NOPabx
	ops[0xFD] = opAbx(func(c *CPU, v uint8) { c.sbc(v) })
	ops[0xFE] = opRmwAbx(func(c *CPU, v *uint8) { c.incVal(v) })
	ops[0xFF] = opRmwAbx(func(c *CPU, v *uint8) { c.isb(v) })
}
