package bus

type stubCPU struct {
	stall int
	odd   bool
}

func (c *stubCPU) Stall(n int)    { c.stall += n }
func (c *stubCPU) OddCycle() bool { return c.odd }

type stubPPU struct {
	regs [8]uint8
	oam  [256]uint8
	oamI int
}

func (p *stubPPU) ReadRegister(index uint8) uint8       { return p.regs[index&7] }
func (p *stubPPU) WriteRegister(index uint8, val uint8) { p.regs[index&7] = val }
func (p *stubPPU) DMAWriteOAM(val uint8) {
	p.oam[p.oamI&0xFF] = val
	p.oamI++
}

type stubAPU struct {
	status    uint8
	lastWrite uint16
	lastVal   uint8
}

func (a *stubAPU) ReadRegister(addr uint16) uint8 { return a.status }
func (a *stubAPU) WriteRegister(addr uint16, val uint8) {
	a.lastWrite = addr
	a.lastVal = val
}

type stubCartridge struct {
	claim func(addr uint16) (uint8, bool)
	wrote map[uint16]uint8
}

func (c *stubCartridge) CPURead(addr uint16) (uint8, bool) {
	if c.claim == nil {
		return 0, false
	}
	return c.claim(addr)
}

func (c *stubCartridge) CPUWrite(addr uint16, val uint8) bool {
	if c.wrote == nil {
		c.wrote = map[uint16]uint8{}
	}
	c.wrote[addr] = val
	return true
}

type stubControllers struct {
	strobed bool
	p1, p2  uint8
}

func (c *stubControllers) Strobe(on bool) { c.strobed = on }
func (c *stubControllers) Read1() uint8   { return c.p1 }
func (c *stubControllers) Read2() uint8   { return c.p2 }

func newTestBus() (*Bus, *stubCPU, *stubPPU, *stubAPU, *stubCartridge, *stubControllers) {
	cpu := &stubCPU{}
	ppu := &stubPPU{}
	apu := &stubAPU{}
	cart := &stubCartridge{}
	pads := &stubControllers{}
	b := New()
	b.CPU, b.PPU, b.APU, b.Cart, b.Pads = cpu, ppu, apu, cart, pads
	return b, cpu, ppu, apu, cart, pads
}
