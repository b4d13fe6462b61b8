package ppu

import (
	"testing"

	"nescore/cartridge"
)

type stubCart struct {
	chr       [0x2000]byte
	mirroring cartridge.Mirroring
}

func (c *stubCart) PPURead(addr uint16) (uint8, bool)    { return c.chr[addr&0x1FFF], true }
func (c *stubCart) PPUWrite(addr uint16, val uint8) bool { c.chr[addr&0x1FFF] = val; return true }
func (c *stubCart) Mirroring() cartridge.Mirroring       { return c.mirroring }

type stubCPU struct{ nmis int }

func (c *stubCPU) AssertNMI() { c.nmis++ }

func newTestPPU() (*PPU, *stubCart, *stubCPU) {
	p := New()
	cart := &stubCart{mirroring: cartridge.MirrorHorizontal}
	cpu := &stubCPU{}
	p.Cart = cart
	p.Nmi = cpu
	p.Reset()
	// Release reset-protection as if a frame's worth of dots had elapsed.
	p.Scanline, p.Dot = 261, 1
	p.Tick()
	return p, cart, cpu
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p, _, _ := newTestPPU()
	p.PPUSTATUS.Value = 0x80
	p.openBus = 0x12
	p.writeLatch = true

	got := p.ReadRegister(2)
	if got != 0x92 {
		t.Fatalf("PPUSTATUS read = %#02x, want 0x92", got)
	}
	if p.PPUSTATUS.Value&statusVBlank != 0 {
		t.Fatal("vblank flag not cleared by status read")
	}
	if p.writeLatch {
		t.Fatal("write latch not reset by status read")
	}
}

func TestScrollAndAddressTwoWriteSequence(t *testing.T) {
	p, _, _ := newTestPPU()

	p.WriteRegister(5, 0b0001_0011) // scroll first write: coarse X=2, fine X=3
	p.WriteRegister(5, 0b0100_0100) // scroll second write: coarse Y=8, fine Y=4

	if p.fineX != 3 {
		t.Fatalf("fineX = %d, want 3", p.fineX)
	}
	if coarseX := p.vramTmp & 0x1F; coarseX != 2 {
		t.Fatalf("coarse X = %d, want 2", coarseX)
	}
	if coarseY := (p.vramTmp >> 5) & 0x1F; coarseY != 8 {
		t.Fatalf("coarse Y = %d, want 8", coarseY)
	}
	if fineY := (p.vramTmp >> 12) & 0x7; fineY != 4 {
		t.Fatalf("fine Y = %d, want 4", fineY)
	}

	p.WriteRegister(6, 0x21) // addr hi
	p.WriteRegister(6, 0x08) // addr lo, latches v
	if p.vramAddr != 0x2108 {
		t.Fatalf("vramAddr = %#04x, want 0x2108", p.vramAddr)
	}
}

func TestOAMWriteReadRoundTrip(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(3, 0x10) // OAMADDR = 0x10
	p.WriteRegister(4, 0x42) // OAMDATA write, addr++

	p.WriteRegister(3, 0x10) // point back at the same slot
	if got := p.ReadRegister(4); got != 0x42 {
		t.Fatalf("OAMDATA read = %#02x, want 0x42", got)
	}
}

func TestPaletteMirrorAndMask(t *testing.T) {
	p, _, _ := newTestPPU()
	p.writeVRAM(0x3F10, 0xFF)
	if p.paletteRAM[0] != 0x3F {
		t.Fatalf("palette[0] = %#02x, want 0x3F (write masked to 6 bits and 0x3F10 aliased to 0x3F00)", p.paletteRAM[0])
	}
}

func TestVBlankSetsStatusAndAssertsNMI(t *testing.T) {
	p, _, cpu := newTestPPU()
	p.PPUCTRL.Value = ctrlNMIEnable
	p.Scanline, p.Dot = 241, 1
	p.tickVblankStart()

	if p.PPUSTATUS.Value&statusVBlank == 0 {
		t.Fatal("vblank flag not set at (241,1)")
	}
	if cpu.nmis != 1 {
		t.Fatalf("nmis = %d, want 1", cpu.nmis)
	}
}

func TestSpriteOverflowDiagonalBug(t *testing.T) {
	p, _, _ := newTestPPU()
	// 9 sprites all visible on scanline 10 with an 8px sprite height:
	// the first 8 fill the secondary buffer, the 9th should trip overflow.
	for i := 0; i < 9; i++ {
		p.OAM[i*4+0] = 10 // y
		p.OAM[i*4+1] = 0  // tile
		p.OAM[i*4+2] = 0  // attr
		p.OAM[i*4+3] = uint8(i * 8)
	}
	p.Scanline = 10
	p.evaluateSprites()

	if p.spriteCount != 8 {
		t.Fatalf("spriteCount = %d, want 8", p.spriteCount)
	}
	if p.PPUSTATUS.Value&statusOverflow == 0 {
		t.Fatal("expected sprite overflow flag set with 9 in-range sprites")
	}
}

func TestOAMDMAWriteAdvancesAddress(t *testing.T) {
	p, _, _ := newTestPPU()
	p.WriteRegister(3, 0) // OAMADDR = 0
	for i := 0; i < 256; i++ {
		p.DMAWriteOAM(uint8(i))
	}
	for i := 0; i < 256; i++ {
		if p.OAM[i] != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, p.OAM[i], uint8(i))
		}
	}
}
