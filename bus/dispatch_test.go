package bus

import "testing"

func TestWorkRAMMirroring(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Write8(0x0001, 0x42)
	if v := b.Read8(0x0801); v != 0x42 {
		t.Fatalf("mirrored RAM read got %#x, want 0x42", v)
	}
	if v := b.Read8(0x1801); v != 0x42 {
		t.Fatalf("mirrored RAM read got %#x, want 0x42", v)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b, _, ppu, _, _, _ := newTestBus()
	b.Write8(0x2000, 0x80)
	if ppu.regs[0] != 0x80 {
		t.Fatalf("PPUCTRL not written through $2000")
	}
	if v := b.Read8(0x2008); v != ppu.regs[0] {
		t.Fatalf("$2008 should mirror $2000, got %#x want %#x", v, ppu.regs[0])
	}
}

func TestAPUStatusTakesPriorityOverCartridge(t *testing.T) {
	b, _, _, apu, cart, _ := newTestBus()
	apu.status = 0x1F
	cart.claim = func(addr uint16) (uint8, bool) { return 0xFF, true }
	if v := b.Read8(0x4015); v != 0x1F {
		t.Fatalf("expected $4015 to resolve to APU status ahead of the cartridge, got %#x", v)
	}
}

func TestCartridgeClaimTakesPriorityOverOpenRanges(t *testing.T) {
	b, _, _, _, cart, _ := newTestBus()
	cart.claim = func(addr uint16) (uint8, bool) {
		if addr == 0x8000 {
			return 0x37, true
		}
		return 0, false
	}
	if v := b.Read8(0x8000); v != 0x37 {
		t.Fatalf("expected cartridge-claimed address to win, got %#x", v)
	}
}

func TestControllerReadMergesOpenBus(t *testing.T) {
	b, _, _, _, _, pads := newTestBus()
	b.openBus = 0xA5
	pads.p1 = 1
	if v := b.Read8(0x4016); v != 0xA5|0x01 {
		t.Fatalf("controller read got %#x, want open bus with bit0 replaced", v)
	}
	pads.p1 = 0
	if v := b.Read8(0x4016); v&1 != 0 {
		t.Fatalf("controller bit0 should reflect the shift register, got %#x", v)
	}
}

func TestEmptyCartridgeSlotReadsZeroAboveCartWindow(t *testing.T) {
	b, _, _, _, _, _ := newTestBus()
	b.Cart = nil
	if v := b.Read8(0x8000); v != 0 {
		t.Fatalf("reads with no cartridge inserted should return 0, got %#x", v)
	}
}

func TestOpenBusFallback(t *testing.T) {
	b, _, _, _, cart, _ := newTestBus()
	cart.claim = func(addr uint16) (uint8, bool) { return 0, false }
	b.openBus = 0x77
	if v := b.Read8(0x5000); v != 0x77 {
		t.Fatalf("unmapped read should return the open-bus latch, got %#x", v)
	}
}

func TestAPUWriteRangeOffered(t *testing.T) {
	b, _, _, apu, _, _ := newTestBus()
	b.Write8(0x4003, 0x5A)
	if apu.lastWrite != 0x4003 || apu.lastVal != 0x5A {
		t.Fatalf("expected $4000-$4013 write to reach the APU, got addr=%#x val=%#x", apu.lastWrite, apu.lastVal)
	}
	b.Write8(0x4015, 0x0F)
	if apu.lastWrite != 0x4015 {
		t.Fatal("expected $4015 write to reach the APU")
	}
	b.Write8(0x4017, 0x80)
	if apu.lastWrite != 0x4017 {
		t.Fatal("expected $4017 write to reach the APU")
	}
}

func TestControllerStrobeWrite(t *testing.T) {
	b, _, _, _, _, pads := newTestBus()
	b.Write8(0x4016, 0x01)
	if !pads.strobed {
		t.Fatal("expected $4016 bit 0 write to strobe the controller ports")
	}
	b.Write8(0x4016, 0x00)
	if pads.strobed {
		t.Fatal("expected clearing bit 0 to release strobe")
	}
}

func TestOAMDMACopies256BytesAndStallsCPU(t *testing.T) {
	b, cpu, ppu, _, _, _ := newTestBus()
	for i := 0; i < 256; i++ {
		b.ram[i] = uint8(i)
	}
	cpu.odd = false
	b.Write8(0x4014, 0x00)
	for i := 0; i < 256; i++ {
		if ppu.oam[i] != uint8(i) {
			t.Fatalf("OAM byte %d = %#x, want %#x", i, ppu.oam[i], uint8(i))
		}
	}
	if cpu.stall != 513 {
		t.Fatalf("expected 513 stall cycles starting on an even cycle, got %d", cpu.stall)
	}
}

func TestOAMDMAOddCycleCostsOneMore(t *testing.T) {
	b, cpu, _, _, _, _ := newTestBus()
	cpu.odd = true
	b.Write8(0x4014, 0x00)
	if cpu.stall != 514 {
		t.Fatalf("expected 514 stall cycles starting on an odd cycle, got %d", cpu.stall)
	}
}

func TestReadMemoryPrefersCartridgeThenRAM(t *testing.T) {
	b, _, _, _, cart, _ := newTestBus()
	cart.claim = func(addr uint16) (uint8, bool) {
		if addr == 0xC000 {
			return 0x99, true
		}
		return 0, false
	}
	b.ram[0x0001] = 0x42

	if v := b.ReadMemory(0xC000); v != 0x99 {
		t.Fatalf("expected cartridge byte, got %#x", v)
	}
	if v := b.ReadMemory(0x0001); v != 0x42 {
		t.Fatalf("expected RAM fallback, got %#x", v)
	}
}
