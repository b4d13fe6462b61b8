package cartridge_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/cartridge"
	"nescore/ines"
)

// stubMapper is a minimal Mapper used to exercise Cartridge's PRG/PRG-RAM/
// CHR plumbing independently of any real bank-switching scheme.
type stubMapper struct {
	mirroring cartridge.Mirroring
	resetN    int
}

func (m *stubMapper) ID() uint8                      { return 0x7F }
func (m *stubMapper) Mirroring() cartridge.Mirroring { return m.mirroring }
func (m *stubMapper) Reset()                         { m.resetN++ }

func (m *stubMapper) CPURead(addr uint16) (cartridge.MappedAccess, bool) {
	switch {
	case addr == 0x6000:
		return cartridge.MappedAccess{Offset: 0, IsPRGRAM: true}, true
	case addr == 0x6001:
		return cartridge.MappedAccess{Offset: -1, IsPRGRAM: true}, true
	case addr >= 0x8000:
		return cartridge.MappedAccess{Offset: int(addr - 0x8000)}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *stubMapper) CPUWrite(addr uint16, val uint8) (cartridge.MappedAccess, bool) {
	switch {
	case addr == 0x6000:
		return cartridge.MappedAccess{Offset: 0, IsPRGRAM: true}, true
	case addr >= 0x8000:
		return cartridge.MappedAccess{Offset: -1}, true
	}
	return cartridge.MappedAccess{}, false
}

func (m *stubMapper) PPURead(addr uint16) (int, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return int(addr), true
}

func (m *stubMapper) PPUWrite(addr uint16) (int, bool) { return m.PPURead(addr) }

func newTestCartridge() (*cartridge.Cartridge, *stubMapper) {
	rom := &ines.Rom{PRG: make([]byte, 0x4000), CHR: make([]byte, 0x2000)}
	rom.PRG[0] = 0xAB
	rom.CHR[1] = 0xCD
	m := &stubMapper{mirroring: cartridge.MirrorVertical}
	return cartridge.New(rom, m), m
}

func TestCPUReadPRG(t *testing.T) {
	c, _ := newTestCartridge()
	v, ok := c.CPURead(0x8000)
	if !ok || v != 0xAB {
		t.Fatalf("got (%#x, %v), want (0xab, true)", v, ok)
	}
}

func TestCPUReadPRGRAM(t *testing.T) {
	c, _ := newTestCartridge()
	c.CPUWrite(0x6000, 0x42)
	v, ok := c.CPURead(0x6000)
	if !ok || v != 0x42 {
		t.Fatalf("got (%#x, %v), want (0x42, true)", v, ok)
	}
}

func TestCPUReadAcceptButDiscard(t *testing.T) {
	c, _ := newTestCartridge()
	v, ok := c.CPURead(0x6001)
	if !ok || v != 0 {
		t.Fatalf("got (%#x, %v), want (0, true) for a negative-offset accept", v, ok)
	}
}

func TestCPUReadDeclined(t *testing.T) {
	c, _ := newTestCartridge()
	if _, ok := c.CPURead(0x0000); ok {
		t.Fatal("expected the mapper to decline an address below 0x6000")
	}
}

func TestPPUReadCHRROM(t *testing.T) {
	c, _ := newTestCartridge()
	v, ok := c.PPURead(0x0001)
	if !ok || v != 0xCD {
		t.Fatalf("got (%#x, %v), want (0xcd, true)", v, ok)
	}
}

func TestPPUWriteIgnoredOnCHRROM(t *testing.T) {
	c, _ := newTestCartridge()
	if !c.PPUWrite(0x0001, 0x99) {
		t.Fatal("expected the mapper to accept a CHR-ROM write (bank-select side effects)")
	}
	v, _ := c.PPURead(0x0001)
	if v != 0xCD {
		t.Fatalf("expected CHR-ROM storage to be unaffected by a write, got %#x", v)
	}
}

func TestPPUWriteAppliedOnCHRRAM(t *testing.T) {
	rom := &ines.Rom{PRG: make([]byte, 0x4000)} // no CHR -> CHR-RAM
	m := &stubMapper{}
	c := cartridge.New(rom, m)

	if !c.PPUWrite(0x0002, 0x55) {
		t.Fatal("expected CHR-RAM write to be accepted")
	}
	v, _ := c.PPURead(0x0002)
	if v != 0x55 {
		t.Fatalf("expected CHR-RAM write to stick, got %#x", v)
	}
}

func TestResetDelegatesToMapper(t *testing.T) {
	c, m := newTestCartridge()
	c.Reset()
	if m.resetN != 1 {
		t.Fatalf("expected Cartridge.Reset to call the mapper's Reset once, got %d", m.resetN)
	}
}

func TestInfoReflectsMapperAndHeader(t *testing.T) {
	c, _ := newTestCartridge()
	want := cartridge.Info{
		Mapper:    0x7F,
		PRGSize:   0x4000,
		CHRSize:   0x2000,
		Mirroring: cartridge.MirrorVertical,
	}
	if diff := cmp.Diff(want, c.Info()); diff != "" {
		t.Fatalf("Info() mismatch (-want +got):\n%s", diff)
	}
}

func TestMirroringNametableOffsets(t *testing.T) {
	cases := []struct {
		m    cartridge.Mirroring
		page int
		want int
	}{
		{cartridge.MirrorHorizontal, 0, 0x000},
		{cartridge.MirrorHorizontal, 1, 0x000},
		{cartridge.MirrorHorizontal, 2, 0x400},
		{cartridge.MirrorHorizontal, 3, 0x400},
		{cartridge.MirrorVertical, 0, 0x000},
		{cartridge.MirrorVertical, 1, 0x400},
		{cartridge.MirrorVertical, 2, 0x000},
		{cartridge.MirrorVertical, 3, 0x400},
		{cartridge.MirrorOneScreenLower, 3, 0x000},
		{cartridge.MirrorOneScreenUpper, 0, 0x400},
		{cartridge.MirrorFourScreen, 2, 0x800},
	}
	for _, tc := range cases {
		if got := tc.m.NametableOffset(tc.page); got != tc.want {
			t.Errorf("%v.NametableOffset(%d) = %#x, want %#x", tc.m, tc.page, got, tc.want)
		}
	}
}
