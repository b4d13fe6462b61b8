package ines

import (
	"bytes"
	"testing"
)

func buildHeader(mapperLo, mapperHi, flags6extra uint8, prgBanks, chrBanks uint8) []byte {
	hdr := make([]byte, 16)
	copy(hdr[:4], Magic)
	hdr[4] = prgBanks
	hdr[5] = chrBanks
	hdr[6] = (mapperLo << 4) | flags6extra
	hdr[7] = mapperHi << 4
	return hdr
}

func TestRomReadFrom(t *testing.T) {
	hdr := buildHeader(1, 0, 0x01, 2, 1) // mapper 1, vertical mirroring, 32K PRG, 8K CHR
	buf := append(hdr, make([]byte, 2*16384+8192)...)

	var rom Rom
	n, err := rom.ReadFrom(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(buf)) {
		t.Errorf("n = %d, want %d", n, len(buf))
	}
	if rom.Mapper() != 1 {
		t.Errorf("Mapper() = %d, want 1", rom.Mapper())
	}
	if rom.Mirroring() != MirrorVertical {
		t.Errorf("Mirroring() = %v, want vertical", rom.Mirroring())
	}
	if len(rom.PRG) != 2*16384 {
		t.Errorf("len(PRG) = %d, want %d", len(rom.PRG), 2*16384)
	}
	if len(rom.CHR) != 8192 {
		t.Errorf("len(CHR) = %d, want 8192", len(rom.CHR))
	}
}

func TestRomMapperCombinesBothNibbles(t *testing.T) {
	hdr := buildHeader(0x4, 0x0, 0, 1, 1) // mapper 4 (MMC3): lo=4, hi=0
	buf := append(hdr, make([]byte, 16384+8192)...)

	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err != nil {
		t.Fatal(err)
	}
	if rom.Mapper() != 4 {
		t.Errorf("Mapper() = %d, want 4", rom.Mapper())
	}

	hdr2 := buildHeader(0x1, 0x1, 0, 1, 1) // mapper 0x11 = 17
	buf2 := append(hdr2, make([]byte, 16384+8192)...)
	var rom2 Rom
	if _, err := rom2.ReadFrom(bytes.NewReader(buf2)); err != nil {
		t.Fatal(err)
	}
	if rom2.Mapper() != 0x11 {
		t.Errorf("Mapper() = %#x, want 0x11", rom2.Mapper())
	}
}

func TestRomRejectsBadMagic(t *testing.T) {
	buf := make([]byte, 16)
	copy(buf, "XXX\x1a")
	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestRomRejectsNES20(t *testing.T) {
	hdr := buildHeader(0, 0, 0, 1, 1)
	hdr[7] |= 0x08 // NES 2.0 identifier bits
	buf := append(hdr, make([]byte, 16384+8192)...)
	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for NES 2.0 header")
	}
}

func TestRomRejectsIncompletePRG(t *testing.T) {
	hdr := buildHeader(0, 0, 0, 2, 0)
	buf := append(hdr, make([]byte, 16384)...) // only one of two PRG banks
	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected error for incomplete PRG section")
	}
}

func TestRomInfo(t *testing.T) {
	hdr := buildHeader(0, 0, 0x02, 1, 1) // battery-backed PRG RAM
	buf := append(hdr, make([]byte, 16384+8192)...)
	var rom Rom
	if _, err := rom.ReadFrom(bytes.NewReader(buf)); err != nil {
		t.Fatal(err)
	}
	info := rom.Info()
	if !info.HasBattery {
		t.Error("expected HasBattery to be true")
	}
	if info.PRGSize != 16384 || info.CHRSize != 8192 {
		t.Errorf("unexpected sizes: %+v", info)
	}
}
