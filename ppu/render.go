package ppu

import "nescore/palette"

// Tick advances the PPU by one dot (1/3 CPU cycle). The background and
// sprite pipelines are evaluated per-pixel from coordinates derived from
// the scroll registers latched at the start of the scanline, rather than
// by simulating the hardware's internal 8-dot fetch/shift-register
// sequence: software cannot observe the difference except through
// mid-scanline register writes, which this model picks up on the very
// next scanline instead of at the exact dot the real PPU would.
func (p *PPU) Tick() {
	p.tickOpenBusDecay()

	switch {
	case p.Scanline < 240:
		p.tickVisible()
	case p.Scanline == 241:
		p.tickVblankStart()
	case p.Scanline == 261:
		p.tickPreRender()
	}

	p.Dot++
	if p.Dot >= NumDots {
		p.Dot = 0
		p.Scanline++
		if p.Scanline >= NumScanlines {
			p.Scanline = 0
			p.Frames++
		}
	}
}

func (p *PPU) tickVblankStart() {
	if p.Dot == 1 {
		p.PPUSTATUS.Value |= statusVBlank
		if p.PPUCTRL.Value&ctrlNMIEnable != 0 {
			p.Nmi.AssertNMI()
		}
	}
}

func (p *PPU) tickPreRender() {
	if p.Dot == 1 {
		p.PPUSTATUS.Value &^= statusVBlank | statusSprite0Hit | statusOverflow
		p.resetProtect = false
	}
}

func (p *PPU) tickVisible() {
	if p.Dot == 1 {
		p.renderV = p.vramTmp
		p.renderFineX = p.fineX
		p.evaluateSprites()
	}
	if p.Dot >= 1 && p.Dot <= screenWidth {
		p.renderPixel(p.Dot - 1)
	}
}

// evaluateSprites selects up to 8 sprites visible on the current scanline
// and reproduces the secondary-OAM-overflow hardware bug for the status
// flag: once 8 in-range sprites have been found, continued scanning walks
// OAM with a corrupted "diagonal" stride instead of one sprite at a time,
// producing both false positives and false negatives on real hardware.
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.spriteZeroHere = false

	height := 8
	if p.PPUCTRL.Value&ctrlSpriteSize16 != 0 {
		height = 16
	}
	inRange := func(y uint8) bool {
		d := p.Scanline - int(y)
		return d >= 0 && d < height
	}

	n := 0
	for n < 64 && p.spriteCount < 8 {
		y := p.OAM[n*4]
		if inRange(y) {
			s := sprite{
				y:    y,
				tile: p.OAM[n*4+1],
				attr: p.OAM[n*4+2],
				x:    p.OAM[n*4+3],
			}
			p.sprites[p.spriteCount] = s
			if n == 0 {
				p.spriteZeroHere = true
			}
			p.spriteCount++
		}
		n++
	}

	if p.spriteCount == 8 && n < 64 {
		addr := n * 4
		for addr < 256 {
			if inRange(p.OAM[addr]) {
				p.PPUSTATUS.Value |= statusOverflow
				break
			}
			if addr&3 == 3 {
				addr += 5
			} else {
				addr++
			}
		}
	}
}

// bgPixel computes the background color index (0-3) and palette id for
// screen column x of the current scanline, from the scroll state latched
// at dot 1.
func (p *PPU) bgPixel(x int) (colorIndex, paletteID uint8) {
	ntX := int(p.renderV>>10) & 1
	ntY := int(p.renderV>>11) & 1
	coarseX := int(p.renderV & 0x1F)
	coarseY := int(p.renderV>>5) & 0x1F
	fineY := int(p.renderV>>12) & 0x7

	rawX := coarseX*8 + int(p.renderFineX) + x
	rawX %= 512
	if rawX >= 256 {
		ntX ^= 1
		rawX -= 256
	}
	rawY := coarseY*8 + fineY + p.Scanline
	rawY %= 480
	if rawY >= 240 {
		ntY ^= 1
		rawY -= 240
	}

	tileX, fineXpix := rawX/8, rawX%8
	tileY, fineYpix := rawY/8, rawY%8

	page := uint16(ntY<<1|ntX) << 10
	ntBase := 0x2000 + page
	tileAddr := ntBase + uint16(tileY*32+tileX)
	tileIdx := p.readVRAM(tileAddr)

	attrAddr := ntBase + 0x3C0 + uint16((tileY/4)*8+tileX/4)
	attrByte := p.readVRAM(attrAddr)
	shift := uint(((tileY%4)/2)*4 + ((tileX%4)/2)*2)
	paletteID = (attrByte >> shift) & 0x3

	patternBase := uint16(0)
	if p.PPUCTRL.Value&ctrlBgTable != 0 {
		patternBase = 0x1000
	}
	patAddr := patternBase + uint16(tileIdx)*16 + uint16(fineYpix)
	lo := p.readVRAM(patAddr)
	hi := p.readVRAM(patAddr + 8)
	bit := uint(7 - fineXpix)
	colorIndex = (hi>>bit)&1<<1 | (lo>>bit)&1
	return colorIndex, paletteID
}

// spritePixel returns the color index, palette id, background-priority
// bit and whether sprite zero produced this pixel, for the highest
// priority (lowest OAM index) sprite covering column x.
func (p *PPU) spritePixel(x int) (colorIndex, paletteID uint8, behindBg, isSpriteZero bool) {
	height := 8
	if p.PPUCTRL.Value&ctrlSpriteSize16 != 0 {
		height = 16
	}
	for i := 0; i < p.spriteCount; i++ {
		s := p.sprites[i]
		dx := x - int(s.x)
		if dx < 0 || dx >= 8 {
			continue
		}
		if s.attr&0x40 != 0 {
			dx = 7 - dx
		}
		row := p.Scanline - int(s.y)
		if s.attr&0x80 != 0 {
			row = height - 1 - row
		}

		var tileAddr uint16
		if height == 16 {
			table := uint16(s.tile&1) * 0x1000
			tileNum := uint16(s.tile &^ 1)
			if row >= 8 {
				tileNum++
				row -= 8
			}
			tileAddr = table + tileNum*16 + uint16(row)
		} else {
			table := uint16(0)
			if p.PPUCTRL.Value&ctrlSpriteTable != 0 {
				table = 0x1000
			}
			tileAddr = table + uint16(s.tile)*16 + uint16(row)
		}

		lo := p.readVRAM(tileAddr)
		hi := p.readVRAM(tileAddr + 8)
		bit := uint(7 - dx)
		ci := (hi>>bit)&1<<1 | (lo>>bit)&1
		if ci == 0 {
			continue
		}
		return ci, s.attr & 0x3, s.attr&0x20 != 0, i == 0 && p.spriteZeroHere
	}
	return 0, 0, false, false
}

func (p *PPU) renderPixel(x int) {
	mask := p.PPUMASK.Value
	showBg := mask&maskShowBg != 0 && (x >= 8 || mask&maskShowBgLeft != 0)
	showSprites := mask&maskShowSprites != 0 && (x >= 8 || mask&maskShowSpritesLeft != 0)

	var bgColor, bgPal uint8
	if showBg {
		bgColor, bgPal = p.bgPixel(x)
	}
	bgOpaque := showBg && bgColor != 0

	var spColor, spPal uint8
	var spBehind, spZero bool
	if showSprites {
		spColor, spPal, spBehind, spZero = p.spritePixel(x)
	}
	spOpaque := showSprites && spColor != 0

	if spZero && spOpaque && bgOpaque && x < 255 {
		p.PPUSTATUS.Value |= statusSprite0Hit
	}

	var palAddr uint8
	switch {
	case bgOpaque && spOpaque:
		if spBehind {
			palAddr = bgPal*4 + bgColor
		} else {
			palAddr = 0x10 + spPal*4 + spColor
		}
	case bgOpaque:
		palAddr = bgPal*4 + bgColor
	case spOpaque:
		palAddr = 0x10 + spPal*4 + spColor
	default:
		palAddr = 0
	}

	val := p.paletteRAM[normalizePalette(0x3F00+uint16(palAddr))]
	if mask&maskGreyscale != 0 {
		val &= 0x30
	}
	p.setPixel(x, p.Scanline, palette.System[val&0x3F])
}
