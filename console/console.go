// Package console wires the CPU, PPU, APU, system bus, controller ports and
// inserted cartridge into the single driver a front-end clocks: construct
// it, insert a cartridge, and feed it clock ticks (or whole frames), draining
// its framebuffer and audio queue as it goes.
package console

import (
	"fmt"

	"nescore/apu"
	"nescore/bus"
	"nescore/cartridge"
	"nescore/cartridge/mappers"
	"nescore/config"
	"nescore/cpu"
	"nescore/ines"
	"nescore/input"
	"nescore/internal/log"
	"nescore/ppu"
)

// Console owns a complete, powered-up NES: CPU, PPU, APU, bus and controller
// ports are constructed and wired together by New; a cartridge is inserted
// and removed independently of that lifetime.
type Console struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Bus  *bus.Bus
	Pads *input.StdControllerPair

	cart *cartridge.Cartridge
}

// New constructs a powered-up console with no cartridge inserted. cfg
// supplies the controller-port wiring and emulation tunables a front-end has
// no business hardcoding.
func New(cfg config.Config) *Console {
	c := &Console{
		CPU:  &cpu.CPU{},
		PPU:  ppu.New(),
		APU:  apu.New(),
		Bus:  bus.New(),
		Pads: input.NewStdControllerPair(cfg.Input),
	}

	c.Bus.CPU = c.CPU
	c.Bus.PPU = c.PPU
	c.Bus.APU = c.APU
	c.Bus.Pads = c.Pads
	c.Bus.Cart = nil

	c.CPU.Bus = c.Bus
	c.PPU.Nmi = c.CPU
	c.APU.CPU = c.CPU
	c.APU.ReadMemory = c.Bus.ReadMemory

	c.PPU.Cart = emptyCartridge{}

	c.Reset()

	log.ModConsole.InfoZ("console powered up").End()
	return c
}

// emptyCartridge stands in for PPU.Cart while no cartridge is inserted: CHR
// reads/writes are declined and mirroring defaults to horizontal, matching
// an NES with nothing in the cartridge slot.
type emptyCartridge struct{}

func (emptyCartridge) PPURead(addr uint16) (uint8, bool)    { return 0, false }
func (emptyCartridge) PPUWrite(addr uint16, val uint8) bool { return false }
func (emptyCartridge) Mirroring() cartridge.Mirroring       { return cartridge.MirrorHorizontal }

// InsertCartridge takes an already decoded iNES rom, selects its mapper and wires it onto
// the bus and PPU. Any previously inserted cartridge is discarded.
func (c *Console) InsertCartridge(rom *ines.Rom) error {
	chrSize := len(rom.CHR)
	if chrSize == 0 {
		chrSize = 8 * 1024 // CHR-RAM cart: bank math still needs a window size
	}
	mapper, err := mappers.New(rom.Mapper(), len(rom.PRG), chrSize, convertMirroring(rom.Mirroring()))
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}

	c.cart = cartridge.New(rom, mapper)
	c.Bus.Cart = c.cart
	c.PPU.Cart = c.cart
	c.Reset()
	return nil
}

// RemoveCartridge returns the console to its empty-slot state.
func (c *Console) RemoveCartridge() {
	c.cart = nil
	c.Bus.Cart = nil
	c.PPU.Cart = emptyCartridge{}
	c.Reset()
}

// CartridgeInfo reports the inserted cartridge's header summary, or false if
// none is inserted.
func (c *Console) CartridgeInfo() (cartridge.Info, bool) {
	if c.cart == nil {
		return cartridge.Info{}, false
	}
	return c.cart.Info(), true
}

// convertMirroring translates an iNES header's mirroring enum to the one the
// cartridge/mapper layer uses; the two differ in both ordinal values and the
// one-screen-A/B vs one-screen-lower/upper naming.
func convertMirroring(m ines.Mirroring) cartridge.Mirroring {
	switch m {
	case ines.MirrorVertical:
		return cartridge.MirrorVertical
	case ines.MirrorSingleScreenA:
		return cartridge.MirrorOneScreenLower
	case ines.MirrorSingleScreenB:
		return cartridge.MirrorOneScreenUpper
	case ines.MirrorFourScreen:
		return cartridge.MirrorFourScreen
	default:
		return cartridge.MirrorHorizontal
	}
}

// Reset powers the CPU, PPU and APU back to their post-reset state and, if a
// cartridge is inserted, lets its mapper re-run its own reset logic. The
// bus reset clears work RAM; the cartridge's PRG-RAM is left untouched.
func (c *Console) Reset() {
	c.Bus.Reset()
	c.PPU.Reset()
	c.APU.Reset()
	c.CPU.Reset()
	if c.cart != nil {
		c.cart.Reset()
	}
	log.ModConsole.InfoZ("console reset").End()
}

// SetControllerState pushes the latest button masks for both controller
// ports; safe to call from a different goroutine than Clock/RunFrame.
func (c *Console) SetControllerState(pad1, pad2 input.Mask) {
	c.Pads.SetState(pad1, pad2)
}

// Framebuffer returns the current 256x240 RGBA frame.
func (c *Console) Framebuffer() []byte { return c.PPU.Framebuffer() }

// DrainAudio copies up to len(dst) pending PCM samples into dst, returning
// the count copied.
func (c *Console) DrainAudio(dst []float32) int { return c.APU.DrainAudio(dst) }

// Clock advances the console by one driver tick: three PPU dots, then either
// one CPU cycle or one CPU halt-cycle if the APU has charged a DMA/DMC
// stall, then one APU cycle. The frame counter and DMC units assert the
// CPU's IRQ line directly through the apu.CPU capability interface as they
// fire, so by the time Tick returns the line already reflects either IRQ
// source; Clock has nothing left to re-assert.
func (c *Console) Clock() {
	for i := 0; i < 3; i++ {
		c.PPU.Tick()
	}
	c.CPU.Clock()
	c.APU.Tick()
}

// RunFrame clocks the console until one full PPU frame has completed,
// returning the resulting framebuffer (the same slice Framebuffer returns).
// Frame completion is measured by the PPU's own frame counter rather than a
// fixed CPU-cycle budget, since a dropped or repeated tick should never
// desynchronize audio/video from the PPU's actual scan position.
func (c *Console) RunFrame() []byte {
	target := c.PPU.Frames + 1
	for c.PPU.Frames < target {
		c.Clock()
	}
	return c.Framebuffer()
}
