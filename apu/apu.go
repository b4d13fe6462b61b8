// Package apu implements the audio processing unit: two pulse channels, a
// triangle channel, a noise channel, a delta-modulation (DMC) sample
// channel, the frame-counter sequencer that drives their envelopes/length
// counters/sweep, and the mixer that turns their DAC levels into a 44.1kHz
// PCM stream.
package apu

import (
	"nescore/cpu"
	"nescore/hwio"
	"nescore/internal/log"
)

// CPU is the capability the APU needs from the CPU: asserting/clearing its
// two IRQ sources, querying them for the $4015 status read, and charging DMC
// sample-fetch stall cycles.
type CPU interface {
	SetIRQLine(src cpu.IRQSource, asserted bool)
	IRQLine() cpu.IRQSource
	Stall(n int)
}

// APU holds the $4000-$4017 register bank and per-channel state. CPU and
// ReadMemory must be assigned (by the console driver) before Tick is
// called; ReadMemory is the bus-provided callback the DMC uses to fetch
// sample bytes, since the fetch cannot be expressed as a captured reference
// through the CPU's own instruction pipeline.
type APU struct {
	CPU        CPU
	ReadMemory dmcReader

	regs *hwio.Table

	pulse1   pulseChannel
	pulse2   pulseChannel
	triangle triangleChannel
	noise    noiseChannel
	dmc      dmcChannel

	frameCounter frameCounter
	mixer        *mixer

	cycleEven bool

	STATUS       hwio.Reg8 `hwio:"offset=0x15,rcb,wcb"`
	FRAMECOUNTER hwio.Reg8 `hwio:"offset=0x17,writeonly,wcb"`
}

// New constructs an APU with its register bank mapped. CPU and ReadMemory
// must still be set before Tick is called.
func New() *APU {
	a := &APU{
		pulse1: newPulseChannel(true),
		pulse2: newPulseChannel(false),
		mixer:  newMixer(),
	}
	a.frameCounter.apu = a
	a.dmc.readMemory = func(addr uint16) uint8 {
		if a.ReadMemory == nil {
			return 0
		}
		return a.ReadMemory(addr)
	}

	a.regs = hwio.NewTable("apu-regs")
	hwio.MustInitRegs(a)
	hwio.MustInitRegs(&a.pulse1)
	hwio.MustInitRegs(&a.pulse2)
	hwio.MustInitRegs(&a.triangle)
	hwio.MustInitRegs(&a.noise)
	hwio.MustInitRegs(&a.dmc)

	a.regs.MapBank(0x4000, a, 0)
	a.regs.MapBank(0x4000, &a.pulse1, 0)
	a.regs.MapBank(0x4004, &a.pulse2, 0)
	a.regs.MapBank(0x4008, &a.triangle, 0)
	a.regs.MapBank(0x400C, &a.noise, 0)
	a.regs.MapBank(0x4010, &a.dmc, 0)

	return a
}

// wireCPU is called once CPU/ReadMemory have been assigned, binding the
// sub-units that need a CPU capability directly (rather than through APU).
func (a *APU) wireCPU() {
	a.frameCounter.cpu = a.CPU
	a.dmc.cpu = a.CPU
}

// Reset returns the APU to its post-power-on state: $4017 behaves as if it
// had been written with 0x00, all channels silenced.
func (a *APU) Reset() {
	a.wireCPU()

	a.pulse1.reset()
	a.pulse2.reset()
	a.triangle.reset()
	a.noise.reset()
	a.dmc.reset()
	a.frameCounter.reset()
	a.mixer.reset()
	a.cycleEven = true

	log.ModAPU.InfoZ("apu reset").End()
}

// ReadRegister services a CPU read of $4000-$4017. Only $4015 has a read
// handler; the DMC registers and $4017 are write-only and return 0, and the
// pulse/triangle/noise registers return the last value written to them.
func (a *APU) ReadRegister(addr uint16) uint8 {
	return a.regs.Read8(addr, false)
}

// WriteRegister services a CPU write of $4000-$4017.
func (a *APU) WriteRegister(addr uint16, val uint8) {
	a.regs.Write8(addr, val)
}

func (a *APU) status() uint8 {
	var s uint8
	if a.pulse1.active() {
		s |= 0x01
	}
	if a.pulse2.active() {
		s |= 0x02
	}
	if a.triangle.active() {
		s |= 0x04
	}
	if a.noise.active() {
		s |= 0x08
	}
	if a.dmc.active() {
		s |= 0x10
	}
	if a.CPU.IRQLine()&cpu.FrameCounter != 0 {
		s |= 0x40
	}
	if a.CPU.IRQLine()&cpu.DMC != 0 {
		s |= 0x80
	}
	return s
}

func (a *APU) ReadSTATUS(_ uint8) uint8 {
	s := a.status()
	a.CPU.SetIRQLine(cpu.FrameCounter, false)
	return s
}

func (a *APU) WriteSTATUS(_, val uint8) {
	a.CPU.SetIRQLine(cpu.DMC, false)
	a.pulse1.setEnabled(val&0x01 != 0)
	a.pulse2.setEnabled(val&0x02 != 0)
	a.triangle.setEnabled(val&0x04 != 0)
	a.noise.setEnabled(val&0x08 != 0)
	a.dmc.setEnabled(val&0x10 != 0)
}

func (a *APU) WriteFRAMECOUNTER(_, val uint8) {
	a.frameCounter.write(val, a.cycleEven)
}

// clockQuarterFrame ticks envelopes and the triangle's linear counter.
func (a *APU) clockQuarterFrame() {
	a.pulse1.tickEnvelope()
	a.pulse2.tickEnvelope()
	a.triangle.tickLinearCounter()
	a.noise.tickEnvelope()
}

// clockHalfFrame additionally ticks length counters and pulse sweeps.
func (a *APU) clockHalfFrame() {
	a.pulse1.tickLengthCounter()
	a.pulse2.tickLengthCounter()
	a.triangle.tickLengthCounter()
	a.noise.tickLengthCounter()
	a.pulse1.tickSweep()
	a.pulse2.tickSweep()
}

// Tick advances the APU by one CPU cycle: the frame counter and the
// triangle's timer run every cycle, the pulse/noise timers run on every
// second ("APU") cycle, and the DMC output unit runs every cycle and may
// request a sample fetch (charged as CPU stall cycles).
func (a *APU) Tick() {
	a.frameCounter.tick()
	a.triangle.tickTimer()

	a.cycleEven = !a.cycleEven
	if a.cycleEven {
		a.pulse1.tickTimer()
		a.pulse2.tickTimer()
		a.noise.tickTimer()
	}

	a.dmc.tickTimer()

	a.mixer.tick(a.pulse1.output(), a.pulse2.output(), a.triangle.output(), a.noise.output(), a.dmc.output())
}

// IRQPending reports whether either the frame-counter or DMC IRQ is
// currently asserted on the CPU's IRQ line. The console driver does not
// call it: both sources drive the line directly as they fire.
func (a *APU) IRQPending() bool {
	return a.CPU.IRQLine()&(cpu.FrameCounter|cpu.DMC) != 0
}

// DrainAudio copies up to len(dst) pending PCM samples into dst and removes
// them from the internal queue, returning the count copied.
func (a *APU) DrainAudio(dst []float32) int {
	return a.mixer.drain(dst)
}
