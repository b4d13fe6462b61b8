package apu

import (
	"testing"

	"nescore/cpu"
)

type stubCPU struct {
	irq   cpu.IRQSource
	stall int
}

func (c *stubCPU) SetIRQLine(src cpu.IRQSource, asserted bool) {
	if asserted {
		c.irq |= src
	} else {
		c.irq &^= src
	}
}
func (c *stubCPU) IRQLine() cpu.IRQSource { return c.irq }
func (c *stubCPU) Stall(n int)            { c.stall += n }

func newTestAPU() (*APU, *stubCPU) {
	a := New()
	c := &stubCPU{}
	a.CPU = c
	a.ReadMemory = func(addr uint16) uint8 { return 0xAA }
	a.Reset()
	return a, c
}

func TestPulseLengthCounterSilencesChannel(t *testing.T) {
	a, _ := newTestAPU()
	a.WriteRegister(0x4015, 0x01) // enable pulse1
	a.WriteRegister(0x4000, 0x00) // halt=0, so the length counter actually ticks down
	a.WriteRegister(0x4003, 0x08) // length table[1] = 254

	if !a.pulse1.active() {
		t.Fatal("pulse1 should be active right after a length load")
	}
	for i := 0; i < 254; i++ {
		a.pulse1.tickLengthCounter()
	}
	if a.pulse1.active() {
		t.Fatal("pulse1 length counter should have reached zero")
	}
}

func TestPulseMutedBelowMinimumPeriod(t *testing.T) {
	a, _ := newTestAPU()
	a.WriteRegister(0x4015, 0x01)
	a.WriteRegister(0x4000, 0x3F) // constant volume 15
	a.WriteRegister(0x4002, 0x02) // period low = 2
	a.WriteRegister(0x4003, 0x08) // period high = 0, period = 2 < 8

	if a.pulse1.output() != 0 {
		t.Fatal("pulse with period < 8 should be muted regardless of duty/volume")
	}
}

func TestFrameCounterFourStepAssertsIRQ(t *testing.T) {
	a, c := newTestAPU()
	a.WriteRegister(0x4017, 0x00) // four-step, IRQ not inhibited
	for i := 0; i < fourStepBounds[len(fourStepBounds)-1]+4; i++ {
		a.Tick()
	}
	if c.IRQLine()&cpu.FrameCounter == 0 {
		t.Fatal("expected frame IRQ asserted at the end of the four-step sequence")
	}
}

func TestStatusReadClearsFrameIRQ(t *testing.T) {
	a, c := newTestAPU()
	c.SetIRQLine(cpu.FrameCounter, true)

	got := a.ReadRegister(0x4015)
	if got&0x40 == 0 {
		t.Fatal("status read should report the pending frame IRQ")
	}
	if c.IRQLine()&cpu.FrameCounter != 0 {
		t.Fatal("status read should clear the frame IRQ")
	}
}

func TestDMCSampleFetchStallsCPU(t *testing.T) {
	a, c := newTestAPU()
	a.WriteRegister(0x4012, 0x00) // sample addr = 0xC000
	a.WriteRegister(0x4013, 0x00) // sample len = 1
	a.WriteRegister(0x4015, 0x10) // enable DMC, starts the sample

	a.dmc.fetchSample()
	if c.stall != 4 {
		t.Fatalf("expected a sample fetch to charge 4 CPU stall cycles, got %d", c.stall)
	}
	if a.dmc.active() {
		t.Fatal("a one-byte sample should have exhausted its length after one fetch")
	}
}

func TestDMCTickTimerEventuallyFetches(t *testing.T) {
	a, c := newTestAPU()
	a.WriteRegister(0x4010, 0x0F) // fastest rate
	a.WriteRegister(0x4012, 0x00)
	a.WriteRegister(0x4013, 0x00)
	a.WriteRegister(0x4015, 0x10)
	a.dmc.timer = a.dmc.period // sync the timer to the rate just selected

	for i := 0; i < 8*(int(a.dmc.period)+1); i++ {
		a.dmc.tickTimer()
	}
	if c.stall == 0 {
		t.Fatal("expected repeated timer ticks to eventually trigger a sample fetch")
	}
}

func TestMixerProducesSamplesAtSampleRate(t *testing.T) {
	a, _ := newTestAPU()
	const cycles = cpuFreqHz / 100 // a hundredth of a second, well under the queue cap
	for i := 0; i < cycles; i++ {
		a.Tick()
	}
	want := int(defaultSampleRate) / 100
	buf := make([]float32, defaultSampleRate)
	n := a.DrainAudio(buf)
	if n < want-2 || n > want+2 {
		t.Fatalf("drained %d samples for %d cycles, want ~%d", n, cycles, want)
	}
}

func TestMixerDropsOldestWhenQueueFull(t *testing.T) {
	a, _ := newTestAPU()
	for i := 0; i < cpuFreqHz; i++ {
		a.Tick()
	}
	maxQueued := int(defaultSampleRate) / 4
	buf := make([]float32, defaultSampleRate)
	n := a.DrainAudio(buf)
	if n != maxQueued {
		t.Fatalf("queue held %d samples after overflowing for a full second, want cap %d", n, maxQueued)
	}
}
