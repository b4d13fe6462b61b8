package apu

// cpuFreqHz is the NTSC CPU clock the mixer's resampling accumulator is
// timed against.
const cpuFreqHz = 1_789_773

const defaultSampleRate = 44100

// mixer turns the five channels' instantaneous DAC levels into a 44.1kHz
// PCM stream: the non-linear NES mixing formula, a two-pole (high-pass then
// low-pass) DC-blocking filter pair, and a fixed-point accumulator that
// decides which CPU cycles contribute an output sample.
type mixer struct {
	sampleRate uint32
	acc        uint32

	hpPrevIn  float32
	hpPrevOut float32
	lpPrevOut float32

	queue []float32
}

func newMixer() *mixer {
	return &mixer{sampleRate: defaultSampleRate}
}

func (m *mixer) reset() {
	m.acc = 0
	m.hpPrevIn = 0
	m.hpPrevOut = 0
	m.lpPrevOut = 0
	m.queue = m.queue[:0]
}

func mixChannels(p1, p2, tri, noise, dmc uint8) float32 {
	var pulseOut float32
	if p1+p2 > 0 {
		pulseOut = 95.88 / (8128/float32(uint32(p1)+uint32(p2)) + 100)
	}

	tndInput := float32(tri)/8227 + float32(noise)/12241 + float32(dmc)/22638
	var tndOut float32
	if tndInput > 0 {
		tndOut = 159.79 / (100 + 1/tndInput)
	}

	return pulseOut + tndOut
}

// filter applies the spec's single-pole filter pair: a
// 0.996-coefficient DC-blocking high-pass followed by a 0.815-coefficient
// low-pass, in that order.
func (m *mixer) filter(x float32) float32 {
	const hpK = 0.996
	const lpK = 0.815

	hp := hpK * (m.hpPrevOut + x - m.hpPrevIn)
	m.hpPrevIn = x
	m.hpPrevOut = hp

	m.lpPrevOut += lpK * (hp - m.lpPrevOut)
	return clamp1(m.lpPrevOut)
}

func clamp1(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// tick accumulates sampleRate once per CPU cycle and, whenever the
// accumulator passes cpuFreqHz, mixes and filters the channels' current
// output and enqueues one sample. The oldest queued sample is dropped when
// the queue would exceed sampleRate/4 entries, matching an audio consumer
// that drains slower than real time.
func (m *mixer) tick(p1, p2, tri, noise, dmc uint8) {
	m.acc += m.sampleRate
	if m.acc < cpuFreqHz {
		return
	}
	m.acc -= cpuFreqHz

	sample := m.filter(mixChannels(p1, p2, tri, noise, dmc))

	maxQueued := int(m.sampleRate) / 4
	if len(m.queue) >= maxQueued {
		m.queue = m.queue[1:]
	}
	m.queue = append(m.queue, sample)
}

// drain copies up to len(dst) pending samples into dst, removing them from
// the queue, and returns the count copied.
func (m *mixer) drain(dst []float32) int {
	n := copy(dst, m.queue)
	m.queue = m.queue[n:]
	return n
}
