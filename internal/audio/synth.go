// Package audio synthesizes the maze chase sound cues and background music
// with beep. Nothing is loaded from disk: every sound is an oscillator
// shaped by an envelope.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample returns the wave value at phase in [0, 1).
func (w WaveType) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone is a fixed-length oscillator with an optional linear pitch slide.
type tone struct {
	wave     WaveType
	from, to float64 // Hz
	phase    float64
	position int
	length   int
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewTone creates a tone of the given duration. A slide from != to sweeps
// the pitch linearly across the tone.
func NewTone(wave WaveType, from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:   wave,
		from:   from,
		to:     to,
		length: rate.N(d),
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(from))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}
		v := t.wave.sample(t.phase, t.rng)
		samples[i][0] = v
		samples[i][1] = v

		freq := t.from
		if t.length > 1 {
			freq += (t.to - t.from) * float64(t.position) / float64(t.length-1)
		}
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope applies attack/release shaping to a stream of known length.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		switch {
		case e.position < e.attack && e.attack > 0:
			vol = float64(e.position) / float64(e.attack)
		case e.position >= releaseStart && e.release > 0:
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Log2(0) is -Inf, so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of a sound: a shaped tone, or a rest when wave < 0.
type note struct {
	wave     WaveType
	from, to float64
	length   time.Duration
}

func rest(d time.Duration) note { return note{wave: -1, length: d} }

// render turns one note into a streamer.
func (n note) render(rate beep.SampleRate) beep.Streamer {
	if n.wave < 0 {
		return beep.Silence(rate.N(n.length))
	}
	attack := n.length / 10
	release := n.length / 3
	return NewEnvelope(NewTone(n.wave, n.from, n.to, n.length, rate), n.length, attack, release, rate)
}

// phrase renders notes one after another.
func phrase(rate beep.SampleRate, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = n.render(rate)
	}
	return beep.Seq(parts...)
}

// loop replays a phrase forever, rebuilding it each pass so envelopes and
// phases restart cleanly.
type loop struct {
	build   func() beep.Streamer
	current beep.Streamer
}

func newLoop(build func() beep.Streamer) beep.Streamer {
	return &loop{build: build, current: build()}
}

func (l *loop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		m, more := l.current.Stream(samples[n:])
		n += m
		if !more || m == 0 {
			l.current = l.build()
		}
	}
	return n, true
}

func (l *loop) Err() error { return nil }
