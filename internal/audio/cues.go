package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-mazechase/internal/round"
)

const ms = time.Millisecond

// cueNotes maps each round cue to its phrase. Unknown cues have none.
func cueNotes(c round.Cue) []note {
	switch c {
	case round.CueCountdown:
		return []note{{wave: WaveSquare, from: 440, to: 440, length: 120 * ms}}
	case round.CueGo:
		return []note{{wave: WaveSquare, from: 880, to: 880, length: 300 * ms}}
	case round.CuePellet:
		return []note{{wave: WaveSquare, from: 520, to: 700, length: 50 * ms}}
	case round.CuePower:
		return []note{
			{wave: WaveSaw, from: 220, to: 660, length: 200 * ms},
			{wave: WaveSaw, from: 660, to: 330, length: 150 * ms},
		}
	case round.CueBonus:
		return []note{
			{wave: WaveSquare, from: 987.77, to: 987.77, length: 80 * ms},
			{wave: WaveSquare, from: 1318.51, to: 1318.51, length: 220 * ms},
		}
	case round.CueAdversaryDefeated:
		return []note{{wave: WaveSine, from: 200, to: 1200, length: 250 * ms}}
	case round.CueLifeLost:
		return []note{
			{wave: WaveSaw, from: 600, to: 150, length: 500 * ms},
			{wave: WaveNoise, from: 1, to: 1, length: 150 * ms},
		}
	case round.CueGameOver:
		return []note{
			{wave: WaveSquare, from: 392, to: 392, length: 250 * ms},
			{wave: WaveSquare, from: 330, to: 330, length: 250 * ms},
			{wave: WaveSquare, from: 262, to: 262, length: 500 * ms},
		}
	case round.CueCleared:
		return []note{
			{wave: WaveSquare, from: 523.25, to: 523.25, length: 120 * ms},
			{wave: WaveSquare, from: 659.25, to: 659.25, length: 120 * ms},
			{wave: WaveSquare, from: 783.99, to: 783.99, length: 120 * ms},
			{wave: WaveSquare, from: 1046.5, to: 1046.5, length: 360 * ms},
		}
	}
	return nil
}

// musicNotes is one pass of a music track. MusicNone has no notes.
func musicNotes(m round.Music) []note {
	switch m {
	case round.MusicNormal:
		// Slow bass walk.
		return []note{
			{wave: WaveSine, from: 110, to: 110, length: 250 * ms}, rest(50 * ms),
			{wave: WaveSine, from: 164.81, to: 164.81, length: 250 * ms}, rest(50 * ms),
			{wave: WaveSine, from: 146.83, to: 146.83, length: 250 * ms}, rest(50 * ms),
			{wave: WaveSine, from: 130.81, to: 130.81, length: 250 * ms}, rest(50 * ms),
		}
	case round.MusicFright:
		// Rising and falling siren.
		return []note{
			{wave: WaveSine, from: 400, to: 800, length: 200 * ms},
			{wave: WaveSine, from: 800, to: 400, length: 200 * ms},
		}
	}
	return nil
}

// CueSound returns a finite streamer for c, or nil when c has no sound.
func CueSound(c round.Cue, rate beep.SampleRate) beep.Streamer {
	notes := cueNotes(c)
	if len(notes) == 0 {
		return nil
	}
	return phrase(rate, notes...)
}

// MusicTrack returns an endless streamer for m, or nil for MusicNone.
func MusicTrack(m round.Music, rate beep.SampleRate) beep.Streamer {
	notes := musicNotes(m)
	if len(notes) == 0 {
		return nil
	}
	return newLoop(func() beep.Streamer { return phrase(rate, notes...) })
}
