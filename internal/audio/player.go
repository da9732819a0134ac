package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-mazechase/internal/round"
)

// Config controls the player.
type Config struct {
	Enabled    bool
	Volume     float64 // 0..1
	SampleRate int
}

// DefaultConfig returns a half-volume 44.1kHz player.
func DefaultConfig() Config {
	return Config{Enabled: true, Volume: 0.5, SampleRate: 44100}
}

// Player plays round cues and music through the speaker. It implements
// round.Audio. Until Init succeeds every call is a no-op, so a machine
// without an audio device still runs the game silently.
type Player struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	mixer  *beep.Mixer
	music  *beep.Ctrl
	track  round.Music
	ready  bool
	muted  bool
	lock   func()
	unlock func()
	logger *log.Logger
}

var _ round.Audio = (*Player)(nil)

// NewPlayer creates an uninitialized player.
func NewPlayer(cfg Config, logger *log.Logger) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.Volume < 0 {
		cfg.Volume = 0
	} else if cfg.Volume > 1 {
		cfg.Volume = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		mixer:  &beep.Mixer{},
		lock:   func() {},
		unlock: func() {},
		logger: logger,
	}
}

// Init opens the speaker. A disabled player stays silent and returns nil.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio unavailable, continuing silently", "err", err)
		return err
	}
	speaker.Play(p.mixer)
	p.lock = speaker.Lock
	p.unlock = speaker.Unlock
	p.ready = true
	p.logger.Debug("audio ready", "rate", p.cfg.SampleRate)
	return nil
}

// Cue plays a one-shot sound over whatever is already playing.
func (p *Player) Cue(c round.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.muted {
		return
	}
	s := CueSound(c, p.rate)
	if s == nil {
		return
	}
	p.lock()
	p.mixer.Add(newVolume(s, p.cfg.Volume))
	p.unlock()
}

// Music switches the background track. Requesting the current track keeps
// it playing from where it is.
func (p *Player) Music(m round.Music) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if m == p.track {
		return
	}
	p.track = m
	if !p.ready {
		return
	}

	p.lock()
	defer p.unlock()
	p.stopMusic()
	s := MusicTrack(m, p.rate)
	if s == nil {
		return
	}
	p.music = &beep.Ctrl{Streamer: newVolume(s, p.cfg.Volume*0.6), Paused: p.muted}
	p.mixer.Add(p.music)
}

// stopMusic drops the current track. A Ctrl with a nil streamer drains,
// which removes it from the mixer. Caller holds the speaker lock.
func (p *Player) stopMusic() {
	if p.music != nil {
		p.music.Streamer = nil
		p.music = nil
	}
}

// Track returns the last requested music track.
func (p *Player) Track() round.Music {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// ToggleMute flips mute and reports whether sound is now on.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.ready && p.music != nil {
		p.lock()
		p.music.Paused = p.muted
		p.unlock()
	}
	return !p.muted
}

// Close silences everything. The speaker itself stays open for reuse.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	p.lock()
	p.stopMusic()
	p.mixer.Clear()
	p.unlock()
	p.track = round.MusicNone
}
