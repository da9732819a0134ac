// Package round implements the round lifecycle: countdown, running play with
// score, lives and the fright and invincibility windows, and the ending that
// hands control to the next scene.
package round

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/adversary"
	"github.com/vovakirdan/tui-mazechase/internal/items"
)

// Phase is the round lifecycle phase.
type Phase int

const (
	Countdown Phase = iota
	Running
	Ending
)

func (p Phase) String() string {
	switch p {
	case Countdown:
		return "countdown"
	case Running:
		return "running"
	case Ending:
		return "ending"
	default:
		return "unknown"
	}
}

// Outcome tells why a round ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGameOver
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameOver:
		return "game_over"
	case OutcomeCleared:
		return "cleared"
	default:
		return "none"
	}
}

// CountdownSteps is the text shown for each countdown step.
var CountdownSteps = []string{"3", "2", "1", "GO!"}

// Scores are the fixed contact values.
const (
	ScorePellet    = 10
	ScorePower     = 50
	ScoreBonus     = 100
	ScoreAdversary = 200
)

// Config tunes the round. Times are simulation seconds.
type Config struct {
	Lives         int
	CountdownStep float64
	FrightWindow  float64
	Invincibility float64
	EndDelay      float64

	GameOverScene string
	ClearedScene  string
}

// DefaultConfig returns the stock round tuning.
func DefaultConfig() Config {
	return Config{
		Lives:         3,
		CountdownStep: 1,
		FrightWindow:  10,
		Invincibility: 1,
		EndDelay:      3,
		GameOverScene: "game_over",
		ClearedScene:  "next_level",
	}
}

// Setup is what a round is built from. Score and Lives carry a session
// across levels; zero Lives means Config.Lives.
type Setup struct {
	Field   *items.Field
	Spawner *items.Spawner
	Roster  []*adversary.Adversary
	Score   int
	Lives   int
}

// Orchestrator owns the round state and applies contact outcomes. It is
// single-threaded: the caller drives Update and FixedUpdate from one loop.
type Orchestrator struct {
	cfg    Config
	collab Collaborators
	logger *log.Logger

	field   *items.Field
	spawner *items.Spawner
	roster  []*adversary.Adversary

	phase          Phase
	outcome        Outcome
	tick           uint64
	countdownStep  int
	countdownTimer float64

	score      int
	lives      int
	elapsed    float64
	fright     float64
	invincible float64

	endTimer     float64
	transitioned bool
}

// New creates a round in the Countdown phase and pushes the initial HUD.
func New(cfg Config, setup Setup, collab Collaborators, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	lives := setup.Lives
	if lives <= 0 {
		lives = cfg.Lives
	}
	o := &Orchestrator{
		cfg:     cfg,
		collab:  collab,
		logger:  logger,
		field:   setup.Field,
		spawner: setup.Spawner,
		roster:  setup.Roster,
		score:   setup.Score,
		lives:   lives,
	}
	for _, a := range o.roster {
		a.Reset()
	}

	o.pushScore()
	o.pushLives()
	o.pushElapsed()
	o.showCountdown()
	return o
}

// Phase returns the lifecycle phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Outcome returns why the round ended, or OutcomeNone.
func (o *Orchestrator) Outcome() Outcome { return o.outcome }

// Tick returns the current tick number.
func (o *Orchestrator) Tick() uint64 { return o.tick }

// Score returns the score.
func (o *Orchestrator) Score() int { return o.score }

// Lives returns the lives left.
func (o *Orchestrator) Lives() int { return o.lives }

// Elapsed returns the running time in seconds.
func (o *Orchestrator) Elapsed() float64 { return o.elapsed }

// FrightRemaining returns the global fright window left, zero if inactive.
func (o *Orchestrator) FrightRemaining() float64 { return o.fright }

// Frightened reports whether the global fright window is active.
func (o *Orchestrator) Frightened() bool { return o.fright > 0 }

// Invincible reports whether the post-life-loss window is active.
func (o *Orchestrator) Invincible() bool { return o.invincible > 0 }

// CountdownText returns the countdown step shown, or "" outside Countdown.
func (o *Orchestrator) CountdownText() string {
	if o.phase != Countdown || o.countdownStep >= len(CountdownSteps) {
		return ""
	}
	return CountdownSteps[o.countdownStep]
}

// Roster returns the adversaries of this round.
func (o *Orchestrator) Roster() []*adversary.Adversary { return o.roster }

// Field returns the static items.
func (o *Orchestrator) Field() *items.Field { return o.field }

// Spawner returns the bonus spawner.
func (o *Orchestrator) Spawner() *items.Spawner { return o.spawner }

// Transitioned reports whether the scene transition has been issued.
func (o *Orchestrator) Transitioned() bool { return o.transitioned }

// Update runs the frame-rate phase for dt seconds: the countdown, timers,
// the spawner, adversary decisions, and the ending delay.
func (o *Orchestrator) Update(dt float64) {
	o.tick++

	switch o.phase {
	case Countdown:
		o.updateCountdown(dt)
	case Running:
		o.updateRunning(dt)
	case Ending:
		o.updateEnding(dt)
	}
}

// FixedUpdate runs the physics-rate phase: adversary movement. It does
// nothing outside Running.
func (o *Orchestrator) FixedUpdate(dt float64) {
	if o.phase != Running {
		return
	}
	for _, a := range o.roster {
		a.FixedUpdate(dt, o.tick)
	}
}

func (o *Orchestrator) updateCountdown(dt float64) {
	o.countdownTimer += dt
	for o.phase == Countdown && o.countdownTimer >= o.cfg.CountdownStep {
		o.countdownTimer -= o.cfg.CountdownStep
		o.countdownStep++
		if o.countdownStep >= len(CountdownSteps) {
			o.start()
			return
		}
		o.showCountdown()
	}
}

func (o *Orchestrator) showCountdown() {
	text := CountdownSteps[o.countdownStep]
	if o.collab.HUD != nil {
		o.collab.HUD.SetCountdown(text)
	}
	if o.countdownStep == len(CountdownSteps)-1 {
		o.cue(CueGo)
	} else {
		o.cue(CueCountdown)
	}
}

func (o *Orchestrator) start() {
	o.phase = Running
	if o.collab.HUD != nil {
		o.collab.HUD.SetCountdown("")
	}
	o.music(MusicNormal)
	o.logger.Debug("round started", "lives", o.lives, "score", o.score)
}

func (o *Orchestrator) updateRunning(dt float64) {
	o.elapsed += dt
	o.pushElapsed()

	if o.fright > 0 {
		o.fright -= dt
		if o.fright <= 0 {
			o.fright = 0
			o.endFright()
		}
	}

	if o.invincible > 0 {
		o.invincible -= dt
		if o.invincible < 0 {
			o.invincible = 0
		}
	}

	if o.spawner != nil {
		o.spawner.Update(dt)
	}
	for _, a := range o.roster {
		a.Update(dt, o.tick)
	}

	if o.field != nil && o.field.Total() > 0 && o.field.Remaining() == 0 {
		o.end(OutcomeCleared)
	}
}

func (o *Orchestrator) endFright() {
	for _, a := range o.roster {
		if a.State() != adversary.Defeated {
			a.Request(adversary.Normal, o.tick)
		}
	}
	o.music(MusicNormal)
	o.logger.Debug("fright window closed", "tick", o.tick)
}

func (o *Orchestrator) updateEnding(dt float64) {
	if o.transitioned {
		return
	}
	o.endTimer += dt
	if o.endTimer < o.cfg.EndDelay {
		return
	}
	o.transitioned = true

	scene := o.cfg.GameOverScene
	if o.outcome == OutcomeCleared {
		scene = o.cfg.ClearedScene
	}
	o.logger.Info("round over", "outcome", o.outcome, "score", o.score, "elapsed", FormatElapsed(o.elapsed))
	if o.collab.Scenes != nil {
		o.collab.Scenes.LoadScene(scene)
	}
}

func (o *Orchestrator) end(outcome Outcome) {
	if o.phase == Ending {
		return
	}
	o.phase = Ending
	o.outcome = outcome
	o.fright = 0
	o.invincible = 0
	o.music(MusicNone)
	if outcome == OutcomeCleared {
		o.cue(CueCleared)
	} else {
		o.cue(CueGameOver)
	}
}

// CollectItem applies a player contact with a static item. It reports
// whether the item was taken; an already collected item changes nothing.
func (o *Orchestrator) CollectItem(it *items.Item) bool {
	if o.phase != Running || o.field == nil || !o.field.Take(it) {
		return false
	}

	switch it.Kind {
	case items.PowerItem:
		o.addScore(ScorePower)
		o.cue(CuePower)
		o.beginFright()
	default:
		o.addScore(ScorePellet)
		o.cue(CuePellet)
	}
	return true
}

// CollectBonus applies a player contact with a bonus item.
func (o *Orchestrator) CollectBonus(b *items.Bonus) bool {
	if o.phase != Running || o.spawner == nil || !o.spawner.Take(b) {
		return false
	}
	o.addScore(ScoreBonus)
	o.cue(CueBonus)
	return true
}

// beginFright resets the global window to full length and asks every
// adversary that is not Defeated to become Frightened. Adversaries that are
// already Frightened keep their own countdown.
func (o *Orchestrator) beginFright() {
	o.fright = o.cfg.FrightWindow
	for _, a := range o.roster {
		if a.State() != adversary.Defeated {
			a.Request(adversary.Frightened, o.tick)
		}
	}
	o.music(MusicFright)
}

// ContactResult is the effect of a player-adversary contact.
type ContactResult int

const (
	// ContactIgnored means the contact had no effect and is settled.
	ContactIgnored ContactResult = iota
	// ContactRetry means the adversary refused the transition this tick; the
	// contact stays pending.
	ContactRetry
	ContactLifeLost
	ContactDefeated
)

func (r ContactResult) String() string {
	switch r {
	case ContactRetry:
		return "retry"
	case ContactLifeLost:
		return "life_lost"
	case ContactDefeated:
		return "defeated"
	default:
		return "ignored"
	}
}

// Contact applies a player contact with a.
func (o *Orchestrator) Contact(a *adversary.Adversary) ContactResult {
	if o.phase != Running {
		return ContactIgnored
	}

	switch a.State() {
	case adversary.Normal:
		if o.invincible > 0 {
			return ContactIgnored
		}
		o.loseLife()
		return ContactLifeLost
	case adversary.Frightened:
		if !a.Request(adversary.Defeated, o.tick) {
			return ContactRetry
		}
		o.addScore(ScoreAdversary)
		o.cue(CueAdversaryDefeated)
		return ContactDefeated
	default:
		return ContactIgnored
	}
}

func (o *Orchestrator) loseLife() {
	o.cue(CueLifeLost)
	if o.lives > 1 {
		o.lives--
		o.invincible = o.cfg.Invincibility
		o.pushLives()
		o.logger.Debug("life lost", "lives", o.lives)
		return
	}
	o.lives = 0
	o.pushLives()
	o.end(OutcomeGameOver)
}

func (o *Orchestrator) addScore(n int) {
	if n <= 0 {
		return
	}
	o.score += n
	o.pushScore()
}

func (o *Orchestrator) pushScore() {
	if o.collab.HUD != nil {
		o.collab.HUD.SetScore(o.score)
	}
}

func (o *Orchestrator) pushLives() {
	if o.collab.HUD != nil {
		o.collab.HUD.SetLives(o.lives)
	}
}

func (o *Orchestrator) pushElapsed() {
	if o.collab.HUD != nil {
		o.collab.HUD.SetElapsed(FormatElapsed(o.elapsed))
	}
}

func (o *Orchestrator) cue(c Cue) {
	if o.collab.Audio != nil {
		o.collab.Audio.Cue(c)
	}
}

func (o *Orchestrator) music(m Music) {
	if o.collab.Audio != nil {
		o.collab.Audio.Music(m)
	}
}
