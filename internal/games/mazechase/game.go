package mazechase

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-mazechase/internal/actor"
	"github.com/vovakirdan/tui-mazechase/internal/adversary"
	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/items"
	"github.com/vovakirdan/tui-mazechase/internal/levels"
	"github.com/vovakirdan/tui-mazechase/internal/levels/formats"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/round"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeRandom   Mode = "random"
)

// pickupRadius is how close the player's center must come to an item.
const pickupRadius = 0.5

// Package-level settings applied on the next Reset, set by the CLI.
var (
	gameConfig  = config.DefaultMazeChaseConfig()
	gameLogger  *log.Logger
	levelLoader *levels.Loader
	startLevel  string
)

// SetConfig sets the tuning used by new rounds.
func SetConfig(cfg config.MazeChaseConfig) {
	gameConfig = cfg
}

// SetLogger sets the logger handed to every round.
func SetLogger(l *log.Logger) {
	gameLogger = l
}

// SetLevelLoader replaces the embedded campaign with levels from l.
func SetLevelLoader(l *levels.Loader) {
	levelLoader = l
}

// SetStartLevel selects the campaign level the next Reset starts from.
// The empty string means the first level.
func SetStartLevel(id string) {
	startLevel = id
}

// Game implements the maze chase on the arcade platform. Each level is one
// round run by a round.Orchestrator; the game owns the player, detects
// contacts, and moves between levels.
type Game struct {
	mode   Mode
	cfg    config.MazeChaseConfig
	rt     core.RuntimeConfig
	rng    *rand.Rand
	logger *log.Logger
	audio  round.Audio
	start  string // level the next Reset starts from, overrides startLevel

	campaign   *levels.Campaign
	difficulty *config.DifficultyManager
	levelIndex int // index into the campaign
	stage      int // levels cleared this session, drives difficulty
	level      levels.Level

	maze    *maze.Maze
	player  *actor.Player
	orch    *round.Orchestrator
	hud     hudText
	touched map[*adversary.Adversary]bool

	tick         uint64
	pendingScene string
	summaries    []RoundSummary

	paused   bool
	gameOver bool
	tooSmall bool
	noLevel  string // reason shown when no level could be built
}

// New creates a campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewRandom creates an endless game on procedurally generated mazes.
func NewRandom() *Game {
	return &Game{mode: ModeRandom}
}

func init() {
	registry.Register(registry.Info{
		ID:       "mazechase",
		Title:    "Maze Chase",
		Summary:  "Clear the campaign mazes level by level",
		Campaign: true,
	}, func() registry.Game { return New() })
	registry.Register(registry.Info{
		ID:      "mazechase_random",
		Title:   "Maze Chase (Random)",
		Summary: "Endless procedurally generated mazes",
	}, func() registry.Game { return NewRandom() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeRandom {
		return "mazechase_random"
	}
	return "mazechase"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeRandom {
		return "Maze Chase (Random)"
	}
	return "Maze Chase"
}

// SetAudio attaches the audio collaborator used from the next round on.
// A nil interface mutes the game.
func (g *Game) SetAudio(a round.Audio) {
	g.audio = a
}

// StartAt selects the campaign level every later Reset starts from. Unlike
// SetStartLevel it only affects this game instance.
func (g *Game) StartAt(id string) {
	g.start = id
}

// Summaries returns the rounds finished since the last Reset.
func (g *Game) Summaries() []RoundSummary {
	return g.summaries
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rt = cfg
	g.cfg = gameConfig
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.logger = gameLogger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.logger = g.logger.With("game", g.ID())

	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.noLevel = ""
	g.pendingScene = ""
	g.summaries = nil
	g.levelIndex = 0
	g.stage = 0
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	if g.mode == ModeCampaign {
		lvls, err := CampaignLevels()
		if err != nil {
			g.logger.Warn("level source unreadable", "err", err)
		}
		campaign := levels.NewCampaign(lvls)
		g.campaign = campaign
		from := g.start
		if from == "" {
			from = startLevel
			startLevel = "" // Reset after use
		}
		if from != "" {
			if i := campaign.Index(from); i >= 0 {
				g.levelIndex = i
			} else {
				g.logger.Warn("start level not found", "level", from)
			}
		}
	}

	g.loadLevel(0, 0)
}

// CampaignLevels lists the levels campaign mode plays, in order.
func CampaignLevels() ([]levels.Level, error) {
	loader := levelLoader
	if loader == nil {
		loader = levels.Builtin()
	}
	campaign, err := levels.LoadCampaign(loader)
	if err != nil {
		return nil, err
	}
	return campaign.Levels(), nil
}

// BuildOptions returns the level build options derived from cfg.
func BuildOptions(cfg config.MazeChaseConfig, rng *rand.Rand, logger *log.Logger) levels.BuildOptions {
	return levels.BuildOptions{
		Adversaries: cfg.Adversaries.Count,
		Defaults: maze.GenerateParams{
			Width:        cfg.Generator.Width,
			Height:       cfg.Generator.Height,
			WallChance:   cfg.Generator.WallChance,
			PowerPellets: cfg.Generator.PowerPellets,
		},
		Rand:   rng,
		Logger: logger,
	}
}

// currentLevel picks the level definition for levelIndex.
func (g *Game) currentLevel() (levels.Level, error) {
	if g.mode == ModeRandom {
		return levels.Level{
			ID:       fmt.Sprintf("random_%02d", g.stage+1),
			Name:     fmt.Sprintf("Random %d", g.stage+1),
			Generate: &formats.YAMLGenerate{},
		}, nil
	}
	return g.campaign.At(g.levelIndex)
}

// loadLevel builds the maze, actors and round for levelIndex, carrying score
// and lives. Zero lives means a fresh game.
func (g *Game) loadLevel(score, lives int) {
	g.orch = nil
	g.touched = make(map[*adversary.Adversary]bool)

	lvl, err := g.currentLevel()
	if err != nil {
		g.logger.Warn("no level data", "index", g.levelIndex, "err", err)
		g.noLevel = "No level data"
		return
	}
	g.level = lvl

	m, err := lvl.Build(BuildOptions(g.cfg, g.rng, g.logger))
	if err != nil {
		g.logger.Warn("level could not be built", "level", lvl.ID, "err", err)
		g.noLevel = "Level could not be built"
		return
	}
	g.maze = m
	g.layout()

	probe := maze.NewProbe(m)
	start, ok := g.playerStart(lvl, m)
	if !ok {
		g.logger.Warn("level has no open cell for the player", "level", lvl.ID)
		g.noLevel = "Level has no open cell"
		return
	}
	g.player = actor.NewPlayer(probe, start, g.cfg.Player.Speed)
	g.player.TurnTolerance = g.cfg.Player.TurnTolerance

	progress := config.Progress{Score: score, Level: g.stage}
	roster := g.buildRoster(lvl, m, probe, g.difficulty.SpeedScale(progress))

	rc := round.Config{
		Lives:         g.cfg.Round.Lives,
		CountdownStep: g.cfg.Round.CountdownStep,
		FrightWindow:  g.difficulty.FrightWindow(g.cfg.Round.FrightWindow, progress),
		Invincibility: g.cfg.Round.Invincibility,
		EndDelay:      g.cfg.Round.EndDelay,
		GameOverScene: g.cfg.Round.GameOverScene,
		ClearedScene:  g.cfg.Round.ClearedScene,
	}
	setup := round.Setup{
		Field:   items.Place(m),
		Spawner: items.NewSpawner(items.SpawnerConfig{Interval: g.cfg.Bonus.Interval, Lifetime: g.cfg.Bonus.Lifetime}, m, g.rng, g.logger),
		Roster:  roster,
		Score:   score,
		Lives:   lives,
	}
	collab := round.Collaborators{HUD: &g.hud, Scenes: g}
	if g.audio != nil {
		collab.Audio = g.audio
	}

	g.logger.Info("level loaded", "level", lvl.ID, "size", fmt.Sprintf("%dx%d", m.Width(), m.Height()), "adversaries", len(roster))
	g.orch = round.New(rc, setup, collab, g.logger)
}

func (g *Game) playerStart(lvl levels.Level, m *maze.Maze) (maze.Cell, bool) {
	if lvl.Player != nil && m.IsOpen(lvl.Player.Col, lvl.Player.Row) {
		return *lvl.Player, true
	}
	return m.PlayerStart()
}

// buildRoster places one adversary per spawn cell, up to the configured
// count.
func (g *Game) buildRoster(lvl levels.Level, m *maze.Maze, probe *maze.Probe, scale float64) []*adversary.Adversary {
	want := g.cfg.Adversaries.Count
	if lvl.Adversaries > 0 {
		want = lvl.Adversaries
	}
	if want < 0 {
		g.logger.Warn("negative adversary count treated as zero", "level", lvl.ID, "count", want)
		want = 0
	}
	homes := m.Cells(maze.SpawnPoint)
	if len(homes) < want {
		g.logger.Warn("fewer spawn cells than adversaries", "level", lvl.ID, "want", want, "have", len(homes))
		want = len(homes)
	}

	ac := adversary.Config{
		NormalSpeed:     g.cfg.Adversaries.NormalSpeed,
		FrightenedSpeed: g.cfg.Adversaries.FrightenedSpeed,
		ReturningSpeed:  g.cfg.Adversaries.ReturningSpeed,
		FrightSeconds:   g.cfg.Adversaries.FrightSeconds,
	}
	roster := make([]*adversary.Adversary, 0, want)
	for i := 0; i < want; i++ {
		a := adversary.New(i, g.adversaryName(i), probe, homes[i], ac, g.rng, g.logger)
		a.SpeedScale = scale
		roster = append(roster, a)
	}
	return roster
}

func (g *Game) adversaryName(i int) string {
	names := g.cfg.Adversaries.Names
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("adversary-%d", i+1)
}

// LoadScene receives the round's scene transition. It is applied after the
// current step so the round is never torn down mid-update.
func (g *Game) LoadScene(name string) {
	g.pendingScene = name
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.rt.ScreenW,
			ScreenH:  g.rt.ScreenH,
			TickRate: g.rt.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall || g.orch == nil {
		return core.StepResult{State: g.State()}
	}

	dt := g.rt.Delta()

	// Frame-rate phase: countdown, timers, spawner, adversary decisions.
	g.orch.Update(dt)

	// Physics-rate phase: movement, then contacts.
	if g.orch.Phase() == round.Running {
		g.player.Input(input.Intent())
		g.player.Step(dt)
		g.orch.FixedUpdate(dt)
		g.resolveContacts()
	}

	if g.pendingScene != "" {
		g.finishRound(g.pendingScene)
		g.pendingScene = ""
	}

	return core.StepResult{State: g.State()}
}

// finishRound records the round and acts on the scene it handed over.
func (g *Game) finishRound(scene string) {
	o := g.orch
	g.summaries = append(g.summaries, RoundSummary{
		LevelID:   g.level.ID,
		Score:     o.Score(),
		ElapsedMS: int64(o.Elapsed() * 1000),
		LivesLeft: o.Lives(),
		Outcome:   o.Outcome().String(),
	})
	g.logger.Info("scene transition", "scene", scene, "level", g.level.ID, "score", o.Score())

	if o.Outcome() != round.OutcomeCleared {
		g.gameOver = true
		return
	}

	// The campaign loops; difficulty keeps rising with the stage count.
	g.stage++
	if g.mode == ModeCampaign {
		_, next, err := g.campaign.Next(g.levelIndex)
		if err != nil {
			g.gameOver = true
			return
		}
		g.levelIndex = next
	}
	g.loadLevel(o.Score(), o.Lives())
}

// resolveContacts detects the player's overlaps this step and hands them to
// the round. Adversary contacts fire on entry only; a refused transition
// leaves the contact pending for the next step.
func (g *Game) resolveContacts() {
	pos := g.player.Position()

	for _, it := range g.orch.Field().Touching(pos, pickupRadius) {
		g.orch.CollectItem(it)
	}
	for _, b := range g.orch.Spawner().Touching(pos, pickupRadius) {
		g.orch.CollectBonus(b)
	}

	radius := g.cfg.Adversaries.ContactRadius
	for _, a := range g.orch.Roster() {
		if a.Position().Dist(pos) > radius {
			g.touched[a] = false
			continue
		}
		if g.touched[a] {
			continue
		}
		if g.orch.Contact(a) != round.ContactRetry {
			g.touched[a] = true
		}
		if g.orch.Phase() != round.Running {
			return
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := 0
	if g.orch != nil {
		score = g.orch.Score()
	}
	return core.GameState{
		Score:    score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
