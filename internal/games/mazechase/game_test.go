package mazechase

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-mazechase/internal/adversary"
	"github.com/vovakirdan/tui-mazechase/internal/config"
	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/levels"
	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/round"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// useLevels points the campaign at an in-memory level set for one test.
func useLevels(t *testing.T, files map[string]string) {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys["lv/"+name] = &fstest.MapFile{Data: []byte(data)}
	}
	SetLevelLoader(levels.NewLoader(fsys, "lv", nil))
	t.Cleanup(func() { SetLevelLoader(nil) })
}

func steps(g *Game, n int, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	for i := 0; i < n; i++ {
		g.Step(in)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"mazechase", "mazechase_random"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("registry.Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	for _, newGame := range []func() *Game{New, NewRandom} {
		g1, g2 := newGame(), newGame()
		g1.Reset(testConfig(12345))
		g2.Reset(testConfig(12345))

		in := core.NewInputFrame()
		for i := 0; i < 900; i++ {
			in.Clear()
			switch {
			case i > 300 && i < 400:
				in.Set(core.ActionRight)
			case i >= 400 && i < 500:
				in.Set(core.ActionDown)
			case i >= 500:
				in.Set(core.ActionLeft)
			}
			g1.Step(in)
			g2.Step(in)
		}

		s1, s2 := g1.Snapshot(), g2.Snapshot()
		if !reflect.DeepEqual(s1, s2) {
			t.Errorf("%s: snapshots differ:\n%+v\n%+v", g1.ID(), s1, s2)
		}
	}
}

func TestCountdownFreezesPlayer(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	start := g.Snapshot().Player

	steps(g, 200, core.ActionRight)

	snap := g.Snapshot()
	if snap.State != StateCountdown {
		t.Fatalf("State = %s, want countdown", snap.State)
	}
	if snap.Player != start {
		t.Errorf("player moved during countdown: %v -> %v", start, snap.Player)
	}

	steps(g, 100, core.ActionRight)
	if g.Snapshot().Player == start {
		t.Error("player should move once the round runs")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))
	steps(g, 300)

	steps(g, 1, core.ActionPause)
	before := g.Snapshot()
	steps(g, 60)
	after := g.Snapshot()

	if after.State != StatePaused {
		t.Fatalf("State = %s, want paused", after.State)
	}
	if before.Elapsed != after.Elapsed || !reflect.DeepEqual(before.Adversaries, after.Adversaries) {
		t.Error("simulation advanced while paused")
	}
	if !g.State().Paused {
		t.Error("State().Paused = false")
	}
}

func TestLevelClearedAdvances(t *testing.T) {
	useLevels(t, map[string]string{
		"a.yaml": "id: a\ngrid: [\"12221\", \"20552\", \"12221\"]\n",
		"b.yaml": "id: b\ngrid: [\"12221\", \"20652\", \"12221\"]\n",
	})
	g := New()
	g.Reset(testConfig(1))

	steps(g, 600, core.ActionRight)

	summaries := g.Summaries()
	if len(summaries) != 1 {
		t.Fatalf("Summaries() = %d rounds, want 1", len(summaries))
	}
	if summaries[0].Outcome != "cleared" || summaries[0].LevelID != "a" || summaries[0].Score != 20 {
		t.Errorf("summary = %+v, want cleared a with 20 points", summaries[0])
	}

	snap := g.Snapshot()
	if snap.Level != "b" {
		t.Errorf("Level = %q, want b", snap.Level)
	}
	if snap.Score != 20 || snap.Lives != 3 {
		t.Errorf("score %d lives %d, want 20 and 3 carried over", snap.Score, snap.Lives)
	}
	if g.State().GameOver {
		t.Error("clearing a level must not end the game")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	// The adversary patrols the same corridor the idle player stands in.
	useLevels(t, map[string]string{
		"trap.yaml": "id: trap\ngrid: [\"12221\", \"20582\", \"12221\"]\n",
	})
	g := New()
	g.Reset(testConfig(7))

	for i := 0; i < 120*60 && !g.State().GameOver; i++ {
		steps(g, 1)
	}
	if !g.State().GameOver {
		t.Fatalf("game never ended: %+v", g.Snapshot())
	}

	snap := g.Snapshot()
	if snap.Lives != 0 || snap.State != StateGameOver {
		t.Errorf("lives %d state %s, want 0 and game_over", snap.Lives, snap.State)
	}
	if s := g.Summaries(); len(s) != 1 || s[0].Outcome != "game_over" {
		t.Errorf("Summaries() = %+v, want one game_over round", s)
	}

	tick := snap.Tick
	steps(g, 120)
	if g.Snapshot().Tick != tick+120 || !g.State().GameOver {
		t.Error("game over state should hold until restart")
	}

	steps(g, 1, core.ActionRestart)
	snap = g.Snapshot()
	if g.State().GameOver || snap.Lives != 3 || snap.Score != 0 || snap.Tick != 0 {
		t.Errorf("after restart: %+v", snap)
	}
}

func TestNoLevelIsNotFatal(t *testing.T) {
	useLevels(t, map[string]string{})
	g := New()
	g.Reset(testConfig(1))

	steps(g, 10, core.ActionRight)
	if got := g.Snapshot().State; got != StateNoLevel {
		t.Errorf("State = %s, want no_level", got)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "No level data") {
		t.Error("no-level overlay not rendered")
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(1))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"╔", "╝", "Maze Chase", "Score: 0", "M", "·"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q", want)
		}
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 10, ScreenH: 5, TickRate: 60})

	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if got := g.Snapshot().State; got != StatePausedSmall {
		t.Fatalf("State = %s, want paused_small_window", got)
	}

	elapsed := g.Snapshot().Elapsed
	steps(g, 400)
	if g.Snapshot().Elapsed != elapsed {
		t.Error("simulation advanced while the window was too small")
	}
}

func TestStartAt(t *testing.T) {
	useLevels(t, map[string]string{
		"a.yaml": "id: a\ngrid: [\"12221\", \"20552\", \"12221\"]\n",
		"b.yaml": "id: b\ngrid: [\"12221\", \"20652\", \"12221\"]\n",
	})

	lvls, err := CampaignLevels()
	if err != nil {
		t.Fatalf("CampaignLevels() failed: %v", err)
	}
	if len(lvls) != 2 || lvls[0].ID != "a" || lvls[1].ID != "b" {
		t.Fatalf("CampaignLevels() = %v, want [a b]", lvls)
	}

	tests := []struct {
		start string
		want  string
	}{
		{"", "a"},
		{"b", "b"},
		{"missing", "a"},
	}
	for _, tt := range tests {
		g := New()
		g.StartAt(tt.start)
		g.Reset(testConfig(1))
		if got := g.Snapshot().Level; got != tt.want {
			t.Errorf("StartAt(%q): Level = %q, want %q", tt.start, got, tt.want)
		}
		g.Reset(testConfig(2))
		if got := g.Snapshot().Level; got != tt.want {
			t.Errorf("StartAt(%q) after restart: Level = %q, want %q", tt.start, got, tt.want)
		}
	}
}

// useConfig swaps the tuning for one test.
func useConfig(t *testing.T, edit func(cfg *config.MazeChaseConfig)) {
	t.Helper()
	cfg := config.DefaultMazeChaseConfig()
	edit(&cfg)
	SetConfig(cfg)
	t.Cleanup(func() { SetConfig(config.DefaultMazeChaseConfig()) })
}

// standoff starts a round with one adversary parked at (3,1), a power item
// at (4,1), and the player at (1,1). The adversary has zero speed so only
// the player's position decides contact.
func standoff(t *testing.T) (*Game, *adversary.Adversary) {
	t.Helper()
	useLevels(t, map[string]string{
		"s.yaml": "id: s\ngrid: [\"12222221\", \"20586552\", \"12222221\"]\n",
	})
	useConfig(t, func(cfg *config.MazeChaseConfig) {
		cfg.Adversaries.Count = 1
		cfg.Adversaries.NormalSpeed = 0
		cfg.Adversaries.FrightenedSpeed = 0
	})

	g := New()
	g.Reset(testConfig(1))
	for i := 0; g.orch.Phase() != round.Running; i++ {
		if i > 1000 {
			t.Fatal("countdown never finished")
		}
		steps(g, 1)
	}
	roster := g.orch.Roster()
	if len(roster) != 1 {
		t.Fatalf("roster = %d adversaries, want 1", len(roster))
	}
	return g, roster[0]
}

func TestSustainedContactCostsOneLife(t *testing.T) {
	g, _ := standoff(t)

	g.player.Pos = core.V(3.1, 1)
	steps(g, 180) // well past the invincibility window

	if got := g.orch.Lives(); got != 2 {
		t.Errorf("Lives() = %d after one long overlap, want 2", got)
	}
}

func TestContactRefiresAfterLeaving(t *testing.T) {
	g, _ := standoff(t)

	g.player.Pos = core.V(3.1, 1)
	steps(g, 1)
	if got := g.orch.Lives(); got != 2 {
		t.Fatalf("Lives() = %d after first contact, want 2", got)
	}

	g.player.Pos = core.V(1, 1)
	steps(g, 120)

	g.player.Pos = core.V(3.1, 1)
	steps(g, 1)
	if got := g.orch.Lives(); got != 1 {
		t.Errorf("Lives() = %d after re-entering contact, want 1", got)
	}
}

func TestPowerDuringContactDefeatsNextStep(t *testing.T) {
	g, a := standoff(t)
	before := g.orch.Score()

	// Within pickup range of the power item and contact range of the
	// adversary at once.
	g.player.Pos = core.V(3.55, 1)
	steps(g, 1)

	if a.State() != adversary.Frightened {
		t.Fatalf("State() = %s, want frightened on the pickup step", a.State())
	}
	if got := g.orch.Score() - before; got != round.ScorePower {
		t.Errorf("score gained = %d on the pickup step, want %d", got, round.ScorePower)
	}
	if got := g.orch.Lives(); got != 3 {
		t.Errorf("Lives() = %d, want 3", got)
	}

	steps(g, 1)
	if a.State() != adversary.Defeated {
		t.Fatalf("State() = %s, want defeated on the following step", a.State())
	}
	if got := g.orch.Score() - before; got != round.ScorePower+round.ScoreAdversary {
		t.Errorf("score gained = %d, want %d", got, round.ScorePower+round.ScoreAdversary)
	}
}

func TestNegativeCountsAreNotFatal(t *testing.T) {
	useConfig(t, func(cfg *config.MazeChaseConfig) {
		cfg.Adversaries.Count = -1
		cfg.Generator.PowerPellets = -1
	})

	for _, newGame := range []func() *Game{New, NewRandom} {
		g := newGame()
		g.Reset(testConfig(3))
		if g.orch == nil {
			t.Fatalf("%s: no round built", g.ID())
		}
		if got := len(g.orch.Roster()); got != 0 {
			t.Errorf("%s: roster = %d adversaries, want 0", g.ID(), got)
		}
		steps(g, 10)
	}
}
