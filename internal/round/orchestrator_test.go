package round

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-mazechase/internal/adversary"
	"github.com/vovakirdan/tui-mazechase/internal/items"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

// roundCodes:
//
//	########
//	#S.oo.S#
//	########
var roundCodes = [][]int{
	{1, 2, 2, 2, 2, 2, 2, 1},
	{2, 8, 5, 6, 6, 5, 8, 2},
	{1, 2, 2, 2, 2, 2, 2, 1},
}

type recordingHUD struct {
	scores     []int
	lives      []int
	countdowns []string
	elapsed    string
}

func (h *recordingHUD) SetScore(score int)       { h.scores = append(h.scores, score) }
func (h *recordingHUD) SetLives(lives int)       { h.lives = append(h.lives, lives) }
func (h *recordingHUD) SetElapsed(text string)   { h.elapsed = text }
func (h *recordingHUD) SetCountdown(text string) { h.countdowns = append(h.countdowns, text) }

type recordingAudio struct {
	cues  []Cue
	music []Music
}

func (a *recordingAudio) Cue(c Cue)     { a.cues = append(a.cues, c) }
func (a *recordingAudio) Music(m Music) { a.music = append(a.music, m) }

func (a *recordingAudio) count(c Cue) int {
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordingScenes struct {
	loaded []string
}

func (s *recordingScenes) LoadScene(name string) { s.loaded = append(s.loaded, name) }

type fixture struct {
	o      *Orchestrator
	hud    *recordingHUD
	audio  *recordingAudio
	scenes *recordingScenes
	maze   *maze.Maze
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, _, err := maze.New(roundCodes)
	if err != nil {
		t.Fatalf("maze.New() failed: %v", err)
	}
	probe := maze.NewProbe(m)
	rng := rand.New(rand.NewSource(1))

	var roster []*adversary.Adversary
	for i, home := range m.Cells(maze.SpawnPoint) {
		roster = append(roster, adversary.New(i, "adv", probe, home, adversary.DefaultConfig(), rng, nil))
	}

	f := &fixture{
		hud:    &recordingHUD{},
		audio:  &recordingAudio{},
		scenes: &recordingScenes{},
		maze:   m,
	}
	setup := Setup{
		Field:   items.Place(m),
		Spawner: items.NewSpawner(items.SpawnerConfig{Interval: 1000, Lifetime: 10}, m, rng, nil),
		Roster:  roster,
	}
	f.o = New(DefaultConfig(), setup, Collaborators{Audio: f.audio, HUD: f.hud, Scenes: f.scenes}, nil)
	return f
}

// run advances the round by seconds in quarter-second frames.
func (f *fixture) run(seconds float64) {
	for i := 0; i < int(seconds*4); i++ {
		f.o.Update(0.25)
		f.o.FixedUpdate(0.25)
	}
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	f.run(4)
	if f.o.Phase() != Running {
		t.Fatalf("Phase() = %v after countdown, want running", f.o.Phase())
	}
}

func (f *fixture) item(t *testing.T, col int) *items.Item {
	t.Helper()
	it, ok := f.o.Field().At(maze.Cell{Col: col, Row: 1})
	if !ok {
		t.Fatalf("no item at column %d", col)
	}
	return it
}

func TestCountdownSequence(t *testing.T) {
	f := newFixture(t)

	if f.o.Phase() != Countdown {
		t.Fatalf("initial Phase() = %v, want countdown", f.o.Phase())
	}
	if f.o.CountdownText() != "3" {
		t.Errorf("CountdownText() = %q, want 3", f.o.CountdownText())
	}

	f.run(3)
	if f.o.Phase() != Countdown || f.o.CountdownText() != "GO!" {
		t.Errorf("after 3s: phase %v text %q, want countdown GO!", f.o.Phase(), f.o.CountdownText())
	}

	f.run(1)
	want := []string{"3", "2", "1", "GO!", ""}
	if len(f.hud.countdowns) != len(want) {
		t.Fatalf("countdowns = %q, want %q", f.hud.countdowns, want)
	}
	for i := range want {
		if f.hud.countdowns[i] != want[i] {
			t.Errorf("countdown[%d] = %q, want %q", i, f.hud.countdowns[i], want[i])
		}
	}
	if f.o.Phase() != Running {
		t.Errorf("Phase() = %v, want running", f.o.Phase())
	}
	if f.o.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0 at start", f.o.Elapsed())
	}
}

func TestContactsIgnoredDuringCountdown(t *testing.T) {
	f := newFixture(t)

	if got := f.o.Contact(f.o.Roster()[0]); got != ContactIgnored {
		t.Errorf("Contact() = %v during countdown, want ignored", got)
	}
	if f.o.CollectItem(f.item(t, 2)) {
		t.Error("items must not be collected during countdown")
	}
	if f.o.Lives() != 3 || f.o.Score() != 0 {
		t.Errorf("lives %d score %d, want 3 and 0", f.o.Lives(), f.o.Score())
	}
}

func TestLifeLossAndInvincibility(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	adv := f.o.Roster()[0]

	if got := f.o.Contact(adv); got != ContactLifeLost {
		t.Fatalf("first contact = %v, want life lost", got)
	}
	if f.o.Lives() != 2 || !f.o.Invincible() {
		t.Fatalf("lives %d invincible %v, want 2 and true", f.o.Lives(), f.o.Invincible())
	}

	if got := f.o.Contact(adv); got != ContactIgnored {
		t.Errorf("contact inside window = %v, want ignored", got)
	}
	if f.o.Lives() != 2 {
		t.Errorf("Lives() = %d inside window, want 2", f.o.Lives())
	}

	f.run(1)
	if f.o.Invincible() {
		t.Fatal("invincibility should have cleared")
	}
	f.o.Contact(adv)
	if f.o.Lives() != 1 {
		t.Errorf("Lives() = %d after window, want 1", f.o.Lives())
	}

	want := []int{3, 2, 1}
	for i, l := range want {
		if f.hud.lives[i] != l {
			t.Errorf("HUD lives[%d] = %d, want %d", i, f.hud.lives[i], l)
		}
	}
}

func TestGameOverTransitionsOnce(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	adv := f.o.Roster()[0]

	for f.o.Lives() > 0 {
		f.o.Contact(adv)
		f.run(1)
	}
	if f.o.Phase() != Ending || f.o.Outcome() != OutcomeGameOver {
		t.Fatalf("phase %v outcome %v, want ending game over", f.o.Phase(), f.o.Outcome())
	}
	if got := f.o.Contact(adv); got != ContactIgnored {
		t.Errorf("contact after game over = %v, want ignored", got)
	}
	if f.o.Lives() != 0 {
		t.Errorf("Lives() = %d, want 0", f.o.Lives())
	}

	f.run(10)
	if len(f.scenes.loaded) != 1 {
		t.Fatalf("scene loads = %v, want exactly one", f.scenes.loaded)
	}
	if f.scenes.loaded[0] != "game_over" {
		t.Errorf("loaded scene %q, want game_over", f.scenes.loaded[0])
	}
	if f.audio.count(CueGameOver) != 1 {
		t.Errorf("game over cue played %d times, want 1", f.audio.count(CueGameOver))
	}
}

func TestEndingWaitsForDelay(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	adv := f.o.Roster()[0]
	for f.o.Lives() > 0 {
		f.o.Contact(adv)
		f.run(1)
	}
	// One of the three ending seconds already ran in the loop above.
	if len(f.scenes.loaded) != 0 {
		t.Fatalf("scene loaded before the delay: %v", f.scenes.loaded)
	}
	f.run(3)
	if !f.o.Transitioned() {
		t.Error("Transitioned() = false after the delay")
	}
}

func TestScoring(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	if !f.o.CollectItem(f.item(t, 2)) {
		t.Fatal("pellet should be collected")
	}
	if f.o.Score() != ScorePellet {
		t.Errorf("score after pellet = %d, want %d", f.o.Score(), ScorePellet)
	}

	spawned := f.o.Spawner().Update(1000)
	if len(spawned) != 1 {
		t.Fatalf("spawned %d bonuses, want 1", len(spawned))
	}
	if !f.o.CollectBonus(spawned[0]) {
		t.Fatal("bonus should be collected")
	}
	if f.o.CollectBonus(spawned[0]) {
		t.Error("second bonus collection should be refused")
	}

	power := f.item(t, 3)
	f.o.CollectItem(power)
	if f.o.Score() != 10+ScoreBonus+ScorePower {
		t.Errorf("score = %d, want %d", f.o.Score(), 10+ScoreBonus+ScorePower)
	}

	f.run(0.25)
	adv := f.o.Roster()[0]
	if got := f.o.Contact(adv); got != ContactDefeated {
		t.Fatalf("contact with frightened = %v, want defeated", got)
	}
	if adv.State() != adversary.Defeated {
		t.Errorf("adversary state = %v, want defeated", adv.State())
	}
	if got := f.o.Contact(adv); got != ContactIgnored {
		t.Errorf("contact with defeated = %v, want ignored", got)
	}
	if f.o.Score() != 10+ScoreBonus+ScorePower+ScoreAdversary {
		t.Errorf("score = %d after defeat", f.o.Score())
	}

	for i := 1; i < len(f.hud.scores); i++ {
		if f.hud.scores[i] < f.hud.scores[i-1] {
			t.Errorf("score decreased: %v", f.hud.scores)
		}
	}
}

func TestCollectTwiceScoresOnce(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	it := f.item(t, 2)

	f.o.CollectItem(it)
	if f.o.CollectItem(it) {
		t.Error("second collection should be refused")
	}
	if f.o.Score() != ScorePellet {
		t.Errorf("Score() = %d, want %d", f.o.Score(), ScorePellet)
	}
}

func TestPowerSkipsDefeatedAdversary(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	normal, defeated := f.o.Roster()[0], f.o.Roster()[1]

	defeated.Request(adversary.Frightened, 10000)
	defeated.Request(adversary.Defeated, 10001)

	f.o.CollectItem(f.item(t, 3))

	if normal.State() != adversary.Frightened {
		t.Errorf("normal adversary = %v, want frightened", normal.State())
	}
	if defeated.State() != adversary.Defeated {
		t.Errorf("defeated adversary = %v, want defeated", defeated.State())
	}
	if f.o.Score() != ScorePower {
		t.Errorf("Score() = %d, want %d", f.o.Score(), ScorePower)
	}
	if got := f.audio.music[len(f.audio.music)-1]; got != MusicFright {
		t.Errorf("music = %v, want fright", got)
	}
}

func TestFrightWindowResetsToFull(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.o.CollectItem(f.item(t, 3))
	f.run(5)
	if got := f.o.FrightRemaining(); got != 5 {
		t.Fatalf("FrightRemaining() = %v, want 5", got)
	}

	f.o.CollectItem(f.item(t, 4))
	if got := f.o.FrightRemaining(); got != DefaultConfig().FrightWindow {
		t.Errorf("FrightRemaining() = %v after second power, want full window", got)
	}
}

func TestFrightExpiryRestoresNormal(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.o.CollectItem(f.item(t, 3))
	f.run(10)

	if f.o.Frightened() {
		t.Fatal("fright window should have closed")
	}
	for i, a := range f.o.Roster() {
		if a.State() != adversary.Normal {
			t.Errorf("adversary %d = %v, want normal", i, a.State())
		}
	}
	if got := f.audio.music[len(f.audio.music)-1]; got != MusicNormal {
		t.Errorf("music = %v, want normal", got)
	}
}

func TestLevelCleared(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	for _, it := range f.o.Field().Items() {
		f.o.CollectItem(it)
	}
	f.run(0.25)

	if f.o.Phase() != Ending || f.o.Outcome() != OutcomeCleared {
		t.Fatalf("phase %v outcome %v, want ending cleared", f.o.Phase(), f.o.Outcome())
	}
	f.run(3)
	if len(f.scenes.loaded) != 1 || f.scenes.loaded[0] != "next_level" {
		t.Errorf("scene loads = %v, want [next_level]", f.scenes.loaded)
	}
}

func TestCarriedSession(t *testing.T) {
	m, _, err := maze.New(roundCodes)
	if err != nil {
		t.Fatal(err)
	}
	o := New(DefaultConfig(), Setup{Field: items.Place(m), Score: 500, Lives: 2}, Collaborators{}, nil)

	if o.Score() != 500 || o.Lives() != 2 {
		t.Errorf("score %d lives %d, want 500 and 2", o.Score(), o.Lives())
	}
}

func TestNilCollaborators(t *testing.T) {
	m, _, err := maze.New(roundCodes)
	if err != nil {
		t.Fatal(err)
	}
	o := New(DefaultConfig(), Setup{Field: items.Place(m)}, Collaborators{}, nil)

	for i := 0; i < 40; i++ {
		o.Update(0.25)
	}
	it, _ := o.Field().At(maze.Cell{Col: 3, Row: 1})
	if !o.CollectItem(it) {
		t.Error("collection should work without collaborators")
	}
	if o.Elapsed() == 0 {
		t.Error("elapsed time should advance without collaborators")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:000"},
		{1.5, "00:01:500"},
		{61.234, "01:01:234"},
		{3599.999, "59:59:999"},
		{-1, "00:00:000"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.seconds); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
