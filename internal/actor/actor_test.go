package actor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-mazechase/internal/core"
	"github.com/vovakirdan/tui-mazechase/internal/maze"
)

const dt = 1.0 / 60.0

// loopCodes is a rectangular loop around a wall block:
//
//	#######
//	#.....#
//	#.###.#
//	#.....#
//	#######
var loopCodes = [][]int{
	{1, 2, 2, 2, 2, 2, 1},
	{2, 0, 5, 5, 5, 5, 2},
	{2, 5, 4, 4, 4, 5, 2},
	{2, 5, 5, 5, 5, 5, 2},
	{1, 2, 2, 2, 2, 2, 1},
}

func newProbe(t *testing.T) *maze.Probe {
	t.Helper()
	m, _, err := maze.New(loopCodes)
	if err != nil {
		t.Fatalf("maze.New() failed: %v", err)
	}
	return maze.NewProbe(m)
}

func TestFromIntent(t *testing.T) {
	tests := []struct {
		intent   core.Vec
		expected Direction
	}{
		{core.V(0, 0), DirNone},
		{core.V(1, 0), DirRight},
		{core.V(-1, 0), DirLeft},
		{core.V(0, -1), DirUp},
		{core.V(0, 1), DirDown},
		{core.V(1, 1), DirRight},   // tie goes horizontal
		{core.V(-0.2, 0.9), DirDown}, // dominant axis
	}

	for _, tc := range tests {
		if got := FromIntent(tc.intent); got != tc.expected {
			t.Errorf("FromIntent(%v) = %v, expected %v", tc.intent, got, tc.expected)
		}
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%v opposite twice should be itself", d)
		}
		if d.Vec().Add(d.Opposite().Vec()) != (core.Vec{}) {
			t.Errorf("%v and its opposite should cancel", d)
		}
	}
}

func TestWalkerHaltsAtWall(t *testing.T) {
	w := NewWalker(newProbe(t), maze.Cell{Col: 1, Row: 1})
	w.Steer(DirRight)

	for range 300 {
		w.Advance(4, dt)
		if w.Pos.X > 5 {
			t.Fatalf("walker passed the wall: x = %f", w.Pos.X)
		}
	}

	if w.Pos != core.CellCenter(5, 1) {
		t.Errorf("walker should rest at (5,1), got %v", w.Pos)
	}
	if !w.Halted {
		t.Error("walker should be halted against the wall")
	}
	if moved := w.Advance(4, dt); moved != 0 {
		t.Errorf("halted walker moved %f, expected zero displacement", moved)
	}
}

func TestWalkerRejectsBlockedDirection(t *testing.T) {
	w := NewWalker(newProbe(t), maze.Cell{Col: 1, Row: 1})
	w.Steer(DirUp)

	if w.Dir != DirNone {
		t.Errorf("blocked heading should not be committed, got %v", w.Dir)
	}
	if moved := w.Advance(4, dt); moved != 0 {
		t.Errorf("walker moved %f toward a wall", moved)
	}
	if w.Intended != DirUp {
		t.Errorf("blocked request should stay buffered, got %v", w.Intended)
	}
}

func TestWalkerBufferedTurn(t *testing.T) {
	w := NewWalker(newProbe(t), maze.Cell{Col: 2, Row: 1})
	w.Steer(DirRight)
	w.Steer(DirDown) // (2,2) is a wall; taken later at (5,1)

	if w.Dir != DirRight {
		t.Fatalf("turn into a wall should be buffered, dir = %v", w.Dir)
	}

	for range 120 {
		w.Advance(4, dt)
	}

	if w.Dir != DirDown {
		t.Errorf("buffered turn should have been taken, dir = %v", w.Dir)
	}
	if math.Abs(w.Pos.X-5) > 1e-9 {
		t.Errorf("walker should have turned at column 5, pos = %v", w.Pos)
	}
	if w.Pos.Y <= 1 {
		t.Errorf("walker should be heading down, pos = %v", w.Pos)
	}
}

func TestWalkerImmediateReverse(t *testing.T) {
	w := NewWalker(newProbe(t), maze.Cell{Col: 2, Row: 1})
	w.Steer(DirRight)
	w.Advance(4, dt)
	w.Steer(DirLeft)

	if w.Dir != DirLeft {
		t.Errorf("reverse into an open corridor should commit, dir = %v", w.Dir)
	}
}

func TestWalkerReverseBesideWall(t *testing.T) {
	// (0,1) is a wall; leaving (1,1) and turning back must still commit.
	w := NewWalker(newProbe(t), maze.Cell{Col: 1, Row: 1})
	w.Steer(DirRight)
	w.Advance(4, dt)
	w.Steer(DirLeft)

	if w.Dir != DirLeft {
		t.Fatalf("reverse toward the cell just left should commit, dir = %v", w.Dir)
	}

	for range 30 {
		w.Advance(4, dt)
	}
	if !w.Halted || math.Abs(w.Pos.X-1) > 1e-9 {
		t.Errorf("walker should halt at the center of (1,1), pos = %v halted = %v", w.Pos, w.Halted)
	}
}

// TestWalkerNeverEntersClosedCell drives a walker with random steering and
// checks that every cell it overlaps is open.
func TestWalkerNeverEntersClosedCell(t *testing.T) {
	probe := newProbe(t)
	m := probe.Maze()
	rng := rand.New(rand.NewSource(2024))
	w := NewWalker(probe, maze.Cell{Col: 1, Row: 1})

	for i := range 5000 {
		if i%7 == 0 {
			w.Steer(Directions[rng.Intn(4)])
		}
		w.Advance(3+rng.Float64()*4, dt)

		for _, x := range []float64{math.Floor(w.Pos.X + 1e-9), math.Ceil(w.Pos.X - 1e-9)} {
			for _, y := range []float64{math.Floor(w.Pos.Y + 1e-9), math.Ceil(w.Pos.Y - 1e-9)} {
				if !m.IsOpen(int(x), int(y)) {
					t.Fatalf("tick %d: walker at %v overlaps closed cell (%v, %v)", i, w.Pos, x, y)
				}
			}
		}
	}
}

func TestStepMover(t *testing.T) {
	s := NewStepMover(newProbe(t), maze.Cell{Col: 1, Row: 1})

	if s.Begin(DirUp) {
		t.Error("step into a wall should be refused")
	}
	if !s.Begin(DirRight) {
		t.Fatal("step into an open cell should be accepted")
	}
	if s.Begin(DirDown) {
		t.Error("a second destination should be refused while moving")
	}

	arrived := false
	for range 60 {
		if s.Advance(2, dt) {
			arrived = true
			break
		}
	}
	if !arrived {
		t.Fatal("step mover never reached its destination")
	}
	if s.Pos != core.CellCenter(2, 1) {
		t.Errorf("step mover should snap to (2,1), got %v", s.Pos)
	}
	if s.Moving() {
		t.Error("step mover should be idle after arrival")
	}
	if s.Cell() != (maze.Cell{Col: 2, Row: 1}) {
		t.Errorf("Cell() = %v, expected (2,1)", s.Cell())
	}
}

func TestPlayerInput(t *testing.T) {
	p := NewPlayer(newProbe(t), maze.Cell{Col: 1, Row: 1}, 4)
	p.Input(core.V(0, 1))
	for range 15 {
		p.Step(dt)
	}

	if p.Facing() != DirDown {
		t.Errorf("Facing() = %v, expected down", p.Facing())
	}
	if p.Position().Y <= 1 {
		t.Errorf("player should have moved down, pos = %v", p.Position())
	}
	if p.Home() != (maze.Cell{Col: 1, Row: 1}) {
		t.Errorf("Home() = %v, expected (1,1)", p.Home())
	}
}
