package round

// Cue is a fire-and-forget sound effect request.
type Cue int

const (
	CueCountdown Cue = iota
	CueGo
	CuePellet
	CuePower
	CueBonus
	CueAdversaryDefeated
	CueLifeLost
	CueGameOver
	CueCleared
)

func (c Cue) String() string {
	switch c {
	case CueCountdown:
		return "countdown"
	case CueGo:
		return "go"
	case CuePellet:
		return "pellet"
	case CuePower:
		return "power"
	case CueBonus:
		return "bonus"
	case CueAdversaryDefeated:
		return "adversary_defeated"
	case CueLifeLost:
		return "life_lost"
	case CueGameOver:
		return "game_over"
	case CueCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Music is a background track selection.
type Music int

const (
	MusicNone Music = iota
	MusicNormal
	MusicFright
)

func (m Music) String() string {
	switch m {
	case MusicNormal:
		return "normal"
	case MusicFright:
		return "fright"
	default:
		return "none"
	}
}

// Audio receives cues and music changes. Implementations must not block.
type Audio interface {
	Cue(c Cue)
	Music(m Music)
}

// HUD receives the text the round pushes whenever a value changes.
type HUD interface {
	SetScore(score int)
	SetLives(lives int)
	SetElapsed(text string)
	// SetCountdown shows a countdown step; an empty string hides it.
	SetCountdown(text string)
}

// SceneLoader is called once, by name, when the round is over.
type SceneLoader interface {
	LoadScene(name string)
}

// Collaborators groups the boundary collaborators. Any of them may be nil;
// the matching updates are then skipped.
type Collaborators struct {
	Audio  Audio
	HUD    HUD
	Scenes SceneLoader
}
