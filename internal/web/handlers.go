// Package web serves the persisted maze chase results as a read-only JSON
// API over chi.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-mazechase/internal/registry"
	"github.com/vovakirdan/tui-mazechase/internal/round"
	"github.com/vovakirdan/tui-mazechase/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreSource is the part of the store the API reads.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	RecentRounds(gameID string, limit int) ([]storage.RoundRecord, error)
	LevelBests(gameID string) ([]storage.LevelBest, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// ScoresHandler serves scores, rounds and level records per game.
type ScoresHandler struct {
	store  ScoreSource
	logger *log.Logger
}

// NewScoresHandler creates a handler reading from store.
func NewScoresHandler(store ScoreSource, logger *log.Logger) *ScoresHandler {
	return &ScoresHandler{store: store, logger: logger}
}

// RegisterRoutes mounts the API under /api.
func (h *ScoresHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.listGames)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Use(h.knownGame)
			r.Get("/", h.gameStats)
			r.Get("/scores", h.topScores)
			r.Get("/rounds", h.recentRounds)
			r.Get("/levels", h.levelBests)
		})
	})
}

type gameJSON struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary,omitempty"`
	Campaign   bool       `json:"campaign"`
	Games      int        `json:"games"`
	HighScore  int        `json:"high_score"`
	AvgScore   float64    `json:"avg_score"`
	LastPlayed *time.Time `json:"last_played,omitempty"`
}

type scoreJSON struct {
	Rank      int       `json:"rank"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type roundJSON struct {
	SessionID int64     `json:"session_id"`
	LevelID   string    `json:"level_id"`
	Score     int       `json:"score"`
	Elapsed   string    `json:"elapsed"`
	ElapsedMS int64     `json:"elapsed_ms"`
	LivesLeft int       `json:"lives_left"`
	Outcome   string    `json:"outcome"`
	CreatedAt time.Time `json:"created_at"`
}

type levelJSON struct {
	LevelID      string `json:"level_id"`
	Plays        int    `json:"plays"`
	Clears       int    `json:"clears"`
	FastestClear string `json:"fastest_clear,omitempty"`
}

func (h *ScoresHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ScoresHandler) listGames(w http.ResponseWriter, _ *http.Request) {
	games := registry.List()
	out := make([]gameJSON, 0, len(games))
	for _, g := range games {
		stats, err := h.store.GetGameStats(g.ID)
		if err != nil {
			h.fail(w, err)
			return
		}
		out = append(out, toGameJSON(g, stats))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ScoresHandler) gameStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stats, err := h.store.GetGameStats(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	info, _ := registry.Lookup(id)
	writeJSON(w, http.StatusOK, toGameJSON(info, stats))
}

func (h *ScoresHandler) topScores(w http.ResponseWriter, r *http.Request) {
	scores, err := h.store.TopScores(chi.URLParam(r, "id"), limitParam(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	out := make([]scoreJSON, len(scores))
	for i, s := range scores {
		out[i] = scoreJSON{Rank: i + 1, Score: s.Score, CreatedAt: s.CreatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ScoresHandler) recentRounds(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.store.RecentRounds(chi.URLParam(r, "id"), limitParam(r))
	if err != nil {
		h.fail(w, err)
		return
	}
	out := make([]roundJSON, len(rounds))
	for i, rr := range rounds {
		out[i] = roundJSON{
			SessionID: rr.ScoreID,
			LevelID:   rr.LevelID,
			Score:     rr.Score,
			Elapsed:   round.FormatElapsed(float64(rr.ElapsedMS) / 1000),
			ElapsedMS: rr.ElapsedMS,
			LivesLeft: rr.LivesLeft,
			Outcome:   rr.Outcome,
			CreatedAt: rr.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ScoresHandler) levelBests(w http.ResponseWriter, r *http.Request) {
	bests, err := h.store.LevelBests(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	out := make([]levelJSON, len(bests))
	for i, b := range bests {
		out[i] = levelJSON{LevelID: b.LevelID, Plays: b.Plays, Clears: b.Clears}
		if b.Clears > 0 {
			out[i].FastestClear = round.FormatElapsed(float64(b.FastestClear) / 1000)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// knownGame answers 404 for game IDs nobody registered.
func (h *ScoresHandler) knownGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := registry.Lookup(chi.URLParam(r, "id")); !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *ScoresHandler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func toGameJSON(g registry.Info, s *storage.GameStats) gameJSON {
	out := gameJSON{
		ID:        g.ID,
		Title:     g.Title,
		Summary:   g.Summary,
		Campaign:  g.Campaign,
		Games:     s.GamesCount,
		HighScore: s.HighScore,
		AvgScore:  s.AvgScore,
	}
	if !s.LastPlayed.IsZero() {
		last := s.LastPlayed
		out.LastPlayed = &last
	}
	return out
}

// limitParam reads ?limit=, clamped to [1, maxLimit].
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case err != nil || n <= 0:
		return defaultLimit
	case n > maxLimit:
		return maxLimit
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
