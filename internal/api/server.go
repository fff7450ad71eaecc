package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"samuro/internal/ladder"
	"samuro/pkg/config"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	BattleTag string `json:"battle_tag"`
	MMR       int    `json:"mmr"`
	League    string `json:"league"`
	Division  int    `json:"division,omitempty"`
	Points    int    `json:"points"`
	Win       int    `json:"win"`
	Lose      int    `json:"lose"`
}

type SessionResponse struct {
	ID     int64   `json:"id"`
	RoomID string  `json:"room_id"`
	Type   string  `json:"type"`
	Map    string  `json:"map,omitempty"`
	State  string  `json:"state"`
	Winner string  `json:"winner,omitempty"`
	Blue   []int64 `json:"blue"`
	Red    []int64 `json:"red"`
}

// Server is the read-only JSON API over the ladder state.
type Server struct {
	engine *ladder.Manager
}

// NewServer creates an API server over the engine.
func NewServer(engine *ladder.Manager) *Server {
	return &Server{engine: engine}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}

func (srv *Server) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	league := ladder.League(r.URL.Query().Get("league"))
	players, err := srv.engine.Leaderboard(r.Context(), league, 25)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load leaderboard")
		return
	}

	entries := make([]LeaderboardEntry, 0, len(players))
	for n, p := range players {
		entries = append(entries, LeaderboardEntry{
			Rank:      n + 1,
			BattleTag: p.BattleTag,
			MMR:       p.MMR,
			League:    string(p.League),
			Division:  p.Division,
			Points:    p.Stats.Points,
			Win:       p.Stats.Win,
			Lose:      p.Stats.Lose,
		})
	}
	json.NewEncoder(w).Encode(entries)
}

func (srv *Server) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		writeError(w, http.StatusBadRequest, "missing room parameter")
		return
	}

	sess, err := srv.engine.GetActiveSession(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, ladder.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "no active session in room")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load session")
		return
	}

	json.NewEncoder(w).Encode(SessionResponse{
		ID:     sess.ID,
		RoomID: sess.RoomID,
		Type:   string(sess.Type),
		Map:    sess.Map,
		State:  string(sess.State),
		Winner: string(sess.Winner),
		Blue:   sess.Blue,
		Red:    sess.Red,
	})
}

// Start runs the API server. Call it in a goroutine.
func (srv *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/leaderboard", srv.HandleLeaderboard)
	mux.HandleFunc("/api/v1/session", srv.HandleSession)

	port := config.Bot.ApiPort
	if port == "" {
		port = ":8080"
	}

	log.Info().Str("addr", port).Msg("starting API server")
	if err := http.ListenAndServe(port, mux); err != nil {
		log.Fatal().Err(err).Msg("API server failed")
	}
}
