package ladder

import (
	"context"
	"sort"
	"sync"
)

// In-memory repositories for the engine tests.

type memPlayers struct {
	mu      sync.Mutex
	players map[int64]*Player
}

func newMemPlayers() *memPlayers {
	return &memPlayers{players: make(map[int64]*Player)}
}

func (r *memPlayers) Get(_ context.Context, id int64) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlayers) GetByTag(_ context.Context, tag string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.BattleTag == tag {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPlayers) Add(_ context.Context, p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *memPlayers) Save(_ context.Context, p *Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.players[p.ID] = &cp
	return nil
}

func (r *memPlayers) Top(_ context.Context, season string, league League, limit int) ([]*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Player
	for _, p := range r.players {
		if p.Stats.Season != season {
			continue
		}
		if league != "" && p.League != league {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stats.Points != out[j].Stats.Points {
			return out[i].Stats.Points > out[j].Stats.Points
		}
		return out[i].MMR > out[j].MMR
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memSessions struct {
	mu       sync.Mutex
	nextID   int64
	sessions map[int64]*MatchSession
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[int64]*MatchSession)}
}

func (r *memSessions) Add(_ context.Context, s *MatchSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	cp := cloneSession(s)
	r.sessions[s.ID] = cp
	return nil
}

func (r *memSessions) Get(_ context.Context, id int64) (*MatchSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(s), nil
}

func (r *memSessions) GetActiveByRoom(_ context.Context, roomID string) (*MatchSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.RoomID == roomID && s.State == StateActive {
			return cloneSession(s), nil
		}
	}
	return nil, nil
}

func (r *memSessions) Save(_ context.Context, s *MatchSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *memSessions) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func cloneSession(s *MatchSession) *MatchSession {
	cp := *s
	cp.Blue = append([]int64(nil), s.Blue...)
	cp.Red = append([]int64(nil), s.Red...)
	return &cp
}

type predKey struct {
	session int64
	player  int64
}

type memPredictions struct {
	mu    sync.Mutex
	preds map[predKey]*Prediction
}

func newMemPredictions() *memPredictions {
	return &memPredictions{preds: make(map[predKey]*Prediction)}
}

func (r *memPredictions) Upsert(_ context.Context, sessionID, playerID int64, side Winner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds[predKey{sessionID, playerID}] = &Prediction{
		SessionID: sessionID,
		PlayerID:  playerID,
		Side:      side,
	}
	return nil
}

func (r *memPredictions) AllFor(_ context.Context, sessionID int64) ([]Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Prediction
	for _, p := range r.preds {
		if p.SessionID == sessionID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *memPredictions) MarkCorrectness(_ context.Context, sessionID, playerID int64, correct bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.preds[predKey{sessionID, playerID}]
	if !ok {
		return nil
	}
	c := correct
	p.Correct = &c
	return nil
}

func (r *memPredictions) StatsFor(_ context.Context, playerID int64) (correct, wrong int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.preds {
		if p.PlayerID != playerID || p.Correct == nil {
			continue
		}
		if *p.Correct {
			correct++
		} else {
			wrong++
		}
	}
	return correct, wrong, nil
}

type memMatchLog struct {
	mu      sync.Mutex
	entries []MatchLogEntry
}

func newMemMatchLog() *memMatchLog {
	return &memMatchLog{}
}

func (r *memMatchLog) Has(_ context.Context, sessionID, playerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.SessionID == sessionID && e.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMatchLog) Record(_ context.Context, e MatchLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memMatchLog) ByPlayer(_ context.Context, playerID int64, limit int) ([]MatchLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []MatchLogEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].PlayerID != playerID {
			continue
		}
		out = append(out, r.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

type memChangeLog struct {
	mu      sync.Mutex
	entries []ChangeLogEntry
}

func newMemChangeLog() *memChangeLog {
	return &memChangeLog{}
}

func (r *memChangeLog) Add(_ context.Context, e ChangeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func newMemRepos() Repositories {
	return Repositories{
		Players:     newMemPlayers(),
		Sessions:    newMemSessions(),
		Predictions: newMemPredictions(),
		MatchLog:    newMemMatchLog(),
		ChangeLog:   newMemChangeLog(),
	}
}
