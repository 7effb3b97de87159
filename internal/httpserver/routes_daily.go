// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's game
//   - GET  /daily/leaderboard → fetch top 20 winners for today (or a given date)
//
// Each player can finish the daily puzzle once per day (enforced by DB + the
// in-memory session map). Sessions are ordinary game sessions in daily mode,
// so GET /game/{id} and /key work on them too.
// Deterministic word selection is based on date + salt.

package httpserver

import (
	"database/sql"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/arabic-wordle/internal/daily"
	"github.com/robalobadob/arabic-wordle/internal/game"
	"github.com/robalobadob/arabic-wordle/internal/store"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	sessions map[string]string // session IDs keyed by playerID|date
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router, db *sql.DB) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(db),
		salt:     s.opts.DailySalt,
		sessions: make(map[string]string),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/guess", dd.handleGuess)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today returns today's date key and target word.
func (d *dailyServer) today() (date, target string) {
	now := d.srv.opts.Now()
	_, target = daily.Target(d.srv.dict, now, d.salt)
	return daily.DateKey(now), target
}

// current returns the player's live session for date, if any.
func (d *dailyServer) current(r *http.Request, key string) (*game.Session, bool) {
	d.mu.Lock()
	id, ok := d.sessions[key]
	d.mu.Unlock()
	if !ok {
		return nil, false
	}
	sess, err := d.srv.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, false
	}
	return sess, true
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string   `json:"date"`
	Played bool     `json:"played"`
	Game   *gameRes `json:"game,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
// - If the player already has a DB row for today → Played=true, no game.
// - Otherwise create/reuse an in-memory session and return it.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	player := d.srv.players.ensurePlayer(w, r)
	date, target := d.today()

	played, err := d.store.AlreadyPlayed(r.Context(), player, date)
	if err != nil {
		log.Error().Err(err).Msg("daily already played")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := player + "|" + date
	if sess, ok := d.current(r, key); ok {
		res := newGameRes(sess, sess.State())
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Game: &res})
		return
	}

	sess, st, err := d.srv.newSession(r.Context(), player, store.ModeDaily, target)
	if err != nil {
		log.Error().Err(err).Msg("save daily session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	d.mu.Lock()
	d.sessions[key] = sess.ID
	d.mu.Unlock()

	res := newGameRes(sess, st)
	writeJSON(w, http.StatusCreated, dailyNewRes{Date: date, Game: &res})
}

// -----------------------------------------------------------------------------
// /daily/guess

// handleGuess submits a guess for today's session.
// Requires a session started by /daily/new; a finished one returns 409.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	player := d.srv.players.ensurePlayer(w, r)
	date, _ := d.today()

	sess, ok := d.current(r, player+"|"+date)
	if !ok {
		writeError(w, http.StatusConflict, "no_session")
		return
	}
	d.srv.applyGuess(w, r, sess)
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
