// internal/httpserver/server.go
//
// HTTP server wiring for the Arabic Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, security headers, timeouts, panic
//     recovery, request IDs, access log, metrics).
//   - Public endpoints: "/", "/health", "/metrics", "/arabic-words.json".
//   - Game endpoints: POST /game/new, GET /game/{id},
//     POST /game/{id}/key, POST /game/{id}/guess, POST /game/{id}/reset.
//   - Daily Challenge endpoints: mounted under /daily (routes_daily.go).
//   - Stats: GET /stats, GET /stats/me.
//   - Persisting finished games to SQLite from the session observer.
//
// Notes:
//   - Sessions live in memory; only finished results reach the database.
//   - The target is never part of a response until the game is over.
//   - Every caller has an anonymous player identity (token.go).

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"

	"github.com/robalobadob/arabic-wordle/assets"
	"github.com/robalobadob/arabic-wordle/internal/arabic"
	"github.com/robalobadob/arabic-wordle/internal/daily"
	"github.com/robalobadob/arabic-wordle/internal/game"
	"github.com/robalobadob/arabic-wordle/internal/metrics"
	"github.com/robalobadob/arabic-wordle/internal/store"
	"github.com/robalobadob/arabic-wordle/internal/words"
)

// Options tune the server.
type Options struct {
	DailySalt     string
	JWTSecret     string
	ClientOrigins []string
	Production    bool

	// AfterFunc schedules cosmetic clears; nil means time.AfterFunc.
	AfterFunc game.AfterFunc
	// Now is the clock for daily dates and tokens; nil means time.Now.
	Now func() time.Time
}

// Server bundles router, dictionary, session registry and result storage.
type Server struct {
	r        *chi.Mux
	dict     *words.Dictionary
	dictJSON []byte
	sessions store.Sessions
	results  *store.Results
	metrics  *metrics.Metrics
	players  *playerTokens
	opts     Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(dict *words.Dictionary, sessions store.Sessions, db *sql.DB, m *metrics.Metrics, opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	dictJSON, err := json.Marshal(dict.Words())
	if err != nil {
		return nil, err
	}
	s := &Server{
		r:        chi.NewRouter(),
		dict:     dict,
		dictJSON: dictJSON,
		sessions: sessions,
		results:  store.NewResults(db),
		metrics:  m,
		players:  &playerTokens{secret: []byte(opts.JWTSecret), secure: opts.Production, now: opts.Now},
		opts:     opts,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))
	s.r.Use(requestIDField)
	s.r.Use(hlog.AccessHandler(accessLog))
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(m.Middleware)
	s.r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		IsDevelopment:      !opts.Production,
	}).Handler)
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.ClientOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Player-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"arabic-wordle","endpoints":["/health","/arabic-words.json","POST /game/new","/daily/*","/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "words": s.dict.Len(), "sessions": s.sessions.Len()})
	})
	s.r.Method(http.MethodGet, "/metrics", m.Handler())

	// Dictionary, at the fixed path clients fetch.
	s.r.Get("/"+assets.DictionaryName, s.handleDictionary)

	// Game endpoints
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Post("/key", s.handleKey)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})

	// Daily Challenge
	s.mountDaily(s.r, db)

	// Stats
	s.r.Get("/stats", s.handleStats)
	s.r.Get("/stats/me", s.handleMyStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestIDField adds chi's request ID to the request logger.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

// ----------------------------- responses -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// ---------------------------- dictionary -----------------------------------

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(s.dictJSON)
}

// ------------------------------ GAME ---------------------------------------

// gameRes is returned by every game endpoint.
type gameRes struct {
	GameID   string    `json:"gameId"`
	Mode     string    `json:"mode"`
	Accepted *bool     `json:"accepted,omitempty"` // guess endpoints only
	State    game.View `json:"state"`
}

func newGameRes(sess *game.Session, st game.State) gameRes {
	return gameRes{GameID: sess.ID, Mode: sess.Mode, State: st.View()}
}

// newSession creates, loads and registers a session for player.
// An empty target is drawn at random from the dictionary.
func (s *Server) newSession(ctx context.Context, player, mode, target string) (*game.Session, game.State, error) {
	var sess *game.Session
	opts := []game.SessionOption{
		game.WithLabels(player, mode),
		game.WithObserver(s.observe(func() *game.Session { return sess }, daily.DateKey(s.opts.Now()))),
	}
	if s.opts.AfterFunc != nil {
		opts = append(opts, game.WithAfterFunc(s.opts.AfterFunc))
	}
	sess = game.NewSession(uuid.NewString(), opts...)
	st := sess.Apply(game.Loaded{Dict: s.dict, Target: target})
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, game.State{}, err
	}
	s.metrics.LiveSessions.Set(float64(s.sessions.Len()))
	return sess, st, nil
}

// handleNewGame starts a free-play game with a random target.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	player := s.players.ensurePlayer(w, r)
	sess, st, err := s.newSession(r.Context(), player, store.ModeFree, "")
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusCreated, newGameRes(sess, st))
}

// session loads the {id} session and checks it belongs to the caller.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	player := s.players.ensurePlayer(w, r)
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || sess.Owner != player {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newGameRes(sess, sess.State()))
}

type keyReq struct {
	Key string `json:"key"` // one letter, "Backspace" or "Enter"
}

// handleKey applies a single key press, exactly like the on-screen keyboard.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	ev, ok := keyEvent(req.Key)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_key")
		return
	}
	if sess.State().Status != game.StatusPlaying {
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes(sess, sess.Apply(ev)))
}

// keyEvent maps a key name to an event.
func keyEvent(key string) (game.Event, bool) {
	switch key {
	case "Enter":
		return game.Submit{}, true
	case "Backspace":
		return game.Backspace{}, true
	}
	if utf8.RuneCountInString(key) != 1 {
		return nil, false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return game.Letter{Rune: r}, true
}

type guessReq struct {
	Guess string `json:"guess"`
}

// handleGuess replaces the current input with the given word and submits it.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.applyGuess(w, r, sess)
}

func (s *Server) applyGuess(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	before := sess.State()
	if before.Status != game.StatusPlaying {
		writeError(w, http.StatusConflict, "game_finished")
		return
	}
	guess := arabic.Normalize(req.Guess)
	if arabic.Len(guess) > game.WordLength {
		// typing would silently truncate; reject like a short word instead
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "wrong_length", "message": game.MsgWrongLength})
		return
	}

	events := make([]game.Event, 0, 2*game.WordLength+1)
	for i, n := 0, arabic.Len(before.CurrentGuess); i < n; i++ {
		events = append(events, game.Backspace{})
	}
	events = append(events, game.TypeWord(guess)...)
	events = append(events, game.Submit{})
	st := sess.ApplyAll(events...)

	accepted := len(st.Guesses) > len(before.Guesses)
	res := newGameRes(sess, st)
	res.Accepted = &accepted
	writeJSON(w, http.StatusOK, res)
}

// handleReset starts a new free-play game in the same session.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if sess.Mode == store.ModeDaily {
		writeError(w, http.StatusConflict, "daily_cannot_reset")
		return
	}
	if !sess.State().Status.Finished() {
		writeError(w, http.StatusConflict, "game_in_progress")
		return
	}
	writeJSON(w, http.StatusOK, newGameRes(sess, sess.Apply(game.Reset{})))
}

// observe returns the session observer: metrics for every change, and a
// result row (best effort) when a game ends. date is the daily puzzle's date;
// free games are dated when they finish.
func (s *Server) observe(session func() *game.Session, date string) game.Observer {
	return func(id string, prev, next game.State, e game.Event) {
		sess := session()
		switch {
		case prev.Status != game.StatusPlaying && next.Status == game.StatusPlaying:
			s.metrics.GamesStarted.WithLabelValues(sess.Mode).Inc()
		case len(next.Guesses) > len(prev.Guesses):
			s.metrics.Guesses.Inc()
		case next.ShakeSeq != prev.ShakeSeq:
			s.metrics.Rejections.WithLabelValues(rejectReason(next.Message)).Inc()
		}

		if prev.Status.Finished() || !next.Status.Finished() {
			return
		}
		s.metrics.GamesFinished.WithLabelValues(sess.Mode, string(next.Status)).Inc()

		day := date
		if sess.Mode != store.ModeDaily {
			day = daily.DateKey(s.opts.Now())
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := s.results.Insert(ctx, store.Result{
			GameID:    id + ":" + strconv.Itoa(next.Generation),
			PlayerID:  sess.Owner,
			Mode:      sess.Mode,
			Date:      day,
			Target:    next.Target,
			Status:    string(next.Status),
			Guesses:   len(next.Guesses),
			ElapsedMs: sess.Elapsed().Milliseconds(),
		})
		if err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("record result")
		}
	}
}

func rejectReason(msg string) string {
	switch msg {
	case game.MsgWrongLength:
		return "wrong_length"
	case game.MsgNotInDict:
		return "not_in_dictionary"
	}
	return "other"
}

// ------------------------------ STATS --------------------------------------

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.results.Summary(r.Context(), "")
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	player := s.players.ensurePlayer(w, r)
	sum, err := s.results.Summary(r.Context(), player)
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
