package server

import (
	"io"
	"net/http"
	"sync"
	"time"

	"aigames/config"
	"aigames/engine"
	"aigames/game"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Server exposes game sessions over HTTP. Each session is driven by one
// request at a time.
type Server struct {
	router   *gin.Engine
	cfg      config.Config
	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	match match
}

type strategyRequest struct {
	Kind          string  `json:"kind"`
	Depth         int     `json:"depth"`
	MaxScore      float64 `json:"max_score"`
	ThreatCutoff  *bool   `json:"threat_cutoff"`
	DefaultWeight float64 `json:"default_weight"`
	Floor         float64 `json:"floor"`
	Seed          uint64  `json:"seed"`
}

type createRequest struct {
	Game     string           `json:"game"`
	Strategy *strategyRequest `json:"strategy"`
}

type moveRequest struct {
	Move string `json:"move" binding:"required"`
}

type sessionResponse struct {
	ID       string     `json:"id"`
	Game     string     `json:"game"`
	Strategy string     `json:"strategy"`
	Board    game.Board `json:"board"`
	Status   string     `json:"status"`
	Message  string     `json:"message,omitempty"`
	CpuMove  string     `json:"cpu_move,omitempty"`
	Moves    []string   `json:"moves"`
}

func New(cfg config.Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	s := &Server{
		router:   router,
		cfg:      cfg,
		sessions: make(map[string]*entry),
	}

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	sessions := router.Group("/sessions")
	sessions.POST("", s.handleCreate)
	sessions.GET("/:id", s.handleGet)
	sessions.POST("/:id/moves", s.handleMove)
	sessions.POST("/:id/reset", s.handleReset)
	sessions.PUT("/:id/strategy", s.handleStrategy)
	sessions.DELETE("/:id", s.handleDelete)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("serving game sessions")
	return s.router.Run(addr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// strategy overlays the request on the configured strategy.
func (s *Server) strategy(req *strategyRequest) config.Strategy {
	cfg := s.cfg.Strategy
	if req == nil {
		return cfg
	}
	if req.Kind != "" {
		cfg.Kind = req.Kind
	}
	if req.Depth != 0 {
		cfg.Search.Depth = req.Depth
	}
	if req.MaxScore != 0 {
		cfg.Search.MaxScore = req.MaxScore
	}
	if req.ThreatCutoff != nil {
		cfg.Search.ThreatCutoff = *req.ThreatCutoff
	}
	if req.DefaultWeight != 0 {
		cfg.Matchbox.DefaultWeight = req.DefaultWeight
	}
	if req.Floor != 0 {
		cfg.Matchbox.Floor = req.Floor
	}
	if req.Seed != 0 {
		cfg.Matchbox.Seed = req.Seed
	}
	return cfg
}

func (s *Server) lookup(c *gin.Context) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.sessions[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	}
	return e, ok
}

func respond(c *gin.Context, status int, id string, m match, result engine.Result) {
	c.JSON(status, sessionResponse{
		ID:       id,
		Game:     m.Game(),
		Strategy: m.Strategy(),
		Board:    result.Board,
		Status:   result.Status.String(),
		Message:  result.Message,
		CpuMove:  m.LastCpuMove(),
		Moves:    m.Moves(),
	})
}

func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, config.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrSessionInProgress):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	// Chunked requests report an unknown length; an empty one reads as EOF.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	kind := req.Game
	if kind == "" {
		kind = s.cfg.Game
	}
	m, err := newMatch(kind, s.strategy(req.Strategy), s.cfg.Chess)
	if err != nil {
		fail(c, err)
		return
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &entry{match: m}
	s.mu.Unlock()
	log.Info().Str("id", id).Str("game", kind).Str("strategy", m.Strategy()).Msg("session created")

	respond(c, http.StatusCreated, id, m, m.Result())
}

func (s *Server) handleGet(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	respond(c, http.StatusOK, c.Param("id"), e.match, e.match.Result())
}

func (s *Server) handleMove(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.match.Result().Status.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "game is over"})
		return
	}
	result, err := e.match.Play(req.Move)
	if err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, c.Param("id"), e.match, result)
}

func (s *Server) handleReset(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.match.Reset()
	respond(c, http.StatusOK, c.Param("id"), e.match, e.match.Result())
}

func (s *Server) handleStrategy(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	var req strategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.match.SetStrategy(s.strategy(&req)); err != nil {
		fail(c, err)
		return
	}
	respond(c, http.StatusOK, c.Param("id"), e.match, e.match.Result())
}

func (s *Server) handleDelete(c *gin.Context) {
	s.mu.Lock()
	_, ok := s.sessions[c.Param("id")]
	delete(s.sessions, c.Param("id"))
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
