// Package api exposes the engine over HTTP: post a position, get a move.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yousufyasser2005/Youstore/pkg/board"
	"github.com/yousufyasser2005/Youstore/pkg/engine"
)

type Config struct {
	// Seed of every request's engine; zero seeds from the clock.
	Seed         int64
	ThinkTimeout time.Duration
}

type MoveRequest struct {
	FEN        string `json:"fen" binding:"required"`
	Difficulty int    `json:"difficulty"`
}

type MoveResponse struct {
	Move      *string `json:"move"`
	Score     int     `json:"score"`
	Depth     int     `json:"depth"`
	Nodes     int     `json:"nodes"`
	ElapsedMs int64   `json:"elapsed_ms"`
	// FEN is the position after the move.
	FEN string `json:"fen"`
}

type EvaluateRequest struct {
	FEN string `json:"fen" binding:"required"`
}

type EvaluateResponse struct {
	Score                int      `json:"score"`
	Turn                 string   `json:"turn"`
	Checkmate            bool     `json:"checkmate"`
	Stalemate            bool     `json:"stalemate"`
	InsufficientMaterial bool     `json:"insufficient_material"`
	LegalMoves           []string `json:"legal_moves"`
}

type handler struct {
	cfg Config
}

// NewRouter builds the API's routes.
func NewRouter(cfg Config) *gin.Engine {
	h := &handler{cfg: cfg}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/healthz", Health)
	v1 := router.Group("/v1")
	v1.POST("/move", h.Move)
	v1.POST("/evaluate", h.Evaluate)
	return router
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Difficulty == 0 {
		req.Difficulty = engine.DefaultDifficulty
	}
	if req.Difficulty < engine.Easy || req.Difficulty > engine.MaxDifficulty {
		c.JSON(http.StatusBadRequest, gin.H{"error": "difficulty must be between 1 and 5"})
		return
	}
	pos, err := board.FromFEN(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.cfg.ThinkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.ThinkTimeout)
		defer cancel()
	}

	var opts []engine.Option
	if h.cfg.Seed != 0 {
		opts = append(opts, engine.WithSeed(h.cfg.Seed))
	}
	res, err := engine.NewAI(req.Difficulty, opts...).Think(ctx, pos)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "the engine ran out of time"})
			return
		}
		log.Printf("API: think failed for %q: %v", req.FEN, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := MoveResponse{
		Score:     int(res.Score),
		Depth:     res.Depth,
		Nodes:     res.Nodes,
		ElapsedMs: res.Elapsed.Milliseconds(),
		FEN:       pos.FEN(),
	}
	if res.Move != nil {
		move := res.Move.String()
		resp.Move = &move
		pos.Push(*res.Move)
		resp.FEN = pos.FEN()
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pos, err := board.FromFEN(req.FEN)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	moves := pos.LegalMoves()
	legal := make([]string, len(moves))
	for i, m := range moves {
		legal[i] = m.String()
	}
	c.JSON(http.StatusOK, EvaluateResponse{
		Score:                int(engine.Evaluate(pos)),
		Turn:                 pos.Turn().String(),
		Checkmate:            pos.IsCheckmate(),
		Stalemate:            pos.IsStalemate(),
		InsufficientMaterial: pos.IsInsufficientMaterial(),
		LegalMoves:           legal,
	})
}
