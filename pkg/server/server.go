package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/IlikeChooros/go-chomp/pkg/chomp"
	"github.com/IlikeChooros/go-chomp/pkg/config"
	"github.com/IlikeChooros/go-chomp/pkg/game"
	"github.com/IlikeChooros/go-chomp/pkg/search"
)

var (
	ErrBadRequest = errors.New("malformed request")
	ErrEmptyBoard = errors.New("board has no squares left")
)

// Position to solve, either as notation or as a board size and the moves
// played on it
type SolveRequest struct {
	Notation string   `json:"notation,omitempty"`
	Width    int      `json:"width,omitempty"`
	Height   int      `json:"height,omitempty"`
	Moves    [][2]int `json:"moves,omitempty"`
}

type SolveResponse struct {
	Notation string `json:"notation"`
	Winning  bool   `json:"winning"`
	// null when the position is lost
	Move     []int  `json:"move"`
	Fallback []int  `json:"fallback"`
	Nodes    uint64 `json:"nodes"`
	TimeMs   int    `json:"time_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTP front of the search oracle
type Server struct {
	engine *gin.Engine
	conf   config.ServerConf
	limits search.Limits
}

func New(c config.Config) *Server {
	s := &Server{
		engine: gin.New(),
		conf:   c.Server,
		limits: *c.Limits(),
	}

	s.engine.Use(gin.Recovery(), requestLogger())
	if c.Server.Pprof {
		pprof.Register(s.engine)
	}

	v1 := s.engine.Group("/v1")
	v1.GET("/health", s.health)
	v1.POST("/solve", s.solve)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.conf.Addr,
		Handler: s.engine,
	}

	errc := make(chan error, 1)
	go func() {
		logx.Infof("chomp solver listening on %s", s.conf.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logx.WithContext(c.Request.Context()).WithDuration(time.Since(start)).Infow("request",
			logx.Field("method", c.Request.Method),
			logx.Field("path", c.Request.URL.Path),
			logx.Field("status", c.Writer.Status()),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) solve(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	var req SolveRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(c, http.StatusBadRequest, ErrBadRequest)
		return
	}

	board, err := s.position(ctx, req)
	if err != nil {
		writeError(c, statusOf(err), err)
		return
	}

	searcher := search.NewSearcher()
	limits := s.limits
	searcher.SetLimits(&limits)

	result, err := searcher.Search(ctx, board)
	if err != nil {
		logx.WithContext(ctx).Errorw("solve failed",
			logx.Field("position", board.Notation()),
			logx.Field("reason", result.StopReason.String()),
			logx.Field("nodes", result.Nodes),
		)
		writeError(c, statusOf(err), err)
		return
	}

	resp := SolveResponse{
		Notation: board.Notation(),
		Winning:  result.Winning,
		Nodes:    result.Nodes,
		TimeMs:   result.TimeMs,
	}
	if result.Winning {
		resp.Move = square(result.Move)
	}
	if fallback, ok := search.FallbackMove(board); ok {
		resp.Fallback = square(fallback)
	}
	writeJSON(c, http.StatusOK, resp)
}

// Board described by the request, moves are validated by a game session
func (s *Server) position(ctx context.Context, req SolveRequest) (*chomp.Board, error) {
	var board *chomp.Board

	if req.Notation != "" {
		width, height, err := chomp.NotationSize(req.Notation)
		if err != nil {
			return nil, err
		}
		if s.tooLarge(width, height) {
			return nil, fmt.Errorf("%w: %dx%d has more than %d squares", game.ErrTooLarge, width, height, s.conf.MaxSquares)
		}

		board, err = chomp.ParseNotation(req.Notation)
		if err != nil {
			return nil, err
		}
	} else {
		session, err := game.NewSession(req.Width, req.Height, game.WithMaxSquares(s.conf.MaxSquares))
		if err != nil {
			return nil, err
		}
		for _, m := range req.Moves {
			if err := session.Play(ctx, chomp.NewCoord(m[0], m[1])); err != nil {
				return nil, err
			}
		}
		board = session.Board()
	}

	if board.RemainingCount() == 0 {
		return nil, ErrEmptyBoard
	}
	return board, nil
}

func (s *Server) tooLarge(width, height int) bool {
	limit := s.conf.MaxSquares
	return limit > 0 && (width > limit || height > limit || width*height > limit)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrTooLarge),
		errors.Is(err, ErrEmptyBoard),
		errors.Is(err, search.ErrEmptyBoard):
		return http.StatusUnprocessableEntity
	case errors.Is(err, search.ErrSearchAborted):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadRequest
}

func square(c chomp.Coord) []int {
	return []int{c.Row, c.Col}
}

func writeError(c *gin.Context, code int, err error) {
	writeJSON(c, code, ErrorResponse{Error: err.Error()})
}

func writeJSON(c *gin.Context, code int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(code, "application/json; charset=utf-8", data)
}
