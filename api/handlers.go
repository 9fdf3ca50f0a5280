package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/threadmapco/threadmap/pkg/forum"
	"github.com/threadmapco/threadmap/pkg/session"
)

// ErrorResponse is the JSON shape of every non-2xx body. Internal error
// detail stays in the logs; clients get the typed category only.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SessionResponse describes a session's externally visible state.
type SessionResponse struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword,omitempty"`
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
}

// QueryRequest is the body of a session query.
type QueryRequest struct {
	Question string `json:"question"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleCreateSession ingests a raw dataset and arms a new session over it.
// The dataset JSON is the request body; the keyword comes from the keyword
// query param, or is derived from the filename param's
// <keyword>_scraped_data.json convention.
func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		if derived, ok := forum.DetectKeyword(c.Query("filename")); ok {
			keyword = derived
		}
	}
	if keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "keyword or a <keyword>_scraped_data.json filename is required",
		})
	}

	sess := s.registry.Create()
	if err := sess.Initialize(c.Body(), keyword); err != nil {
		s.registry.Remove(sess.ID())

		var malformed *forum.MalformedInputError
		if errors.As(err, &malformed) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: malformed.Error()})
		}
		s.logger.Error("session initialization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "initialization failed"})
	}

	summary, err := sess.Summarize()
	if err != nil {
		s.logger.Error("summary after initialization failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "initialization failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      sess.ID(),
		"status":  sess.Status(),
		"summary": summary,
	})
}

// handleGetSession returns a session's status.
func (s *Server) handleGetSession(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	return c.JSON(SessionResponse{
		ID:      sess.ID(),
		Keyword: sess.Keyword(),
		Status:  sess.Status(),
		Ready:   sess.State() == session.StateReady,
	})
}

// handleDeleteSession drops a session from the registry.
func (s *Server) handleDeleteSession(c *fiber.Ctx) error {
	if !s.registry.Remove(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// handleQuery dispatches a question against a ready session. A question no
// category recognizes returns an empty object, not an error.
func (s *Server) handleQuery(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	var req QueryRequest
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "question is required"})
	}

	result, err := sess.Query(req.Question)
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: session.ErrNotReady.Error()})
		}
		s.logger.Error("query failed", zap.String("session", sess.ID()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "query failed"})
	}

	return c.JSON(result)
}

// handleSummary returns the initial-analysis digest for a ready session.
func (s *Server) handleSummary(c *fiber.Ctx) error {
	sess, ok := s.registry.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "session not found"})
	}

	summary, err := sess.Summarize()
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Error: session.ErrNotReady.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "summary failed"})
	}

	return c.JSON(summary)
}

// handleCacheStats exposes the shared store's counters.
func (s *Server) handleCacheStats(c *fiber.Ctx) error {
	stats := s.store.Stats()
	if stats.LowHitRatio() {
		s.logger.Warn("cache hit ratio below 50% under significant load",
			zap.Float64("hit_ratio", stats.HitRatio()),
		)
	}
	return c.JSON(stats)
}

// handleCacheClear drops every cached entry in the shared store.
func (s *Server) handleCacheClear(c *fiber.Ctx) error {
	s.store.ClearAll()
	s.logger.Info("cache cleared via API")
	return c.JSON(fiber.Map{"cleared": true})
}
