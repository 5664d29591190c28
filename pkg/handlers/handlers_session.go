package handlers

import (
	"net/http"
	"strings"

	"github.com/arnavshah/shift-lookup-go/pkg/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const stateKey = "sessionState"

// SessionMiddleware restores the caller's selection state from its token.
// Requests without a token start from the empty state.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Session-Token")
		if raw == "" {
			raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}

		state := session.State{}
		if raw != "" {
			parsed, err := h.Tokens.Parse(raw)
			if err != nil {
				h.Logger.Debug("rejected session token", zap.Error(err))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session token"})
				c.Abort()
				return
			}
			state = parsed
		}

		c.Set(stateKey, state)
		c.Next()
	}
}

func (h *Handler) restore(c *gin.Context) *session.Session {
	state, _ := c.Get(stateKey)
	st, _ := state.(session.State)
	return session.Restore(h.Lookup, st)
}

// respond issues a fresh token for the session and returns it with the view
func (h *Handler) respond(c *gin.Context, s *session.Session) {
	signed, err := h.Tokens.Issue(s.State())
	if err != nil {
		h.Logger.Error("could not issue session token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"state": s.State(),
		"view":  s.View(),
	})
}

// GetSession returns the view of the caller's current state
func (h *Handler) GetSession(c *gin.Context) {
	h.respond(c, h.restore(c))
}

// SearchSession replaces the search text
func (h *Handler) SearchSession(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := h.restore(c)
	s.SetSearchText(req.Text)
	h.respond(c, s)
}

// SelectSession selects a person. An empty name selects nobody, which
// leaves the caller in the same state as ClearSession.
func (h *Handler) SelectSession(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := h.restore(c)
	s.Select(req.Name)
	h.respond(c, s)
}

// ClearSession returns the caller to the search step
func (h *Handler) ClearSession(c *gin.Context) {
	s := h.restore(c)
	s.Clear()
	h.respond(c, s)
}
