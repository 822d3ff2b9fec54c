package graph

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type Handler struct {
	schema *graphql.Schema
}

func NewHandler(schema *graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// ════════════════════════════════════════════════════════════════
// POST /graphql
// ════════════════════════════════════════════════════════════════

// Serve executes one GraphQL document. Execution errors (validation, resolver
// failures) are part of the 200 response envelope; only an unreadable body
// gets a 400.
func (h *Handler) Serve(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": []gin.H{{"message": "invalid GraphQL request: " + err.Error()}},
		})
		return
	}

	start := time.Now()
	resp := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)

	event := log.Info()
	if len(resp.Errors) > 0 {
		event = log.Warn().Str("first_error", resp.Errors[0].Message)
	}
	event.
		Str("request_id", c.GetString("request_id")).
		Str("operation", req.OperationName).
		Int("errors", len(resp.Errors)).
		Dur("latency_ms", time.Since(start)).
		Msg("GraphQL request")

	c.JSON(http.StatusOK, resp)
}
