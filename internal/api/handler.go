// Package api exposes the evaluator over HTTP.
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dshills/cremis/internal/assessment"
)

// Handler serves questionnaire and submission endpoints.
type Handler struct {
	eval *assessment.Evaluator
}

func NewHandler(e *assessment.Evaluator) *Handler {
	return &Handler{eval: e}
}

// MaxSubmitBytes caps the POST /submit body.
const MaxSubmitBytes = 16 << 10

// SubmitRequest is the body of POST /submit.
type SubmitRequest struct {
	Answers assessment.AnswerSet `json:"answers"`
}

func (h *Handler) ListQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, h.eval.Questionnaire())
}

func (h *Handler) ListTiers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tiers": h.eval.Ladder()})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Submit scores the posted answers. Each request is independent; nothing
// is kept between submissions.
func (h *Handler) Submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxSubmitBytes)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			submissionErrors.WithLabelValues("too_large").Inc()
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		submissionErrors.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.eval.Submit(req.Answers)
	if err != nil {
		var ve *assessment.ValidationErrors
		var ie *assessment.IncompleteError
		switch {
		case errors.As(err, &ve):
			submissionErrors.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Kind.Error(), "details": ve.Errors})
		case errors.As(err, &ie):
			submissionErrors.WithLabelValues("incomplete").Inc()
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": assessment.ErrIncomplete.Error(), "missing": ie.Missing})
		default:
			submissionErrors.WithLabelValues("internal").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	submissions.WithLabelValues(string(result.Tier)).Inc()
	log.Printf("[%s] submit: score=%d tier=%s answered=%d/%d",
		RequestIDFrom(c), result.Score, result.Tier, result.Answered, result.Total)
	c.JSON(http.StatusOK, result)
}
