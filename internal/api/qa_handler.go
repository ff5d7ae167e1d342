package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cse-connect/connect-backend/internal/core"
	"github.com/cse-connect/connect-backend/internal/models"
)

// QAHandler handles questions and their answers.
type QAHandler struct {
	qa     core.QAService
	logger *zap.Logger
}

func NewQAHandler(qa core.QAService, logger *zap.Logger) *QAHandler {
	return &QAHandler{qa: qa, logger: logger}
}

// ListQuestions handles GET /questions
func (h *QAHandler) ListQuestions(c *gin.Context) {
	questions, err := h.qa.ListQuestions(c.Request.Context())
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion handles POST /questions
func (h *QAHandler) CreateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.qa.CreateQuestion(c.Request.Context(), actor, req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// UpdateQuestion handles PUT /questions/:questionId
func (h *QAHandler) UpdateQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.qa.UpdateQuestion(c.Request.Context(), actor, c.Param("questionId"), req); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteQuestion handles DELETE /questions/:questionId. Answers stay.
func (h *QAHandler) DeleteQuestion(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.qa.DeleteQuestion(c.Request.Context(), actor, c.Param("questionId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAnswers handles GET /questions/:questionId/answers
func (h *QAHandler) ListAnswers(c *gin.Context) {
	answers, err := h.qa.ListAnswers(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

// AddAnswer handles POST /questions/:questionId/answers
func (h *QAHandler) AddAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.qa.AddAnswer(c.Request.Context(), actor, c.Param("questionId"), req)
	if err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// UpdateAnswer handles PUT /questions/:questionId/answers/:answerId
func (h *QAHandler) UpdateAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req models.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.qa.UpdateAnswer(c.Request.Context(), actor, c.Param("questionId"), c.Param("answerId"), req); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteAnswer handles DELETE /questions/:questionId/answers/:answerId
func (h *QAHandler) DeleteAnswer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.qa.DeleteAnswer(c.Request.Context(), actor, c.Param("questionId"), c.Param("answerId")); err != nil {
		mapErrorToStatus(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
