package handler

import (
	"context"
	"net/http"
	"time"

	apperrors "case-triage-workers/internal/common/errors"
	"case-triage-workers/internal/common/logger"
	"case-triage-workers/internal/common/observability"
	"case-triage-workers/internal/models"
	"case-triage-workers/internal/triage"

	"github.com/gin-gonic/gin"
)

type Processor interface {
	Process(ctx context.Context, req *models.TriageRequest) (*models.TriageResponse, error)
}

type TriageHandler struct {
	processor Processor
	obs       *observability.Observability
	logger    logger.Logger
}

func NewTriageHandler(processor Processor, obs *observability.Observability, log logger.Logger) *TriageHandler {
	return &TriageHandler{
		processor: processor,
		obs:       obs,
		logger:    log.WithFields(map[string]interface{}{"transport": "http"}),
	}
}

// ProcessEmail handles POST /process_email.
func (h *TriageHandler) ProcessEmail(c *gin.Context) {
	ctx := c.Request.Context()
	start := time.Now()

	var req models.TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid process_email body", map[string]interface{}{"error": err.Error()})
		h.obs.RecordRequest(ctx, "http", "bad_request", time.Since(start))
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: triage.MsgNoEmailData})
		return
	}

	resp, err := h.processor.Process(ctx, &req)
	if err != nil {
		if stdErr, ok := apperrors.AsStandardError(err); ok && stdErr.Code == apperrors.ErrCodeInputMissing {
			h.obs.RecordRequest(ctx, "http", "bad_request", time.Since(start))
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: stdErr.Message})
			return
		}
		h.logger.Error("failed to process email", map[string]interface{}{"error": err.Error()})
		h.obs.RecordRequest(ctx, "http", "error", time.Since(start))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to process email"})
		return
	}

	h.obs.RecordRequest(ctx, "http", string(resp.Status), time.Since(start))
	c.JSON(http.StatusOK, resp)
}
