package delivery

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"pulse-backend/internal/summary/domain"
	"pulse-backend/internal/summary/dto"
	"pulse-backend/internal/summary/usecase"

	"github.com/gin-gonic/gin"
)

// SummaryHandler handles content summary HTTP requests
type SummaryHandler struct {
	summaryUsecase usecase.SummaryUsecase
	batchWorker    *usecase.BatchWorker
}

// NewSummaryHandler creates a new SummaryHandler. batchWorker may be nil,
// in which case the batch endpoint answers 503.
func NewSummaryHandler(summaryUsecase usecase.SummaryUsecase, batchWorker *usecase.BatchWorker) *SummaryHandler {
	return &SummaryHandler{
		summaryUsecase: summaryUsecase,
		batchWorker:    batchWorker,
	}
}

// Summarize runs one summarization end to end
// POST /summarize-content
func (h *SummaryHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	userID, ok := resolveUserID(c, req.UserID)
	if !ok {
		return
	}

	summary, err := h.summaryUsecase.SummarizeContent(c.Request.Context(), usecase.SummarizeInput{
		UserID:     userID,
		SourceType: domain.SourceType(req.SourceType),
		SourceID:   req.SourceID,
		Content:    req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummarizeResponse{Success: true, Summary: summary})
}

// BatchSummarize queues items for background summarization
// POST /api/summaries/batch
func (h *SummaryHandler) BatchSummarize(c *gin.Context) {
	if h.batchWorker == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "Batch summarization is not available"})
		return
	}

	var req dto.BatchSummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	items := make([]usecase.SummarizeInput, 0, len(req.Items))
	for _, item := range req.Items {
		userID, ok := resolveUserID(c, item.UserID)
		if !ok {
			return
		}
		items = append(items, usecase.SummarizeInput{
			UserID:     userID,
			SourceType: domain.SourceType(item.SourceType),
			SourceID:   item.SourceID,
			Content:    item.Content,
		})
	}

	queued, dropped := h.batchWorker.QueueBatch(items)
	c.JSON(http.StatusAccepted, dto.BatchSummarizeResponse{Queued: queued, Dropped: dropped})
}

// ListSummaries returns a user's summaries, newest first
// GET /api/summaries?user_id=u1&source_type=email&limit=50&offset=0
func (h *SummaryHandler) ListSummaries(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Query("user_id"))
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultListLimit)))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := usecase.ListFilter{UserID: userID, Limit: limit, Offset: offset}
	if st := c.Query("source_type"); st != "" {
		sourceType := domain.SourceType(st)
		filter.SourceType = &sourceType
	}

	summaries, total, err := h.summaryUsecase.ListSummaries(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if summaries == nil {
		summaries = []*domain.ContentSummary{}
	}

	c.JSON(http.StatusOK, dto.ListSummariesResponse{
		Summaries: summaries,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	})
}

// GetSummary returns one summary owned by the user
// GET /api/summaries/:id?user_id=u1
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, ok := resolveUserID(c, c.Query("user_id"))
	if !ok {
		return
	}

	summary, err := h.summaryUsecase.GetSummary(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// resolveUserID merges the user from a verified token with the one the client sent.
// It writes a 403 and returns false when they disagree.
func resolveUserID(c *gin.Context, requested string) (string, bool) {
	tokenUser := c.GetString("userID")
	if tokenUser == "" {
		return requested, true
	}
	if requested != "" && requested != tokenUser {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "userId does not match the authenticated user"})
		return "", false
	}
	return tokenUser, true
}

func respondError(c *gin.Context, err error) {
	var (
		validationErr  *usecase.ValidationError
		upstreamErr    *usecase.UpstreamError
		persistenceErr *usecase.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Message})
	case errors.Is(err, usecase.ErrSummaryNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Summary not found"})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Failed to generate summary",
			Details: upstreamErr.Error(),
		})
	case errors.As(err, &persistenceErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Failed to save summary",
			Details: persistenceErr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error", Details: err.Error()})
	}
}
