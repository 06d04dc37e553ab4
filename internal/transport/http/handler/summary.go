package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-summarizer/internal/app"
	"yt-summarizer/internal/transport/http/middleware"
	"yt-summarizer/internal/transport/http/respond"
)

type SummaryHandler struct {
	summaryService *app.SummaryService
}

type SummarizeRequest struct {
	YoutubeURL string `json:"youtubeUrl"`
}

func NewSummaryHandler(summaryService *app.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Summarize handles POST /api/get-summary.
func (h *SummaryHandler) Summarize(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token payload"})
		return
	}

	// A malformed body is treated the same as a missing URL; binding
	// errors must not mask the required-field message.
	var req SummarizeRequest
	_ = c.ShouldBindJSON(&req)

	summary, err := h.summaryService.Summarize(c.Request.Context(), userID, req.YoutubeURL)
	if err != nil {
		respond.Error(c, err, "Fetching YouTube summary failed, try again!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": app.MsgSummarizeOK,
		"summary": summary,
	})
}

// GetHistory handles GET /api/get-summary-history.
func (h *SummaryHandler) GetHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token payload"})
		return
	}

	history, err := h.summaryService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, err, "Fetching summary history failed, try again later!")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": app.MsgHistoryFetched,
		"data":    history,
	})
}

// DeleteHistory handles DELETE /api/delete-summary-history. Its bodies
// carry a success flag on top of the usual message.
func (h *SummaryHandler) DeleteHistory(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token payload"})
		return
	}

	if err := h.summaryService.DeleteHistory(c.Request.Context(), userID); err != nil {
		if domainErr, isDomain := app.AsDomainError(err); isDomain {
			c.JSON(domainErr.Status(), gin.H{"success": false, "message": domainErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Deleting summary history failed, try again later!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": app.MsgHistoryDeleted,
	})
}
