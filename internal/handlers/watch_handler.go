package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dq-report-service/internal/services/watch"
)

type WatchHandler struct {
	service *watch.Service
}

func NewWatchHandler(s *watch.Service) *WatchHandler {
	return &WatchHandler{service: s}
}

// Start polls the upload's checks in the background until they settle.
func (h *WatchHandler) Start(c *gin.Context) {
	w, err := h.service.Start(c.Param("uploadId"))
	if errors.Is(err, watch.ErrAlreadyWatching) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"upload_id": w.UploadID, "status": w.Status})
}

func (h *WatchHandler) Get(c *gin.Context) {
	uploadID := c.Param("uploadId")
	w, ok := h.service.Get(uploadID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "upload is not watched"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upload_id":    w.UploadID,
		"status":       w.Status,
		"attempts":     w.Attempts,
		"last_error":   w.LastError,
		"started_at":   w.StartedAt,
		"completed_at": w.CompletedAt,
		"active":       h.service.Active(uploadID),
	})
}

func (h *WatchHandler) Stop(c *gin.Context) {
	if err := h.service.Stop(c.Param("uploadId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "watch stopped"})
}
