package controllers

import (
	"net/http"

	"mealguard/models"
	"mealguard/services"

	"github.com/gin-gonic/gin"
)

type LogInput struct {
	ImageURL string `json:"image_url"`
	FoodName string `json:"food_name" binding:"required"`
	Analysis string `json:"analysis"`
	IsSafe   *bool  `json:"is_safe" binding:"required"`
}

type LogController struct {
	logs *services.LogService
}

func NewLogController(logs *services.LogService) *LogController {
	return &LogController{logs: logs}
}

func logJSON(l models.FoodLog) gin.H {
	return gin.H{
		"id":         l.ID,
		"image_url":  l.ImageData,
		"food_name":  l.FoodName,
		"analysis":   l.Analysis,
		"is_safe":    l.IsSafe,
		"created_at": l.CreatedAt,
	}
}

// GET /api/logs — newest first, at most 50.
func (lc *LogController) ListLogs(c *gin.Context) {
	logs, err := lc.logs.ListRecent(services.MaxRecentLogs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, logJSON(l))
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/logs — creates one immutable entry.
func (lc *LogController) CreateLog(c *gin.Context) {
	var input LogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := lc.logs.Append(input.ImageURL, input.FoodName, input.Analysis, *input.IsSafe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
