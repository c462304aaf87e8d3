package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rentfolio/rentfolio-api/internal/services"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
}

func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// @Summary Score Property
// @Description Compute hold and flip investment scores for a property
// @Tags Scores
// @Produce json
// @Param property_id path int true "Property ID"
// @Success 200 {object} services.ScoreResult
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /properties/{property_id}/score [get]
func (h *ScoreHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("property_id"), 10, 32)
	result, err := h.scoreService.Score(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": result})
}

// @Summary Scan Portfolio
// @Description Recompute scores for all active properties and flag weak rentals
// @Tags Scores
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /scores/scan [post]
func (h *ScoreHandler) Scan(c *gin.Context) {
	if err := h.scoreService.ScanPortfolio(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Portfolio scan completed"})
}
