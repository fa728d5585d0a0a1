package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/services"
)

// SyncFitness records one day's activity snapshot for the current user.
func SyncFitness(svc *services.FitnessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var body models.FitnessData
		if err := c.BindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fitness payload"})
			return
		}
		if body.Steps < 0 || body.ActiveMinutes < 0 || body.CaloriesBurned < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fitness values must not be negative"})
			return
		}
		recorded, err := svc.Sync(c.Request.Context(), userID, body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"today":   recorded,
		})
	}
}

// GetFitnessHistory returns the recorded snapshots, oldest first.
func GetFitnessHistory(svc *services.FitnessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		days := int64(7)
		if d := c.Query("days"); d != "" {
			if n, err := strconv.ParseInt(d, 10, 64); err == nil && n > 0 {
				days = n
			}
		}
		history, err := svc.History(c.Request.Context(), userID, days)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": history})
	}
}

// GetFitnessProgress runs the weekly trend analyzer.
func GetFitnessProgress(svc *services.FitnessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		report, err := svc.Progress(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrEmptyHistory) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "no fitness data recorded yet"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
