package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yashgithub77/lifeeloopp/services"
	"github.com/Yashgithub77/lifeeloopp/store"
)

// AnalyzeBehavior runs one analysis pass over the user's tasks and
// latest fitness snapshot. This is the replan entry point.
func AnalyzeBehavior(svc *services.BehaviorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		result, err := svc.AnalyzeForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GetInsights returns the stored analysis history: behavior patterns,
// daily insights and recent agent actions.
func GetInsights(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		limit := int64(30)
		if l := c.Query("limit"); l != "" {
			if n, err := strconv.ParseInt(l, 10, 64); err == nil && n > 0 {
				limit = n
			}
		}
		patterns, err := st.GetBehaviorPatterns(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		insights, err := st.GetDailyInsights(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		actions, err := st.GetAgentActions(c.Request.Context(), userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"patterns":     patterns,
			"insights":     insights,
			"agentActions": actions,
		})
	}
}
