package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Yashgithub77/lifeeloopp/models"
	"github.com/Yashgithub77/lifeeloopp/services"
	"github.com/Yashgithub77/lifeeloopp/store"
)

// GetTasks returns all tasks of the current user.
func GetTasks(svc *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		tasks, err := svc.ListTasks(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, tasks)
	}
}

// CreateTask adds one task for the current user.
func CreateTask(svc *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var task models.Task
		if err := c.BindJSON(&task); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
			return
		}
		if task.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}
		created, err := svc.CreateTask(c.Request.Context(), userID, task)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

// UpdateTask merge-patches one task (status, actualMinutes, notes).
// Marking a task done stamps completedAt and updates the owning goal's
// progress; reverting to pending clears the timestamp.
func UpdateTask(svc *services.TaskService, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		var patch services.TaskPatch
		if err := c.BindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch payload"})
			return
		}
		if patch.Status != nil && !validTaskStatus(*patch.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		task, err := svc.UpdateTask(c.Request.Context(), userID, c.Param("id"), patch)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		goals, err := st.GetGoals(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"task":    task,
			"goals":   goals,
		})
	}
}

// GetGoals returns all goals of the current user.
func GetGoals(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := getUserID(c)
		if userID == "" {
			return
		}
		goals, err := st.GetGoals(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

func validTaskStatus(s string) bool {
	switch s {
	case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusDone,
		models.TaskStatusSkipped, models.TaskStatusRescheduled:
		return true
	}
	return false
}
