package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Yashgithub77/lifeeloopp/controllers"
	"github.com/Yashgithub77/lifeeloopp/middleware"
	"github.com/Yashgithub77/lifeeloopp/services"
	"github.com/Yashgithub77/lifeeloopp/store"
)

// Deps bundles everything the routes need, wired once in main.
type Deps struct {
	Store    store.Store
	Behavior *services.BehaviorService
	Fitness  *services.FitnessService
	Tasks    *services.TaskService
}

func SetupRoutes(router *gin.RouterGroup, d Deps) {
	router.POST("/signup", controllers.Signup(d.Store))
	router.POST("/login", controllers.Login(d.Store))
	protected := router.Group("/")
	protected.Use(middleware.Authenticate())
	{
		// Current user
		protected.GET("/me", controllers.GetMe(d.Store))

		// Tasks and goals
		protected.GET("/tasks", controllers.GetTasks(d.Tasks))
		protected.POST("/tasks", controllers.CreateTask(d.Tasks))
		protected.PATCH("/tasks/:id", controllers.UpdateTask(d.Tasks, d.Store))
		protected.GET("/goals", controllers.GetGoals(d.Store))

		// Fitness
		protected.POST("/fitness/sync", controllers.SyncFitness(d.Fitness))
		protected.GET("/fitness", controllers.GetFitnessHistory(d.Fitness))
		protected.GET("/fitness/progress", controllers.GetFitnessProgress(d.Fitness))

		// Behavior analysis (replan)
		protected.POST("/insights/analyze", controllers.AnalyzeBehavior(d.Behavior))
		protected.GET("/insights", controllers.GetInsights(d.Store))
	}
}
