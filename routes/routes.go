package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"upkeep/config"
	"upkeep/controllers"
	"upkeep/middleware"
	"upkeep/services"
)

func SetupRouter(db *gorm.DB, engine *services.Engine, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	authController := controllers.AuthController{Cfg: cfg}
	taskController := controllers.TaskController{Engine: engine}
	confirmationController := controllers.ConfirmationController{Engine: engine}
	settingsController := controllers.SettingsController{Engine: engine}
	sweepController := controllers.SweepController{Engine: engine}
	entitiesController := controllers.EntitiesController{DB: db}

	r.POST("/auth/login", authController.Login)

	// Confirmation links are deliberately unauthenticated: the token itself
	// is the capability.
	r.GET("/confirm/:token", confirmationController.Resolve)
	r.POST("/confirm/:token/ack", confirmationController.Acknowledge)
	r.PUT("/confirm/:token/tasks/:id", confirmationController.UpdateTask)

	authorized := r.Group("/", middleware.AuthMiddleware([]byte(cfg.JWTSecret)))

	authorized.POST("/tasks", taskController.CreateTask)
	authorized.GET("/tasks", taskController.GetTasks)
	authorized.GET("/tasks/:id", taskController.GetTask)
	authorized.PUT("/tasks/:id", taskController.UpdateTask)
	authorized.DELETE("/tasks/:id", taskController.DeleteTask)
	authorized.PUT("/tasks/:id/status", taskController.SetStatus)
	authorized.POST("/tasks/:id/approve", taskController.Approve)
	authorized.PATCH("/tasks/:id/star", taskController.Star)

	authorized.POST("/confirmations", confirmationController.Issue)

	authorized.GET("/settings", settingsController.Get)
	authorized.PUT("/settings/:key", settingsController.Put)

	authorized.POST("/sweeps/autoclose", sweepController.RunAutoClose)

	authorized.GET("/employees", entitiesController.ListEmployees)
	authorized.GET("/employees/:id", entitiesController.GetEmployee)
	authorized.GET("/systems", entitiesController.ListSystems)
	authorized.GET("/systems/:id", entitiesController.GetSystem)
	authorized.GET("/locations", entitiesController.ListLocations)
	authorized.GET("/locations/:id", entitiesController.GetLocation)
	authorized.GET("/buildings", entitiesController.ListBuildings)
	authorized.GET("/buildings/:id", entitiesController.GetBuilding)

	return r
}
