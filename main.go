package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Yashgithub77/lifeeloopp/config"
	"github.com/Yashgithub77/lifeeloopp/helpers"
	"github.com/Yashgithub77/lifeeloopp/routes"
	"github.com/Yashgithub77/lifeeloopp/services"
	"github.com/Yashgithub77/lifeeloopp/store"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	helpers.SetJWTKey(cfg.JWTKey)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	var st store.Store
	if cfg.MongoURI == "memory" {
		logger.Info("using in-memory store")
		st = store.NewMemoryStore()
	} else {
		db, err := config.ConnectDB(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal("MongoDB is not reachable", zap.Error(err))
		}
		logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))
		st = store.NewMongoStore(db)
	}

	deps := routes.Deps{
		Store:    st,
		Behavior: services.NewBehaviorService(st, logger),
		Fitness:  services.NewFitnessService(st, logger),
		Tasks:    services.NewTaskService(st, logger),
	}

	//Init gin router
	r := gin.Default()
	api := r.Group("/api")
	routes.SetupRoutes(api, deps)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
