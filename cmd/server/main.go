package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sweatcrew/backend/internal/config"
	"github.com/sweatcrew/backend/internal/database"
	"github.com/sweatcrew/backend/internal/handlers"
	"github.com/sweatcrew/backend/internal/middleware"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/internal/storage"
	"github.com/sweatcrew/backend/pkg/logger"
)

func main() {
	logger.Init()

	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	storageClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("minio initialization failed: %v", err)
	}
	if err := storageClient.EnsureBucket(context.Background()); err != nil {
		log.Fatalf("failed ensuring minio bucket: %v", err)
	}

	identityService := services.NewIdentityService(db)
	groupService := services.NewGroupService(db, identityService)
	membershipService := services.NewMembershipService(db, identityService, groupService)
	recommendService := services.NewRecommendService(db)
	rankingService := services.NewRankingService(db)
	recordService := services.NewRecordService(db, identityService)

	groupsHandler := handlers.NewGroupsHandler(groupService)
	participantsHandler := handlers.NewParticipantsHandler(membershipService)
	likesHandler := handlers.NewLikesHandler(recommendService)
	recordsHandler := handlers.NewRecordsHandler(recordService)
	rankHandler := handlers.NewRankHandler(rankingService)
	tagsHandler := handlers.NewTagsHandler(db)
	uploadsHandler := handlers.NewUploadsHandler(storageClient)

	app := fiber.New(fiber.Config{BodyLimit: 32 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	groupRoutes := api.Group("/groups")
	groupRoutes.Get("/", groupsHandler.List)
	groupRoutes.Post("/", groupsHandler.Create)
	groupRoutes.Get("/:groupId", groupsHandler.Get)
	groupRoutes.Patch("/:groupId", groupsHandler.Update)
	groupRoutes.Delete("/:groupId", groupsHandler.Delete)

	groupRoutes.Post("/:groupId/participants", participantsHandler.Join)
	groupRoutes.Delete("/:groupId/participants", participantsHandler.Leave)

	groupRoutes.Post("/:groupId/likes", likesHandler.Like)
	groupRoutes.Delete("/:groupId/likes", likesHandler.Unlike)

	groupRoutes.Get("/:groupId/records", recordsHandler.List)
	groupRoutes.Post("/:groupId/records", recordsHandler.Create)
	groupRoutes.Get("/:groupId/records/:recordId", recordsHandler.Get)

	groupRoutes.Get("/:groupId/rank", rankHandler.Get)

	tagRoutes := api.Group("/tags")
	tagRoutes.Get("/", tagsHandler.List)
	tagRoutes.Get("/:tagId", tagsHandler.Get)

	api.Post("/images", uploadsHandler.Upload)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
