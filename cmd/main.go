package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/talentlink/marketplace-service/internal/db"
	"github.com/talentlink/marketplace-service/internal/handlers"
	"github.com/talentlink/marketplace-service/internal/repository"
	"github.com/talentlink/marketplace-service/internal/router"
	"github.com/talentlink/marketplace-service/internal/router/config"
	"github.com/talentlink/marketplace-service/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn)

	dbPool, err := db.InitDb(cfg)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer dbPool.Close()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	userRepo := repository.NewPostgresUserRepository(dbPool)
	projectRepo := repository.NewPostgresProjectRepository(dbPool)
	proposalRepo := repository.NewPostgresProposalRepository(dbPool)
	contractRepo := repository.NewPostgresContractRepository(dbPool)
	messageRepo := repository.NewPostgresMessageRepository(dbPool)
	notificationRepo := repository.NewPostgresNotificationRepository(dbPool)
	reviewRepo := repository.NewPostgresReviewRepository(dbPool)

	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	proposalService := services.NewProposalService(proposalRepo, projectRepo, userRepo, contractRepo, notificationRepo)
	contractService := services.NewContractService(contractRepo, projectRepo, userRepo, notificationRepo)
	messageService := services.NewMessageService(messageRepo, contractRepo, projectRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	reviewService := services.NewReviewService(reviewRepo, projectRepo, userRepo)

	userHandler := handlers.NewUserHandler(userService, logger, 5*time.Second)
	projectHandler := handlers.NewProjectHandler(projectService, logger, 5*time.Second)
	proposalHandler := handlers.NewProposalHandler(proposalService, logger, 5*time.Second)
	contractHandler := handlers.NewContractHandler(contractService, logger, 5*time.Second)
	messageHandler := handlers.NewMessageHandler(messageService, logger, 5*time.Second)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger, 5*time.Second)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger, 5*time.Second)

	routes := router.InitRoutes(
		userHandler,
		projectHandler,
		proposalHandler,
		contractHandler,
		messageHandler,
		notificationHandler,
		reviewHandler)

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := http.ListenAndServe(cfg.ServerAddress, routes); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func runDBMigration(migrationURL string, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal("cannot create a new migrate instance", err)
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("failed to run migrate up:", err)
	}
	log.Println("db migrated successfully")
}
