package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "membership-recon/docs"
	"membership-recon/internal/config"
	"membership-recon/internal/exporter"
	"membership-recon/internal/handler"
	"membership-recon/internal/middleware"
	"membership-recon/internal/repository"
	"membership-recon/internal/service"
	"membership-recon/pkg/logger"
)

// @title Membership & Bookings Reconciliation API
// @version 1.0
// @description API for reconciling membership payments and external facility bookings against the club roster

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.App.LogLevel)
	logger.GetLogger().Info("Starting Membership Reconciliation Service")

	annualFee, err := decimal.NewFromString(cfg.App.AnnualFee)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Invalid ANNUAL_FEE")
	}
	hourlyRate, err := decimal.NewFromString(cfg.App.HourlyRate)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Invalid HOURLY_RATE")
	}

	for _, dir := range []string{cfg.App.UploadDir, cfg.App.ExportDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.GetLogger().WithError(err).WithField("dir", dir).Fatal("Failed to create working directory")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	logger.GetLogger().Info("Database connection established")

	memberRepo := repository.NewMemberRepository(db)
	runRepo := repository.NewRunRepository(db)

	writer := exporter.NewCSVWriter(cfg.App.ExportDir)

	memberService := service.NewMemberService(memberRepo)
	reconService := service.NewReconciliationService(
		memberRepo, runRepo,
		annualFee, hourlyRate, cfg.App.FuzzyCutoff,
		writer,
	)

	memberHandler := handler.NewMemberHandler(memberService, cfg.App.UploadDir)
	reconHandler := handler.NewReconciliationHandler(reconService, cfg.App.UploadDir)

	router := setupRouter(memberHandler, reconHandler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.GetLogger().WithField("address", addr).Info("Server starting")

	if err := router.Run(addr); err != nil {
		logger.GetLogger().WithError(err).Fatal("Failed to start server")
	}
}

func connectDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func setupRouter(memberHandler *handler.MemberHandler, reconHandler *handler.ReconciliationHandler) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		members := v1.Group("/members")
		{
			members.POST("", memberHandler.CreateMember)
			members.POST("/import", memberHandler.ImportRoster)
			members.GET("/:student_id", memberHandler.GetMember)
			members.GET("", memberHandler.ListMembers)
		}

		reconciliation := v1.Group("/reconcile")
		{
			reconciliation.POST("", reconHandler.Reconcile)
			reconciliation.GET("/runs/:run_id", reconHandler.GetRunStatus)
			reconciliation.GET("/runs/:run_id/summary", reconHandler.GetSummary)
			reconciliation.GET("/runs/:run_id/reports/:name", reconHandler.DownloadReport)
		}
	}

	return router
}
