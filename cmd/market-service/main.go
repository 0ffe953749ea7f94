package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nurpe/timber-market/internal/ai"
	"github.com/nurpe/timber-market/internal/auth"
	"github.com/nurpe/timber-market/internal/config"
	"github.com/nurpe/timber-market/internal/db"
	"github.com/nurpe/timber-market/internal/excel"
	httphandler "github.com/nurpe/timber-market/internal/http"
	"github.com/nurpe/timber-market/internal/http/middleware"
	"github.com/nurpe/timber-market/internal/logger"
	"github.com/nurpe/timber-market/internal/pdf"
	"github.com/nurpe/timber-market/internal/repository"
	"github.com/nurpe/timber-market/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	demandRepo := repository.NewDemandRepository(database)
	stockRepo := repository.NewStockRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	userRepo := repository.NewUserRepository(database)

	excelGenerator := excel.NewGenerator()
	pdfGenerator := pdf.NewGenerator()
	aiClient := ai.NewClient(cfg.AI.Endpoint, cfg.AI.Model, time.Duration(cfg.AI.TimeoutSeconds)*time.Second)

	handler := httphandler.NewHandler(httphandler.Services{
		Demand:    service.NewDemandService(demandRepo),
		Stock:     service.NewStockService(stockRepo),
		Companies: service.NewCompanyService(companyRepo),
		Users:     service.NewUserService(userRepo, companyRepo),
		Reports:   service.NewReportService(demandRepo, stockRepo, companyRepo, excelGenerator, pdfGenerator, cfg.Report.TopCompanies),
		Matches:   service.NewMatchService(demandRepo, stockRepo, companyRepo, aiClient),
		Logistics: service.NewLogisticsService(demandRepo, stockRepo, companyRepo, aiClient),
	}, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("timber market service listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("http server stopped")
	}
}
