package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "github.com/Parthsuii/fintech/internal/adapter/http"
	"github.com/Parthsuii/fintech/internal/adapter/gateway"
	"github.com/Parthsuii/fintech/internal/adapter/middleware"
	"github.com/Parthsuii/fintech/internal/adapter/repository/mysql"
	"github.com/Parthsuii/fintech/internal/config"
	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	ledgerDomain "github.com/Parthsuii/fintech/internal/domain/ledger"
	projectDomain "github.com/Parthsuii/fintech/internal/domain/project"
	"github.com/Parthsuii/fintech/internal/infrastructure/cache"
	"github.com/Parthsuii/fintech/internal/infrastructure/db"
	investmentUC "github.com/Parthsuii/fintech/internal/usecase/investment"
	settlementUC "github.com/Parthsuii/fintech/internal/usecase/settlement"
	"github.com/Parthsuii/fintech/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		slog.Error("mysql", "err", err)
		os.Exit(1)
	}
	if err := gdb.AutoMigrate(
		&investmentDomain.Investment{},
		&ledgerDomain.Account{},
		&projectDomain.Project{},
	); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis", "err", err)
		os.Exit(1)
	}

	investments := mysql.NewInvestmentRepository(gdb)
	projects := mysql.NewProjectRepository(gdb)
	uow := mysql.NewGormUoW(gdb)
	fin := gateway.NewFinternet(cfg.FinternetAPIKey, cfg.FinternetBaseURL, cfg.SandboxPayBaseURL, cfg.FinternetTimeout)

	investUC := investmentUC.NewUsecase(investments, projects, fin)
	settleUC := settlementUC.NewUsecase(uow)

	h := httpadp.NewHandler()
	investH := httpadp.NewInvestmentHandler(investUC)
	settleH := httpadp.NewSettlementHandler(settleUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/invest", investH.CreateInvestment,
		middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	api.GET("/investments/:investment_id", investH.GetInvestment)
	api.GET("/pay/:intent_id", settleH.PayPage)
	api.POST("/confirm/:intent_id", settleH.Confirm)
	api.POST("/deliver/:investment_id", settleH.AcceptDelivery)
	api.POST("/callback/:txn_id", settleH.Callback)

	addr := ":" + cfg.AppPort
	slog.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server", "err", err)
		os.Exit(1)
	}
}
