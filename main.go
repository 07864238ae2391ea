package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/poloapi/config"
	"github.com/padraicbc/poloapi/db"
	"github.com/padraicbc/poloapi/handlers"
	applog "github.com/padraicbc/poloapi/logger"
	mw "github.com/padraicbc/poloapi/middleware"
	"github.com/padraicbc/poloapi/notify"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	hub := notify.NewHub()
	h := handlers.New(bdb, hub, cfg)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/api/signup", h.Signup)
	e.POST("/api/signin", h.Signin)

	// Any signed-in account – the attendance-confirmation surface
	api := e.Group("/api", mw.JWT(cfg.JWTKey()))
	api.GET("/public/practices", h.PublicPractices)
	api.GET("/public/players", h.PublicPlayers)
	api.POST("/public/practices/:id/confirm", h.ConfirmAttendance)

	// Administrator only – the full management surface
	admin := api.Group("", mw.RequireAdmin())

	admin.GET("/horses", h.Horses)
	admin.POST("/horses", h.CreateHorse)
	admin.GET("/horses/:id", h.GetHorse)
	admin.PUT("/horses/:id", h.UpdateHorse)
	admin.DELETE("/horses/:id", h.DeleteHorse)
	admin.POST("/horses/:id/chukkers", h.QuickChukker)
	admin.GET("/horses/:id/workload", h.Workload)
	admin.GET("/horses/:id/logs", h.HorseLogs)
	admin.POST("/horses/:id/logs", h.CreateHorseLog)
	admin.DELETE("/horses/:id/logs/:logID", h.DeleteHorseLog)

	admin.GET("/players", h.Players)
	admin.POST("/players", h.CreatePlayer)
	admin.PUT("/players/:id", h.UpdatePlayer)
	admin.DELETE("/players/:id", h.DeletePlayer)

	admin.GET("/practices", h.Practices)
	admin.POST("/practices", h.CreatePractice)
	admin.GET("/practices/:id", h.GetPractice)
	admin.PUT("/practices/:id", h.UpdatePractice)
	admin.DELETE("/practices/:id", h.DeletePractice)
	admin.POST("/practices/:id/teams", h.AssignTeam)
	admin.POST("/practices/:id/teams/move", h.MovePlayer)
	admin.POST("/practices/:id/chukkers", h.AddChukker)
	admin.DELETE("/practices/:id/chukkers/:number", h.RemoveChukker)
	admin.PUT("/practices/:id/chukkers/:number/score", h.SetScore)
	admin.PUT("/practices/:id/chukkers/:number/assignment", h.AssignHorse)
	admin.POST("/practices/:id/start", h.StartPractice)
	admin.POST("/practices/:id/complete", h.CompletePractice)
	admin.GET("/practices/:id/summary", h.Summary)

	admin.GET("/stream/:collection", h.Stream)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
