package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/Ro706/Project-MARS/impl/core"
	"github.com/Ro706/Project-MARS/internal/config"
	repository "github.com/Ro706/Project-MARS/internal/database"
	"github.com/Ro706/Project-MARS/internal/http-server/api"
	"github.com/Ro706/Project-MARS/internal/lib/logger"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/Ro706/Project-MARS/internal/service/auth"
	"github.com/Ro706/Project-MARS/internal/service/rag"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env)

	lg.Info("starting mars", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	handler := core.New(lg)

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.Error("mongo client", sl.Err(err))
		os.Exit(1)
	}
	handler.SetRepository(db)
	lg.With(
		slog.String("database", conf.Mongo.Database),
	).Info("mongo client initialized")

	authService := auth.NewAuthService(conf.Auth.Secret, time.Duration(conf.Auth.TokenTTL)*time.Hour, lg)
	authService.SetRepository(db)
	handler.SetAuthService(authService)

	var provider rag.AnswerProvider
	switch conf.Rag.Provider {
	case "openai":
		provider, err = rag.NewOpenAIProvider(conf, lg)
		if err != nil {
			lg.Error("openai provider", sl.Err(err))
			os.Exit(1)
		}
		lg.With(slog.String("model", conf.Rag.OpenAIModel)).Info("openai provider initialized")
	default:
		provider = rag.NewDispatcher(conf, lg)
		lg.With(
			slog.String("command", conf.Rag.Command),
			slog.Int("timeout_seconds", conf.Rag.TimeoutSeconds),
		).Info("process dispatcher initialized")
	}
	handler.SetAnswerProvider(provider)

	// *** blocking start with http server ***
	err = api.New(conf, lg, handler)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
