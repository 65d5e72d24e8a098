package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hr-interview-backend/internal/api"
	"hr-interview-backend/internal/audit"
	"hr-interview-backend/internal/config"
	"hr-interview-backend/internal/logger"
	"hr-interview-backend/internal/metrics"
	"hr-interview-backend/internal/questions"
	"hr-interview-backend/internal/server"
	"hr-interview-backend/internal/session"
	"hr-interview-backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Загружаем переменные окружения
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env файл не найден, используются переменные окружения")
	}

	cfg := config.LoadAppConfig()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer zlog.Sync()

	// Банк вопросов: YAML-файл или встроенный пул
	bank := questions.Default()
	if path := os.Getenv("QUESTIONS_CONFIG"); path != "" {
		bank, err = config.LoadBank(path)
		if err != nil {
			zlog.Fatal("ошибка загрузки пула вопросов", zap.String("path", path), zap.Error(err))
		}
		zlog.Info("пул вопросов загружен из файла",
			zap.String("path", path),
			zap.Int("questions", bank.Size()))
	}

	// Хранилище: память как быстрый путь, SQLite — долговременный слой.
	// Недоступность SQLite не останавливает сервис.
	var durable session.Store
	if cfg.Storage.SQLitePath != "" {
		sqliteStore, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			zlog.Warn("долговременное хранилище недоступно, работаем только в памяти",
				zap.String("path", cfg.Storage.SQLitePath),
				zap.Error(err))
		} else {
			defer sqliteStore.Close()
			durable = sqliteStore
			zlog.Info("долговременное хранилище подключено",
				zap.String("path", cfg.Storage.SQLitePath))
		}
	}
	store := storage.NewLayeredStore(durable, zlog)

	m := metrics.NewMetrics()
	events := audit.NewLog()

	// Генератор вопросов — опциональный внешний помощник
	var generator session.Generator
	var aiClient *api.OpenAIClient
	if cfg.OpenAI.Enabled() {
		if err := cfg.OpenAI.ValidateConfig(); err != nil {
			zlog.Warn("конфигурация OpenAI некорректна, генератор отключен", zap.Error(err))
		} else {
			aiClient = api.NewOpenAIClient(
				cfg.OpenAI.APIKey,
				cfg.OpenAI.Model,
				cfg.OpenAI.BaseURL,
				cfg.OpenAI.Temperature,
				cfg.OpenAI.RequestTimeout,
				m, zlog)
			generator = aiClient
			zlog.Info("генератор вопросов включен", zap.String("model", cfg.OpenAI.Model))
		}
	} else {
		zlog.Info("OPENAI_API_KEY не задан, генератор вопросов отключен")
	}

	sessions := session.NewService(bank, store, generator, m, events, zlog)
	sessions.SetTTL(cfg.Session.TTL)

	router := server.NewRouter(sessions, aiClient, m, events, zlog)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	zlog.Info("HR interview backend запущен",
		zap.Int("port", cfg.Server.Port),
		zap.Int("questions", bank.Size()))

	if err := runServer(ctx, srv, cfg.Server.ShutdownTimeout); err != nil {
		zlog.Fatal("ошибка сервера", zap.Error(err))
	}
	zlog.Info("сервер остановлен")
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
