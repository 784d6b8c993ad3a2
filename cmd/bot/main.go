package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asliddin4/KoYaAsli/internal/config"
	"github.com/asliddin4/KoYaAsli/internal/corpus"
	"github.com/asliddin4/KoYaAsli/internal/handler"
	"github.com/asliddin4/KoYaAsli/internal/middleware"
	"github.com/asliddin4/KoYaAsli/internal/repository"
	"github.com/asliddin4/KoYaAsli/internal/repository/postgres"
	"github.com/asliddin4/KoYaAsli/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting KoYaAsli Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	vocabRepo := postgres.NewVocabularyRepo(db)
	contextRepo := postgres.NewContextRepo(db)
	proficiencyRepo := postgres.NewProficiencyRepo(db)
	testRepo := postgres.NewTestRepo(db)

	// Japanese morphological analyzer and tokenizer
	analyzer, err := corpus.NewJapaneseAnalyzer()
	if err != nil {
		logger.Fatal("Failed to initialize Japanese analyzer", zap.Error(err))
	}
	tok := corpus.NewTokenizer(analyzer)

	// Build the vocabulary corpus. A broken corpus is fatal at startup.
	store, err := loadCorpus(vocabRepo, tok)
	if err != nil {
		logger.Fatal("Failed to load vocabulary corpus", zap.Error(err))
	}

	logger.Info("Vocabulary corpus loaded", zap.Int("entries", store.Snapshot().Len()))

	// Initialize services
	ratingEngine := service.NewRatingEngine(proficiencyRepo, nil, cfg.Scoring, logger)
	matchEngine := service.NewMatchEngine(store, tok, cfg.Match, logger)
	grammarCorrector := service.NewGrammarCorrector(analyzer, tok, logger)
	composer := service.NewResponseComposer(logger)
	tutorService := service.NewTutorService(matchEngine, grammarCorrector, composer, ratingEngine, contextRepo, logger)
	assessmentEngine := service.NewAssessmentEngine(
		store, testRepo, ratingEngine, cfg.Assessment, cfg.Scoring,
		rand.New(rand.NewSource(time.Now().UnixNano())), logger,
	)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	bot.Use(middleware.RegisterMiddleware(proficiencyRepo, logger))
	h := handler.NewHandler(bot, tutorService, assessmentEngine, ratingEngine, logger)
	h.RegisterHandlers()
	ratingEngine.SetNotifier(h)

	logger.Info("Handlers registered")

	// Start corpus refresh job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runCorpusRefreshJob(ctx, store, vocabRepo, tok, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// loadCorpus reads the vocabulary table and builds an indexed corpus
func loadCorpus(vocabRepo repository.VocabularyRepository, tok *corpus.Tokenizer) (*corpus.Store, error) {
	entries, err := vocabRepo.LoadEntries()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	c, err := corpus.Build(entries, tok)
	if err != nil {
		return nil, err
	}

	return corpus.NewStore(c), nil
}

// runCorpusRefreshJob periodically rebuilds the corpus from the
// database and swaps it in atomically. Conversations in flight keep
// their snapshot; a failed rebuild keeps the old corpus serving.
func runCorpusRefreshJob(ctx context.Context, store *corpus.Store, vocabRepo repository.VocabularyRepository, tok *corpus.Tokenizer, logger *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Corpus refresh job stopped")
			return
		case <-ticker.C:
			entries, err := vocabRepo.LoadEntries()
			if err != nil {
				logger.Error("Failed to reload vocabulary", zap.Error(err))
				continue
			}
			c, err := corpus.Build(entries, tok)
			if err != nil {
				logger.Error("Failed to rebuild corpus, keeping current", zap.Error(err))
				continue
			}
			store.Swap(c)
			logger.Info("Vocabulary corpus refreshed", zap.Int("entries", c.Len()))
		}
	}
}
