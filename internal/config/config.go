package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken   string
	Database   DatabaseConfig
	Scoring    ScoringConfig
	Assessment AssessmentConfig
	Match      MatchConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ScoringConfig holds the rating constants. Kept configurable so the
// scoring formula can change without touching engine code.
type ScoringConfig struct {
	// PointsPerCorrect is the base rating delta for one correct answer;
	// it is multiplied by the question's tier weight (1/2/3)
	PointsPerCorrect int
	// PassThresholdPercent is the minimum correct percentage to pass a test
	PassThresholdPercent int
	// TurnPoints is the rating increment per qualifying conversation turn
	TurnPoints int
	// DailyTurnCap bounds conversation points per user per day
	DailyTurnCap int
	// IntermediateAt / AdvancedAt are the level score thresholds
	IntermediateAt int
	AdvancedAt     int
}

// AssessmentConfig holds test generation settings
type AssessmentConfig struct {
	QuestionCount int
	ChoiceCount   int
	Duration      time.Duration
}

// MatchConfig holds matching thresholds
type MatchConfig struct {
	// MinScore is the minimum candidate score below which the engine
	// reports NoMatch instead of guessing
	MinScore float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "koyaasli"),
			User:     getEnv("DB_USER", "koyaasli"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Scoring: ScoringConfig{
			PointsPerCorrect:     getEnvInt("SCORE_POINTS_PER_CORRECT", 10),
			PassThresholdPercent: getEnvInt("SCORE_PASS_THRESHOLD", 60),
			TurnPoints:           getEnvInt("SCORE_TURN_POINTS", 1),
			DailyTurnCap:         getEnvInt("SCORE_DAILY_TURN_CAP", 20),
			IntermediateAt:       getEnvInt("SCORE_INTERMEDIATE_AT", 300),
			AdvancedAt:           getEnvInt("SCORE_ADVANCED_AT", 1000),
		},
		Assessment: AssessmentConfig{
			QuestionCount: getEnvInt("TEST_QUESTION_COUNT", 10),
			ChoiceCount:   getEnvInt("TEST_CHOICE_COUNT", 4),
			Duration:      getEnvDuration("TEST_DURATION", 15*time.Minute),
		},
		Match: MatchConfig{
			MinScore: getEnvFloat("MATCH_MIN_SCORE", 1.0),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	if cfg.Scoring.IntermediateAt >= cfg.Scoring.AdvancedAt {
		return nil, fmt.Errorf("SCORE_INTERMEDIATE_AT must be below SCORE_ADVANCED_AT")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
