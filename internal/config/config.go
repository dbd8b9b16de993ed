package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	World    WorldConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LoggingConfig struct {
	Level      string
	Format     string
	Structured bool
}

// WorldConfig holds the streaming and generation knobs of a running world.
type WorldConfig struct {
	Seed          int64
	ChunkWidth    int
	ChunkHeight   int
	TileSize      int
	ViewDistance  int
	ScreenWidth   float64
	FrameInterval time.Duration
	CacheTTL      time.Duration
	NoiseBackend  string
	DungeonChance float64
	CatalogPath   string
	TuningPath    string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnvStr("PORT", "8080"),
			ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Path:            getEnvStr("DB_PATH", "./world.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Logging: LoggingConfig{
			Level:      getEnvStr("LOG_LEVEL", "info"),
			Format:     getEnvStr("LOG_FORMAT", "json"),
			Structured: getEnvBool("LOG_STRUCTURED", true),
		},
		World: WorldConfig{
			Seed:          getEnvInt64("WORLD_SEED", 42),
			ChunkWidth:    getEnvInt("CHUNK_WIDTH", 50),
			ChunkHeight:   getEnvInt("CHUNK_HEIGHT", 150),
			TileSize:      getEnvInt("TILE_SIZE", 16),
			ViewDistance:  getEnvInt("VIEW_DISTANCE", 3),
			ScreenWidth:   getEnvFloat("SCREEN_WIDTH", 1280),
			FrameInterval: getEnvDuration("FRAME_INTERVAL", 16*time.Millisecond),
			CacheTTL:      getEnvDuration("CACHE_TTL", 16*time.Millisecond),
			NoiseBackend:  getEnvStr("NOISE_BACKEND", "perlin"),
			DungeonChance: getEnvFloat("DUNGEON_CHANCE", 0.25),
			CatalogPath:   getEnvStr("BLOCK_CATALOG_PATH", ""),
			TuningPath:    getEnvStr("GEN_TUNING_PATH", ""),
		},
	}
}

func getEnvStr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
