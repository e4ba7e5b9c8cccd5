package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName                       string
	Port                          int
	LogLevel                      string
	PrettyLogs                    bool
	HttpServerWriteTimeoutSeconds int
	HttpServerReadTimeoutSeconds  int
	HttpServerIdleTimeoutSeconds  int
	MaxHeaderBytes                int
	ReadHeaderTimeoutSeconds      int
	AllowOrigins                  []string
	AllowMethods                  []string

	// Database
	DatabaseDriver                string
	DatabaseHost                  string
	DatabasePort                  string
	DatabaseUserName              string
	DatabasePassword              string
	DatabaseName                  string
	DatabaseSSLMode               string
	DatabaseReconnectRetryCount   int
	DatabaseMaxOpenConns          int
	DatabaseMaxIdleConns          int
	DatabaseConnMaxLifetime       time.Duration
	DatabaseMigrationFolderPath   string
	DatabaseMigrationVersion      int
	DatabaseMigrationForce        int
	DatabaseMigrationAutoRollback bool

	// Redis
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaEnabled    bool
	KafkaBrokers    string
	KafkaEventTopic string

	// PokeAPI upstream
	PokeAPIBaseURL       string
	PokeAPIDetailTimeout time.Duration

	// Catalog
	CatalogIndexLimit int
	CatalogCacheTTL   time.Duration

	// Auth Enabled - when false, the X-User-ID header is trusted for testing
	AuthEnabled bool

	// Tracing
	OTLPEnabled  bool
	OTLPEndpoint string
	OTLPProtocol string
	OTLPInsecure bool
}

// Load reads configuration from the environment, with .env support for local
// development.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppName:                       getString("APP_NAME", "poke-sky-api"),
		Port:                          getInt("PORT", 3000),
		LogLevel:                      getString("LOG_LEVEL", "info"),
		PrettyLogs:                    getBool("PRETTY_LOGS", false),
		HttpServerWriteTimeoutSeconds: getInt("HTTP_SERVER_WRITE_TIMEOUT_SECONDS", 10),
		HttpServerReadTimeoutSeconds:  getInt("HTTP_SERVER_READ_TIMEOUT_SECONDS", 10),
		HttpServerIdleTimeoutSeconds:  getInt("HTTP_SERVER_IDLE_TIMEOUT_SECONDS", 10),
		MaxHeaderBytes:                getInt("HTTP_SERVER_MAX_HEADER_BYTES", 64000),
		ReadHeaderTimeoutSeconds:      getInt("HTTP_SERVER_READ_HEADER_TIMEOUT_SECONDS", 10),
		AllowOrigins:                  getStrings("HTTP_SERVER_ALLOW_ORIGINS", "*"),
		AllowMethods:                  getStrings("HTTP_SERVER_ALLOW_METHODS", "GET,POST,PUT,DELETE"),

		DatabaseDriver:                getString("DB_DRIVER", "postgres"),
		DatabaseHost:                  getString("DB_HOST", ""),
		DatabasePort:                  getString("DB_PORT", "5432"),
		DatabaseUserName:              getString("DB_USER_NAME", ""),
		DatabasePassword:              getString("DB_PASSWORD", ""),
		DatabaseName:                  getString("DB_NAME", "pokesky"),
		DatabaseSSLMode:               getString("DB_SQL_MODE", "disable"),
		DatabaseReconnectRetryCount:   getInt("DB_RECONNECT_RETRY_COUNT", 3),
		DatabaseMaxOpenConns:          getInt("DB_MAX_OPEN_CONNS", 25),
		DatabaseMaxIdleConns:          getInt("DB_MAX_IDLE_CONNS", 10),
		DatabaseConnMaxLifetime:       getDuration("DB_CONN_MAX_LIFETIME", 10*time.Second),
		DatabaseMigrationFolderPath:   getString("DB_MIGRATION_FOLDER_PATH", "db/pg"),
		DatabaseMigrationVersion:      getInt("DB_MIGRATION_VERSION", 0),
		DatabaseMigrationForce:        getInt("DB_MIGRATION_FORCE", 0),
		DatabaseMigrationAutoRollback: getBool("DB_MIGRATION_AUTO_ROLLBACK", true),

		RedisHost:     getString("REDIS_HOST", "localhost"),
		RedisPort:     getInt("REDIS_PORT", 6379),
		RedisPassword: getString("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		KafkaEnabled:    getBool("KAFKA_ENABLED", false),
		KafkaBrokers:    getString("KAFKA_BROKERS", "localhost:9092"),
		KafkaEventTopic: getString("KAFKA_EVENT_TOPIC", "pokedex-events"),

		PokeAPIBaseURL:       getString("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2/"),
		PokeAPIDetailTimeout: getDuration("POKEAPI_DETAIL_TIMEOUT", 12*time.Second),

		CatalogIndexLimit: getInt("CATALOG_INDEX_LIMIT", 2000),
		CatalogCacheTTL:   getDuration("CATALOG_CACHE_TTL", time.Hour),

		AuthEnabled: getBool("AUTH_ENABLED", false),

		OTLPEnabled:  getBool("OTLP_ENABLED", false),
		OTLPEndpoint: getString("OTLP_ENDPOINT", "localhost:4317"),
		OTLPProtocol: getString("OTLP_PROTOCOL", "grpc"),
		OTLPInsecure: getBool("OTLP_INSECURE", true),
	}
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getStrings(key, fallback string) []string {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
