package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type RESTconfig struct {
	PORT           string
	AllowedOrigins []string
}

// BackendConfig - внешний REST backend (warehouse + auth).
type BackendConfig struct {
	URL      string
	Timeout  time.Duration
	Username string // учетка для listing-analyzer, в сервисе не используется
	Password string
}

type AuthConfig struct {
	// RefreshSkew - за сколько до истечения access token обновлять его заранее
	RefreshSkew time.Duration
}

type SessionConfig struct {
	Store        string // memory | postgres | sqlite
	SQLitePath   string
	CookieName   string
	CookieTTL    time.Duration
	CookieSecure bool // флаг Secure (за HTTPS)
}

type DBconfig struct {
	URL string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type RabbitMQConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string
	Rest         RESTconfig
	Backend      BackendConfig
	Auth         AuthConfig
	Session      SessionConfig
	Database     DBconfig
	Redis        RedisConfig
	RabbitMQ     RabbitMQConfig
	ProfilesPath string
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения.
// .env файл не обязателен: без него используются переменные окружения процесса.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v. Using environment variables.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "exhome-listing-service")

	cfg.Rest.PORT = getEnvAsString("PORT", "8090")
	cfg.Rest.AllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:4200"})

	cfg.Backend.URL = strings.TrimRight(os.Getenv("BACKEND_API_URL"), "/")
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL environment variable is required")
	}
	cfg.Backend.Timeout = getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second)
	cfg.Backend.Username = os.Getenv("BACKEND_USERNAME")
	cfg.Backend.Password = os.Getenv("BACKEND_PASSWORD")

	cfg.Auth.RefreshSkew = getEnvAsDuration("AUTH_REFRESH_SKEW", 30*time.Second)

	cfg.Session.Store = strings.ToLower(getEnvAsString("SESSION_STORE", "memory"))
	cfg.Session.CookieName = getEnvAsString("SESSION_COOKIE_NAME", "exhome_session")
	cfg.Session.CookieTTL = getEnvAsDuration("SESSION_COOKIE_TTL", 7*24*time.Hour)
	cfg.Session.CookieSecure = getEnvAsBool("SESSION_COOKIE_SECURE", false)

	switch cfg.Session.Store {
	case "memory":
	case "sqlite":
		cfg.Session.SQLitePath = getEnvAsString("SQLITE_PATH", "exhome_sessions.db")
	case "postgres":
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when SESSION_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE %q (expected memory, sqlite or postgres)", cfg.Session.Store)
	}

	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", false)
	if cfg.Redis.Enabled {
		cfg.Redis.Address = getEnvAsString("REDIS_ADDRESS", "localhost:6379")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
		cfg.Redis.TTL = getEnvAsDuration("REDIS_LISTING_TTL", time.Minute)
	}

	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED=true")
		}
		cfg.RabbitMQ.Exchange = getEnvAsString("RABBITMQ_EXCHANGE", "listing_events")
	}

	cfg.ProfilesPath = os.Getenv("LISTING_PROFILES_PATH")

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as duration: %v. Using default value: %s\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList читает список через запятую
func getEnvAsList(key string, defaultValue []string) []string {
	valStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valStr) == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
