package config

import (
	"log"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	// SandboxConnStr is the DSN used by the raw SQL runner. It forces the
	// pgx simple protocol so multi-statement batches execute exactly as
	// submitted.
	SandboxConnStr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SummaryCacheTTL time.Duration

	ChatAPIURL       string
	ChatAPIKey       string
	ChatDefaultModel string

	UploadDir       string
	UploadMaxSizeMB int
	DefaultPassword string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		JWTKey:           []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:           time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "learndeck"),
		DBPassword:       getEnv("DB_PASSWORD", "learndeck"),
		DBName:           getEnv("DB_NAME", "learndeck"),
		DBSslMode:        getEnv("DB_SSLMODE", "disable"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		SummaryCacheTTL:  time.Duration(getEnvAsInt("SUMMARY_CACHE_TTL_SECONDS", 60)) * time.Second,
		ChatAPIURL:       getEnv("CHAT_API_URL", "https://api.intelligence.io.solutions/api/v1"),
		ChatAPIKey:       getEnv("CHAT_API_KEY", ""),
		ChatDefaultModel: getEnv("CHAT_DEFAULT_MODEL", "mistralai/Mistral-Nemo-Instruct-2407"),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxSizeMB:  getEnvAsInt("UPLOAD_MAX_SIZE_MB", 16),
		DefaultPassword:  getEnv("DEFAULT_PASSWORD", "admin"),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
	AppConfig.SandboxConnStr = AppConfig.DBConnStr + " default_query_exec_mode=simple_protocol"

	if err := AppConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.APIPort, validation.Required, is.Port),
		validation.Field(&c.DBHost, validation.Required),
		validation.Field(&c.DBPort, validation.Required, is.Port),
		validation.Field(&c.DBName, validation.Required),
		validation.Field(&c.ChatAPIURL, validation.Required, is.URL),
		validation.Field(&c.UploadMaxSizeMB, validation.Min(1)),
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
