package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port                  string
	MongoURI              string
	DBName                string
	RedisAddr             string
	RedisPassword         string
	JWTSecret             string
	OrderStrictResolution bool
}

// LoadEnv loads a local .env file if present. Missing files are fine,
// deployments set real environment variables.
func LoadEnv() {
	_ = godotenv.Load()
}

func Load() Config {
	return Config{
		Port:                  GetEnv("PORT", "8080"),
		MongoURI:              GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:                GetEnv("DB_NAME", "astrokart"),
		RedisAddr:             GetEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         GetEnv("REDIS_PASSWORD", ""),
		JWTSecret:             GetEnv("JWT_SECRET", ""),
		OrderStrictResolution: getEnvBool("ORDER_STRICT_RESOLUTION", false),
	}
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
