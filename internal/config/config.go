package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Host           string
	Port           int
	AllowOrigins   []string
	LogLevel       string
	MaxUploadMB    int
	LogFile        string
	MatchThreshold float64
	DatabaseURL    string
}

func Load() Config {
	_ = godotenv.Load() // best effort, env vars win

	port, _ := strconv.Atoi(getenv("PORT", "8082"))
	mb, _ := strconv.Atoi(getenv("MAX_UPLOAD_MB", "256"))
	threshold, err := strconv.ParseFloat(getenv("MATCH_THRESHOLD", "0.70"), 64)
	if err != nil || threshold <= 0 || threshold > 1 {
		threshold = 0.70
	}
	origins := strings.Split(getenv("ALLOW_ORIGINS", "*"), ",")
	return Config{
		Host:           getenv("HOST", "127.0.0.1"),
		Port:           port,
		AllowOrigins:   origins,
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MaxUploadMB:    mb,
		LogFile:        getenv("LOG_FILE", "logs/catalog-match-service.log"),
		MatchThreshold: threshold,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
