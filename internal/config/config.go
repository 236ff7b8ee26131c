// internal/config/config.go
// Configuration loader from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
)

type Config struct {
	AppName    string
	AppEnv     string
	AppPort    string
	ExportPort string
	LogLevel   string

	// LocalStorePath is the JSON-file fallback snapshot used when MySQL is
	// not reachable.
	LocalStorePath string

	MySQL struct {
		Host     string
		Port     string
		DB       string
		User     string
		Password string
		MaxOpen  int
		MaxIdle  int
	}

	LLM struct {
		Provider string // default: openai
		APIKey   string
		APIBase  string
		Model    string
	}
}

func Load() *Config {
	c := &Config{}
	c.AppName = getEnv("APP_NAME", "maint-kpi")
	c.AppEnv = getEnv("APP_ENV", "development")
	c.AppPort = getEnv("APP_PORT", "8080")
	c.ExportPort = getEnv("EXPORT_PORT", "8090")
	c.LogLevel = getEnv("LOG_LEVEL", "debug")
	c.LocalStorePath = getEnv("LOCAL_STORE_PATH", "data/snapshot.json")

	c.MySQL.Host = getEnv("MYSQL_HOST", "localhost")
	c.MySQL.Port = getEnv("MYSQL_PORT", "3306")
	c.MySQL.DB = getEnv("MYSQL_DB", "maintkpi")
	c.MySQL.User = getEnv("MYSQL_USER", "root")
	c.MySQL.Password = getEnv("MYSQL_PASSWORD", "")
	c.MySQL.MaxOpen = getEnvInt("MYSQL_MAX_OPEN_CONNS", 10)
	c.MySQL.MaxIdle = getEnvInt("MYSQL_MAX_IDLE_CONNS", 5)

	// LLM / OpenAI (insights assistant)
	c.LLM.Provider = getEnv("LLM_PROVIDER", "openai")
	c.LLM.APIKey = getEnv("OPENAI_API_KEY", "")
	c.LLM.APIBase = getEnv("OPENAI_API_BASE", "https://api.openai.com/v1")
	c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")

	if c.LLM.APIKey == "" {
		log.Println("[WARN] OPENAI_API_KEY is not set, insights fall back to the extractive summary")
	}

	return c
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		_, err := fmt.Sscanf(v, "%d", &i)
		if err == nil {
			return i
		}
	}
	return def
}
