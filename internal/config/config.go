package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig
	Data   DataConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port    int
	OpsPort int
}

type DataConfig struct {
	Dir string
}

type LogConfig struct {
	Dir string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnvInt("TCP_PORT", 5217),
			OpsPort: getEnvInt("OPS_PORT", 8080),
		},
		Data: DataConfig{
			Dir: getEnv("DATA_DIR", "."),
		},
		Log: LogConfig{
			Dir: getEnv("LOG_DIR", "logs"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
