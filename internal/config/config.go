package config

import "github.com/spf13/viper"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	SQLitePath string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SQLITE_PATH", "hsa.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.AutomaticEnv()

	return &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		SQLitePath: v.GetString("SQLITE_PATH"),
		RedisAddr:  v.GetString("REDIS_ADDR"),
		RedisDB:    v.GetInt("REDIS_DB"),
		RedisPass:  v.GetString("REDIS_PASSWORD"),
		JWTSecret:  v.GetString("JWT_SECRET"),
	}
}
