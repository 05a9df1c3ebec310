package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver string
	DBDSN    string

	HTTPAddr string
	Timezone string

	RedisAddr    string
	RedisChannel string

	JWTSecret         string
	AdminPasswordHash string

	SweepInterval time.Duration
}

// Load reads configuration from an optional upkeep.yaml in the working
// directory, overridable by UPKEEP_* environment variables
// (e.g. UPKEEP_DB_DSN, UPKEEP_REDIS_ADDR).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.dsn", "admin:12345678@tcp(127.0.0.1:3306)/upkeep?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("http.addr", ":8000")
	v.SetDefault("timezone", "Asia/Jerusalem")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.channel", "upkeep.events")
	v.SetDefault("jwt.secret", "supersecretkey")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("sweep.interval", time.Minute)

	v.SetEnvPrefix("UPKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("upkeep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		DBDriver:          v.GetString("db.driver"),
		DBDSN:             v.GetString("db.dsn"),
		HTTPAddr:          v.GetString("http.addr"),
		Timezone:          v.GetString("timezone"),
		RedisAddr:         v.GetString("redis.addr"),
		RedisChannel:      v.GetString("redis.channel"),
		JWTSecret:         v.GetString("jwt.secret"),
		AdminPasswordHash: v.GetString("admin.password_hash"),
		SweepInterval:     v.GetDuration("sweep.interval"),
	}, nil
}
