package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddress      string
	DatabaseURL      string
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	Issuer           string
	TokenTTL         time.Duration
	PasswordPepper   string
	AllowedOrigins   []string
	AllowCredentials bool
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	keys := []string{
		"HTTP_ADDRESS",
		"DATABASE_URL",
		"REDIS_ADDRESS",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"JWT_SECRET",
		"JWT_ISSUER",
		"TOKEN_TTL",
		"PASSWORD_PEPPER",
		"ALLOWED_ORIGINS",
		"ALLOW_CREDENTIALS",
	}
	for _, k := range keys {
		if err := viper.BindEnv(k); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("TOKEN_TTL", "24h")
	viper.SetDefault("REDIS_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for _, k := range []string{"DATABASE_URL", "JWT_SECRET", "REDIS_ADDRESS"} {
		if viper.GetString(k) == "" {
			return nil, fmt.Errorf("%s is not set", k)
		}
	}

	ttl := viper.GetDuration("TOKEN_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be positive")
	}

	var origins []string
	if raw := viper.GetString("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return &Config{
		HTTPAddress:      viper.GetString("HTTP_ADDRESS"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		RedisAddress:     viper.GetString("REDIS_ADDRESS"),
		RedisPassword:    viper.GetString("REDIS_PASSWORD"),
		RedisDB:          viper.GetInt("REDIS_DB"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		Issuer:           viper.GetString("JWT_ISSUER"),
		TokenTTL:         ttl,
		PasswordPepper:   viper.GetString("PASSWORD_PEPPER"),
		AllowedOrigins:   origins,
		AllowCredentials: viper.GetBool("ALLOW_CREDENTIALS"),
	}, nil
}
