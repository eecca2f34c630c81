package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisPreviewDB int    `mapstructure:"REDIS_PREVIEW_DB"`

	// Photo previews: "memory" keeps them in process, "redis" shares them across instances.
	PreviewStore string        `mapstructure:"PREVIEW_STORE"`
	PreviewTTL   time.Duration `mapstructure:"PREVIEW_TTL"`

	// Cloudinary.
	CloudinaryURL    string `mapstructure:"CLOUDINARY_URL"`
	CloudinaryFolder string `mapstructure:"CLOUDINARY_FOLDER"`

	// Wizard sessions.
	WizardSessionIdleTTL time.Duration `mapstructure:"WIZARD_SESSION_IDLE_TTL"`
	WizardSweepInterval  time.Duration `mapstructure:"WIZARD_SWEEP_INTERVAL"`

	// HomeCountry is pinned to the top of country suggestions.
	HomeCountry string `mapstructure:"HOME_COUNTRY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_PREVIEW_DB", 3)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "matrimonial")
	v.SetDefault("PREVIEW_STORE", "memory")
	v.SetDefault("PREVIEW_TTL", "2h")
	v.SetDefault("CLOUDINARY_URL", "")
	v.SetDefault("CLOUDINARY_FOLDER", "profiles")
	v.SetDefault("WIZARD_SESSION_IDLE_TTL", "1h")
	v.SetDefault("WIZARD_SWEEP_INTERVAL", "5m")
	v.SetDefault("HOME_COUNTRY", "LK")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
