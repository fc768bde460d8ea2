package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Engine EngineConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// EngineConfig tunes the booking change engine. Defaults match the
// marketplace policy: visits between 08:00 and 20:00, two hours minimum
// notice for a reschedule, slots offered on the half hour.
type EngineConfig struct {
	BusinessHourStart int
	BusinessHourEnd   int
	MinNotice         time.Duration
	MinShift          time.Duration
	LastMinuteWindow  time.Duration
	LastMinuteFee     string
	AfterHoursFee     string
	SlotGranularity   time.Duration
	QueuePositionWait time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Engine: loadEngineConfig(),
	}

	return config, nil
}

func loadEngineConfig() EngineConfig {
	viper.SetDefault("ENGINE_BUSINESS_HOUR_START", 8)
	viper.SetDefault("ENGINE_BUSINESS_HOUR_END", 20)
	viper.SetDefault("ENGINE_MIN_NOTICE", "2h")
	viper.SetDefault("ENGINE_MIN_SHIFT", "1h")
	viper.SetDefault("ENGINE_LAST_MINUTE_WINDOW", "24h")
	viper.SetDefault("ENGINE_LAST_MINUTE_FEE", "5.00")
	viper.SetDefault("ENGINE_AFTER_HOURS_FEE", "10.00")
	viper.SetDefault("ENGINE_SLOT_GRANULARITY", "30m")
	viper.SetDefault("ENGINE_QUEUE_POSITION_WAIT", "24h")

	return EngineConfig{
		BusinessHourStart: viper.GetInt("ENGINE_BUSINESS_HOUR_START"),
		BusinessHourEnd:   viper.GetInt("ENGINE_BUSINESS_HOUR_END"),
		MinNotice:         viper.GetDuration("ENGINE_MIN_NOTICE"),
		MinShift:          viper.GetDuration("ENGINE_MIN_SHIFT"),
		LastMinuteWindow:  viper.GetDuration("ENGINE_LAST_MINUTE_WINDOW"),
		LastMinuteFee:     viper.GetString("ENGINE_LAST_MINUTE_FEE"),
		AfterHoursFee:     viper.GetString("ENGINE_AFTER_HOURS_FEE"),
		SlotGranularity:   viper.GetDuration("ENGINE_SLOT_GRANULARITY"),
		QueuePositionWait: viper.GetDuration("ENGINE_QUEUE_POSITION_WAIT"),
	}
}
