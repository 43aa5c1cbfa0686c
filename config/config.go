package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Schedule ScheduleConfig
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

// ScheduleConfig describes the garage operating-hours policy. Hours are
// local civil time at the fixed UTC offset; the scheduling core converts
// them to UTC for storage.
type ScheduleConfig struct {
	UTCOffsetHours    int
	WeekdayOpenHour   int
	WeekdayCloseHour  int
	SaturdayOpenHour  int
	SaturdayCloseHour int
	SlotStepMinutes   int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setScheduleDefaults()

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
		Schedule: ScheduleConfig{
			UTCOffsetHours:    viper.GetInt("SCHEDULE_UTC_OFFSET_HOURS"),
			WeekdayOpenHour:   viper.GetInt("SCHEDULE_WEEKDAY_OPEN_HOUR"),
			WeekdayCloseHour:  viper.GetInt("SCHEDULE_WEEKDAY_CLOSE_HOUR"),
			SaturdayOpenHour:  viper.GetInt("SCHEDULE_SATURDAY_OPEN_HOUR"),
			SaturdayCloseHour: viper.GetInt("SCHEDULE_SATURDAY_CLOSE_HOUR"),
			SlotStepMinutes:   viper.GetInt("SCHEDULE_SLOT_STEP_MINUTES"),
		},
	}

	return config, nil
}

// setScheduleDefaults mirrors the marketplace's published hours:
// weekdays 08:00-18:00, Saturday 09:00-15:00, Sunday closed,
// bookable in 30 minute steps, East Africa Time (UTC+3).
func setScheduleDefaults() {
	viper.SetDefault("SCHEDULE_UTC_OFFSET_HOURS", 3)
	viper.SetDefault("SCHEDULE_WEEKDAY_OPEN_HOUR", 8)
	viper.SetDefault("SCHEDULE_WEEKDAY_CLOSE_HOUR", 18)
	viper.SetDefault("SCHEDULE_SATURDAY_OPEN_HOUR", 9)
	viper.SetDefault("SCHEDULE_SATURDAY_CLOSE_HOUR", 15)
	viper.SetDefault("SCHEDULE_SLOT_STEP_MINUTES", 30)
}
