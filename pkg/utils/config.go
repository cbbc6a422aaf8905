package utils

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Schedule ScheduleConfig
	Access   AccessConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// ScheduleConfig defines the global clinic slot grid. Times are clinic-local
// hours on a fixed daily window; there are no per-doctor working hours.
type ScheduleConfig struct {
	OpenHour    int
	CloseHour   int
	SlotMinutes int
}

// AccessConfig defines the chat and video privilege windows.
type AccessConfig struct {
	ChatExpiryDays     int
	VideoWindowMinutes int
}

func (c AccessConfig) VideoWindow() time.Duration {
	return time.Duration(c.VideoWindowMinutes) * time.Minute
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s sslmode=disable host=%s port=%s",
		c.User, c.Password, c.Name, c.Host, c.Port)
}

// MigrateURL builds the pgx5 URL used by golang-migrate.
func (c DatabaseConfig) MigrateURL() string {
	return fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SLOT_OPEN_HOUR", 9)
	viper.SetDefault("SLOT_CLOSE_HOUR", 17)
	viper.SetDefault("SLOT_MINUTES", 30)
	viper.SetDefault("CHAT_EXPIRY_DAYS", 7)
	viper.SetDefault("VIDEO_WINDOW_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Schedule: ScheduleConfig{
			OpenHour:    viper.GetInt("SLOT_OPEN_HOUR"),
			CloseHour:   viper.GetInt("SLOT_CLOSE_HOUR"),
			SlotMinutes: viper.GetInt("SLOT_MINUTES"),
		},
		Access: AccessConfig{
			ChatExpiryDays:     viper.GetInt("CHAT_EXPIRY_DAYS"),
			VideoWindowMinutes: viper.GetInt("VIDEO_WINDOW_MINUTES"),
		},
	}

	return config, nil
}
