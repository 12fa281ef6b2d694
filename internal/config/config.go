package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/BatoulDev/babibeauty-booking/internal/domain"
	"github.com/BatoulDev/babibeauty-booking/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	ExpertService ExpertService `toml:"expert_service"`
	UserService   UserService   `toml:"user_service"`
	Schedule      Schedule      `toml:"schedule"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	LockTimeout     string `toml:"lock_timeout"`      // интервал PostgreSQL, например "3s"
}

// DSN собирает строку подключения
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`  // пустое значение - вывод в stdout
	Level string `toml:"level"` // debug | info | warn | error
}

// Metrics настройки prometheus
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ExpertService адрес справочника бьюти-экспертов
type ExpertService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// UserService адрес сервиса пользователей
type UserService struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Schedule рабочие часы и параметры сетки слотов
type Schedule struct {
	OpenTime            string `toml:"open_time"`             // "09:00"
	CloseTime           string `toml:"close_time"`            // "19:00"
	SlotDurationMinutes int    `toml:"slot_duration_minutes"` // 30
	SlotCapacity        int    `toml:"slot_capacity"`         // 3
}

// ToDomain конвертирует секцию [schedule] в доменную конфигурацию,
// подставляя значения по умолчанию для незаполненных полей
func (s Schedule) ToDomain() (domain.ScheduleConfig, error) {
	cfg := domain.DefaultSchedule()

	if s.OpenTime != "" {
		open, err := types.NewTimeStringFromString(s.OpenTime)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("config: schedule.open_time: %w", err)
		}
		cfg.OpenTime = open
	}
	if s.CloseTime != "" {
		closeTime, err := types.NewTimeStringFromString(s.CloseTime)
		if err != nil {
			return domain.ScheduleConfig{}, fmt.Errorf("config: schedule.close_time: %w", err)
		}
		cfg.CloseTime = closeTime
	}
	if s.SlotDurationMinutes != 0 {
		cfg.SlotDurationMinutes = s.SlotDurationMinutes
	}
	if s.SlotCapacity != 0 {
		cfg.SlotCapacity = s.SlotCapacity
	}

	if err := cfg.Validate(); err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.host and database.dbname are required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Database.LockTimeout == "" {
		cfg.Database.LockTimeout = "3s"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "babibeauty-booking"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.ExpertService.Timeout == 0 {
		cfg.ExpertService.Timeout = 5
	}
	if cfg.UserService.Timeout == 0 {
		cfg.UserService.Timeout = 5
	}
}
