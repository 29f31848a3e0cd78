package config

import (
	"os"
	"strconv"
	"time"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	// Конфигурация подключения к базе данных
	Database DatabaseConfig `json:"database"`

	// Конфигурация HTTP-сервера
	Server ServerConfig `json:"server"`

	// Параметры прогнозирования
	Prediction PredictionConfig `json:"prediction"`

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool `json:"enable_detailed_logging"`
}

// DatabaseConfig содержит настройки подключения к базе данных
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

// ServerConfig содержит настройки HTTP-сервера
type ServerConfig struct {
	Addr         string        `json:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// PredictionConfig содержит параметры прогнозной аналитики
type PredictionConfig struct {
	// Окно скользящего среднего (в месяцах)
	SMAWindow int `json:"sma_window"`

	// Границы глубины анализа (в месяцах)
	MinMonths int `json:"min_months"`
	MaxMonths int `json:"max_months"`

	// Границы горизонта прогноза (в периодах)
	MinForecast int `json:"min_forecast"`
	MaxForecast int `json:"max_forecast"`

	// Глубина анализа расхода медикаментов (в днях)
	ConsumptionLookbackDays int `json:"consumption_lookback_days"`

	// Пороговые значения для оповещений об истощении запасов
	CriticalDays int `json:"critical_days"`
	WarningDays  int `json:"warning_days"`

	// Интервал фонового мониторинга запасов
	MonitorInterval time.Duration `json:"monitor_interval"`
}

// Значения конфигурации по умолчанию
var (
	DefaultDatabaseConfig = DatabaseConfig{
		Driver:   "mysql",
		Host:     "localhost",
		Port:     3306,
		User:     "root",
		Password: "",
		DBName:   "hospital_db",
	}

	DefaultServerConfig = ServerConfig{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	DefaultPredictionConfig = PredictionConfig{
		SMAWindow:               3,
		MinMonths:               3,
		MaxMonths:               24,
		MinForecast:             1,
		MaxForecast:             6,
		ConsumptionLookbackDays: 90,
		CriticalDays:            7,
		WarningDays:             30,
		MonitorInterval:         1 * time.Hour,
	}
)

// GetConfig возвращает конфигурацию приложения с учетом переменных окружения
func GetConfig() AppConfig {
	config := AppConfig{
		Database:              DefaultDatabaseConfig,
		Server:                DefaultServerConfig,
		Prediction:            DefaultPredictionConfig,
		EnableDetailedLogging: true,
	}

	// Переопределение параметров подключения через переменные окружения
	if host := os.Getenv("HMS_DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("HMS_DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if user := os.Getenv("HMS_DB_USER"); user != "" {
		config.Database.User = user
	}
	if password := os.Getenv("HMS_DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if name := os.Getenv("HMS_DB_NAME"); name != "" {
		config.Database.DBName = name
	}
	if addr := os.Getenv("HMS_SERVER_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
	if interval := os.Getenv("HMS_MONITOR_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			config.Prediction.MonitorInterval = d
		}
	}

	return config
}
