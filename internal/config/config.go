package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort  string
	KafkaBroker string
	KafkaTopic  string
	GinMode     string
	Database    DatabaseConfig
	Logging     LoggerConfig
	Realtime    RealtimeConfig
	// SeedFile - опциональный YAML-файл с предопределенными станциями,
	// загружаемыми при первом старте.
	SeedFile string
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных.
// Driver: "sqlite" (по умолчанию, один бинарник без внешних зависимостей)
// или "postgres".
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Username   string
	Password   string
	DBName     string
	SQLitePath string
}

// RealtimeConfig содержит настройки протокола реального времени.
type RealtimeConfig struct {
	// DialTimeout - таймаут установки websocket-соединения.
	DialTimeout time.Duration
	// RequestTimeout - таймаут ожидания каждого коррелированного ответа.
	RequestTimeout time.Duration
	// OperatorUserID - идентификатор пользователя, от имени которого
	// конфигурируется мониторинг. Выдается внешней системой аутентификации.
	OperatorUserID string
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort:  getEnv("APP_PORT", "8083"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "station_events"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			Username:   getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "root"),
			DBName:     getEnv("DB_NAME", "station_db"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "./station.db"),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
		Realtime: RealtimeConfig{
			DialTimeout:    time.Duration(getEnvAsInt("WS_DIAL_TIMEOUT_SEC", 10)) * time.Second,
			RequestTimeout: time.Duration(getEnvAsInt("WS_REQUEST_TIMEOUT_SEC", 10)) * time.Second,
			OperatorUserID: getEnv("OPERATOR_USER_ID", "operator"),
		},
		SeedFile: getEnv("STATIONS_SEED_FILE", ""),
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
