package session_service

import (
	"os"
	"strings"

	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/interfaces"
	"github.com/iwtcode/stationService/internal/middleware/logging"

	"github.com/sirupsen/logrus"
)

// NewSessionService создает реестр сессий - единственную реализацию
// бизнес-логики управления подключениями к станциям мониторинга.
func NewSessionService(cfg *config.AppConfig, repo interfaces.StationLinkRepository, producer interfaces.EventPublisher, logger *logging.Logger) interfaces.SessionService {
	return NewSessionRegistry(cfg, repo, producer, logger)
}

// newProtocolLogger настраивает logrus для библиотеки протокола реального
// времени (pkg/station) в соответствии с настройками логгера приложения.
func newProtocolLogger(cfg *config.AppConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
