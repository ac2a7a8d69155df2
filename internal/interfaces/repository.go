package interfaces

import (
	"github.com/iwtcode/stationService/internal/domain/entities"
)

// StationLinkRepository определяет контракт для работы с сохраненными
// конфигурациями подключений. Каждая мутация записывается целиком
// (замена всей записи), частичных гонок по полям нет.
type StationLinkRepository interface {
	Create(link *entities.StationLink) error
	Update(link *entities.StationLink) error
	UpdateStatus(sessionID, status string) error
	Delete(sessionID string) error
	GetBySessionID(sessionID string) (*entities.StationLink, error)
	GetByURL(url string) (*entities.StationLink, error)
	GetAll() ([]entities.StationLink, error)
}
