package station_link

import (
	"github.com/iwtcode/stationService/internal/interfaces"
	"gorm.io/gorm"
)

type StationLinkRepositoryImpl struct {
	db *gorm.DB
}

func NewStationLinkRepository(db *gorm.DB) interfaces.StationLinkRepository {
	return &StationLinkRepositoryImpl{db: db}
}
