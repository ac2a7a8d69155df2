package station_link

import (
	"github.com/iwtcode/stationService/internal/domain/entities"
	"gorm.io/gorm"
)

func (r *StationLinkRepositoryImpl) Create(link *entities.StationLink) error {
	return r.db.Create(link).Error
}

// Update заменяет сохраненную запись целиком.
func (r *StationLinkRepositoryImpl) Update(link *entities.StationLink) error {
	result := r.db.Model(&entities.StationLink{}).
		Where("session_id = ?", link.SessionID).
		Updates(map[string]interface{}{
			"url":              link.URL,
			"station_id":       link.StationID,
			"interval_minutes": link.IntervalMinutes,
			"user_id":          link.UserID,
			"status":           link.Status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus обновляет намерение мониторинга (linked / monitored).
func (r *StationLinkRepositoryImpl) UpdateStatus(sessionID, status string) error {
	result := r.db.Model(&entities.StationLink{}).
		Where("session_id = ?", sessionID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StationLinkRepositoryImpl) Delete(sessionID string) error {
	result := r.db.Where("session_id = ?", sessionID).Delete(&entities.StationLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *StationLinkRepositoryImpl) GetBySessionID(sessionID string) (*entities.StationLink, error) {
	var link entities.StationLink
	err := r.db.Where("session_id = ?", sessionID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *StationLinkRepositoryImpl) GetByURL(url string) (*entities.StationLink, error) {
	var link entities.StationLink
	err := r.db.Where("url = ?", url).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetAll возвращает все сохраненные конфигурации подключений.
func (r *StationLinkRepositoryImpl) GetAll() ([]entities.StationLink, error) {
	var links []entities.StationLink
	if err := r.db.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
