package entities

import "time"

const (
	// StatusLinked - конфигурация сохранена, мониторинг не запущен оператором.
	StatusLinked = "linked"
	// StatusMonitored - оператор запускал мониторинг для этой станции.
	// После рестарта процесса статус сохраняется как намерение, но живое
	// состояние всегда сбрасывается в disconnected: сокеты не сериализуются
	// и не переоткрываются автоматически.
	StatusMonitored = "monitored"
)

// StationLink - долговременная запись конфигурации подключения к станции
// мониторинга. Единственный источник истины о том, какие подключения должны
// существовать; переживает рестарт процесса. Живые поля соединения
// (isConnected, isMonitoring, connection id, очередь запросов на снимок)
// в эту запись никогда не попадают.
type StationLink struct {
	SessionID       string    `gorm:"primaryKey;not null" json:"session_id"`
	URL             string    `gorm:"not null" json:"url"`
	StationID       string    `gorm:"not null" json:"station_id"`
	IntervalMinutes int       `gorm:"not null" json:"interval_minutes"`
	UserID          string    `gorm:"not null" json:"user_id"`
	Status          string    `gorm:"not null" json:"status"` // linked / monitored
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
