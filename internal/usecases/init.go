package usecases

import "github.com/iwtcode/stationService/internal/interfaces"

// UseCases - агрегатор всех use case интерфейсов
type UseCases struct {
	interfaces.Usecases
}

// NewUsecases - конструктор для UseCases
func NewUsecases(
	sessionSvc interfaces.SessionService,
) interfaces.Usecases {
	return NewUsecase(sessionSvc)
}
