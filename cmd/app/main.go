// @title Station Service API
// @version 1.0.0
// @description API для управления сессиями реального времени со станциями мониторинга и отправки событий в Kafka.
// @host localhost:8083
// @BasePath /api/v1
package main

import "github.com/iwtcode/stationService/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
