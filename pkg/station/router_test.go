package station

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRouterDispatchOrder(t *testing.T) {
	r := NewRouter(newTestLogger())

	var order []int
	r.Subscribe("config_response", func(frame json.RawMessage) { order = append(order, 1) })
	r.Subscribe("config_response", func(frame json.RawMessage) { order = append(order, 2) })
	r.Subscribe("monitoring_status", func(frame json.RawMessage) { order = append(order, 99) })

	r.Dispatch([]byte(`{"type":"config_response","success":true}`))

	require.Equal(t, []int{1, 2}, order, "Обработчики должны вызываться в порядке регистрации")
}

func TestRouterDropsUndecodableFrames(t *testing.T) {
	r := NewRouter(newTestLogger())

	called := false
	r.Subscribe("config_response", func(frame json.RawMessage) { called = true })

	r.Dispatch([]byte(`not json at all`))
	r.Dispatch([]byte(`{"success":true}`)) // нет поля type

	require.False(t, called, "Нечитаемые кадры не должны доходить до подписчиков")
}

func TestRouterUnsubscribe(t *testing.T) {
	r := NewRouter(newTestLogger())

	calls := 0
	sub := r.Subscribe("error", func(frame json.RawMessage) { calls++ })

	r.Dispatch([]byte(`{"type":"error"}`))
	r.Unsubscribe(sub)
	r.Unsubscribe(sub) // повторный вызов безопасен
	r.Dispatch([]byte(`{"type":"error"}`))

	require.Equal(t, 1, calls, "После Unsubscribe обработчик вызываться не должен")
}

func TestRouterWaitForSingleShot(t *testing.T) {
	r := NewRouter(newTestLogger())

	ch, cancel := r.WaitFor("monitoring_status")
	defer cancel()

	r.Dispatch([]byte(`{"type":"monitoring_status","status":"started"}`))
	r.Dispatch([]byte(`{"type":"monitoring_status","status":"stopped"}`))

	var status MonitoringStatus
	frame := <-ch
	require.NoError(t, json.Unmarshal(frame, &status))
	require.Equal(t, "started", status.Status, "Должен быть доставлен только первый кадр")

	select {
	case <-ch:
		t.Fatal("Второй кадр не должен попадать в одноразовое ожидание")
	default:
	}
}

func TestRouterWaitForCancel(t *testing.T) {
	r := NewRouter(newTestLogger())

	ch, cancel := r.WaitFor("config_response")
	cancel()

	r.Dispatch([]byte(`{"type":"config_response","success":true}`))

	select {
	case <-ch:
		t.Fatal("После отмены ожидания кадр доставляться не должен")
	default:
	}
}

func TestRouterPanicIsolation(t *testing.T) {
	r := NewRouter(newTestLogger())

	survived := false
	r.Subscribe("capture_request", func(frame json.RawMessage) { panic("boom") })
	r.Subscribe("capture_request", func(frame json.RawMessage) { survived = true })

	require.NotPanics(t, func() {
		r.Dispatch([]byte(`{"type":"capture_request","request_id":"r1"}`))
	})
	require.True(t, survived, "Паника одного обработчика не должна мешать остальным")
}
