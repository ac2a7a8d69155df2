package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stations.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeedFile(t, `
stations:
  - url: ws://station-1:9000/ws
    station_id: station-1
    interval_minutes: 15
  - url: ws://station-2:9000/ws
    station_id: station-2
    interval_minutes: 60
    user_id: inspector
`)

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Stations, 2)
	require.Equal(t, "station-1", seed.Stations[0].StationID)
	require.Empty(t, seed.Stations[0].UserID)
	require.Equal(t, "inspector", seed.Stations[1].UserID)
	require.Equal(t, 60, seed.Stations[1].IntervalMinutes)
}

func TestLoadSeedFileValidation(t *testing.T) {
	missingURL := writeSeedFile(t, `
stations:
  - station_id: station-1
    interval_minutes: 15
`)
	_, err := LoadSeedFile(missingURL)
	require.Error(t, err, "Станция без url должна отклоняться")

	badInterval := writeSeedFile(t, `
stations:
  - url: ws://station-1:9000/ws
    station_id: station-1
    interval_minutes: 2000
`)
	_, err = LoadSeedFile(badInterval)
	require.Error(t, err, "Интервал вне диапазона 1..1440 должен отклоняться")

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "Отсутствующий файл должен давать ошибку")
}
