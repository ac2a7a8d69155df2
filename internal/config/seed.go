package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedStation - одна предопределенная станция из файла начальной загрузки.
type SeedStation struct {
	URL             string `yaml:"url"`
	StationID       string `yaml:"station_id"`
	IntervalMinutes int    `yaml:"interval_minutes"`
	UserID          string `yaml:"user_id"`
}

// SeedFile - структура YAML-файла со станциями для первичной загрузки.
type SeedFile struct {
	Stations []SeedStation `yaml:"stations"`
}

// LoadSeedFile читает и валидирует файл начальной загрузки станций.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать файл станций %s: %w", path, err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("не удалось разобрать файл станций %s: %w", path, err)
	}

	for i, st := range seed.Stations {
		if st.URL == "" || st.StationID == "" {
			return nil, fmt.Errorf("станция #%d: url и station_id обязательны", i+1)
		}
		if st.IntervalMinutes < 1 || st.IntervalMinutes > 1440 {
			return nil, fmt.Errorf("станция #%d: interval_minutes должен быть в диапазоне 1..1440", i+1)
		}
	}
	return &seed, nil
}
