package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/Relay/internal/domain"
)

// FileLoader загружает конфигурации синхронизаций из YAML-файлов.
//
// Файлы лежат по схеме <base>/<customer_id>/<config_name>.yaml.
// Загруженный SyncSpec валидируется по struct-тегам и read-only
// для остального кода.
type FileLoader struct {
	basePath string
}

// NewFileLoader создаёт FileLoader с базовой директорией конфигураций.
func NewFileLoader(basePath string) *FileLoader {
	return &FileLoader{basePath: basePath}
}

// Load загружает и валидирует SyncSpec для пары customer + config-name.
//
// Отсутствующий файл — ErrNotFound; невалидный YAML или не прошедшая
// валидацию схема — ErrInvalid.
func (l *FileLoader) Load(_ context.Context, customerID, configName string) (*domain.SyncSpec, error) {
	path := filepath.Join(l.basePath, customerID, configName+".yaml")

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var spec domain.SyncSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}

	if err := ValidateSpec(&spec); err != nil {
		return nil, err
	}

	return &spec, nil
}
