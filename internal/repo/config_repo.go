package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Relay/internal/domain"
)

// ConfigRepo — репозиторий для хранения конфигураций синхронизации.
//
// Конфигурация хранится как JSONB по ключу (customer_id, config_name).
// Это хранилище — источник истины для API и runner'а; файловый loader
// используется как локальная альтернатива при разработке.
type ConfigRepo struct {
	pool *pgxpool.Pool
}

// NewConfigRepo создаёт новый ConfigRepo.
func NewConfigRepo(pool *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

// StoredConfig — конфигурация с метаданными хранения.
type StoredConfig struct {
	CustomerID string          `json:"customer_id"`
	Name       string          `json:"name"`
	Spec       domain.SyncSpec `json:"spec"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Get возвращает конфигурацию по customer и имени.
func (r *ConfigRepo) Get(ctx context.Context, customerID, name string) (*StoredConfig, error) {
	query := `
		SELECT customer_id, name, spec, created_at, updated_at
		FROM sync_configs
		WHERE customer_id = $1 AND name = $2
	`
	var cfg StoredConfig
	var specJSON []byte
	err := r.pool.QueryRow(ctx, query, customerID, name).Scan(
		&cfg.CustomerID,
		&cfg.Name,
		&specJSON,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}

	if err := json.Unmarshal(specJSON, &cfg.Spec); err != nil {
		return nil, fmt.Errorf("unmarshal spec: %w", err)
	}

	return &cfg, nil
}

// Upsert создаёт или обновляет конфигурацию.
func (r *ConfigRepo) Upsert(ctx context.Context, customerID, name string, spec domain.SyncSpec) (*StoredConfig, error) {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}

	query := `
		INSERT INTO sync_configs (customer_id, name, spec, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (customer_id, name)
		DO UPDATE SET spec = EXCLUDED.spec, updated_at = NOW()
		RETURNING customer_id, name, created_at, updated_at
	`
	var cfg StoredConfig
	err = r.pool.QueryRow(ctx, query, customerID, name, specJSON).Scan(
		&cfg.CustomerID,
		&cfg.Name,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert config: %w", err)
	}
	cfg.Spec = spec

	return &cfg, nil
}

// List возвращает все конфигурации customer.
func (r *ConfigRepo) List(ctx context.Context, customerID string) ([]StoredConfig, error) {
	query := `
		SELECT customer_id, name, spec, created_at, updated_at
		FROM sync_configs
		WHERE customer_id = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	defer rows.Close()

	var configs []StoredConfig
	for rows.Next() {
		var cfg StoredConfig
		var specJSON []byte
		if err := rows.Scan(
			&cfg.CustomerID,
			&cfg.Name,
			&specJSON,
			&cfg.CreatedAt,
			&cfg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}

		if err := json.Unmarshal(specJSON, &cfg.Spec); err != nil {
			return nil, fmt.Errorf("unmarshal spec: %w", err)
		}

		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

// Delete удаляет конфигурацию.
func (r *ConfigRepo) Delete(ctx context.Context, customerID, name string) error {
	query := `DELETE FROM sync_configs WHERE customer_id = $1 AND name = $2`
	result, err := r.pool.Exec(ctx, query, customerID, name)
	if err != nil {
		return fmt.Errorf("delete config: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Load возвращает SyncSpec для пары customer + config-name.
//
// Реализует интерфейс источника конфигов для runner'а.
func (r *ConfigRepo) Load(ctx context.Context, customerID, configName string) (*domain.SyncSpec, error) {
	cfg, err := r.Get(ctx, customerID, configName)
	if err != nil {
		return nil, err
	}
	return &cfg.Spec, nil
}
