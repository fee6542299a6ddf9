// Package preset persists named filter presets so that curated storefront
// views (seasonal drops, brand pages) survive restarts. The catalog core
// itself stays stateless; this is its only persistence collaborator.
package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opryshko/vitryna/internal/domain"
)

// Preset is a named, persisted filter state.
type Preset struct {
	Name  string
	State domain.FilterState
}

// Store reads and writes filter presets.
type Store interface {
	Load(ctx context.Context, name string) (*Preset, error)
	Save(ctx context.Context, p Preset) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// =============================================================================
// POSTGRES STORE
// =============================================================================

// PostgresStore implements Store on a filter_presets table keyed by name,
// with the state stored as jsonb.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a preset store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, name string) (*Preset, error) {
	const op = "preset.Load"

	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT state FROM filter_presets WHERE name = $1`, name,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPresetNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load preset")
	}

	var state domain.FilterState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, domain.Internal(fmt.Errorf("corrupt preset %q: %w", name, err), op, "failed to load preset")
	}
	return &Preset{Name: name, State: state}, nil
}

func (s *PostgresStore) Save(ctx context.Context, p Preset) error {
	const op = "preset.Save"

	if strings.TrimSpace(p.Name) == "" {
		return domain.Invalid(op, "Preset name is required")
	}

	raw, err := json.Marshal(p.State)
	if err != nil {
		return domain.Internal(err, op, "failed to save preset")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO filter_presets (name, state, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		p.Name, raw,
	)
	if err != nil {
		return domain.Internal(err, op, "failed to save preset")
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	const op = "preset.List"

	rows, err := s.pool.Query(ctx, `SELECT name FROM filter_presets ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list presets")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, domain.Internal(err, op, "failed to list presets")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to list presets")
	}
	return names, nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	const op = "preset.Delete"

	tag, err := s.pool.Exec(ctx, `DELETE FROM filter_presets WHERE name = $1`, name)
	if err != nil {
		return domain.Internal(err, op, "failed to delete preset")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPresetNotFound
	}
	return nil
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// MemoryStore implements Store in process memory. Used in tests and when no
// database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]domain.FilterState
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string]domain.FilterState)}
}

func (s *MemoryStore) Load(_ context.Context, name string) (*Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.presets[name]
	if !ok {
		return nil, domain.ErrPresetNotFound
	}
	return &Preset{Name: name, State: state}, nil
}

func (s *MemoryStore) Save(_ context.Context, p Preset) error {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Invalid("preset.Save", "Preset name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.Name] = p.State
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.presets[name]; !ok {
		return domain.ErrPresetNotFound
	}
	delete(s.presets, name)
	return nil
}
