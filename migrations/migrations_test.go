package migrations

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetMigrationIsEmbedded(t *testing.T) {
	raw, err := MigrationsFS.ReadFile("00001_create_filter_presets.sql")
	require.NoError(t, err)

	sql := string(raw)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	assert.Contains(t, sql, "filter_presets")
	assert.True(t, strings.Contains(sql, "state jsonb"), "preset state column must be jsonb")
}
