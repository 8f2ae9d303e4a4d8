package bootstrap_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingo_admin_console/internal/bootstrap"
	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/identity"
)

func TestOpenBackends_MemoryWithSeed(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"users/u1": {"email": "ann@example.com"}}`), 0o600))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	b, err := bootstrap.OpenBackends(context.Background(), config.FirebaseConfig{UseMemoryStore: true, SeedFile: seed}, logger)
	require.NoError(t, err)
	defer b.Close()

	require.NotNil(t, b.Memory)
	assert.True(t, b.Memory.Exists("users/u1"))
	assert.IsType(t, identity.NoopProvider{}, b.Identity)
}

func TestOpenBackends_MissingSeedFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := bootstrap.OpenBackends(context.Background(),
		config.FirebaseConfig{UseMemoryStore: true, SeedFile: filepath.Join(t.TempDir(), "nope.json")}, logger)
	assert.Error(t, err)
}
