// Package bootstrap builds the process-wide pieces shared by the commands:
// the logger and the document store / identity backends.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/lmittmann/tint"
	"google.golang.org/api/option"

	"lingo_admin_console/internal/config"
	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/identity"
)

// NewLogger uses tint in dev and JSON with source locations elsewhere.
func NewLogger(appEnv, level string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}

// Backends are the two external systems every operation touches.
type Backends struct {
	Store    docstore.Store
	Identity identity.Provider
	// Memory is set when Store is the in-process fake.
	Memory *docstore.MemoryStore
	close  func() error
}

func (b *Backends) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenBackends connects to Firestore and Firebase Auth, or returns the
// in-memory store with a no-op identity provider when fc.UseMemoryStore is set.
func OpenBackends(ctx context.Context, fc config.FirebaseConfig, logger *slog.Logger) (*Backends, error) {
	if fc.UseMemoryStore {
		mem := docstore.NewMemoryStore()
		if fc.SeedFile != "" {
			n, err := mem.LoadSeedFile(fc.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("seed memory store: %w", err)
			}
			logger.Info("Memory store seeded", slog.String("file", fc.SeedFile), slog.Int("documents", n))
		}
		logger.Warn("Using in-memory document store; data is lost on exit")
		return &Backends{Store: mem, Identity: identity.NoopProvider{}, Memory: mem}, nil
	}

	var opts []option.ClientOption
	if fc.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(fc.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: fc.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("auth client: %w", err)
	}
	logger.Info("Connected to Firestore", slog.String("project_id", fc.ProjectID))

	return &Backends{
		Store:    docstore.NewFirestoreStore(fs),
		Identity: identity.NewFirebaseProvider(authClient),
		close:    fs.Close,
	}, nil
}
