package repository

import (
	"errors"
	"fmt"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

// storeErr translates document store errors into model sentinels so
// handlers can map them to status codes.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound):
		return model.ErrNotFound
	case errors.Is(err, docstore.ErrInvalidPath):
		return fmt.Errorf("%s: %w: %w", op, model.ErrInvalidInput, err)
	case errors.Is(err, docstore.ErrUnavailable):
		return fmt.Errorf("%s: %w: %w", op, model.ErrBackendUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
