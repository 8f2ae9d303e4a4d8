// Package identity wraps the hosted authentication service that owns user
// credentials. The document store and the identity service are separate
// systems; callers treat them as independent deletion targets.
package identity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"firebase.google.com/go/v4/auth"

	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
)

//go:generate mockery --name Provider --output ./mocks --outpkg mocks --case=underscore

type Provider interface {
	// DeleteUser removes the auth account. It returns false without error
	// when no account exists.
	DeleteUser(ctx context.Context, uid string) (bool, error)
	// LookupUID resolves an email to a uid, or model.ErrNotFound.
	LookupUID(ctx context.Context, email string) (string, error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	// VerifyIDToken returns the uid of a valid end-user ID token.
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// FirebaseProvider is the production Provider.
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(client *auth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	if err := p.client.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			logger.Info("Auth account already absent", slog.String("uid", uid))
			return false, nil
		}
		return false, fmt.Errorf("firebaseProvider.DeleteUser: %w", err)
	}
	logger.Info("Auth account deleted", slog.String("uid", uid))
	return true, nil
}

func (p *FirebaseProvider) LookupUID(ctx context.Context, email string) (string, error) {
	rec, err := p.client.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("firebaseProvider.LookupUID: %w", err)
	}
	return rec.UID, nil
}

func (p *FirebaseProvider) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	_, err := p.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Disabled(disabled))
	if err != nil {
		if auth.IsUserNotFound(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("firebaseProvider.SetDisabled: %w", err)
	}
	return nil
}

func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	tok, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	return tok.UID, nil
}

// NoopProvider stands in when no identity service is configured. It never
// has accounts and accepts no tokens.
type NoopProvider struct{}

func (NoopProvider) DeleteUser(context.Context, string) (bool, error) { return false, nil }

func (NoopProvider) LookupUID(context.Context, string) (string, error) { return "", model.ErrNotFound }

func (NoopProvider) SetDisabled(context.Context, string, bool) error { return nil }

func (NoopProvider) VerifyIDToken(context.Context, string) (string, error) {
	return "", model.ErrUnauthorized
}
