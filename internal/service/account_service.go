//go:generate mockery --name AccountService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lingo_admin_console/internal/identity"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/purge"
	"lingo_admin_console/internal/repository"
)

type AccountService interface {
	// DeleteAccount removes the caller's own data and auth account.
	DeleteAccount(ctx context.Context, uid string) (*model.DeleteAccountResult, error)
	// DeleteUser accepts a uid or an email address.
	DeleteUser(ctx context.Context, ref string) (*model.DeleteUserResult, error)
	ResetProgress(ctx context.Context, uid string) (*model.ResetProgressResult, error)
	UpdateUserStatus(ctx context.Context, uid string, req *model.UpdateUserStatusRequest) (*model.UserStatusResult, error)
}

type accountService struct {
	engine   *purge.Engine
	userRepo repository.UserRepository
	identity identity.Provider
	mailer   Mailer
	audit    AuditService
	cache    UserCacheInvalidator
	logger   *slog.Logger
}

func NewAccountService(
	engine *purge.Engine,
	userRepo repository.UserRepository,
	idp identity.Provider,
	mailer Mailer,
	audit AuditService,
	cache UserCacheInvalidator,
	logger *slog.Logger,
) AccountService {
	return &accountService{
		engine:   engine,
		userRepo: userRepo,
		identity: idp,
		mailer:   mailer,
		audit:    audit,
		cache:    cache,
		logger:   logger,
	}
}

func (s *accountService) DeleteAccount(ctx context.Context, uid string) (*model.DeleteAccountResult, error) {
	if err := validateUserID(uid); err != nil {
		return nil, err
	}
	res, err := s.deleteEverywhere(ctx, model.OpDeleteAccount, uid)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *accountService) DeleteUser(ctx context.Context, ref string) (*model.DeleteUserResult, error) {
	logger := middleware.GetLogger(ctx)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, model.NewAppError("INVALID_USER_REF", "user id or email is required", "userRef", model.ErrInvalidInput)
	}

	uid := ref
	if strings.Contains(ref, "@") {
		resolved, err := s.resolveEmail(ctx, ref)
		if err != nil {
			return nil, err
		}
		if resolved == "" {
			logger.Info("No user matches email, nothing to delete", "email", ref)
			return &model.DeleteUserResult{DeleteAccountResult: model.DeleteAccountResult{Success: true}}, nil
		}
		uid = resolved
	} else if err := validateUserID(uid); err != nil {
		return nil, err
	}

	res, err := s.deleteEverywhere(ctx, model.OpDeleteUser, uid)
	if err != nil {
		return nil, err
	}
	return &model.DeleteUserResult{DeleteAccountResult: *res, ResolvedID: uid}, nil
}

// resolveEmail asks the identity service first and falls back to the users
// collection. An unknown email resolves to "".
func (s *accountService) resolveEmail(ctx context.Context, email string) (string, error) {
	logger := middleware.GetLogger(ctx)
	uid, err := s.identity.LookupUID(ctx, email)
	if err == nil {
		return uid, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Warn("Identity lookup failed, falling back to user documents", "email", email, "error", err)
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.ID, nil
}

// deleteEverywhere purges the store subtree and then the auth account. The
// two systems are independent: either may succeed without the other.
func (s *accountService) deleteEverywhere(ctx context.Context, op, uid string) (*model.DeleteAccountResult, error) {
	logger := middleware.GetLogger(ctx).With(slog.String("uid", uid), slog.String("operation", op))

	var email, name string
	if u, err := s.userRepo.FindByID(ctx, uid); err == nil {
		email, name = u.Email, u.Name
	}

	rep, err := s.engine.PurgeUser(ctx, uid)
	if err != nil {
		logger.Error("User purge aborted", "error", err)
		return nil, err
	}

	failures := rep.Failures
	succeeded, failed := rep.Succeeded, rep.Failed
	authDeleted, authErr := s.identity.DeleteUser(ctx, uid)
	if authErr != nil {
		logger.Warn("Auth account deletion failed", "error", authErr)
		failures = append(failures, model.Failure{Scope: "auth", Error: authErr.Error()})
		failed++
	} else {
		succeeded++
	}

	res := &model.DeleteAccountResult{
		FirestoreDeleted: rep.StoreDeleted(),
		AuthDeleted:      authDeleted,
		DeletedDocuments: rep.Deleted,
		Success:          failed == 0 || succeeded > 0,
		Failures:         failures,
	}

	s.cache.Invalidate(uid)
	s.audit.Record(ctx, AuditEntry{
		Operation: op,
		Subject:   uid,
		Success:   res.Success,
		Deleted:   rep.Deleted,
		Failures:  failures,
		Duration:  rep.Duration,
		Detail:    map[string]any{"firestoreDeleted": res.FirestoreDeleted, "authDeleted": authDeleted},
	})

	if !res.Success {
		return nil, fmt.Errorf("%w: every deletion category failed for %s", model.ErrBackendUnavailable, uid)
	}

	if email != "" && (res.FirestoreDeleted || res.AuthDeleted) {
		subject, body := deletionNotice(name)
		if err := s.mailer.Send(ctx, email, subject, body); err != nil {
			logger.Warn("Deletion notice not sent", "error", err)
		}
	}

	logger.Info("User deleted",
		"firestore_deleted", res.FirestoreDeleted,
		"auth_deleted", res.AuthDeleted,
		"documents", res.DeletedDocuments,
		"failures", len(res.Failures),
	)
	return res, nil
}

func (s *accountService) ResetProgress(ctx context.Context, uid string) (*model.ResetProgressResult, error) {
	if err := validateUserID(uid); err != nil {
		return nil, err
	}

	rep := s.engine.ResetProgress(ctx, uid)
	res := &model.ResetProgressResult{
		DeletedDocuments:   rep.Deleted,
		DeletedCollections: rep.DeletedCollections,
		Success:            rep.Success(),
		Failures:           rep.Failures,
	}

	s.cache.Invalidate(uid)
	s.audit.Record(ctx, AuditEntry{
		Operation: model.OpResetProgress,
		Subject:   uid,
		Success:   res.Success,
		Deleted:   rep.Deleted,
		Failures:  rep.Failures,
		Duration:  rep.Duration,
		Detail:    map[string]any{"deletedCollections": rep.DeletedCollections},
	})

	if !res.Success {
		return nil, fmt.Errorf("%w: progress reset failed in every collection for %s", model.ErrBackendUnavailable, uid)
	}
	return res, nil
}

func (s *accountService) UpdateUserStatus(ctx context.Context, uid string, req *model.UpdateUserStatusRequest) (*model.UserStatusResult, error) {
	logger := middleware.GetLogger(ctx)
	if err := validateUserID(uid); err != nil {
		return nil, err
	}
	status, ok := model.ParseUserStatus(req.Status)
	if !ok {
		return nil, model.NewAppError("INVALID_STATUS", "status must be ACTIVE or DISABLED", "status", model.ErrInvalidInput)
	}

	started := time.Now()
	repaired, err := s.userRepo.SetStatus(ctx, uid, status)
	if err != nil {
		return nil, err
	}

	res := &model.UserStatusResult{UserID: uid, Status: status, Repaired: repaired}
	if err := s.identity.SetDisabled(ctx, uid, status == model.UserStatusDisabled); err != nil {
		logger.Warn("Auth account status not mirrored", "uid", uid, "error", err)
	} else {
		res.AuthUpdated = true
	}

	s.cache.Invalidate(uid)
	s.audit.Record(ctx, AuditEntry{
		Operation: model.OpUpdateUserStatus,
		Subject:   uid,
		Success:   true,
		Duration:  time.Since(started),
		Detail:    res,
	})
	return res, nil
}
