//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/middleware"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/purge"
)

const (
	DefaultUserPageSize = 50
	MaxUserPageSize     = 500
)

type UserRepository interface {
	FindByID(ctx context.Context, uid string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, cursor string, limit int) (model.UserPage, error)
	// SetStatus updates the status field. When the user document is missing
	// it is created with merge and repaired is true.
	SetStatus(ctx context.Context, uid string, status model.UserStatus) (repaired bool, err error)
	Count(ctx context.Context) (int64, error)
	Collections(ctx context.Context, uid string) ([]model.CollectionInfo, error)
}

type docUserRepository struct {
	store docstore.Store
}

func NewDocUserRepository(store docstore.Store) UserRepository {
	return &docUserRepository{store: store}
}

func (r *docUserRepository) FindByID(ctx context.Context, uid string) (*model.User, error) {
	doc, err := r.store.Get(ctx, purge.UserPath(uid))
	if err != nil {
		return nil, storeErr("docUserRepository.FindByID", err)
	}
	u := model.UserFromDoc(doc.ID, doc.Data)
	return &u, nil
}

func (r *docUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	docs, err := r.store.Query(ctx, purge.UsersCollection, "email", email, 1)
	if err != nil {
		return nil, storeErr("docUserRepository.FindByEmail", err)
	}
	if len(docs) == 0 {
		return nil, model.ErrNotFound
	}
	u := model.UserFromDoc(docs[0].ID, docs[0].Data)
	return &u, nil
}

func (r *docUserRepository) List(ctx context.Context, cursor string, limit int) (model.UserPage, error) {
	if limit <= 0 {
		limit = DefaultUserPageSize
	}
	if limit > MaxUserPageSize {
		limit = MaxUserPageSize
	}
	docs, err := r.store.List(ctx, purge.UsersCollection, docstore.ListOptions{Limit: limit, StartAfter: cursor})
	if err != nil {
		return model.UserPage{}, storeErr("docUserRepository.List", err)
	}
	page := model.UserPage{Users: make([]model.User, 0, len(docs))}
	for _, d := range docs {
		page.Users = append(page.Users, model.UserFromDoc(d.ID, d.Data))
	}
	if len(docs) == limit {
		page.NextCursor = docs[len(docs)-1].ID
	}
	return page, nil
}

func (r *docUserRepository) SetStatus(ctx context.Context, uid string, status model.UserStatus) (bool, error) {
	logger := middleware.GetLogger(ctx)
	fields := map[string]any{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}
	err := r.store.Update(ctx, purge.UserPath(uid), fields)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return false, storeErr("docUserRepository.SetStatus", err)
	}

	logger.Warn("User document missing on status update, repairing", "uid", uid, "status", status)
	if err := r.store.Set(ctx, purge.UserPath(uid), fields, true); err != nil {
		return false, storeErr("docUserRepository.SetStatus", err)
	}
	return true, nil
}

func (r *docUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, purge.UsersCollection)
	return n, storeErr("docUserRepository.Count", err)
}

// Collections lists whatever subcollections the user document actually has,
// including names outside the known deletion list.
func (r *docUserRepository) Collections(ctx context.Context, uid string) ([]model.CollectionInfo, error) {
	names, err := r.store.Collections(ctx, purge.UserPath(uid))
	if err != nil {
		return nil, storeErr("docUserRepository.Collections", err)
	}
	out := make([]model.CollectionInfo, 0, len(names))
	for _, name := range names {
		n, err := r.store.Count(ctx, purge.UserCollectionPath(uid, name))
		if err != nil {
			return nil, storeErr("docUserRepository.Collections", err)
		}
		out = append(out, model.CollectionInfo{Name: name, Documents: n})
	}
	return out, nil
}
