//go:generate mockery --name BadgeRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
)

const badgesCollection = "badges"

type BadgeRepository interface {
	List(ctx context.Context) ([]model.Badge, error)
	Count(ctx context.Context) (int64, error)
}

type docBadgeRepository struct {
	store docstore.Store
}

func NewDocBadgeRepository(store docstore.Store) BadgeRepository {
	return &docBadgeRepository{store: store}
}

func (r *docBadgeRepository) List(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	cursor := ""
	for {
		page, err := r.store.List(ctx, badgesCollection, docstore.ListOptions{Limit: docstore.MaxBatchOps, StartAfter: cursor})
		if err != nil {
			return nil, storeErr("docBadgeRepository.List", err)
		}
		for _, d := range page {
			badges = append(badges, model.BadgeFromDoc(d.ID, d.Data))
		}
		if len(page) < docstore.MaxBatchOps {
			return badges, nil
		}
		cursor = page[len(page)-1].ID
	}
}

func (r *docBadgeRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, badgesCollection)
	return n, storeErr("docBadgeRepository.Count", err)
}
