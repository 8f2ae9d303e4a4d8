//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"lingo_admin_console/internal/docstore"
	"lingo_admin_console/internal/model"
	"lingo_admin_console/internal/purge"
)

const catalogRoot = "languages"

// ContentRepository reads and deletes catalog items under
// languages/{languageId}/levels/{level}/{type}.
type ContentRepository interface {
	ListItems(ctx context.Context, languageID string, level model.Level, typ model.ContentType) ([]model.ContentItem, error)
	GetItem(ctx context.Context, languageID string, level model.Level, typ model.ContentType, id string) (*model.ContentItem, error)
	DeleteItem(ctx context.Context, languageID string, level model.Level, typ model.ContentType, id string) error
	// Index loads every content type of one level. It satisfies
	// purge.CatalogFunc.
	Index(ctx context.Context, languageID string, level model.Level) (*model.ContentIndex, error)
	ListLanguages(ctx context.Context) ([]string, error)
	CountLanguages(ctx context.Context) (int64, error)
}

type docContentRepository struct {
	store    docstore.Store
	pageSize int
}

func NewDocContentRepository(store docstore.Store, pageSize int) ContentRepository {
	if pageSize <= 0 || pageSize > docstore.MaxBatchOps {
		pageSize = docstore.MaxBatchOps
	}
	return &docContentRepository{store: store, pageSize: pageSize}
}

func (r *docContentRepository) ListItems(ctx context.Context, languageID string, level model.Level, typ model.ContentType) ([]model.ContentItem, error) {
	path := purge.CatalogPath(languageID, level, typ)
	var items []model.ContentItem
	cursor := ""
	for {
		page, err := r.store.List(ctx, path, docstore.ListOptions{Limit: r.pageSize, StartAfter: cursor})
		if err != nil {
			return nil, storeErr(fmt.Sprintf("docContentRepository.ListItems %s", path), err)
		}
		for _, d := range page {
			items = append(items, model.ContentItemFromDoc(languageID, level, typ, d.ID, d.Data))
		}
		if len(page) < r.pageSize {
			return items, nil
		}
		cursor = page[len(page)-1].ID
	}
}

func (r *docContentRepository) GetItem(ctx context.Context, languageID string, level model.Level, typ model.ContentType, id string) (*model.ContentItem, error) {
	doc, err := r.store.Get(ctx, docstore.Join(purge.CatalogPath(languageID, level, typ), id))
	if err != nil {
		return nil, storeErr("docContentRepository.GetItem", err)
	}
	item := model.ContentItemFromDoc(languageID, level, typ, doc.ID, doc.Data)
	return &item, nil
}

func (r *docContentRepository) DeleteItem(ctx context.Context, languageID string, level model.Level, typ model.ContentType, id string) error {
	err := r.store.Delete(ctx, docstore.Join(purge.CatalogPath(languageID, level, typ), id))
	return storeErr("docContentRepository.DeleteItem", err)
}

func (r *docContentRepository) Index(ctx context.Context, languageID string, level model.Level) (*model.ContentIndex, error) {
	var all []model.ContentItem
	for _, typ := range model.ContentTypes {
		items, err := r.ListItems(ctx, languageID, level, typ)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
	}
	return model.NewContentIndex(all), nil
}

func (r *docContentRepository) ListLanguages(ctx context.Context) ([]string, error) {
	var ids []string
	cursor := ""
	for {
		page, err := r.store.List(ctx, catalogRoot, docstore.ListOptions{Limit: r.pageSize, StartAfter: cursor})
		if err != nil {
			return nil, storeErr("docContentRepository.ListLanguages", err)
		}
		for _, d := range page {
			ids = append(ids, d.ID)
		}
		if len(page) < r.pageSize {
			return ids, nil
		}
		cursor = page[len(page)-1].ID
	}
}

func (r *docContentRepository) CountLanguages(ctx context.Context) (int64, error) {
	n, err := r.store.Count(ctx, catalogRoot)
	return n, storeErr("docContentRepository.CountLanguages", err)
}
