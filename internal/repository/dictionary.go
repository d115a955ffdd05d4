package repository

import (
	"context"

	"github.com/madpixels/lingocards/internal/entity"
)

// DictionaryRepository defines data access for dictionaries.
type DictionaryRepository interface {
	// Fetch returns a page of dictionaries, optionally filtered by a
	// case-insensitive substring over name, author and description.
	Fetch(ctx context.Context, search string, page Page) ([]entity.Dictionary, error)
	GetByKey(ctx context.Context, key string) (*entity.Dictionary, error)
	// Save inserts the dictionary together with its words in one
	// transaction. Either everything lands or nothing does.
	Save(ctx context.Context, dict *entity.Dictionary, words []entity.Word) error
	Update(ctx context.Context, dict *entity.Dictionary) error
	// Delete removes the dictionary and every word referencing its key as
	// one atomic unit.
	Delete(ctx context.Context, key string) error
	UpdateActiveStatus(ctx context.Context, id int64, active bool) error
	FetchDisplayName(ctx context.Context, key string) (string, error)
}
