package repository

import (
	"context"

	"github.com/madpixels/lingocards/internal/entity"
)

// WordRepository defines data access for flashcards. Fetch and FetchStudyPool
// are implicitly scoped to active dictionaries; both return
// entity.ErrNoActiveDictionaries when no dictionary is active, which is
// distinct from an empty result.
type WordRepository interface {
	// Fetch returns a page of words filtered by a case-insensitive
	// substring over front and back text, ordered by relevance tier
	// (exact, prefix, substring, rest) and then by insertion order.
	Fetch(ctx context.Context, search string, page Page) ([]entity.Word, error)
	GetByID(ctx context.Context, id int64) (*entity.Word, error)
	Save(ctx context.Context, word *entity.Word) error
	Update(ctx context.Context, word *entity.Word) error
	Delete(ctx context.Context, id int64) error
	// FetchStudyPool returns the candidate pool for one study session: all
	// words of a single randomly chosen subcategory among active
	// dictionaries, deduplicated by (front, back) keeping the lowest-weight
	// duplicate.
	FetchStudyPool(ctx context.Context) ([]entity.Word, error)
	// CountByDictionary reports how many words reference the given
	// dictionary key.
	CountByDictionary(ctx context.Context, key string) (int, error)
	ListByDictionary(ctx context.Context, key string) ([]entity.Word, error)
}
