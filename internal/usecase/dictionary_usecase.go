package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
)

// DictionaryUsecase encapsulates business logic for managing dictionaries.
type DictionaryUsecase interface {
	Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Dictionary, error)
	Get(ctx context.Context, key string) (*entity.Dictionary, error)
	Update(ctx context.Context, dict *entity.Dictionary) error
	// Delete removes a dictionary and cascades to its words. The built-in
	// dictionary is protected by name convention.
	Delete(ctx context.Context, key string) error
	SetActive(ctx context.Context, id int64, active bool) error
	DisplayName(ctx context.Context, key string) (string, error)
}

// NewDictionaryUsecase wires the repository with default behaviour.
func NewDictionaryUsecase(repo repository.DictionaryRepository) DictionaryUsecase {
	return &dictionaryUsecase{repo: repo, clock: time.Now}
}

type dictionaryUsecase struct {
	repo  repository.DictionaryRepository
	clock func() time.Time
}

func (u *dictionaryUsecase) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Dictionary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Fetch(ctx, search, page)
}

func (u *dictionaryUsecase) Get(ctx context.Context, key string) (*entity.Dictionary, error) {
	if strings.TrimSpace(key) == "" {
		return nil, entity.ErrEmptyDictionaryKey
	}
	return u.repo.GetByKey(ctx, key)
}

func (u *dictionaryUsecase) Update(ctx context.Context, dict *entity.Dictionary) error {
	if dict == nil {
		return entity.ErrDictionaryNotFound
	}
	dict.Normalize(u.clock())
	if err := dict.Validate(); err != nil {
		return err
	}
	return u.repo.Update(ctx, dict)
}

func (u *dictionaryUsecase) Delete(ctx context.Context, key string) error {
	existing, err := u.Get(ctx, key)
	if err != nil {
		return err
	}
	if existing.IsProtected() {
		return entity.ErrProtectedDictionary
	}
	return u.repo.Delete(ctx, key)
}

func (u *dictionaryUsecase) SetActive(ctx context.Context, id int64, active bool) error {
	if id <= 0 {
		return entity.ErrDictionaryNotFound
	}
	return u.repo.UpdateActiveStatus(ctx, id, active)
}

func (u *dictionaryUsecase) DisplayName(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", entity.ErrEmptyDictionaryKey
	}
	return u.repo.FetchDisplayName(ctx, key)
}
