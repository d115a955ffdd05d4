package usecase

import (
	"context"
	"time"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
)

// WordUsecase encapsulates business logic for individual flashcards.
type WordUsecase interface {
	Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Word, error)
	Get(ctx context.Context, id int64) (*entity.Word, error)
	Add(ctx context.Context, word *entity.Word) error
	// Edit updates the text fields of an existing word. Counters and
	// weight are preserved: weight only ever changes through RecordAnswer.
	Edit(ctx context.Context, word *entity.Word) error
	Delete(ctx context.Context, id int64) error
	// RecordAnswer registers a study attempt outcome and persists the
	// recomputed weight.
	RecordAnswer(ctx context.Context, id int64, wasCorrect bool) (*entity.Word, error)
}

// NewWordUsecase wires the repository with default behaviour.
func NewWordUsecase(repo repository.WordRepository) WordUsecase {
	return &wordUsecase{repo: repo, clock: time.Now}
}

type wordUsecase struct {
	repo  repository.WordRepository
	clock func() time.Time
}

func (u *wordUsecase) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Word, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return u.repo.Fetch(ctx, search, page)
}

func (u *wordUsecase) Get(ctx context.Context, id int64) (*entity.Word, error) {
	if id <= 0 {
		return nil, entity.ErrWordNotFound
	}
	return u.repo.GetByID(ctx, id)
}

func (u *wordUsecase) Add(ctx context.Context, word *entity.Word) error {
	if word == nil {
		return entity.ErrEmptyWordText
	}
	word.Normalize(u.clock())
	if err := word.Validate(); err != nil {
		return err
	}
	return u.repo.Save(ctx, word)
}

func (u *wordUsecase) Edit(ctx context.Context, word *entity.Word) error {
	if word == nil || word.ID <= 0 {
		return entity.ErrWordNotFound
	}
	existing, err := u.repo.GetByID(ctx, word.ID)
	if err != nil {
		return err
	}

	existing.FrontText = word.FrontText
	existing.BackText = word.BackText
	existing.Hint = word.Hint
	existing.Description = word.Description
	existing.Normalize(u.clock())
	if err := existing.Validate(); err != nil {
		return err
	}

	*word = *existing
	return u.repo.Update(ctx, existing)
}

func (u *wordUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return entity.ErrWordNotFound
	}
	return u.repo.Delete(ctx, id)
}

func (u *wordUsecase) RecordAnswer(ctx context.Context, id int64, wasCorrect bool) (*entity.Word, error) {
	word, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	word.RecordAnswer(wasCorrect)
	if err := u.repo.Update(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}
