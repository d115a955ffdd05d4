package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
)

type fakeDictionaryRepo struct {
	mu    sync.RWMutex
	seq   int64
	dicts map[string]*entity.Dictionary
	words *fakeWordRepo
}

func newFakeDictionaryRepo(words *fakeWordRepo) *fakeDictionaryRepo {
	return &fakeDictionaryRepo{dicts: make(map[string]*entity.Dictionary), words: words}
}

func (r *fakeDictionaryRepo) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(search)
	var out []entity.Dictionary
	for _, d := range r.dicts {
		if q == "" ||
			strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Author), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDictionaryRepo) GetByKey(ctx context.Context, key string) (*entity.Dictionary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dicts[key]
	if !ok {
		return nil, entity.ErrDictionaryNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *fakeDictionaryRepo) Save(ctx context.Context, dict *entity.Dictionary, words []entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.dicts[dict.Key]; exists {
		return entity.ErrDictionaryExists
	}
	r.seq++
	dict.ID = r.seq
	clone := *dict
	r.dicts[dict.Key] = &clone
	for i := range words {
		words[i].Dictionary = dict.Key
		if err := r.words.Save(ctx, &words[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeDictionaryRepo) Update(ctx context.Context, dict *entity.Dictionary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.dicts {
		if d.ID == dict.ID {
			clone := *dict
			r.dicts[d.Key] = &clone
			return nil
		}
	}
	return entity.ErrDictionaryNotFound
}

func (r *fakeDictionaryRepo) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dicts[key]; !ok {
		return entity.ErrDictionaryNotFound
	}
	delete(r.dicts, key)
	r.words.deleteByDictionary(key)
	return nil
}

func (r *fakeDictionaryRepo) UpdateActiveStatus(ctx context.Context, id int64, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.dicts {
		if d.ID == id {
			d.IsActive = active
			return nil
		}
	}
	return entity.ErrDictionaryNotFound
}

func (r *fakeDictionaryRepo) FetchDisplayName(ctx context.Context, key string) (string, error) {
	d, err := r.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

func (r *fakeDictionaryRepo) activeKeys() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make(map[string]bool)
	for _, d := range r.dicts {
		if d.IsActive {
			keys[d.Key] = true
		}
	}
	return keys
}

type fakeWordRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]*entity.Word
	dicts *fakeDictionaryRepo
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[int64]*entity.Word)}
}

func (r *fakeWordRepo) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	active := r.dicts.activeKeys()
	if len(active) == 0 {
		return nil, entity.ErrNoActiveDictionaries
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	q := strings.ToLower(search)
	var out []entity.Word
	for _, w := range r.items {
		if !active[w.Dictionary] {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(w.FrontText), q) ||
			strings.Contains(strings.ToLower(w.BackText), q) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.items[id]
	if !ok {
		return nil, entity.ErrWordNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *fakeWordRepo) Save(ctx context.Context, word *entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	word.ID = r.seq
	clone := *word
	r.items[clone.ID] = &clone
	return nil
}

func (r *fakeWordRepo) Update(ctx context.Context, word *entity.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[word.ID]; !ok {
		return entity.ErrWordNotFound
	}
	clone := *word
	r.items[clone.ID] = &clone
	return nil
}

func (r *fakeWordRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeWordRepo) FetchStudyPool(ctx context.Context) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	active := r.dicts.activeKeys()
	if len(active) == 0 {
		return nil, entity.ErrNoActiveDictionaries
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Word
	for _, w := range r.items {
		if active[w.Dictionary] {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWordRepo) CountByDictionary(ctx context.Context, key string) (int, error) {
	words, err := r.ListByDictionary(ctx, key)
	if err != nil {
		return 0, err
	}
	return len(words), nil
}

func (r *fakeWordRepo) ListByDictionary(ctx context.Context, key string) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.Word
	for id := int64(1); id <= r.seq; id++ {
		if w, ok := r.items[id]; ok && w.Dictionary == key {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWordRepo) deleteByDictionary(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.items {
		if w.Dictionary == key {
			delete(r.items, id)
		}
	}
}

// newFakeRepos wires the two fakes together the way the real repositories
// share one database.
func newFakeRepos() (*fakeDictionaryRepo, *fakeWordRepo) {
	words := newFakeWordRepo()
	dicts := newFakeDictionaryRepo(words)
	words.dicts = dicts
	return dicts, words
}
