package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/infrastructure/database"
	"github.com/madpixels/lingocards/internal/repository"
)

func newTestRepos(t *testing.T) (repository.DictionaryRepository, repository.WordRepository) {
	t.Helper()
	db, cleanup, err := database.NewMemoryConnection()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewDictionaryRepository(db), NewWordRepository(db)
}

func testDict(key, name, subcategory string) *entity.Dictionary {
	return &entity.Dictionary{
		Key:         key,
		Name:        name,
		Subcategory: subcategory,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

func testWord(front, back string) entity.Word {
	w := entity.Word{FrontText: front, BackText: back}
	w.Normalize(time.Now())
	return w
}

// deactivateInternal takes the seeded built-in dictionary out of the active
// set so tests control exactly which dictionaries participate.
func deactivateInternal(t *testing.T, dicts repository.DictionaryRepository) {
	t.Helper()
	ctx := context.Background()
	all, err := dicts.Fetch(ctx, "", repository.Page{Limit: 10})
	require.NoError(t, err)
	for _, d := range all {
		if d.Name == entity.InternalDictionaryName {
			require.NoError(t, dicts.UpdateActiveStatus(ctx, d.ID, false))
			return
		}
	}
	t.Fatal("built-in dictionary not seeded")
}

func TestDictionarySaveAndGet(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	dict := testDict("key1", "Animals", "basics")
	err := dicts.Save(ctx, dict, []entity.Word{
		testWord("cat", "кот"),
		testWord("dog", "собака"),
	})
	require.NoError(t, err)
	require.NotZero(t, dict.ID)

	got, err := dicts.GetByKey(ctx, "key1")
	require.NoError(t, err)
	require.Equal(t, "Animals", got.Name)
	require.Equal(t, "basics", got.Subcategory)
	require.True(t, got.IsActive)

	count, err := words.CountByDictionary(ctx, "key1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	listed, err := words.ListByDictionary(ctx, "key1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "cat", listed[0].FrontText)
	require.Equal(t, entity.WeightInitial, listed[0].Weight)

	_, err = dicts.GetByKey(ctx, "missing")
	require.ErrorIs(t, err, entity.ErrDictionaryNotFound)
}

func TestDictionarySaveDuplicateKey(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("dup", "First", ""), nil))
	err := dicts.Save(ctx, testDict("dup", "Second", ""), []entity.Word{testWord("a", "b")})
	require.ErrorIs(t, err, entity.ErrDictionaryExists)

	// The failed transaction must not leave orphan words behind.
	count, err := words.CountByDictionary(ctx, "dup")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestDictionaryDeleteCascades(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("key1", "Animals", ""), []entity.Word{
		testWord("cat", "кот"),
		testWord("dog", "собака"),
		testWord("fox", "лиса"),
	}))

	require.NoError(t, dicts.Delete(ctx, "key1"))

	_, err := dicts.GetByKey(ctx, "key1")
	require.ErrorIs(t, err, entity.ErrDictionaryNotFound)
	count, err := words.CountByDictionary(ctx, "key1")
	require.NoError(t, err)
	require.Zero(t, count)

	require.ErrorIs(t, dicts.Delete(ctx, "key1"), entity.ErrDictionaryNotFound)
}

func TestWordFetchRelevanceOrder(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("key1", "Animals", ""), []entity.Word{
		testWord("bobcat", "рысь"),
		testWord("category", "категория"),
		testWord("cat", "кот"),
		testWord("dog", "собака"),
	}))

	got, err := words.Fetch(ctx, "cat", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "cat", got[0].FrontText)
	require.Equal(t, "category", got[1].FrontText)
	require.Equal(t, "bobcat", got[2].FrontText)
}

func TestWordFetchScopedToActive(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()
	deactivateInternal(t, dicts)

	active := testDict("on", "Active", "")
	require.NoError(t, dicts.Save(ctx, active, []entity.Word{testWord("cat", "кот")}))
	dormant := testDict("off", "Dormant", "")
	dormant.IsActive = false
	require.NoError(t, dicts.Save(ctx, dormant, []entity.Word{testWord("catfish", "сом")}))

	got, err := words.Fetch(ctx, "cat", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "cat", got[0].FrontText)

	require.NoError(t, dicts.UpdateActiveStatus(ctx, active.ID, false))
	_, err = words.Fetch(ctx, "cat", repository.Page{Limit: 10})
	require.ErrorIs(t, err, entity.ErrNoActiveDictionaries)
}

func TestWordUpdate(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("key1", "Animals", ""), []entity.Word{
		testWord("cat", "кот"),
	}))
	listed, err := words.ListByDictionary(ctx, "key1")
	require.NoError(t, err)

	word := listed[0]
	word.RecordAnswer(true)
	require.NoError(t, words.Update(ctx, &word))

	got, err := words.GetByID(ctx, word.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Success)
	require.Equal(t, word.Weight, got.Weight)

	missing := word
	missing.ID = 9999
	require.ErrorIs(t, words.Update(ctx, &missing), entity.ErrWordNotFound)
}

func TestStudyPoolDedupKeepsLowestWeight(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()
	deactivateInternal(t, dicts)

	// Two active sources share the subcategory, so the random pick is
	// deterministic, and both carry the same card at different weights.
	duplicate := testWord("cat", "кот")
	duplicate.Weight = 300
	require.NoError(t, dicts.Save(ctx, testDict("k1", "First", "animals"), []entity.Word{
		testWord("cat", "кот"),
		testWord("dog", "собака"),
	}))
	require.NoError(t, dicts.Save(ctx, testDict("k2", "Second", "animals"), []entity.Word{
		duplicate,
		testWord("fox", "лиса"),
	}))

	pool, err := words.FetchStudyPool(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 3)

	var cat *entity.Word
	for i := range pool {
		if pool[i].FrontText == "cat" {
			cat = &pool[i]
		}
	}
	require.NotNil(t, cat)
	require.Equal(t, 300, cat.Weight)
}

func TestStudyPoolRequiresActiveDictionaries(t *testing.T) {
	dicts, words := newTestRepos(t)
	deactivateInternal(t, dicts)

	_, err := words.FetchStudyPool(context.Background())
	require.ErrorIs(t, err, entity.ErrNoActiveDictionaries)
}

func TestUpdateActiveStatusUnknownID(t *testing.T) {
	dicts, _ := newTestRepos(t)
	err := dicts.UpdateActiveStatus(context.Background(), 9999, true)
	require.ErrorIs(t, err, entity.ErrDictionaryNotFound)
}

func TestWordFetchCaseInsensitiveCyrillic(t *testing.T) {
	dicts, words := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("key1", "Greetings", ""), []entity.Word{
		testWord("hello", "Привет"),
		testWord("ПРИВЕТСТВИЕ", "greeting"),
		testWord("dog", "собака"),
	}))

	got, err := words.Fetch(ctx, "привет", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Привет", got[0].BackText)
	require.Equal(t, "ПРИВЕТСТВИЕ", got[1].FrontText)
}

func TestDictionaryFetchCaseInsensitiveCyrillic(t *testing.T) {
	dicts, _ := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, dicts.Save(ctx, testDict("key1", "СЛОВАРЬ", ""), nil))

	got, err := dicts.Fetch(ctx, "словарь", repository.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "СЛОВАРЬ", got[0].Name)
}
