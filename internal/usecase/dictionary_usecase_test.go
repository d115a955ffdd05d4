package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
)

// seedDictionary stores a dictionary with the given words directly through
// the fake repositories, bypassing the import pipeline.
func seedDictionary(t *testing.T, dicts *fakeDictionaryRepo, dict entity.Dictionary, words []entity.Word) entity.Dictionary {
	t.Helper()
	dict.Normalize(time.Now())
	for i := range words {
		words[i].Dictionary = dict.Key
		words[i].Normalize(time.Now())
	}
	if err := dicts.Save(context.Background(), &dict, words); err != nil {
		t.Fatalf("seed dictionary %q: %v", dict.Name, err)
	}
	return dict
}

func TestDictionaryDeleteCascades(t *testing.T) {
	dicts, words := newFakeRepos()
	uc := NewDictionaryUsecase(dicts)

	seedDictionary(t, dicts, entity.Dictionary{Key: "k1", Name: "Animals", IsActive: true}, []entity.Word{
		{FrontText: "cat", BackText: "кот"},
		{FrontText: "dog", BackText: "собака"},
	})

	if err := uc.Delete(context.Background(), "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := uc.Get(context.Background(), "k1"); !errors.Is(err, entity.ErrDictionaryNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrDictionaryNotFound", err)
	}
	if n, _ := words.CountByDictionary(context.Background(), "k1"); n != 0 {
		t.Fatalf("words remaining after cascade = %d, want 0", n)
	}
}

func TestDictionaryDeleteProtected(t *testing.T) {
	dicts, _ := newFakeRepos()
	uc := NewDictionaryUsecase(dicts)

	seedDictionary(t, dicts, entity.Dictionary{Key: "builtin", Name: entity.InternalDictionaryName}, nil)

	if err := uc.Delete(context.Background(), "builtin"); !errors.Is(err, entity.ErrProtectedDictionary) {
		t.Fatalf("Delete() error = %v, want ErrProtectedDictionary", err)
	}
	if _, err := uc.Get(context.Background(), "builtin"); err != nil {
		t.Fatalf("protected dictionary should survive: %v", err)
	}
}

func TestDictionarySetActive(t *testing.T) {
	dicts, _ := newFakeRepos()
	uc := NewDictionaryUsecase(dicts)

	dict := seedDictionary(t, dicts, entity.Dictionary{Key: "k1", Name: "Basics", IsActive: true}, nil)

	if err := uc.SetActive(context.Background(), dict.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	got, err := uc.Get(context.Background(), "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.IsActive {
		t.Fatal("dictionary still active after deactivation")
	}

	if err := uc.SetActive(context.Background(), 999, true); !errors.Is(err, entity.ErrDictionaryNotFound) {
		t.Fatalf("SetActive(unknown id) error = %v, want ErrDictionaryNotFound", err)
	}
	if err := uc.SetActive(context.Background(), 0, true); !errors.Is(err, entity.ErrDictionaryNotFound) {
		t.Fatalf("SetActive(0) error = %v, want ErrDictionaryNotFound", err)
	}
}

func TestDictionaryFetchValidation(t *testing.T) {
	dicts, _ := newFakeRepos()
	uc := NewDictionaryUsecase(dicts)

	if _, err := uc.Fetch(context.Background(), "", repository.Page{Offset: 0, Limit: 0}); !errors.Is(err, entity.ErrInvalidPagination) {
		t.Fatalf("Fetch() error = %v, want ErrInvalidPagination", err)
	}
	if _, err := uc.Get(context.Background(), "  "); !errors.Is(err, entity.ErrEmptyDictionaryKey) {
		t.Fatalf("Get(blank) error = %v, want ErrEmptyDictionaryKey", err)
	}
}

func TestDictionaryUpdateValidation(t *testing.T) {
	dicts, _ := newFakeRepos()
	uc := NewDictionaryUsecase(dicts)

	dict := seedDictionary(t, dicts, entity.Dictionary{Key: "k1", Name: "Basics"}, nil)

	dict.Name = "  "
	if err := uc.Update(context.Background(), &dict); !errors.Is(err, entity.ErrEmptyDictionaryName) {
		t.Fatalf("Update(blank name) error = %v, want ErrEmptyDictionaryName", err)
	}

	dict.Name = "Renamed"
	if err := uc.Update(context.Background(), &dict); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	name, err := uc.DisplayName(context.Background(), "k1")
	if err != nil {
		t.Fatalf("DisplayName() error = %v", err)
	}
	if name != "Renamed" {
		t.Fatalf("DisplayName() = %q, want Renamed", name)
	}
}
