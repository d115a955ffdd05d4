package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/infrastructure/database"
	"github.com/madpixels/lingocards/internal/repository"
)

const wordsTable = "words"

var wordColumns = []string{
	"w.id", "w.dictionary", "w.front_text", "w.back_text", "w.hint",
	"w.description", "w.success", "w.fail", "w.weight", "w.author", "w.created_at",
}

type wordRepository struct {
	db *database.DB
}

// NewWordRepository constructs the SQLite-backed word repository.
func NewWordRepository(db *database.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

// Fetch lists words of active dictionaries only. When a search term is given,
// results are ordered by relevance tier — exact match, prefix, substring,
// rest — and within a tier by insertion order, so identical inputs always
// produce the same ordering.
func (r *wordRepository) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Word, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	builder := sq.Select(wordColumns...).
		From(wordsTable + " w").
		Join("dictionaries d ON d.guid = w.dictionary").
		Where(sq.Eq{"d.is_active": true}).
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))

	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		like := "%" + q + "%"
		prefix := q + "%"
		builder = builder.
			Where(sq.Or{
				sq.Like{"ulower(w.front_text)": like},
				sq.Like{"ulower(w.back_text)": like},
			}).
			OrderByClause(sq.Expr(
				`CASE
					WHEN ulower(w.front_text) = ? OR ulower(w.back_text) = ? THEN 0
					WHEN ulower(w.front_text) LIKE ? OR ulower(w.back_text) LIKE ? THEN 1
					WHEN ulower(w.front_text) LIKE ? OR ulower(w.back_text) LIKE ? THEN 2
					ELSE 3
				END`, q, q, prefix, prefix, like, like)).
			OrderBy("w.id")
	} else {
		builder = builder.OrderBy("w.id")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	words := []entity.Word{}
	err = r.db.Read(ctx, func(conn *sqlx.DB) error {
		if err := ensureActiveDictionaries(ctx, conn); err != nil {
			return err
		}
		return conn.SelectContext(ctx, &words, query, args...)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNoActiveDictionaries) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch words: %w", err)
	}
	return words, nil
}

func (r *wordRepository) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	var word entity.Word
	err := r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.GetContext(ctx, &word,
			"SELECT * FROM words WHERE id = ?", id)
	})
	if err != nil {
		return nil, translateError(err, entity.ErrWordNotFound)
	}
	return &word, nil
}

func (r *wordRepository) Save(ctx context.Context, word *entity.Word) error {
	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		return insertWordTx(ctx, tx, word)
	})
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word) error {
	query, args, err := sq.Update(wordsTable).
		Set("front_text", word.FrontText).
		Set("back_text", word.BackText).
		Set("hint", word.Hint).
		Set("description", word.Description).
		Set("success", word.Success).
		Set("fail", word.Fail).
		Set("weight", word.Weight).
		Where(sq.Eq{"id": word.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return translateError(err, entity.ErrWordNotFound)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update word: %w", err)
		}
		if affected == 0 {
			return entity.ErrWordNotFound
		}
		return nil
	})
}

func (r *wordRepository) Delete(ctx context.Context, id int64) error {
	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("delete word: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete word: %w", err)
		}
		if affected == 0 {
			return entity.ErrWordNotFound
		}
		return nil
	})
}

// FetchStudyPool selects all words from one randomly chosen subcategory of
// the active dictionaries, keeping a study session thematically coherent.
// Near-duplicate entries across sources are collapsed to the lowest-weight
// copy so they cannot inflate sampling.
func (r *wordRepository) FetchStudyPool(ctx context.Context) ([]entity.Word, error) {
	words := []entity.Word{}
	err := r.db.Read(ctx, func(conn *sqlx.DB) error {
		if err := ensureActiveDictionaries(ctx, conn); err != nil {
			return err
		}

		var subcategory string
		err := conn.GetContext(ctx, &subcategory,
			"SELECT subcategory FROM dictionaries WHERE is_active = 1 ORDER BY RANDOM() LIMIT 1")
		if err != nil {
			return fmt.Errorf("pick subcategory: %w", err)
		}

		query, args, err := sq.Select(wordColumns...).
			From(wordsTable + " w").
			Join("dictionaries d ON d.guid = w.dictionary").
			Where(sq.Eq{"d.is_active": true, "d.subcategory": subcategory}).
			OrderBy("w.id").
			ToSql()
		if err != nil {
			return fmt.Errorf("build pool query: %w", err)
		}
		return conn.SelectContext(ctx, &words, query, args...)
	})
	if err != nil {
		if errors.Is(err, entity.ErrNoActiveDictionaries) {
			return nil, err
		}
		return nil, fmt.Errorf("fetch study pool: %w", err)
	}
	return dedupByText(words), nil
}

func (r *wordRepository) CountByDictionary(ctx context.Context, key string) (int, error) {
	var count int
	err := r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.GetContext(ctx, &count,
			"SELECT COUNT(*) FROM words WHERE dictionary = ?", key)
	})
	if err != nil {
		return 0, fmt.Errorf("count words: %w", err)
	}
	return count, nil
}

func (r *wordRepository) ListByDictionary(ctx context.Context, key string) ([]entity.Word, error) {
	words := []entity.Word{}
	err := r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.SelectContext(ctx, &words,
			"SELECT * FROM words WHERE dictionary = ? ORDER BY id", key)
	})
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

// ensureActiveDictionaries distinguishes "nothing is active" from an empty
// result set: the former needs different caller messaging. It runs inside
// the caller's read callback so the check and the query see the same state.
func ensureActiveDictionaries(ctx context.Context, conn *sqlx.DB) error {
	var count int
	if err := conn.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM dictionaries WHERE is_active = 1"); err != nil {
		return fmt.Errorf("count active dictionaries: %w", err)
	}
	if count == 0 {
		return entity.ErrNoActiveDictionaries
	}
	return nil
}

// dedupByText collapses words sharing the same (front, back) pair, keeping
// the lowest-weight duplicate. Input order is preserved for survivors.
func dedupByText(words []entity.Word) []entity.Word {
	type textKey struct{ front, back string }
	index := make(map[textKey]int, len(words))
	result := make([]entity.Word, 0, len(words))

	for _, w := range words {
		key := textKey{
			front: strings.ToLower(strings.TrimSpace(w.FrontText)),
			back:  strings.ToLower(strings.TrimSpace(w.BackText)),
		}
		if at, seen := index[key]; seen {
			if w.Weight < result[at].Weight {
				result[at] = w
			}
			continue
		}
		index[key] = len(result)
		result = append(result, w)
	}
	return result
}

// insertWordTx inserts a single word inside an existing transaction. Shared
// with the dictionary repository's transactional save.
func insertWordTx(ctx context.Context, tx *sqlx.Tx, word *entity.Word) error {
	query, args, err := sq.Insert(wordsTable).
		Columns("dictionary", "front_text", "back_text", "hint", "description",
			"success", "fail", "weight", "author", "created_at").
		Values(word.Dictionary, word.FrontText, word.BackText, word.Hint, word.Description,
			word.Success, word.Fail, word.Weight, word.Author, word.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, entity.ErrWordNotFound)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("word insert id: %w", err)
	}
	word.ID = id
	return nil
}
