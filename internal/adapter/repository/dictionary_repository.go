package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/infrastructure/database"
	"github.com/madpixels/lingocards/internal/repository"
)

const dictionariesTable = "dictionaries"

var dictionaryColumns = []string{
	"id", "guid", "name", "description", "category", "subcategory",
	"author", "is_public", "is_active", "created_at",
}

type dictionaryRepository struct {
	db *database.DB
}

// NewDictionaryRepository constructs the SQLite-backed dictionary repository.
func NewDictionaryRepository(db *database.DB) repository.DictionaryRepository {
	return &dictionaryRepository{db: db}
}

func (r *dictionaryRepository) Fetch(ctx context.Context, search string, page repository.Page) ([]entity.Dictionary, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	builder := sq.Select(dictionaryColumns...).
		From(dictionariesTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))

	if q := strings.ToLower(strings.TrimSpace(search)); q != "" {
		like := "%" + q + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"ulower(name)": like},
			sq.Like{"ulower(author)": like},
			sq.Like{"ulower(description)": like},
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fetch query: %w", err)
	}

	dicts := []entity.Dictionary{}
	err = r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.SelectContext(ctx, &dicts, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaries: %w", err)
	}
	return dicts, nil
}

func (r *dictionaryRepository) GetByKey(ctx context.Context, key string) (*entity.Dictionary, error) {
	query, args, err := sq.Select(dictionaryColumns...).
		From(dictionariesTable).
		Where(sq.Eq{"guid": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var dict entity.Dictionary
	err = r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.GetContext(ctx, &dict, query, args...)
	})
	if err != nil {
		return nil, translateError(err, entity.ErrDictionaryNotFound)
	}
	return &dict, nil
}

// Save inserts the dictionary and all of its words in a single transaction.
// A failure on any row leaves nothing behind.
func (r *dictionaryRepository) Save(ctx context.Context, dict *entity.Dictionary, words []entity.Word) error {
	insertDict, dictArgs, err := sq.Insert(dictionariesTable).
		Columns("guid", "name", "description", "category", "subcategory",
			"author", "is_public", "is_active", "created_at").
		Values(dict.Key, dict.Name, dict.Description, dict.Category, dict.Subcategory,
			dict.Author, dict.IsPublic, dict.IsActive, dict.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	err = r.db.Write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, insertDict, dictArgs...)
		if err != nil {
			return translateError(err, entity.ErrDictionaryNotFound)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("dictionary insert id: %w", err)
		}
		dict.ID = id

		for i := range words {
			words[i].Dictionary = dict.Key
			if err := insertWordTx(ctx, tx, &words[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *dictionaryRepository) Update(ctx context.Context, dict *entity.Dictionary) error {
	query, args, err := sq.Update(dictionariesTable).
		Set("name", dict.Name).
		Set("description", dict.Description).
		Set("category", dict.Category).
		Set("subcategory", dict.Subcategory).
		Set("author", dict.Author).
		Set("is_public", dict.IsPublic).
		Where(sq.Eq{"id": dict.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return translateError(err, entity.ErrDictionaryNotFound)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update dictionary: %w", err)
		}
		if affected == 0 {
			return entity.ErrDictionaryNotFound
		}
		return nil
	})
}

// Delete removes the dictionary and every word referencing its key as one
// atomic unit.
func (r *dictionaryRepository) Delete(ctx context.Context, key string) error {
	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM words WHERE dictionary = ?", key); err != nil {
			return fmt.Errorf("delete dictionary words: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			"DELETE FROM dictionaries WHERE guid = ?", key)
		if err != nil {
			return fmt.Errorf("delete dictionary: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete dictionary: %w", err)
		}
		if affected == 0 {
			return entity.ErrDictionaryNotFound
		}
		return nil
	})
}

func (r *dictionaryRepository) UpdateActiveStatus(ctx context.Context, id int64, active bool) error {
	return r.db.Write(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE dictionaries SET is_active = ? WHERE id = ?", active, id)
		if err != nil {
			return fmt.Errorf("update active status: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update active status: %w", err)
		}
		if affected == 0 {
			return entity.ErrDictionaryNotFound
		}
		return nil
	})
}

func (r *dictionaryRepository) FetchDisplayName(ctx context.Context, key string) (string, error) {
	var name string
	err := r.db.Read(ctx, func(conn *sqlx.DB) error {
		return conn.GetContext(ctx, &name,
			"SELECT name FROM dictionaries WHERE guid = ?", key)
	})
	if err != nil {
		return "", translateError(err, entity.ErrDictionaryNotFound)
	}
	return name, nil
}
