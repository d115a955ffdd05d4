package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/madpixels/lingocards/internal/entity"
)

// initSchema creates the tables on first open and seeds the built-in
// dictionary. Words reference dictionaries through the guid string key, not
// the numeric id, so a dictionary can be re-keyed on re-import without
// touching word rows.
func initSchema(conn *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dictionaries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			guid TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			subcategory TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			is_public INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dictionary TEXT NOT NULL,
			front_text TEXT NOT NULL,
			back_text TEXT NOT NULL,
			hint TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL DEFAULT 0,
			fail INTEGER NOT NULL DEFAULT 0,
			weight INTEGER NOT NULL DEFAULT 500,
			author TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_dictionary ON words (dictionary)`,
		`CREATE INDEX IF NOT EXISTS idx_words_weight ON words (weight)`,
	}
	for _, stmt := range statements {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return seedInternalDictionary(conn)
}

// seedInternalDictionary makes sure the protected built-in dictionary exists.
func seedInternalDictionary(conn *sqlx.DB) error {
	var count int
	err := conn.Get(&count,
		"SELECT COUNT(*) FROM dictionaries WHERE name = ?", entity.InternalDictionaryName)
	if err != nil {
		return fmt.Errorf("check internal dictionary: %w", err)
	}
	if count > 0 {
		return nil
	}

	key, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate dictionary key: %w", err)
	}
	_, err = conn.Exec(
		`INSERT INTO dictionaries (guid, name, description, is_active) VALUES (?, ?, ?, 1)`,
		key, entity.InternalDictionaryName, "Built-in dictionary for manually added words")
	if err != nil {
		return fmt.Errorf("seed internal dictionary: %w", err)
	}
	return nil
}
