package entity

import (
	"strings"
	"time"
)

// InternalDictionaryName marks the built-in dictionary that ships with the
// application. It is protected from deletion by name convention.
const InternalDictionaryName = "Internal"

// Dictionary is a named collection of vocabulary entries. Words reference it
// through the stable string Key, never through the numeric ID, so a re-import
// can re-key a dictionary without touching existing word rows.
type Dictionary struct {
	ID          int64     `db:"id"`
	Key         string    `db:"guid"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Subcategory string    `db:"subcategory"`
	Author      string    `db:"author"`
	IsPublic    bool      `db:"is_public"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

// Validate checks the invariants that must hold before persistence.
func (d *Dictionary) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyDictionaryName
	}
	if strings.TrimSpace(d.Key) == "" {
		return ErrEmptyDictionaryKey
	}
	return nil
}

// IsProtected reports whether the dictionary may not be deleted.
func (d *Dictionary) IsProtected() bool {
	return d.Name == InternalDictionaryName
}

// Normalize fills defaults before persistence.
func (d *Dictionary) Normalize(now time.Time) {
	d.Name = strings.TrimSpace(d.Name)
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
}
