package entity

import "errors"

// Validation errors are raised before any storage I/O happens.
var (
	ErrEmptyDictionaryName = errors.New("dictionary name is empty")
	ErrEmptyDictionaryKey  = errors.New("dictionary key is empty")
	ErrEmptyWordText       = errors.New("word front and back text are required")
	ErrInvalidPagination   = errors.New("invalid pagination: limit must be > 0 and offset >= 0")
)

// Parse errors abort an import before anything is written.
var (
	ErrEmptyFile        = errors.New("file contains no data lines")
	ErrNotUTF8          = errors.New("file is not valid UTF-8")
	ErrNotEnoughColumns = errors.New("not enough columns: front and back text columns are required")
)

// Persistence and lookup errors.
var (
	ErrDictionaryExists     = errors.New("dictionary already exists")
	ErrDictionaryNotFound   = errors.New("dictionary not found")
	ErrWordNotFound         = errors.New("word not found")
	ErrNoActiveDictionaries = errors.New("no active dictionaries")
	ErrProtectedDictionary  = errors.New("built-in dictionary cannot be deleted")
)
