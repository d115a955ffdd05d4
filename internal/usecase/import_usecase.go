package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/madpixels/lingocards/internal/entity"
	"github.com/madpixels/lingocards/internal/repository"
	"github.com/madpixels/lingocards/internal/tabular"
)

// ImportMetadata carries optional dictionary attributes supplied by the
// caller, e.g. from an existing dictionary being re-imported or from the
// remote catalog. A fresh key is generated regardless, so every import
// produces an independent word set.
type ImportMetadata struct {
	Name        string
	Description string
	Category    string
	Subcategory string
	Author      string
	IsPublic    bool
}

// ImportOption tweaks pipeline behaviour.
type ImportOption func(*importConfig)

type importConfig struct {
	bestEffort bool
	sampleSize int
}

// WithBestEffortColumns substitutes the positional fallback labels when
// classification cannot find the required columns, instead of failing. Meant
// for legacy and already-imported material; the primary import path keeps the
// hard-fail default.
func WithBestEffortColumns() ImportOption {
	return func(cfg *importConfig) { cfg.bestEffort = true }
}

// WithSampleSize overrides how many data rows feed the column classifier.
func WithSampleSize(n int) ImportOption {
	return func(cfg *importConfig) {
		if n > 0 {
			cfg.sampleSize = n
		}
	}
}

// ImportUsecase runs the CSV import pipeline and its CSV export counterpart.
type ImportUsecase interface {
	// Import reads an entire UTF-8 CSV stream, detects its separator,
	// classifies its columns and persists a new dictionary with all
	// parseable words in one transaction.
	Import(ctx context.Context, r io.Reader, meta ImportMetadata, opts ...ImportOption) (*entity.Dictionary, []entity.Word, error)
	// Export writes a dictionary's words back out as CSV.
	Export(ctx context.Context, key string, w io.Writer, sep rune) error
}

// NewImportUsecase wires the repositories with default behaviour.
func NewImportUsecase(dicts repository.DictionaryRepository, words repository.WordRepository, log *logrus.Logger) ImportUsecase {
	return &importUsecase{
		dicts: dicts,
		words: words,
		log:   log,
		clock: time.Now,
	}
}

type importUsecase struct {
	dicts repository.DictionaryRepository
	words repository.WordRepository
	log   *logrus.Logger
	clock func() time.Time
}

func (u *importUsecase) Import(ctx context.Context, r io.Reader, meta ImportMetadata, opts ...ImportOption) (*entity.Dictionary, []entity.Word, error) {
	cfg := importConfig{sampleSize: tabular.ClassificationSampleSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	lines, sep, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}

	if tabular.HasHeader(lines[0]) {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, nil, entity.ErrEmptyFile
	}

	labels, err := u.classify(lines, sep, cfg)
	if err != nil {
		return nil, nil, err
	}

	key, err := gonanoid.New()
	if err != nil {
		return nil, nil, fmt.Errorf("generate dictionary key: %w", err)
	}

	now := u.clock()
	dict := &entity.Dictionary{
		Key:         key,
		Name:        meta.Name,
		Description: meta.Description,
		Category:    meta.Category,
		Subcategory: meta.Subcategory,
		Author:      meta.Author,
		IsPublic:    meta.IsPublic,
		IsActive:    true,
	}
	dict.Normalize(now)
	if err := dict.Validate(); err != nil {
		return nil, nil, err
	}

	words := buildWords(lines, sep, labels, key, meta.Author, now)
	if len(words) == 0 {
		return nil, nil, entity.ErrEmptyFile
	}

	if err := u.dicts.Save(ctx, dict, words); err != nil {
		return nil, nil, err
	}
	u.log.WithFields(logrus.Fields{
		"dictionary": dict.Name,
		"key":        dict.Key,
		"words":      len(words),
	}).Info("dictionary imported")
	return dict, words, nil
}

// classify samples parsed rows and resolves column labels. The primary path
// hard-fails with ErrNotEnoughColumns when either required column is missing;
// best-effort mode falls back to the positional default assignment instead.
func (u *importUsecase) classify(lines []string, sep rune, cfg importConfig) ([]tabular.ColumnKind, error) {
	sampleLen := len(lines)
	if sampleLen > cfg.sampleSize {
		sampleLen = cfg.sampleSize
	}
	sample := make([][]string, 0, sampleLen)
	for _, line := range lines[:sampleLen] {
		sample = append(sample, tabular.ParseLine(line, sep))
	}

	labels := tabular.ClassifyColumns(sample)
	if hasRequiredColumns(labels) {
		return labels, nil
	}
	if cfg.bestEffort {
		u.log.Warn("column classification inconclusive, using positional fallback labels")
		return tabular.FallbackLabels(len(labels)), nil
	}
	return nil, entity.ErrNotEnoughColumns
}

func (u *importUsecase) Export(ctx context.Context, key string, w io.Writer, sep rune) error {
	if _, err := u.dicts.GetByKey(ctx, key); err != nil {
		return err
	}
	words, err := u.words.ListByDictionary(ctx, key)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(tabular.FormatLine(
		[]string{"front_text", "back_text", "hint", "description"}, sep))
	buf.WriteByte('\n')
	for _, word := range words {
		buf.WriteString(tabular.FormatLine(
			[]string{word.FrontText, word.BackText, word.Hint, word.Description}, sep))
		buf.WriteByte('\n')
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// readLines materializes the stream and splits it into trimmed non-empty
// lines, also running separator detection on the raw content.
func readLines(r io.Reader) ([]string, rune, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read file: %w", err)
	}
	if len(data) == 0 {
		return nil, 0, entity.ErrEmptyFile
	}
	if !utf8.Valid(data) {
		return nil, 0, entity.ErrNotUTF8
	}

	content := string(data)
	sep := tabular.DetectSeparator(content)

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, 0, entity.ErrEmptyFile
	}
	return lines, sep, nil
}

func hasRequiredColumns(labels []tabular.ColumnKind) bool {
	var front, back bool
	for _, l := range labels {
		switch l {
		case tabular.ColumnFrontText:
			front = true
		case tabular.ColumnBackText:
			back = true
		}
	}
	return front && back
}

// buildWords parses every data line with the resolved labels. Rows missing
// front or back text after trimming are skipped silently, by design.
func buildWords(lines []string, sep rune, labels []tabular.ColumnKind, dictKey, author string, now time.Time) []entity.Word {
	words := make([]entity.Word, 0, len(lines))
	for _, line := range lines {
		fields := tabular.ParseLine(line, sep)

		var word entity.Word
		for i, field := range fields {
			if i >= len(labels) {
				break
			}
			value := strings.TrimSpace(field)
			switch labels[i] {
			case tabular.ColumnFrontText:
				word.FrontText = value
			case tabular.ColumnBackText:
				word.BackText = value
			case tabular.ColumnHint:
				word.Hint = value
			case tabular.ColumnDescription:
				word.Description = value
			}
		}
		if word.FrontText == "" || word.BackText == "" {
			continue
		}

		word.Dictionary = dictKey
		word.Author = author
		word.Normalize(now)
		words = append(words, word)
	}
	return words
}
