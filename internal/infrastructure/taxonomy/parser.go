package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flavorquiz/backend/internal/domain"
)

// CSV header names, matched case-insensitively after trimming
const (
	ColumnProductName = "product name"
	ColumnName        = "name"
	ColumnEdition     = "edition"
	ColumnPrimary     = "primary"
	ColumnSecondary   = "secondary"
	ColumnTertiary    = "tertiary"
	ColumnQuaternary  = "quaternary"
	ColumnNotes       = "notes"
)

// LoadFile reads a taxonomy file, choosing the parser from the extension
func LoadFile(path string) ([]domain.ProductCategoryEntry, error) {
	parse, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxonomy file: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parserFor(path string) (func(io.Reader) ([]domain.ProductCategoryEntry, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV, nil
	case ".yaml", ".yml":
		return ParseYAML, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filepath.Ext(path))
}

// ParseCSV maps a header-first CSV onto entries. The product name column is
// required; edition and notes are accepted and ignored. Rows without a name are skipped.
// A file with no rows yields an empty, non-nil slice.
func ParseCSV(r io.Reader) ([]domain.ProductCategoryEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.ProductCategoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := indexColumns(header)
	nameCol, ok := columns[ColumnProductName]
	if !ok {
		nameCol, ok = columns[ColumnName]
	}
	if !ok {
		return nil, fmt.Errorf("csv header has no %q column", ColumnProductName)
	}

	entries := []domain.ProductCategoryEntry{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		name := field(record, nameCol)
		if name == "" {
			continue
		}

		entries = append(entries, domain.ProductCategoryEntry{
			Name:       name,
			Primary:    columnValue(record, columns, ColumnPrimary),
			Secondary:  columnValue(record, columns, ColumnSecondary),
			Tertiary:   columnValue(record, columns, ColumnTertiary),
			Quaternary: columnValue(record, columns, ColumnQuaternary),
		})
	}

	return entries, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return columns
}

func columnValue(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok {
		return ""
	}
	return field(record, i)
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// yamlDocument is the keyed form: a top-level "products" list
type yamlDocument struct {
	Products []domain.ProductCategoryEntry `yaml:"products"`
}

// ParseYAML accepts either a bare list of entries or a document with a
// top-level "products" list.
func ParseYAML(r io.Reader) ([]domain.ProductCategoryEntry, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.ProductCategoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}

	var entries []domain.ProductCategoryEntry
	if len(root.Content) > 0 && root.Content[0].Kind == yaml.SequenceNode {
		if err := root.Decode(&entries); err != nil {
			return nil, fmt.Errorf("failed to decode yaml entries: %w", err)
		}
	} else {
		var doc yamlDocument
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode yaml document: %w", err)
		}
		entries = doc.Products
	}

	kept := entries[:0]
	for _, e := range entries {
		e = trimEntry(e)
		if e.Name != "" {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return []domain.ProductCategoryEntry{}, nil
	}
	return kept, nil
}

func trimEntry(e domain.ProductCategoryEntry) domain.ProductCategoryEntry {
	return domain.ProductCategoryEntry{
		Name:       strings.TrimSpace(e.Name),
		Primary:    strings.TrimSpace(e.Primary),
		Secondary:  strings.TrimSpace(e.Secondary),
		Tertiary:   strings.TrimSpace(e.Tertiary),
		Quaternary: strings.TrimSpace(e.Quaternary),
	}
}
