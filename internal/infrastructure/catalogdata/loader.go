// Package catalogdata loads the book catalog and its reference tables from
// YAML, either from disk or from the bundled sample.
package catalogdata

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/bookconnect/internal/config"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/catalog"
	"github.com/alexisbeaulieu97/bookconnect/internal/domain/reference"
	"github.com/alexisbeaulieu97/bookconnect/internal/ports"
	bcerrors "github.com/alexisbeaulieu97/bookconnect/pkg/errors"
)

// SampleName is the path reported for the bundled dataset.
const SampleName = "embedded:books.yaml"

//go:embed sample/books.yaml
var sampleData []byte

type datasetFile struct {
	Authors yaml.Node    `yaml:"authors"`
	Genres  yaml.Node    `yaml:"genres"`
	Books   []bookRecord `yaml:"books"`
}

type bookRecord struct {
	ID          string    `yaml:"id" validate:"required"`
	Title       string    `yaml:"title" validate:"required"`
	Author      string    `yaml:"author" validate:"required"`
	Image       string    `yaml:"image" validate:"omitempty,uri"`
	Published   time.Time `yaml:"published"`
	Description string    `yaml:"description"`
	Genres      []string  `yaml:"genres" validate:"dive,required"`
}

// Loader implements ports.CatalogSource.
type Loader struct {
	path   string
	logger ports.Logger
}

// NewFileLoader reads the dataset at path. An empty path selects the
// bundled sample.
func NewFileLoader(path string, logger ports.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// NewEmbeddedLoader reads the bundled sample dataset.
func NewEmbeddedLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Source names where the loader reads from.
func (l *Loader) Source() string {
	if l.path == "" {
		return SampleName
	}
	return l.path
}

// Load reads, parses and validates the dataset.
func (l *Loader) Load(ctx context.Context) (*ports.Catalog, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	name := l.Source()
	l.logDebug(ctx, "loading catalog dataset", map[string]interface{}{"source": name})

	data := sampleData
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			l.logError(ctx, "failed to read catalog dataset", err, map[string]interface{}{"source": name})
			return nil, bcerrors.NewLoadError(l.path, err)
		}
		data = raw
	}

	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	result, warnings, err := parse(name, data)
	if err != nil {
		l.logError(ctx, "catalog dataset rejected", err, map[string]interface{}{"source": name})
		return nil, err
	}
	for _, warning := range warnings {
		l.logWarn(ctx, warning, map[string]interface{}{"source": name})
	}

	l.logInfo(ctx, "catalog dataset loaded", map[string]interface{}{
		"source":  name,
		"entries": len(result.Entries),
		"authors": result.Authors.Len(),
		"genres":  result.Genres.Len(),
		"skipped": result.Skipped,
	})
	return result, nil
}

// Parse decodes a dataset document. name is used in error messages.
func Parse(name string, data []byte) (*ports.Catalog, error) {
	result, _, err := parse(name, data)
	return result, err
}

func parse(name string, data []byte) (*ports.Catalog, []string, error) {
	var doc datasetFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, bcerrors.NewParseError(name, config.ExtractLine(err), err)
	}

	authors, err := decodeTable(name, "authors", &doc.Authors)
	if err != nil {
		return nil, nil, err
	}
	genres, err := decodeTable(name, "genres", &doc.Genres)
	if err != nil {
		return nil, nil, err
	}

	var warnings []string
	skipped := 0
	seen := make(map[string]int, len(doc.Books))
	entries := make([]catalog.Entry, 0, len(doc.Books))
	var issues bcerrors.ValidationErrors

	for i, book := range doc.Books {
		if err := config.ConvertValidationError(config.GetValidator().Struct(&book)); err != nil {
			skipped++
			warnings = append(warnings, fmt.Sprintf("skipping malformed books[%d]: %v", i, err))
			continue
		}

		if first, dup := seen[book.ID]; dup {
			issues = append(issues, &bcerrors.ValidationError{
				Field:   fmt.Sprintf("books[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (first used by books[%d])", book.ID, first),
			})
			continue
		}
		seen[book.ID] = i

		if _, ok := authors.Lookup(book.Author); !ok {
			warnings = append(warnings, fmt.Sprintf("book %s references unknown author %q", book.ID, book.Author))
		}
		for _, genre := range book.Genres {
			if _, ok := genres.Lookup(genre); !ok {
				warnings = append(warnings, fmt.Sprintf("book %s references unknown genre %q", book.ID, genre))
			}
		}

		entry := catalog.Entry{
			ID:          book.ID,
			AuthorID:    book.Author,
			Title:       book.Title,
			Image:       book.Image,
			Published:   book.Published,
			Description: book.Description,
			Genres:      book.Genres,
		}
		entries = append(entries, entry.Clean())
	}

	if len(issues) > 0 {
		return nil, nil, issues
	}

	return &ports.Catalog{Entries: entries, Authors: authors, Genres: genres, Skipped: skipped}, warnings, nil
}

// decodeTable reads an id: name mapping while keeping document order.
func decodeTable(name, field string, node *yaml.Node) (*reference.Table, error) {
	if node.Kind == 0 {
		return reference.NewTable(), nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, bcerrors.NewParseError(name, node.Line, fmt.Errorf("%s must be a mapping of id to name", field))
	}

	items := make([]reference.Item, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, bcerrors.NewParseError(name, value.Line, fmt.Errorf("%s.%s must be a string", field, key.Value))
		}
		items = append(items, reference.Item{ID: key.Value, Name: catalog.CleanLine(value.Value)})
	}
	return reference.NewTable(items...), nil
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("catalog load cancelled: %w", err)
	}
	return nil
}

// IsNotFound reports whether err was caused by a missing dataset file.
func IsNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func (l *Loader) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (l *Loader) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Info(ctx, msg, flattenFields(fields)...)
}

func (l *Loader) logWarn(ctx context.Context, msg string, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	l.logger.Warn(ctx, msg, flattenFields(fields)...)
}

func (l *Loader) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if l.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	l.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

var _ ports.CatalogSource = (*Loader)(nil)
