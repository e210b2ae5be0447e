package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("books.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "books.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: books.yaml:12: unexpected token", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("config.yaml", 0, stdErrors.New("empty document"))
	require.Equal(t, "parse error: config.yaml: empty document", err.Error())
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("books[1].author", "references unknown author", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "books[1].author", validationErr.Field)
	require.Contains(t, validationErr.Message, "references unknown author")
}

func TestValidationErrorsJoinsMessages(t *testing.T) {
	t.Parallel()

	sentinel := stdErrors.New("sentinel")
	errs := ValidationErrors{
		{Field: "page_size", Message: "must be at least 1"},
		{Field: "theme", Message: "must be day, night or auto", Err: sentinel},
	}

	require.Contains(t, errs.Error(), "2 validation errors")
	require.Contains(t, errs.Error(), "page_size")
	require.True(t, stdErrors.Is(errs, sentinel))

	var validationErr *ValidationError
	require.ErrorAs(t, errs, &validationErr)
	require.Equal(t, "page_size", validationErr.Field)

	require.Equal(t, errs[0].Error(), ValidationErrors{errs[0]}.Error())
}

func TestLoadErrorIncludesPath(t *testing.T) {
	t.Parallel()

	err := NewLoadError("/data/books.yaml", fs.ErrNotExist)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "/data/books.yaml", loadErr.Path)
	require.True(t, stdErrors.Is(err, fs.ErrNotExist))
}
