package catalog

import (
	"strings"
	"unicode"
)

// CleanLine drops control characters, including newlines, so text cannot
// carry terminal escape sequences. Tabs become spaces.
func CleanLine(text string) string {
	return clean(text, false)
}

// CleanBlock is CleanLine for multi-line text: newlines survive.
func CleanBlock(text string) string {
	return clean(strings.ReplaceAll(text, "\r\n", "\n"), true)
}

func clean(text string, keepNewlines bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r == '\n' && keepNewlines:
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, text)
}

// Clean returns a copy of the entry with every display field passed through
// CleanLine, and the description through CleanBlock.
func (e Entry) Clean() Entry {
	out := e
	out.ID = CleanLine(e.ID)
	out.AuthorID = CleanLine(e.AuthorID)
	out.Title = CleanLine(e.Title)
	out.Image = CleanLine(e.Image)
	out.Description = CleanBlock(e.Description)
	if e.Genres != nil {
		out.Genres = make([]string, len(e.Genres))
		for i, genre := range e.Genres {
			out.Genres[i] = CleanLine(genre)
		}
	}
	return out
}
