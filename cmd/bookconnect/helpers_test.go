package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureDataset = `
authors:
  b: "Octavia E. Butler"
  a: "Ursula K. Le Guin"
genres:
  sf: "Science Fiction"
  fantasy: "Fantasy"
books:
  - id: one
    title: "Kindred"
    author: b
    published: 1979-06-01
    genres: [sf]
    description: "A writer is pulled back in time to antebellum Maryland."
  - id: two
    title: "The Lathe of Heaven"
    author: a
    image: https://images.example.com/two.jpg
    genres: [sf]
  - id: three
    title: "A Wizard of Earthsea"
    author: a
    genres: [fantasy]
`

// isolateConfig points the user config dir at an empty temp directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
