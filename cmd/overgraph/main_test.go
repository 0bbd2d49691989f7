package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, r); close(done) }()

	runErr := fn()
	w.Close()
	<-done
	return buf.String(), runErr
}

func TestHelp(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return run([]string{"help", "serve"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "serve FLAGS")
}

func TestHelpRoot(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return run([]string{"help"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "COMMANDS:")
}

func TestUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestMissingCommand(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
}

func TestPrintSDLStdout(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return run([]string{"print-sdl"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query")
	require.Contains(t, out, "type User")
	require.Contains(t, out, "type Post")
	require.True(t, strings.Contains(out, "posts: [Post!]"), "User.posts type rendered")
}

func TestPrintSDLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.graphql")
	err := run([]string{"print-sdl", "-out", path})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "post(id: ID!): Post")
}
