package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# Notes\n"), 0o644))
	t.Chdir(dir)
	abs, err := filepath.Abs("notes.md")
	require.NoError(t, err)

	tests := []struct {
		arg  string
		want string
	}{
		{arg: "./notes.md", want: abs},
		{arg: "notes.md", want: abs},
		{arg: "https://go.dev/doc", want: "https://go.dev/doc"},
		{arg: "/wiki/Go", want: "/wiki/Go"},
		{arg: "Ken Thompson", want: "/wiki/Ken_Thompson"},
		{arg: "  ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, articleTarget(tt.arg))
		})
	}
}
