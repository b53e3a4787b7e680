package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdhighlight/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Title\n"), 0o644))

	got, err := fsutil.ReadFile(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(got))
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		path    string
		wantErr []error
	}{
		{"missing", context.Background(), filepath.Join(dir, "missing.md"), []error{fsutil.ErrNotFound, os.ErrNotExist}},
		{"directory", context.Background(), dir, []error{fsutil.ErrIsDirectory}},
		{"cancelled", cancelled, filepath.Join(dir, "any.md"), []error{context.Canceled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content, err := fsutil.ReadFile(tt.ctx, tt.path)
			assert.Nil(t, content)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
