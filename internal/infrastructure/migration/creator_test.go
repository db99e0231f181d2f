package migration

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	dir := t.TempDir()

	pair, err := Create(dir, "Add Event Reviews")
	require.NoError(t, err)

	assert.Contains(t, pair.UpPath, "_add_event_reviews.up.sql")
	assert.Contains(t, pair.DownPath, "_add_event_reviews.down.sql")
	assert.Len(t, pair.Version, 14)

	for _, path := range []string{pair.UpPath, pair.DownPath} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Add Event Reviews")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()

	names, err := List(dir)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = Create(dir, "create users")
	require.NoError(t, err)
	_, err = Create(dir, "create events")
	require.NoError(t, err)

	names, err = List(dir)
	require.NoError(t, err)
	assert.Len(t, names, 2)

	names, err = List(dir + "/missing")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Add Event Reviews", "add_event_reviews"},
		{"fix--double  separators_", "fix_double_separators"},
		{"Drop v2 Columns!", "drop_v2_columns"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), tt.in)
	}
}
