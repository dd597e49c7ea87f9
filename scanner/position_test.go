package scanner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	contents := []byte("// TODO: a\nfn f() {}\n\t// FIXME: b\n")

	row, col, next, err := Locate(contents, "TODO: a", Cursor{})
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 4, col)
	assert.Equal(t, 4, next.off)

	row, col, next, err = Locate(contents, "FIXME: b", next)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 5, col)
	assert.Equal(t, bytes.Index(contents, []byte("FIXME"))+1, next.off)
}

func TestLocateDuplicates(t *testing.T) {
	contents := []byte("x\n// TODO: same text\ny\nz\n// TODO: same text\n")

	var (
		cur  Cursor
		rows []int
	)
	for range 2 {
		row, col, next, err := Locate(contents, "TODO: same text", cur)
		require.NoError(t, err)
		assert.Equal(t, 4, col)
		rows = append(rows, row)
		cur = next
	}
	assert.Equal(t, []int{2, 5}, rows)

	_, _, after, err := Locate(contents, "TODO: same text", cur)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, cur, after, "cursor must not move on failure")
}

func TestLocateAdjacentOverlapping(t *testing.T) {
	// The cursor moves one byte past the match, so overlapping
	// occurrences are still found.
	contents := []byte("AA:AA:")

	_, col1, next, err := Locate(contents, "AA:", Cursor{})
	require.NoError(t, err)
	_, col2, _, err := Locate(contents, "AA:", next)
	require.NoError(t, err)
	assert.Equal(t, 1, col1)
	assert.Equal(t, 4, col2)
}

func TestLocateMatchesFromScratchCount(t *testing.T) {
	// Row and column computed incrementally must equal a count from the
	// start of the file.
	contents := []byte("\n\nBUG: 1\n  BUG: 2\n\n\n    BUG: 3 BUG: 3\n")

	var cur Cursor
	for range 4 {
		row, col, next, err := Locate(contents, "BUG: ", cur)
		require.NoError(t, err)

		occ := next.off - 1
		wantRow := 1 + bytes.Count(contents[:occ], []byte{'\n'})
		wantCol := occ - (bytes.LastIndexByte(contents[:occ], '\n') + 1) + 1
		assert.Equal(t, wantRow, row)
		assert.Equal(t, wantCol, col)
		cur = next
	}
}

func TestLocateNotFound(t *testing.T) {
	_, _, _, err := Locate([]byte("nothing here"), "TODO: x", Cursor{})
	require.ErrorIs(t, err, ErrNotFound)

	_, _, _, err = Locate([]byte("TODO: x"), "", Cursor{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocateNewlineTarget(t *testing.T) {
	contents := []byte("a\nb\nc")

	row, col, next, err := Locate(contents, "\nb", Cursor{})
	require.NoError(t, err)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	row, col, _, err = Locate(contents, "c", next)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 1, col)
}
