package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridpath/internal/pathfind"
)

func TestDecode(t *testing.T) {
	g, err := Decode([]string{
		"S#.",
		".#T",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 2, g.WallCount())

	spawn, ok := g.Spawn()
	require.True(t, ok)
	assert.Equal(t, pathfind.P(0, 0), spawn)

	target, ok := g.Target()
	require.True(t, ok)
	assert.Equal(t, pathfind.P(2, 1), target)
}

func TestDecodeWithoutEndpoints(t *testing.T) {
	g, err := Decode([]string{"..", ".#"})
	require.NoError(t, err)

	_, ok := g.Spawn()
	assert.False(t, ok)
	_, ok = g.Target()
	assert.False(t, ok)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"empty row", []string{""}},
		{"ragged", []string{"...", ".."}},
		{"unknown glyph", []string{"S.x"}},
		{"two spawns", []string{"S.S"}},
		{"two targets", []string{"T", "T"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.rows)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	rows := []string{
		"S...#",
		".##.#",
		"....T",
	}
	g, err := Decode(rows)
	require.NoError(t, err)
	assert.Equal(t, rows, Encode(g))

	// Search state is not part of the layout
	_, err = pathfind.FindGridPath(g)
	require.NoError(t, err)
	assert.Equal(t, rows, Encode(g))
}

func TestEncodePath(t *testing.T) {
	g, err := Decode([]string{
		"S#.",
		".#.",
		"..T",
	})
	require.NoError(t, err)

	res, err := pathfind.FindGridPath(g)
	require.NoError(t, err)
	require.True(t, res.Found())

	assert.Equal(t, []string{
		"S#.",
		"*#.",
		".*T",
	}, EncodePath(g, res.Path))

	// Endpoints only: nothing to draw
	assert.Equal(t, Encode(g), EncodePath(g, nil))

	_, err = Decode(EncodePath(g, res.Path))
	assert.ErrorIs(t, err, ErrMalformed, "solved output is not a layout")
}
