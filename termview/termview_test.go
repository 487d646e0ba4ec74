package termview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/pathplan/world"
)

func TestRenderPlain(t *testing.T) {
	g := world.NewTerrain(4, 3)
	g.SetObstacle(1, 1)
	g.SetTerrain(3, 2, world.TerrainWater, 3)
	g.SetTerrain(2, 2, world.TerrainMountain, 2)

	path := []world.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}}
	explored := mapset.New[world.Cell]()
	explored.Put(world.Cell{X: 0, Y: 1})
	explored.Put(world.Cell{X: 1, Y: 0}) // hidden under the path

	got := RenderPlain(g, path, explored)
	want := strings.Join([]string{
		"S*..",
		"o#G.",
		"..^~",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestRenderWithoutOverlays(t *testing.T) {
	g := world.New(3, 2)
	g.SetObstacle(2, 0)
	assert.Equal(t, "..#\n...\n", RenderPlain(g, nil, mapset.Set[world.Cell]{}))
}

func TestRenderColoredKeepsGlyphs(t *testing.T) {
	g := world.New(2, 2)
	out := Render(g, []world.Cell{{X: 0, Y: 0}, {X: 1, Y: 1}}, mapset.Set[world.Cell]{})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "G")
	assert.Equal(t, 2, strings.Count(out, "\n"))
	assert.Contains(t, Legend(true), "path")
}

func TestPlainLegendHasNoEscapes(t *testing.T) {
	assert.Equal(t,
		"S/G endpoints  * path  o explored  # obstacle  ^ mountain  ~ water  : sand",
		Legend(false))
}
