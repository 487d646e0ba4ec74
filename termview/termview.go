// Package termview draws a map with a path and explored cells as text for
// terminal output.
package termview

import (
	"strings"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/pathplan/world"
)

// Map is a Traversable with known dimensions.
type Map interface {
	world.Traversable
	Width() int
	Height() int
}

// terrainReader is implemented by maps that carry terrain classes.
type terrainReader interface {
	Terrain(x, y int) world.TerrainClass
}

// Glyphs used for each cell kind.
const (
	GlyphObstacle = '#'
	GlyphPlain    = '.'
	GlyphMountain = '^'
	GlyphWater    = '~'
	GlyphSand     = ':'
	GlyphExplored = 'o'
	GlyphPath     = '*'
	GlyphStart    = 'S'
	GlyphGoal     = 'G'
)

var (
	colorObstacle = color.Style{color.FgGray, color.OpBold}
	colorPlain    = color.Style{color.FgWhite}
	colorMountain = color.Style{color.FgYellow}
	colorWater    = color.Style{color.FgBlue}
	colorSand     = color.Style{color.FgLightYellow}
	colorExplored = color.Style{color.FgCyan}
	colorPath     = color.Style{color.FgGreen, color.OpBold}
	colorEndpoint = color.Style{color.FgRed, color.OpBold}
)

// Render draws m row by row with ANSI colours. Path cells take precedence over
// explored cells, which take precedence over terrain. Either overlay may be nil.
func Render(m Map, path []world.Cell, explored mapset.Set[world.Cell]) string {
	return render(m, path, explored, true)
}

// RenderPlain is Render without colour codes.
func RenderPlain(m Map, path []world.Cell, explored mapset.Set[world.Cell]) string {
	return render(m, path, explored, false)
}

func render(m Map, path []world.Cell, explored mapset.Set[world.Cell], colored bool) string {
	onPath := make(map[world.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	var start, goal world.Cell
	if len(path) > 0 {
		start, goal = path[0], path[len(path)-1]
	}
	terrain, _ := m.(terrainReader)

	var sb strings.Builder
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			c := world.Cell{X: x, Y: y}
			glyph, style := cellGlyph(m, terrain, c)
			switch {
			case len(path) > 0 && (c == start || c == goal):
				glyph, style = GlyphGoal, colorEndpoint
				if c == start {
					glyph = GlyphStart
				}
			case onPath[c]:
				glyph, style = GlyphPath, colorPath
			case explored.Has(c):
				glyph, style = GlyphExplored, colorExplored
			}

			if colored {
				sb.WriteString(style.Sprint(string(glyph)))
			} else {
				sb.WriteRune(glyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellGlyph(m Map, terrain terrainReader, c world.Cell) (rune, color.Style) {
	if m.IsObstacle(c.X, c.Y) {
		return GlyphObstacle, colorObstacle
	}
	if terrain == nil {
		return GlyphPlain, colorPlain
	}
	switch terrain.Terrain(c.X, c.Y) {
	case world.TerrainMountain:
		return GlyphMountain, colorMountain
	case world.TerrainWater:
		return GlyphWater, colorWater
	case world.TerrainSand:
		return GlyphSand, colorSand
	default:
		return GlyphPlain, colorPlain
	}
}

// Legend returns a one-line key for the glyphs, styled like Render when
// colored is set.
func Legend(colored bool) string {
	key := func(style color.Style, glyph, label string) string {
		if colored {
			glyph = style.Sprint(glyph)
		}
		return glyph + " " + label
	}
	return strings.Join([]string{
		key(colorEndpoint, "S/G", "endpoints"),
		key(colorPath, "*", "path"),
		key(colorExplored, "o", "explored"),
		key(colorObstacle, "#", "obstacle"),
		key(colorMountain, "^", "mountain"),
		key(colorWater, "~", "water"),
		key(colorSand, ":", "sand"),
	}, "  ")
}
