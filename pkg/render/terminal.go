package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/physics"
)

// courseGlyphs maps the eight 45° course octants, starting at north, to arrows.
var courseGlyphs = [8]rune{'^', '/', '>', '\\', 'v', '/', '<', '\\'}

// TerminalRenderer provides a simple ASCII-based rendering for terminals.
// North is up and one character cell covers scale meters.
type TerminalRenderer struct {
	out       io.Writer
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector2D
	hud       []string

	// ClearScreen emits an ANSI clear before each frame.
	ClearScreen bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified dimensions
func NewTerminalRenderer(out io.Writer, width, height int, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	r := &TerminalRenderer{
		out:    out,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	r.Clear()
	return r
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen cells; screen rows grow
// downward, so Y is flipped.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int(math.Floor((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2))
	screenY := int(math.Floor(float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale))
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune) bool {
	x, y := r.worldToScreen(pos)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return false
	}
	r.buffer[y][x] = glyph
	return true
}

// CourseGlyph returns the arrow drawn for a course in degrees.
func CourseGlyph(course float64) rune {
	octant := int(math.Round(physics.NormalizeDegrees(course)/45)) % 8
	return courseGlyphs[octant]
}

// Clear implements Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.hud = r.hud[:0]
}

// RenderAgent implements Renderer. Agents outside the view still get a HUD line.
func (r *TerminalRenderer) RenderAgent(state event.AgentState) {
	r.plot(state.Position, CourseGlyph(state.Course))
	r.hud = append(r.hud, fmt.Sprintf("%-10s %-10s crs %s spd %5.2f pos (%7.1f, %7.1f)",
		state.Name, state.Behavior, state.CourseText, state.Speed, state.Position.X, state.Position.Y))
}

// RenderMarker implements Renderer.
func (r *TerminalRenderer) RenderMarker(pos physics.Vector2D, glyph rune) {
	r.plot(pos, glyph)
}

// Present implements Renderer.
func (r *TerminalRenderer) Present() error {
	var sb strings.Builder
	if r.ClearScreen {
		sb.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	sb.WriteString(border)
	for y := range r.buffer {
		sb.WriteString("|")
		sb.WriteString(string(r.buffer[y]))
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	for _, line := range r.hud {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	_, err := io.WriteString(r.out, sb.String())
	return err
}
