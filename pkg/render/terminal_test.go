package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/physics"
)

func TestNewTerminalRenderer_CreatesValidRenderer_WithCorrectDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
		scale  float64
	}{
		{"small renderer", 10, 5, 1.0},
		{"medium renderer", 80, 24, 10.0},
		{"large renderer", 120, 40, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			renderer := NewTerminalRenderer(&bytes.Buffer{}, tt.width, tt.height, tt.scale)

			if renderer.width != tt.width || renderer.height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", renderer.width, renderer.height, tt.width, tt.height)
			}
			if renderer.scale != tt.scale {
				t.Errorf("expected scale %f, got %f", tt.scale, renderer.scale)
			}
			if len(renderer.buffer) != tt.height {
				t.Errorf("expected buffer height %d, got %d", tt.height, len(renderer.buffer))
			}
			for i, row := range renderer.buffer {
				if len(row) != tt.width {
					t.Errorf("row %d: expected width %d, got %d", i, tt.width, len(row))
				}
				if strings.TrimSpace(string(row)) != "" {
					t.Errorf("row %d not cleared", i)
				}
			}
		})
	}
}

func TestNewTerminalRenderer_NonPositiveScale(t *testing.T) {
	renderer := NewTerminalRenderer(&bytes.Buffer{}, 4, 4, 0)
	if renderer.scale != 1 {
		t.Errorf("expected scale 1, got %f", renderer.scale)
	}
}

func TestWorldToScreen_NorthIsUp(t *testing.T) {
	renderer := NewTerminalRenderer(&bytes.Buffer{}, 20, 10, 1)

	tests := []struct {
		name  string
		pos   physics.Vector2D
		wantX int
		wantY int
	}{
		{"origin is centered", physics.Vector2D{}, 10, 5},
		{"north is up", physics.Vector2D{X: 0, Y: 3}, 10, 2},
		{"south is down", physics.Vector2D{X: 0, Y: -3}, 10, 8},
		{"east is right", physics.Vector2D{X: 4, Y: 0}, 14, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := renderer.worldToScreen(tt.pos)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("worldToScreen(%v) = (%d, %d), want (%d, %d)", tt.pos, x, y, tt.wantX, tt.wantY)
			}
		})
	}

	renderer.SetCenter(physics.Vector2D{X: 4, Y: 3})
	if x, y := renderer.worldToScreen(physics.Vector2D{X: 4, Y: 3}); x != 10 || y != 5 {
		t.Errorf("center maps to (%d, %d), want (10, 5)", x, y)
	}
}

func TestCourseGlyph(t *testing.T) {
	tests := []struct {
		course float64
		want   rune
	}{
		{0, '^'}, {44, '/'}, {90, '>'}, {135, '\\'},
		{180, 'v'}, {225, '/'}, {270, '<'}, {315, '\\'},
		{359, '^'}, {-90, '<'}, {720, '^'},
	}

	for _, tt := range tests {
		if got := CourseGlyph(tt.course); got != tt.want {
			t.Errorf("CourseGlyph(%v) = %q, want %q", tt.course, got, tt.want)
		}
	}
}

func TestTerminalRenderer_RenderFrame(t *testing.T) {
	var out bytes.Buffer
	renderer := NewTerminalRenderer(&out, 20, 10, 1)

	frame := []event.AgentState{
		{ID: 1, Name: "hunter", Behavior: "pursue", Position: physics.Vector2D{X: 0, Y: 0}, Course: 90, CourseText: "090", Speed: 5},
		{ID: 2, Name: "quarry", Behavior: "wander", Position: physics.Vector2D{X: 100, Y: 0}, Course: 0, CourseText: "000", Speed: 2},
	}
	if err := RenderFrame(renderer, frame); err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 10+2+2 {
		t.Fatalf("expected 14 lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[0] != "+"+strings.Repeat("-", 20)+"+" {
		t.Errorf("unexpected top border %q", lines[0])
	}
	if got := []rune(lines[1+5])[1+10]; got != '>' {
		t.Errorf("expected hunter glyph '>' at center, got %q", got)
	}
	if strings.Contains(strings.Join(lines[1:11], ""), "^") {
		t.Error("off-screen quarry should not be plotted")
	}
	if !strings.Contains(lines[12], "hunter") || !strings.Contains(lines[12], "crs 090") {
		t.Errorf("unexpected HUD line %q", lines[12])
	}
	if !strings.Contains(lines[13], "quarry") {
		t.Errorf("off-screen agent missing from HUD: %q", lines[13])
	}
}

func TestTerminalRenderer_ClearResetsHUD(t *testing.T) {
	var out bytes.Buffer
	renderer := NewTerminalRenderer(&out, 5, 3, 1)
	renderer.ClearScreen = true

	renderer.RenderAgent(event.AgentState{Name: "a", CourseText: "000"})
	renderer.RenderMarker(physics.Vector2D{X: 1, Y: 0}, 'x')
	renderer.Clear()
	if err := renderer.Present(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[H\033[2J") {
		t.Error("expected ANSI clear prefix")
	}
	if strings.ContainsAny(got, "ax") {
		t.Errorf("cleared frame still has content:\n%s", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminalRenderer_PresentError(t *testing.T) {
	renderer := NewTerminalRenderer(failingWriter{}, 5, 3, 1)
	if err := renderer.Present(); err == nil {
		t.Error("expected write error")
	}
}
