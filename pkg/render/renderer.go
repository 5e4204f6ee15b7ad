// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-steering/pkg/event"
	"github.com/opd-ai/go-steering/pkg/logging"
	"github.com/opd-ai/go-steering/pkg/physics"
)

// Renderer draws simulation frames.
type Renderer interface {
	Clear()
	RenderAgent(state event.AgentState)
	RenderMarker(pos physics.Vector2D, glyph rune)
	Present() error
}

// RenderFrame clears r, draws every agent in frame and presents the result.
func RenderFrame(r Renderer, frame []event.AgentState) error {
	r.Clear()
	for _, state := range frame {
		r.RenderAgent(state)
	}
	return r.Present()
}

// NullRenderer draws nothing and logs every call at debug level.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a new NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &NullRenderer{logger: logger.Named("render")}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// RenderAgent implements Renderer.
func (d *NullRenderer) RenderAgent(state event.AgentState) {
	d.logger.Debug(context.Background(), "RenderAgent called",
		"agent_id", state.ID,
		"agent_name", state.Name,
		"course", state.CourseText,
	)
}

// RenderMarker implements Renderer.
func (d *NullRenderer) RenderMarker(pos physics.Vector2D, glyph rune) {
	d.logger.Debug(context.Background(), "RenderMarker called", "position", pos.String(), "glyph", string(glyph))
}

// Present implements Renderer.
func (d *NullRenderer) Present() error {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
	return nil
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() int { return d.frames }
