package gesture

import (
	"math"
	"time"

	"PageInk/internal/config"
	"PageInk/internal/state"
)

// TransformController owns the view transform. Scale always stays within
// the configured zoom bounds.
type TransformController struct {
	minZoom, maxZoom float64
	policy           config.PanPolicy
	maxVelocity      float64

	t state.Transform

	// Pan session.
	panning  bool
	origin   state.Point
	base     state.Point // translation when the pan began
	prev     state.Point
	prevTime time.Time
}

func NewTransformController(cfg config.Gesture) *TransformController {
	return &TransformController{
		minZoom:     cfg.MinZoom,
		maxZoom:     cfg.MaxZoom,
		policy:      cfg.PanPolicy,
		maxVelocity: cfg.MaxPanVelocity,
		t:           state.IdentityTransform(),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func (c *TransformController) Transform() state.Transform { return c.t }

func (c *TransformController) Scale() float64 { return c.t.Scale }

// Pinch sets the scale to reported, clamped to the zoom bounds. Each call
// replaces the previous scale.
func (c *TransformController) Pinch(reported float64) {
	if math.IsNaN(reported) {
		return
	}
	c.t.Scale = clamp(reported, c.minZoom, c.maxZoom)
}

// ZoomBy multiplies the current scale by factor, within bounds.
func (c *TransformController) ZoomBy(factor float64) {
	c.Pinch(c.t.Scale * factor)
}

// Reset returns to scale 1 with no offset and drops any pan in progress.
func (c *TransformController) Reset() {
	c.t = state.IdentityTransform()
	c.Pinch(1)
	c.panning = false
}

func (c *TransformController) BeginDrag(p state.Point, at time.Time) {
	c.panning = true
	c.origin = p
	c.base = state.Point{X: c.t.TranslateX, Y: c.t.TranslateY}
	c.prev = p
	c.prevTime = at
}

func (c *TransformController) UpdateDrag(p state.Point, at time.Time) {
	if !c.panning {
		c.BeginDrag(p, at)
		return
	}
	switch c.policy {
	case config.PanVelocity:
		dt := at.Sub(c.prevTime).Seconds()
		if dt > 0 {
			limit := c.maxVelocity * dt
			c.t.TranslateX += clamp(p.X-c.prev.X, -limit, limit)
			c.t.TranslateY += clamp(p.Y-c.prev.Y, -limit, limit)
		}
	default:
		c.t.TranslateX = c.base.X + p.X - c.origin.X
		c.t.TranslateY = c.base.Y + p.Y - c.origin.Y
	}
	c.prev = p
	c.prevTime = at
}

func (c *TransformController) EndDrag() {
	c.panning = false
}
