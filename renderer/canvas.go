package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/background"
)

// Canvas is the window's mount target. Its backing store is a render texture
// sized in device pixels; Present scales it back onto the logical window.
type Canvas struct {
	surface     *Surface
	dprOverride float64

	target        rl.RenderTexture2D
	width, height int
	loaded        bool
}

// NewCanvas creates a canvas drawing through s. A positive dprOverride
// replaces the monitor's reported scale.
func NewCanvas(s *Surface, dprOverride float64) *Canvas {
	return &Canvas{surface: s, dprOverride: dprOverride}
}

func (c *Canvas) ClientSize() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (c *Canvas) DevicePixelRatio() float64 {
	if c.dprOverride > 0 {
		return c.dprOverride
	}
	return float64(rl.GetWindowScaleDPI().X)
}

// SetBackingSize reallocates the render texture when the size changes.
func (c *Canvas) SetBackingSize(w, h int) {
	if c.loaded && w == c.width && h == c.height {
		return
	}
	c.Unload()
	if w <= 0 || h <= 0 {
		return
	}

	c.target = rl.LoadRenderTexture(int32(w), int32(h))
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.width, c.height = w, h
	c.loaded = true
}

func (c *Canvas) Context() background.Surface { return c.surface }

// Begin redirects drawing into the backing store. It reports false when no
// backing store exists yet, in which case End must not be called.
func (c *Canvas) Begin() bool {
	if !c.loaded {
		return false
	}
	rl.BeginTextureMode(c.target)
	return true
}

// End restores drawing to the window.
func (c *Canvas) End() {
	rl.EndTextureMode()
}

// Present draws the backing store over the whole window. Render textures are
// stored upside down, so the source rectangle is flipped.
func (c *Canvas) Present() {
	if !c.loaded {
		return
	}
	w, h := c.ClientSize()
	src := rl.Rectangle{
		X:      0,
		Y:      float32(c.height),
		Width:  float32(c.width),
		Height: -float32(c.height),
	}
	dst := rl.Rectangle{Width: float32(w), Height: float32(h)}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the backing store.
func (c *Canvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}
