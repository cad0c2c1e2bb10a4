// Package ui implements the host-side control surface. It owns presentation
// and input only; the engine consumes the resulting settings snapshot at the
// start of its next tick.
package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flux/components"
)

const (
	padding    = 10
	lineHeight = 22
	sliderH    = 18
)

// ControlsPanel renders the settings panel: style and theme cycling,
// sliders for the numeric settings, and the morph text entry.
type ControlsPanel struct {
	x, y    int32
	width   int32
	visible bool

	themeNames []string
	themeGlow  map[string]components.RGB
	themeIdx   int

	textDraft string
	textEdit  bool
}

// NewControlsPanel creates a controls panel using the given theme table.
func NewControlsPanel(x, y, width int32, themeNames []string, themeGlow map[string]components.RGB, activeTheme string) *ControlsPanel {
	idx := 0
	for i, name := range themeNames {
		if name == activeTheme {
			idx = i
			break
		}
	}
	return &ControlsPanel{
		x:          x,
		y:          y,
		width:      width,
		themeNames: themeNames,
		themeGlow:  themeGlow,
		themeIdx:   idx,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel and folds any user edits into the settings
// snapshot. Returns the updated snapshot and whether anything changed.
func (c *ControlsPanel) Draw(set components.Settings) (components.Settings, bool) {
	if !c.visible {
		return set, false
	}

	changed := false
	w := float32(c.width - 2*padding)
	x := float32(c.x + padding)
	y := c.y + padding

	panelHeight := int32(lineHeight*11 + padding*2)
	rl.DrawRectangle(c.x, c.y, c.width, panelHeight, rl.Color{R: 20, G: 20, B: 28, A: 220})

	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w / 2, Height: sliderH}, fmt.Sprintf("Style: %s", set.Style)) {
		styles := components.Styles()
		set.Style = styles[(int(set.Style)+1)%len(styles)]
		changed = true
	}
	if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: float32(y), Width: w/2 - 4, Height: sliderH}, fmt.Sprintf("Theme: %s", c.themeName())) {
		c.themeIdx = (c.themeIdx + 1) % len(c.themeNames)
		set.Glow = c.themeGlow[c.themeName()]
		changed = true
	}
	y += lineHeight + 4

	rl.DrawText("Particles", c.x+padding, y, 12, rl.Gray)
	y += lineHeight - 6
	count := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 50, Height: sliderH},
		"0", "1000", float32(set.ParticleCount), 0, 1000)
	rl.DrawText(fmt.Sprintf("%d", set.ParticleCount), c.x+c.width-40, y+2, 14, rl.White)
	if int(count) != set.ParticleCount {
		set.ParticleCount = int(count)
		changed = true
	}
	y += lineHeight

	rl.DrawText("Speed", c.x+padding, y, 12, rl.Gray)
	y += lineHeight - 6
	speed := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 50, Height: sliderH},
		"0.1", "5.0", float32(set.Speed), 0.1, 5.0)
	rl.DrawText(fmt.Sprintf("%.1f", set.Speed), c.x+c.width-40, y+2, 14, rl.White)
	if float64(speed) != set.Speed {
		set.Speed = float64(speed)
		changed = true
	}
	y += lineHeight

	rl.DrawText("Connection distance", c.x+padding, y, 12, rl.Gray)
	y += lineHeight - 6
	dist := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: w - 50, Height: sliderH},
		"50", "300", float32(set.ConnectionDistance), 50, 300)
	rl.DrawText(fmt.Sprintf("%.0f", set.ConnectionDistance), c.x+c.width-40, y+2, 14, rl.White)
	if float64(dist) != set.ConnectionDistance {
		set.ConnectionDistance = float64(dist)
		changed = true
	}
	y += lineHeight

	rl.DrawText("Morph text", c.x+padding, y, 12, rl.Gray)
	y += lineHeight - 6
	if gui.TextBox(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: sliderH}, &c.textDraft, 32, c.textEdit) {
		c.textEdit = !c.textEdit
	}
	y += lineHeight

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w/2 - 4, Height: sliderH}, "Set text") {
		set.Text = c.textDraft
		changed = true
	}
	if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: float32(y), Width: w/2 - 4, Height: sliderH}, "Clear text") {
		c.textDraft = ""
		set.Text = ""
		changed = true
	}
	y += lineHeight + 4

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: w, Height: sliderH}, "Reshuffle") {
		set.Seed = time.Now().UnixNano()
		changed = true
	}

	return set, changed
}

func (c *ControlsPanel) themeName() string {
	if len(c.themeNames) == 0 {
		return ""
	}
	return c.themeNames[c.themeIdx]
}
