package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/virtual-herbarium/internal/catalog"
	"github.com/appengine-ltd/virtual-herbarium/internal/scene"
)

func (ui *tourUI) draw() {
	switch ui.currentView() {
	case viewLoading:
		ui.drawPlaceholder()
	case viewFailed:
		ui.drawFailed()
	case viewEmpty:
		ui.drawScene()
		ui.drawNotice("The herbarium is empty", "The dataset loaded but lists no plants.")
	case viewNoMatches:
		ui.drawScene()
		ui.drawNoMatches()
	case viewScene:
		ui.drawScene()
	case viewFault:
		ui.drawFault()
	}
}

func (ui *tourUI) drawScene() {
	cam := ui.orbit.camera()
	rl.BeginMode3D(cam)
	rl.DrawCylinder(rl.NewVector3(0, -0.02, 0), 6, 6, 0.02, 48, AppTheme.Ground)
	rl.DrawGrid(12, 1)
	for i, inst := range ui.frame.Instances {
		drawInstance(inst, i == ui.hovered)
	}
	rl.EndMode3D()

	ui.drawLabels(cam)
	ui.drawSearch()
	ui.drawInfoPanel()
	ui.drawFooter()
}

func drawInstance(inst scene.RenderedInstance, hovered bool) {
	stem := inst.Stem
	sides := int32(stem.Segments)
	if sides < 3 {
		sides = 3
	}
	rl.DrawCylinderEx(toRL(stem.Base), toRL(stem.Top), float32(stem.Radius), float32(stem.Radius), sides, toRLColor(stem.Color))

	for _, leaf := range inst.Leaves {
		c := toRLColor(leaf.Color)
		p0, p1, p2, p3 := toRL(leaf.Corners[0]), toRL(leaf.Corners[1]), toRL(leaf.Corners[2]), toRL(leaf.Corners[3])
		rl.DrawTriangle3D(p0, p1, p2, c)
		rl.DrawTriangle3D(p0, p2, p3, c)
		if leaf.DoubleSided {
			rl.DrawTriangle3D(p0, p2, p1, c)
			rl.DrawTriangle3D(p0, p3, p2, c)
		}
	}

	if hovered {
		b := inst.Bounds
		rl.DrawBoundingBox(rl.BoundingBox{Min: toRL(b.Min), Max: toRL(b.Max)}, AppTheme.Highlight)
	}
}

func (ui *tourUI) drawLabels(cam rl.Camera3D) {
	for i, inst := range ui.frame.Instances {
		if inst.Label.Text == "" || !ui.orbit.inFront(inst.Label.Anchor) {
			continue
		}
		pos := rl.GetWorldToScreen(toRL(inst.Label.Anchor), cam)
		size := sizes.Tag
		w := measureText(inst.Label.Text, size)
		x := int32(pos.X) - w/2
		y := int32(pos.Y) - size
		bg := rl.Fade(rl.Black, 0.55)
		fg := AppTheme.TextPrimary
		if i == ui.hovered {
			fg = AppTheme.Highlight
		}
		rl.DrawRectangleRounded(rl.NewRectangle(float32(x-6), float32(y-4), float32(w+12), float32(size+8)), 0.3, 6, bg)
		drawText(inst.Label.Text, x, y, size, fg)
	}
}

func (ui *tourUI) drawSearch() {
	rect := rl.NewRectangle(spaceL, spaceL, 420, inputHeight)
	DrawInputField(rect, ui.query, "Search plants by name or scientific name", true)
	count := fmt.Sprintf("%d of %d plants", len(ui.frame.Instances), len(ui.composer.Filtered()))
	if len(ui.composer.Filtered()) == 0 {
		count = ""
	}
	DrawHintText(count, int32(rect.X+rect.Width+spaceS), int32(rect.Y+spaceS))
}

func (ui *tourUI) drawInfoPanel() {
	rec := ui.selected
	if rec == nil {
		return
	}
	const width = 380
	rect := rl.NewRectangle(float32(ui.width)-width-spaceL, spaceL, width, float32(ui.height)-3*spaceL-40)
	DrawPanel(rect, rec.Name, true)

	x := int32(rect.X + spaceM)
	y := int32(rect.Y+spaceS) + sizes.Heading + 24
	maxW := int32(rect.Width - 2*spaceM)
	if rec.ScientificName != "" {
		drawText(rec.ScientificName, x, y, sizes.Latin, AppTheme.Accent)
		y += lineHeight(sizes.Latin) + 6
	}
	if rec.Description != "" {
		y += drawWrapped(rec.Description, x, y, maxW, sizes.Note, AppTheme.TextSecondary) + 10
	}
	for _, c := range rec.Characteristics {
		y += drawWrapped("- "+c, x, y, maxW, sizes.Note, AppTheme.TextPrimary)
	}
}

func (ui *tourUI) drawFooter() {
	hint := "Type to search  |  Esc clear  |  Click a plant for details  |  Right-drag orbit  |  Tab toggle spin"
	if ui.coord.Store().Snapshot().State == catalog.StateLoading {
		hint = "Reloading dataset...  |  " + hint
	}
	DrawHintText(hint, int32(spaceL), ui.height-int32(spaceL)-sizes.Note)
}

func (ui *tourUI) drawNoMatches() {
	detail := fmt.Sprintf("Nothing matches %q.", ui.query)
	if s := ui.composer.Suggestions(suggestionLimit); len(s) > 0 {
		detail += " Did you mean " + strings.Join(s, ", ") + "?"
	}
	ui.drawNotice("No plants found", detail)
}

func (ui *tourUI) drawNotice(title, detail string) {
	rect := ui.centeredRect(520, 150)
	DrawPanel(rect, title, true)
	drawWrapped(detail, int32(rect.X+spaceM), int32(rect.Y+rect.Height/2), int32(rect.Width-2*spaceM), sizes.Body, AppTheme.TextSecondary)
}

func (ui *tourUI) drawPlaceholder() {
	rect := ui.centeredRect(420, 120)
	DrawPanel(rect, "Loading herbarium", false)
	dots := strings.Repeat(".", int(rl.GetTime()*3)%4)
	drawText("Fetching plant records"+dots, int32(rect.X+spaceM), int32(rect.Y+rect.Height/2+4), sizes.Body, AppTheme.TextSecondary)
}

func (ui *tourUI) drawFailed() {
	rect := ui.centeredRect(560, 200)
	DrawPanel(rect, "Could not load the herbarium", true)
	msg := ui.status
	if msg == "" {
		if err := ui.coord.Store().Snapshot().Err; err != nil {
			msg = err.Error()
		}
	}
	y := int32(rect.Y+spaceS) + sizes.Heading + 28
	drawWrapped(msg, int32(rect.X+spaceM), y, int32(rect.Width-2*spaceM), sizes.Note, AppTheme.Danger)
	DrawHintText("Press R to retry", int32(rect.X+spaceM), int32(rect.Y+rect.Height-spaceM)-sizes.Note)
}

func (ui *tourUI) drawFault() {
	rect := ui.centeredRect(560, 200)
	DrawPanel(rect, "The 3D view stopped", true)
	msg := "Rendering failed."
	if err := ui.boundary.Fault(); err != nil {
		msg = err.Error()
	}
	y := int32(rect.Y+spaceS) + sizes.Heading + 28
	drawWrapped(msg, int32(rect.X+spaceM), y, int32(rect.Width-2*spaceM), sizes.Note, AppTheme.Warning)
	DrawHintText("Press Enter to reload the view", int32(rect.X+spaceM), int32(rect.Y+rect.Height-spaceM)-sizes.Note)
}

func (ui *tourUI) centeredRect(w, h float32) rl.Rectangle {
	return rl.NewRectangle((float32(ui.width)-w)/2, (float32(ui.height)-h)/2, w, h)
}
