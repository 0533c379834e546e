package gui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme is the palette for the tour chrome and the 3D backdrop.
type Theme struct {
	Background    rl.Color
	Ground        rl.Color
	Grid          rl.Color
	Panel         rl.Color
	PanelRaised   rl.Color
	Border        rl.Color
	Divider       rl.Color
	TextPrimary   rl.Color
	TextSecondary rl.Color
	TextMuted     rl.Color
	Accent        rl.Color
	AccentSoft    rl.Color
	Warning       rl.Color
	Danger        rl.Color
	Highlight     rl.Color
}

const (
	spaceXS = float32(8)
	spaceS  = float32(12)
	spaceM  = float32(18)
	spaceL  = float32(24)

	cornerRadius   = float32(0.08)
	cornerSegments = int32(8)
	borderWidth    = float32(1.2)
	borderFocus    = float32(2.0)
	inputHeight    = float32(44)
)

var AppTheme = Theme{
	Background:    rl.NewColor(0x12, 0x18, 0x14, 255),
	Ground:        rl.NewColor(0x29, 0x38, 0x26, 255),
	Grid:          rl.NewColor(0x3A, 0x4C, 0x36, 255),
	Panel:         rl.NewColor(0x1C, 0x23, 0x1F, 235),
	PanelRaised:   rl.NewColor(0x23, 0x2D, 0x27, 245),
	Border:        rl.NewColor(0x2E, 0x3D, 0x33, 255),
	Divider:       rl.NewColor(0x26, 0x32, 0x2B, 255),
	TextPrimary:   rl.NewColor(0xE8, 0xE6, 0xD8, 255),
	TextSecondary: rl.NewColor(0xA6, 0xB1, 0xA6, 255),
	TextMuted:     rl.NewColor(0x7D, 0x8A, 0x7F, 255),
	Accent:        rl.NewColor(0x8C, 0xC8, 0x5A, 255),
	AccentSoft:    rl.NewColor(0x4C, 0x7A, 0x3A, 255),
	Warning:       rl.NewColor(0xC1, 0x8B, 0x2F, 255),
	Danger:        rl.NewColor(0xB8, 0x4A, 0x3A, 255),
	Highlight:     rl.NewColor(0xF2, 0xD4, 0x6B, 255),
}

// DrawPanel draws a themed panel. If title is non-empty, a header with an
// accent underline and a divider are drawn inside the panel top.
func DrawPanel(rect rl.Rectangle, title string, raised bool) {
	fill := AppTheme.Panel
	stroke := AppTheme.Border
	width := borderWidth
	if raised {
		fill = AppTheme.PanelRaised
		stroke = mix(AppTheme.Border, AppTheme.AccentSoft, 0.35)
		width = 1.4
	}
	rl.DrawRectangleRounded(rect, cornerRadius, cornerSegments, fill)
	rl.DrawRectangleRoundedLinesEx(rect, cornerRadius, cornerSegments, width, stroke)

	if title != "" {
		DrawHeader(title, int32(rect.X+spaceM), int32(rect.Y+spaceS))
		dividerY := rect.Y + spaceS + float32(sizes.Heading) + 12
		DrawDivider(rect.X+spaceM, dividerY, rect.X+rect.Width-spaceM, dividerY)
	}
}

// DrawInputField renders the search box. placeholder shows while text is
// empty.
func DrawInputField(rect rl.Rectangle, text, placeholder string, focused bool) {
	stroke := AppTheme.Border
	width := borderWidth
	if focused {
		stroke = AppTheme.Accent
		width = borderFocus
	}
	rl.DrawRectangleRounded(rect, cornerRadius, cornerSegments, AppTheme.PanelRaised)
	rl.DrawRectangleRoundedLinesEx(rect, cornerRadius, cornerSegments, width, stroke)

	x := int32(rect.X + spaceS)
	y := int32(rect.Y + (rect.Height-float32(sizes.Body))/2)
	if text == "" {
		drawText(placeholder, x, y, sizes.Body, AppTheme.TextMuted)
		return
	}
	drawText(text, x, y, sizes.Body, AppTheme.TextPrimary)
	if focused && (int(rl.GetTime()*2))%2 == 0 {
		cx := float32(x + measureText(text, sizes.Body) + 2)
		drawLine(cx, float32(y), cx, float32(y+sizes.Body), 2, AppTheme.Accent)
	}
}

func DrawHeader(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, sizes.Heading, AppTheme.TextPrimary)
	w := measureText(text, sizes.Heading)
	lineW := int32(float32(w) * 0.6)
	if lineW < 44 {
		lineW = 44
	}
	drawLine(float32(x), float32(y+sizes.Heading+6), float32(x+lineW), float32(y+sizes.Heading+6), 2.0, AppTheme.Accent)
}

func DrawDivider(x1, y1, x2, y2 float32) {
	drawLine(x1, y1, x2, y2, 1.0, rl.Fade(AppTheme.Divider, 0.95))
}

func DrawHintText(text string, x, y int32) {
	if text == "" {
		return
	}
	drawText(text, x, y, sizes.Note, AppTheme.TextMuted)
}

func drawLine(x1, y1, x2, y2, thickness float32, clr rl.Color) {
	rl.DrawLineEx(rl.NewVector2(x1, y1), rl.NewVector2(x2, y2), thickness, clr)
}

func mix(a, b rl.Color, t float32) rl.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	inv := 1.0 - t
	return rl.NewColor(
		uint8(float32(a.R)*inv+float32(b.R)*t),
		uint8(float32(a.G)*inv+float32(b.G)*t),
		uint8(float32(a.B)*inv+float32(b.B)*t),
		uint8(float32(a.A)*inv+float32(b.A)*t),
	)
}
