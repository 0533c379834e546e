package gui

import (
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// textSizes are the pixel sizes used by the tour. Heading is the panel title
// (the plant name), Latin the scientific name under it, Note the description
// and characteristics, Tag the name tags floating over each plant.
type textSizes struct {
	Heading int32
	Latin   int32
	Body    int32
	Note    int32
	Tag     int32
}

var sizes = textSizes{
	Heading: 24,
	Latin:   18,
	Body:    17,
	Note:    15,
	Tag:     14,
}

const (
	// Tags are the smallest text and are drawn over a moving scene, so the
	// face is rasterised at twice their size and scaled down.
	fontRasterSize = 28
	lineLeading    = 1.3
)

// fontBook holds the face all tour text is drawn with.
type fontBook struct {
	face  rl.Font
	owned bool
}

var book fontBook

// fontSearchPaths lists the fonts tried in order: the configured one, then
// the bundled faces next to the working directory and next to the binary.
func fontSearchPaths(configured, exeDir string) []string {
	var paths []string
	if configured != "" {
		paths = append(paths, configured)
	}
	bundled := []string{"NotoSerif-Regular.ttf", "NotoSans-Regular.ttf"}
	for _, root := range []string{".", exeDir} {
		if root == "" {
			continue
		}
		for _, name := range bundled {
			paths = append(paths, filepath.Join(root, "assets", "fonts", name))
		}
	}
	return paths
}

// herbariumGlyphs covers ASCII plus Latin-1, which holds the accents of
// common names and the hybrid sign (×) of scientific names.
func herbariumGlyphs() []rune {
	glyphs := make([]rune, 0, 0xFF-0x20+1)
	for r := rune(0x20); r <= 0xFF; r++ {
		if r >= 0x7F && r < 0xA0 {
			continue
		}
		glyphs = append(glyphs, r)
	}
	return glyphs
}

func openFontBook(configured string, logger *slog.Logger) {
	book = fontBook{face: rl.GetFontDefault()}
	exeDir := ""
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}
	glyphs := herbariumGlyphs()
	for _, path := range fontSearchPaths(configured, exeDir) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face := rl.LoadFontEx(path, fontRasterSize, glyphs, int32(len(glyphs)))
		if face.Texture.ID == 0 {
			logger.Warn("font could not be loaded", "path", path)
			continue
		}
		book = fontBook{face: face, owned: true}
		logger.Debug("font loaded", "path", path)
		break
	}
	if configured != "" && !book.owned {
		logger.Warn("configured font unavailable, using the built-in face", "path", configured)
	}
	rl.SetTextureFilter(book.face.Texture, rl.FilterBilinear)
}

func closeFontBook() {
	if book.owned && book.face.Texture.ID != 0 {
		rl.UnloadFont(book.face)
	}
	book = fontBook{}
}

func drawText(text string, x, y, size int32, clr rl.Color) {
	if book.face.Texture.ID == 0 {
		rl.DrawText(text, x, y, size, clr)
		return
	}
	rl.DrawTextEx(book.face, text, rl.Vector2{X: float32(x), Y: float32(y)}, float32(size), 1, clr)
}

func measureText(text string, size int32) int32 {
	if book.face.Texture.ID == 0 {
		return int32(rl.MeasureText(text, size))
	}
	return int32(math.Round(float64(rl.MeasureTextEx(book.face, text, float32(size), 1).X)))
}

func lineHeight(size int32) int32 {
	return int32(math.Round(float64(max(size, 1)) * lineLeading))
}

// wrapText breaks text into lines no wider than maxWidth. A single word wider
// than maxWidth gets a line of its own.
func wrapText(text string, maxWidth int32, measure func(string) int32) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if next := current + " " + word; measure(next) <= maxWidth {
			current = next
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// drawWrapped draws text wrapped to maxWidth and returns the height used.
func drawWrapped(text string, x, y, maxWidth, size int32, clr rl.Color) int32 {
	lines := wrapText(text, maxWidth, func(s string) int32 { return measureText(s, size) })
	for i, line := range lines {
		drawText(line, x, y+int32(i)*lineHeight(size), size, clr)
	}
	return int32(len(lines)) * lineHeight(size)
}
