package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const maxQueryLen = 48

// frameInput is everything the tour reads from the keyboard and mouse in one
// frame.
type frameInput struct {
	typed      []rune
	backspace  bool
	clear      bool
	retry      bool
	remount    bool
	toggleSpin bool
	click      bool
	mouse      rl.Vector2
	drag       rl.Vector2
	wheel      float32
}

func readInput() frameInput {
	in := frameInput{
		backspace:  rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace),
		clear:      rl.IsKeyPressed(rl.KeyEscape),
		retry:      rl.IsKeyPressed(rl.KeyR) || rl.IsKeyPressed(rl.KeyF5),
		remount:    rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter),
		toggleSpin: rl.IsKeyPressed(rl.KeyTab),
		click:      rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		mouse:      rl.GetMousePosition(),
		wheel:      rl.GetMouseWheelMove(),
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		in.typed = append(in.typed, rune(ch))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.drag = rl.GetMouseDelta()
	}
	return in
}

// editQuery applies one frame of typing to the search text. Only printable
// ASCII is accepted.
func editQuery(query string, typed []rune, backspace bool, maxLen int) string {
	for _, ch := range typed {
		if ch >= 32 && ch <= 126 && len(query) < maxLen {
			query += string(ch)
		}
	}
	if backspace && len(query) > 0 {
		query = query[:len(query)-1]
	}
	return query
}
