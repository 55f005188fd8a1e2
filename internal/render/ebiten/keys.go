package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"chosenoffset.com/framekit/internal/input"
)

// keyTable maps the ebiten keys the store knows about. Keys missing here are
// ignored.
var keyTable = map[ebiten.Key]input.Key{
	ebiten.KeyA: input.KeyA,
	ebiten.KeyB: input.KeyB,
	ebiten.KeyC: input.KeyC,
	ebiten.KeyD: input.KeyD,
	ebiten.KeyE: input.KeyE,
	ebiten.KeyF: input.KeyF,
	ebiten.KeyG: input.KeyG,
	ebiten.KeyH: input.KeyH,
	ebiten.KeyI: input.KeyI,
	ebiten.KeyJ: input.KeyJ,
	ebiten.KeyK: input.KeyK,
	ebiten.KeyL: input.KeyL,
	ebiten.KeyM: input.KeyM,
	ebiten.KeyN: input.KeyN,
	ebiten.KeyO: input.KeyO,
	ebiten.KeyP: input.KeyP,
	ebiten.KeyQ: input.KeyQ,
	ebiten.KeyR: input.KeyR,
	ebiten.KeyS: input.KeyS,
	ebiten.KeyT: input.KeyT,
	ebiten.KeyU: input.KeyU,
	ebiten.KeyV: input.KeyV,
	ebiten.KeyW: input.KeyW,
	ebiten.KeyX: input.KeyX,
	ebiten.KeyY: input.KeyY,
	ebiten.KeyZ: input.KeyZ,

	ebiten.KeyDigit0: input.Key0,
	ebiten.KeyDigit1: input.Key1,
	ebiten.KeyDigit2: input.Key2,
	ebiten.KeyDigit3: input.Key3,
	ebiten.KeyDigit4: input.Key4,
	ebiten.KeyDigit5: input.Key5,
	ebiten.KeyDigit6: input.Key6,
	ebiten.KeyDigit7: input.Key7,
	ebiten.KeyDigit8: input.Key8,
	ebiten.KeyDigit9: input.Key9,

	ebiten.KeySpace:     input.KeySpace,
	ebiten.KeyEscape:    input.KeyEscape,
	ebiten.KeyEnter:     input.KeyEnter,
	ebiten.KeyTab:       input.KeyTab,
	ebiten.KeyBackspace: input.KeyBackspace,

	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,

	ebiten.KeyShiftLeft:    input.KeyShift,
	ebiten.KeyShiftRight:   input.KeyShift,
	ebiten.KeyControlLeft:  input.KeyControl,
	ebiten.KeyControlRight: input.KeyControl,
	ebiten.KeyAltLeft:      input.KeyAlt,
	ebiten.KeyAltRight:     input.KeyAlt,
}

var buttonTable = [...]struct {
	eb ebiten.MouseButton
	in input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.ButtonLeft},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
	{ebiten.MouseButtonRight, input.ButtonRight},
}
