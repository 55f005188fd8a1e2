package input

// Key is a host-independent key code. Letters and digits use their ASCII
// upper-case code points so hosts that deliver runes can map them directly.
type Key int

// Key constants for the keys hosts translate.
const (
	KeyUnknown Key = 0

	Key0 Key = '0'
	Key1 Key = '1'
	Key2 Key = '2'
	Key3 Key = '3'
	Key4 Key = '4'
	Key5 Key = '5'
	Key6 Key = '6'
	Key7 Key = '7'
	Key8 Key = '8'
	Key9 Key = '9'

	KeyA Key = 'A'
	KeyB Key = 'B'
	KeyC Key = 'C'
	KeyD Key = 'D'
	KeyE Key = 'E'
	KeyF Key = 'F'
	KeyG Key = 'G'
	KeyH Key = 'H'
	KeyI Key = 'I'
	KeyJ Key = 'J'
	KeyK Key = 'K'
	KeyL Key = 'L'
	KeyM Key = 'M'
	KeyN Key = 'N'
	KeyO Key = 'O'
	KeyP Key = 'P'
	KeyQ Key = 'Q'
	KeyR Key = 'R'
	KeyS Key = 'S'
	KeyT Key = 'T'
	KeyU Key = 'U'
	KeyV Key = 'V'
	KeyW Key = 'W'
	KeyX Key = 'X'
	KeyY Key = 'Y'
	KeyZ Key = 'Z'

	KeySpace Key = ' '
)

// Non-printable keys live above the rune range used by the constants above.
const (
	KeyEscape Key = iota + 256
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyShift
	KeyControl
	KeyAlt
)

// KeyFromRune maps a printable rune to its key code, folding lower case
// letters onto the upper-case constants.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return Key(r - 'a' + 'A')
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		return Key(r)
	default:
		return KeyUnknown
	}
}

// MouseButton identifies a pointer button. ButtonNone means no button is held.
type MouseButton int

// Mouse button constants
const (
	ButtonNone MouseButton = iota - 1
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b MouseButton) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "unknown"
	}
}

var specialKeyNames = map[Key]string{
	KeySpace:     "Space",
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyShift:     "Shift",
	KeyControl:   "Ctrl",
	KeyAlt:       "Alt",
}

func (k Key) String() string {
	if name, ok := specialKeyNames[k]; ok {
		return name
	}
	if (k >= KeyA && k <= KeyZ) || (k >= Key0 && k <= Key9) {
		return string(rune(k))
	}
	return "Unknown"
}
