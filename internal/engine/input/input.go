// Package input defines the engine's input events and key state,
// independent of the windowing backend that produces them.
package input

// EventType identifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseWheel
)

// Key is a key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyW:       "w",
	KeyA:       "a",
	KeyS:       "s",
	KeyD:       "d",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int

	// Absolute pointer position and motion since the previous event.
	MouseX, MouseY int
	RelX, RelY     int

	// Wheel offset, positive away from the user.
	WheelY float32
}

// KeyState is a snapshot of which keys are held down.
type KeyState [keyCount]bool

// Held reports whether k is down.
func (s *KeyState) Held(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s[k]
}

// Set records k as held or released.
func (s *KeyState) Set(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	s[k] = down
}
