package input

import "github.com/san-kum/sandfall/internal/geom"

type Key uint8

const (
	KeyPlay Key = iota
	KeyPause
	KeyStop
	KeyLeft
	KeyRight
	KeyQuit
)

var keyNames = map[Key]string{
	KeyPlay:  "play",
	KeyPause: "pause",
	KeyStop:  "stop",
	KeyLeft:  "left",
	KeyRight: "right",
	KeyQuit:  "quit",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey is the inverse of Key.String.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// KeySet is a bitset of keys.
type KeySet uint32

func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s |= 1 << k
	}
	return s
}

func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

func (s KeySet) With(k Key) KeySet { return s | 1<<k }

// Snapshot is the input state sampled once per frame. Pointer is in pixels.
type Snapshot struct {
	Pointer      geom.Point
	Left         bool
	Right        bool
	Middle       bool
	Scroll       float64
	KeysDown     KeySet
	KeysReleased KeySet
}
