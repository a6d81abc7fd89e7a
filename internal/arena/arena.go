package arena

import "fmt"

// Tag scopes an allocation to the lifetime that owns it. Game-tagged buffers
// live for the whole session; level-tagged buffers are released in bulk when
// the next level loads.
type Tag int

const (
	TagGame Tag = iota + 1
	TagLevel
)

func (t Tag) String() string {
	switch t {
	case TagGame:
		return "game"
	case TagLevel:
		return "level"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// Arena hands out zero-initialized buffers grouped by tag and releases them
// in bulk. Owned exclusively by the load orchestrator; no locking, per the
// single-threaded save/load model.
type Arena struct {
	buffers map[Tag][][]byte
	bytes   map[Tag]int
}

func New() *Arena {
	return &Arena{
		buffers: map[Tag][][]byte{},
		bytes:   map[Tag]int{},
	}
}

// Alloc returns a zeroed buffer of the given size, tracked under tag until
// the next FreeAll for that tag.
func (a *Arena) Alloc(tag Tag, size int) []byte {
	buf := make([]byte, size)
	a.buffers[tag] = append(a.buffers[tag], buf)
	a.bytes[tag] += size
	return buf
}

// FreeAll drops every buffer tracked under tag.
func (a *Arena) FreeAll(tag Tag) {
	delete(a.buffers, tag)
	delete(a.bytes, tag)
}

// InUse reports the total bytes currently tracked under tag.
func (a *Arena) InUse(tag Tag) int {
	return a.bytes[tag]
}
