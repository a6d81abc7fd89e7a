package savegame

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pixil98/go-dungeon/internal/game"
)

// Kind is the semantic type of one persisted field. It decides both the
// fixed-block encoding and the trailer, if any.
type Kind int

const (
	KindBool   Kind = iota // one byte
	KindInt                // int32, little-endian
	KindFloat              // float32 bits, little-endian
	KindVector             // [3]float32
	KindString             // length in block, bytes + NUL in trailer
	KindEntity             // entity array index, -1 for nil
	KindClient             // client array index, -1 for nil
	KindItem               // item list index, -1 for nil
	KindFunc               // registered routine name length + trailer
	KindMove               // registered move script name length + trailer
	KindIgnore             // live-only, contributes nothing to the stream
)

type Flag uint32

const (
	// FlagSpawnTemp marks a field consumed at spawn time. It is never
	// persisted regardless of kind.
	FlagSpawnTemp Flag = 1 << iota
)

// Field describes one persistable struct field: its wire name, the dotted Go
// field path it binds to, and how to transcode it. The ordered field lists in
// tables.go are the wire format; order and count must match between writer
// and reader byte for byte.
type Field struct {
	Name  string
	Path  string
	Kind  Kind
	Flags Flag

	index []int // resolved struct index chain, set by compileFields
	typ   reflect.Type
}

// persisted reports whether the field occupies stream bytes at all.
func (f *Field) persisted() bool {
	return f.Kind != KindIgnore && f.Flags&FlagSpawnTemp == 0
}

// width is the field's share of the fixed block, in bytes.
func (f *Field) width() int {
	if !f.persisted() {
		return 0
	}
	switch f.Kind {
	case KindBool:
		return 1
	case KindVector:
		return 12
	default:
		return 4
	}
}

// value resolves the field on a struct value.
func (f *Field) value(v reflect.Value) reflect.Value {
	return v.FieldByIndex(f.index)
}

func blockSize(fields []Field) int {
	n := 0
	for i := range fields {
		n += fields[i].width()
	}
	return n
}

// compileFields resolves every descriptor's field path against typ and
// verifies the Go type matches the declared kind. This is the layout lock:
// a descriptor list that no longer matches the live struct fails here, at
// startup, not in the middle of a save.
func compileFields(typ reflect.Type, fields []Field) ([]Field, error) {
	compiled := make([]Field, len(fields))

	for i, f := range fields {
		ft := typ
		f.index = nil
		for _, part := range strings.Split(f.Path, ".") {
			sf, ok := ft.FieldByName(part)
			if !ok {
				return nil, fmt.Errorf("%s: no field %q on %s", f.Name, part, ft)
			}
			f.index = append(f.index, sf.Index...)
			ft = sf.Type
		}
		f.typ = ft

		if err := checkKind(&f, ft); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		compiled[i] = f
	}

	return compiled, nil
}

func checkKind(f *Field, t reflect.Type) error {
	want := ""
	switch f.Kind {
	case KindBool:
		if t.Kind() != reflect.Bool {
			want = "bool"
		}
	case KindInt:
		if t.Kind() != reflect.Int32 {
			want = "int32"
		}
	case KindFloat:
		if t.Kind() != reflect.Float32 {
			want = "float32"
		}
	case KindVector:
		if t != reflect.TypeOf([3]float32{}) {
			want = "[3]float32"
		}
	case KindString:
		if t.Kind() != reflect.String {
			want = "string"
		}
	case KindEntity:
		if t != reflect.TypeOf((*game.Entity)(nil)) {
			want = "*game.Entity"
		}
	case KindClient:
		if t != reflect.TypeOf((*game.Client)(nil)) {
			want = "*game.Client"
		}
	case KindItem:
		if t != reflect.TypeOf((*game.Item)(nil)) {
			want = "*game.Item"
		}
	case KindFunc:
		if t.Kind() != reflect.Func {
			want = "func"
		}
	case KindMove:
		if t != reflect.TypeOf((*game.MoveScript)(nil)) {
			want = "*game.MoveScript"
		}
	case KindIgnore:
	default:
		return fmt.Errorf("unknown field kind %d", f.Kind)
	}

	if want != "" {
		return fmt.Errorf("field %s is %s, descriptor wants %s", f.Path, t, want)
	}
	return nil
}
