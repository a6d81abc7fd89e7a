package savegame

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/pixil98/go-dungeon/internal/arena"
	"github.com/pixil98/go-dungeon/internal/game"
)

const (
	// maxNameLen bounds a routine/move name record on load; anything longer
	// is a corrupt stream, not a plausible registered name.
	maxNameLen = 2048

	// stringSlack is extra room allocated with every string read, matching
	// the arena behavior the simulation expects for in-place edits.
	stringSlack = 32
)

// codec transcodes single objects against a compiled field list. It never
// allocates or frees the objects themselves: it reads from and writes into
// caller-supplied structs, touching the arena only for string payloads on
// load.
type codec struct {
	world *game.World
}

// writeObject emits one object: the fixed block assembled field by field
// (pointer fields collapsed to lengths or indices), then the variable-length
// trailers in the same field order. The live object is never mutated.
func (c *codec) writeObject(w io.Writer, fields []Field, obj any) error {
	v := reflect.ValueOf(obj).Elem()

	block := make([]byte, 0, blockSize(fields))
	for i := range fields {
		var err error
		block, err = c.appendFixed(block, &fields[i], v)
		if err != nil {
			return err
		}
	}
	if _, err := w.Write(block); err != nil {
		return fmt.Errorf("writing block: %w", err)
	}

	for i := range fields {
		if err := c.writeTrailer(w, &fields[i], v); err != nil {
			return err
		}
	}
	return nil
}

// appendFixed encodes one field's share of the fixed block. For pointer
// kinds the encoded value is a placeholder: a byte length for strings and
// names, an array index for back-references.
func (c *codec) appendFixed(block []byte, f *Field, v reflect.Value) ([]byte, error) {
	if !f.persisted() {
		return block, nil
	}
	fv := f.value(v)

	switch f.Kind {
	case KindBool:
		b := byte(0)
		if fv.Bool() {
			b = 1
		}
		return append(block, b), nil

	case KindInt:
		return appendInt32(block, int32(fv.Int())), nil

	case KindFloat:
		return appendFloat32(block, float32(fv.Float())), nil

	case KindVector:
		vec := fv.Interface().([3]float32)
		for _, x := range vec {
			block = appendFloat32(block, x)
		}
		return block, nil

	case KindString:
		return appendInt32(block, stringLen(fv.String())), nil

	case KindEntity:
		if fv.IsNil() {
			return appendInt32(block, -1), nil
		}
		return appendInt32(block, fv.Interface().(*game.Entity).Index), nil

	case KindClient:
		if fv.IsNil() {
			return appendInt32(block, -1), nil
		}
		return appendInt32(block, fv.Interface().(*game.Client).Index), nil

	case KindItem:
		if fv.IsNil() {
			return appendInt32(block, -1), nil
		}
		return appendInt32(block, fv.Interface().(*game.Item).Index), nil

	case KindFunc:
		name, err := c.routineName(f, fv)
		if err != nil {
			return nil, err
		}
		return appendInt32(block, stringLen(name)), nil

	case KindMove:
		name, err := c.moveName(f, fv)
		if err != nil {
			return nil, err
		}
		return appendInt32(block, stringLen(name)), nil
	}

	return nil, fmt.Errorf("%s: unknown field kind %d", f.Name, f.Kind)
}

// writeTrailer appends the variable-length payload whose size was already
// recorded in the fixed block.
func (c *codec) writeTrailer(w io.Writer, f *Field, v reflect.Value) error {
	if !f.persisted() {
		return nil
	}
	fv := f.value(v)

	var payload string
	switch f.Kind {
	case KindString:
		payload = fv.String()
	case KindFunc:
		name, err := c.routineName(f, fv)
		if err != nil {
			return err
		}
		payload = name
	case KindMove:
		name, err := c.moveName(f, fv)
		if err != nil {
			return err
		}
		payload = name
	default:
		return nil
	}

	if payload == "" {
		return nil
	}
	if _, err := w.Write(append([]byte(payload), 0)); err != nil {
		return fmt.Errorf("%s: writing trailer: %w", f.Name, err)
	}
	return nil
}

// readObject mirrors writeObject: consume the fixed block, then each
// trailer in field order, resolving placeholders back into live pointers.
func (c *codec) readObject(r io.Reader, fields []Field, obj any) error {
	v := reflect.ValueOf(obj).Elem()

	block := make([]byte, blockSize(fields))
	if _, err := io.ReadFull(r, block); err != nil {
		return fmt.Errorf("%w: reading block: %v", ErrCorruptStream, err)
	}

	placeholders := make([]int32, len(fields))
	off := 0
	for i := range fields {
		off = c.decodeFixed(block, off, &fields[i], v, &placeholders[i])
	}

	for i := range fields {
		if err := c.readTrailer(r, &fields[i], v, placeholders[i]); err != nil {
			return err
		}
	}
	return nil
}

// decodeFixed consumes one field's share of the block: primitives land in
// the destination struct immediately, placeholders are kept for the trailer
// pass.
func (c *codec) decodeFixed(block []byte, off int, f *Field, v reflect.Value, placeholder *int32) int {
	if !f.persisted() {
		return off
	}

	switch f.Kind {
	case KindBool:
		f.value(v).SetBool(block[off] != 0)
		return off + 1

	case KindInt:
		f.value(v).SetInt(int64(getInt32(block, off)))
		return off + 4

	case KindFloat:
		f.value(v).SetFloat(float64(getFloat32(block, off)))
		return off + 4

	case KindVector:
		var vec [3]float32
		for i := range vec {
			vec[i] = getFloat32(block, off+i*4)
		}
		f.value(v).Set(reflect.ValueOf(vec))
		return off + 12

	default:
		*placeholder = getInt32(block, off)
		return off + 4
	}
}

// readTrailer resolves one placeholder: back-reference indices become
// pointers into the current arrays, name records are read and looked up in
// the registries, string payloads are read into arena-backed buffers.
func (c *codec) readTrailer(r io.Reader, f *Field, v reflect.Value, placeholder int32) error {
	if !f.persisted() {
		return nil
	}
	fv := f.value(v)

	switch f.Kind {
	case KindBool, KindInt, KindFloat, KindVector:
		return nil

	case KindString:
		s, err := c.readString(r, f, placeholder)
		if err != nil {
			return err
		}
		fv.SetString(s)
		return nil

	case KindEntity:
		if placeholder == -1 {
			fv.SetZero()
			return nil
		}
		if placeholder < 0 || placeholder >= int32(len(c.world.Entities)) {
			return fmt.Errorf("%w: %s: entity index %d out of range", ErrCorruptStream, f.Name, placeholder)
		}
		fv.Set(reflect.ValueOf(&c.world.Entities[placeholder]))
		return nil

	case KindClient:
		if placeholder == -1 {
			fv.SetZero()
			return nil
		}
		if placeholder < 0 || placeholder >= int32(len(c.world.Clients)) {
			return fmt.Errorf("%w: %s: client index %d out of range", ErrCorruptStream, f.Name, placeholder)
		}
		fv.Set(reflect.ValueOf(&c.world.Clients[placeholder]))
		return nil

	case KindItem:
		if placeholder == -1 {
			fv.SetZero()
			return nil
		}
		if placeholder < 0 || placeholder >= int32(len(c.world.Items)) {
			return fmt.Errorf("%w: %s: item index %d out of range", ErrCorruptStream, f.Name, placeholder)
		}
		fv.Set(reflect.ValueOf(&c.world.Items[placeholder]))
		return nil

	case KindFunc:
		name, err := c.readName(r, f, placeholder)
		if err != nil {
			return err
		}
		if name == "" {
			fv.SetZero()
			return nil
		}
		routine, ok := c.world.Routines.FindByName(name)
		if !ok {
			return fmt.Errorf("%w: %s: routine %q not in table", ErrUnresolvedReference, f.Name, name)
		}
		rv := reflect.ValueOf(routine)
		if !rv.Type().AssignableTo(f.typ) {
			return fmt.Errorf("%w: %s: routine %q has signature %s, want %s",
				ErrUnresolvedReference, f.Name, name, rv.Type(), f.typ)
		}
		fv.Set(rv)
		return nil

	case KindMove:
		name, err := c.readName(r, f, placeholder)
		if err != nil {
			return err
		}
		if name == "" {
			fv.SetZero()
			return nil
		}
		move, ok := c.world.Moves.FindByName(name)
		if !ok {
			return fmt.Errorf("%w: %s: move script %q not in table", ErrUnresolvedReference, f.Name, name)
		}
		fv.Set(reflect.ValueOf(move.(*game.MoveScript)))
		return nil
	}

	return fmt.Errorf("%s: unknown field kind %d", f.Name, f.Kind)
}

// readString reads a length-prefixed string payload into a level-arena
// buffer with slack, as the simulation's string lifetime model expects.
func (c *codec) readString(r io.Reader, f *Field, n int32) (string, error) {
	if n == 0 {
		return "", nil
	}
	if n < 0 {
		return "", fmt.Errorf("%w: %s: negative string length %d", ErrCorruptStream, f.Name, n)
	}

	buf := c.world.Arena.Alloc(arena.TagLevel, int(n)+stringSlack)
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return "", fmt.Errorf("%w: %s: reading string: %v", ErrCorruptStream, f.Name, err)
	}
	return string(buf[:n-1]), nil
}

// readName reads a length-prefixed routine/move name into a bounded local
// buffer. Zero length means a nil reference and consumes nothing.
func (c *codec) readName(r io.Reader, f *Field, n int32) (string, error) {
	if n == 0 {
		return "", nil
	}
	if n < 0 || n > maxNameLen {
		return "", fmt.Errorf("%w: %s: name length %d exceeds buffer", ErrCorruptStream, f.Name, n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %s: reading name: %v", ErrCorruptStream, f.Name, err)
	}
	return string(buf[:n-1]), nil
}

// routineName resolves a func field to its registered name; empty for nil.
// A non-nil unregistered routine is fatal: the savegame could never be
// loaded back.
func (c *codec) routineName(f *Field, fv reflect.Value) (string, error) {
	if fv.IsNil() {
		return "", nil
	}
	name, ok := c.world.Routines.AddressOf(fv.Interface())
	if !ok {
		return "", fmt.Errorf("%w: %s: routine not in table, can't save game", ErrUnresolvedReference, f.Name)
	}
	return name, nil
}

func (c *codec) moveName(f *Field, fv reflect.Value) (string, error) {
	if fv.IsNil() {
		return "", nil
	}
	name, ok := c.world.Moves.AddressOf(fv.Interface())
	if !ok {
		return "", fmt.Errorf("%w: %s: move script not in table, can't save game", ErrUnresolvedReference, f.Name)
	}
	return name, nil
}

// stringLen is the stored length of a string payload: byte length plus the
// NUL terminator, zero for the empty (nil) string.
func stringLen(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s)) + 1
}

func appendInt32(b []byte, x int32) []byte {
	return binary.LittleEndian.AppendUint32(b, uint32(x))
}

func appendFloat32(b []byte, x float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(x))
}

func getInt32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func getFloat32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
