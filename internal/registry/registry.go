package registry

import (
	"fmt"
	"reflect"
)

// Entry pairs a registered name with the runtime address of the behavior
// routine or move script it identifies. Addresses are only ever used as
// in-process lookup keys; they never appear in a savegame.
type Entry struct {
	Name  string
	Value any

	addr uintptr
}

// Table is a bidirectional name/address registry. It is populated once at
// world init from a compiled-in list, sorted, and read-only afterwards.
type Table struct {
	entries []Entry // registration order, scanned by FindByName
	sorted  []Entry // address-ascending view, built by Sort
}

func NewTable() *Table {
	return &Table{}
}

// Register adds a named value to the table. The address is derived from the
// value itself: func values and pointers to package-level script declarations
// both have a stable address for the lifetime of the process.
func (t *Table) Register(name string, v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer:
	default:
		return fmt.Errorf("registering %q: %s is not addressable", name, rv.Kind())
	}
	return t.add(name, v, rv.Pointer())
}

func (t *Table) add(name string, v any, addr uintptr) error {
	if name == "" {
		return fmt.Errorf("registering entry with empty name")
	}
	if addr == 0 {
		return fmt.Errorf("registering %q: nil value", name)
	}
	for i := range t.entries {
		if t.entries[i].Name == name {
			return fmt.Errorf("duplicate registration of name %q", name)
		}
		if t.entries[i].addr == addr {
			return fmt.Errorf("address of %q already registered as %q", name, t.entries[i].Name)
		}
	}

	t.entries = append(t.entries, Entry{Name: name, Value: v, addr: addr})
	t.sorted = nil
	return nil
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Sort builds the address-ascending view used by FindByAddress. In-place
// heap-sort: sift-down from the last parent to the root, then repeatedly
// swap the heap root with the last unsorted slot and re-sift. O(1) extra
// space and the same element order on every toolchain, so the binary search
// below sees a bit-stable layout.
func (t *Table) Sort() {
	t.sorted = make([]Entry, len(t.entries))
	copy(t.sorted, t.entries)

	n := len(t.sorted)
	for start := n/2 - 1; start >= 0; start-- {
		siftDown(t.sorted, start, n-1)
	}
	for end := n - 1; end > 0; end-- {
		t.sorted[0], t.sorted[end] = t.sorted[end], t.sorted[0]
		siftDown(t.sorted, 0, end-1)
	}
}

func siftDown(list []Entry, start, end int) {
	root := start
	for root*2+1 <= end {
		child := root*2 + 1
		swap := root
		if list[swap].addr < list[child].addr {
			swap = child
		}
		if child+1 <= end && list[swap].addr < list[child+1].addr {
			swap = child + 1
		}
		if swap == root {
			return
		}
		list[root], list[swap] = list[swap], list[root]
		root = swap
	}
}

// FindByAddress returns the registered name for addr, binary-searching the
// sorted view. Sort must have been called first.
func (t *Table) FindByAddress(addr uintptr) (string, bool) {
	min, max := 0, len(t.sorted)-1
	for max >= min {
		mid := min + (max-min)/2
		switch {
		case t.sorted[mid].addr == addr:
			return t.sorted[mid].Name, true
		case t.sorted[mid].addr < addr:
			min = mid + 1
		default:
			max = mid - 1
		}
	}
	return "", false
}

// AddressOf reports the registered name for a live value, or false if the
// value was never registered.
func (t *Table) AddressOf(v any) (string, bool) {
	return t.FindByAddress(reflect.ValueOf(v).Pointer())
}

// FindByName returns the value registered under name. A linear scan over the
// registration-order list; only the load path pays it, and tables stay small.
func (t *Table) FindByName(name string) (any, bool) {
	for i := range t.entries {
		if t.entries[i].Name == name {
			return t.entries[i].Value, true
		}
	}
	return nil, false
}
