package arena

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAlloc_Zeroed(t *testing.T) {
	a := New()

	buf := a.Alloc(TagLevel, 64)
	testutil.AssertEqual(t, "len", len(buf), 64)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: %#x", i, b)
		}
	}
}

func TestFreeAll_ReleasesOnlyTag(t *testing.T) {
	a := New()

	a.Alloc(TagGame, 100)
	a.Alloc(TagLevel, 30)
	a.Alloc(TagLevel, 20)
	testutil.AssertEqual(t, "level bytes", a.InUse(TagLevel), 50)
	testutil.AssertEqual(t, "game bytes", a.InUse(TagGame), 100)

	a.FreeAll(TagLevel)
	testutil.AssertEqual(t, "level bytes after free", a.InUse(TagLevel), 0)
	testutil.AssertEqual(t, "game bytes after free", a.InUse(TagGame), 100)
}

func TestFreeAll_EmptyTag(t *testing.T) {
	a := New()
	a.FreeAll(TagLevel)
	testutil.AssertEqual(t, "bytes", a.InUse(TagLevel), 0)
}
