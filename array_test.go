package schemaobject_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	so "github.com/reoring/schemaobject"
)

func TestArray_UniquePush(t *testing.T) {
	f := mustField(t, so.Field{Type: so.List(so.KindNumber), Unique: true}, "nums")
	a := so.NewArray(nil, f)
	if n, err := a.Push(5, 4); err != nil || n != 2 {
		t.Fatalf("push: n=%d err=%v", n, err)
	}
	if n, err := a.Push(3, 2, 4, 1, 3, 0); err != nil || n != 6 {
		t.Fatalf("push: n=%d err=%v", n, err)
	}
	if diff := cmp.Diff([]any{5.0, 4.0, 3.0, 2.0, 1.0, 0.0}, a.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	// coerced before comparison
	a.Push("5", "7")
	if diff := cmp.Diff([]any{5.0, 4.0, 3.0, 2.0, 1.0, 0.0, 7.0}, a.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !a.Contains(7) || a.Contains(8) {
		t.Fatalf("Contains mismatch")
	}
}

func TestArray_RejectedElements(t *testing.T) {
	f := mustField(t, so.Field{Type: so.List(so.KindNumber)}, "nums")
	a := so.NewArray(nil, f)
	n, err := a.Push(1, "x", 2, []any{3})
	if n != 2 {
		t.Fatalf("expected accepted elements to be appended, n=%d", n)
	}
	iss, ok := so.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected two issues, got %v", err)
	}
	if iss[0].Path != "/nums/1" || iss[1].Path != "/nums/3" || iss[0].Code != so.CodeTypeMismatch {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	if diff := cmp.Diff([]any{1.0, 2.0}, a.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestArray_UntypedAndClear(t *testing.T) {
	a := so.NewArray(nil, mustField(t, so.KindArray, "xs"))
	a.Push(1, "1", nil)
	if a.Len() != 3 || a.At(1) != "1" || a.At(2) != nil {
		t.Fatalf("untyped arrays keep values as-is: %v", a.Values())
	}
	vals := a.Values()
	vals[0] = "changed"
	if a.At(0) != 1 {
		t.Fatalf("Values must return a copy")
	}
	a.Clear()
	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("expected empty array, got %v", a.Values())
	}
}

func TestArray_BadItemTypeSurfacesOnPush(t *testing.T) {
	f := mustField(t, so.Field{Type: so.List("bogus")}, "tags")
	a := so.NewArray(nil, f)
	_, err := a.Push("a")
	iss, ok := so.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/tags/0" {
		t.Fatalf("expected item-type failure at /tags/0, got %v", err)
	}
	if a.Len() != 0 {
		t.Fatalf("nothing should be appended")
	}
}

func TestArray_MarshalJSON(t *testing.T) {
	a := so.NewArray(nil, mustField(t, so.List(so.KindString), "tags"))
	a.Push("go", 1)
	b, err := a.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["go","1"]` {
		t.Fatalf("unexpected JSON: %s", b)
	}
}
