// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFromAnyNestedDocument(t *testing.T) {
	v, err := FromAny(map[string]any{
		"name":  "widget",
		"count": float64(3),
		"tags":  []any{"a", "b"},
		"meta":  map[string]any{"ready": true, "note": nil},
	})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if v.Kind() != KindMapping {
		t.Fatalf("kind = %v, want mapping", v.Kind())
	}

	m := v.AsMapping()
	if got := m["name"].AsString(); got != "widget" {
		t.Errorf("name = %q, want widget", got)
	}
	if got := m["count"].AsNumber(); got != 3 {
		t.Errorf("count = %v, want 3", got)
	}
	if got := len(m["tags"].AsList()); got != 2 {
		t.Errorf("tags length = %d, want 2", got)
	}
	if m["meta"].AsMapping()["note"].Kind() != KindNull {
		t.Errorf("meta.note should be null")
	}
}

func TestFromAnyYAMLKeyedMaps(t *testing.T) {
	// yaml decoders can produce map[any]any with non-string keys.
	if _, err := FromAny(map[any]any{1: "x"}); err == nil {
		t.Fatal("expected error for non-string map key")
	}
	v, err := FromAny(map[any]any{"k": "x"})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if got := v.AsMapping()["k"].AsString(); got != "x" {
		t.Errorf("k = %q, want x", got)
	}
}

func TestStateFromAnyRejectsNonMapping(t *testing.T) {
	for _, doc := range []any{"scalar", float64(4), []any{"x"}, nil} {
		if _, err := StateFromAny(doc); err == nil {
			t.Errorf("StateFromAny(%v): expected error", doc)
		}
	}
}

func TestValueEqual(t *testing.T) {
	a := Mapping(map[string]Value{
		"list": List(Number(1), String("x")),
		"n":    Null(),
	})
	b := Mapping(map[string]Value{
		"n":    Null(),
		"list": List(Number(1), String("x")),
	})
	if !a.Equal(b) {
		t.Error("equal nested values reported unequal")
	}

	c := Mapping(map[string]Value{
		"list": List(Number(1), String("y")),
		"n":    Null(),
	})
	if a.Equal(c) {
		t.Error("different nested values reported equal")
	}
	if Number(1).Equal(String("1")) {
		t.Error("number and string reported equal")
	}
}

func TestFingerprintIgnoresKeyOrder(t *testing.T) {
	a := State{"x": Number(1), "y": String("s")}
	b := State{"y": String("s"), "x": Number(1)}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprints differ for identical states")
	}

	c := State{"x": Number(2), "y": String("s")}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprints match for different states")
	}
}

func TestDeriveVoidMapID(t *testing.T) {
	current := State{"a": Number(1)}
	goal := State{"a": Number(1), "b": Number(2)}

	id1 := DeriveVoidMapID(current, goal)
	id2 := DeriveVoidMapID(current, goal)
	if id1 != id2 {
		t.Errorf("ids differ for identical inputs: %s vs %s", id1, id2)
	}
	if !strings.HasPrefix(id1, "void_map_") {
		t.Errorf("id %q lacks void_map_ prefix", id1)
	}

	// Direction matters: mapping A->B is not mapping B->A.
	if id1 == DeriveVoidMapID(goal, current) {
		t.Error("swapped states produced the same id")
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	src := `{"name":"widget","count":3,"tags":["a","b"],"meta":{"ready":true}}`
	var v Value
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Value
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if !v.Equal(back) {
		t.Error("value changed across JSON round trip")
	}
}
