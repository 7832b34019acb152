package core

import "testing"

func TestOptStates(t *testing.T) {
	var unset Opt[string]
	if unset.IsSet() || unset.IsNull() {
		t.Fatal("zero value must be unset")
	}
	if _, ok := unset.Get(); ok {
		t.Fatal("Get on unset must report false")
	}

	null := Null[string]()
	if !null.IsSet() || !null.IsNull() {
		t.Fatal("Null must be set and null")
	}
	if _, ok := null.Get(); ok {
		t.Fatal("Get on null must report false")
	}
	if null.Arg() != nil {
		t.Fatalf("null Arg must be nil, got %v", null.Arg())
	}

	set := Set("hello")
	if !set.IsSet() || set.IsNull() {
		t.Fatal("Set must be set and not null")
	}
	v, ok := set.Get()
	if !ok || v != "hello" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if set.Arg() != "hello" {
		t.Fatalf("Arg must carry the value, got %v", set.Arg())
	}
}
