package typeid

import (
	"strings"
	"testing"
)

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if !strings.HasPrefix(id, PrefixRun+"_") {
		t.Fatalf("unexpected id %q", id)
	}
	if err := Validate(id, PrefixRun); err != nil {
		t.Fatal(err)
	}
	if NewRunID() == id {
		t.Fatal("ids should be unique")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(New("cut"), PrefixRun); err == nil {
		t.Fatal("expected prefix mismatch")
	}
	if err := Validate("not an id", PrefixRun); err == nil {
		t.Fatal("expected parse error")
	}
}
