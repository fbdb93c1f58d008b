// File: env_test.go
// Title: HeLang Environment Tests
// Description: Tests for declaration, assignment, lookup, in-place updates
//              and snapshots.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial environment tests

package env

import (
	"reflect"
	"testing"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

func TestEnvironment_DeclareStoresCopy(t *testing.T) {
	e := New()
	value := u8.New(1, 2)
	e.Declare("a", value)

	value.Increment()

	got, err := e.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(got.Values(), []int{1, 2}) {
		t.Errorf("Expected [1 2], got %v", got.Values())
	}
}

func TestEnvironment_DeclareNil(t *testing.T) {
	e := New()
	e.Declare("a", nil)

	got, err := e.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Expected empty vector, got %v", got)
	}
}

func TestEnvironment_Undeclared(t *testing.T) {
	e := New()
	e.Declare("a", u8.New(1))

	tests := []struct {
		name string
		call func() error
	}{
		{"assign", func() error { return e.Assign("b", u8.New(2)) }},
		{"lookup", func() error { _, err := e.Lookup("b"); return err }},
		{"increment", func() error { _, err := e.Increment("b"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !heerror.HasCode(err, heerror.CodeCyberName) {
				t.Errorf("Expected CYBER_NAME, got %v", err)
			}
			if e.Has("b") || e.Len() != 1 {
				t.Error("environment was mutated")
			}
		})
	}
}

func TestEnvironment_AssignAndIncrement(t *testing.T) {
	e := New()
	e.Declare("a", u8.New(1, 2))

	if err := e.Assign("a", u8.New(5)); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	if _, err := e.Increment("a"); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}

	got, _ := e.Lookup("a")
	if !reflect.DeepEqual(got.Values(), []int{6}) {
		t.Errorf("Expected [6], got %v", got.Values())
	}
}

func TestEnvironment_LookupSharesStorage(t *testing.T) {
	e := New()
	e.Declare("a", u8.New(1, 2, 3))

	stored, _ := e.Lookup("a")
	if err := stored.Set(u8.New(2), u8.New(9)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, _ := e.Lookup("a")
	if !reflect.DeepEqual(got.Values(), []int{1, 9, 3}) {
		t.Errorf("Expected [1 9 3], got %v", got.Values())
	}
}

func TestEnvironment_SnapshotRestore(t *testing.T) {
	e := New()
	e.Declare("b", u8.New(2))
	e.Declare("a", u8.New(1))
	e.Declare("b", u8.New(3))

	snapshot := e.Snapshot()
	if len(snapshot) != 2 || snapshot[0].Name != "b" || snapshot[1].Name != "a" {
		t.Fatalf("Expected bindings in declaration order, got %v", snapshot)
	}
	if !reflect.DeepEqual(snapshot[0].Value.Values(), []int{3}) {
		t.Errorf("Expected b = [3], got %v", snapshot[0].Value)
	}

	snapshot[1].Value.Increment()
	if got, _ := e.Lookup("a"); !reflect.DeepEqual(got.Values(), []int{1}) {
		t.Errorf("snapshot aliases the environment: %v", got)
	}

	restored := New()
	restored.Declare("x", u8.New(0))
	restored.Restore(e.Snapshot())
	if !reflect.DeepEqual(restored.Names(), []string{"b", "a"}) {
		t.Errorf("Expected names [b a], got %v", restored.Names())
	}
	if restored.Has("x") {
		t.Error("Restore() kept a stale binding")
	}
}

func TestEnvironment_String(t *testing.T) {
	e := New()
	e.Declare("a", u8.New(1, 2))
	e.Declare("b", nil)

	expected := "a: 1 | 2\nb: \n"
	if got := e.String(); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	e.Reset()
	if e.Len() != 0 || e.String() != "" {
		t.Error("Reset() left bindings behind")
	}
}
