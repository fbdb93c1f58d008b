// File: env.go
// Title: HeLang Variable Environment
// Description: Implements the mapping from variable names to u8 vectors that
//              a program evaluates against. Bindings keep their declaration
//              order so snapshots list them the way the program wrote them.
// Author: lwd-temp
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial environment
// - 2026-10-16 v0.1.0: Snapshot and restore for stored sessions

package env

import (
	"fmt"
	"strings"

	heerror "github.com/lwd-temp/helang/foundation/core/error"
	"github.com/lwd-temp/helang/foundation/helang/u8"
)

// Environment maps variable names to vectors. Declare and Assign store a
// copy of the value; Lookup returns the stored vector itself so that
// element assignment and increment update the variable in place.
//
// An Environment is not safe for concurrent use.
type Environment struct {
	names  []string
	values map[string]*u8.U8
}

// Binding is a name with a copy of its value
type Binding struct {
	Name  string `json:"name" yaml:"name"`
	Value *u8.U8 `json:"value" yaml:"value"`
}

// New creates an empty environment
func New() *Environment {
	return &Environment{values: make(map[string]*u8.U8)}
}

// Declare binds name to a copy of value, replacing any previous binding.
// A nil value declares an empty vector.
func (e *Environment) Declare(name string, value *u8.U8) {
	if _, ok := e.values[name]; !ok {
		e.names = append(e.names, name)
	}
	e.values[name] = copyOf(value)
}

// Assign rebinds an existing name to a copy of value
func (e *Environment) Assign(name string, value *u8.U8) error {
	if _, ok := e.values[name]; !ok {
		return notDefined(name, "env.Assign")
	}
	e.values[name] = copyOf(value)
	return nil
}

// Lookup returns the vector bound to name
func (e *Environment) Lookup(name string) (*u8.U8, error) {
	value, ok := e.values[name]
	if !ok {
		return nil, notDefined(name, "env.Lookup")
	}
	return value, nil
}

// Increment adds one to every element of the named variable in place
func (e *Environment) Increment(name string) (*u8.U8, error) {
	value, ok := e.values[name]
	if !ok {
		return nil, notDefined(name, "env.Increment")
	}
	value.Increment()
	return value, nil
}

// Has reports whether name is declared
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the declared names in declaration order
func (e *Environment) Names() []string {
	return append([]string(nil), e.names...)
}

// Len returns the number of declared variables
func (e *Environment) Len() int {
	return len(e.names)
}

// Snapshot returns copies of all bindings in declaration order
func (e *Environment) Snapshot() []Binding {
	bindings := make([]Binding, len(e.names))
	for i, name := range e.names {
		bindings[i] = Binding{Name: name, Value: e.values[name].Clone()}
	}
	return bindings
}

// Restore replaces the contents of the environment with bindings
func (e *Environment) Restore(bindings []Binding) {
	e.Reset()
	for _, b := range bindings {
		e.Declare(b.Name, b.Value)
	}
}

// Reset removes every binding
func (e *Environment) Reset() {
	e.names = nil
	e.values = make(map[string]*u8.U8)
}

// String lists the bindings one per line as "name: value"
func (e *Environment) String() string {
	var b strings.Builder
	for _, name := range e.names {
		fmt.Fprintf(&b, "%s: %s\n", name, e.values[name])
	}
	return b.String()
}

func copyOf(value *u8.U8) *u8.U8 {
	if value == nil {
		return u8.Empty()
	}
	return value.Clone()
}

func notDefined(name, operation string) error {
	return heerror.Newf(heerror.CodeCyberName, "%s is not defined", name).
		WithOperation(operation).
		WithDetail("name", name)
}
