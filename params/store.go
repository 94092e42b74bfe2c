// Package params holds the named inputs of the ocean shaders.
//
// A Store is owned by the render thread. Nothing in it is synchronised: the tweak
// panel and other asynchronous sources must queue their changes and let the render
// loop apply them between frames.
package params

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownParameter   = errors.New("unknown parameter")
	ErrKindMismatch       = errors.New("parameter kind mismatch")
	ErrDuplicateParameter = errors.New("duplicate parameter")
)

// Definition declares a parameter. Range is nil for unbounded parameters.
type Definition struct {
	Name    string
	Label   string
	Uniform string
	Kind    Kind
	Default Value
	Range   *Range
}

type parameter struct {
	def       Definition
	value     Value
	observers []func(Value)
}

// Store is the set of shader parameters with their current values.
type Store struct {
	params []*parameter
	byName map[string]*parameter
}

func NewStore(defs ...Definition) (*Store, error) {
	s := &Store{
		params: make([]*parameter, 0, len(defs)),
		byName: make(map[string]*parameter, len(defs)),
	}
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("parameter definition without a name")
		}
		if _, exists := s.byName[def.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParameter, def.Name)
		}
		if def.Default.Kind() != def.Kind {
			return nil, fmt.Errorf("%w: %s default is %s, declared %s", ErrKindMismatch, def.Name, def.Default.Kind(), def.Kind)
		}
		p := &parameter{def: def, value: constrain(def, def.Default)}
		s.params = append(s.params, p)
		s.byName[def.Name] = p
	}
	return s, nil
}

func (s *Store) lookup(name string) (*parameter, error) {
	p, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
	}
	return p, nil
}

func constrain(def Definition, v Value) Value {
	if v.Kind() == KindColor {
		return Color(v.Color().Clamped())
	}
	if def.Range != nil {
		return def.Range.Clamp(v)
	}
	return v
}

// Set stores value under name, clamped to the declared range, and returns what was
// stored. Observers run synchronously when the stored value changed.
func (s *Store) Set(name string, value Value) (Value, error) {
	p, err := s.lookup(name)
	if err != nil {
		return Value{}, err
	}
	if value.Kind() != p.def.Kind {
		return Value{}, fmt.Errorf("%w: %s expects %s, got %s", ErrKindMismatch, name, p.def.Kind, value.Kind())
	}
	value = constrain(p.def, value)
	if value.Equal(p.value) {
		return value, nil
	}
	p.value = value
	for _, fn := range p.observers {
		fn(value)
	}
	return value, nil
}

func (s *Store) Get(name string) (Value, error) {
	p, err := s.lookup(name)
	if err != nil {
		return Value{}, err
	}
	return p.value, nil
}

// OnChange registers fn to be called with every new value of name.
func (s *Store) OnChange(name string, fn func(Value)) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	p.observers = append(p.observers, fn)
	return nil
}

// Definitions returns every definition in registration order.
func (s *Store) Definitions() []Definition {
	defs := make([]Definition, len(s.params))
	for i, p := range s.params {
		defs[i] = p.def
	}
	return defs
}

func (s *Store) Snapshot() map[string]Value {
	snap := make(map[string]Value, len(s.params))
	for _, p := range s.params {
		snap[p.def.Name] = p.value
	}
	return snap
}

// Reset restores the default value of name.
func (s *Store) Reset(name string) error {
	p, err := s.lookup(name)
	if err != nil {
		return err
	}
	_, err = s.Set(name, p.def.Default)
	return err
}

func (s *Store) ResetAll() {
	for _, p := range s.params {
		// names come from the store itself
		_, _ = s.Set(p.def.Name, p.def.Default)
	}
}
