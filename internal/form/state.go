package form

import (
	"encoding/gob"
)

// State holds the values, touched flags and error messages of one form
// instance. It is not safe for concurrent use; a form instance is driven
// by one user at a time.
type State struct {
	kind    Kind
	values  Values
	touched Touched
	errors  Errors
}

// Snapshot is the serializable form of a State, kept in the user session
// between requests.
type Snapshot struct {
	Kind    Kind
	Values  Values
	Touched Touched
	Errors  Errors
}

func init() {
	gob.Register(Snapshot{})
}

// NewState creates an empty form of kind. With touchOnMount every field
// starts touched, so errors are eligible for display before any blur.
func NewState(kind Kind, touchOnMount bool) *State {
	s := &State{
		kind:    kind,
		values:  make(Values),
		touched: make(Touched),
		errors:  make(Errors),
	}
	for _, field := range kind.Fields() {
		s.values[field] = ""
	}
	if touchOnMount {
		s.TouchAll()
	}
	return s
}

func (s *State) Kind() Kind {
	return s.kind
}

func (s *State) Value(field Field) string {
	return s.values[field]
}

func (s *State) Values() Values {
	return s.values.Clone()
}

func (s *State) IsTouched(field Field) bool {
	return s.touched[field]
}

func (s *State) Touched() Touched {
	return s.touched.Clone()
}

func (s *State) Error(field Field) string {
	return s.errors[field]
}

func (s *State) Errors() Errors {
	return s.errors.Clone()
}

// SetField overwrites the value of field. Fields outside the form kind are
// ignored so the value set never grows extra keys.
func (s *State) SetField(field Field, value string) {
	if !s.kind.Has(field) {
		return
	}
	s.values[field] = value
}

func (s *State) Touch(field Field) {
	if !s.kind.Has(field) {
		return
	}
	s.touched[field] = true
}

func (s *State) TouchAll() {
	for _, field := range s.kind.Fields() {
		s.touched[field] = true
	}
}

// Blur marks field touched and recomputes its error only.
func (s *State) Blur(field Field, v *Validator) string {
	if !s.kind.Has(field) {
		return ""
	}
	s.Touch(field)
	msg := v.Validate(field, s.touched, s.values, s.kind)
	s.errors[field] = msg
	return msg
}

func (s *State) setErrors(errs Errors) {
	s.errors = errs.Clone()
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Kind:    s.kind,
		Values:  s.values.Clone(),
		Touched: s.touched.Clone(),
		Errors:  s.errors.Clone(),
	}
}

// Restore rebuilds a State from snap. Keys that do not belong to the kind
// are dropped and missing values default to "".
func Restore(snap Snapshot) (*State, error) {
	if _, err := ParseKind(string(snap.Kind)); err != nil {
		return nil, err
	}
	s := NewState(snap.Kind, false)
	for field, value := range snap.Values {
		s.SetField(field, value)
	}
	for field, touched := range snap.Touched {
		if touched {
			s.Touch(field)
		}
	}
	for field, msg := range snap.Errors {
		if s.kind.Has(field) {
			s.errors[field] = msg
		}
	}
	return s, nil
}
