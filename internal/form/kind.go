package form

import "fmt"

// Kind selects the set of fields and the rule table of a form.
type Kind string

const (
	KindRegister Kind = "register"
	KindLogin    Kind = "login"
)

var kindFields = map[Kind][]Field{
	KindRegister: {FieldName, FieldEmail, FieldPassword, FieldConfirmPassword},
	KindLogin:    {FieldEmail, FieldPassword},
}

func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if _, ok := kindFields[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return kind, nil
}

// Fields returns the fields of the kind in display order.
func (k Kind) Fields() []Field {
	fields := kindFields[k]
	return append([]Field(nil), fields...)
}

func (k Kind) Has(field Field) bool {
	for _, f := range kindFields[k] {
		if f == field {
			return true
		}
	}
	return false
}

// ParseField resolves a raw field name posted by the browser.
func (k Kind) ParseField(name string) (Field, error) {
	field := Field(name)
	if !k.Has(field) {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return field, nil
}
