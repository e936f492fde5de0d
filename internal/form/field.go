package form

type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
)

// Values holds the current input of every field of a form kind.
type Values map[Field]string

func (v Values) Clone() Values {
	clone := make(Values, len(v))
	for field, value := range v {
		clone[field] = value
	}
	return clone
}

// Touched records which fields are eligible to display their error.
type Touched map[Field]bool

func (t Touched) Clone() Touched {
	clone := make(Touched, len(t))
	for field, touched := range t {
		clone[field] = touched
	}
	return clone
}

// Errors maps a field to its validation message, empty means valid.
type Errors map[Field]string

func (e Errors) Clone() Errors {
	clone := make(Errors, len(e))
	for field, msg := range e {
		clone[field] = msg
	}
	return clone
}

// Valid reports whether every message is empty.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Messages returns the non-empty messages keyed by field name, the shape
// templates and JSON responses consume.
func (e Errors) Messages() map[string]string {
	messages := make(map[string]string)
	for field, msg := range e {
		if msg != "" {
			messages[string(field)] = msg
		}
	}
	return messages
}
