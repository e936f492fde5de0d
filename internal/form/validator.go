package form

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/khanghh/signup/params"
)

var (
	MsgNameRequired            = "Name is required."
	MsgEmailRequired           = "Email is required."
	MsgEmailInvalid            = "Invalid email address."
	MsgPasswordRequired        = "Password is required."
	MsgPasswordTooShort        = "Password must be at least %d characters."
	MsgPasswordTooLong         = "Password must be at most %d bytes."
	MsgConfirmPasswordRequired = "Please confirm your password."
	MsgPasswordMismatch        = "Passwords do not match."
)

// Rule inspects one field against the whole set of values and returns an
// error message, or "" when the field passes.
type Rule func(field Field, values Values) string

type Policy struct {
	PasswordMinLength int
}

// Validator applies the rule table of a form kind to one field at a time.
// It holds no per-form state and is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	rules    map[Kind]map[Field][]Rule
}

func required(msg string) Rule {
	return func(field Field, values Values) string {
		if values[field] == "" {
			return msg
		}
		return ""
	}
}

func minLength(n int) Rule {
	msg := fmt.Sprintf(MsgPasswordTooShort, n)
	return func(field Field, values Values) string {
		if value := values[field]; value != "" && utf8.RuneCountInString(value) < n {
			return msg
		}
		return ""
	}
}

// maxBytes bounds the encoded length, which is what bcrypt limits.
func maxBytes(n int) Rule {
	msg := fmt.Sprintf(MsgPasswordTooLong, n)
	return func(field Field, values Values) string {
		if len(values[field]) > n {
			return msg
		}
		return ""
	}
}

func matches(other Field, msg string) Rule {
	return func(field Field, values Values) string {
		value, otherValue := values[field], values[other]
		if value != "" && otherValue != "" && value != otherValue {
			return msg
		}
		return ""
	}
}

func (v *Validator) emailShape(field Field, values Values) string {
	value := values[field]
	if value == "" {
		return ""
	}
	if err := v.validate.Var(value, "email"); err != nil {
		return MsgEmailInvalid
	}
	return ""
}

// Validate returns the error message of field, or "" when the field is
// valid or has not been touched yet.
func (v *Validator) Validate(field Field, touched Touched, values Values, kind Kind) string {
	if !touched[field] {
		return ""
	}
	for _, rule := range v.rules[kind][field] {
		if msg := rule(field, values); msg != "" {
			return msg
		}
	}
	return ""
}

// ValidateAll runs Validate over every field of kind.
func (v *Validator) ValidateAll(touched Touched, values Values, kind Kind) Errors {
	errs := make(Errors)
	for _, field := range kind.Fields() {
		errs[field] = v.Validate(field, touched, values, kind)
	}
	return errs
}

func NewValidator(policy Policy) *Validator {
	if policy.PasswordMinLength <= 0 {
		policy.PasswordMinLength = params.DefaultPasswordMinLength
	}
	v := &Validator{
		validate: validator.New(),
	}
	v.rules = map[Kind]map[Field][]Rule{
		KindRegister: {
			FieldName:            {required(MsgNameRequired)},
			FieldEmail:           {required(MsgEmailRequired), v.emailShape},
			FieldPassword:        {required(MsgPasswordRequired), minLength(policy.PasswordMinLength), maxBytes(params.MaxPasswordBytes)},
			FieldConfirmPassword: {required(MsgConfirmPasswordRequired), matches(FieldPassword, MsgPasswordMismatch)},
		},
		KindLogin: {
			FieldEmail:    {required(MsgEmailRequired), v.emailShape},
			FieldPassword: {required(MsgPasswordRequired)},
		},
	}
	return v
}
