package form

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func registerValues(name, email, password, confirm string) Values {
	return Values{
		FieldName:            name,
		FieldEmail:           email,
		FieldPassword:        password,
		FieldConfirmPassword: confirm,
	}
}

func allTouched(kind Kind) Touched {
	touched := make(Touched)
	for _, field := range kind.Fields() {
		touched[field] = true
	}
	return touched
}

func TestValidateRequiredFields(t *testing.T) {
	v := NewValidator(Policy{})
	values := registerValues("", "", "", "")
	touched := allTouched(KindRegister)

	assert.Equal(t, MsgNameRequired, v.Validate(FieldName, touched, values, KindRegister))
	assert.Equal(t, MsgEmailRequired, v.Validate(FieldEmail, touched, values, KindRegister))
	assert.Equal(t, MsgPasswordRequired, v.Validate(FieldPassword, touched, values, KindRegister))
	assert.Equal(t, MsgConfirmPasswordRequired, v.Validate(FieldConfirmPassword, touched, values, KindRegister))
}

func TestValidateUntouchedFieldIsSilent(t *testing.T) {
	v := NewValidator(Policy{})
	values := registerValues("", "bad-email", "x", "y")

	for _, field := range KindRegister.Fields() {
		assert.Empty(t, v.Validate(field, Touched{}, values, KindRegister), field)
	}
}

func TestValidateEmailShape(t *testing.T) {
	v := NewValidator(Policy{})
	touched := allTouched(KindRegister)

	tests := []struct {
		email string
		want  string
	}{
		{"a@b.com", ""},
		{"ann.lee+tag@example.org", ""},
		{"bad-email", MsgEmailInvalid},
		{"ann@", MsgEmailInvalid},
		{"@example.com", MsgEmailInvalid},
		{"ann lee@example.com", MsgEmailInvalid},
	}
	for _, tt := range tests {
		values := registerValues("Ann", tt.email, "secret1", "secret1")
		assert.Equal(t, tt.want, v.Validate(FieldEmail, touched, values, KindRegister), tt.email)
	}
}

func TestValidatePasswordMinLength(t *testing.T) {
	touched := allTouched(KindRegister)

	v := NewValidator(Policy{})
	assert.Equal(t, fmt.Sprintf(MsgPasswordTooShort, 6),
		v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", "abc", "abc"), KindRegister))
	assert.Empty(t, v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", "abcdef", "abcdef"), KindRegister))

	strict := NewValidator(Policy{PasswordMinLength: 10})
	assert.Equal(t, fmt.Sprintf(MsgPasswordTooShort, 10),
		strict.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", "secret1", "secret1"), KindRegister))

	// length is counted in characters, not bytes
	assert.Equal(t, fmt.Sprintf(MsgPasswordTooShort, 6),
		v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", "ééééé", "ééééé"), KindRegister))
}

func TestValidatePasswordMaxBytes(t *testing.T) {
	v := NewValidator(Policy{})
	touched := allTouched(KindRegister)
	tooLong := fmt.Sprintf(MsgPasswordTooLong, 72)

	fits := strings.Repeat("a", 72)
	assert.Empty(t, v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", fits, fits), KindRegister))

	long := strings.Repeat("a", 80)
	assert.Equal(t, tooLong, v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", long, long), KindRegister))

	// 37 two-byte runes are 74 bytes
	wide := strings.Repeat("é", 37)
	assert.Equal(t, tooLong, v.Validate(FieldPassword, touched, registerValues("Ann", "a@b.com", wide, wide), KindRegister))

	// the limit is not applied to login, where the stored hash decides
	login := Values{FieldEmail: "a@b.com", FieldPassword: long}
	assert.Empty(t, v.Validate(FieldPassword, allTouched(KindLogin), login, KindLogin))
}

func TestValidateConfirmPasswordMismatch(t *testing.T) {
	v := NewValidator(Policy{})
	touched := allTouched(KindRegister)

	pairs := [][2]string{
		{"secret1", "secret2"},
		{"secret1", "Secret1"},
		{"secret1", "secret1 "},
		{"a", "b"},
	}
	for _, pair := range pairs {
		values := registerValues("Ann", "a@b.com", pair[0], pair[1])
		assert.Equal(t, MsgPasswordMismatch, v.Validate(FieldConfirmPassword, touched, values, KindRegister), pair)
	}

	// an empty password is reported on the password field only
	values := registerValues("Ann", "a@b.com", "", "secret1")
	assert.Empty(t, v.Validate(FieldConfirmPassword, touched, values, KindRegister))
	assert.Equal(t, MsgPasswordRequired, v.Validate(FieldPassword, touched, values, KindRegister))
}

func TestValidateIsDeterministic(t *testing.T) {
	v := NewValidator(Policy{})
	touched := allTouched(KindRegister)
	values := registerValues("", "bad-email", "abc", "abd")
	before := values.Clone()

	for _, field := range KindRegister.Fields() {
		first := v.Validate(field, touched, values, KindRegister)
		second := v.Validate(field, touched, values, KindRegister)
		assert.Equal(t, first, second, field)
	}
	assert.Equal(t, before, values)
}

func TestValidateLoginKind(t *testing.T) {
	v := NewValidator(Policy{PasswordMinLength: 8})
	touched := allTouched(KindLogin)

	values := Values{FieldEmail: "a@b.com", FieldPassword: "abc"}
	errs := v.ValidateAll(touched, values, KindLogin)
	assert.True(t, errs.Valid())
	assert.Len(t, errs, 2)

	errs = v.ValidateAll(touched, Values{FieldEmail: "nope", FieldPassword: ""}, KindLogin)
	assert.Equal(t, MsgEmailInvalid, errs[FieldEmail])
	assert.Equal(t, MsgPasswordRequired, errs[FieldPassword])
	assert.NotContains(t, errs, FieldName)
}

func TestErrorsMessages(t *testing.T) {
	errs := Errors{FieldName: MsgNameRequired, FieldEmail: ""}
	assert.False(t, errs.Valid())
	assert.Equal(t, map[string]string{"name": MsgNameRequired}, errs.Messages())
	assert.True(t, Errors{}.Valid())
}
