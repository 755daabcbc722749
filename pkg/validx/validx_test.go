package validx

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupInput struct {
	Email    string `json:"email" validate:"email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"min=8,max=72"`
}

type patchInput struct {
	Email *string `json:"email" validate:"omitnil,email"`
	Name  *string `json:"name" validate:"omitnil,nonempty"`
}

func messages(t *testing.T, err error) []string {
	t.Helper()
	var verrs *Errors
	require.True(t, errors.As(err, &verrs), "expected *Errors, got %v", err)
	return verrs.Messages
}

func TestDecode(t *testing.T) {
	v := New()

	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "valid",
			body: `{"email":"john@example.com","name":"John","password":"password1"}`,
		},
		{
			name: "every field invalid",
			body: `{"email":"nope","name":"","password":"short"}`,
			want: []string{
				"email must be an email",
				"name should not be empty",
				"password must be longer than or equal to 8 characters",
			},
		},
		{
			name: "empty body",
			body: ``,
			want: []string{
				"email must be an email",
				"name should not be empty",
				"password must be longer than or equal to 8 characters",
			},
		},
		{
			name: "wrong type",
			body: `{"email":"john@example.com","name":"John","password":12345678}`,
			want: []string{"password must be a string"},
		},
		{
			name: "wrong type with other violations",
			body: `{"email":"nope","name":42,"password":"password1"}`,
			want: []string{"name must be a string", "email must be an email"},
		},
		{
			name: "too long",
			body: `{"email":"john@example.com","name":"John","password":"` + strings.Repeat("a", 73) + `"}`,
			want: []string{"password must be shorter than or equal to 72 characters"},
		},
		{
			name: "malformed",
			body: `{"email":`,
			want: []string{"request body must be valid JSON"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in signupInput
			err := v.Decode(strings.NewReader(tt.body), &in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, messages(t, err))
		})
	}
}

func TestDecode_OptionalFields(t *testing.T) {
	v := New()

	var in patchInput
	require.NoError(t, v.Decode(strings.NewReader(`{}`), &in))
	assert.Nil(t, in.Email)

	in = patchInput{}
	err := v.Decode(strings.NewReader(`{"email":"bad","name":""}`), &in)
	assert.Equal(t, []string{"email must be an email", "name should not be empty"}, messages(t, err))

	in = patchInput{}
	require.NoError(t, v.Decode(strings.NewReader(`{"name":"B"}`), &in))
	require.NotNil(t, in.Name)
	assert.Equal(t, "B", *in.Name)
}

func TestErrors_Error(t *testing.T) {
	err := &Errors{Messages: []string{"a", "b"}}
	assert.Equal(t, "a; b", err.Error())
}
