package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(strings.NewReader(input), out), out
}

func TestPrompter_Line(t *testing.T) {
	p, out := newPrompter("  alice  \nlast")

	s, err := p.Line("Имя: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", s)
	assert.Equal(t, "Имя: ", out.String())

	// последняя строка без перевода строки
	s, err = p.Line("")
	require.NoError(t, err)
	assert.Equal(t, "last", s)

	_, err = p.Line("")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPrompter_Required(t *testing.T) {
	p, _ := newPrompter("\n")

	_, err := p.Required("Название: ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestPrompter_SecretConfirm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "match", input: "hunter2\nhunter2\n", want: "hunter2"},
		{name: "mismatch", input: "hunter2\nhunter3\n", wantErr: ErrMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPrompter(tt.input)

			got, err := p.SecretConfirm("Пароль: ", "Повторите пароль: ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_Credentials(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		p, out := newPrompter("Secr3t!\n")

		user, pass, err := p.Credentials("alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "Secr3t!", pass)
		assert.NotContains(t, out.String(), "Имя пользователя")
	})

	t.Run("default user", func(t *testing.T) {
		p, _ := newPrompter("Secr3t!\n")

		user, _, err := p.Credentials("", "bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", user)
	})

	t.Run("asks for username", func(t *testing.T) {
		p, out := newPrompter("carol\nSecr3t!\n")

		user, pass, err := p.Credentials("", "")
		require.NoError(t, err)
		assert.Equal(t, "carol", user)
		assert.Equal(t, "Secr3t!", pass)
		assert.Contains(t, out.String(), "Имя пользователя: ")
	})
}

func TestPrompter_SecretKeepsSpaces(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "spaces around", input: "  pa ss  \n", want: "  pa ss  "},
		{name: "crlf", input: " pass \r\n", want: " pass "},
		{name: "no newline", input: "pass ", want: "pass "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newPrompter(tt.input)

			got, err := p.Secret("Пароль: ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrompter_SecretConfirmKeepsSpaces(t *testing.T) {
	p, _ := newPrompter("pass \npass\n")

	_, err := p.SecretConfirm("Пароль: ", "Повторите пароль: ")
	assert.ErrorIs(t, err, ErrMismatch)
}
