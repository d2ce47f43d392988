package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain line", "a@b.com\n", "a@b.com"},
		{"surrounding spaces trimmed", "  a@b.com  \n", "a@b.com"},
		{"partial line at EOF", "a@b.com", "a@b.com"},
		{"empty line", "\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(bufio.NewReader(strings.NewReader(tt.input)), "Enter email", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Enter email")
		})
	}
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(bufio.NewReader(strings.NewReader("")), "Enter email", &out)
	require.Error(t, err)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte("secret1"), nil }

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", pw)
	assert.Contains(t, out.String(), "Enter password")
	// The password itself never hits the writer.
	assert.NotContains(t, out.String(), "secret1")
}

func TestGetPassword_ReadError(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }

	var out bytes.Buffer
	_, err := GetPassword(&out)
	require.Error(t, err)
}

func TestGetChoice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid option", "campaigner\n", "campaigner"},
		{"empty picks first", "\n", "user"},
		{"retries until valid", "admin\nuser\n", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetChoice(bufio.NewReader(strings.NewReader(tt.input)),
				"Account type", []string{"user", "campaigner"}, &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
