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
	in := bufio.NewReader(strings.NewReader("  kurt \n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "kurt", got)
	assert.Equal(t, "Username\n> ", out.String())
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Name?", &out)
	assert.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("hunter22"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter22"), pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword(&out)
	assert.Error(t, err)
}

func TestValueOrPrompt(t *testing.T) {
	var out bytes.Buffer
	a := &App{reader: bufio.NewReader(strings.NewReader("Slayer\n")), out: &out}

	v, err := a.valueOrPrompt("given", "Subject")
	require.NoError(t, err)
	assert.Equal(t, "given", v)
	assert.Empty(t, out.String())

	v, err = a.valueOrPrompt("", "Subject")
	require.NoError(t, err)
	assert.Equal(t, "Slayer", v)
}
