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
	in := bufio.NewReader(strings.NewReader("gaming laptop\n"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "Search?", &out)

	require.NoError(t, err)
	assert.Equal(t, "gaming laptop", got)
	assert.Contains(t, out.String(), "Search?\n> ")
}

func TestGetSimpleText_EOFReturnsPartialLine(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer

	got, err := GetSimpleText(in, "Name?", &out)

	require.NoError(t, err)
	assert.Equal(t, "lastline", got)
}

func TestGetWithDefault_EmptyAnswerKeepsCurrent(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\n"))
	var out bytes.Buffer

	got, changed, err := GetWithDefault(in, "Name", "Laptop", &out)

	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "Laptop", got)
	assert.Contains(t, out.String(), "Name [Laptop]")
}

func TestGetWithDefault_AnswerOverridesCurrent(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("Ultrabook\n"))
	var out bytes.Buffer

	got, changed, err := GetWithDefault(in, "Name", "Laptop", &out)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Ultrabook", got)
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}

	var out bytes.Buffer
	_, err := GetPassword(&out)

	require.Error(t, err)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("secret"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), pw)
	assert.Contains(t, out.String(), "Enter password: ")
}
