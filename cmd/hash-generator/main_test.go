package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, bcrypt.MinCost, []string{"testpassword123", "тест123"}))

	blocks := strings.Split(strings.TrimSpace(out.String()), "\n\n")
	require.Len(t, blocks, 2)
	for i, pw := range []string{"testpassword123", "тест123"} {
		lines := strings.Split(blocks[i], "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "Password: "+pw, lines[0])
		hash := strings.TrimPrefix(lines[1], "Hash: ")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)))
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorContains(t, run(&out, 2, []string{"pw"}), "out of range")
	assert.ErrorContains(t, run(&out, bcrypt.MinCost, nil), "usage")
	assert.Empty(t, out.String())
}
