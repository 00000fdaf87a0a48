package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"ADMIN", "PROFESSOR", "STUDENT"} {
		role, ok := ParseRole(raw)
		assert.True(t, ok)
		assert.Equal(t, Role(raw), role)
	}
	for _, raw := range []string{"", "admin", "COACH", "SUPERUSER"} {
		_, ok := ParseRole(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseFileType(t *testing.T) {
	for _, raw := range []string{"TRAINING", "DIET"} {
		ft, ok := ParseFileType(raw)
		assert.True(t, ok)
		assert.Equal(t, FileType(raw), ft)
	}
	_, ok := ParseFileType("WORKOUT")
	assert.False(t, ok)
}
