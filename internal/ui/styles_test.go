package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	assert.Contains(t, Mark(true), CheckMark)
	assert.Contains(t, Mark(false), CrossMark)
}
