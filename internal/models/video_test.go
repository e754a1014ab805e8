package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, Tags{"go", "fiber"}, ParseTags("go,fiber"))
	assert.Equal(t, Tags{"go", "fiber"}, ParseTags(" go , fiber "))
	assert.Equal(t, Tags{"solo"}, ParseTags("solo"))
	assert.Equal(t, Tags{"a", "b"}, ParseTags("a,,b,"))
	assert.Empty(t, ParseTags(""))
	assert.Empty(t, ParseTags("  ,  "))
}

func TestValidVisibility(t *testing.T) {
	assert.True(t, ValidVisibility(VisibilityPublic))
	assert.True(t, ValidVisibility(VisibilityUnlisted))
	assert.True(t, ValidVisibility(VisibilityPrivate))
	assert.False(t, ValidVisibility("secret"))
	assert.False(t, ValidVisibility(""))
}
