package service

import (
	"testing"

	"program_hub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderValidForEveryType(t *testing.T) {
	factory := NewElementFactory()

	for _, tag := range model.ElementTypes {
		el := factory.Placeholder(tag)

		assert.NotEmpty(t, el.ID, "type %s", tag)
		assert.Equal(t, tag, el.Type)
		assert.NotEmpty(t, el.Title)
		require.NotNil(t, el.Payload, "type %s", tag)
		assert.Equal(t, tag, el.Payload.ElementType())

		// 占位元素必须开箱即合法，作者无需先修复再保存
		assert.NoError(t, el.Validate("weeks[0].learningElements[0]"), "type %s", tag)
	}
}

func TestPlaceholderIDsAreUnique(t *testing.T) {
	factory := NewElementFactory()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		el := factory.Placeholder(model.ElementVideo)
		assert.False(t, seen[el.ID])
		seen[el.ID] = true
	}
}

func TestPlaceholderUnknownTagFallsBack(t *testing.T) {
	factory := NewElementFactory()

	el := factory.Placeholder(model.ElementType("hologram"))
	assert.Equal(t, model.ElementTextContent, el.Type)
	assert.NoError(t, el.Validate("weeks[0].learningElements[0]"))
}
