package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedPublicIDIsNotFound(t *testing.T) {
	s := New(nil)

	_, err := s.GetStrategy(context.Background(), 1, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteStrategy(context.Background(), 1, "42"), ErrNotFound)
}
