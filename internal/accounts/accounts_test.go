package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyToken(t *testing.T) {
	hashed, err := HashToken("kick-off")
	require.NoError(t, err)

	assert.NotEqual(t, "kick-off", hashed)
	assert.True(t, VerifyToken(hashed, "kick-off"))
	assert.False(t, VerifyToken(hashed, "offside"))
	assert.False(t, VerifyToken("not-a-hash", "kick-off"))
}
