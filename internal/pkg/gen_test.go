package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAcceptKey(t *testing.T) {
	// Given: the sample key from RFC 6455 section 1.3
	key := "dGhlIHNhbXBsZSBub25jZQ=="

	// When: the accept key is computed
	accept := GenerateAcceptKey(key)

	// Then: it matches the value the RFC lists
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", accept)
}

func TestGenerateNewSessionID(t *testing.T) {
	first := GenerateNewSessionID()
	second := GenerateNewSessionID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
