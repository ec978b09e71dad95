package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIKeyHashRoundTrip(t *testing.T) {
	hash, err := HashAPIKey("neuron-ops-key")
	require.NoError(t, err)
	require.NotEqual(t, "neuron-ops-key", hash)

	require.NoError(t, CheckAPIKey("neuron-ops-key", hash))
	require.ErrorIs(t, CheckAPIKey("wrong-key", hash), ErrInvalidAPIKey)
}

func TestHashAPIKeyRejectsEmpty(t *testing.T) {
	_, err := HashAPIKey("")
	require.Error(t, err)
}
