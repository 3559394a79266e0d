package utils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dojoengine/worldscan/core/felt"
)

func HexToFelt(t testing.TB, hex string) *felt.Felt {
	t.Helper()

	f, err := new(felt.Felt).SetString(hex)
	require.NoError(t, err)
	return f
}
