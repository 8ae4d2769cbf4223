//go:build release

package identity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tokenvote/lib/errors"
)

func TestResolveWithoutKeyInRelease(t *testing.T) {
	require.Empty(t, fallbackPrivateKey)

	_, err := Resolve(Config{})
	require.ErrorIs(t, err, errors.SigningKeyNotConfigured)
}
