package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tokenvote/lib/errors"
)

func TestParseEther(t *testing.T) {
	cases := map[string]string{
		"10":     "10000000000000000000",
		"0.01":   "10000000000000000",
		"1.5":    "1500000000000000000",
		" 2 ":    "2000000000000000000",
		".5":     "500000000000000000",
		"0":      "0",
		"0.0000": "0",
	}

	for input, expected := range cases {
		v, err := ParseEther(input)
		require.NoError(t, err, input)
		require.Equal(t, expected, v.String(), input)
	}
}

func TestParseEtherInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1.2.3", "-1", "1e18", "0.0000000000000000001"} {
		_, err := ParseEther(input)
		require.Error(t, err, input)
		require.ErrorIs(t, err, errors.InvalidAmount, input)
	}
}

func TestFormatUnits(t *testing.T) {
	require.Equal(t, "10.0", FormatEther(MustParseEther("10")))
	require.Equal(t, "0.01", FormatEther(MustParseEther("0.01")))
	require.Equal(t, "0.000000000000000005", FormatEther(big.NewInt(5)))
	require.Equal(t, "0.0", FormatEther(big.NewInt(0)))
	require.Equal(t, "0.0", FormatEther(nil))
	require.Equal(t, "-1.5", FormatEther(new(big.Int).Neg(MustParseEther("1.5"))))
	require.Equal(t, "123.45", FormatUnits(big.NewInt(12345), 2))
	require.Equal(t, "12345", FormatUnits(big.NewInt(12345), 0))
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, input := range []string{"10.0", "0.01", "1234.000000000000000001"} {
		require.Equal(t, input, FormatEther(MustParseEther(input)))
	}
}
