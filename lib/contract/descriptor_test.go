package contract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/tokenvote/lib/errors"
)

const testArtifact = `{
	"_format": "hh-sol-artifact-1",
	"contractName": "MyToken",
	"abi": [
		{"type":"function","name":"getVotes","stateMutability":"view",
			"inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
	],
	"bytecode": "0x6001600c60003960016000f300",
	"deployedBytecode": "0x00"
}`

func TestBuiltinDescriptors(t *testing.T) {
	token := TokenDescriptor()
	require.Equal(t, TokenName, token.Name)
	require.False(t, token.CanDeploy())
	for _, name := range []string{"mint", "delegate", "getVotes", "getPastVotes", "balanceOf"} {
		_, found := token.ABI.Methods[name]
		require.True(t, found, name)
	}

	ballot := BallotDescriptor()
	require.Equal(t, BallotName, ballot.Name)
	require.Equal(t, 2, len(ballot.ABI.Constructor.Inputs))
	for _, name := range []string{"proposals", "vote"} {
		_, found := ballot.ABI.Methods[name]
		require.True(t, found, name)
	}
}

func TestParseDescriptor(t *testing.T) {
	d, err := ParseDescriptor([]byte(testArtifact))
	require.NoError(t, err)
	require.Equal(t, "MyToken", d.Name)
	require.True(t, d.CanDeploy())
	require.Equal(t, []byte{0x00}, d.DeployedBytecode)

	_, found := d.ABI.Methods["getVotes"]
	require.True(t, found)
}

func TestParseDescriptorInvalid(t *testing.T) {
	cases := []string{
		`not json`,
		`{"contractName":"x"}`,
		`{"contractName":"x","abi":[{"type":"function","name":"f","inputs":[{"type":"nothing"}]}]}`,
		`{"contractName":"x","abi":[],"bytecode":"0xzz"}`,
	}

	for _, c := range cases {
		_, err := ParseDescriptor([]byte(c))
		require.Error(t, err, c)
		require.True(t, errors.InvalidArtifact.Is(err), c)
	}
}

func TestLoadDescriptors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MyToken.json")
	require.NoError(t, os.WriteFile(path, []byte(testArtifact), 0600))

	token, ballot, err := LoadDescriptors(context.Background(), path, "")
	require.NoError(t, err)
	require.True(t, token.CanDeploy())
	require.Equal(t, BallotName, ballot.Name)
	require.False(t, ballot.CanDeploy())

	_, _, err = LoadDescriptors(context.Background(), "", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	require.True(t, errors.InvalidArtifact.Is(err))
}
