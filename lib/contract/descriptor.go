package contract

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/sync/errgroup"

	"boscoin.io/tokenvote/lib/errors"
)

const (
	TokenName  = "MyToken"
	BallotName = "CustomBallot"
)

// Descriptor is the compiled interface of a contract. Bytecode is only
// needed to deploy; attaching works with the ABI alone.
type Descriptor struct {
	Name             string
	ABI              abi.ABI
	Bytecode         []byte
	DeployedBytecode []byte
}

func (d *Descriptor) CanDeploy() bool {
	return len(d.Bytecode) > 0
}

// artifact is the json file the solidity build writes per contract.
type artifact struct {
	ContractName     string          `json:"contractName"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         string          `json:"bytecode"`
	DeployedBytecode string          `json:"deployedBytecode"`
}

func NewDescriptor(name, abiJSON string, bytecode []byte) (*Descriptor, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, errors.InvalidArtifact.Wrap(err).SetData("name", name)
	}

	return &Descriptor{Name: name, ABI: parsed, Bytecode: bytecode}, nil
}

func mustDescriptor(name, abiJSON string) *Descriptor {
	d, err := NewDescriptor(name, abiJSON, nil)
	if err != nil {
		panic(err)
	}

	return d
}

// TokenDescriptor is the token method surface without bytecode.
func TokenDescriptor() *Descriptor {
	return mustDescriptor(TokenName, TokenABI)
}

// BallotDescriptor is the ballot method surface without bytecode.
func BallotDescriptor() *Descriptor {
	return mustDescriptor(BallotName, BallotABI)
}

func ParseDescriptor(b []byte) (*Descriptor, error) {
	var a artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, errors.InvalidArtifact.Wrap(err)
	}
	if len(a.ABI) < 1 {
		return nil, errors.InvalidArtifact.Clone().SetData("reason", "abi is missing")
	}

	d, err := NewDescriptor(a.ContractName, string(a.ABI), nil)
	if err != nil {
		return nil, err
	}

	if d.Bytecode, err = decodeBytecode(a.Bytecode); err != nil {
		return nil, errors.InvalidArtifact.Wrap(err).SetData("field", "bytecode")
	}
	if d.DeployedBytecode, err = decodeBytecode(a.DeployedBytecode); err != nil {
		return nil, errors.InvalidArtifact.Wrap(err).SetData("field", "deployedBytecode")
	}

	return d, nil
}

func LoadDescriptor(path string) (*Descriptor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidArtifact.Wrap(err).SetData("path", path)
	}

	d, err := ParseDescriptor(b)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			e.SetData("path", path)
		}
		return nil, err
	}

	log.Debug("loaded artifact", "path", path, "name", d.Name, "deployable", d.CanDeploy())

	return d, nil
}

// LoadDescriptors loads the token and ballot artifacts at the same time. An
// empty path gives the built-in descriptor.
func LoadDescriptors(ctx context.Context, tokenPath, ballotPath string) (token, ballot *Descriptor, err error) {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		if len(tokenPath) < 1 {
			token = TokenDescriptor()
			return
		}
		token, err = LoadDescriptor(tokenPath)
		return
	})
	g.Go(func() (err error) {
		if len(ballotPath) < 1 {
			ballot = BallotDescriptor()
			return
		}
		ballot, err = LoadDescriptor(ballotPath)
		return
	})

	if err = g.Wait(); err != nil {
		return nil, nil, err
	}

	return
}

func decodeBytecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}

	return hexutil.Decode(s)
}
