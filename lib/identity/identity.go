package identity

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	logging "github.com/inconshreveable/log15"
	"github.com/tyler-smith/go-bip39"

	"boscoin.io/tokenvote/lib/errors"
)

var log logging.Logger = logging.New("module", "identity")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

type Source string

const (
	SourceMnemonic   Source = "mnemonic"
	SourcePrivateKey Source = "private-key"
	SourceFallback   Source = "fallback"
)

// Identity is an address with the key to sign for it. It is never mutated
// after resolution.
type Identity struct {
	key     *ecdsa.PrivateKey
	address ethcommon.Address
	source  Source
}

func (i *Identity) Address() ethcommon.Address {
	return i.address
}

func (i *Identity) PrivateKey() *ecdsa.PrivateKey {
	return i.key
}

func (i *Identity) Source() Source {
	return i.source
}

// IsFallback is true when the identity uses the publicly known key.
func (i *Identity) IsFallback() bool {
	return i.source == SourceFallback
}

// Transactor returns EIP-155 signing options for the chain.
func (i *Identity) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(i.key, chainID)
}

func (i *Identity) String() string {
	return fmt.Sprintf("%s(%s)", i.address.Hex(), i.source)
}

type Config struct {
	Mnemonic       string
	PrivateKey     string
	DerivationPath string
}

// Resolve picks the signing identity: a mnemonic wins over a raw private key,
// and the fallback key is used only when neither is configured.
func Resolve(config Config) (*Identity, error) {
	if len(strings.TrimSpace(config.Mnemonic)) > 0 {
		path := config.DerivationPath
		if len(path) < 1 {
			path = DerivationPathOf(0)
		}
		return FromMnemonic(config.Mnemonic, path)
	}

	if len(strings.TrimSpace(config.PrivateKey)) > 0 {
		return FromPrivateKey(config.PrivateKey)
	}

	if len(fallbackPrivateKey) < 1 {
		return nil, errors.SigningKeyNotConfigured
	}

	id, err := FromPrivateKey(fallbackPrivateKey)
	if err != nil {
		return nil, err
	}
	id.source = SourceFallback

	log.Warn(
		"neither mnemonic nor private key is configured, using the publicly known key; use it only on disposable test networks",
		"address", id.Address().Hex(),
	)

	return id, nil
}

func FromPrivateKey(s string) (*Identity, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, errors.InvalidPrivateKey.Wrap(err)
	}

	return newIdentity(key, SourcePrivateKey), nil
}

// FromMnemonic derives the key at the BIP-32 `path` of a BIP-39 mnemonic.
// The mnemonic checksum is verified.
func FromMnemonic(mnemonic, path string) (*Identity, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errors.InvalidMnemonic.Wrap(err)
	}

	derivationPath, err := accounts.ParseDerivationPath(path)
	if err != nil {
		return nil, errors.InvalidDerivationPath.Wrap(err).SetData("path", path)
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errors.InvalidMnemonic.Wrap(err)
	}

	for _, n := range derivationPath {
		if key, err = key.Derive(n); err != nil {
			return nil, errors.InvalidDerivationPath.Wrap(err).SetData("path", path)
		}
	}

	ecKey, err := key.ECPrivKey()
	if err != nil {
		return nil, errors.InvalidPrivateKey.Wrap(err)
	}

	privateKey, err := crypto.ToECDSA(ecKey.Serialize())
	if err != nil {
		return nil, errors.InvalidPrivateKey.Wrap(err)
	}

	return newIdentity(privateKey, SourceMnemonic), nil
}

// DerivationPathOf is the default ethereum path of the account `index`,
// "m/44'/60'/0'/0/<index>".
func DerivationPathOf(index int) string {
	path := make(accounts.DerivationPath, len(accounts.DefaultRootDerivationPath))
	copy(path, accounts.DefaultRootDerivationPath)

	return append(path, uint32(index)).String()
}

// Derive returns the first `n` accounts of a mnemonic, like the accounts a
// development node exposes for it.
func Derive(mnemonic string, n int) ([]*Identity, error) {
	var ids []*Identity
	for i := 0; i < n; i++ {
		id, err := FromMnemonic(mnemonic, DerivationPathOf(i))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func newIdentity(key *ecdsa.PrivateKey, source Source) *Identity {
	return &Identity{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		source:  source,
	}
}
