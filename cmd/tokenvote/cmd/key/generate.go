package key

import (
	"encoding/hex"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/report"
)

var (
	GenerateCmd *cobra.Command
	DeriveCmd   *cobra.Command

	flagAccounts   int    = 1
	flagEntropy    int    = 128
	flagFormat     string = "default"
	flagPrivateKey bool
)

type (
	account struct {
		Path       string `json:"path,omitempty" yaml:"path,omitempty"`
		Address    string `json:"address" yaml:"address"`
		PrivateKey string `json:"private_key,omitempty" yaml:"private_key,omitempty"`
	}

	keySet struct {
		Mnemonic string    `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
		Accounts []account `json:"accounts" yaml:"accounts"`
	}
)

func defaultEncode(v interface{}, w io.Writer) error {
	t := template.Must(template.New("").Parse(`{{ if .Mnemonic }}   Mnemonic: {{ .Mnemonic }}
{{ end }}{{ range .Accounts }}{{ if .Path }}       Path: {{ .Path }}
{{ end }}    Address: {{ .Address }}
{{ if .PrivateKey }}Private Key: {{ .PrivateKey }}
{{ end }}{{ end }}`))
	return t.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	for _, a := range v.(keySet).Accounts {
		fmt.Fprintf(w, "%s %s\n", a.Address, a.PrivateKey)
	}
	return nil
}

func printKeySet(c *cobra.Command, ks keySet) {
	encoders := map[string]report.Encode{
		"json":       report.DefaultEncodes["json"],
		"prettyjson": report.DefaultEncodes["prettyjson"],
		"yaml":       report.DefaultEncodes["yaml"],
		"default":    defaultEncode,
		"oneline":    onelineEncode,
	}

	encode, ok := encoders[flagFormat]
	if !ok {
		common.PrintFlagsError(c, "--key-format", fmt.Errorf(`"%s" not recognized`, flagFormat))
	}

	if err := encode(ks, os.Stdout); err != nil {
		common.PrintError(err)
	}
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new mnemonic and print its first accounts",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			ks, err := generateKeySet(flagEntropy, flagAccounts)
			if err != nil {
				common.PrintFlagsError(c, "--entropy", err)
			}

			printKeySet(c, ks)
		},
	}

	DeriveCmd = &cobra.Command{
		Use:   "derive",
		Short: "Print the accounts of --mnemonic, or the account of --private-key",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			mnemonic, _ := c.Flags().GetString("mnemonic")
			privateKey, _ := c.Flags().GetString("private-key")

			ks, err := deriveKeySet(mnemonic, privateKey, flagAccounts, flagPrivateKey)
			if err != nil {
				common.PrintError(err)
			}

			printKeySet(c, ks)
		},
	}

	GenerateCmd.Flags().IntVar(&flagEntropy, "entropy", flagEntropy, "entropy bits of the mnemonic, {128, 160, 192, 224, 256}")
	for _, c := range []*cobra.Command{GenerateCmd, DeriveCmd} {
		c.Flags().IntVar(&flagAccounts, "accounts", flagAccounts, "number of accounts")
		c.Flags().StringVar(&flagFormat, "key-format", flagFormat, "format={default, json, oneline, prettyjson, yaml}")
	}
	DeriveCmd.Flags().BoolVar(&flagPrivateKey, "show-private-key", flagPrivateKey, "print the private keys too")
}

func generateKeySet(entropyBits, accounts int) (keySet, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return keySet{}, err
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return keySet{}, err
	}

	ks, err := deriveKeySet(mnemonic, "", accounts, true)
	if err != nil {
		return keySet{}, err
	}
	ks.Mnemonic = mnemonic

	return ks, nil
}

func deriveKeySet(mnemonic, privateKey string, accounts int, withPrivateKey bool) (keySet, error) {
	if accounts < 1 {
		accounts = 1
	}

	var ks keySet
	if len(mnemonic) < 1 {
		id, err := identity.FromPrivateKey(privateKey)
		if err != nil {
			return ks, err
		}
		ks.Accounts = append(ks.Accounts, newAccount("", id, withPrivateKey))

		return ks, nil
	}

	ids, err := identity.Derive(mnemonic, accounts)
	if err != nil {
		return ks, err
	}
	for i, id := range ids {
		ks.Accounts = append(ks.Accounts, newAccount(identity.DerivationPathOf(i), id, withPrivateKey))
	}

	return ks, nil
}

func newAccount(path string, id *identity.Identity, withPrivateKey bool) account {
	a := account{Path: path, Address: id.Address().Hex()}
	if withPrivateKey {
		a.PrivateKey = hex.EncodeToString(crypto.FromECDSA(id.PrivateKey()))
	}

	return a
}
