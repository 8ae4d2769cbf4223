package common

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/errors"
)

func errorString(err error) string {
	e, ok := err.(*errors.Error)
	if !ok {
		return err.Error()
	}

	if len(e.Data) < 1 {
		return e.Message
	}

	return fmt.Sprintf("%s; %s", e.Message, common.MustMarshalJSON(e.Data))
}

// PrintFlagsError prints the error with the usage of cmd then exits with 1.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints the error then exits with 1.
func PrintError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorString(err))
	}

	os.Exit(1)
}

// ParseAmountFromString parses an amount in ether or token units, like "10"
// or "0.5". Underscores are digit separators and are skipped.
func ParseAmountFromString(input string) (*big.Int, error) {
	return common.ParseEther(strings.Replace(input, "_", "", -1))
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
