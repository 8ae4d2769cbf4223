package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/network"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/storage"
)

var (
	historyCmd *cobra.Command

	flagHistoryLimit uint64 = 10
	flagHistoryAll   bool
)

type historyEntry struct {
	storage.Deployment `yaml:",inline"`
	Transactions       []storage.TxRecord `json:"transactions,omitempty" yaml:"transactions,omitempty"`
}

func init() {
	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List the recorded deployments and their transactions",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			parseFlagsCommon(c)

			networkName := ""
			if !flagHistoryAll {
				var err error
				if networkName, _, err = network.ResolveEndpoint(flagNetwork); err != nil {
					cmdcommon.PrintFlagsError(c, "--network", err)
				}
			}

			config, err := storage.NewConfigFromString(flagStorage)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "--storage", err)
			}
			st, err := storage.NewLevelDBBackend(config)
			if err != nil {
				cmdcommon.PrintError(err)
			}
			defer st.Close()

			entries, err := history(st, networkName, flagHistoryLimit)
			if err != nil {
				cmdcommon.PrintError(err)
			}

			if err := printHistory(os.Stdout, flagFormat, entries); err != nil {
				cmdcommon.PrintFlagsError(c, "--format", err)
			}
		},
	}

	historyCmd.Flags().Uint64Var(&flagHistoryLimit, "limit", flagHistoryLimit, "number of deployments, 0 lists all")
	historyCmd.Flags().BoolVar(&flagHistoryAll, "all", flagHistoryAll, "list the deployments of every network")

	rootCmd.AddCommand(historyCmd)
}

func history(st *storage.LevelDBBackend, networkName string, limit uint64) ([]historyEntry, error) {
	ds, err := storage.Deployments(st, networkName, limit)
	if err != nil {
		return nil, err
	}

	var entries []historyEntry
	for _, d := range ds {
		txs, err := storage.Transactions(st, d.RunID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, historyEntry{Deployment: d, Transactions: txs})
	}

	return entries, nil
}

func printHistory(w io.Writer, format string, entries []historyEntry) error {
	if format != "text" {
		encode, found := report.DefaultEncodes[format]
		if !found {
			return fmt.Errorf(`"%s" not recognized`, format)
		}
		return encode(entries, w)
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s %s chain=%s token=%s ballot=%s block=%d run=%s\n",
			e.Created, e.Network, e.ChainID, e.Token, e.Ballot, e.Block, e.RunID)
		for _, tx := range e.Transactions {
			fmt.Fprintf(w, "    %-8s %s from %s block=%d %s\n", tx.Phase, tx.Hash, tx.Signer, tx.Block, tx.Status)
		}
	}

	return nil
}
