package cmd

import (
	"fmt"
	"os"
	"strings"

	logging "github.com/inconshreveable/log15"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/tokenvote/cmd/tokenvote/common"
	"boscoin.io/tokenvote/lib/common"
	"boscoin.io/tokenvote/lib/contract"
	"boscoin.io/tokenvote/lib/identity"
	"boscoin.io/tokenvote/lib/network"
	"boscoin.io/tokenvote/lib/report"
	"boscoin.io/tokenvote/lib/sequencer"
	"boscoin.io/tokenvote/lib/storage"
)

const defaultLogLevel logging.Lvl = logging.LvlInfo

var (
	flagMnemonic       string = common.GetENVValues("", "TOKENVOTE_MNEMONIC", "MNEMONIC")
	flagPrivateKey     string = common.GetENVValues("", "TOKENVOTE_PRIVATE_KEY", "PRIVATE_KEY")
	flagDerivationPath string = common.GetENVValue("TOKENVOTE_DERIVATION_PATH", "")
	flagNetwork        string = common.GetENVValue("TOKENVOTE_NETWORK", network.DefaultNetwork)
	flagRPCTimeout     string = common.GetENVValue("TOKENVOTE_RPC_TIMEOUT", "30s")
	flagLogLevel       string = common.GetENVValue("TOKENVOTE_LOG_LEVEL", defaultLogLevel.String())
	flagLogOutput      string = common.GetENVValue("TOKENVOTE_LOG_OUTPUT", "")
	flagStorage        string = common.GetENVValue("TOKENVOTE_STORAGE", storage.DefaultStorage)
	flagMetricsPush    string = common.GetENVValue("TOKENVOTE_METRICS_PUSH", "")
	flagFormat         string = common.GetENVValue("TOKENVOTE_FORMAT", "text")
)

var (
	logLevel logging.Lvl
	log      logging.Logger = logging.New("module", "main")
)

func addGlobalFlags(c *cobra.Command) {
	flags := c.PersistentFlags()

	flags.StringVar(&flagMnemonic, "mnemonic", flagMnemonic, "BIP-39 mnemonic of the signing account ($TOKENVOTE_MNEMONIC, $MNEMONIC)")
	flags.StringVar(&flagPrivateKey, "private-key", flagPrivateKey, "hex private key of the signing account ($TOKENVOTE_PRIVATE_KEY, $PRIVATE_KEY)")
	flags.StringVar(&flagDerivationPath, "derivation-path", flagDerivationPath, "derivation path of the signing account, default m/44'/60'/0'/0/0")
	flags.StringVar(&flagNetwork, "network", flagNetwork, fmt.Sprintf("network name {%s} or rpc endpoint", strings.Join(network.KnownNetworkNames(), ", ")))
	flags.StringVar(&flagRPCTimeout, "rpc-timeout", flagRPCTimeout, "timeout of each http rpc request; 0 means no limit")
	flags.StringVar(&flagLogLevel, "log-level", flagLogLevel, "log level, {crit, error, warn, info, debug}")
	flags.StringVar(&flagLogOutput, "log-output", flagLogOutput, "set log output file")
	flags.StringVar(&flagStorage, "storage", flagStorage, "journal storage uri, {file://<path>, memory://}")
	flags.StringVar(&flagMetricsPush, "metrics-push", flagMetricsPush, "push metrics to this Pushgateway url at exit")
	flags.StringVar(&flagFormat, "format", flagFormat, "output format, {text, json, prettyjson, yaml}")
}

// parseFlagsCommon sets up logging; every command calls it first.
func parseFlagsCommon(c *cobra.Command) {
	var err error

	if logLevel, err = logging.LvlFromString(flagLogLevel); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-level", err)
	}

	var logHandler logging.Handler
	if logHandler, err = common.NewLogHandler(flagLogOutput); err != nil {
		cmdcommon.PrintFlagsError(c, "--log-output", err)
	}

	log.SetHandler(logging.LvlFilterHandler(logLevel, logHandler))
	identity.SetLogging(logLevel, logHandler)
	network.SetLogging(logLevel, logHandler)
	contract.SetLogging(logLevel, logHandler)
	sequencer.SetLogging(logLevel, logHandler)
	storage.SetLogging(logLevel, logHandler)

	log.Debug(
		"parsed flags:",
		"\n\tnetwork", flagNetwork,
		"\n\trpc-timeout", flagRPCTimeout,
		"\n\tlog-level", flagLogLevel,
		"\n\tlog-output", flagLogOutput,
		"\n\tstorage", flagStorage,
		"\n\tmetrics-push", flagMetricsPush,
		"\n\tformat", flagFormat,
		"\n\tmnemonic", len(flagMnemonic) > 0,
		"\n\tprivate-key", len(flagPrivateKey) > 0,
	)
}

func newReporter(format string) (report.Reporter, error) {
	if format == "text" {
		return report.NewTextReporter(os.Stdout), nil
	}

	encode, found := report.DefaultEncodes[format]
	if !found {
		return nil, fmt.Errorf(`"%s" not recognized`, format)
	}

	return report.NewEncodeReporter(os.Stdout, encode), nil
}
