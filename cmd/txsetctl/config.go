package main

import (
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/gentxset/infrastructure/config"
	"github.com/pkg/errors"
)

const (
	buildSubCmd    = "build"
	validateSubCmd = "validate"
	feesSubCmd     = "fees"
	compareSubCmd  = "compare"
	selectSubCmd   = "select"
	decodeSubCmd   = "decode"
	listSubCmd     = "list"
)

const (
	defaultAppDirName   = ".txsetctl"
	defaultLogLevel     = "info"
	defaultDatabaseName = "candidates"
	defaultCacheSizeMiB = 16
	logFilename         = "txsetctl.log"
	errLogFilename      = "txsetctl_err.log"
)

type configFlags struct {
	config.NetworkFlags
	commonFlags
}

type commonFlags struct {
	AppDir       string `long:"appdir" short:"b" description:"Directory to store the candidate database in"`
	LogDir       string `long:"logdir" description:"Directory to log output. Logs go only to stdout if not set"`
	LogLevel     string `long:"loglevel" short:"d" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	CacheSizeMiB int    `long:"cachesize" description:"LevelDB cache size in MiB"`
}

// candidateFlags identify candidates either by their hash in the candidate
// store or by a file holding their hex encoding
type candidateFlags struct {
	Hashes   []string `long:"hash" description:"Hash of a stored candidate. May be repeated"`
	HexFiles []string `long:"hex-file" description:"File holding a hex-encoded candidate. May be repeated"`
}

type ledgerFlags struct {
	PreviousLedgerHash string `long:"previous-ledger-hash" short:"p" description:"The ledger the candidates close on top of (hex). Defaults to the network's genesis ledger"`
}

type buildConfig struct {
	Pool        string `long:"pool" short:"f" description:"JSON file listing the pending transactions" required:"true"`
	MaxPoolSize int    `long:"max-pool-size" description:"Maximum number of pending transactions to queue"`
	Timeout     int    `long:"timeout" description:"Stop consuming pending transactions after this many milliseconds. 0 means no timeout"`
	Store       bool   `long:"store" description:"Stage the built candidate in the candidate store"`
	ledgerFlags
}

type validateConfig struct {
	candidateFlags
	ledgerFlags
}

type feesConfig struct {
	candidateFlags
	ledgerFlags
}

type compareConfig struct {
	candidateFlags
	ledgerFlags
}

type selectConfig struct {
	candidateFlags
	ledgerFlags
	AllStored bool `long:"all-stored" description:"Select among every stored candidate that closes on top of the previous ledger"`
}

type decodeConfig struct {
	candidateFlags
}

type listConfig struct {
	ledgerFlags
	All bool `long:"all" description:"List the candidates of every ledger"`
}

func parseCommandLine() (subCommand string, cfg *configFlags, subConfig interface{}) {
	cfg = &configFlags{
		commonFlags: commonFlags{
			AppDir:       defaultAppDir(),
			LogLevel:     defaultLogLevel,
			CacheSizeMiB: defaultCacheSizeMiB,
		},
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	buildConf := &buildConfig{}
	parser.AddCommand(buildSubCmd, "Builds a candidate transaction set",
		"Builds a candidate transaction set out of a JSON file of pending transactions and prints it hex-encoded",
		buildConf)

	validateConf := &validateConfig{}
	parser.AddCommand(validateSubCmd, "Validates candidates",
		"Validates candidates against the ledger they close on top of", validateConf)

	feesConf := &feesConfig{}
	parser.AddCommand(feesSubCmd, "Shows the fees a candidate charges",
		"Shows the effective base fee of every transaction of a candidate, and its total fees", feesConf)

	compareConf := &compareConfig{}
	parser.AddCommand(compareSubCmd, "Compares two candidates",
		"Compares two valid candidates and shows which one is preferred", compareConf)

	selectConf := &selectConfig{}
	parser.AddCommand(selectSubCmd, "Selects the best of several candidates",
		"Validates several candidates and shows the best valid one", selectConf)

	decodeConf := &decodeConfig{}
	parser.AddCommand(decodeSubCmd, "Decodes candidates",
		"Decodes candidates and prints them as JSON", decodeConf)

	listConf := &listConfig{}
	parser.AddCommand(listSubCmd, "Lists stored candidates",
		"Lists the candidates in the candidate store", listConf)

	_, err := parser.Parse()

	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		} else {
			os.Exit(1)
		}
		return "", nil, nil
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		printErrorAndExit(err)
	}

	switch parser.Command.Active.Name {
	case buildSubCmd:
		subConfig = buildConf
	case validateSubCmd:
		subConfig = validateConf
	case feesSubCmd:
		subConfig = feesConf
	case compareSubCmd:
		subConfig = compareConf
	case selectSubCmd:
		subConfig = selectConf
	case decodeSubCmd:
		subConfig = decodeConf
	case listSubCmd:
		subConfig = listConf
	}

	return parser.Command.Active.Name, cfg, subConfig
}

func defaultAppDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultAppDirName
	}
	return filepath.Join(homeDir, defaultAppDirName)
}

func (cfg *configFlags) databasePath() string {
	return filepath.Join(cfg.AppDir, cfg.ActiveNetParams.Name, defaultDatabaseName)
}
