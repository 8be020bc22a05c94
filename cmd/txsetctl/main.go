package main

import (
	"github.com/kaspanet/gentxset/infrastructure/logger"
	"github.com/kaspanet/gentxset/util/panics"
	"github.com/kaspanet/gentxset/version"
	"github.com/pkg/errors"
)

func main() {
	defer panics.HandlePanic(log, "MAIN", nil)

	subCmd, cfg, subConfig := parseCommandLine()

	err := initLog(cfg)
	if err != nil {
		printErrorAndExit(err)
	}
	log.Debugf("txsetctl version %s on %s", version.Version(), cfg.ActiveNetParams.Name)

	engine, closeDB, err := openEngine(cfg)
	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}

	switch subCmd {
	case buildSubCmd:
		err = build(cfg, engine, subConfig.(*buildConfig))
	case validateSubCmd:
		err = validate(cfg, engine, subConfig.(*validateConfig))
	case feesSubCmd:
		err = fees(cfg, engine, subConfig.(*feesConfig))
	case compareSubCmd:
		err = compare(cfg, engine, subConfig.(*compareConfig))
	case selectSubCmd:
		err = selectBest(cfg, engine, subConfig.(*selectConfig))
	case decodeSubCmd:
		err = decode(engine, subConfig.(*decodeConfig))
	case listSubCmd:
		err = list(cfg, engine, subConfig.(*listConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	closeDB()
	logger.BackendLog.Close()
	if err != nil {
		printErrorAndExit(err)
	}
}
