package contract

import (
	logging "github.com/inconshreveable/log15"
)

var log logging.Logger = logging.New("module", "contract")

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}
