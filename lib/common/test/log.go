package test

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

// LogHandler discards logs unless TOKENVOTE_LOG_HANDLER=stdout.
func LogHandler() logging.Handler {
	handlers := map[string]func() logging.Handler{
		"null": func() logging.Handler {
			return logging.DiscardHandler()
		},
		"stdout": func() logging.Handler {
			return logging.CallerStackHandler("%+v", logging.StdoutHandler)
		},
	}

	handler := handlers["null"]
	if h, ok := handlers[os.Getenv("TOKENVOTE_LOG_HANDLER")]; ok {
		handler = h
	}

	return handler()
}

func LogLevel() logging.Lvl {
	if lvl, err := logging.LvlFromString(os.Getenv("TOKENVOTE_LOG_LEVEL")); err == nil {
		return lvl
	}

	return logging.LvlDebug
}
