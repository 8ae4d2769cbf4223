package storage

import (
	"net/url"
	"strings"

	"boscoin.io/tokenvote/lib/errors"
)

const DefaultStorage = "file://./.tokenvote/db"

type Config struct {
	Scheme string
	Path   string
}

// NewConfigFromString parses `file://<path>` or `memory://`.
func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.UnknownStorageScheme.Wrap(err).SetData("storage", s)
	}

	config := &Config{Scheme: strings.ToLower(parsed.Scheme)}
	switch config.Scheme {
	case "memory":
	case "file":
		config.Path = parsed.Host + parsed.Path
		if len(config.Path) < 1 {
			return nil, errors.UnknownStorageScheme.Clone().
				SetData("storage", s).
				SetData("reason", "path is empty")
		}
	default:
		return nil, errors.UnknownStorageScheme.Clone().SetData("storage", s)
	}

	return config, nil
}

func (c *Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}

	return c.Scheme + "://" + c.Path
}
