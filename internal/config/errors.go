package config

import (
	"errors"
	"fmt"
)

// ErrLoadConfig and ErrInvalidConfig are the two top-level kinds; the
// others narrow them and still match them with errors.Is.
var (
	ErrLoadConfig    = errors.New("load config failed")
	ErrInvalidConfig = errors.New("invalid config")

	ErrConfigFile = fmt.Errorf("%w: config file", ErrLoadConfig)

	ErrNoListenAddr    = fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	ErrBadCapacity     = fmt.Errorf("%w: queue and worker sizing", ErrInvalidConfig)
	ErrSentenceCap     = fmt.Errorf("%w: max_sentences must not be negative", ErrInvalidConfig)
	ErrUnknownTimezone = fmt.Errorf("%w: unknown timezone", ErrInvalidConfig)
	ErrLogFormat       = fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
)
