package radio

import "errors"

// ErrClosed is returned by operations on a link that is not open
var ErrClosed = errors.New("radio link closed")

// ConfigError is returned for invalid link configuration
type ConfigError struct {
	msg string
}

func NewConfigError(msg string) *ConfigError {
	return &ConfigError{msg}
}

func (e *ConfigError) Error() string {
	return e.msg
}
