// Package options provides shared utilities for functional option validation.
package options

import (
	"github.com/erraggy/raml2obj/ramlerrors"
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// noSourceMsg is the message when no source is specified and multiSourceMsg
// the message when several are.
// The returned error is a *ramlerrors.ConfigError for the "source" option.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	switch {
	case sourceCount == 0:
		return &ramlerrors.ConfigError{Option: "source", Message: noSourceMsg}
	case sourceCount > 1:
		return &ramlerrors.ConfigError{Option: "source", Value: sourceCount, Message: multiSourceMsg}
	}
	return nil
}
