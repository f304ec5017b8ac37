// Package apperror holds the failure kinds surfaced by usecases.
//
// Every usecase error that callers may react to wraps one of the sentinels
// below, so handlers can branch with errors.Is and still show the message.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced user, room or request id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAuthentication: credentials did not match.
	ErrAuthentication = errors.New("authentication failed")
	// ErrDomainRule: the operation breaks a business rule.
	ErrDomainRule = errors.New("domain rule violated")
)

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Authentication(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAuthentication, fmt.Sprintf(format, args...))
}

func DomainRule(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomainRule, fmt.Sprintf(format, args...))
}
