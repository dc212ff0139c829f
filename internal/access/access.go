// Package access checks what the current session may do.
package access

import (
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/sonar-libras/sonar/pkg/models"
)

var (
	ErrUnauthenticated      = errors.New("no authenticated user")
	ErrWrongAccountCategory = errors.New("account category not allowed")
)

// Require fails unless s is authenticated with one of the allowed categories
func Require(s models.Session, allowed ...models.Category) error {
	if s.Anonymous() {
		return ErrUnauthenticated
	}
	if len(allowed) > 0 && !slice.Contains(allowed, s.Category) {
		return ErrWrongAccountCategory
	}
	return nil
}

// Deny fails if s is anonymous or has one of the denied categories
func Deny(s models.Session, denied ...models.Category) error {
	if s.Anonymous() {
		return ErrUnauthenticated
	}
	if slice.Contains(denied, s.Category) {
		return ErrWrongAccountCategory
	}
	return nil
}
