// Package ids generates opaque identifiers for request-scoped artifacts.
package ids

import "github.com/google/uuid"

func New() string {
	return uuid.NewString()
}
