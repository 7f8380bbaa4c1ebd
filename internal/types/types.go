// internal/types/types.go
package types

import "strconv"

// EntityID identifies an enemy or a tower for the lifetime of a game.
// Zero is never assigned.
type EntityID uint64

func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
