package domain

import "time"

// Coach is the signed-in owner of a persona. Identity is provided by the
// auth layer; the core only needs a stable ID to scope personas by.
type Coach struct {
	ID        string
	Email     string
	CreatedAt time.Time
}
