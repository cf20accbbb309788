package domain

import "github.com/google/uuid"

// Actor is the authenticated user as supplied by the identity provider
type Actor struct {
	ID   uuid.UUID
	Name string
}
