package core

import "github.com/google/uuid"

// Identifier uniquely names a runtime object such as a scene or a geometry.
type Identifier = uuid.UUID

// InvalidID is the zero identifier; no acquired identifier is ever equal to it.
var InvalidID = uuid.Nil

func IdentifierAcquireNewID() Identifier {
	return uuid.New()
}
