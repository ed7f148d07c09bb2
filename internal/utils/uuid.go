package utils

import "github.com/google/uuid"

// UUIDGenerator produces the client-generated record identifiers.
// Version 7 keeps IDs roughly time-ordered, which makes the local
// indexes and remote upserts friendlier than fully random v4.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
