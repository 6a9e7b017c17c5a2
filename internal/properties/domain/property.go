// Package domain holds the property listing vocabulary.
package domain

import (
	"fmt"

	"imogest_backend/platform/apperr"
)

// Status is the availability of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusSold      Status = "sold"
	StatusWithdrawn Status = "withdrawn"
)

// AllStatuses lists every valid listing status.
var AllStatuses = []Status{StatusAvailable, StatusReserved, StatusSold, StatusWithdrawn}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	for _, valid := range AllStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", apperr.Validation(fmt.Sprintf("invalid property status %q", raw))
}

func (s Status) String() string { return string(s) }

// Type is the kind of property being listed.
type Type string

const (
	TypeApartment Type = "apartment"
	TypeHouse     Type = "house"
	TypeLand      Type = "land"
	TypeOffice    Type = "office"
	TypeStore     Type = "store"
)

// AllTypes lists every valid property type.
var AllTypes = []Type{TypeApartment, TypeHouse, TypeLand, TypeOffice, TypeStore}

// ParseType validates a raw property type string.
func ParseType(raw string) (Type, error) {
	t := Type(raw)
	for _, valid := range AllTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", apperr.Validation(fmt.Sprintf("invalid property type %q", raw))
}

func (t Type) String() string { return string(t) }
