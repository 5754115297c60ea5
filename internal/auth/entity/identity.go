package entity

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrIdentityRequired = errors.New("auth: either user id or phone number is required")
	ErrInvalidUserID    = errors.New("auth: user id must be numeric")
)

type HintKind int16

const (
	HintByID HintKind = iota + 1
	HintByPhone
	HintBoth
)

// IdentityHint names a user by id, by phone number, or by both at once.
type IdentityHint struct {
	Kind        HintKind
	UserID      int64
	PhoneNumber string
}

// ParseIdentityHint builds an IdentityHint from raw client input.
//
// The empty string and the literal "null" both mean "absent"; legacy clients
// send the stringified null for a missing user id. A non-numeric raw id is a
// validation failure, distinct from a lookup miss.
func ParseIdentityHint(rawID, phone string) (IdentityHint, error) {
	rawID = strings.TrimSpace(rawID)
	phone = strings.TrimSpace(phone)

	hasID := rawID != "" && rawID != "null"
	hasPhone := phone != "" && phone != "null"

	if !hasID && !hasPhone {
		return IdentityHint{}, ErrIdentityRequired
	}

	if !hasID {
		return IdentityHint{Kind: HintByPhone, PhoneNumber: phone}, nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return IdentityHint{}, ErrInvalidUserID
	}

	if !hasPhone {
		return IdentityHint{Kind: HintByID, UserID: id}, nil
	}

	return IdentityHint{Kind: HintBoth, UserID: id, PhoneNumber: phone}, nil
}
