package toast

import "errors"

var (
	// ErrCapacityExceeded indicates the active list is already full.
	ErrCapacityExceeded = errors.New("notification capacity exceeded")
	// ErrInvalidPermanentContent indicates a permanent notification without content.
	ErrInvalidPermanentContent = errors.New("permanent notification requires content")
	// ErrUnknownKind indicates a kind other than temporary or permanent.
	ErrUnknownKind = errors.New("unknown notification kind")
)
