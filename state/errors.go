package state

import "errors"

// ErrClassNotFound signals that no compiled class is registered under a class hash.
var ErrClassNotFound = errors.New("state: class not found")

// ErrAddressUnavailable signals that an address already carries a deployed class.
var ErrAddressUnavailable = errors.New("state: contract address unavailable")
