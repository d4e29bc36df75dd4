package felt

// Address identifies a contract or account by its felt value.
type Address struct {
	Felt Felt
}

// ZeroAddress is the well-known zero address (used e.g. by deploy_from_zero).
var ZeroAddress = Address{}

// AddressFromFelt wraps a felt as an address.
func AddressFromFelt(f Felt) Address {
	return Address{Felt: f}
}

// Equal reports whether two addresses carry the same value.
func (a Address) Equal(other Address) bool {
	return a.Felt.Equal(other.Felt)
}

// IsZero reports whether the address is the zero address.
func (a Address) IsZero() bool {
	return a.Felt.IsZero()
}

// String renders the address in decimal.
func (a Address) String() string {
	return a.Felt.String()
}
