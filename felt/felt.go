// Package felt implements the Starknet field element: a non-negative
// integer modulo the Starknet prime, with the conversions every syscall
// argument and response crosses the VM-memory boundary through.
package felt

import (
	"fmt"
	"math/big"
)

// Prime is the Starknet field prime: 2**251 + 17*2**192 + 1.
var Prime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	aux := new(big.Int).Lsh(big.NewInt(17), 192)
	p.Add(p, aux)
	p.Add(p, big.NewInt(1))
	return p
}()

// Felt is a field element modulo Prime. The zero value is the felt 0.
type Felt struct {
	v big.Int
}

// Zero is the additive identity.
var Zero = Felt{}

// One is the multiplicative identity.
var One = FromUint64(1)

// FromUint64 builds a Felt from a small native integer.
func FromUint64(v uint64) Felt {
	var f Felt
	f.v.SetUint64(v)
	return f
}

// FromBigInt reduces v modulo Prime and returns the resulting Felt. v is not mutated.
func FromBigInt(v *big.Int) Felt {
	var f Felt
	f.v.Mod(v, Prime)
	return f
}

// FromBytesBE interprets data as a big-endian integer and reduces it modulo Prime.
func FromBytesBE(data []byte) Felt {
	var f Felt
	f.v.SetBytes(data)
	f.v.Mod(&f.v, Prime)
	return f
}

// FromASCII felt-encodes an ASCII string the way reserved error strings
// cross into VM memory: the bytes of s, interpreted big-endian.
func FromASCII(s string) Felt {
	return FromBytesBE([]byte(s))
}

// Bytes32 returns the 32-byte big-endian encoding of the felt.
func (f Felt) Bytes32() [32]byte {
	var out [32]byte
	b := f.v.Bytes()
	copy(out[32-len(b):], b)
	return out
}

// BigInt returns a copy of the felt's value as a *big.Int.
func (f Felt) BigInt() *big.Int {
	return new(big.Int).Set(&f.v)
}

// IsZero reports whether the felt is 0.
func (f Felt) IsZero() bool {
	return f.v.Sign() == 0
}

// IsOne reports whether the felt is 1.
func (f Felt) IsOne() bool {
	return f.v.Cmp(big.NewInt(1)) == 0
}

// Equal reports whether two felts carry the same value.
func (f Felt) Equal(other Felt) bool {
	return f.v.Cmp(&other.v) == 0
}

// Add returns f+other mod Prime.
func (f Felt) Add(other Felt) Felt {
	var sum big.Int
	sum.Add(&f.v, &other.v)
	return FromBigInt(&sum)
}

// Sub returns f-other mod Prime.
func (f Felt) Sub(other Felt) Felt {
	var diff big.Int
	diff.Sub(&f.v, &other.v)
	return FromBigInt(&diff)
}

// Lsh returns f shifted left by n bits, reduced mod Prime.
func (f Felt) Lsh(n uint) Felt {
	var shifted big.Int
	shifted.Lsh(&f.v, n)
	return FromBigInt(&shifted)
}

// ToUint64 narrows the felt to a uint64, failing if it does not fit.
func (f Felt) ToUint64() (uint64, error) {
	if !f.v.IsUint64() {
		return 0, fmt.Errorf("%w: felt %s does not fit in a u64", ErrConversion, f.v.String())
	}
	return f.v.Uint64(), nil
}

// ToUint128 narrows the felt to an unsigned 128-bit integer (represented
// as *big.Int, Go has no native u128), failing if it does not fit.
func (f Felt) ToUint128() (*big.Int, error) {
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	if f.v.Sign() < 0 || f.v.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("%w: felt %s does not fit in a u128", ErrConversion, f.v.String())
	}
	return new(big.Int).Set(&f.v), nil
}

// String renders the felt in decimal, matching the teacher's logging style.
func (f Felt) String() string {
	return f.v.String()
}

// ErrConversion signals a felt narrowing failure (too wide for the target integer type).
var ErrConversion = fmt.Errorf("felt conversion error")
