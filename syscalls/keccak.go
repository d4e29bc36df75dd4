package syscalls

import (
	"math/bits"

	"github.com/starknet-syscalls/syscallhost/felt"
	"github.com/starknet-syscalls/syscallhost/vmmem"
)

// keccakRoundConstants are the 24 round constants of Keccak-f[1600],
// applied to lane (0,0) at the start of each round.
var keccakRoundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var rotationOffsets = [5][5]uint{
	{0, 1, 62, 28, 27},
	{36, 44, 6, 55, 20},
	{3, 10, 43, 25, 39},
	{41, 45, 15, 21, 8},
	{18, 2, 61, 56, 14},
}

// keccakF1600 runs the 24-round Keccak permutation in place over a
// 5x5 lane state (spec §4.7). No example in the retrieved corpus
// exposes the raw lane-level primitive this syscall needs; it is
// implemented directly against math/bits, the standard library's bit
// rotation helper, rather than against any higher-level hash package.
func keccakF1600(state *[5][5]uint64) {
	for round := 0; round < 24; round++ {
		var c [5]uint64
		for x := 0; x < 5; x++ {
			c[x] = state[x][0] ^ state[x][1] ^ state[x][2] ^ state[x][3] ^ state[x][4]
		}
		var d [5]uint64
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				state[x][y] ^= d[x]
			}
		}

		var b [5][5]uint64
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y][(2*x+3*y)%5] = bits.RotateLeft64(state[x][y], int(rotationOffsets[y][x]))
			}
		}

		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				state[x][y] = b[x][y] ^ (^b[(x+1)%5][y] & b[(x+2)%5][y])
			}
		}

		state[0][0] ^= keccakRoundConstants[round]
	}
}

// syscallKeccak hashes a felt-addressed byte range using Cairo's
// felt-packed Keccak variant: input length must be a multiple of 17
// felts (one 1088-bit rate block each). Each block is absorbed one at a
// time, charging KeccakRoundCost per block as it goes rather than all
// up front, so a starved call is charged for exactly the blocks it
// actually permuted (spec §4.7, SUPPLEMENTED FEATURES: n_chunks = length/17).
func (h *Handler) syscallKeccak(argsPtr vmmem.Relocatable) (ResponseBody, vmmem.Relocatable, error) {
	inputStart, err := h.Memory.ReadRelocatable(argsPtr)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	inputEnd, err := h.Memory.ReadRelocatable(argsPtr.Add(1))
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	next := argsPtr.Add(2)

	input, err := h.Memory.ReadFeltRange(inputStart, inputEnd)
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}

	const feltsPerBlock = 17
	if len(input)%feltsPerBlock != 0 {
		body, err := h.failureFromErrorMsg("Invalid keccak input size")
		return body, next, err
	}

	var state [5][5]uint64
	for block := 0; block < len(input); block += feltsPerBlock {
		if chargeErr := h.Meter.ChargeKeccakRound(); chargeErr != nil {
			body, err := h.failureFromErrorMsg("Syscall out of gas")
			return body, next, err
		}
		for i := 0; i < feltsPerBlock; i++ {
			lane, err := input[block+i].ToUint64()
			if err != nil {
				return ResponseBody{}, vmmem.Relocatable{}, err
			}
			// Canonical lane mapping: linear index i -> (x=i%5, y=i/5).
			state[i%5][i/5] ^= lane
		}
		keccakF1600(&state)
	}

	hashLow := felt.FromUint64(state[1][0]).Lsh(64).Add(felt.FromUint64(state[0][0]))
	hashHigh := felt.FromUint64(state[3][0]).Lsh(64).Add(felt.FromUint64(state[2][0]))

	start, err := h.AllocateSegment([]felt.Felt{hashLow, hashHigh})
	if err != nil {
		return ResponseBody{}, vmmem.Relocatable{}, err
	}
	return SuccessBody(start, start.Add(2)), next, nil
}
