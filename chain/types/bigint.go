package types

import (
	"math/big"

	big2 "github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"
)

const BigIntMaxSerializedLen = 128

var EmptyInt = BigInt{}

type BigInt = big2.Int

func NewInt(i uint64) BigInt {
	return BigInt{Int: big.NewInt(0).SetUint64(i)}
}

func BigFromBytes(b []byte) BigInt {
	i := big.NewInt(0).SetBytes(b)
	return BigInt{Int: i}
}

func BigFromString(s string) (BigInt, error) {
	v, ok := big.NewInt(0).SetString(s, 10)
	if !ok {
		return BigInt{}, xerrors.Errorf("failed to parse string as a big int")
	}

	return BigInt{Int: v}, nil
}

func BigMul(a, b BigInt) BigInt {
	return BigInt{Int: big.NewInt(0).Mul(a.Int, b.Int)}
}

func BigDiv(a, b BigInt) BigInt {
	return BigInt{Int: big.NewInt(0).Div(a.Int, b.Int)}
}

func BigAdd(a, b BigInt) BigInt {
	return BigInt{Int: big.NewInt(0).Add(a.Int, b.Int)}
}

func BigSub(a, b BigInt) BigInt {
	return BigInt{Int: big.NewInt(0).Sub(a.Int, b.Int)}
}

func BigCmp(a, b BigInt) int {
	return a.Int.Cmp(b.Int)
}

func BigMin(a, b BigInt) BigInt {
	if BigCmp(a, b) < 0 {
		return a
	}
	return b
}

// Permill is a fixed point fraction in parts per million. Market ratios
// are carried as Permill so config files stay integral.
type Permill uint32

const PermillOne Permill = 1_000_000

func (p Permill) Mul(v BigInt) BigInt {
	return BigDiv(BigMul(v, NewInt(uint64(p))), NewInt(uint64(PermillOne)))
}
