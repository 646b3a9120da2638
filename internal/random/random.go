// internal/random/random.go
//
// Uniform selection from ordered sequences.
// Responsibilities:
//   - Source: the injectable entropy dependency (IntN over [0,n)).
//   - Pick / PickIndex: uniform choice over a non-empty sequence.
//   - Crypto / Seeded: production and deterministic sources.
//
// Notes:
//   - Sources are not required to be safe for concurrent use; Crypto is.
//   - An empty sequence is an InvalidArgument condition (ErrEmptySequence).

package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
)

var (
	// ErrInvalidArgument classifies caller mistakes such as selecting from nothing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptySequence is returned by Pick when the sequence has no elements.
	ErrEmptySequence = fmt.Errorf("%w: empty sequence", ErrInvalidArgument)
)

// Source yields integers uniformly distributed over [0, n). n is always > 0.
type Source interface {
	IntN(n int) int
}

// PickIndex returns a uniformly random index into a sequence of length n.
func PickIndex(src Source, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptySequence
	}
	if n == 1 {
		return 0, nil
	}
	i := src.IntN(n)
	if i < 0 || i >= n {
		return 0, fmt.Errorf("random: source returned %d outside [0,%d)", i, n)
	}
	return i, nil
}

// Pick returns one element of seq chosen uniformly at random.
func Pick[T any](src Source, seq []T) (T, error) {
	var zero T
	i, err := PickIndex(src, len(seq))
	if err != nil {
		return zero, err
	}
	return seq[i], nil
}

// cryptoSource draws from crypto/rand.
type cryptoSource struct{}

// Crypto returns a Source backed by crypto/rand.
func Crypto() Source { return cryptoSource{} }

func (cryptoSource) IntN(n int) int {
	nBig, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms; stay in range regardless.
		return mrand.IntN(n)
	}
	return int(nBig.Int64())
}

// seeded is a deterministic PCG-backed source.
type seeded struct{ r *mrand.Rand }

// Seeded returns a deterministic Source. Equal seeds produce equal sequences.
func Seeded(seed uint64) Source {
	return seeded{r: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s seeded) IntN(n int) int { return s.r.IntN(n) }

// NewSeed generates a seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
