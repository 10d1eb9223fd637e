// Package sampling implements the pseudo-random byte generation and the noise
// sampling used by the polynomial samplers.
package sampling

import (
	"crypto/rand"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// SeedLength is the byte length of the seeds consumed by KeyedPRNG.
const SeedLength = 32

// PRNG is an interface for the secure generation of random bytes.
type PRNG interface {
	io.Reader
}

// SystemPRNG generates non-deterministic random bytes from the operating
// system entropy source. It is safe for concurrent use.
type SystemPRNG struct {
}

// NewPRNG returns a PRNG backed by crypto/rand.
func NewPRNG() (*SystemPRNG, error) {
	return &SystemPRNG{}, nil
}

// Read fills p with random bytes.
func (prng *SystemPRNG) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

// KeyedPRNG deterministically expands a key into an unbounded stream of
// random bytes using the blake2b XOF. Two KeyedPRNG instantiated with the
// same key produce the same stream.
// WARNING: a KeyedPRNG must not be shared across goroutines; interleaved
// reads make the resulting sequence non-deterministic for a given key.
type KeyedPRNG struct {
	mutex sync.Mutex
	key   []byte
	xof   blake2b.XOF
}

// NewKeyedPRNG creates a new instance of KeyedPRNG.
// Accepts an optional key, else set key=nil which is treated as key=[]byte{}.
// WARNING: a PRNG instantiated with key=nil is INSECURE.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	var err error
	prng := new(KeyedPRNG)
	prng.key = make([]byte, len(key))
	copy(prng.key, key)
	prng.xof, err = blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	return prng, err
}

// Key returns a copy of the key used to seed the PRNG.
// This value can be used with NewKeyedPRNG to instantiate a new PRNG that
// will produce the same stream of bytes.
func (prng *KeyedPRNG) Key() (key []byte) {
	key = make([]byte, len(prng.key))
	copy(key, prng.key)
	return
}

// Read fills p with bytes from the PRNG stream.
func (prng *KeyedPRNG) Read(p []byte) (n int, err error) {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	return prng.xof.Read(p)
}

// Reset resets the PRNG to its initial state.
func (prng *KeyedPRNG) Reset() {
	prng.mutex.Lock()
	defer prng.mutex.Unlock()
	prng.xof.Reset()
}
