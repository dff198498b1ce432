package simulate

import (
	"encoding/binary"

	"github.com/aead/chacha20/chacha"
	"github.com/hhcho/frand"
)

const bufferSize int = 1024

// NewRNG returns a deterministic ChaCha-backed generator for the seed.
func NewRNG(seed uint64) *frand.RNG {
	key := make([]byte, chacha.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	return frand.NewCustom(key, bufferSize, 20)
}

// Source adapts a frand generator to the rand.Source consumed by the
// gonum distuv samplers.
type Source struct {
	rng *frand.RNG
}

func NewSource(seed uint64) *Source {
	return &Source{rng: NewRNG(seed)}
}

func (s *Source) Uint64() uint64 {
	var buf [8]byte
	s.rng.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func (s *Source) Seed(seed uint64) {
	s.rng = NewRNG(seed)
}
