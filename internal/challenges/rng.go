package challenges

import (
	"hash/fnv"

	"github.com/example/tvorets/pkg/models"
)

// seedSalt versions the daily seed; changing it reshuffles every day's initial set
const seedSalt = "dailyChallenges:v1"

// StableSeed is the deterministic seed for a day and growth trait
func StableSeed(today string, mainGrowth models.Trait) uint32 {
	h := fnv.New32a()
	h.Write([]byte(today + "|growth:" + mainGrowth.String() + "|" + seedSalt))
	return h.Sum32()
}

// mulberry32 is a tiny 32-bit PRNG; the same seed always yields the same sequence
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed uint32) *mulberry32 {
	return &mulberry32{state: seed}
}

// Float64 returns a value in [0, 1)
func (m *mulberry32) Float64() float64 {
	m.state += 0x6d2b79f5
	x := m.state
	x = (x ^ (x >> 15)) * (x | 1)
	x ^= x + (x^(x>>7))*(x|61)
	return float64(x^(x>>14)) / 4294967296.0
}

// Intn returns a value in [0, n), n must be positive
func (m *mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}
