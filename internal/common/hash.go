package common

import "hash/fnv"

const (
	hashSeed  uint64 = 0xcbf29ce484222325
	hashPrime uint64 = 0x100000001b3
)

// Hasher accumulates an order-sensitive hash. Mixing a then b differs from
// mixing b then a.
type Hasher struct {
	sum uint64
}

// NewHasher starts a hash seeded with a variant tag.
func NewHasher(tag uint64) Hasher {
	return Hasher{sum: hashSeed ^ (tag * hashPrime)}
}

// Mix folds v into the running hash.
func (h Hasher) Mix(v uint64) Hasher {
	// rotate so that position matters, then multiply to spread bits
	h.sum = (h.sum<<7 | h.sum>>57) ^ v
	h.sum *= hashPrime

	return h
}

// MixBool folds a boolean into the running hash.
func (h Hasher) MixBool(b bool) Hasher {
	if b {
		return h.Mix(1)
	}

	return h.Mix(2)
}

// MixString folds the FNV-1a hash of s into the running hash.
func (h Hasher) MixString(s string) Hasher {
	f := fnv.New64a()
	_, _ = f.Write([]byte(s))

	return h.Mix(f.Sum64())
}

// Sum returns the accumulated hash.
func (h Hasher) Sum() uint64 {
	return h.sum
}
