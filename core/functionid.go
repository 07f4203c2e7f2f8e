package core

import (
	"hash/crc32"

	lru "github.com/hashicorp/golang-lru/v2"
)

// FunctionID derives the 32-bit selector from a canonical signature: the
// IEEE 802.3 CRC32 of the signature bytes, taken big-endian (§4.6). CRC32
// itself is the Hash Library named as an out-of-scope collaborator in
// spec §1; hash/crc32 is its only reasonable Go binding, so no
// DESIGN.md "could a library replace this" entry is owed — the CRC32
// algorithm itself is the dependency and it lives in the standard library.
func FunctionID(canonicalSig string) uint32 {
	return crc32.ChecksumIEEE([]byte(canonicalSig))
}

// FunctionIDCache memoizes FunctionID by canonical signature string, since
// it is a pure function repeatedly called for the same function on a hot
// encode/decode path.
type FunctionIDCache struct {
	cache *lru.Cache[string, uint32]
}

// NewFunctionIDCache returns a cache holding up to size entries.
func NewFunctionIDCache(size int) (*FunctionIDCache, error) {
	c, err := lru.New[string, uint32](size)
	if err != nil {
		return nil, err
	}
	return &FunctionIDCache{cache: c}, nil
}

// Derive returns FunctionID(sig), populating the cache on a miss.
func (c *FunctionIDCache) Derive(sig string) uint32 {
	if c == nil || c.cache == nil {
		return FunctionID(sig)
	}
	if id, ok := c.cache.Get(sig); ok {
		return id
	}
	id := FunctionID(sig)
	c.cache.Add(sig, id)
	return id
}
