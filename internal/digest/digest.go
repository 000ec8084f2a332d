// Package digest provides the 64-bit non-cryptographic string hashes used to
// build identifiers, addressed by name.
package digest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Hasher maps a string to a 64-bit value. Implementations must be
// deterministic for identical input.
type Hasher interface {
	Name() string
	Sum64(s string) uint64
}

const (
	XXHash  = "xxhash"
	Murmur3 = "murmur3"

	// Default is used when no hash is named.
	Default = XXHash
)

type xxHasher struct{}

func (xxHasher) Name() string { return XXHash }

func (xxHasher) Sum64(s string) uint64 { return xxhash.Sum64String(s) }

type murmurHasher struct{}

func (murmurHasher) Name() string { return Murmur3 }

func (murmurHasher) Sum64(s string) uint64 { return murmur3.Sum64([]byte(s)) }

var registry = map[string]Hasher{
	XXHash:  xxHasher{},
	Murmur3: murmurHasher{},
}

// New returns the default hasher.
func New() Hasher { return registry[Default] }

// Lookup returns the hasher registered under name. An empty name selects the
// default.
func Lookup(name string) (Hasher, error) {
	if name == "" {
		return New(), nil
	}
	h, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown hash %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return h, nil
}

// Names lists the registered hash names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Hex renders v as lowercase hexadecimal without prefix or padding.
func Hex(v uint64) string {
	return strconv.FormatUint(v, 16)
}
