// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package hash

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Algorithm identifies a hash algorithm with a 256 bit digest.
type Algorithm uint8

// Supported Algorithms.
const (
	SHA2_256 Algorithm = 1 + iota
	SHA2_512_256
	SHA3_256
	BLAKE2S_256
	BLAKE2B_256
	BLAKE3_256
)

// DigestSize is the output size of all supported algorithms, in bytes.
const DigestSize = 32

var (
	attributes = map[Algorithm][]uint8{
		// block size, output size, security strength - in bytes
		SHA2_256:     {64, 32, 16},
		SHA2_512_256: {128, 32, 16},
		SHA3_256:     {136, 32, 16},
		BLAKE2S_256:  {64, 32, 16},
		BLAKE2B_256:  {128, 32, 16},
		BLAKE3_256:   {64, 32, 16},
	}

	functions = map[Algorithm]func() hash.Hash{
		SHA2_256:     sha256.New,
		SHA2_512_256: sha512.New512_256,
		SHA3_256:     sha3.New256,
		BLAKE2S_256:  NewBlake2s256,
		BLAKE2B_256:  NewBlake2b256,
		BLAKE3_256:   NewBlake3,
	}

	names = map[Algorithm]string{
		SHA2_256:     "SHA2-256",
		SHA2_512_256: "SHA2-512/256",
		SHA3_256:     "SHA3-256",
		BLAKE2S_256:  "Blake2s-256",
		BLAKE2B_256:  "Blake2b-256",
		BLAKE3_256:   "Blake3-256",
	}
)

// FromName returns the algorithm with the given name, ignoring case.
func FromName(name string) (alg Algorithm, ok bool) {
	for alg, algName := range names {
		if strings.EqualFold(algName, name) {
			return alg, true
		}
	}
	return 0, false
}

// Names returns the names of all supported algorithms.
func Names() []string {
	list := make([]string, 0, len(names))
	for alg := SHA2_256; alg <= BLAKE3_256; alg++ {
		list = append(list, names[alg])
	}
	return list
}

// BlockSize returns the block size of the algorithm in bytes.
func (a Algorithm) BlockSize() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[0]
}

// Size returns the digest size of the algorithm in bytes.
func (a Algorithm) Size() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[1]
}

// SecurityStrength returns the collision resistance of the algorithm in bytes.
func (a Algorithm) SecurityStrength() uint8 {
	att, ok := attributes[a]
	if !ok {
		return 0
	}
	return att[2]
}

func (a Algorithm) String() string {
	return a.Name()
}

// Name returns the name of the algorithm.
func (a Algorithm) Name() string {
	name, ok := names[a]
	if !ok {
		return ""
	}
	return name
}

// New returns a new hash.Hash of the algorithm, or nil if the algorithm is unknown.
func (a Algorithm) New() hash.Hash {
	fn, ok := functions[a]
	if !ok {
		return nil
	}
	return fn()
}

// Sum returns the digest of data.
func (a Algorithm) Sum(data ...[]byte) (sum [DigestSize]byte) {
	h := a.New()
	for _, d := range data {
		_, _ = h.Write(d)
	}
	h.Sum(sum[:0])
	return sum
}

// DoubleSum returns the digest of the digest of data. Pools use it to finalize their digest with any of the supported algorithms.
func (a Algorithm) DoubleSum(data ...[]byte) [DigestSize]byte {
	first := a.Sum(data...)
	return a.Sum(first[:])
}
