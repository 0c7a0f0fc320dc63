// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package hash

import (
	"encoding/hex"
	"testing"
)

func TestAttributes(t *testing.T) {
	t.Parallel()

	for alg, att := range attributes {

		name, ok := names[alg]
		if !ok {
			t.Errorf("hash test: name missing for Algorithm ID %d", alg)
		}
		_ = alg.String()

		_, ok = functions[alg]
		if !ok {
			t.Errorf("hash test: function missing for Algorithm %s", name)
		}
		hash := alg.New()

		if len(att) != 3 {
			t.Errorf("hash test: Algorithm %s does not have exactly 3 attributes", name)
		}

		if hash.BlockSize() != int(alg.BlockSize()) {
			t.Errorf("hash test: block size mismatch at Algorithm %s", name)
		}
		if hash.Size() != int(alg.Size()) {
			t.Errorf("hash test: size mismatch at Algorithm %s", name)
		}
		if alg.Size() != DigestSize {
			t.Errorf("hash test: digest size of Algorithm %s is not %d", name, DigestSize)
		}
		if alg.Size()/2 != alg.SecurityStrength() {
			t.Errorf("hash test: possible strength error at Algorithm %s", name)
		}

		parsed, ok := FromName(name)
		if !ok || parsed != alg {
			t.Errorf("hash test: failed to look up Algorithm %s by name", name)
		}
	}

	noAlg := Algorithm(255)
	if noAlg.String() != "" {
		t.Error("hash test: unknown Algorithm should have no name")
	}
	if noAlg.New() != nil {
		t.Error("hash test: unknown Algorithm should not create a hash")
	}
	if len(Names()) != len(names) {
		t.Error("hash test: Names() is missing algorithms")
	}
}

func TestSum(t *testing.T) {
	t.Parallel()

	// sha256("abc")
	sum := SHA2_256.Sum([]byte("a"), []byte("bc"))
	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if hex.EncodeToString(sum[:]) != expected {
		t.Errorf("unexpected sha256 sum %x", sum)
	}

	double := SHA2_256.DoubleSum([]byte("abc"))
	if double != SHA2_256.Sum(sum[:]) {
		t.Error("double sum mismatch")
	}
}
