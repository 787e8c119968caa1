// Package cache is a pure performance layer over the core pipeline: a
// msgpack-encoded, content-hash-keyed disk cache so `tabc check` on an
// unchanged file can report success without re-running tokenize/parse/
// validate. A cache miss or decode error is always treated as
// "recompile" — nothing here can make compilation more correct, only
// faster.
package cache

import "crypto/sha256"

// Digest is a SHA-256 content hash, used as the cache key.
type Digest [32]byte

// Sum hashes content into a Digest.
func Sum(content []byte) Digest {
	return Digest(sha256.Sum256(content))
}

// Combine folds extra digests into base, e.g. a file's content hash
// combined with the set of extern prototypes registered for it (two
// otherwise-identical files validate differently depending on what the
// driver registered).
func Combine(base Digest, extra ...Digest) Digest {
	h := sha256.New()
	h.Write(base[:])
	for _, d := range extra {
		h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
