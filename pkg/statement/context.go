// Package statement defines the public-input types, the canonical CBOR
// proof envelope, and the static (type, version) registry shared by the
// three statement backends (spec §3, §4.6-4.8).
package statement

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// Context is the binding envelope folded into every challenge (spec §3):
// two proofs with different contexts can never be replayed against each
// other.
type Context struct {
	PeerID    string
	SessionID string
	Metadata  map[string][]byte
	Timestamp uint64
}

// Hash canonicalizes the context by length-prefixed concatenation
// (metadata sorted ascending by key) and returns its SHA-256 digest.
func (c Context) Hash() [32]byte {
	h := sha256.New()
	writeLP(h, []byte(c.PeerID))
	writeLP(h, []byte(c.SessionID))

	keys := make([]string, 0, len(c.Metadata))
	for k := range c.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var countBytes [4]byte
	binary.BigEndian.PutUint32(countBytes[:], uint32(len(keys)))
	h.Write(countBytes[:])
	for _, k := range keys {
		writeLP(h, []byte(k))
		writeLP(h, c.Metadata[k])
	}

	var tsBytes [8]byte
	binary.BigEndian.PutUint64(tsBytes[:], c.Timestamp)
	h.Write(tsBytes[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

type byteWriter interface {
	Write(p []byte) (int, error)
}

func writeLP(w byteWriter, field []byte) {
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(field)))
	w.Write(lenBytes[:])
	w.Write(field)
}
