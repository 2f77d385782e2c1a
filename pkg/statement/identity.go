package statement

import (
	"crypto/sha256"

	"github.com/weisyn/privacyzk/pkg/curve"
)

// IdentityDomainTag is folded into every identity-scalar derivation.
const IdentityDomainTag = "LIBP2P_PRIVACY_PEER_ID_SCALAR_V1"

// IdentityScalar deterministically derives the hidden identity scalar for
// a peer id: id = H(DOMAIN_TAG || peer_id_utf8) mod q. This derivation is
// purely deterministic and provides no anonymity on its own — anonymity
// comes from the blinding and the Merkle tree (spec §3).
func IdentityScalar(peerID string) curve.Scalar {
	h := sha256.New()
	h.Write([]byte(IdentityDomainTag))
	h.Write([]byte(peerID))
	sum := h.Sum(nil)
	s, _ := curve.ScalarFromBytes(sum) // sha256 output is always 32 bytes
	return s
}
