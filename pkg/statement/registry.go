package statement

import (
	"fmt"
	"sync"

	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// TypeVersion identifies a statement descriptor in the registry.
type TypeVersion struct {
	Type    string
	Version uint8
}

// Descriptor is the static, per-(type,version) metadata spec §3's
// "Statement registry" requires: required public-input keys, the
// statement's domain separator, and the verifier it dispatches to.
// Descriptors are registered once at package init time by each backend
// and never mutated afterward.
type Descriptor struct {
	Type                 string
	Version              uint8
	RequiredPublicInputs []string
	DomainSeparator      string
	Verify               func(proof ZKProof) error
}

var (
	registryMu sync.RWMutex
	registry   = map[TypeVersion]Descriptor{}
)

// Register adds a descriptor to the static registry. It is intended to be
// called from backend package init() functions only (mirrors the
// database/sql driver-registration pattern); registering the same
// (type,version) twice is a programming error and panics immediately
// rather than silently shadowing a verifier.
func Register(d Descriptor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	key := TypeVersion{Type: d.Type, Version: d.Version}
	if _, exists := registry[key]; exists {
		panic(fmt.Sprintf("statement: duplicate registration for %s v%d", d.Type, d.Version))
	}
	registry[key] = d
}

// Lookup returns the descriptor for (type, version), or a BadMetadataError
// if the pair is unknown — dispatch refuses unknown or malformed
// (type, version) pairs per spec §3.
func Lookup(statementType string, version uint8) (Descriptor, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[TypeVersion{Type: statementType, Version: version}]
	if !ok {
		return Descriptor{}, &zkerrors.BadMetadataError{
			Statement: statementType,
			Reason:    fmt.Sprintf("no descriptor registered for version %d", version),
		}
	}
	return d, nil
}

// ValidatePublicInputs checks that proof.PublicInputs contains every key
// the descriptor requires. It does not check value sizes — that is each
// backend's job, since sizes are statement-specific.
func (d Descriptor) ValidatePublicInputs(proof ZKProof) error {
	if proof.StatementType != d.Type || proof.StatementVersion != d.Version {
		return &zkerrors.BadMetadataError{Statement: proof.StatementType, Reason: "type/version mismatch with descriptor"}
	}
	for _, key := range d.RequiredPublicInputs {
		if _, ok := proof.PublicInputs[key]; !ok {
			return &zkerrors.BadMetadataError{Statement: proof.StatementType, Reason: "missing required public input: " + key}
		}
	}
	return nil
}

// VerifyProof dispatches proof to its registered verifier, refusing
// unknown (type, version) pairs and malformed metadata before ever
// touching the cryptography.
func VerifyProof(proof ZKProof) error {
	d, err := Lookup(proof.StatementType, proof.StatementVersion)
	if err != nil {
		return err
	}
	if err := d.ValidatePublicInputs(proof); err != nil {
		return err
	}
	return d.Verify(proof)
}
