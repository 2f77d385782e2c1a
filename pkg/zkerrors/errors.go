// Package zkerrors defines the typed error taxonomy for the privacyzk core.
//
// Each category is a concrete struct implementing error, matching the
// teacher's own consensus-error style (named types rather than sentinel
// values). Type-assertion helpers exist for four of them (IsPoKRejected,
// IsNotAvailable, IsBadAsset, IsTimeout); the others have none.
package zkerrors

import "fmt"

// BadEncodingError signals a scalar/point/CBOR decode failure or a
// wrong-size field.
type BadEncodingError struct {
	Field string
	Err   error
}

func (e *BadEncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad encoding: field=%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("bad encoding: field=%s", e.Field)
}

func (e *BadEncodingError) Unwrap() error { return e.Err }

// InvalidPointError signals an off-curve point, the identity where
// forbidden, or a point outside the expected subgroup.
type InvalidPointError struct {
	Reason string
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("invalid point: %s", e.Reason)
}

// InvalidScalarError signals a scalar outside its required range.
type InvalidScalarError struct {
	Reason string
}

func (e *InvalidScalarError) Error() string {
	return fmt.Sprintf("invalid scalar: %s", e.Reason)
}

// BadMetadataError signals an unknown/mismatched (type, version) pair or a
// missing required public-input key.
type BadMetadataError struct {
	Statement string
	Reason    string
}

func (e *BadMetadataError) Error() string {
	return fmt.Sprintf("bad metadata: statement=%s: %s", e.Statement, e.Reason)
}

// BadMerklePathError signals a path-length mismatch or a recomputed root
// that disagrees with the advertised one.
type BadMerklePathError struct {
	Reason string
}

func (e *BadMerklePathError) Error() string {
	return fmt.Sprintf("bad merkle path: %s", e.Reason)
}

// PoKRejectedError signals a Schnorr/Chaum-Pedersen equation or challenge
// mismatch. It always carries the statement tag so the caller can surface
// "which statement failed" without inspecting a stack trace.
type PoKRejectedError struct {
	Statement string
	Check     string // which check failed: "challenge" | "equation" | "equation2"
}

func (e *PoKRejectedError) Error() string {
	return fmt.Sprintf("proof of knowledge rejected: statement=%s check=%s", e.Statement, e.Check)
}

// TagMismatchError signals a recomputed session tag that disagrees with the
// claimed one.
type TagMismatchError struct{}

func (e *TagMismatchError) Error() string { return "session tag mismatch" }

// BadAssetError signals a missing, wrong-size, or wrong-schema on-disk
// asset. Missing assets are NOT this error — see NotAvailableError.
type BadAssetError struct {
	Path   string
	Reason string
}

func (e *BadAssetError) Error() string {
	return fmt.Sprintf("bad asset: path=%s: %s", e.Path, e.Reason)
}

// NotAvailableError signals a missing asset file; it is not fatal to the
// exchange, it just means that statement cannot be produced.
type NotAvailableError struct {
	Path string
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("asset not available: path=%s", e.Path)
}

// TimeoutError signals a deadline exceeded either client- or server-side.
type TimeoutError struct {
	Stage string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout: stage=%s", e.Stage)
}

// PeerClosedError signals the remote end closed the stream mid-exchange.
type PeerClosedError struct {
	Stage string
}

func (e *PeerClosedError) Error() string {
	return fmt.Sprintf("peer closed stream: stage=%s", e.Stage)
}

// IsPoKRejected reports whether err is a *PoKRejectedError.
func IsPoKRejected(err error) (*PoKRejectedError, bool) {
	e, ok := err.(*PoKRejectedError)
	return e, ok
}

// IsNotAvailable reports whether err is a *NotAvailableError.
func IsNotAvailable(err error) (*NotAvailableError, bool) {
	e, ok := err.(*NotAvailableError)
	return e, ok
}

// IsBadAsset reports whether err is a *BadAssetError.
func IsBadAsset(err error) (*BadAssetError, bool) {
	e, ok := err.(*BadAssetError)
	return e, ok
}

// IsTimeout reports whether err is a *TimeoutError.
func IsTimeout(err error) (*TimeoutError, bool) {
	e, ok := err.(*TimeoutError)
	return e, ok
}
