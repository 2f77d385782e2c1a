package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weisyn/privacyzk/internal/log"
	"github.com/weisyn/privacyzk/pkg/zkerrors"
)

// writeAsset writes payload verbatim, as the real circuit tooling would
// (no module-specific wrapper format).
func writeAsset(t *testing.T, root, statement string, schema, depth uint8, file string, payload []byte) {
	t.Helper()
	dir := filepath.Join(root, statement, "v"+itoa(schema), "depth-"+itoa(depth))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), payload, 0o644))
}

func itoa(v uint8) string {
	if v == 0 {
		return "0"
	}
	digits := []byte{}
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}

func TestLoadReturnsWrittenPayload(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "membership", 2, 16, "membership_vk.bin", []byte("vk-bytes"))

	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	payload, err := loader.Load("membership", 2, 16, "membership_vk.bin")
	require.NoError(t, err)
	require.Equal(t, []byte("vk-bytes"), payload)
}

func TestLoadIsCachedOnSecondCall(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "continuity", 2, 0, "continuity_vk.bin", []byte("first"))

	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	payload, err := loader.Load("continuity", 2, 0, "continuity_vk.bin")
	require.NoError(t, err)
	require.Equal(t, []byte("first"), payload)

	// Mutate on disk; a cache hit should still return the original bytes.
	writeAsset(t, root, "continuity", 2, 0, "continuity_vk.bin", []byte("second"))
	payload2, err := loader.Load("continuity", 2, 0, "continuity_vk.bin")
	require.NoError(t, err)
	require.Equal(t, []byte("first"), payload2)
}

func TestLoadMissingFileIsNotAvailable(t *testing.T) {
	root := t.TempDir()
	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load("membership", 2, 16, "membership_vk.bin")
	require.Error(t, err)
	var notAvail *zkerrors.NotAvailableError
	require.ErrorAs(t, err, &notAvail)
}

func TestLoadUnrecognizedFileNameIsBadAsset(t *testing.T) {
	root := t.TempDir()
	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load("membership", 2, 16, "not_a_real_file.bin")
	require.Error(t, err)
	var badAsset *zkerrors.BadAssetError
	require.ErrorAs(t, err, &badAsset)
}

func TestLoadDifferentSchemaPathIsNotAvailable(t *testing.T) {
	// Schema/depth are part of the path template, not a header field:
	// asking for a (schema,depth) combination that was never written
	// resolves to a path that does not exist.
	root := t.TempDir()
	writeAsset(t, root, "unlinkability", 2, 0, "unlinkability_vk.bin", []byte("vk"))

	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load("unlinkability", 3, 0, "unlinkability_vk.bin")
	require.Error(t, err)
	var notAvail *zkerrors.NotAvailableError
	require.ErrorAs(t, err, &notAvail)
}

func TestLoadEmptyFileIsBadAsset(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "membership", 2, 16, "membership_vk.bin", []byte{})

	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	_, err = loader.Load("membership", 2, 16, "membership_vk.bin")
	require.Error(t, err)
	var badAsset *zkerrors.BadAssetError
	require.ErrorAs(t, err, &badAsset)
}

func TestLoadForwardsRawBytesVerbatim(t *testing.T) {
	// No header, no wrapper: arbitrary binary content (as ark_serialize
	// would produce) round-trips byte-for-byte.
	root := t.TempDir()
	raw := []byte{0x00, 0xff, 0x01, 0xfe, 0x00, 0x00, 0x10}
	writeAsset(t, root, "continuity", 2, 0, "continuity_proof.bin", raw)

	loader, err := New(root, log.Nop())
	require.NoError(t, err)
	defer loader.Close()

	payload, err := loader.Load("continuity", 2, 0, "continuity_proof.bin")
	require.NoError(t, err)
	require.Equal(t, raw, payload)
}
