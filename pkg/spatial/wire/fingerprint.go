package wire

import "github.com/cespare/xxhash/v2"

// Fingerprint hashes the binary encoding of v. Values that encode to the
// same bytes share a fingerprint, so 0 and -0 differ while two NaNs with the
// same payload do not.
func Fingerprint(v any) (uint64, error) {
	data, err := BinaryCodec{}.Marshal(v)
	if err != nil {
		return 0, err
	}
	return FingerprintBytes(data), nil
}

// FingerprintBytes hashes data that is already encoded, such as a snapshot
// frame.
func FingerprintBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
