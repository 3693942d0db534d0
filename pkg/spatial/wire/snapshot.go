package wire

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/zeusync/spatial/pkg/spatial/movement"
	"google.golang.org/protobuf/encoding/protowire"
)

// Compression selects how a snapshot body is compressed. The choice is
// stored in the first byte of the frame.
type Compression byte

const (
	CompressionSnappy Compression = 1
	CompressionZstd   Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionSnappy:
		return "snappy"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", byte(c))
	}
}

// ParseCompression maps "snappy" and "zstd" to their Compression. An empty
// name is snappy.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return CompressionSnappy, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: compression %q", ErrUnsupportedType, name)
	}
}

// snapshotMovementField is the repeated field holding one encoded RepMovement.
const snapshotMovementField protowire.Number = 1

var (
	zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil)
	})
	zstdDecoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil)
	})
)

// EncodeSnapshot packs moves into one frame: a compression byte followed by
// the compressed list of length-prefixed RepMovement messages. Velocities
// travel in single precision, as RepMovement.Quantize leaves them. Snappy is
// used unless another compression is given.
func EncodeSnapshot(moves []movement.RepMovement, compression ...Compression) ([]byte, error) {
	c := CompressionSnappy
	if len(compression) > 0 {
		c = compression[0]
	}

	var body []byte
	for i := range moves {
		body = protowire.AppendTag(body, snapshotMovementField, protowire.BytesType)
		body = protowire.AppendBytes(body, snapshotMovementSchema(&moves[i]).append(nil))
	}

	frame := []byte{byte(c)}
	switch c {
	case CompressionSnappy:
		return append(frame, snappy.Encode(nil, body)...), nil
	case CompressionZstd:
		enc, err := zstdEncoder()
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		return enc.EncodeAll(body, frame), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, c)
	}
}

// DecodeSnapshot reverses EncodeSnapshot.
func DecodeSnapshot(frame []byte) ([]movement.RepMovement, error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrCorruptSnapshot)
	}

	var (
		body []byte
		err  error
	)
	switch c := Compression(frame[0]); c {
	case CompressionSnappy:
		body, err = snappy.Decode(nil, frame[1:])
	case CompressionZstd:
		var dec *zstd.Decoder
		if dec, err = zstdDecoder(); err == nil {
			body, err = dec.DecodeAll(frame[1:], nil)
		}
	default:
		return nil, fmt.Errorf("%w: unknown %s", ErrCorruptSnapshot, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	var moves []movement.RepMovement
	for len(body) > 0 {
		num, wt, n := protowire.ConsumeTag(body)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w: %v", ErrCorruptSnapshot, ErrTruncated, protowire.ParseError(n))
		}
		if num != snapshotMovementField || wt != protowire.BytesType {
			return nil, fmt.Errorf("%w: %w: #%d", ErrCorruptSnapshot, ErrUnknownField, num)
		}
		body = body[n:]

		msg, n := protowire.ConsumeBytes(body)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w: %v", ErrCorruptSnapshot, ErrTruncated, protowire.ParseError(n))
		}
		body = body[n:]

		var m movement.RepMovement
		if err := snapshotMovementSchema(&m).decode(msg); err != nil {
			return nil, fmt.Errorf("%w: movement %d: %w", ErrCorruptSnapshot, len(moves), err)
		}
		moves = append(moves, m)
	}
	return moves, nil
}
