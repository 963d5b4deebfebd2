package input

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// GRPCHeaderLen is the length prefix of one gRPC message: a compressed flag
// byte and a big-endian uint32 length.
const GRPCHeaderLen = 5

var (
	ErrShortFrameHeader  = errors.New("grpc: short frame header")
	ErrShortFramePayload = errors.New("grpc: short frame payload")
	ErrBadFrameFlag      = errors.New("grpc: invalid compressed flag")
)

// Frame is one length-prefixed gRPC message.
type Frame struct {
	Compressed bool
	Offset     int // offset of the frame header in the stream
	Payload    []byte
}

// SplitGRPCFrames splits a captured gRPC body into its messages.
func SplitGRPCFrames(data []byte) ([]Frame, error) {
	frames := make([]Frame, 0)
	i := 0
	for i < len(data) {
		if len(data)-i < GRPCHeaderLen {
			return nil, fmt.Errorf("%w at offset %d", ErrShortFrameHeader, i)
		}
		flag := data[i]
		if flag > 1 {
			return nil, fmt.Errorf("%w %#x at offset %d", ErrBadFrameFlag, flag, i)
		}
		l := binary.BigEndian.Uint32(data[i+1 : i+GRPCHeaderLen])
		if uint64(len(data)-i-GRPCHeaderLen) < uint64(l) {
			return nil, fmt.Errorf("%w at offset %d: need %d bytes, have %d", ErrShortFramePayload, i, l, len(data)-i-GRPCHeaderLen)
		}
		start := i + GRPCHeaderLen
		frames = append(frames, Frame{
			Compressed: flag == 1,
			Offset:     i,
			Payload:    data[start : start+int(l)],
		})
		i = start + int(l)
	}
	return frames, nil
}

// Message returns the frame payload, inflated with c when the frame is
// flagged compressed. CompressionAuto sniffs each frame. A frame with no
// recognizable magic number, or c of CompressionNone, is gzip, gRPC's
// default message encoding.
func (f Frame) Message(c Compression) ([]byte, error) {
	if !f.Compressed {
		return f.Payload, nil
	}
	if c == CompressionAuto {
		c = Sniff(f.Payload)
	}
	if c == CompressionNone {
		c = CompressionGzip
	}
	out, err := Decompress(f.Payload, c)
	if err != nil {
		return nil, fmt.Errorf("grpc frame at offset %d: %w", f.Offset, err)
	}
	return out, nil
}
