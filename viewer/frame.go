// Package viewer streams rendered frames to browsers over websockets and lets them steer
// an interactive renderer.
//
// Every frame is one binary message: width and height as little endian uint32 followed by
// width·height·4 RGBA bytes, row-major from the top left corner.
package viewer

import (
	"Frustals/pixel"
	"encoding/binary"
	"errors"
	"fmt"
)

const headerSize = 8

var ErrShortFrame = errors.New("frame message is shorter than its header announces")

func EncodeFrame(frame *pixel.Buffer) []byte {
	message := make([]byte, headerSize+len(frame.Bytes()))
	binary.LittleEndian.PutUint32(message[0:4], uint32(frame.Width()))
	binary.LittleEndian.PutUint32(message[4:8], uint32(frame.Height()))
	copy(message[headerSize:], frame.Bytes())
	return message
}

func DecodeFrame(message []byte) (width int, height int, rgba []byte, err error) {
	if len(message) < headerSize {
		return 0, 0, nil, ErrShortFrame
	}
	width = int(binary.LittleEndian.Uint32(message[0:4]))
	height = int(binary.LittleEndian.Uint32(message[4:8]))
	rgba = message[headerSize:]
	if len(rgba) != width*height*pixel.BytesPerPixel {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d with %d bytes", ErrShortFrame, width, height, len(rgba))
	}
	return width, height, rgba, nil
}
