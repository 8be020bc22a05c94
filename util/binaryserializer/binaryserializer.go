// Package binaryserializer reads and writes the fixed-width big-endian
// integers transaction sets are encoded with.
package binaryserializer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// byteOrder is the byte order of every fixed-width integer on the wire.
var byteOrder = binary.BigEndian

// readFull fills buf from r. A reader that ends before buf is full yields
// io.EOF if nothing was read and io.ErrUnexpectedEOF otherwise.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return errors.WithStack(err)
}

// Uint8 reads a single byte from r.
func Uint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	err := readFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Uint32 reads a big-endian uint32 from r.
func Uint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	err := readFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint32(buf[:]), nil
}

// Uint64 reads a big-endian uint64 from r.
func Uint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	err := readFull(r, buf[:])
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint64(buf[:]), nil
}

// PutUint8 writes val to w.
func PutUint8(w io.Writer, val uint8) error {
	_, err := w.Write([]byte{val})
	return errors.WithStack(err)
}

// PutUint32 writes val to w in big-endian byte order.
func PutUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	byteOrder.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}

// PutUint64 writes val to w in big-endian byte order.
func PutUint64(w io.Writer, val uint64) error {
	var buf [8]byte
	byteOrder.PutUint64(buf[:], val)
	_, err := w.Write(buf[:])
	return errors.WithStack(err)
}
