package binaryserializer

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkg/errors"
)

func TestBigEndianRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := PutUint8(buf, 0xab); err != nil {
		t.Fatalf("PutUint8: %s", err)
	}
	if err := PutUint32(buf, 0x01020304); err != nil {
		t.Fatalf("PutUint32: %s", err)
	}
	if err := PutUint64(buf, 0x0102030405060708); err != nil {
		t.Fatalf("PutUint64: %s", err)
	}

	expected := []byte{0xab, 0x01, 0x02, 0x03, 0x04, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Fatalf("TestBigEndianRoundTrip: Expected %x, got %x", expected, buf.Bytes())
	}

	r := bytes.NewReader(buf.Bytes())
	u8, err := Uint8(r)
	if err != nil || u8 != 0xab {
		t.Fatalf("Uint8: got %x, %v", u8, err)
	}
	u32, err := Uint32(r)
	if err != nil || u32 != 0x01020304 {
		t.Fatalf("Uint32: got %x, %v", u32, err)
	}
	u64, err := Uint64(r)
	if err != nil || u64 != 0x0102030405060708 {
		t.Fatalf("Uint64: got %x, %v", u64, err)
	}
}

func TestShortRead(t *testing.T) {
	_, err := Uint64(bytes.NewReader([]byte{1, 2, 3}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("TestShortRead: Expected io.ErrUnexpectedEOF, got %v", err)
	}
	_, err = Uint32(bytes.NewReader(nil))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("TestShortRead: Expected io.EOF, got %v", err)
	}
}
