package serialization

import (
	"io"

	"github.com/kaspanet/gentxset/domain/txset/model/externalapi"
	"github.com/kaspanet/gentxset/util/binaryserializer"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

// ErrMalformed is returned when a data source can't be decoded into a
// canonical value.
var ErrMalformed = errors.New("ErrMalformed")

// WriteElement writes the big endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	// Attempt to write the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case int32:
		return binaryserializer.PutUint32(w, uint32(e))

	case uint32:
		return binaryserializer.PutUint32(w, e)

	case int64:
		return binaryserializer.PutUint64(w, uint64(e))

	case uint64:
		return binaryserializer.PutUint64(w, e)

	case uint8:
		return binaryserializer.PutUint8(w, e)

	case bool:
		if e {
			return binaryserializer.PutUint8(w, 0x01)
		}
		return binaryserializer.PutUint8(w, 0x00)

	case externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)

	case *externalapi.DomainHash:
		_, err := w.Write(e.ByteSlice())
		return errors.WithStack(err)

	case externalapi.DomainAccountID:
		_, err := w.Write(e[:])
		return errors.WithStack(err)

	case *externalapi.DomainAccountID:
		_, err := w.Write(e[:])
		return errors.WithStack(err)
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteVarBytes writes a uint32 length prefix followed by the bytes themselves.
func WriteVarBytes(w io.Writer, bytes []byte) error {
	err := binaryserializer.PutUint32(w, uint32(len(bytes)))
	if err != nil {
		return err
	}
	_, err = w.Write(bytes)
	return errors.WithStack(err)
}

// ReadElement reads the next sequence of bytes from r using big endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	// Attempt to read the element based on the concrete type via fast
	// type assertions first.
	switch e := element.(type) {
	case *int32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = int32(rv)
		return nil

	case *uint32:
		rv, err := binaryserializer.Uint32(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *int64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = int64(rv)
		return nil

	case *uint64:
		rv, err := binaryserializer.Uint64(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *uint8:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		*e = rv
		return nil

	case *bool:
		rv, err := binaryserializer.Uint8(r)
		if err != nil {
			return err
		}
		if rv == 0x00 {
			*e = false
		} else if rv == 0x01 {
			*e = true
		} else {
			return errors.Wrapf(ErrMalformed, "in order to keep serialization canonical, true has to"+
				" always be 0x01")
		}
		return nil

	case *externalapi.DomainHash:
		var hashBytes [externalapi.DomainHashSize]byte
		_, err := io.ReadFull(r, hashBytes[:])
		if err != nil {
			return errors.WithStack(err)
		}
		*e = *externalapi.NewDomainHashFromByteArray(&hashBytes)
		return nil

	case *externalapi.DomainAccountID:
		_, err := io.ReadFull(r, e[:])
		if err != nil {
			return errors.WithStack(err)
		}
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadVarBytes reads a uint32 length prefix and then that many bytes.
// A length above maxLength is rejected before anything is allocated.
func ReadVarBytes(r io.Reader, maxLength uint32) ([]byte, error) {
	length, err := binaryserializer.Uint32(r)
	if err != nil {
		return nil, err
	}
	if length > maxLength {
		return nil, errors.Wrapf(ErrMalformed, "byte array of length %d is longer than the "+
			"maximum allowed %d", length, maxLength)
	}
	bytes := make([]byte, length)
	_, err = io.ReadFull(r, bytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return bytes, nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, ErrMalformed)
}
