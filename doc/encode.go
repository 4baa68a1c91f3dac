package doc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	tagFloat    = 0x01
	tagString   = 0x02
	tagDoc      = 0x03
	tagList     = 0x04
	tagBinary   = 0x05
	tagID       = 0x06
	tagBool     = 0x07
	tagDateTime = 0x08
	tagNull     = 0x09
	tagInt32    = 0x0A
	tagInt64    = 0x0B
	tagRef      = 0x0C
)

var (
	ErrNilValue   = errors.New("cannot encode nil value")
	ErrInvalidKey = errors.New("document key cannot contain NUL")
)

// Marshal encodes a document into the wire format: a little-endian int32
// total size, the elements, and a zero terminator. Keys are encoded as
// NUL-terminated strings, so a key containing NUL is rejected.
func Marshal(d *Doc) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil document", ErrNilValue)
	}

	var buf bytes.Buffer
	buf.Write(make([]byte, 4))
	for k, v := range d.All() {
		if err := encodeElement(&buf, k, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(0)

	out := buf.Bytes()
	binary.LittleEndian.PutUint32(out[:4], uint32(len(out)))
	return out, nil
}

func encodeElement(buf *bytes.Buffer, key string, v Value) error {
	if strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	tag, err := tagOf(v)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	buf.WriteByte(tag)
	buf.WriteString(key)
	buf.WriteByte(0)
	return encodePayload(buf, v)
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	tag, err := tagOf(v)
	if err != nil {
		return err
	}
	buf.WriteByte(tag)
	return encodePayload(buf, v)
}

func tagOf(v Value) (byte, error) {
	switch v.(type) {
	case nil:
		return 0, ErrNilValue
	case Float:
		return tagFloat, nil
	case String:
		return tagString, nil
	case *Doc:
		return tagDoc, nil
	case List:
		return tagList, nil
	case Binary:
		return tagBinary, nil
	case ID:
		return tagID, nil
	case Bool:
		return tagBool, nil
	case DateTime:
		return tagDateTime, nil
	case Null:
		return tagNull, nil
	case Int32:
		return tagInt32, nil
	case Int64:
		return tagInt64, nil
	case Ref:
		return tagRef, nil
	}
	return 0, fmt.Errorf("cannot encode value of type %T", v)
}

func encodePayload(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Float:
		writeUint64(buf, math.Float64bits(float64(val)))
	case String:
		writeInt32(buf, int32(len(val)))
		buf.WriteString(string(val))
	case *Doc:
		sub, err := Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(sub)
	case List:
		writeInt32(buf, int32(len(val)))
		for _, elem := range val {
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
	case Binary:
		writeInt32(buf, int32(len(val.Data)))
		buf.WriteByte(val.Subtype)
		buf.Write(val.Data)
	case ID:
		buf.Write(val[:])
	case Bool:
		if val {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case DateTime:
		writeUint64(buf, uint64(int64(val)))
	case Null:
	case Int32:
		writeInt32(buf, int32(val))
	case Int64:
		writeUint64(buf, uint64(int64(val)))
	case Ref:
		writeInt32(buf, int32(len(val.Collection)))
		buf.WriteString(val.Collection)
		if err := encodeValue(buf, val.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeInt32(buf *bytes.Buffer, n int32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(n))
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, n uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	buf.Write(b[:])
}
