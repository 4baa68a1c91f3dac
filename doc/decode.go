package doc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrCorrupt = errors.New("corrupt document data")

// Unmarshal decodes a document produced by Marshal. Decoding is strict:
// truncation, size mismatches, unknown tags, and trailing bytes are errors.
func Unmarshal(data []byte) (*Doc, error) {
	d, rest, err := decodeDoc(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(rest))
	}
	return d, nil
}

func decodeDoc(data []byte) (*Doc, []byte, error) {
	if len(data) < 5 {
		return nil, nil, fmt.Errorf("%w: document shorter than minimum frame", ErrCorrupt)
	}
	size := int(int32(binary.LittleEndian.Uint32(data[:4])))
	if size < 5 || size > len(data) {
		return nil, nil, fmt.Errorf("%w: declared size %d outside buffer of %d bytes", ErrCorrupt, size, len(data))
	}
	if data[size-1] != 0 {
		return nil, nil, fmt.Errorf("%w: missing document terminator", ErrCorrupt)
	}

	d := New()
	elements := data[4 : size-1]
	for len(elements) > 0 {
		key, v, rest, err := decodeElement(elements)
		if err != nil {
			return nil, nil, err
		}
		d.Set(key, v)
		elements = rest
	}
	return d, data[size:], nil
}

func decodeElement(b []byte) (string, Value, []byte, error) {
	tag := b[0]
	b = b[1:]

	end := bytes.IndexByte(b, 0)
	if end < 0 {
		return "", nil, nil, fmt.Errorf("%w: unterminated element key", ErrCorrupt)
	}
	key := string(b[:end])
	b = b[end+1:]

	v, rest, err := decodePayload(tag, b)
	if err != nil {
		return "", nil, nil, err
	}
	return key, v, rest, nil
}

func decodePayload(tag byte, b []byte) (Value, []byte, error) {
	switch tag {
	case tagFloat:
		if err := need(b, 8); err != nil {
			return nil, nil, err
		}
		return Float(math.Float64frombits(binary.LittleEndian.Uint64(b[:8]))), b[8:], nil

	case tagString:
		n, b, err := readLength(b)
		if err != nil {
			return nil, nil, err
		}
		return String(b[:n]), b[n:], nil

	case tagDoc:
		return decodeDoc(b)

	case tagList:
		if err := need(b, 4); err != nil {
			return nil, nil, err
		}
		count := int(int32(binary.LittleEndian.Uint32(b[:4])))
		b = b[4:]
		if count < 0 || count > len(b) {
			return nil, nil, fmt.Errorf("%w: implausible list count %d", ErrCorrupt, count)
		}
		list := make(List, 0, count)
		for range count {
			if err := need(b, 1); err != nil {
				return nil, nil, err
			}
			elem, rest, err := decodePayload(b[0], b[1:])
			if err != nil {
				return nil, nil, err
			}
			list = append(list, elem)
			b = rest
		}
		return list, b, nil

	case tagBinary:
		n, b, err := readLength(b)
		if err != nil {
			return nil, nil, err
		}
		if err := need(b, n+1); err != nil {
			return nil, nil, err
		}
		return Binary{Subtype: b[0], Data: bytes.Clone(b[1 : 1+n])}, b[1+n:], nil

	case tagID:
		if err := need(b, 16); err != nil {
			return nil, nil, err
		}
		var id ID
		copy(id[:], b[:16])
		return id, b[16:], nil

	case tagBool:
		if err := need(b, 1); err != nil {
			return nil, nil, err
		}
		switch b[0] {
		case 0:
			return Bool(false), b[1:], nil
		case 1:
			return Bool(true), b[1:], nil
		}
		return nil, nil, fmt.Errorf("%w: boolean byte 0x%02X", ErrCorrupt, b[0])

	case tagDateTime:
		if err := need(b, 8); err != nil {
			return nil, nil, err
		}
		return DateTime(int64(binary.LittleEndian.Uint64(b[:8]))), b[8:], nil

	case tagNull:
		return Null{}, b, nil

	case tagInt32:
		if err := need(b, 4); err != nil {
			return nil, nil, err
		}
		return Int32(int32(binary.LittleEndian.Uint32(b[:4]))), b[4:], nil

	case tagInt64:
		if err := need(b, 8); err != nil {
			return nil, nil, err
		}
		return Int64(int64(binary.LittleEndian.Uint64(b[:8]))), b[8:], nil

	case tagRef:
		n, b, err := readLength(b)
		if err != nil {
			return nil, nil, err
		}
		collection := string(b[:n])
		b = b[n:]
		if err := need(b, 1); err != nil {
			return nil, nil, err
		}
		inner, rest, err := decodePayload(b[0], b[1:])
		if err != nil {
			return nil, nil, err
		}
		return Ref{Collection: collection, Value: inner}, rest, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown tag 0x%02X", ErrCorrupt, tag)
}

func readLength(b []byte) (int, []byte, error) {
	if err := need(b, 4); err != nil {
		return 0, nil, err
	}
	n := int(int32(binary.LittleEndian.Uint32(b[:4])))
	b = b[4:]
	if n < 0 || n > len(b) {
		return 0, nil, fmt.Errorf("%w: implausible length %d", ErrCorrupt, n)
	}
	return n, b, nil
}

func need(b []byte, n int) error {
	if len(b) < n {
		return fmt.Errorf("%w: truncated value", ErrCorrupt)
	}
	return nil
}
