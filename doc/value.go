// Package doc defines the ordered-document value domain: a closed set of
// value kinds, an insertion-ordered document container, and a binary wire
// codec for round-tripping documents.
package doc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value is the closed set of kinds a document field can hold. Only types in
// this package implement it; callers branch with a type switch.
type Value interface {
	isValue()
	String() string
}

type Null struct{}

type Bool bool

type Int32 int32

type Int64 int64

type Float float64

type String string

// Binary is a byte payload tagged with a subtype. Two binaries are equal only
// if both subtype and content match.
type Binary struct {
	Subtype byte
	Data    []byte
}

// DateTime is a moment in UTC with millisecond resolution, stored as
// milliseconds since the Unix epoch.
type DateTime int64

// ID is an opaque 16-byte unique identifier.
type ID [16]byte

type List []Value

// Ref pairs a collection name with a referenced value. It is a scalar as far
// as simplification is concerned: shrinking never descends into it.
type Ref struct {
	Collection string
	Value      Value
}

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Int32) isValue()    {}
func (Int64) isValue()    {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Binary) isValue()   {}
func (DateTime) isValue() {}
func (ID) isValue()       {}
func (List) isValue()     {}
func (Ref) isValue()      {}

func NewDateTime(t time.Time) DateTime {
	return DateTime(t.UnixMilli())
}

func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d)).UTC()
}

func NewID() ID {
	return ID(uuid.New())
}

func (Null) String() string { return "null" }

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

func (n Int32) String() string { return strconv.FormatInt(int64(n), 10) }

func (n Int64) String() string { return "int64(" + strconv.FormatInt(int64(n), 10) + ")" }

func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

func (s String) String() string { return strconv.Quote(string(s)) }

func (b Binary) String() string {
	return fmt.Sprintf("binary(%d, %q)", b.Subtype, b.Data)
}

func (d DateTime) String() string {
	return d.Time().Format("2006-01-02T15:04:05.000Z")
}

func (id ID) String() string {
	return "id(" + uuid.UUID(id).String() + ")"
}

func (l List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(valueString(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (r Ref) String() string {
	return fmt.Sprintf("ref(%q, %s)", r.Collection, valueString(r.Value))
}

func valueString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
