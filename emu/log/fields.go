package log

import (
	"fmt"
	"strconv"
)

type fieldKind uint8

const (
	kindString fieldKind = iota
	kindBool
	kindInt
	kindUint
	kindHex
	kindError
	kindStringer
)

// ZField is one typed key/value pair attached to an entry. Values are kept
// in native form and only formatted when the entry is emitted.
type ZField struct {
	Key string

	kind  fieldKind
	width int // hex digit count, kindHex only
	num   uint64
	str   string
	err   error
	iface any
}

// Value formats the field value.
func (f *ZField) Value() string {
	switch f.kind {
	case kindString:
		return f.str
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindInt:
		return strconv.FormatInt(int64(f.num), 10)
	case kindUint:
		return strconv.FormatUint(f.num, 10)
	case kindHex:
		return fmt.Sprintf("%0*x", f.width, f.num)
	case kindError:
		if f.err == nil {
			return "<nil>"
		}
		return f.err.Error()
	case kindStringer:
		return f.iface.(fmt.Stringer).String()
	}
	return ""
}
