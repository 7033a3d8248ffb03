package log

import (
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a log entry under construction. It collects typed fields without
// any allocation or formatting; nothing is formatted until End() and only if
// the originating module is enabled at the entry level. A nil *EntryZ is
// valid and all its methods are no-ops, so call sites pay nothing when their
// module is disabled.
type EntryZ struct {
	lvl   Level
	msg   string
	mod   Module
	zfbuf [maxZFields]ZField
	zfidx int
}

var zpool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func newEntryZ() *EntryZ {
	e := zpool.Get().(*EntryZ)
	e.zfidx = 0
	return e
}

// next claims the next field slot. Extraneous fields are silently dropped
// into a scratch value.
func (e *EntryZ) next(key string, kind fieldKind) *ZField {
	if e.zfidx == maxZFields {
		return &ZField{}
	}
	f := &e.zfbuf[e.zfidx]
	e.zfidx++
	*f = ZField{Key: key, kind: kind}
	return f
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if e != nil {
		f := e.next(key, kindBool)
		if val {
			f.num = 1
		}
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	if e != nil {
		e.next(key, kindString).str = val
	}
	return e
}

func (e *EntryZ) Int(key string, val int) *EntryZ {
	if e != nil {
		e.next(key, kindInt).num = uint64(val)
	}
	return e
}

func (e *EntryZ) Uint8(key string, val uint8) *EntryZ   { return e.uint(key, uint64(val)) }
func (e *EntryZ) Uint16(key string, val uint16) *EntryZ { return e.uint(key, uint64(val)) }
func (e *EntryZ) Uint64(key string, val uint64) *EntryZ { return e.uint(key, val) }

func (e *EntryZ) uint(key string, val uint64) *EntryZ {
	if e != nil {
		e.next(key, kindUint).num = val
	}
	return e
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ   { return e.hex(key, uint64(val), 2) }
func (e *EntryZ) Hex16(key string, val uint16) *EntryZ { return e.hex(key, uint64(val), 4) }
func (e *EntryZ) Hex32(key string, val uint32) *EntryZ { return e.hex(key, uint64(val), 8) }

func (e *EntryZ) hex(key string, val uint64, digits int) *EntryZ {
	if e != nil {
		f := e.next(key, kindHex)
		f.num = val
		f.width = digits
	}
	return e
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	if e != nil {
		e.next(key, kindError).err = err
	}
	return e
}

func (e *EntryZ) Stringer(key string, val any) *EntryZ {
	if e != nil {
		e.next(key, kindStringer).iface = val
	}
	return e
}

// End emits the entry and recycles it. The entry must not be used afterwards.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(e)
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].Key] = e.zfbuf[i].Value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}

	zpool.Put(e)
}
