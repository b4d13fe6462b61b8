package log

import (
	"fmt"
	"time"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 16

// EntryZ is a chainable log builder: Module.DebugZ("msg").Hex16("addr",
// addr).End(). It is allocated only when its level is enabled for the
// module and is nil otherwise, so every call in a disabled chain is a no-op
// on a nil receiver and the fields are never formatted.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [maxZFields]ZField
	zfidx int
}

func NewEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) add(f ZField) *EntryZ {
	if e == nil {
		return nil
	}
	if e.zfidx >= len(e.zfbuf) {
		return e
	}
	e.zfbuf[e.zfidx] = f
	e.zfidx++
	return e
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.add(ZField{Type: FieldTypeBool, Key: key, Boolean: val})
}

func (e *EntryZ) String(key string, val string) *EntryZ {
	return e.add(ZField{Type: FieldTypeString, Key: key, String: val})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex8, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex16, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex32(key string, val uint32) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex32, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Hex64(key string, val uint64) *EntryZ {
	return e.add(ZField{Type: FieldTypeHex64, Key: key, Integer: val})
}

func (e *EntryZ) Int(key string, val int64) *EntryZ {
	return e.add(ZField{Type: FieldTypeInt, Key: key, Integer: uint64(val)})
}

func (e *EntryZ) Uint(key string, val uint64) *EntryZ {
	return e.add(ZField{Type: FieldTypeUint, Key: key, Integer: val})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.add(ZField{Type: FieldTypeError, Key: key, Error: err})
}

func (e *EntryZ) Duration(key string, val time.Duration) *EntryZ {
	return e.add(ZField{Type: FieldTypeDuration, Key: key, Duration: val})
}

func (e *EntryZ) Stringer(key string, val fmt.Stringer) *EntryZ {
	return e.add(ZField{Type: FieldTypeStringer, Key: key, Interface: val})
}

func (e *EntryZ) Blob(key string, val []byte) *EntryZ {
	return e.add(ZField{Type: FieldTypeBlob, Key: key, Blob: val})
}

// End flushes the entry to the standard logger. A nil receiver (built by a
// disabled Module.XxxZ call) is a no-op.
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := 0; i < e.zfidx; i++ {
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
}
