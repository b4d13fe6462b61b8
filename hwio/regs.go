package hwio

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Register-bank declaration DSL: struct fields of type Reg8, Mem or Manual
// tagged with `hwio:"..."` are mapped into a Table by MapBank, instead of
// calling MapReg8/MapMem/MapManual one by one.
//
// Recognized tag options:
//
//	offset=0xNN   byte offset within the bank (required)
//	bank=N        bank ordinal this field belongs to (default 0)
//	size=N        Mem: physical buffer size in bytes; Manual: mapped size in bytes
//	vsize=N       virtual (mirrored) size in bytes, for Mem fields (default size)
//	rwmask=0xNN   Reg8.RoMask: bits that writes cannot change
//	reset=0xNN    Reg8 initial Value
//	readonly      Reg8/Manual: reject writes
//	writeonly     Reg8/Manual: reject reads
//	rcb           wire a "Read"+FIELDNAME method as ReadCb
//	pcb           wire a "Peek"+FIELDNAME method as PeekCb
//	wcb           wire a "Write"+FIELDNAME method as WriteCb
type regEntry struct {
	offset uint16
	regPtr any
}

type tagOpts struct {
	offset   uint16
	bank     int
	size     int
	vsize    int
	rwmask   uint8
	haveMask bool
	reset    uint8
	readonly bool
	writeonly bool
	rcb, pcb, wcb bool
}

func parseTag(tag string) (tagOpts, error) {
	var o tagOpts
	haveOffset := false
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, hasVal := strings.Cut(part, "=")
		switch key {
		case "offset":
			n, err := strconv.ParseUint(val, 0, 16)
			if err != nil {
				return o, fmt.Errorf("bad offset %q: %w", val, err)
			}
			o.offset = uint16(n)
			haveOffset = true
		case "bank":
			n, err := strconv.ParseInt(val, 0, 0)
			if err != nil {
				return o, fmt.Errorf("bad bank %q: %w", val, err)
			}
			o.bank = int(n)
		case "size":
			n, err := strconv.ParseInt(val, 0, 0)
			if err != nil {
				return o, fmt.Errorf("bad size %q: %w", val, err)
			}
			o.size = int(n)
		case "vsize":
			n, err := strconv.ParseInt(val, 0, 0)
			if err != nil {
				return o, fmt.Errorf("bad vsize %q: %w", val, err)
			}
			o.vsize = int(n)
		case "rwmask":
			n, err := strconv.ParseUint(val, 0, 8)
			if err != nil {
				return o, fmt.Errorf("bad rwmask %q: %w", val, err)
			}
			o.rwmask = uint8(n)
			o.haveMask = true
		case "reset":
			n, err := strconv.ParseUint(val, 0, 8)
			if err != nil {
				return o, fmt.Errorf("bad reset %q: %w", val, err)
			}
			o.reset = uint8(n)
		case "readonly":
			o.readonly = true
		case "writeonly":
			o.writeonly = true
		case "rcb":
			o.rcb = true
		case "pcb":
			o.pcb = true
		case "wcb":
			o.wcb = true
		default:
			if !hasVal {
				return o, fmt.Errorf("unknown hwio tag option %q", key)
			}
			return o, fmt.Errorf("unknown hwio tag option %q", key)
		}
	}
	if !haveOffset {
		return o, fmt.Errorf("missing offset= in hwio tag %q", tag)
	}
	return o, nil
}

// configureField wires up callbacks, masks and reset values on a single
// tagged field. It is idempotent: calling it twice on the same field leaves
// it in the same state, aside from re-applying "reset". MapBank, UnmapBank
// and MustInitRegs all run it on every tagged field, so each of them
// returns every tagged Reg8's Value to its reset value.
func configureField(bankVal reflect.Value, field reflect.StructField, fv reflect.Value, opts tagOpts) (any, error) {
	name := strings.ToUpper(field.Name)

	switch reg := fv.Addr().Interface().(type) {
	case *Reg8:
		reg.Name = field.Name
		reg.Value = opts.reset
		if opts.haveMask {
			reg.RoMask = opts.rwmask
		}
		if opts.readonly {
			reg.Flags |= ReadOnlyFlag
		}
		if opts.writeonly {
			reg.Flags |= WriteOnlyFlag
		}
		if opts.rcb {
			cb, err := lookupMethod[func(uint8) uint8](bankVal, "Read"+name)
			if err != nil {
				return nil, err
			}
			reg.ReadCb = cb
		}
		if opts.pcb {
			cb, err := lookupMethod[func(uint8) uint8](bankVal, "Peek"+name)
			if err != nil {
				return nil, err
			}
			reg.PeekCb = cb
		}
		if opts.wcb {
			cb, err := lookupMethod[func(uint8, uint8)](bankVal, "Write"+name)
			if err != nil {
				return nil, err
			}
			reg.WriteCb = cb
		}
		return reg, nil

	case *Mem:
		if reg.Data == nil && opts.size > 0 {
			reg.Data = make([]byte, opts.size)
		}
		if opts.vsize > 0 {
			reg.VSize = opts.vsize
		} else if reg.VSize == 0 {
			reg.VSize = len(reg.Data)
		}
		if opts.readonly {
			reg.Flags |= MemFlag8ReadOnly
		}
		if opts.wcb {
			cb, err := lookupMethod[func(uint16, uint8)](bankVal, "Write"+name)
			if err != nil {
				return nil, err
			}
			reg.WriteCb = cb
		}
		return reg, nil

	case *Manual:
		reg.Name = field.Name
		if opts.size > 0 {
			reg.Size = opts.size
		}
		if opts.readonly {
			reg.Flags |= ReadOnlyFlag
		}
		if opts.writeonly {
			reg.Flags |= WriteOnlyFlag
		}
		if opts.rcb {
			cb, err := lookupMethod[func(uint16) uint8](bankVal, "Read"+name)
			if err != nil {
				return nil, err
			}
			reg.ReadCb = cb
		}
		if opts.pcb {
			cb, err := lookupMethod[func(uint16) uint8](bankVal, "Peek"+name)
			if err != nil {
				return nil, err
			}
			reg.PeekCb = cb
		}
		if opts.wcb {
			cb, err := lookupMethod[func(uint16, uint8)](bankVal, "Write"+name)
			if err != nil {
				return nil, err
			}
			reg.WriteCb = cb
		}
		return reg, nil

	default:
		return nil, fmt.Errorf("unsupported hwio field type %s (%s)", field.Type, field.Name)
	}
}

func lookupMethod[T any](bankVal reflect.Value, name string) (T, error) {
	var zero T
	m := bankVal.MethodByName(name)
	if !m.IsValid() {
		return zero, fmt.Errorf("missing callback method %s", name)
	}
	fn, ok := m.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("callback method %s has wrong signature", name)
	}
	return fn, nil
}

func walkTaggedFields(bank any, fn func(field reflect.StructField, fv reflect.Value, opts tagOpts) error) error {
	v := reflect.ValueOf(bank)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("hwio: bank must be a pointer to struct, got %T", bank)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("hwio")
		if !ok {
			continue
		}
		opts, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("hwio: field %s: %w", field.Name, err)
		}
		if err := fn(field, v.Field(i), opts); err != nil {
			return fmt.Errorf("hwio: field %s: %w", field.Name, err)
		}
	}
	return nil
}

// MustInitRegs configures callbacks, masks and reset values for every
// hwio-tagged field of bank, regardless of bank number. Call it once after
// constructing a register-bank struct, before any MapBank call.
func MustInitRegs(bank any) {
	bankVal := reflect.ValueOf(bank)
	err := walkTaggedFields(bank, func(field reflect.StructField, fv reflect.Value, opts tagOpts) error {
		_, err := configureField(bankVal, field, fv, opts)
		return err
	})
	if err != nil {
		panic(err)
	}
}

// bankGetRegs returns the tagged fields of bank belonging to bankNum, each
// configured and paired with its address offset.
func bankGetRegs(bank any, bankNum int) ([]regEntry, error) {
	bankVal := reflect.ValueOf(bank)
	var regs []regEntry
	err := walkTaggedFields(bank, func(field reflect.StructField, fv reflect.Value, opts tagOpts) error {
		regPtr, err := configureField(bankVal, field, fv, opts)
		if err != nil {
			return err
		}
		if opts.bank == bankNum {
			regs = append(regs, regEntry{offset: opts.offset, regPtr: regPtr})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return regs, nil
}
