// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwbench

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(c *Circuit)
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pin fields must be of type int and buses arrays of int. The Update method
// receives the pin numbers in these fields.
//
// t must be a pointer to a struct. Every time the part is mounted, a new
// instance of the struct is created as a copy of *t, so that non-pin fields
// of t can be used as part parameters. A nil pointer yields zero valued
// instances. The part name is the struct type name.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		panic(errors.Errorf("unsupported type %v: must be a pointer to a struct", typ))
	}
	typ = typ.Elem()
	var tmpl reflect.Value
	if v := reflect.ValueOf(t); !v.IsNil() {
		tmpl = v.Elem()
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}
	fields := pinFields(typ)
	for _, f := range fields {
		pins := []string{f.pin}
		if f.bus > 0 {
			pins = pins[:0]
			for i := 0; i < f.bus; i++ {
				pins = append(pins, BusPinName(f.pin, i))
			}
		}
		if f.input {
			sp.Inputs = append(sp.Inputs, pins...)
		} else {
			sp.Outputs = append(sp.Outputs, pins...)
		}
	}
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		if tmpl.IsValid() {
			e.Set(tmpl)
		}
		for _, f := range fields {
			fv := e.Field(f.index)
			if f.bus > 0 {
				for i := 0; i < f.bus; i++ {
					fv.Index(i).SetInt(int64(s.Pin(BusPinName(f.pin, i))))
				}
			} else {
				fv.SetInt(int64(s.Pin(f.pin)))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
	return sp
}

type pinField struct {
	index int
	pin   string
	input bool
	bus   int // bus size, 0 for single pins
}

func pinFields(typ reflect.Type) []pinField {
	var fields []pinField
	n := typ.NumField()
	for i := 0; i < n; i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		pf := pinField{index: i, pin: strings.ToLower(f.Name)}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pf.pin = tv[1]
		}
		switch tv[0] {
		case "in":
			pf.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if f.PkgPath != "" {
			panic(errors.Errorf("pin field %q in %q must be exported", f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			if ft.Len() == 0 {
				panic(errors.Errorf("empty bus %q in %q", f.Name, typ.Name()))
			}
			pf.bus = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %s for field %q in %q", ft, f.Name, typ.Name()))
		}
		fields = append(fields, pf)
	}
	return fields
}
