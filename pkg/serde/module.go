// Package serde maps Go values onto the little-endian table encoding used by
// the engine data files.
//
// Encoding rules:
//   - uint8/int8/bool: one byte
//   - uint16/int16: two bytes
//   - uint32/int32: four bytes
//   - string: the raw bytes followed by NUL
//   - opt.Option[string]: as string, None is the empty string
//   - [N]T: N elements, no prefix
//   - []T: uint16 element count, then the elements
//   - struct: fields in declaration order
//
// Types can take over their own encoding by implementing Marshalable (value
// receiver) and Unmarshalable (pointer receiver).
package serde

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cfoust/nancy/pkg/stream"

	opt "github.com/repeale/fp-go/option"
)

type Marshalable interface {
	Marshal(s *stream.Stream) error
}

type Unmarshalable interface {
	Unmarshal(s *stream.Stream) error
}

var MARSHALABLE = reflect.TypeOf((*Marshalable)(nil)).Elem()
var UNMARSHALABLE = reflect.TypeOf((*Unmarshalable)(nil)).Elem()

var optionalString = reflect.TypeOf(opt.None[string]())

// Receivers have to be consistent for the casts below to work: Marshalable
// must be implemented on the value and Unmarshalable on the pointer.
func checkInterfaces(type_ reflect.Type, value reflect.Value) error {
	if _, ok := value.Interface().(Marshalable); ok {
		if type_.Kind() == reflect.Pointer {
			return fmt.Errorf("implementation of Marshalable for %s should have value receiver", type_.String())
		}

		pointerType := reflect.PointerTo(type_)
		if !pointerType.Implements(UNMARSHALABLE) {
			return fmt.Errorf("implementation of Unmarshalable missing for %s", type_.String())
		}
	}

	if _, ok := value.Interface().(Unmarshalable); ok {
		if value.Kind() != reflect.Pointer {
			return fmt.Errorf("implementation of Unmarshalable for %s should have pointer receiver", type_.String())
		}

		valueType := value.Elem().Type()
		if !valueType.Implements(MARSHALABLE) {
			return fmt.Errorf("implementation of Marshalable missing for %s", type_.String())
		}
	}

	return nil
}

func unmarshalStruct(s *stream.Stream, type_ reflect.Type, value reflect.Value) error {
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("cannot unmarshal non-struct")
	}

	for i := 0; i < type_.NumField(); i++ {
		field := type_.Field(i)
		if !field.IsExported() {
			continue
		}

		err := UnmarshalValue(s, field.Type, value.Field(i).Addr())
		if err != nil {
			return fmt.Errorf("%s.%s: %w", type_.Name(), field.Name, err)
		}
	}

	return nil
}

func UnmarshalValue(s *stream.Stream, type_ reflect.Type, valuePtr reflect.Value) error {
	if valuePtr.Kind() != reflect.Pointer {
		return fmt.Errorf("cannot unmarshal into non-pointer value")
	}

	if u, ok := valuePtr.Interface().(Unmarshalable); ok {
		err := checkInterfaces(type_, valuePtr)
		if err != nil {
			return err
		}

		return u.Unmarshal(s)
	}

	value := valuePtr.Elem()

	if type_ == optionalString {
		readValue, err := s.ReadCString()
		if err != nil {
			return err
		}
		if len(readValue) == 0 {
			value.Set(reflect.ValueOf(opt.None[string]()))
		} else {
			value.Set(reflect.ValueOf(opt.Some(string(readValue))))
		}
		return nil
	}

	switch type_.Kind() {
	case reflect.Uint8:
		readValue, err := s.ReadByte()
		if err != nil {
			return err
		}
		value.SetUint(uint64(readValue))
	case reflect.Int8:
		readValue, err := s.ReadByte()
		if err != nil {
			return err
		}
		value.SetInt(int64(int8(readValue)))
	case reflect.Bool:
		readValue, err := s.ReadByte()
		if err != nil {
			return err
		}
		value.SetBool(readValue != 0)
	case reflect.Uint16:
		readValue, err := s.ReadUint16()
		if err != nil {
			return err
		}
		value.SetUint(uint64(readValue))
	case reflect.Int16:
		readValue, err := s.ReadInt16()
		if err != nil {
			return err
		}
		value.SetInt(int64(readValue))
	case reflect.Uint32:
		readValue, err := s.ReadUint32()
		if err != nil {
			return err
		}
		value.SetUint(uint64(readValue))
	case reflect.Int32:
		readValue, err := s.ReadUint32()
		if err != nil {
			return err
		}
		value.SetInt(int64(int32(readValue)))
	case reflect.String:
		readValue, err := s.ReadCString()
		if err != nil {
			return err
		}
		value.SetString(string(readValue))
	case reflect.Array:
		for i := 0; i < type_.Len(); i++ {
			err := UnmarshalValue(s, type_.Elem(), value.Index(i).Addr())
			if err != nil {
				return err
			}
		}
	case reflect.Slice:
		numElements, err := s.ReadUint16()
		if err != nil {
			return fmt.Errorf("failed to read number of elements: %w", err)
		}

		slice := reflect.MakeSlice(type_, int(numElements), int(numElements))
		for i := 0; i < int(numElements); i++ {
			err := UnmarshalValue(s, type_.Elem(), slice.Index(i).Addr())
			if err != nil {
				return err
			}
		}
		value.Set(slice)
	case reflect.Struct:
		err := unmarshalStruct(s, type_, value)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unimplemented type: %s", type_.String())
	}

	return nil
}

func Unmarshal(s *stream.Stream, pieces ...interface{}) error {
	for _, piece := range pieces {
		err := UnmarshalValue(
			s,
			reflect.TypeOf(piece).Elem(),
			reflect.ValueOf(piece),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func marshalStruct(s *stream.Stream, type_ reflect.Type, value reflect.Value) error {
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("cannot marshal non-struct")
	}

	for i := 0; i < type_.NumField(); i++ {
		field := type_.Field(i)
		if !field.IsExported() {
			continue
		}

		err := MarshalValue(s, field.Type, value.Field(i))
		if err != nil {
			return fmt.Errorf("%s.%s: %w", type_.Name(), field.Name, err)
		}
	}

	return nil
}

func MarshalValue(s *stream.Stream, type_ reflect.Type, value reflect.Value) error {
	if value.Kind() == reflect.Pointer {
		// encoded data cannot point anywhere
		return fmt.Errorf("cannot marshal pointer to value")
	}

	if u, ok := value.Interface().(Marshalable); ok {
		err := checkInterfaces(type_, value)
		if err != nil {
			return err
		}

		return u.Marshal(s)
	}

	if type_ == optionalString {
		optional := value.Interface().(opt.Option[string])
		if opt.IsNone(optional) {
			return s.WriteCString(nil)
		}
		return s.WriteCString([]byte(optional.Value))
	}

	switch type_.Kind() {
	case reflect.Uint8:
		return s.WriteByte(byte(value.Uint()))
	case reflect.Int8:
		return s.WriteByte(byte(int8(value.Int())))
	case reflect.Bool:
		if value.Bool() {
			return s.WriteByte(1)
		}
		return s.WriteByte(0)
	case reflect.Uint16:
		return s.WriteUint16(uint16(value.Uint()))
	case reflect.Int16:
		return s.WriteInt16(int16(value.Int()))
	case reflect.Uint32:
		return s.WriteUint32(uint32(value.Uint()))
	case reflect.Int32:
		return s.WriteUint32(uint32(int32(value.Int())))
	case reflect.String:
		return s.WriteCString([]byte(value.String()))
	case reflect.Array:
		// No need to put the number of elements if it's constant
		for i := 0; i < type_.Len(); i++ {
			err := MarshalValue(s, type_.Elem(), value.Index(i))
			if err != nil {
				return err
			}
		}
	case reflect.Slice:
		numElements := value.Len()
		if numElements > math.MaxUint16 {
			return fmt.Errorf("too many elements for count prefix: %d", numElements)
		}

		err := s.WriteUint16(uint16(numElements))
		if err != nil {
			return err
		}

		for i := 0; i < numElements; i++ {
			err := MarshalValue(s, type_.Elem(), value.Index(i))
			if err != nil {
				return err
			}
		}
	case reflect.Struct:
		err := marshalStruct(s, type_, value)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unimplemented type: %s", type_.String())
	}

	return nil
}

func Marshal(s *stream.Stream, pieces ...interface{}) error {
	for _, piece := range pieces {
		type_ := reflect.TypeOf(piece)
		value := reflect.ValueOf(piece)

		err := MarshalValue(s, type_, value)
		if err != nil {
			return err
		}
	}

	return nil
}
