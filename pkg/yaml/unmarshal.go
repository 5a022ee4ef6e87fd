package yaml

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/shapestone/confyaml/pkg/value"
)

// Unmarshal parses the YAML-encoded data and stores the result in the value
// pointed to by v.
//
// Unmarshal allocates maps, slices, and pointers as necessary. To unmarshal
// YAML into a pointer, Unmarshal first handles the YAML literal null case:
// the pointer is set to nil. Otherwise it unmarshals into the value pointed
// at, allocating a new value if the pointer is nil.
//
// To unmarshal YAML into a struct, Unmarshal matches mapping keys to struct
// fields using the `yaml` tag (or the lowercased field name when no tag is
// present), per getFieldInfo.
//
// To unmarshal YAML into an interface value, Unmarshal stores one of:
//
//	bool, for YAML booleans
//	int64, for YAML integers
//	float64, for YAML floats
//	int64, for YAML timestamps (seconds since epoch)
//	string, for YAML strings
//	[]interface{}, for YAML sequences
//	map[string]interface{}, for YAML mappings
//	nil for YAML null
//
// Example:
//
//	type Config struct {
//	    Name string
//	    Port int
//	}
//	var cfg Config
//	err := yaml.Unmarshal([]byte("name: server\nport: 8080"), &cfg)
func Unmarshal(data []byte, v interface{}) error {
	root, err := Parse(string(data))
	if err != nil {
		return err
	}
	return unmarshalInto(root, v)
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// YAML description of themselves, expressed as the already-parsed value
// tree rather than raw bytes (there is no Marshal in this package to round
// trip through, unlike yaml.v2/v3's byte-oriented Unmarshaler).
type Unmarshaler interface {
	UnmarshalYAMLValue(value.Value) error
}

func unmarshalInto(root value.Value, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return errors.New("yaml: Unmarshal(nil)")
	}
	if rv.Kind() != reflect.Ptr {
		return fmt.Errorf("yaml: Unmarshal(non-pointer %s)", rv.Type())
	}
	if rv.IsNil() {
		return fmt.Errorf("yaml: Unmarshal(nil %s)", rv.Type())
	}

	if rv.Type().Implements(reflect.TypeOf((*Unmarshaler)(nil)).Elem()) {
		return rv.Interface().(Unmarshaler).UnmarshalYAMLValue(root)
	}

	return unmarshalValue(root, rv.Elem())
}

// unmarshalValue unmarshals one value.Value into a reflect.Value.
func unmarshalValue(node value.Value, rv reflect.Value) error {
	if node.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(ToInterface(node)))
		return nil
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(node, rv.Elem())
	}

	switch node.Kind() {
	case value.KindSequence:
		return unmarshalSequence(node, rv)
	case value.KindMapping:
		return unmarshalMapping(node, rv)
	default:
		return unmarshalScalar(node, rv)
	}
}

func unmarshalScalar(node value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(node.String())
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := scalarAsInt(node)
		if !ok {
			return fmt.Errorf("yaml: cannot unmarshal %s into Go value of type %s", node.Kind(), rv.Type())
		}
		if rv.OverflowInt(i) {
			return fmt.Errorf("yaml: value %d overflows %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := scalarAsInt(node)
		if !ok || i < 0 {
			return fmt.Errorf("yaml: cannot unmarshal %s into Go value of type %s", node.Kind(), rv.Type())
		}
		u := uint64(i)
		if rv.OverflowUint(u) {
			return fmt.Errorf("yaml: value %d overflows %s", i, rv.Type())
		}
		rv.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := scalarAsFloat(node)
		if !ok {
			return fmt.Errorf("yaml: cannot unmarshal %s into Go value of type %s", node.Kind(), rv.Type())
		}
		if rv.OverflowFloat(f) {
			return fmt.Errorf("yaml: value %v overflows %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil

	case reflect.Bool:
		if node.Kind() != value.KindBool {
			return fmt.Errorf("yaml: cannot unmarshal %s into Go value of type bool", node.Kind())
		}
		rv.SetBool(node.Bool())
		return nil

	default:
		return fmt.Errorf("yaml: unsupported target type %s", rv.Type())
	}
}

func scalarAsInt(node value.Value) (int64, bool) {
	switch node.Kind() {
	case value.KindInt:
		return node.Int(), true
	case value.KindTimestamp:
		return node.TimestampSeconds(), true
	case value.KindFloat:
		f := node.Float()
		if f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

func scalarAsFloat(node value.Value) (float64, bool) {
	switch node.Kind() {
	case value.KindFloat:
		return node.Float(), true
	case value.KindInt:
		return float64(node.Int()), true
	}
	return 0, false
}

func unmarshalMapping(node value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		return unmarshalStruct(node, rv)
	case reflect.Map:
		return unmarshalMap(node, rv)
	default:
		return fmt.Errorf("yaml: cannot unmarshal mapping into Go value of type %s", rv.Type())
	}
}

func unmarshalStruct(node value.Value, rv reflect.Value) error {
	structType := rv.Type()

	fieldMap := make(map[string]int, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.PkgPath != "" {
			continue
		}
		info := getFieldInfo(field)
		if info.skip {
			continue
		}
		fieldMap[info.name] = i
	}

	for _, pair := range node.Mapping().Pairs() {
		name := pair.Key.String()
		idx, ok := fieldMap[name]
		if !ok {
			continue
		}
		if err := unmarshalValue(pair.Value, rv.Field(idx)); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalMap(node value.Value, rv reflect.Value) error {
	mapType := rv.Type()
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("yaml: unsupported map key type %s", mapType.Key())
	}
	valueType := mapType.Elem()

	for _, pair := range node.Mapping().Pairs() {
		elemVal := reflect.New(valueType).Elem()
		if err := unmarshalValue(pair.Value, elemVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(pair.Key.String()), elemVal)
	}
	return nil
}

func unmarshalSequence(node value.Value, rv reflect.Value) error {
	items := node.Sequence()

	switch rv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := unmarshalValue(item, slice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(slice)
		return nil

	case reflect.Array:
		if len(items) > rv.Len() {
			return fmt.Errorf("yaml: sequence length %d exceeds target array length %d", len(items), rv.Len())
		}
		for i, item := range items {
			if err := unmarshalValue(item, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = ToInterface(item)
		}
		rv.Set(reflect.ValueOf(out))
		return nil

	default:
		return fmt.Errorf("yaml: cannot unmarshal sequence into Go value of type %s", rv.Type())
	}
}

// ToInterface converts a value.Value into the untyped Go representation
// used for `interface{}` targets: native Go scalars, []interface{}, and
// map[string]interface{}. Map and sequence keys are copied recursively.
func ToInterface(v value.Value) interface{} {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.Bool()
	case value.KindInt:
		return v.Int()
	case value.KindFloat:
		return v.Float()
	case value.KindTimestamp:
		return v.TimestampSeconds()
	case value.KindString:
		return v.String()
	case value.KindSequence:
		seq := v.Sequence()
		out := make([]interface{}, len(seq))
		for i, elem := range seq {
			out[i] = ToInterface(elem)
		}
		return out
	case value.KindMapping:
		pairs := v.Mapping().Pairs()
		out := make(map[string]interface{}, len(pairs))
		for _, p := range pairs {
			out[p.Key.String()] = ToInterface(p.Value)
		}
		return out
	default:
		return nil
	}
}
