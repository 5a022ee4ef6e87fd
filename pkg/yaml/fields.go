package yaml

import (
	"reflect"
	"strings"
)

// fieldInfo contains information about a struct field for unmarshaling.
type fieldInfo struct {
	name string
	skip bool
}

// getFieldInfo extracts field information from a struct field's `yaml` tag,
// falling back to the lowercased Go field name when no tag is present.
func getFieldInfo(field reflect.StructField) fieldInfo {
	tag := field.Tag.Get("yaml")

	if tag == "" {
		return fieldInfo{name: strings.ToLower(field.Name)}
	}

	parts := strings.Split(tag, ",")
	name := parts[0]

	if name == "-" {
		return fieldInfo{skip: true}
	}
	if name == "" {
		name = field.Name
	}

	return fieldInfo{name: name}
}
