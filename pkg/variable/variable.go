// Package variable describes variables that cross the boundary of an
// extracted region and renders them in the forms the generated code needs.
package variable

import (
	"fmt"
	"strings"
)

// Descriptor is a crossing variable. Inputs are live on entry to the
// region, outputs are defined inside it and used after it.
type Descriptor struct {
	Name              string `json:"name"`
	Type              string `json:"type"`
	IsOutput          bool   `json:"is_output,omitempty"`
	IsFunctionPointer bool   `json:"is_function_pointer,omitempty"`
	IsStatic          bool   `json:"is_static,omitempty"`
	IsConst           bool   `json:"is_const,omitempty"`
	IsArray           bool   `json:"is_array,omitempty"`
}

// New creates a descriptor with no qualifiers set.
func New(name, typ string) Descriptor {
	return Descriptor{Name: name, Type: strings.TrimSpace(typ)}
}

// Storable reports whether the variable round-trips through the result
// structure. Const inputs cannot be reassigned and array inputs decay to
// pointers, so neither is stored or restored.
func (d Descriptor) Storable() bool {
	if d.IsOutput {
		return true
	}
	return !d.IsConst && !d.IsArray
}

// Declaration renders "type name", or just the type for function pointers
// whose type text already carries the name.
func (d Descriptor) Declaration() string {
	if d.IsFunctionPointer {
		return d.Type
	}
	return d.Type + " " + d.Name
}

// Argument renders the variable as a by-value parameter.
func (d Descriptor) Argument() string {
	return d.Declaration()
}

// StructMember renders the result-structure field, with const qualifiers
// removed. ok is false when the variable is not storable.
func (d Descriptor) StructMember() (member string, ok bool) {
	if !d.Storable() {
		return "", false
	}
	typ := stripConst(d.Type)
	if d.IsFunctionPointer {
		return typ + ";", true
	}
	return typ + " " + d.Name + ";", true
}

// Store renders the assignment of the variable into the result structure.
func (d Descriptor) Store(result string) (stmt string, ok bool) {
	if !d.Storable() {
		return "", false
	}
	return fmt.Sprintf("%s.%s = %s;", result, d.Name, d.Name), true
}

// Restore renders the reassignment of an input from the result structure.
func (d Descriptor) Restore(result string) (stmt string, ok bool) {
	if d.IsConst || d.IsArray {
		return "", false
	}
	return fmt.Sprintf("%s = %s.%s;", d.Name, result, d.Name), true
}

// DeclareAndInitialize renders the declaration of an output at the call
// site, initialized from the result structure. A static variable is
// declared with a constant initializer and then assigned on every call.
func (d Descriptor) DeclareAndInitialize(result string) []string {
	field := result + "." + d.Name
	if d.IsStatic {
		return []string{
			fmt.Sprintf("static %s = 0;", d.Declaration()),
			fmt.Sprintf("%s = %s;", d.Name, field),
		}
	}
	return []string{fmt.Sprintf("%s = %s;", d.Declaration(), field)}
}

func (d Descriptor) String() string {
	var quals []string
	if d.IsOutput {
		quals = append(quals, "output")
	}
	if d.IsFunctionPointer {
		quals = append(quals, "funptr")
	}
	if d.IsStatic {
		quals = append(quals, "static")
	}
	if d.IsConst {
		quals = append(quals, "const")
	}
	if d.IsArray {
		quals = append(quals, "array")
	}
	if len(quals) == 0 {
		return fmt.Sprintf("%s:%s", d.Name, d.Type)
	}
	return fmt.Sprintf("%s:%s[%s]", d.Name, d.Type, strings.Join(quals, ","))
}

func stripConst(typ string) string {
	fields := strings.Fields(typ)
	kept := fields[:0]
	for _, f := range fields {
		if f != "const" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
