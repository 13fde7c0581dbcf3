package outline

import (
	"fmt"

	"github.com/mamysa/CFunctionOutliner/pkg/variable"
)

// flagType is the C type of exit flag fields.
const flagType = "char"

// Function is the assembly context for the extracted function: its
// crossing variables, its exit sites and the names derived from it.
type Function struct {
	Name       string
	ReturnType string
	Inputs     []variable.Descriptor
	Outputs    []variable.Descriptor
	Exits      []ExitSite
}

// NewFunction classifies vars into inputs and outputs, keeping their order.
func NewFunction(name, returnType string, vars []variable.Descriptor) *Function {
	fn := &Function{Name: name, ReturnType: returnType}
	for _, v := range vars {
		if v.IsOutput {
			fn.Outputs = append(fn.Outputs, v)
		} else {
			fn.Inputs = append(fn.Inputs, v)
		}
	}
	return fn
}

// StructType is the name of the generated result structure type.
func (f *Function) StructType() string {
	return fmt.Sprintf("struct %s_struct", f.Name)
}

// ResultVar is the name of the result structure instance.
func (f *Function) ResultVar() string {
	return f.Name + "_retval"
}

// SignatureType is the extracted function's return type.
func (f *Function) SignatureType(toplevel bool) string {
	if toplevel {
		return f.ReturnType
	}
	return f.StructType()
}

func (f *Function) flagVar(line int) variable.Descriptor {
	v := variable.New(fmt.Sprintf("%s_flag_loc%d", f.Name, line), flagType)
	v.IsOutput = true
	return v
}

func (f *Function) valueVar(line int) variable.Descriptor {
	v := variable.New(fmt.Sprintf("%s_value_loc%d", f.Name, line), f.ReturnType)
	v.IsOutput = true
	return v
}

// crossing returns inputs followed by outputs.
func (f *Function) crossing() []variable.Descriptor {
	all := make([]variable.Descriptor, 0, len(f.Inputs)+len(f.Outputs))
	all = append(all, f.Inputs...)
	return append(all, f.Outputs...)
}
