// Package interchange models the document produced by the region analysis
// pass: which function and region to outline, which variables cross the
// region boundary and which lines leave the region early.
package interchange

import (
	"errors"
	"fmt"

	"github.com/mamysa/CFunctionOutliner/pkg/span"
	"github.com/mamysa/CFunctionOutliner/pkg/variable"
)

var (
	// ErrMissingElement is returned when a required element is absent.
	ErrMissingElement = errors.New("missing element")
	// ErrInvalidSpan is returned for inverted or misplaced line ranges.
	ErrInvalidSpan = errors.New("invalid span")
)

// Span is a line range as it appears in the document. Pointers
// distinguish an absent bound from line zero.
type Span struct {
	Start *int `yaml:"start" json:"start" msgpack:"start"`
	End   *int `yaml:"end" json:"end" msgpack:"end"`
}

// NewSpan creates a document span with both bounds set.
func NewSpan(start, end int) *Span {
	return &Span{Start: &start, End: &end}
}

// Variable is a crossing variable record.
type Variable struct {
	Name     string `yaml:"name" json:"name" msgpack:"name"`
	Type     string `yaml:"type" json:"type" msgpack:"type"`
	IsOutput bool   `yaml:"isoutput,omitempty" json:"isoutput,omitempty" msgpack:"isoutput,omitempty"`
	IsFunPtr bool   `yaml:"isfunptr,omitempty" json:"isfunptr,omitempty" msgpack:"isfunptr,omitempty"`
	IsStatic bool   `yaml:"isstatic,omitempty" json:"isstatic,omitempty" msgpack:"isstatic,omitempty"`
	IsConstQ bool   `yaml:"isconstq,omitempty" json:"isconstq,omitempty" msgpack:"isconstq,omitempty"`
	IsArrayT bool   `yaml:"isarrayt,omitempty" json:"isarrayt,omitempty" msgpack:"isarrayt,omitempty"`
}

// Descriptor converts the record into a variable descriptor.
func (v Variable) Descriptor() variable.Descriptor {
	d := variable.New(v.Name, v.Type)
	d.IsOutput = v.IsOutput
	d.IsFunctionPointer = v.IsFunPtr
	d.IsStatic = v.IsStatic
	d.IsConst = v.IsConstQ
	d.IsArray = v.IsArrayT
	return d
}

// Document is the parsed interchange document.
type Document struct {
	FuncName       string     `yaml:"funcname" json:"funcname" msgpack:"funcname"`
	FuncReturnType string     `yaml:"funcreturntype" json:"funcreturntype" msgpack:"funcreturntype"`
	Region         *Span      `yaml:"region" json:"region" msgpack:"region"`
	Function       *Span      `yaml:"function" json:"function" msgpack:"function"`
	RegionExits    []int      `yaml:"regionexits,omitempty" json:"regionexits,omitempty" msgpack:"regionexits,omitempty"`
	Variables      []Variable `yaml:"variables,omitempty" json:"variables,omitempty" msgpack:"variables,omitempty"`
	Toplevel       bool       `yaml:"toplevel" json:"toplevel" msgpack:"toplevel"`
}

// Validate checks that every required element is present and that the
// region lies inside the function.
func (d *Document) Validate() error {
	if d.FuncName == "" {
		return fmt.Errorf("%w: funcname", ErrMissingElement)
	}
	if d.FuncReturnType == "" {
		return fmt.Errorf("%w: funcreturntype", ErrMissingElement)
	}
	if err := validateSpan("region", d.Region); err != nil {
		return err
	}
	if err := validateSpan("function", d.Function); err != nil {
		return err
	}
	if !d.RegionSpan().Within(d.FunctionSpan()) {
		return fmt.Errorf("%w: region %s is not inside function %s", ErrInvalidSpan, d.RegionSpan(), d.FunctionSpan())
	}
	for i, v := range d.Variables {
		if v.Name == "" {
			return fmt.Errorf("%w: name of variable #%d", ErrMissingElement, i+1)
		}
		if v.Type == "" {
			return fmt.Errorf("%w: type of variable %q", ErrMissingElement, v.Name)
		}
	}
	return nil
}

func validateSpan(element string, s *Span) error {
	if s == nil {
		return fmt.Errorf("%w: %s", ErrMissingElement, element)
	}
	if s.Start == nil {
		return fmt.Errorf("%w: %s start", ErrMissingElement, element)
	}
	if s.End == nil {
		return fmt.Errorf("%w: %s end", ErrMissingElement, element)
	}
	if *s.Start < 1 || *s.Start > *s.End {
		return fmt.Errorf("%w: %s %d-%d", ErrInvalidSpan, element, *s.Start, *s.End)
	}
	return nil
}

// RegionSpan returns the region range. Call only after Validate.
func (d *Document) RegionSpan() span.SourceSpan {
	return span.New(*d.Region.Start, *d.Region.End)
}

// FunctionSpan returns the enclosing function range. Call only after Validate.
func (d *Document) FunctionSpan() span.SourceSpan {
	return span.New(*d.Function.Start, *d.Function.End)
}

// Descriptors converts all variable records, preserving document order.
func (d *Document) Descriptors() []variable.Descriptor {
	out := make([]variable.Descriptor, 0, len(d.Variables))
	for _, v := range d.Variables {
		out = append(out, v.Descriptor())
	}
	return out
}
