package interchange

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// xmlDocument mirrors the analysis pass output. The root element name is
// not checked; only its children matter.
type xmlDocument struct {
	XMLName        xml.Name
	FuncName       string        `xml:"funcname,omitempty"`
	FuncReturnType string        `xml:"funcreturntype,omitempty"`
	Region         *xmlSpan      `xml:"region"`
	Function       *xmlSpan      `xml:"function"`
	RegionExits    []string      `xml:"regionexit"`
	Variables      []xmlVariable `xml:"variable"`
	Toplevel       string        `xml:"toplevel,omitempty"`
}

type xmlSpan struct {
	Start *string `xml:"start"`
	End   *string `xml:"end"`
}

type xmlVariable struct {
	Name     string `xml:"name"`
	Type     string `xml:"type"`
	IsOutput string `xml:"isoutput,omitempty"`
	IsFunPtr string `xml:"isfunptr,omitempty"`
	IsStatic string `xml:"isstatic,omitempty"`
	IsConstQ string `xml:"isconstq,omitempty"`
	IsArrayT string `xml:"isarrayt,omitempty"`
}

func decodeXML(r io.Reader) (*Document, error) {
	var raw xmlDocument
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding xml: %w", err)
	}

	doc := &Document{
		FuncName:       strings.TrimSpace(raw.FuncName),
		FuncReturnType: strings.TrimSpace(raw.FuncReturnType),
	}

	var err error
	if doc.Region, err = raw.Region.span("region"); err != nil {
		return nil, err
	}
	if doc.Function, err = raw.Function.span("function"); err != nil {
		return nil, err
	}

	for _, text := range raw.RegionExits {
		line, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("regionexit %q: not a line number", text)
		}
		doc.RegionExits = append(doc.RegionExits, line)
	}

	for _, rv := range raw.Variables {
		v := Variable{
			Name: strings.TrimSpace(rv.Name),
			Type: strings.TrimSpace(rv.Type),
		}
		flags := []struct {
			name string
			text string
			dst  *bool
		}{
			{"isoutput", rv.IsOutput, &v.IsOutput},
			{"isfunptr", rv.IsFunPtr, &v.IsFunPtr},
			{"isstatic", rv.IsStatic, &v.IsStatic},
			{"isconstq", rv.IsConstQ, &v.IsConstQ},
			{"isarrayt", rv.IsArrayT, &v.IsArrayT},
		}
		for _, f := range flags {
			if *f.dst, err = parseFlag(f.text); err != nil {
				return nil, fmt.Errorf("variable %q: %s: %w", v.Name, f.name, err)
			}
		}
		doc.Variables = append(doc.Variables, v)
	}

	if doc.Toplevel, err = parseFlag(raw.Toplevel); err != nil {
		return nil, fmt.Errorf("toplevel: %w", err)
	}
	return doc, nil
}

func (s *xmlSpan) span(element string) (*Span, error) {
	if s == nil {
		return nil, nil
	}
	out := &Span{}
	if s.Start != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*s.Start))
		if err != nil {
			return nil, fmt.Errorf("%s start %q: not a line number", element, *s.Start)
		}
		out.Start = &n
	}
	if s.End != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*s.End))
		if err != nil {
			return nil, fmt.Errorf("%s end %q: not a line number", element, *s.End)
		}
		out.End = &n
	}
	return out, nil
}

// parseFlag treats an empty or absent flag as false.
func parseFlag(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid flag value %q", text)
	}
}

func encodeXML(w io.Writer, doc *Document) error {
	raw := xmlDocument{
		XMLName:        xml.Name{Local: "extraction"},
		FuncName:       doc.FuncName,
		FuncReturnType: doc.FuncReturnType,
		Region:         toXMLSpan(doc.Region),
		Function:       toXMLSpan(doc.Function),
		Toplevel:       formatFlag(doc.Toplevel),
	}
	for _, line := range doc.RegionExits {
		raw.RegionExits = append(raw.RegionExits, strconv.Itoa(line))
	}
	for _, v := range doc.Variables {
		raw.Variables = append(raw.Variables, xmlVariable{
			Name:     v.Name,
			Type:     v.Type,
			IsOutput: optionalFlag(v.IsOutput),
			IsFunPtr: optionalFlag(v.IsFunPtr),
			IsStatic: optionalFlag(v.IsStatic),
			IsConstQ: optionalFlag(v.IsConstQ),
			IsArrayT: optionalFlag(v.IsArrayT),
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encoding xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func toXMLSpan(s *Span) *xmlSpan {
	if s == nil {
		return nil
	}
	out := &xmlSpan{}
	if s.Start != nil {
		v := strconv.Itoa(*s.Start)
		out.Start = &v
	}
	if s.End != nil {
		v := strconv.Itoa(*s.End)
		out.End = &v
	}
	return out
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func optionalFlag(b bool) string {
	if b {
		return "1"
	}
	return ""
}
