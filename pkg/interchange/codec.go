package interchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format identifies an interchange encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatXML     Format = "xml"
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// Formats lists the concrete encodings.
var Formats = []Format{FormatXML, FormatYAML, FormatJSON, FormatMsgpack}

// ParseFormat validates a format name. An empty name means FormatAuto.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatXML, FormatYAML, FormatJSON, FormatMsgpack:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "mp", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("unknown interchange format: %s (use xml, yaml, json or msgpack)", name)
	}
}

// DetectFormat infers the encoding from a file extension. Unknown
// extensions fall back to XML, the analysis pass's native output.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".msgpack", ".mp", ".mpk":
		return FormatMsgpack
	default:
		return FormatXML
	}
}

// Decode reads a document in the given format. The result is not validated.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	switch format {
	case FormatXML:
		return decodeXML(r)
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(doc); err != nil {
			return nil, fmt.Errorf("decoding msgpack: %w", err)
		}
	default:
		return nil, fmt.Errorf("cannot decode format %q", format)
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatXML:
		return encodeXML(w, doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encoding msgpack: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("cannot encode format %q", format)
	}
}

// Load reads and validates the document at path. FormatAuto infers the
// encoding from the extension.
func Load(path string, format Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading interchange document %s: %w", path, err)
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}

	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save writes doc to path, creating parent directories.
func Save(path string, doc *Document, format Format) error {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
