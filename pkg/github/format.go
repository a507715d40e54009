package github

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format selects how a response body is decoded
type Format int

const (
	// FormatTyped decodes into the endpoint's record type
	FormatTyped Format = iota
	// FormatJSON decodes into map[string]any / []any with json.Number values
	FormatJSON
	// FormatRaw returns the body untouched
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatTyped:
		return "typed"
	case FormatJSON:
		return "json"
	case FormatRaw:
		return "raw"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a flag value onto a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "typed":
		return FormatTyped, nil
	case "json":
		return FormatJSON, nil
	case "raw":
		return FormatRaw, nil
	}
	return FormatTyped, fmt.Errorf("unknown format %q (want typed, json or raw)", s)
}

// Result carries a decoded response. Only the field matching Format is set.
type Result[T any] struct {
	Format     Format
	StatusCode int
	Raw        string
	JSON       any
	Value      T
}

// NewResult decodes body as a response with the given status would be
// decoded for format. It lets data fetched outside the REST endpoints, such
// as the GraphQL viewer, go through the same printers.
func NewResult[T any](body []byte, status int, format Format) (*Result[T], error) {
	return decode[T](body, status, format)
}

func decode[T any](body []byte, status int, format Format) (*Result[T], error) {
	res := &Result[T]{Format: format, StatusCode: status}
	switch format {
	case FormatRaw:
		res.Raw = string(body)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&res.JSON); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
			return nil, errors.New("failed to decode response: trailing data after JSON value")
		}
	case FormatTyped:
		if err := json.Unmarshal(body, &res.Value); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return res, nil
}
