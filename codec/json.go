package codec

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"
)

// MarshalJSON encodes v using goccy/go-json.
func MarshalJSON(v any) ([]byte, error) { return j.Marshal(v) }

// MarshalJSONIndent encodes v with indentation.
func MarshalJSONIndent(v any, prefix, indent string) ([]byte, error) {
	return j.MarshalIndent(v, prefix, indent)
}

// DecodeJSON decodes a single JSON value from b into generic Go values.
// Numbers are kept as json.Number so that no precision is lost before
// coercion.
func DecodeJSON(b []byte) (any, error) { return DecodeJSONReader(bytes.NewReader(b)) }

// DecodeJSONReader is DecodeJSON over a reader.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
