package presentation

import (
	"bytes"
	"fmt"
	"io"
)

// Bytes converts an encoder result into a byte slice. Supported inputs are
// []byte, string, *bytes.Buffer, io.WriterTo and io.Reader; a
// reader that is also an io.Closer is closed after draining.
func Bytes(out any) ([]byte, error) {
	switch v := out.(type) {
	case nil:
		return nil, fmt.Errorf("normalize: encoder returned no output")
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case *bytes.Buffer:
		if v == nil {
			return nil, fmt.Errorf("normalize: nil buffer")
		}
		return v.Bytes(), nil
	case io.WriterTo:
		var buf bytes.Buffer
		if _, err := v.WriteTo(&buf); err != nil {
			return nil, fmt.Errorf("normalize: write: %w", err)
		}
		return buf.Bytes(), nil
	case io.Reader:
		if c, ok := v.(io.Closer); ok {
			defer c.Close()
		}
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, fmt.Errorf("normalize: read: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("normalize: unsupported encoder output %T", out)
	}
}
