// Package utils contains small helper functions used across the project.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// PrintJSON pretty-prints a JSON document to w with tab indentation. Bodies
// that are not valid JSON are written unchanged.
func PrintJSON(w io.Writer, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "\t"); err != nil {
		out.Reset()
		out.Write(data)
	}
	out.WriteByte('\n')

	_, err := out.WriteTo(w)
	return err
}

// PrintValue marshals v and pretty-prints it like PrintJSON.
func PrintValue(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return PrintJSON(w, data)
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
