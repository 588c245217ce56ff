package parser

import (
	"fmt"
	"io"
	"strings"
)

// FormatField renders one field as "<name>: 0x<hex> (hex), <dec> (dec)".
//
// By default each byte is printed with a bare %x, so a byte below 0x10 takes a
// single digit and the hex column is variable-width (0x0012c for 00 00 01 2c).
// padHex prints every byte as two digits instead.
func FormatField(f Field, padHex bool) string {
	verb := "%x"
	if padHex {
		verb = "%02x"
	}
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteString(": 0x")
	for _, b := range f.Raw {
		fmt.Fprintf(&sb, verb, b)
	}
	fmt.Fprintf(&sb, " (hex), %d (dec)", f.Value)
	return sb.String()
}

// WriteFields 每个字段输出一行
func WriteFields(w io.Writer, fields []Field, padHex bool) error {
	for _, f := range fields {
		if _, err := fmt.Fprintln(w, FormatField(f, padHex)); err != nil {
			return fmt.Errorf("写入字段 %s 失败: %w", f.Name, err)
		}
	}
	return nil
}
