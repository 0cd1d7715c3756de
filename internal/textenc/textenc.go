// Package textenc decodes byte strings in the encodings the runtime's str
// type accepts.
package textenc

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// encodings maps encoding names to their implementations. utf8 is handled
// separately so that invalid input is reported rather than replaced.
var encodings = map[string]encoding.Encoding{
	"utf16":       unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf32":       utf32.UTF32(utf32.LittleEndian, utf32.UseBOM),
	"utf32le":     utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM),
	"utf32be":     utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM),
	"latin1":      charmap.ISO8859_1,
	"windows1252": charmap.Windows1252,
}

// Default is the encoding used when none is named.
const Default = "utf8"

// Known returns whether name is a supported encoding.
func Known(name string) bool {
	if name == Default {
		return true
	}
	_, ok := encodings[name]
	return ok
}

// Names returns the supported encoding names in sorted order.
func Names() []string {
	r := []string{Default}
	for name := range encodings {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}

// Decode converts b from the named encoding to a Go string.
func Decode(name string, b []byte) (string, error) {
	if name == Default || name == "" {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("textenc: invalid utf8")
		}
		return string(b), nil
	}
	enc, ok := encodings[name]
	if !ok {
		return "", fmt.Errorf("textenc: unknown encoding %q", name)
	}
	r, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textenc: decoding %s: %w", name, err)
	}
	return string(r), nil
}

// Encode converts s to the named encoding.
func Encode(name, s string) ([]byte, error) {
	if name == Default || name == "" {
		return []byte(s), nil
	}
	enc, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("textenc: unknown encoding %q", name)
	}
	r, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("textenc: encoding %s: %w", name, err)
	}
	return r, nil
}
