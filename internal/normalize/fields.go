// Package normalize turns loosely-typed Cin7 records into board orders.
package normalize

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/model"
	"github.com/spf13/cast"
)

// Candidates returns the keys tried for a canonical field name, in priority order.
func Candidates(name string) []string {
	if name == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(name)
	lower := string(unicode.ToLower(r)) + name[size:]
	if lower == name {
		return []string{name}
	}
	return []string{name, lower}
}

// Resolve looks a field up under its exact name, then with the first
// character lower-cased. The first present, non-nil value wins.
func Resolve(rec model.RawRecord, name string) (any, bool) {
	return First(rec, Candidates(name)...)
}

// First returns the value of the first key in keys that is present and non-nil.
func First(rec map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := rec[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// String resolves name and renders it as a string.
// Values that cannot be rendered are treated as absent.
func String(rec model.RawRecord, name string) (string, bool) {
	v, ok := Resolve(rec, name)
	if !ok {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, s != ""
}

// ID resolves name as a positive integer identifier.
func ID(rec model.RawRecord, name string) (int64, bool) {
	v, ok := Resolve(rec, name)
	if !ok {
		return 0, false
	}
	var id int64
	var err error
	if s, isString := v.(string); isString {
		// Cin7 ids are decimal; cast would honour 0x and leading-zero octal.
		id, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	} else {
		id, err = cast.ToInt64E(v)
	}
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Bool resolves name as a boolean; unparsable values read as false.
func Bool(rec model.RawRecord, name string) bool {
	v, ok := Resolve(rec, name)
	if !ok {
		return false
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}
