// Package codec converts ids to and from their textual forms.
//
// Decimal and hex are plain strconv; the base2/32/36/58/64 alphabets are the
// ones used by github.com/bwmarrin/snowflake, so ids can be exchanged with
// services built on that library.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

// Format names a textual id encoding.
type Format string

const (
	Decimal Format = "dec"
	Hex     Format = "hex"
	Base2   Format = "base2"
	Base32  Format = "base32"
	Base36  Format = "base36"
	Base58  Format = "base58"
	Base64  Format = "base64"
)

// Formats lists every supported format, decimal first.
var Formats = []Format{Decimal, Hex, Base2, Base32, Base36, Base58, Base64}

// ParseFormat accepts a format name; the empty string means Decimal.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "decimal" {
		return Decimal, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("codec: unknown format %q", s)
}

// Encode renders id in format f. Unknown formats fall back to decimal.
func Encode(id int64, f Format) string {
	sf := bwsnowflake.ParseInt64(id)
	switch f {
	case Hex:
		return strconv.FormatInt(id, 16)
	case Base2:
		return sf.Base2()
	case Base32:
		return sf.Base32()
	case Base36:
		return sf.Base36()
	case Base58:
		return sf.Base58()
	case Base64:
		return sf.Base64()
	default:
		return strconv.FormatInt(id, 10)
	}
}

// Decode parses s written in format f.
func Decode(s string, f Format) (int64, error) {
	var (
		sf  bwsnowflake.ID
		err error
	)
	switch f {
	case Decimal:
		sf, err = bwsnowflake.ParseString(s)
	case Hex:
		var n int64
		n, err = strconv.ParseInt(s, 16, 64)
		sf = bwsnowflake.ParseInt64(n)
	case Base2:
		sf, err = bwsnowflake.ParseBase2(s)
	case Base32:
		sf, err = bwsnowflake.ParseBase32([]byte(s))
	case Base36:
		sf, err = bwsnowflake.ParseBase36(s)
	case Base58:
		sf, err = bwsnowflake.ParseBase58([]byte(s))
	case Base64:
		sf, err = bwsnowflake.ParseBase64(s)
	default:
		return 0, fmt.Errorf("codec: unknown format %q", f)
	}
	if err != nil {
		return 0, fmt.Errorf("codec: invalid %s id %q: %w", f, s, err)
	}
	if sf.Int64() < 0 {
		return 0, fmt.Errorf("codec: invalid %s id %q: negative", f, s)
	}
	// The base32 and base58 parsers accumulate without overflow checks, so an
	// overlong input wraps into an unrelated id. Only canonical text is accepted.
	if (f == Base32 || f == Base58) && Encode(sf.Int64(), f) != s {
		return 0, fmt.Errorf("codec: invalid %s id %q: out of range or not canonical", f, s)
	}
	return sf.Int64(), nil
}
