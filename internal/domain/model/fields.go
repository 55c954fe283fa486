package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// The LLM collaborator does not reliably emit JSON scalars of the documented
// type. The field types below accept the common deviations, and
// DecodeContractData drops whatever still does not fit, so that a single
// odd value never discards the rest of an extraction.

// Flag is a boolean that also accepts "true"/"ja"/"yes"/"1" strings and 0/1 numbers.
// Unrecognized values decode as false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "ja", "yes", "y", "1", "wahr":
			*f = true
		default:
			*f = false
		}
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = n != 0
		return nil
	}

	*f = false
	return nil
}

// Number is a float that also accepts numeric strings such as "18 Tage",
// "37,5%" or "1.000,5". A lone separator is read as the decimal mark, so
// "1.000" is one and "99,5" is ninety-nine and a half. Fields of this type
// are pointers so that an absent value stays distinguishable from zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler. Text without a numeral is an
// error, which DecodeContractData turns into an absent field.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid number: %s", string(data))
	}
	parsed, err := parseLooseNumber(s)
	if err != nil {
		return err
	}
	*n = Number(parsed)
	return nil
}

// Float64 returns the value as float64.
func (n Number) Float64() float64 {
	return float64(n)
}

// String formats the number without trailing zeros.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// NumberPtr is a convenience for building inputs in code and tests.
func NumberPtr(v float64) *Number {
	n := Number(v)
	return &n
}

func parseLooseNumber(s string) (float64, error) {
	token, ok := numeral(s)
	if !ok {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	f, err := strconv.ParseFloat(normalizeNumeral(token, false), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return f, nil
}

// Amount is a money value. Besides JSON numbers it accepts strings in German
// or English notation with a currency around them ("500.000,00 EUR",
// "€ 1,250.50"). A lone separator followed by exactly three digits groups
// thousands, so "500.000" is half a million.
type Amount struct {
	decimal.NullDecimal
}

// NewAmount returns a present amount.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{NullDecimal: decimal.NewNullDecimal(d)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("invalid amount: %s", string(data))
		}
		*a = NewAmount(d)
		return nil
	}

	token, ok := numeral(s)
	if !ok {
		return fmt.Errorf("invalid amount %q", s)
	}
	d, err := decimal.NewFromString(normalizeNumeral(token, true))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = NewAmount(d)
	return nil
}

// numeral returns the first run of digits and separators in s, keeping a
// leading minus sign. Currency symbols, units and words around it are dropped.
func numeral(s string) (string, bool) {
	start := strings.IndexFunc(s, unicode.IsDigit)
	if start < 0 {
		return "", false
	}
	end := start
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || s[end] == ',') {
		end++
	}
	token := strings.TrimRight(s[start:end], ".,")
	if start > 0 && s[start-1] == '-' {
		token = "-" + token
	}
	return token, true
}

// normalizeNumeral rewrites German and English digit grouping into the plain
// form strconv and decimal parse. When both separators occur the later one is
// the decimal mark, and a separator that repeats groups thousands. A lone
// separator is the decimal mark unless groupTriples is set and exactly three
// digits follow it.
func normalizeNumeral(s string, groupTriples bool) string {
	dots, commas := strings.Count(s, "."), strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case dots > 1:
		return strings.ReplaceAll(s, ".", "")
	case commas > 1:
		return strings.ReplaceAll(s, ",", "")
	case dots == 1:
		if groupTriples && digitsAfter(s, '.') == 3 {
			return strings.Replace(s, ".", "", 1)
		}
		return s
	case commas == 1:
		if groupTriples && digitsAfter(s, ',') == 3 {
			return strings.Replace(s, ",", "", 1)
		}
		return strings.Replace(s, ",", ".", 1)
	}
	return s
}

func digitsAfter(s string, sep byte) int {
	return len(s) - strings.IndexByte(s, sep) - 1
}

// StringList accepts either a JSON array of strings or a single string.
// An empty string decodes as an empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*l = items
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}

	*l = nil
	return nil
}

// Party is a contracting party.
type Party struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. A bare string is taken as the
// party's name.
func (p *Party) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Party{Name: strings.TrimSpace(name)}
		return nil
	}

	type party Party
	var decoded party
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("invalid party: %w", err)
	}
	*p = Party(decoded)
	return nil
}

// PartyName returns the party's name or fallback when the party is absent or unnamed.
func PartyName(p *Party, fallback string) string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return fallback
	}
	return p.Name
}
