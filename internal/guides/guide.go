package guides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Guide is one generated buying guide exactly as the backend sent it.
// The shape is owned by the backend; key order is preserved.
type Guide json.RawMessage

// MarshalJSON returns the raw value.
func (g Guide) MarshalJSON() ([]byte, error) {
	if len(g) == 0 {
		return []byte("null"), nil
	}
	return g, nil
}

// UnmarshalJSON keeps a copy of the raw value.
func (g *Guide) UnmarshalJSON(data []byte) error {
	if g == nil {
		return fmt.Errorf("guides: UnmarshalJSON on nil pointer")
	}
	*g = append((*g)[:0], data...)
	return nil
}

// Pretty renders the guide as two-space indented JSON in the layout of
// JSON.stringify(v, null, 2): key order kept, string escapes decoded,
// numbers in their shortest form. Invalid JSON is returned as is.
func (g Guide) Pretty() string {
	if len(g) == 0 {
		return "null"
	}
	dec := json.NewDecoder(bytes.NewReader(g))
	var b strings.Builder
	if err := writePretty(&b, dec, 0); err != nil {
		return string(g)
	}
	if _, err := dec.Token(); err != io.EOF {
		return string(g)
	}
	return b.String()
}

func writePretty(b *strings.Builder, dec *json.Decoder, depth int) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		return writeContainer(b, dec, t, depth)
	case string:
		writeString(b, t)
	case float64:
		b.WriteString(formatNumber(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case nil:
		b.WriteString("null")
	default:
		return fmt.Errorf("guides: unexpected token %v", tok)
	}
	return nil
}

func writeContainer(b *strings.Builder, dec *json.Decoder, open json.Delim, depth int) error {
	closing := "]"
	if open == '{' {
		closing = "}"
	}
	b.WriteString(open.String())
	n := 0
	for dec.More() {
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		b.WriteString("\n" + strings.Repeat("  ", depth+1))
		if open == '{' {
			key, err := dec.Token()
			if err != nil {
				return err
			}
			k, ok := key.(string)
			if !ok {
				return fmt.Errorf("guides: object key %v", key)
			}
			writeString(b, k)
			b.WriteString(": ")
		}
		if err := writePretty(b, dec, depth+1); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		b.WriteString("\n" + strings.Repeat("  ", depth))
	}
	b.WriteString(closing)
	return nil
}

// writeString quotes s with only the escapes JSON requires.
func writeString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	out := strings.TrimSuffix(buf.String(), "\n")
	out = strings.NewReplacer(`\u2028`, "\u2028", `\u2029`, "\u2029").Replace(out)
	b.WriteString(out)
}

// formatNumber spells f the way JavaScript's Number#toString does.
func formatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	if a := math.Abs(f); a >= 1e21 || a < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		return mant + "e" + sign + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SearchText is the lower-cased pretty text that search queries match against.
func (g Guide) SearchText() string {
	return strings.ToLower(g.Pretty())
}

// Summary describes the guide in one line using the fields the backend is
// known to send: {"url", "guide": {"productTitle"}} or {"url", "error"}.
func (g Guide) Summary() string {
	var probe struct {
		URL   string          `json:"url"`
		Error json.RawMessage `json:"error"`
		Guide struct {
			ProductTitle string `json:"productTitle"`
		} `json:"guide"`
		ProductTitle string `json:"productTitle"`
	}
	if err := json.Unmarshal(g, &probe); err != nil {
		return ""
	}
	title := probe.Guide.ProductTitle
	if title == "" {
		title = probe.ProductTitle
	}
	var parts []string
	if title != "" {
		parts = append(parts, title)
	}
	if len(probe.Error) > 0 && string(probe.Error) != "null" {
		var msg string
		if err := json.Unmarshal(probe.Error, &msg); err != nil {
			msg = string(probe.Error)
		}
		parts = append(parts, "error: "+msg)
	}
	if probe.URL != "" {
		parts = append(parts, probe.URL)
	}
	return strings.Join(parts, " · ")
}
