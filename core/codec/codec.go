// Package codec converts between vector strings and resolved metric sets.
package codec

import (
	"errors"
	"iter"
	"strings"

	"github.com/huangsam/rvss/schema"
)

// Token is one segment of a vector string.
type Token struct {
	Index     int    // 0-based segment index
	Offset    int    // byte offset of the segment in the original text
	Raw       string // segment text as written
	Code      string
	Value     string
	Prefix    bool // segment is a version prefix such as CVSS:3.0
	Malformed bool // segment is not CODE:TOKEN
}

// trim strips surrounding whitespace and one pair of wrapping parentheses,
// returning the remaining text and its byte offset in text.
func trim(text string) (string, int) {
	start := len(text) - len(strings.TrimLeft(text, " \t\r\n"))
	body := strings.TrimSpace(text)
	if len(body) >= 2 && body[0] == '(' && body[len(body)-1] == ')' {
		return body[1 : len(body)-1], start + 1
	}
	return body, start
}

// Tokens lazily yields the segments of text in input order. It never fails;
// malformed segments are flagged so callers can report them with a position.
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		body, offset := trim(text)
		if body == "" {
			return
		}
		index := 0
		for {
			seg, rest, more := strings.Cut(body, "/")
			tok := Token{Index: index, Offset: offset, Raw: seg}
			switch {
			case index == 0 && schema.PrefixPattern.MatchString(seg):
				tok.Prefix = true
				tok.Code, tok.Value, _ = strings.Cut(seg, ":")
			case strings.Count(seg, ":") == 1:
				tok.Code, tok.Value, _ = strings.Cut(seg, ":")
				tok.Malformed = tok.Code == "" || tok.Value == ""
			default:
				tok.Malformed = true
			}
			if !yield(tok) || !more {
				return
			}
			offset += len(seg) + 1
			body = rest
			index++
		}
	}
}

// SplitPrefix returns the version prefix of text, or "" when it has none.
func SplitPrefix(text string) string {
	for tok := range Tokens(text) {
		if tok.Prefix {
			return tok.Raw
		}
		break
	}
	return ""
}

func segmentError(kind error, tok Token, text string) error {
	return &schema.VectorError{
		Kind:     kind,
		Code:     tok.Code,
		Token:    tok.Value,
		Position: tok.Index,
		Offset:   tok.Offset,
		Vector:   text,
	}
}

// Parse decodes text against sch. Omitted metrics take their defaults. Any
// violation fails with a *schema.VectorError; nothing is silently dropped.
func Parse(text string, sch *schema.Schema) (schema.Resolved, error) {
	tokens := make(map[string]string, sch.Len())
	seen := make(map[string]struct{}, sch.Len())
	empty := true

	for tok := range Tokens(text) {
		empty = false
		if tok.Prefix {
			if tok.Raw != sch.Prefix() {
				return schema.Resolved{}, &schema.VectorError{
					Kind: schema.ErrVersionMismatch, Token: tok.Raw,
					Position: tok.Index, Offset: tok.Offset, Vector: text,
				}
			}
			continue
		}
		if tok.Index == 0 && !sch.IsLegacy() {
			return schema.Resolved{}, &schema.VectorError{
				Kind: schema.ErrVersionMismatch, Token: sch.Prefix(),
				Position: tok.Index, Offset: tok.Offset, Vector: text,
			}
		}
		if tok.Malformed {
			return schema.Resolved{}, &schema.VectorError{
				Kind: schema.ErrMalformed, Token: tok.Raw,
				Position: tok.Index, Offset: tok.Offset, Vector: text,
			}
		}
		m, ok := sch.ByCode(tok.Code)
		if !ok {
			return schema.Resolved{}, segmentError(schema.ErrUnknownMetric, tok, text)
		}
		if _, ok := m.Value(tok.Value); !ok {
			return schema.Resolved{}, segmentError(schema.ErrUnknownValue, tok, text)
		}
		if _, dup := seen[tok.Code]; dup {
			return schema.Resolved{}, segmentError(schema.ErrDuplicateMetric, tok, text)
		}
		seen[tok.Code] = struct{}{}
		tokens[m.Name] = tok.Value
	}

	if empty {
		return schema.Resolved{}, schema.NewVectorError(schema.ErrMalformed, "", text)
	}

	r, err := sch.Resolve(tokens)
	if err != nil {
		var ve *schema.VectorError
		if errors.As(err, &ve) {
			ve.Vector = text
		}
		return schema.Resolved{}, err
	}
	return r, nil
}

type options struct {
	defaults bool
	prefix   bool
}

// Option tunes Serialize.
type Option func(*options)

// WithDefaults emits metrics that hold their default value.
func WithDefaults() Option {
	return func(o *options) {
		o.defaults = true
	}
}

// WithPrefix emits the version prefix even for legacy schemas.
func WithPrefix() Option {
	return func(o *options) {
		o.prefix = true
	}
}

// Serialize encodes r in schema order. By default metrics that hold their
// default value are omitted and legacy schemas are written without prefix,
// unless that would leave no segment at all. Parse(Serialize(r)) equals r
// under every option.
func Serialize(r schema.Resolved, opts ...Option) string {
	sch := r.Schema()
	if sch == nil {
		return ""
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	parts := make([]string, 0, sch.Len()+1)
	if !sch.IsLegacy() || o.prefix {
		parts = append(parts, sch.Prefix())
	}
	for m, v := range r.All() {
		if !o.defaults && m.IsDefault(v.Token) {
			continue
		}
		parts = append(parts, m.Code+":"+v.Token)
	}
	if len(parts) == 0 {
		return sch.Prefix()
	}
	return strings.Join(parts, "/")
}
