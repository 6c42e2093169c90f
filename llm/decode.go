package llm

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/maximecaron/deepresearch/schema"
)

// DecodeStructured parses raw into out and checks its structural
// constraints. Models occasionally wrap JSON in prose or markdown fences, so
// any direct decode failure triggers a single best-effort recovery: the
// substring between the first '{' and the last '}' inclusive. The leading
// prose may itself start with a JSON literal ("true enough, here: {...}"),
// which makes the direct decode fail with a type error rather than a syntax
// error; recovery runs regardless of how the direct decode failed. If the
// final attempt cannot be parsed as JSON the result is a
// *MalformedOutputError; if it parses but violates the contract the result
// is a *schema.ValidationError.
func DecodeStructured(raw string, out schema.Schema) error {
	if err := decodeStrict(raw, out); err != nil {
		sub, ok := braceSpan(raw)
		if !ok || sub == raw {
			return classify(out, err, raw)
		}
		if rerr := decodeStrict(sub, out); rerr != nil {
			return classify(out, rerr, raw)
		}
	}

	if err := out.Validate(); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) && verr.Raw == "" {
			verr.Raw = raw
		}
		return err
	}
	return nil
}

// errTrailingData means the input held a valid JSON value followed by more
// content, e.g. "null — see: {...}" or "{...} hope this helps".
var errTrailingData = errors.New("trailing data after JSON value")

// decodeStrict decodes s into out, rejecting unknown fields and trailing
// content after the value.
func decodeStrict(s string, out any) error {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}

// classify maps a decode failure to the error taxonomy: not-JSON-at-all
// becomes *MalformedOutputError, JSON that does not fit the contract becomes
// *schema.ValidationError.
func classify(out schema.Schema, err error, raw string) error {
	if isParseError(err) {
		return &MalformedOutputError{Raw: raw, Err: err}
	}
	return violation(out, err, raw)
}

// isParseError reports whether err means the input was not JSON at all, as
// opposed to JSON that does not fit the target type.
func isParseError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, errTrailingData)
}

// braceSpan returns the substring between the first '{' and the last '}'
// inclusive.
func braceSpan(s string) (string, bool) {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return "", false
	}
	return s[first : last+1], true
}

func violation(out schema.Schema, err error, raw string) *schema.ValidationError {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		if verr.Raw == "" {
			verr.Raw = raw
		}
		return verr
	}
	return &schema.ValidationError{
		Schema:     out.SchemaName(),
		Constraint: err.Error(),
		Raw:        raw,
	}
}
