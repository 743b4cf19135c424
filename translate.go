// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// An EventFunc receives one translated event: a lower-cased event name, a
// comma-joined kernel-syntax encoding, and a possibly-empty description.
// The strings are only valid for the duration of the call; the function
// must copy anything it needs to retain. If an EventFunc reports an error,
// translation stops and that error is returned to the caller.
type EventFunc func(name, event, desc string) error

// A Translator converts PMU event descriptions from their JSON form into
// perf kernel-syntax event strings. The zero value is not ready for use;
// call NewTranslator.
//
// A Translator reports at most one unknown-MSR diagnostic over its
// lifetime, however many translations it performs. Use a fresh Translator
// per run to reset the suppression.
type Translator struct {
	log      io.Writer // diagnostics stream
	comments bool      // allow comments in the source
	warned   bool      // an unknown-MSR diagnostic was emitted
}

// NewTranslator constructs a new Translator that writes diagnostics to
// os.Stderr.
func NewTranslator() *Translator { return &Translator{log: os.Stderr} }

// SetLog redirects the translator's diagnostics to w.
// Calling SetLog with a nil writer restores the default of os.Stderr.
func (t *Translator) SetLog(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	t.log = w
}

// AllowComments configures the translator to accept (true) or reject
// (false) C++-style comments in the source. Comments are a non-standard
// extension of the JSON spec.
func (t *Translator) AllowComments(ok bool) { t.comments = ok }

// fields maps the string-encoded numeric fields of an event object to
// their kernel-syntax prefixes. Order is fixed; the first match wins.
var fields = []struct {
	name   string
	kernel string
}{
	{"EventCode", "event="},
	{"UMask", "umask="},
	{"CounterMask", "cmask="},
	{"Invert", "inv="},
	{"AnyThread", "any="},
	{"EdgeDetect", "edge="},
	{"SampleAfterValue", "period="},
}

// msrEntry maps a known MSR index to its kernel-syntax prefix.
type msrEntry struct {
	num   string
	pname string
}

var msrs = []msrEntry{
	{"0x3F6", "ldlat="},
	{"0x1A6", "offcore_rsp="},
	{"0x1A7", "offcore_rsp="},
}

// A record accumulates the output of one event object. The three deferred
// slots hold fields whose effect depends on cross-field context and is
// applied only after the whole object has been scanned.
type record struct {
	name, event, desc string

	msr     *msrEntry // resolved MSRIndex descriptor
	msrval  *Token    // raw MSRValue token
	precise *Token    // raw PEBS token
}

// addField appends text and val to *dst, joined to any existing content by
// sep. An empty *dst receives no separator.
func addField(dst *string, sep, text, val string) {
	if *dst != "" {
		*dst += sep
	}
	*dst += text + val
}

// isZero reports whether a string-encoded field value is the literal zero,
// in decimal ("0") or hexadecimal ("0x0", "0x00", ...) form. Zero-valued
// fields contribute nothing to the event encoding.
func isZero(b []byte) bool {
	if len(b) >= 3 && b[0] == '0' && (b[1] == 'x' || b[1] == 'X') {
		b = b[2:]
	}
	if len(b) == 0 {
		return false
	}
	for _, ch := range b {
		if ch != '0' {
			return false
		}
	}
	return true
}

// cutComma truncates b at its first comma. Multi-valued fields keep only
// the first alternative.
func cutComma(b []byte) []byte {
	if i := bytes.IndexByte(b, ','); i >= 0 {
		return b[:i]
	}
	return b
}

// fixDesc strips a single trailing period, and any whitespace after it,
// from s. Trailing dots look ugly in perf list output.
func fixDesc(s string) string {
	trim := strings.TrimRight(s, " \t\r\n\v\f")
	if strings.HasSuffix(trim, ".") {
		return trim[:len(trim)-1]
	}
	return s
}

// matchField applies the table-driven field rule: if field is one of the
// known numeric fields and its value is non-zero, the value is cut at the
// first comma and appended to the event encoding. It reports whether the
// field was consumed.
func matchField(data []byte, field, val Token, nz bool, event *string) bool {
	for _, f := range fields {
		if nz && field.Equal(data, f.name) {
			addField(event, ",", f.kernel, string(cutComma(val.Text(data))))
			return true
		}
	}
	return false
}

// lookupMSR resolves a string-encoded MSR index to its table entry, or nil
// if the index is not known. The value is cut at the first comma before
// matching. An unknown index is diagnosed at most once per Translator.
func (t *Translator) lookupMSR(data []byte, val Token) *msrEntry {
	text := cutComma(val.Text(data))
	for i := range msrs {
		if bytes.Equal(text, []byte(msrs[i].num)) {
			return &msrs[i]
		}
	}
	if !t.warned {
		t.warned = true
		fmt.Fprintf(t.log, "jevents: unknown MSR %s in event file\n", val.Text(data))
	}
	return nil
}

// scanField applies the field-translation rules to a single key/value pair
// of an event object. Fields not matching any rule are ignored, so that
// event files carrying schema fields unknown to this version still
// translate.
func (t *Translator) scanField(data []byte, field, val Token, rec *record) {
	nz := !isZero(val.Text(data))
	switch {
	case matchField(data, field, val, nz, &rec.event):
		// ok
	case field.Equal(data, "EventName"):
		addField(&rec.name, "", string(val.Text(data)), "")
	case field.Equal(data, "BriefDescription"):
		addField(&rec.desc, "", string(val.Text(data)), "")
		rec.desc = fixDesc(rec.desc)
	case field.Equal(data, "PEBS") && nz && !strings.Contains(rec.desc, "(Precise Event)"):
		v := val
		rec.precise = &v
	case field.Equal(data, "MSRIndex") && nz:
		rec.msr = t.lookupMSR(data, val)
	case field.Equal(data, "MSRValue"):
		v := val
		rec.msrval = &v
	case field.Equal(data, "Errata") && !val.Equal(data, "null"):
		addField(&rec.desc, ". ", " Spec update: ", string(val.Text(data)))
	case field.Equal(data, "Data_LA") && nz:
		addField(&rec.desc, ". ", " Supports address when precise", "")
	}
}

// finish applies the deferred cross-field rules after all pairs of an
// object have been scanned. The PEBS annotation must follow the otherwise
// final description, and the MSR clause pairs the prefix resolved from
// MSRIndex with the MSRValue token regardless of their arrival order.
// A resolved MSRIndex without an MSRValue yields no clause.
func (rec *record) finish(data []byte) {
	if rec.precise != nil {
		if rec.precise.Equal(data, "2") {
			addField(&rec.desc, " ", "(Must be precise)", "")
		} else {
			addField(&rec.desc, " ", "(Precise event)", "")
		}
	}
	if rec.msr != nil && rec.msrval != nil {
		addField(&rec.event, ",", rec.msr.pname, string(rec.msrval.Text(data)))
	}
}

// A StructError reports a structural violation of the event-file shape:
// the source is valid JSON, but not a valid event file.
type StructError struct {
	Line int    // 1-based source line of the offending token
	Msg  string // what was expected
	Got  Kind   // the actual token kind
}

// Error satisfies the error interface.
func (e *StructError) Error() string {
	return fmt.Sprintf("line %d: %s, got %s", e.Line, e.Msg, e.Got)
}

func structErr(data []byte, tok Token, msg string) error {
	return &StructError{Line: tok.Line(data), Msg: msg, Got: tok.Kind}
}

// Translate tokenizes data and calls fn once per event object that yields
// both a name and an event encoding. Objects yielding neither are skipped.
// Translate returns nil once the whole array has been consumed, the error
// reported by fn if fn stopped the run, or a *StructError if the source is
// not an array of objects whose keys and values are all strings.
func (t *Translator) Translate(data []byte, fn EventFunc) error {
	toks, err := tokenize(data, t.comments)
	if err != nil {
		return err
	}

	root := toks[0]
	if root.Kind != Array {
		return structErr(data, root, "expected top-level array")
	}
	cur := 1
	for i := 0; i < root.Size; i++ {
		if cur >= len(toks) {
			return structErr(data, root, "expected object")
		}
		obj := toks[cur]
		cur++
		if obj.Kind != Object {
			return structErr(data, obj, "expected object")
		}
		if obj.Size%2 != 0 || cur+obj.Size > len(toks) {
			return structErr(data, obj, "expected even field count")
		}

		var rec record
		for j := 0; j < obj.Size; j += 2 {
			field, val := toks[cur+j], toks[cur+j+1]
			if field.Kind != String {
				return structErr(data, field, "expected field name")
			}
			if val.Kind != String {
				return structErr(data, val, "expected string value")
			}
			t.scanField(data, field, val, &rec)
		}
		cur += obj.Size

		rec.finish(data)
		if rec.name != "" && rec.event != "" {
			if err := fn(strings.ToLower(rec.name), rec.event, rec.desc); err != nil {
				return err
			}
		}
	}

	// The cursor must have consumed exactly the recorded tokens; anything
	// else means the token array no longer matches the tree it flattens.
	if cur != len(toks) {
		return structErr(data, toks[cur], "unexpected tokens at end")
	}
	return nil
}

// TranslateFile reads the event file at path and translates it as by
// Translate. If path is empty, the file is resolved as by DefaultPath.
func (t *Translator) TranslateFile(path string, fn EventFunc) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}
	return t.Translate(data, fn)
}

// Translate is shorthand for NewTranslator().Translate(data, fn).
func Translate(data []byte, fn EventFunc) error {
	return NewTranslator().Translate(data, fn)
}

// TranslateFile is shorthand for NewTranslator().TranslateFile(path, fn).
func TranslateFile(path string, fn EventFunc) error {
	return NewTranslator().TranslateFile(path, fn)
}
