// Package validation interprets field rule tables over submitted form input.
//
// A rule is plain data: the field it applies to, the transforms run on the
// value, and the check the transformed value must pass. Rules for the same
// field run in order and share the transformed value; once one of them fails,
// the remaining rules for that field are skipped. Other fields are always
// evaluated, so a single pass reports every failing field.
//
//	rules := validation.Rules{
//	    {Field: "name", Transforms: []validation.Transform{validation.Trim}, Check: "required", Message: "Genre Name Required"},
//	    {Field: "name", Transforms: []validation.Transform{validation.Escape}},
//	}
//	record, errs := rules.Apply(validation.FromValues(r.PostForm))
//
// Checks are go-playground/validator tags ("required", "alphanum",
// "oneof=a b", "min=3,max=100") plus the "iso8601" tag registered here.
package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, ok := ParseISO8601(fl.Field().String())
		return ok
	})
}

// Input is raw form input: every field may carry zero, one or many values
type Input map[string][]string

// FromValues copies parsed form values into an Input
func FromValues(v url.Values) Input {
	in := make(Input, len(v))
	for field, values := range v {
		in[field] = append([]string(nil), values...)
	}
	return in
}

// First returns the first value of a field, or "" when absent
func (in Input) First(field string) string {
	if values := in[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// List returns the values of a field as a list: absent -> empty, scalar -> one element
func (in Input) List(field string) []string {
	values := in[field]
	if len(values) == 0 {
		return []string{}
	}
	return append([]string(nil), values...)
}

// Transform rewrites a value before it is checked
type Transform func(string) string

// Trim removes surrounding whitespace
func Trim(s string) string {
	return strings.TrimSpace(s)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces HTML-significant characters with entities so the value is
// safe to display verbatim
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Rule is one step of a field's validation chain
type Rule struct {
	Field      string
	Transforms []Transform

	// Check is a validator tag; Predicate is used when Check is empty.
	// A rule with neither only transforms the value.
	Check     string
	Predicate func(string) bool
	Message   string

	// Optional skips the check when the transformed value is empty
	Optional bool
	// Each applies the rule to every submitted value instead of the first
	Each bool
}

// Rules is an ordered rule table
type Rules []Rule

// FieldError is a failed check on one field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
	Value   string `json:"value"`
}

// Errors is the ordered list of failed checks
type Errors []FieldError

// Has reports whether the field failed any check
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Messages returns the message of every error in order
func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

// Record holds the normalized values a rule table produced
type Record struct {
	values map[string][]string
}

// String returns the normalized value of a scalar field
func (r Record) String(field string) string {
	if values := r.values[field]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Strings returns the normalized values of a list field
func (r Record) Strings(field string) []string {
	return append([]string{}, r.values[field]...)
}

// Fields returns the normalized first value of every field the rules touched
func (r Record) Fields() map[string]string {
	out := make(map[string]string, len(r.values))
	for field := range r.values {
		out[field] = r.String(field)
	}
	return out
}

// Time parses the normalized value of a date field
func (r Record) Time(field string) (time.Time, bool) {
	return ParseISO8601(r.String(field))
}

// Apply runs the rule table against the input. After its first failed check
// a field is not checked again, but its remaining transforms still run.
func (rs Rules) Apply(in Input) (Record, Errors) {
	rec := Record{values: make(map[string][]string)}
	failed := make(map[string]bool)
	var errs Errors

	for _, rule := range rs {
		values, ok := rec.values[rule.Field]
		if !ok {
			if rule.Each {
				values = in.List(rule.Field)
			} else {
				values = []string{in.First(rule.Field)}
			}
		}

		for i, v := range values {
			for _, transform := range rule.Transforms {
				v = transform(v)
			}
			values[i] = v
		}
		rec.values[rule.Field] = values

		if failed[rule.Field] || rule.Optional && allEmpty(values) {
			continue
		}

		for _, v := range values {
			if !rule.passes(v) {
				errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message, Value: v})
				failed[rule.Field] = true
				break
			}
		}
	}

	return rec, errs
}

func (r Rule) passes(value string) bool {
	switch {
	case r.Check != "":
		return validate.Var(value, r.Check) == nil
	case r.Predicate != nil:
		return r.Predicate(value)
	}
	return true
}

func allEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}

var iso8601Layouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseISO8601 parses the ISO-8601 date and date-time forms browsers submit.
// Values without a zone are read as UTC.
func ParseISO8601(s string) (time.Time, bool) {
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
