// Package validation checks single string inputs and reports the
// first problem as a user-facing message. An empty message means
// the input is valid.
package validation

import (
	"fmt"
	"regexp"
	"sync"
)

const defaultFieldName = "field"

// Rule inspects input and returns a message, or "" if it passes.
// field is the display label to use in the message.
type Rule interface {
	Check(field, input string) string
}

type RuleFunc func(field, input string) string

func (f RuleFunc) Check(field, input string) string {
	return f(field, input)
}

// Field evaluates its rules in order and stops at the first message.
type Field struct {
	Name  string
	Rules []Rule
}

func (f Field) Validate(input string) string {
	name := f.Name
	if name == "" {
		name = defaultFieldName
	}

	for _, rule := range f.Rules {
		if msg := rule.Check(name, input); msg != "" {
			return msg
		}
	}
	return ""
}

func Required() Rule {
	return RuleFunc(func(field, input string) string {
		if input == "" {
			return fmt.Sprintf("The %s is required", field)
		}
		return ""
	})
}

// anchored maps a pattern to its whole-input form, compiled once.
var anchored sync.Map

func anchor(re *regexp.Regexp) *regexp.Regexp {
	if full, ok := anchored.Load(re); ok {
		return full.(*regexp.Regexp)
	}
	full, _ := anchored.LoadOrStore(re, regexp.MustCompile(`^(?:`+re.String()+`)$`))
	return full.(*regexp.Regexp)
}

// Pattern expects re to match the whole input, anchored or not.
// re must be a plain RE2 expression: it is recompiled from its
// source, so Longest and CompilePOSIX semantics are not kept.
func Pattern(re *regexp.Regexp) Rule {
	full := anchor(re)
	return RuleFunc(func(field, input string) string {
		if !full.MatchString(input) {
			return fmt.Sprintf("Invalid %s format", field)
		}
		return ""
	})
}

// Custom defers to check; whatever it returns is the result.
func Custom(check func(input string) string) Rule {
	return RuleFunc(func(_, input string) string {
		return check(input)
	})
}

// Config is the declarative form of a Field. Checks run in a
// fixed order: Required, then Pattern, then Custom.
type Config struct {
	FieldName string
	Required  bool
	Pattern   *regexp.Regexp
	Custom    func(input string) string
}

func (c Config) Field() Field {
	f := Field{Name: c.FieldName}
	if c.Required {
		f.Rules = append(f.Rules, Required())
	}
	if c.Pattern != nil {
		f.Rules = append(f.Rules, Pattern(c.Pattern))
	}
	if c.Custom != nil {
		f.Rules = append(f.Rules, Custom(c.Custom))
	}
	return f
}

func Validate(input string, cfg Config) string {
	return cfg.Field().Validate(input)
}
