// Package mathexpr rewrites spoken arithmetic ("2 plus 3 x 4") into operator
// form and evaluates it with the yaegi interpreter.
package mathexpr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/traefik/yaegi/interp"
)

// Rule is a single literal rewrite applied to the case-folded utterance.
// Rules run in declaration order. The "x" rule is a known lossy heuristic:
// it also rewrites any letter x inside surrounding words, which makes such
// inputs fail the grammar gate below rather than evaluate wrongly.
type Rule struct {
	From string
	To   string
}

// DefaultRules is the spoken-word substitution table.
var DefaultRules = []Rule{
	{"plus", "+"},
	{"minus", "-"},
	{"x", "*"},
	{"into", "*"},
	{"divided by", "/"},
	{"mod", "%"},
}

// grammar accepts only digits, whitespace, the arithmetic operators,
// decimal points and parentheses. Anything else means "not arithmetic".
var grammar = regexp.MustCompile(`^[0-9\s+\-*/%.()]+$`)

// Evaluator normalizes and evaluates basic arithmetic utterances.
type Evaluator struct {
	rules []Rule
}

// New returns an Evaluator using DefaultRules.
func New() *Evaluator {
	return NewWithRules(DefaultRules)
}

// NewWithRules returns an Evaluator with a custom rewrite table.
func NewWithRules(rules []Rule) *Evaluator {
	return &Evaluator{rules: rules}
}

// Normalize case-folds text and applies the rewrite table.
func (e *Evaluator) Normalize(text string) string {
	s := strings.ToLower(text)
	for _, r := range e.rules {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	return s
}

// Evaluate normalizes text, checks it against the arithmetic grammar and
// evaluates it. It reports ok=false when the input is not arithmetic or the
// expression fails to evaluate (malformed, division by zero); a miss is not
// an error, control is expected to fall through to the next handler.
func (e *Evaluator) Evaluate(text string) (result string, ok bool) {
	expr := e.Normalize(text)
	if !grammar.MatchString(expr) {
		return "", false
	}
	if strings.TrimSpace(expr) == "" {
		return "", false
	}

	v, err := evalArith(expr)
	if err != nil {
		return "", false
	}
	return v, true
}

// evalArith runs the expression through a fresh yaegi interpreter. The
// grammar gate above guarantees the input contains no identifiers, so the
// interpreter can only ever compute arithmetic. Interpreter panics (e.g.
// runtime division by zero) are recovered and reported as errors.
func evalArith(expr string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mathexpr: eval panic: %v", r)
		}
	}()

	i := interp.New(interp.Options{})
	v, err := i.Eval(expr)
	if err != nil {
		return "", fmt.Errorf("mathexpr: eval: %w", err)
	}
	if !v.IsValid() {
		return "", fmt.Errorf("mathexpr: expression produced no value")
	}
	return fmt.Sprintf("%v", v.Interface()), nil
}
