package algebra

import (
	"context"
	"strings"
)

// Apology is the fixed reply for any engine failure. The keyword already
// committed us to the math route, so a failure terminates dispatch with
// this string instead of falling through.
const Apology = "Sorry, I couldn't solve that. Try checking your expression."

// Router recognizes the five symbolic commands and hands the stripped
// remainder to the algebra engine.
type Router struct {
	engine Engine
}

// NewRouter creates a Router on top of an engine.
func NewRouter(engine Engine) *Router {
	return &Router{engine: engine}
}

// Solve inspects text for a symbolic-math command. ok=false means no
// command keyword was present and the dispatcher should try the next rule.
// ok=true with the Apology text means the route matched but the engine
// could not produce an answer.
func (r *Router) Solve(ctx context.Context, text string) (reply string, ok bool) {
	expr := strings.ToLower(text)
	// Callers type caret for exponentiation; the engine speaks **.
	expr = strings.ReplaceAll(expr, "^", "**")

	switch {
	case strings.Contains(expr, "solve"):
		eq := strings.TrimSpace(strings.ReplaceAll(expr, "solve", ""))
		sides := strings.Split(eq, "=")
		if len(sides) != 2 {
			return Apology, true
		}
		result, err := r.engine.Eval(ctx, OpSolve, "", strings.TrimSpace(sides[0]), strings.TrimSpace(sides[1]))
		if err != nil {
			return Apology, true
		}
		return "Solution: " + result, true

	case strings.Contains(expr, "differentiate"), strings.Contains(expr, "derivative"):
		e := strings.ReplaceAll(expr, "differentiate", "")
		e = strings.TrimSpace(strings.ReplaceAll(e, "derivative", ""))
		result, err := r.engine.Eval(ctx, OpDifferentiate, e, "", "")
		if err != nil {
			return Apology, true
		}
		return "Derivative: " + result, true

	case strings.Contains(expr, "integrate"):
		e := strings.TrimSpace(strings.ReplaceAll(expr, "integrate", ""))
		result, err := r.engine.Eval(ctx, OpIntegrate, e, "", "")
		if err != nil {
			return Apology, true
		}
		return "Integral: " + result, true

	case strings.Contains(expr, "simplify"):
		e := strings.TrimSpace(strings.ReplaceAll(expr, "simplify", ""))
		result, err := r.engine.Eval(ctx, OpSimplify, e, "", "")
		if err != nil {
			return Apology, true
		}
		return "Simplified: " + result, true

	case strings.Contains(expr, "limit"):
		// Only the limit as x approaches +infinity is supported.
		e := strings.TrimSpace(strings.ReplaceAll(expr, "limit", ""))
		result, err := r.engine.Eval(ctx, OpLimit, e, "", "")
		if err != nil {
			return Apology, true
		}
		return "Limit as x approaches ∞: " + result, true
	}

	return "", false
}
