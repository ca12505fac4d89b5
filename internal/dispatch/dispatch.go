// Package dispatch implements the intent engine: an ordered rule chain that
// takes one utterance and deterministically selects exactly one responder.
package dispatch

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ariahq/aria/internal/disease"
	"github.com/ariahq/aria/internal/snippet"
)

// DefaultReply is returned when no rule produced a response. Reaching it is
// success, not an error.
const DefaultReply = "Sorry, I didn’t understand that. Try asking about diseases, math problems, or say 'open YouTube' or upload a file or image."

// SnippetSource looks up a code snippet by utterance.
type SnippetSource interface {
	Lookup(message string) (snippet.Entry, bool)
}

// SymbolicSolver routes symbolic-math commands.
type SymbolicSolver interface {
	Solve(ctx context.Context, text string) (string, bool)
}

// TopicSource serves paginated encyclopedia answers.
type TopicSource interface {
	Lookup(ctx context.Context, query string, more bool) string
}

// MathEvaluator evaluates spoken arithmetic.
type MathEvaluator interface {
	Evaluate(text string) (string, bool)
}

// Rule is one ordered dispatch step. Try reports ok=false to pass control to
// the next rule; the first ok=true reply wins and later rules never run.
type Rule struct {
	Name string
	Try  func(ctx context.Context, msg string) (string, bool)
}

// Options wires the assistant's handlers. Now and Pick default to the real
// clock and math/rand; tests inject them.
type Options struct {
	Snippets SnippetSource
	Math     MathEvaluator
	Algebra  SymbolicSolver
	Wiki     TopicSource

	Now  func() time.Time
	Pick func(n int) int
}

// Assistant is the intent dispatcher. It holds no mutable state of its own;
// the only cross-request state lives behind the TopicSource.
type Assistant struct {
	rules []Rule
}

// New builds the rule chain. The order below is a behavioral contract:
// reordering rules changes observable replies (e.g. "what is your name" must
// beat the "what is " topic prefix).
func New(opts Options) *Assistant {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Pick == nil {
		opts.Pick = rand.Intn
	}

	a := &Assistant{}
	a.rules = []Rule{
		{Name: "canned", Try: tryCanned},
		{Name: "time", Try: func(_ context.Context, msg string) (string, bool) {
			if !strings.Contains(msg, "time now") {
				return "", false
			}
			return opts.Now().Format("Current time is 03:04 PM"), true
		}},
		{Name: "current-affairs", Try: func(_ context.Context, msg string) (string, bool) {
			if !strings.Contains(msg, "current affairs") {
				return "", false
			}
			return bulletin, true
		}},
		{Name: "open-target", Try: tryOpenTarget},
		{Name: "shutdown", Try: func(_ context.Context, msg string) (string, bool) {
			if strings.Contains(msg, "shutdown") || strings.Contains(msg, "quit") {
				return ShutdownReply, true
			}
			return "", false
		}},
		{Name: "topic", Try: func(ctx context.Context, msg string) (string, bool) {
			if !hasTopicPrefix(msg) {
				return "", false
			}
			return opts.Wiki.Lookup(ctx, stripTopicWords(msg), false), true
		}},
		{Name: "topic-more", Try: func(ctx context.Context, msg string) (string, bool) {
			if strings.Contains(msg, "more about him") || strings.Contains(msg, "more about her") {
				return opts.Wiki.Lookup(ctx, "", true), true
			}
			return "", false
		}},
		{Name: "snippet", Try: func(_ context.Context, msg string) (string, bool) {
			e, ok := opts.Snippets.Lookup(msg)
			if !ok {
				return "", false
			}
			return fmt.Sprintf("Here is the %s program:\n```python\n%s\n```", e.Name, e.Source), true
		}},
		{Name: "mathexpr", Try: func(_ context.Context, msg string) (string, bool) {
			result, ok := opts.Math.Evaluate(msg)
			if !ok {
				return "", false
			}
			return "The answer is: " + result, true
		}},
		{Name: "algebra", Try: func(ctx context.Context, msg string) (string, bool) {
			return opts.Algebra.Solve(ctx, msg)
		}},
		{Name: "disease", Try: func(_ context.Context, msg string) (string, bool) {
			return disease.Lookup(msg)
		}},
		{Name: "story", Try: func(_ context.Context, msg string) (string, bool) {
			if !strings.Contains(msg, "tell me a story") {
				return "", false
			}
			return generateStory(storyKeyPoints, opts.Pick), true
		}},
	}
	return a
}

// Dispatch runs the utterance through the rule chain and returns exactly one
// reply, falling back to DefaultReply.
func (a *Assistant) Dispatch(ctx context.Context, message string) string {
	msg := strings.ToLower(message)
	for _, r := range a.rules {
		if reply, ok := r.Try(ctx, msg); ok {
			return reply
		}
	}
	return DefaultReply
}

// RuleNames exposes the evaluation order for tests.
func (a *Assistant) RuleNames() []string {
	names := make([]string, len(a.rules))
	for i, r := range a.rules {
		names[i] = r.Name
	}
	return names
}

// topicPrefixes mark a new encyclopedia topic query.
var topicPrefixes = []string{"about ", "who is ", "what is "}

func hasTopicPrefix(msg string) bool {
	for _, p := range topicPrefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

// stripTopicWords removes all three prefix phrases wherever they occur, not
// just the one that matched. Lossy for a query like "about who is there".
func stripTopicWords(msg string) string {
	s := strings.ReplaceAll(msg, "about", "")
	s = strings.ReplaceAll(s, "who is", "")
	s = strings.ReplaceAll(s, "what is", "")
	return strings.TrimSpace(s)
}
