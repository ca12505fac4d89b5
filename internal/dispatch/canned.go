package dispatch

import (
	"context"
	"strings"
)

// Action sentinels: replies the client interprets as side effects rather
// than prose.
const (
	ActionOpenYouTube  = "OPEN_YOUTUBE"
	ActionOpenGoogle   = "OPEN_GOOGLE"
	ActionOpenFacebook = "OPEN_FACEBOOK"
	ActionOpenSBTET    = "OPEN_SBTET"
	ActionOpenMusic    = "OPEN_MUSIC"
)

// ShutdownReply acknowledges a shutdown/quit request; the client drives the
// actual shutdown flow.
const ShutdownReply = "Ok sir. Shutting down."

// cannedReply pairs trigger substrings with a fixed response. Matching is
// plain substring containment, so "thank you" hits via "thank" and short
// triggers like "hi" also fire inside longer words; both quirks are part of
// the observable behavior.
type cannedReply struct {
	triggers []string
	reply    string
}

var cannedReplies = []cannedReply{
	{[]string{"what is your name"}, "My name is Virtual Assistant"},
	{[]string{"hello", "hye", "hay", "hi"}, "Hey sir, how can I help you!"},
	{[]string{"how are you"}, "I am doing great these days, sir."},
	{[]string{"thanku", "thank"}, "It's my pleasure, sir, to stay with you."},
	{[]string{"good morning"}, "Good morning sir, I think you might need some help."},
}

func tryCanned(_ context.Context, msg string) (string, bool) {
	for _, c := range cannedReplies {
		for _, trigger := range c.triggers {
			if strings.Contains(msg, trigger) {
				return c.reply, true
			}
		}
	}
	return "", false
}

// bulletin is a fixed snapshot, not live data.
const bulletin = "📰 Here are some current affairs (April 7, 2025):\n" +
	"- India and Japan sign defense cooperation pact.\n" +
	"- ISRO announces launch of Chandrayaan-4 in December.\n" +
	"- Stock markets see record high this week.\n" +
	"- NASA confirms water traces on Europa.\n" +
	"- T20 World Cup preparations begin across nations."

// openTarget maps an "open <target>" phrase to its sentinel. Unlisted
// targets fall through to later rules.
type openTarget struct {
	phrase string
	action string
}

var openTargets = []openTarget{
	{"open youtube", ActionOpenYouTube},
	{"open google", ActionOpenGoogle},
	{"open facebook", ActionOpenFacebook},
	{"open sbtet", ActionOpenSBTET},
	{"open music", ActionOpenMusic},
}

func tryOpenTarget(_ context.Context, msg string) (string, bool) {
	for _, t := range openTargets {
		if strings.Contains(msg, t.phrase) {
			return t.action, true
		}
	}
	return "", false
}
