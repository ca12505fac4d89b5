package wiki

import (
	"context"
	"strings"
	"sync"
)

// Fixed user-facing replies.
const (
	promptFirst = "Please ask about a topic first."
	noMore      = "No more information available."
	apology     = "Sorry, I couldn't find information on that topic."
)

// Pager owns the single cross-request {topic, offset} record and serves
// encyclopedia answers in 2-sentence windows. The mutex keeps concurrent
// chats from corrupting the pair; interleaved conversations are still
// last-writer-wins, which is an accepted limitation of the single shared
// record.
type Pager struct {
	client SummaryClient

	mu     sync.Mutex
	topic  string
	offset int
}

// NewPager creates a Pager with no stored topic.
func NewPager(client SummaryClient) *Pager {
	return &Pager{client: client}
}

// Lookup serves a topic query. With more=false, query becomes the stored
// topic and the window rewinds to the start; with more=true the query is
// ignored and the window advances two sentences through the stored topic.
// All failures map to fixed replies, never errors.
func (p *Pager) Lookup(ctx context.Context, query string, more bool) string {
	p.mu.Lock()
	if more {
		if p.topic == "" {
			p.mu.Unlock()
			return promptFirst
		}
		p.offset += 2
	} else {
		p.topic = strings.TrimSpace(query)
		p.offset = 0
	}
	topic, offset := p.topic, p.offset
	p.mu.Unlock()

	if topic == "" {
		return promptFirst
	}

	summary, err := p.client.Summary(ctx, topic, offset+2)
	if err != nil {
		return apology
	}

	sentences := strings.Split(summary, ". ")
	if offset >= len(sentences) {
		return noMore
	}
	end := offset + 2
	if end > len(sentences) {
		end = len(sentences)
	}

	window := strings.TrimSpace(strings.Join(sentences[offset:end], ". "))
	if window == "" {
		return noMore
	}
	return window
}
