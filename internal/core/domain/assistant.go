package domain

import "errors"

var (
	ErrAssistantUnavailable = errors.New("assistant is not configured")
	ErrEmptyMessage         = errors.New("message is required")
)

// OffTopicReply is the exact answer the assistant gives to questions
// unrelated to emissions or the tracker.
const OffTopicReply = "sorry my ai model is not trained to give that answer"

// RecentActivityLimit bounds how many descriptions go into a suggestion prompt.
const RecentActivityLimit = 5

var faqs = []string{
	"How is my carbon footprint calculated?",
	"What are emission factors?",
	"How can I reduce my transport emissions?",
	"What's the most impactful change I can make?",
	"How does my diet affect my carbon footprint?",
	"Is this app free to use?",
}

func FAQs() []string {
	out := make([]string, len(faqs))
	copy(out, faqs)
	return out
}
