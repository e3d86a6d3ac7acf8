package answers

import "strings"

// Suggest returns 3-4 follow-up questions related to the query's topic.
// The keyword groups are tested in priority order (leave, then medical, then
// pay); the default list always has 4 items, so the result is never empty.
// Note the priority here differs from Fallback on purpose: someone already
// asking about leave is best served by more leave questions, while the
// fallback answer treats "medical leave" as a benefits question.
func Suggest(question string) []string {
	q := strings.ToLower(question)

	switch {
	case containsAny(q, []string{"leave", "vacation", "time off"}):
		return []string{
			"How many vacation days do I get?",
			"What's the sick leave policy?",
			"How do I apply for leave?",
		}
	case containsAny(q, []string{"medical", "health", "insurance"}):
		return []string{
			"What medical benefits do I have?",
			"How do I enroll in health insurance?",
			"What dental coverage is available?",
		}
	case containsAny(q, []string{"salary", "pay", "allowance"}):
		return []string{
			"What allowances am I eligible for?",
			"How is salary calculated?",
			"What are overtime policies?",
		}
	default:
		return []string{
			"What are my medical benefits?",
			"How many vacation days do I get?",
			"What allowances am I eligible for?",
			"Contact HR for personal help",
		}
	}
}
