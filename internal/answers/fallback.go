// Package answers produces the canned HR answers and follow-up suggestions
// used when retrieval cannot supply a trustworthy document answer. Everything
// here is pure and stateless: topic classification is a case-insensitive
// substring test against fixed keyword sets in a fixed priority order.
package answers

import (
	"fmt"
	"strings"
)

// Topic keyword sets, tested in declaration order. Medical wins over leave
// when both match ("medical leave" reads as a benefits question).
var fallbackTopics = []struct {
	keywords []string
	answer   string
}{
	{[]string{"medical", "health", "benefit"}, medicalAnswer},
	{[]string{"vacation", "leave", "time off"}, leaveAnswer},
	{[]string{"allowance", "expense", "travel"}, allowanceAnswer},
	{[]string{"relocation", "relocate", "moving", "budget"}, relocationAnswer},
}

// Fallback returns the canned answer for the first topic matching question,
// or a generic template echoing the question when no topic matches.
func Fallback(question string) string {
	q := strings.ToLower(question)

	for _, topic := range fallbackTopics {
		if !containsAny(q, topic.keywords) {
			continue
		}
		// Leave questions that ask how to apply get the process walkthrough
		// instead of the entitlement summary.
		if topic.answer == leaveAnswer && strings.Contains(q, "apply") {
			return leaveApplyAnswer
		}
		return topic.answer
	}

	return fmt.Sprintf("I found information related to your question about '%s' in our HR knowledge base. "+
		"However, the specific details may vary based on your location, role, and employment terms. "+
		"For the most accurate and personalized information, I recommend contacting HR directly or checking your employee portal.",
		question)
}

// NoResults returns the answer used when keyword search scores zero against
// every record.
func NoResults(question string) string {
	return fmt.Sprintf("I don't have specific information about '%s' in our HR knowledge base.\n\n"+
		"Please contact HR directly for assistance, or try rephrasing your question.", question)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
