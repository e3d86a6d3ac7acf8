package answers

import (
	"strings"
	"testing"
)

func TestFallbackTopicSelection(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		question string
		contains string
	}{
		{"medical", "what medical cover do I have", "Health Insurance Coverage"},
		{"health alias", "health plan options", "Health Insurance Coverage"},
		{"benefit alias", "benefit enrollment", "Health Insurance Coverage"},
		{"leave entitlement", "how much vacation do I get", "Annual Leave Entitlements"},
		{"time off phrase", "policy on time off", "Annual Leave Entitlements"},
		{"leave apply variant", "how do I apply for leave", "Application Process"},
		{"allowance", "what travel allowance applies", "Travel Allowances"},
		{"relocation", "relocation budget for transfers", "Relocation Budget Tiers"},
		{"moving alias", "moving to another city", "Relocation Budget Tiers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Fallback(tc.question)
			if !strings.Contains(got, tc.contains) {
				t.Errorf("Fallback(%q) missing %q; got %.80q...", tc.question, tc.contains, got)
			}
		})
	}
}

func TestFallbackPriorityMedicalOverLeave(t *testing.T) {
	t.Parallel()

	// "medical leave" matches both topic sets; medical is declared first.
	got := Fallback("what is the medical leave policy")
	if !strings.Contains(got, "Health Insurance Coverage") {
		t.Errorf("expected medical answer, got %.80q...", got)
	}
}

func TestFallbackGenericEchoesQuestion(t *testing.T) {
	t.Parallel()

	got := Fallback("parking at the Pune office")
	if !strings.Contains(got, "'parking at the Pune office'") {
		t.Errorf("generic fallback must echo the question, got %q", got)
	}
	if !strings.Contains(got, "contacting HR directly") {
		t.Errorf("generic fallback missing HR pointer: %q", got)
	}
}

func TestNoResultsEchoesQuestion(t *testing.T) {
	t.Parallel()

	got := NoResults("quantum cafeteria")
	if !strings.Contains(got, "'quantum cafeteria'") {
		t.Errorf("NoResults must echo the question, got %q", got)
	}
}

func TestSuggestGroups(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		question string
		first    string
		wantLen  int
	}{
		{"leave", "vacation carryover rules", "How many vacation days do I get?", 3},
		{"medical", "health insurance enrollment", "What medical benefits do I have?", 3},
		{"pay", "salary revision cycle", "What allowances am I eligible for?", 3},
		{"default", "office dress code", "What are my medical benefits?", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Suggest(tc.question)
			if len(got) != tc.wantLen {
				t.Fatalf("Suggest(%q) returned %d items, want %d", tc.question, len(got), tc.wantLen)
			}
			if got[0] != tc.first {
				t.Errorf("Suggest(%q)[0] = %q, want %q", tc.question, got[0], tc.first)
			}
		})
	}
}

// Suggestions must always have 3 or 4 items, whatever the query looks like.
func TestSuggestNeverEmpty(t *testing.T) {
	t.Parallel()

	for _, q := range []string{"", "  ", "zzzz", "leave medical salary", "ПРИВЕТ", strings.Repeat("x", 4096)} {
		got := Suggest(q)
		if len(got) < 3 || len(got) > 4 {
			t.Errorf("Suggest(%q) returned %d items, want 3 or 4", q, len(got))
		}
	}
}

func TestSuggestPriorityLeaveOverMedical(t *testing.T) {
	t.Parallel()

	got := Suggest("medical leave certificate")
	if got[0] != "How many vacation days do I get?" {
		t.Errorf("leave group should win for suggestions, got first item %q", got[0])
	}
}
