// Package directory resolves employee IDs to identities. It ships with the
// demo directory the web client expects; a real deployment would replace the
// lookup with an HRIS integration while keeping the same validation rules.
package directory

import (
	"fmt"
	"strings"
)

// Employee is the public identity attached to a validated ID.
type Employee struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

// Validation is the outcome of an employee ID check.
type Validation struct {
	// Valid reports whether the ID resolved to an identity.
	Valid bool `json:"valid"`
	// Employee is nil when the ID is invalid.
	Employee *Employee `json:"user_info"`
	// Message is the user-facing greeting or rejection.
	Message string `json:"message"`
}

// demoDirectory holds the well-known demo identities.
var demoDirectory = map[string]Employee{
	"EMP001234": {Name: "John Doe", Department: "Engineering", Grade: "L5"},
	"EMP005678": {Name: "Jane Smith", Department: "HR", Grade: "L4"},
	"EMP009999": {Name: "Admin User", Department: "IT", Grade: "L6"},
}

// invalidFormatMessage is shown verbatim by the web client; keep it stable.
const invalidFormatMessage = "Invalid Employee ID format. Please use format: EMP123456"

// Validate checks an employee ID. IDs are case-insensitive and surrounding
// whitespace is ignored. Unknown IDs in the right format resolve to a
// generic employee identity rather than a rejection, so the demo works
// without a full directory behind it.
func Validate(userID string) Validation {
	id := strings.ToUpper(strings.TrimSpace(userID))

	if emp, found := demoDirectory[id]; found {
		return Validation{
			Valid:    true,
			Employee: &emp,
			Message:  fmt.Sprintf("Welcome, %s!", emp.Name),
		}
	}

	if strings.HasPrefix(id, "EMP") && len(id) >= 6 {
		return Validation{
			Valid:    true,
			Employee: &Employee{Name: "Employee", Department: "General", Grade: "L3"},
			Message:  fmt.Sprintf("Welcome, Employee %s!", id),
		}
	}

	return Validation{Message: invalidFormatMessage}
}
