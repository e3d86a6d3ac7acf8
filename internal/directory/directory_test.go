package directory

import "testing"

func TestValidateKnownEmployees(t *testing.T) {
	t.Parallel()
	cases := []struct {
		id         string
		name       string
		department string
		grade      string
	}{
		{"EMP001234", "John Doe", "Engineering", "L5"},
		{"EMP005678", "Jane Smith", "HR", "L4"},
		{"EMP009999", "Admin User", "IT", "L6"},
	}

	for _, tc := range cases {
		v := Validate(tc.id)
		if !v.Valid {
			t.Errorf("Validate(%q).Valid = false, want true", tc.id)
			continue
		}
		if v.Employee == nil {
			t.Errorf("Validate(%q).Employee = nil", tc.id)
			continue
		}
		if v.Employee.Name != tc.name || v.Employee.Department != tc.department || v.Employee.Grade != tc.grade {
			t.Errorf("Validate(%q) = %+v, want %s/%s/%s", tc.id, *v.Employee, tc.name, tc.department, tc.grade)
		}
		if want := "Welcome, " + tc.name + "!"; v.Message != want {
			t.Errorf("Validate(%q).Message = %q, want %q", tc.id, v.Message, want)
		}
	}
}

func TestValidateNormalizesInput(t *testing.T) {
	t.Parallel()
	v := Validate("  emp001234 ")
	if !v.Valid || v.Employee == nil || v.Employee.Name != "John Doe" {
		t.Errorf("Validate with lowercase and whitespace = %+v, want John Doe", v)
	}
}

func TestValidateUnknownButWellFormed(t *testing.T) {
	t.Parallel()
	v := Validate("EMP424242")
	if !v.Valid {
		t.Fatal("well-formed unknown ID must validate")
	}
	if v.Employee == nil || v.Employee.Name != "Employee" || v.Employee.Department != "General" || v.Employee.Grade != "L3" {
		t.Errorf("Employee = %+v, want generic Employee/General/L3", v.Employee)
	}
	if want := "Welcome, Employee EMP424242!"; v.Message != want {
		t.Errorf("Message = %q, want %q", v.Message, want)
	}
}

// The acceptance rule is prefix-and-length only: anything normalizing to
// EMP + at least three more characters is accepted generically, digits or
// not. "employee-1" upper-cases to EMPLOYEE-1 and passes.
func TestValidateAcceptsEMPPrefixedIDs(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"employee-1", "EMPLOYEE", "emp999"} {
		v := Validate(id)
		if !v.Valid {
			t.Errorf("Validate(%q).Valid = false, want generic acceptance", id)
			continue
		}
		if v.Employee == nil || v.Employee.Department != "General" {
			t.Errorf("Validate(%q).Employee = %+v, want the generic identity", id, v.Employee)
		}
	}
}

func TestValidateRejectsMalformedIDs(t *testing.T) {
	t.Parallel()
	for _, id := range []string{"", "12345", "EMP12", "EXX123456"} {
		v := Validate(id)
		if v.Valid {
			t.Errorf("Validate(%q).Valid = true, want false", id)
		}
		if v.Employee != nil {
			t.Errorf("Validate(%q).Employee = %+v, want nil", id, v.Employee)
		}
		if v.Message != invalidFormatMessage {
			t.Errorf("Validate(%q).Message = %q, want the format guidance", id, v.Message)
		}
	}
}
