package models

import "testing"

func TestUnconstrainedCriteria(t *testing.T) {
	c := UnconstrainedCriteria()
	if c.AgeConstrained() {
		t.Error("fresh criteria should not constrain age")
	}
	if !c.ContainsGender("anything") {
		t.Error("unconstrained criteria should accept any gender")
	}
	if !c.ContainsCategory("anything") {
		t.Error("unconstrained criteria should accept any category")
	}
	if c.AgeRangeString() != "any" {
		t.Errorf("AgeRangeString = %q, want 'any'", c.AgeRangeString())
	}
}

func TestAgeRangeString(t *testing.T) {
	tests := []struct {
		name string
		min  int
		max  int
		want string
	}{
		{"bounded", 18, 60, "18-60"},
		{"lower only", 60, NoAgeLimit, "60 and above"},
		{"upper only", 0, 18, "up to 18"},
		{"unbounded", 0, NoAgeLimit, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Criteria{AgeMin: tt.min, AgeMax: tt.max}
			if got := c.AgeRangeString(); got != tt.want {
				t.Errorf("AgeRangeString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContainsGender(t *testing.T) {
	c := Criteria{Genders: []string{"female"}}
	if !c.ContainsGender("Female") {
		t.Error("gender match should be case-insensitive")
	}
	if !c.ContainsGender("  female  ") {
		t.Error("gender match should trim whitespace")
	}
	if c.ContainsGender("male") {
		t.Error("unlisted gender should not match")
	}
}

func TestAgeConstrained(t *testing.T) {
	lower := Criteria{AgeMin: 18, AgeMax: NoAgeLimit}
	if !lower.AgeConstrained() {
		t.Error("lower bound alone should constrain age")
	}
	upper := Criteria{AgeMin: 0, AgeMax: 60}
	if !upper.AgeConstrained() {
		t.Error("upper bound alone should constrain age")
	}
}
