package entries

import (
	"regexp"
	"strings"
	"testing"
)

func TestRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		rule    Rule
		key     string
		value   string
		wantErr bool
	}{
		{"non-empty key accepts", NonEmptyKey(), "k", "", false},
		{"non-empty key rejects", NonEmptyKey(), "", "v", true},
		{"max length at limit", MaxValueLength(3), "k", "abc", false},
		{"max length over limit", MaxValueLength(3), "k", "abcd", true},
		{"max length zero rejects any value", MaxValueLength(0), "k", "a", true},
		{"pattern match", KeyPattern(regexp.MustCompile(`^app\.`)), "app.name", "", false},
		{"pattern mismatch", KeyPattern(regexp.MustCompile(`^app\.`)), "db.name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.rule.Check(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Check(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestRuleNames(t *testing.T) {
	t.Parallel()
	names := map[string]bool{}
	for _, r := range []Rule{NonEmptyKey(), MaxValueLength(1), KeyPattern(regexp.MustCompile(`.`))} {
		name := r.Name()
		if name == "" || strings.ContainsAny(name, " \t") {
			t.Errorf("invalid rule name %q", name)
		}
		if names[name] {
			t.Errorf("duplicate rule name %q", name)
		}
		names[name] = true
	}
}
