//go:generate mockgen -source=rules.go -destination=mocks/mock_rule.go -package=mocks

package entries

import (
	"errors"
	"fmt"
	"regexp"
)

// Rule validates a single parsed entry.
type Rule interface {
	// Name identifies the rule in logs.
	Name() string
	// Check returns nil when the entry is acceptable.
	Check(key, value string) error
}

// ErrEmptyKey is returned by the NonEmptyKey rule.
var ErrEmptyKey = errors.New("key is empty")

type nonEmptyKey struct{}

// NonEmptyKey rejects entries with an empty key.
func NonEmptyKey() Rule { return nonEmptyKey{} }

func (nonEmptyKey) Name() string { return "non-empty-key" }

func (nonEmptyKey) Check(key, _ string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return nil
}

type maxValueLength int

// MaxValueLength rejects values longer than n bytes.
func MaxValueLength(n int) Rule { return maxValueLength(n) }

func (maxValueLength) Name() string { return "max-value-length" }

func (m maxValueLength) Check(_, value string) error {
	if len(value) > int(m) {
		return fmt.Errorf("value has %d characters, limit is %d", len(value), int(m))
	}
	return nil
}

type keyPattern struct {
	re *regexp.Regexp
}

// KeyPattern rejects keys that do not match re.
func KeyPattern(re *regexp.Regexp) Rule { return keyPattern{re: re} }

func (keyPattern) Name() string { return "key-pattern" }

func (k keyPattern) Check(key, _ string) error {
	if !k.re.MatchString(key) {
		return fmt.Errorf("does not match %s", k.re)
	}
	return nil
}
