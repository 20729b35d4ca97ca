// Package profile holds the user profile a set of shifts belongs to.
package profile

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/xolan/shifttrack/internal/validation"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxIDLength is the maximum length of a profile ID
const MaxIDLength = 64

// MaxNameLength is the maximum length, in characters, of a name or surname
const MaxNameLength = 100

var idPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// Profile identifies the person whose shifts are tracked.
type Profile struct {
	ID        string
	Name      string
	Surname   string
	CreatedAt time.Time
}

// DisplayName returns "Name Surname".
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.Name + " " + p.Surname)
}

// New validates the given fields and returns a normalised profile.
func New(id, name, surname string) (Profile, error) {
	p := Profile{
		ID:        strings.TrimSpace(id),
		Name:      NormalizeName(name),
		Surname:   NormalizeName(surname),
		CreatedAt: time.Now().Round(0),
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks the ID and both name fields.
func (p Profile) Validate() error {
	if err := ValidateID(p.ID); err != nil {
		return err
	}
	if err := validateName("name", p.Name); err != nil {
		return err
	}
	return validateName("surname", p.Surname)
}

// ValidateID checks that id is 1-64 characters of letters, digits, '.', '_' or '-'.
func ValidateID(id string) error {
	if id == "" {
		return validation.New("id", "user id is required")
	}
	if len(id) > MaxIDLength {
		return validation.New("id", "must be at most %d characters", MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return validation.New("id", "%q may only contain letters, digits, '.', '_' and '-'", id)
	}
	return nil
}

// NormalizeName trims, collapses inner whitespace, NFC-normalises and
// capitalises each word of a name.
func NormalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return titleCaser.String(norm.NFC.String(s))
}

func validateName(field, s string) error {
	if s == "" {
		return validation.New(field, "%s is required", field)
	}
	if len([]rune(s)) > MaxNameLength {
		return validation.New(field, "must be at most %d characters", MaxNameLength)
	}
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return validation.New(field, "%q must contain only letters", s)
	}
	return nil
}
