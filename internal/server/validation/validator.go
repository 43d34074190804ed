// Package validation implements the ordered, short-circuiting checks a user
// record must pass before it is written. The first failing check wins.
package validation

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
)

const (
	mailLocalPart   = "[a-z0-9!#$%&'*+/=?^_`{|}~-]+"
	mailDomainLabel = "[a-z0-9](?:[a-z0-9-]*[a-z0-9])?"
)

var mailPattern = regexp.MustCompile(fmt.Sprintf(`(?i)^%[1]s(?:\.%[1]s)*@(?:%[2]s\.)+%[2]s$`, mailLocalPart, mailDomainLabel))

// DefaultMinAge is used when no minimum age is configured.
const DefaultMinAge = 18

// MailLookup finds the current owner of a mail address. It returns
// common.ErrorNotFound when nobody owns it.
type MailLookup interface {
	FindByMail(ctx context.Context, mail string) (*models.User, error)
}

// Validator checks candidate records. It has no side effects.
type Validator struct {
	minAge int
	now    func() time.Time
}

// Option customises a Validator.
type Option func(*Validator)

// WithClock replaces time.Now as the source of the current date.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New returns a Validator requiring users to be at least minAge years old.
func New(minAge int, opts ...Option) *Validator {
	v := &Validator{minAge: minAge, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MinAge returns the configured threshold.
func (v *Validator) MinAge() int {
	return v.minAge
}

// ValidMail reports whether mail matches the accepted address grammar.
func ValidMail(mail string) bool {
	return mailPattern.MatchString(mail)
}

// Validate runs the full chain against u. additionalMailCheck lets a record
// keep a mail it already owns (update and patch); on create it is false and
// any existing owner is a conflict.
func (v *Validator) Validate(ctx context.Context, lookup MailLookup, u *models.User, additionalMailCheck bool) error {
	if err := v.validateMail(ctx, lookup, u, additionalMailCheck); err != nil {
		return err
	}
	if u.FirstName == "" {
		return common.MissingField("firstName")
	}
	if u.LastName == "" {
		return common.MissingField("lastName")
	}
	return v.validateAge(u)
}

func (v *Validator) validateMail(ctx context.Context, lookup MailLookup, u *models.User, additionalCheck bool) error {
	if u.Mail == "" {
		return common.MissingField("mail")
	}
	if !ValidMail(u.Mail) {
		return common.InvalidFormat("mail")
	}

	owner, err := lookup.FindByMail(ctx, u.Mail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("mail lookup: %w", err)
	}

	if additionalCheck && owner.ID == u.ID {
		return nil
	}
	return common.ErrDuplicateMail
}

// validateAge computes the age by calendar-year subtraction only; month
// and day do not count.
func (v *Validator) validateAge(u *models.User) error {
	if u.BirthDate.IsZero() {
		return common.MissingField("birthDate")
	}

	age := v.now().Year() - u.BirthDate.Year()
	if age < 0 {
		return common.ErrInvalidAge
	}
	if age < v.minAge {
		return common.TooYoung(v.minAge)
	}
	return nil
}
