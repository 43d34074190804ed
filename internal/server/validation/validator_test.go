package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/dmitrijs2005/userdirectory/internal/server/models"
	"github.com/dmitrijs2005/userdirectory/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	owners map[string]*models.User
	err    error
	calls  int
}

func (f *fakeLookup) FindByMail(ctx context.Context, mail string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.owners[mail]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func newValidator() *Validator {
	return New(18, WithClock(func() time.Time { return fixedNow }))
}

func validUser() *models.User {
	return &models.User{
		Mail:      "a@example.com",
		FirstName: "Ann",
		LastName:  "Smith",
		BirthDate: timex.NewDate(1990, time.April, 17),
	}
}

func TestValidMail(t *testing.T) {
	valid := []string{
		"a@example.com",
		"first.last@sub.example.org",
		"A.B@EXAMPLE.COM",
		"x!#$%&'*+/=?^_`{|}~-@a-b.c0",
		"o'neil@example.co.uk",
		"1@2.3",
	}
	for _, m := range valid {
		assert.True(t, ValidMail(m), m)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"a@",
		"a@example",
		".a@example.com",
		"a.@example.com",
		"a..b@example.com",
		"a@.example.com",
		"a@example.com.",
		"a@-example.com",
		"a@example-.com",
		"a b@example.com",
		"a@exa_mple.com",
		"a@@example.com",
	}
	for _, m := range invalid {
		assert.False(t, ValidMail(m), m)
	}
}

func TestValidate_AcceptsValidRecord(t *testing.T) {
	lookup := &fakeLookup{}
	require.NoError(t, newValidator().Validate(context.Background(), lookup, validUser(), false))
	assert.Equal(t, 1, lookup.calls)
}

func TestValidate_Chain(t *testing.T) {
	owner := &models.User{ID: 1, Mail: "taken@example.com"}

	tests := []struct {
		name            string
		mutate          func(u *models.User)
		additionalCheck bool
		wantErr         error
		wantMsg         string
	}{
		{
			name:    "missing mail",
			mutate:  func(u *models.User) { u.Mail = "" },
			wantErr: common.ErrMissingField,
			wantMsg: "unknown email value",
		},
		{
			name:    "missing mail wins over everything else",
			mutate:  func(u *models.User) { *u = models.User{} },
			wantErr: common.ErrMissingField,
			wantMsg: "unknown email value",
		},
		{
			name:    "bad mail grammar",
			mutate:  func(u *models.User) { u.Mail = "not-a-mail" },
			wantErr: common.ErrInvalidFormat,
			wantMsg: "invalid email regex",
		},
		{
			name:    "mail owned by someone else on create",
			mutate:  func(u *models.User) { u.Mail = "taken@example.com" },
			wantErr: common.ErrDuplicateMail,
		},
		{
			name:    "own mail on create is still a conflict",
			mutate:  func(u *models.User) { u.ID = 1; u.Mail = "taken@example.com" },
			wantErr: common.ErrDuplicateMail,
		},
		{
			name:            "mail owned by a different id on update",
			mutate:          func(u *models.User) { u.ID = 2; u.Mail = "taken@example.com" },
			additionalCheck: true,
			wantErr:         common.ErrDuplicateMail,
		},
		{
			name:            "keeping own mail on update",
			mutate:          func(u *models.User) { u.ID = 1; u.Mail = "taken@example.com" },
			additionalCheck: true,
		},
		{
			name:            "duplicate mail wins over missing first name",
			mutate:          func(u *models.User) { u.Mail = "taken@example.com"; u.FirstName = "" },
			additionalCheck: true,
			wantErr:         common.ErrDuplicateMail,
		},
		{
			name:    "missing first name",
			mutate:  func(u *models.User) { u.FirstName = ""; u.LastName = "" },
			wantErr: common.ErrMissingField,
			wantMsg: "unknown first name value",
		},
		{
			name:    "missing last name",
			mutate:  func(u *models.User) { u.LastName = ""; u.BirthDate = timex.Date{} },
			wantErr: common.ErrMissingField,
			wantMsg: "unknown last name value",
		},
		{
			name:    "missing birth date",
			mutate:  func(u *models.User) { u.BirthDate = timex.Date{} },
			wantErr: common.ErrMissingField,
			wantMsg: "unknown birth date value",
		},
		{
			name:    "birth year after current year",
			mutate:  func(u *models.User) { u.BirthDate = timex.NewDate(2025, time.January, 1) },
			wantErr: common.ErrInvalidAge,
		},
		{
			name:    "born this year is age zero",
			mutate:  func(u *models.User) { u.BirthDate = timex.NewDate(2024, time.December, 31) },
			wantErr: common.ErrTooYoung,
			wantMsg: "user's age must be at least 18",
		},
		{
			name:    "seventeen by year subtraction",
			mutate:  func(u *models.User) { u.BirthDate = timex.NewDate(2007, time.January, 1) },
			wantErr: common.ErrTooYoung,
		},
		{
			name:   "eighteen by year subtraction even before the birthday",
			mutate: func(u *models.User) { u.BirthDate = timex.NewDate(2006, time.December, 31) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			lookup := &fakeLookup{owners: map[string]*models.User{owner.Mail: owner}}

			err := newValidator().Validate(context.Background(), lookup, u, tt.additionalCheck)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.EqualError(t, err, tt.wantMsg)
			}
		})
	}
}

func TestValidate_ShortCircuitsBeforeLookup(t *testing.T) {
	lookup := &fakeLookup{}
	u := validUser()
	u.Mail = "broken"

	err := newValidator().Validate(context.Background(), lookup, u, false)

	require.ErrorIs(t, err, common.ErrInvalidFormat)
	assert.Zero(t, lookup.calls, "store must not be consulted after a grammar failure")
}

func TestValidate_LookupFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	lookup := &fakeLookup{err: boom}

	err := newValidator().Validate(context.Background(), lookup, validUser(), false)

	require.ErrorIs(t, err, boom)
	assert.False(t, common.IsClientError(err))
}

func TestValidate_MinAgeZeroAllowsNewborns(t *testing.T) {
	v := New(0, WithClock(func() time.Time { return fixedNow }))
	u := validUser()
	u.BirthDate = timex.NewDate(2024, time.January, 1)

	require.NoError(t, v.Validate(context.Background(), &fakeLookup{}, u, false))
	assert.Equal(t, 0, v.MinAge())
}

func TestNew_DefaultClock(t *testing.T) {
	v := New(DefaultMinAge)
	u := validUser()
	u.BirthDate = timex.DateOf(time.Now()).AddYears(1)

	require.ErrorIs(t, v.Validate(context.Background(), &fakeLookup{}, u, false), common.ErrInvalidAge)
}
