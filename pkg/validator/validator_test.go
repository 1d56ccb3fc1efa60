package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Phone string `json:"phone" validate:"required,phone"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02,notpast"`
}

type noteForm struct {
	Name    string `json:"name" validate:"required,notblank,max=100"`
	Message string `json:"message" validate:"max=2000"`
}

func fixedClock() time.Time {
	return time.Date(2025, time.March, 10, 23, 30, 0, 0, time.UTC)
}

func TestValidatePhone(t *testing.T) {
	v := NewValidator(fixedClock)

	cases := []struct {
		phone string
		valid bool
	}{
		{"+79161234567", true},
		{"123456789", true},
		{"+1123456789012345", true},
		{"abc", false},
		{"12345678", false},
		{"+7 916 123 45 67", false},
		{"1234567890123456789", false},
	}

	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			err := v.Validate(&bookingForm{Phone: tc.phone, Date: "2025-03-10"})
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			errs := v.FormatValidationErrors(err)
			assert.Contains(t, errs, "phone")
		})
	}
}

func TestValidateNotPast(t *testing.T) {
	v := NewValidator(fixedClock)

	assert.NoError(t, v.Validate(&bookingForm{Phone: "+79161234567", Date: "2025-03-10"}))
	assert.NoError(t, v.Validate(&bookingForm{Phone: "+79161234567", Date: "2025-04-01"}))

	err := v.Validate(&bookingForm{Phone: "+79161234567", Date: "2025-03-09"})
	require.Error(t, err)
	assert.Equal(t, "date cannot be in the past", v.FormatValidationErrors(err)["date"])

	err = v.Validate(&bookingForm{Phone: "+79161234567", Date: "10.03.2025"})
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "date")
}

func TestToday_UsesClockLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	v := NewValidator(func() time.Time { return fixedClock().In(loc) })

	// 23:30 UTC is already the next day at UTC+3.
	assert.Equal(t, time.Date(2025, time.March, 11, 0, 0, 0, 0, loc), v.Today())
	assert.Error(t, v.Validate(&bookingForm{Phone: "+79161234567", Date: "2025-03-10"}))
}

func TestValidateNotBlank(t *testing.T) {
	v := NewValidator(fixedClock)

	assert.NoError(t, v.Validate(&noteForm{Name: " Anna "}))
	assert.NoError(t, v.Validate(&noteForm{Name: "Anna", Message: "   "}))

	for _, blank := range []string{"", " ", "    ", "\t\n", "\u00a0"} {
		err := v.Validate(&noteForm{Name: blank})
		require.Error(t, err, "%q", blank)
		assert.Equal(t, "name is required", v.FormatValidationErrors(err)["name"])
	}
}
