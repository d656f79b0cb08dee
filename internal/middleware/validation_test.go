package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineInput struct {
	AccountID string `json:"account_id" validate:"required"`
}

type journalInput struct {
	JournalType string      `json:"journal_type" validate:"required,journal_type"`
	Status      string      `form:"status" validate:"omitempty,journal_status"`
	Period      string      `json:"period" validate:"omitempty,period"`
	Description string      `json:"description" validate:"max=5"`
	Lines       []lineInput `json:"lines" validate:"dive"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, RegisterValidations(v))
	return v
}

func TestRegisterValidations_Valid(t *testing.T) {
	v := newTestValidator(t)

	err := v.Struct(journalInput{
		JournalType: "MANUAL",
		Status:      "posted",
		Period:      "2024-03",
		Lines:       []lineInput{{AccountID: "acc-1"}},
	})

	assert.NoError(t, err)
}

func TestValidationDetails(t *testing.T) {
	v := newTestValidator(t)

	err := v.Struct(journalInput{
		JournalType: "PETTY_CASH",
		Status:      "archived",
		Period:      "2024-13",
		Description: "too long",
		Lines:       []lineInput{{AccountID: "acc-1"}, {}},
	})
	require.Error(t, err)

	field, details := ValidationDetails(err)

	assert.Equal(t, "journal_type", field)
	assert.ElementsMatch(t, []string{
		"journal_type: Must be one of MANUAL, PURCHASE, SALES, PAYMENT, RECEIPT, ADJUSTMENT, OPENING, CLOSING",
		"status: Must be one of DRAFT, SUBMITTED, APPROVED, POSTED, REVERSED, REJECTED",
		"period: Must be a period formatted as YYYY-MM",
		"description: Must be at most 5 characters",
		"lines[1].account_id: This field is required",
	}, details)
}

func TestValidationDetails_NotAValidationError(t *testing.T) {
	field, details := ValidationDetails(errors.New("unexpected EOF"))

	assert.Empty(t, field)
	assert.Nil(t, details)
}
