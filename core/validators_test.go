package core

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	InitValidators(validate, translator)

	type input struct {
		Date   string      `json:"date" validate:"required,isodate"`
		Amount json.Number `json:"amount" validate:"omitempty,amount"`
	}

	tests := []struct {
		name       string
		in         input
		wantFields map[string]string
	}{
		{name: "valid", in: input{Date: "2025-06-30", Amount: "12.50"}},
		{name: "valid date-time", in: input{Date: "2025-06-30T10:00:00Z"}},
		{name: "largest amount", in: input{Date: "2025-06-30", Amount: "99999999.99"}},
		{
			name:       "amount above NUMERIC(10,2)",
			in:         input{Date: "2025-06-30", Amount: "99999999.995"},
			wantFields: map[string]string{"amount": "must be a non-negative decimal number up to 99999999.99"},
		},
		{
			name:       "missing date",
			in:         input{},
			wantFields: map[string]string{"date": "this field is required"},
		},
		{
			name: "bad values",
			in:   input{Date: "30-06-2025", Amount: "-1"},
			wantFields: map[string]string{
				"date":   "must be an ISO date (YYYY-MM-DD) or date-time",
				"amount": "must be a non-negative decimal number up to 99999999.99",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.in)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			got := make(map[string]string, len(vErrs))
			for _, fe := range vErrs {
				got[fe.Field()] = fe.Translate(translator)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}
