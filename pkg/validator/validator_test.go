package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name      string `json:"name" validate:"required,max=64"`
	Threshold int    `json:"reorder_threshold" validate:"gte=0"`
}

func TestValidateStructPasses(t *testing.T) {
	require.NoError(t, ValidateStruct(&samplePayload{Name: "독감 백신", Threshold: 5}))
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(&samplePayload{Name: "", Threshold: -1})
	require.Error(t, err)

	failures, ok := err.(FieldErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)

	fields := []string{failures[0].Field, failures[1].Field}
	require.Contains(t, fields, "name")
	require.Contains(t, fields, "reorder_threshold")
}

func TestFieldErrorsMessage(t *testing.T) {
	err := ValidateStruct(&samplePayload{Threshold: 1})
	require.EqualError(t, err, "validation failed on 1 field(s)")
}
