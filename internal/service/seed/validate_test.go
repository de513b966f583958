package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonNumber(s string) json.Number { return json.Number(s) }

func TestValidateOK(t *testing.T) {
	err := Validate([]Row{
		{Name: "Ava Smith", City: "Austin", Status: "active"},
		{Name: " Bo Lee ", City: "Boston", Status: " INACTIVE "},
	})
	assert.NoError(t, err)
}

func TestValidateBlankField(t *testing.T) {
	err := Validate([]Row{{Name: "", City: "X", Status: "active"}})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []int{0}, verr.BlankRows)
	assert.Empty(t, verr.InvalidStatus)
	assert.Contains(t, err.Error(), "blank fields in rows (0-based indexes): [0]")
}

func TestValidateInvalidStatus(t *testing.T) {
	err := Validate([]Row{
		{Name: "Ava", City: "Austin", Status: "active"},
		{Name: "Bo", City: "Boston", Status: "pending"},
	})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.BlankRows)
	assert.Equal(t, []StatusSample{{Index: 1, Status: "pending"}}, verr.InvalidStatus)
	assert.Contains(t, err.Error(), "invalid status. Allowed=[active inactive]")
	assert.Contains(t, err.Error(), `(1, "pending")`)
}

func TestValidateReportsBothCategoriesTruncated(t *testing.T) {
	var rows []Row
	for i := 0; i < 25; i++ {
		rows = append(rows, Row{Name: " ", City: "C", Status: "active"})
	}
	for i := 0; i < 15; i++ {
		rows = append(rows, Row{Name: "N", City: "C", Status: fmt.Sprintf("s%d", i)})
	}

	err := Validate(rows)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.BlankRows, 20)
	assert.Equal(t, 25, verr.BlankTotal)
	assert.Len(t, verr.InvalidStatus, 10)
	assert.Equal(t, 15, verr.StatusTotal)
	assert.Equal(t, 25, verr.InvalidStatus[0].Index)
	assert.Contains(t, err.Error(), "blank fields")
	assert.Contains(t, err.Error(), "invalid status")
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Row{{Name: "  Ava Smith ", City: " Austin", Status: "Active "}})
	assert.Equal(t, []model.Customer{{FullName: "Ava Smith", City: "Austin", Status: "active"}}, got)
}
