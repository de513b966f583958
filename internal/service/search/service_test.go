package search

import (
	"context"
	"errors"
	"testing"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/jmehdipour/customer-lab/internal/service/masking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCustomers struct {
	rows []model.Customer
	err  error
	got  model.Filters
}

func (s *stubCustomers) Search(_ context.Context, f model.Filters) ([]model.Customer, error) {
	s.got = f
	return s.rows, s.err
}

func (s *stubCustomers) Replace(context.Context, []model.Customer) (int, error) { return 0, nil }

func (s *stubCustomers) Count(context.Context) (int64, error) { return 0, nil }

func (s *stubCustomers) StatusCounts(context.Context) ([]model.StatusCount, error) { return nil, nil }

func (s *stubCustomers) TopCity(context.Context) (*model.CityCount, error) { return nil, nil }

func TestSearchMasksCopy(t *testing.T) {
	stored := []model.Customer{{ID: 1, FullName: "Ava Smith", City: "Austin", Status: "active"}}
	repo := &stubCustomers{rows: stored}
	city := "Austin"

	res, err := New(repo, masking.New("dev_salt")).Search(context.Background(), model.Filters{City: &city}, true)
	require.NoError(t, err)

	assert.True(t, res.Masked)
	assert.Equal(t, "A*** S***", res.Results[0].FullName)
	assert.Equal(t, "Ava Smith", stored[0].FullName)
	assert.Equal(t, &city, res.Filters.City)
	assert.Equal(t, &city, repo.got.City)
	assert.GreaterOrEqual(t, res.QueryTimeMs, 0.0)
}

func TestSearchUnmaskedAndEmpty(t *testing.T) {
	res, err := New(&stubCustomers{}, masking.New("")).Search(context.Background(), model.Filters{}, false)
	require.NoError(t, err)
	assert.False(t, res.Masked)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestSearchError(t *testing.T) {
	_, err := New(&stubCustomers{err: errors.New("boom")}, masking.New("")).Search(context.Background(), model.Filters{}, false)
	assert.EqualError(t, err, "boom")
}
