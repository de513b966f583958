package masking

import (
	"testing"

	"github.com/jmehdipour/customer-lab/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ava Smith", "A*** S***"},
		{"A B", "* *"},
		{"", ""},
		{"   ", ""},
		{"Jo", "J***"},
		{"  Mary   Ann  Lee ", "M*** A*** L***"},
		{"Élodie Ö", "É*** *"},
		{"X", "*"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestMaskerDoesNotMutateInput(t *testing.T) {
	rows := []model.Customer{{ID: 1, FullName: "Ava Smith", City: "Austin", Status: "active"}}

	got := New("dev_salt").Customers(rows)

	assert.Equal(t, "A*** S***", got[0].FullName)
	assert.Equal(t, "Austin", got[0].City)
	assert.Equal(t, "Ava Smith", rows[0].FullName)
}

func TestMaskerSaltDoesNotChangeOutput(t *testing.T) {
	c := model.Customer{FullName: "Ava Smith"}
	assert.Equal(t, New("a").Customer(c), New("b").Customer(c))
}
