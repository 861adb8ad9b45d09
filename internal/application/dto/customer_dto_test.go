package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/registro-clientes/internal/application/dto"
)

func TestMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1500.5, "1500.50"},
		{15.149999999999999, "15.15"},
		{-3.456, "-3.46"},
		{math.Inf(1), "+Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, dto.Money(tc.in), "%v", tc.in)
	}
}
