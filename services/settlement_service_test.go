package services_test

import (
	"math/rand"
	"testing"

	"github.com/skimonitor/api/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSplitAmount(t *testing.T) {
	commission, instructorAmount := services.SplitAmount(decimal.NewFromFloat(100.00))

	require.Equal(t, "10.00", commission.StringFixed(2))
	require.Equal(t, "90.00", instructorAmount.StringFixed(2))
}

func TestSplitAmountRoundsCommissionToCents(t *testing.T) {
	// 33.35 * 0.10 = 3.335, which has no exact cent representation.
	amount := decimal.NewFromFloat(33.35)
	commission, instructorAmount := services.SplitAmount(amount)

	require.True(t, commission.Equal(commission.Round(2)), "commission must be a whole number of cents")
	require.True(t, commission.Add(instructorAmount).Equal(amount))
}

func TestSplitAmountAlwaysSumsBackToAmount(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		cents := r.Int63n(100_000_00) + 1
		amount := decimal.New(cents, -2)

		commission, instructorAmount := services.SplitAmount(amount)

		require.True(t, commission.Add(instructorAmount).Equal(amount),
			"split of %s does not sum back: %s + %s", amount, commission, instructorAmount)
		require.False(t, commission.IsNegative())
		require.False(t, instructorAmount.IsNegative())
	}
}

func TestLessonAmount(t *testing.T) {
	require.Equal(t, "136.50", services.LessonAmount(45.50, 3).StringFixed(2))
	require.Equal(t, "50.00", services.LessonAmount(50, 1).StringFixed(2))
}
