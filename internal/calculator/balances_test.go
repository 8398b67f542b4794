package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func threeAdults() []Participant {
	return []Participant{weighted("A", "1"), weighted("B", "1"), weighted("C", "1")}
}

func TestAggregate(t *testing.T) {
	t.Run("personal expense only touches the payer", func(t *testing.T) {
		shared := models.Expense{ID: "e1", PayerID: "A", Amount: 30000, IsShared: true}
		personal := models.Expense{ID: "e2", PayerID: "B", Amount: 20000}

		without, err := Aggregate(threeAdults(), []models.Expense{shared}, nil, "VND")
		require.NoError(t, err)
		with, err := Aggregate(threeAdults(), []models.Expense{shared, personal}, nil, "VND")
		require.NoError(t, err)

		assert.Equal(t, models.Money(20000), with["B"].Paid)
		assert.Equal(t, models.Money(20000), with["B"].Personal)
		for _, id := range []string{"A", "B", "C"} {
			assert.Equal(t, without[id].Owed, with[id].Owed, "owed of %s", id)
			assert.Equal(t, without[id].Net(), with[id].Net(), "net of %s", id)
		}
		assert.Equal(t, models.Money(20000), with["A"].Net())
		assert.Equal(t, models.Money(-10000), with["B"].Net())
		assert.Equal(t, models.Money(-10000), with["C"].Net())
	})

	t.Run("payments move balances toward zero", func(t *testing.T) {
		expenses := []models.Expense{{ID: "e1", PayerID: "A", Amount: 30000, IsShared: true}}
		payments := []models.Payment{{ID: "p1", FromMemberID: "B", ToMemberID: "A", Amount: 10000}}

		got, err := Aggregate(threeAdults(), expenses, payments, "VND")
		require.NoError(t, err)

		assert.Equal(t, models.Money(10000), got["A"].Net())
		assert.Equal(t, models.Money(0), got["B"].Net())
		assert.Equal(t, models.Money(-10000), got["C"].Net())
	})

	t.Run("nets always sum to zero", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: "e1", PayerID: "A", Amount: 1001, IsShared: true},
			{ID: "e2", PayerID: "B", Amount: 77, IsShared: true},
			{ID: "e3", PayerID: "C", Amount: 5, IsShared: true},
		}
		got, err := Aggregate([]Participant{weighted("A", "1"), weighted("B", "0.3"), weighted("C", "2.7")}, expenses, nil, "VND")
		require.NoError(t, err)

		var sum models.Money
		for _, b := range got {
			sum += b.Net()
		}
		assert.Zero(t, sum)
	})

	t.Run("unknown payer", func(t *testing.T) {
		_, err := Aggregate(threeAdults(), []models.Expense{{ID: "e1", PayerID: "Z", Amount: 1, IsShared: true}}, nil, "VND")
		assert.ErrorIs(t, err, ErrUnknownMember)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := Aggregate(threeAdults(), []models.Expense{{ID: "e1", PayerID: "A", Amount: -1}}, nil, "VND")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("self payment", func(t *testing.T) {
		_, err := Aggregate(threeAdults(), nil, []models.Payment{{ID: "p", FromMemberID: "A", ToMemberID: "A", Amount: 5}}, "VND")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("currency mismatch aborts", func(t *testing.T) {
		_, err := Aggregate(threeAdults(), []models.Expense{{ID: "e1", PayerID: "A", Amount: 5, Currency: "USD", IsShared: true}}, nil, "VND")
		assert.ErrorIs(t, err, ErrCurrencyMismatch)
	})
}
