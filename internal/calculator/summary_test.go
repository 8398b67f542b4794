package calculator

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/internal/models"
)

func member(id, name, weight string) models.Member {
	m := models.Member{ID: id, Name: name}
	if weight != "" {
		m.Weight = decimal.NullDecimal{Decimal: decimal.RequireFromString(weight), Valid: true}
	}
	return m
}

var day1 = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func TestSummarize_EqualSplitTwoMembers(t *testing.T) {
	got, err := Summarize(TripInput{
		BaseCurrency: "VND",
		Granularity:  1,
		Members:      []models.Member{member("A", "An", "1.0"), member("B", "Binh", "1.0")},
		Expenses: []models.Expense{
			{ID: "e1", PayerID: "A", Amount: 100000, Currency: "VND", IsShared: true, Category: models.CategoryFood, Date: day1},
		},
	})
	require.NoError(t, err)

	require.Len(t, got.MemberBalances, 2)
	assert.Equal(t, MemberBalance{MemberID: "A", MemberName: "An", TotalPaid: 100000, TotalOwed: 50000, Balance: 50000}, got.MemberBalances[0])
	assert.Equal(t, MemberBalance{MemberID: "B", MemberName: "Binh", TotalOwed: 50000, Balance: -50000}, got.MemberBalances[1])
	assert.Equal(t, []Settlement{{
		FromMemberID: "B", FromMemberName: "Binh",
		ToMemberID: "A", ToMemberName: "An",
		Amount: 50000,
	}}, got.Settlements)
	assert.Equal(t, models.Money(100000), got.TotalExpenses)
	assert.Equal(t, models.Money(100000), got.TotalSharedExpenses)
	assert.Equal(t, map[string]models.Money{"food": 100000}, got.ExpenseByCategory)
	assert.Equal(t, map[string]models.Money{"2024-07-01": 100000}, got.ExpenseByDate)
}

func TestSummarize_ChildWeight(t *testing.T) {
	got, err := Summarize(TripInput{
		BaseCurrency: "VND",
		Granularity:  1,
		Members:      []models.Member{member("A", "Adult", "1.0"), member("C", "Child", "0.5")},
		Expenses:     []models.Expense{{ID: "e1", PayerID: "A", Amount: 150000, IsShared: true, Date: day1}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.Money(100000), got.MemberBalances[0].TotalOwed)
	assert.Equal(t, models.Money(50000), got.MemberBalances[0].Balance)
	assert.Equal(t, models.Money(50000), got.MemberBalances[1].TotalOwed)
	assert.Equal(t, models.Money(-50000), got.MemberBalances[1].Balance)
	require.Len(t, got.Settlements, 1)
	assert.Equal(t, "C", got.Settlements[0].FromMemberID)
	assert.Equal(t, "A", got.Settlements[0].ToMemberID)
	assert.Equal(t, models.Money(50000), got.Settlements[0].Amount)
}

func TestSummarize_DefaultWeightOnlyForUnsetMembers(t *testing.T) {
	got, err := Summarize(TripInput{
		BaseCurrency:  "VND",
		Granularity:   1,
		DefaultWeight: decimal.RequireFromString("0.5"),
		Members:       []models.Member{member("A", "Adult", "1.5"), member("K", "Kid", "")},
		Expenses:      []models.Expense{{ID: "e1", PayerID: "A", Amount: 200000, IsShared: true, Date: day1}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.Money(150000), got.MemberBalances[0].TotalOwed)
	assert.Equal(t, models.Money(50000), got.MemberBalances[1].TotalOwed)
}

func TestSummarize_MixedCurrenciesAndPersonal(t *testing.T) {
	in := TripInput{
		BaseCurrency: "VND",
		Granularity:  100000, // 1000 VND
		Members: []models.Member{
			member("a", "A", "1"),
			member("b", "B", "1"),
			member("c", "C", "1"),
		},
		Expenses: []models.Expense{
			{ID: "e1", PayerID: "a", Amount: 30000000, Currency: "VND", IsShared: true, Category: models.CategoryAccommodation, Date: day1},
			{ID: "e2", PayerID: "b", Amount: 1000, Currency: "USD", ExchangeRate: decimal.NewFromInt(25000), IsShared: true, Category: models.CategoryFood, Date: day1.AddDate(0, 0, 1)},
			{ID: "e3", PayerID: "c", Amount: 2000000, Currency: "VND", IsShared: false, Category: models.CategoryShopping, Date: day1},
		},
	}

	got, err := Summarize(in)
	require.NoError(t, err)

	// 300000 VND + 10 USD * 25000 = 550000 VND shared, 20000 VND personal
	assert.Equal(t, models.Money(57000000), got.TotalExpenses)
	assert.Equal(t, models.Money(55000000), got.TotalSharedExpenses)
	assert.Equal(t, map[string]models.Money{"accommodation": 30000000, "food": 25000000}, got.ExpenseByCategory)
	assert.Equal(t, map[string]models.Money{"2024-07-01": 30000000, "2024-07-02": 25000000}, got.ExpenseByDate)

	c := got.MemberBalances[2]
	assert.Equal(t, models.Money(2000000), c.TotalPaid)
	assert.Equal(t, models.Money(2000000), c.PersonalExpenses)

	var pays, receives models.Money
	for _, s := range got.Settlements {
		if s.FromMemberID == "c" {
			pays += s.Amount
		}
		if s.ToMemberID == "c" {
			receives += s.Amount
		}
	}
	// c owes a third of 550000 VND = 183333.33 VND, rounded to 183000 VND
	assert.Equal(t, models.Money(18300000), pays-receives)
}

func TestSummarize_Idempotent(t *testing.T) {
	in := TripInput{
		BaseCurrency: "EUR",
		Granularity:  5,
		Members:      []models.Member{member("x", "X", "1"), member("y", "Y", "0.75"), member("z", "Z", "")},
		Expenses: []models.Expense{
			{ID: "1", PayerID: "x", Amount: 1234, IsShared: true, Date: day1},
			{ID: "2", PayerID: "y", Amount: 999, IsShared: true, Date: day1},
			{ID: "3", PayerID: "z", Amount: 17, IsShared: true, Date: day1},
		},
		Payments: []models.Payment{{ID: "p", FromMemberID: "z", ToMemberID: "x", Amount: 100}},
	}

	first, err := Summarize(in)
	require.NoError(t, err)
	second, err := Summarize(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_Errors(t *testing.T) {
	base := func() TripInput {
		return TripInput{
			BaseCurrency: "VND",
			Granularity:  1,
			Members:      []models.Member{member("A", "A", "1"), member("B", "B", "1")},
			Expenses:     []models.Expense{{ID: "e1", PayerID: "A", Amount: 100, IsShared: true}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*TripInput)
		wantErr error
	}{
		{"granularity below one", func(in *TripInput) { in.Granularity = 0 }, ErrInvalidGranularity},
		{"missing base currency", func(in *TripInput) { in.BaseCurrency = "" }, ErrMissingCurrency},
		{"no members", func(in *TripInput) { in.Members = nil }, ErrNoMembers},
		{"zero weight", func(in *TripInput) { in.Members[1] = member("B", "B", "0") }, ErrInvalidWeight},
		{"unknown payer", func(in *TripInput) { in.Expenses[0].PayerID = "Q" }, ErrUnknownMember},
		{"negative amount", func(in *TripInput) { in.Expenses[0].Amount = -100 }, ErrInvalidAmount},
		{"no exchange rate", func(in *TripInput) { in.Expenses[0].Currency = "USD" }, ErrCurrencyMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			got, err := Summarize(in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestMemberDebtSummary(t *testing.T) {
	summary, err := Summarize(TripInput{
		BaseCurrency: "VND",
		Granularity:  1,
		Members:      []models.Member{member("a", "A", "1"), member("b", "B", "1"), member("c", "C", "1")},
		Expenses:     []models.Expense{{ID: "e1", PayerID: "a", Amount: 900, IsShared: true}},
	})
	require.NoError(t, err)

	got, err := MemberDebtSummary(summary, "a")
	require.NoError(t, err)
	assert.Equal(t, models.Money(600), got.ShouldReceive)
	assert.Zero(t, got.ShouldPay)
	assert.Len(t, got.RelatedSettlements, 2)

	got, err = MemberDebtSummary(summary, "b")
	require.NoError(t, err)
	assert.Equal(t, models.Money(300), got.ShouldPay)
	assert.Len(t, got.RelatedSettlements, 1)

	_, err = MemberDebtSummary(summary, "nobody")
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestSummarize_BalancesMatchSettlements(t *testing.T) {
	// Four members each pay a shared 2000 among five, leaving +400 each and
	// -1600 for e. On a grid of 1000 the two largest remainders (a, b by id)
	// round up.
	in := TripInput{
		BaseCurrency: "VND",
		Granularity:  1000,
		Members: []models.Member{
			member("a", "A", "1"), member("b", "B", "1"), member("c", "C", "1"),
			member("d", "D", "1"), member("e", "E", "1"),
		},
	}
	for i, payer := range []string{"a", "b", "c", "d"} {
		in.Expenses = append(in.Expenses, models.Expense{
			ID: fmt.Sprintf("e%d", i), PayerID: payer, Amount: 2000, IsShared: true, Date: day1,
		})
	}

	got, err := Summarize(in)
	require.NoError(t, err)

	assert.Equal(t, []Settlement{
		{FromMemberID: "e", FromMemberName: "E", ToMemberID: "a", ToMemberName: "A", Amount: 1000},
		{FromMemberID: "e", FromMemberName: "E", ToMemberID: "b", ToMemberName: "B", Amount: 1000},
	}, got.Settlements)

	balances := map[string]models.Money{}
	for _, b := range got.MemberBalances {
		balances[b.MemberID] = b.Balance
	}
	assert.Equal(t, map[string]models.Money{"a": 1000, "b": 1000, "c": 0, "d": 0, "e": -2000}, balances)
}

// TestSummarize_BalanceProperties checks on random trips that reported
// balances sum to zero and equal each member's net settlement flow.
func TestSummarize_BalanceProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	weights := []string{"1", "0.5", "0.25", "1.5", "2"}

	for round := 0; round < 200; round++ {
		n := 2 + r.Intn(7)
		members := make([]models.Member, n)
		for i := range members {
			members[i] = member(fmt.Sprintf("m%02d", i), fmt.Sprintf("M%d", i), weights[r.Intn(len(weights))])
		}

		expenses := make([]models.Expense, 1+r.Intn(10))
		for i := range expenses {
			expenses[i] = models.Expense{
				ID:       fmt.Sprintf("e%d", i),
				PayerID:  members[r.Intn(n)].ID,
				Amount:   models.Money(1 + r.Int63n(5_000_000)),
				IsShared: r.Intn(4) != 0,
				Date:     day1,
			}
		}

		for _, g := range []int64{1, 100, 1000, 100000} {
			got, err := Summarize(TripInput{BaseCurrency: "VND", Granularity: g, Members: members, Expenses: expenses})
			require.NoError(t, err)

			flow := make(map[string]models.Money)
			for _, s := range got.Settlements {
				flow[s.FromMemberID] -= s.Amount
				flow[s.ToMemberID] += s.Amount
			}

			var sum models.Money
			for _, b := range got.MemberBalances {
				sum += b.Balance
				assert.Zero(t, int64(b.Balance)%g, "member %s round %d granularity %d", b.MemberID, round, g)
				assert.Equal(t, flow[b.MemberID], b.Balance, "member %s round %d granularity %d", b.MemberID, round, g)
			}
			assert.Zero(t, int64(sum), "round %d granularity %d", round, g)
		}
	}
}
