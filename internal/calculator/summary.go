package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// DateLayout is the key format of TripSummary.ExpenseByDate.
const DateLayout = "2006-01-02"

// TripInput is an immutable snapshot of one trip.
type TripInput struct {
	BaseCurrency  string
	Granularity   int64
	DefaultWeight decimal.Decimal
	Members       []models.Member
	Expenses      []models.Expense
	Payments      []models.Payment
}

// MemberBalance is a member's rounded position in a TripSummary.
type MemberBalance struct {
	MemberID         string
	MemberName       string
	TotalPaid        models.Money
	TotalOwed        models.Money
	PersonalExpenses models.Money
	PaymentsSent     models.Money
	PaymentsReceived models.Money
	Balance          models.Money // Positive = owed money, Negative = owes money
}

// Settlement is a rounded transfer with member names resolved.
type Settlement struct {
	FromMemberID   string
	FromMemberName string
	ToMemberID     string
	ToMemberName   string
	Amount         models.Money
}

// TripSummary is the settlement report for one trip. Every amount is in
// base-currency minor units, rounded with the trip's granularity.
type TripSummary struct {
	BaseCurrency        string
	Granularity         int64
	TotalExpenses       models.Money
	TotalSharedExpenses models.Money
	MemberBalances      []MemberBalance
	Settlements         []Settlement

	// ExpenseByCategory and ExpenseByDate cover shared expenses only.
	ExpenseByCategory map[string]models.Money
	ExpenseByDate     map[string]models.Money
}

// Summarize runs the whole engine over a trip snapshot. Any error aborts
// the computation; no partial summary is returned.
func Summarize(in TripInput) (*TripSummary, error) {
	if strings.TrimSpace(in.BaseCurrency) == "" {
		return nil, ErrMissingCurrency
	}
	if in.Granularity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGranularity, in.Granularity)
	}
	defaultWeight := in.DefaultWeight
	if defaultWeight.IsZero() {
		defaultWeight = one
	}

	participants, err := ResolveParticipants(in.Members, defaultWeight)
	if err != nil {
		return nil, err
	}

	balances, err := Aggregate(participants, in.Expenses, in.Payments, in.BaseCurrency)
	if err != nil {
		return nil, err
	}

	var total, shared models.Money
	byCategory := make(map[string]models.Money)
	byDate := make(map[string]models.Money)
	for _, e := range in.Expenses {
		// Already validated by Aggregate.
		amount, _ := Normalize(e, in.BaseCurrency)
		total += amount
		if !e.IsShared {
			continue
		}
		shared += amount
		category := e.Category
		if category == "" {
			category = models.CategoryOther
		}
		byCategory[string(category)] += amount
		byDate[e.Date.Format(DateLayout)] += amount
	}

	nets := make([]NetBalance, 0, len(participants))
	memberBalances := make([]MemberBalance, 0, len(participants))
	for _, p := range participants {
		b := balances[p.ID]
		nets = append(nets, NetBalance{MemberID: p.ID, Net: b.Net()})
		memberBalances = append(memberBalances, MemberBalance{
			MemberID:         p.ID,
			MemberName:       p.Name,
			TotalPaid:        Round(b.Paid, in.Granularity),
			TotalOwed:        Round(b.Owed, in.Granularity),
			PersonalExpenses: Round(b.Personal, in.Granularity),
			PaymentsSent:     Round(b.Sent, in.Granularity),
			PaymentsReceived: Round(b.Received, in.Granularity),
		})
	}

	snapped, transfers, err := settle(nets, in.Granularity)
	if err != nil {
		return nil, err
	}
	// Reported balances are the snapped nets the transfers settle, so they
	// sum to zero and match each member's settlement flow exactly.
	for i := range memberBalances {
		memberBalances[i].Balance = snapped[i].Net
	}

	settlements := make([]Settlement, len(transfers))
	for i, t := range transfers {
		settlements[i] = Settlement{
			FromMemberID:   t.From,
			FromMemberName: balances[t.From].MemberName,
			ToMemberID:     t.To,
			ToMemberName:   balances[t.To].MemberName,
			Amount:         t.Amount,
		}
	}

	for k, v := range byCategory {
		byCategory[k] = Round(v, in.Granularity)
	}
	for k, v := range byDate {
		byDate[k] = Round(v, in.Granularity)
	}

	return &TripSummary{
		BaseCurrency:        strings.ToUpper(in.BaseCurrency),
		Granularity:         in.Granularity,
		TotalExpenses:       Round(total, in.Granularity),
		TotalSharedExpenses: Round(shared, in.Granularity),
		MemberBalances:      memberBalances,
		Settlements:         settlements,
		ExpenseByCategory:   byCategory,
		ExpenseByDate:       byDate,
	}, nil
}

// DebtSummary is one member's view of a TripSummary.
type DebtSummary struct {
	Balance            MemberBalance
	RelatedSettlements []Settlement
	ShouldPay          models.Money
	ShouldReceive      models.Money
}

// MemberDebtSummary extracts what a single member has to pay or receive.
func MemberDebtSummary(summary *TripSummary, memberID string) (*DebtSummary, error) {
	idx := sort.Search(len(summary.MemberBalances), func(i int) bool {
		return summary.MemberBalances[i].MemberID >= memberID
	})
	if idx == len(summary.MemberBalances) || summary.MemberBalances[idx].MemberID != memberID {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMember, memberID)
	}

	out := &DebtSummary{Balance: summary.MemberBalances[idx]}
	for _, s := range summary.Settlements {
		switch memberID {
		case s.FromMemberID:
			out.ShouldPay += s.Amount
		case s.ToMemberID:
			out.ShouldReceive += s.Amount
		default:
			continue
		}
		out.RelatedSettlements = append(out.RelatedSettlements, s)
	}
	return out, nil
}
