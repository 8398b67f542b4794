package service

import (
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/pkg/api"
)

// parseDate parses a "YYYY-MM-DD" field. Empty input yields the zero time.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(calculator.DateLayout, value)
	if err != nil {
		return time.Time{}, invalidArgument("%s must be YYYY-MM-DD, got %q", field, value)
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(calculator.DateLayout)
}

// parseAmount converts a positive major-unit amount into minor units.
func parseAmount(field string, d decimal.Decimal) (models.Money, error) {
	amount, err := models.MoneyFromDecimal(d)
	if err != nil {
		return 0, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", field, err))
	}
	if amount <= 0 {
		return 0, invalidArgument("%s must be positive, got %s", field, d)
	}
	return amount, nil
}

// resolveWeight picks the stored weight of a new member. An explicit weight
// wins; children without one get childWeight; everyone else stays unset and
// follows the trip default.
func resolveWeight(weight *decimal.Decimal, isChild bool, childWeight decimal.Decimal) (decimal.NullDecimal, error) {
	switch {
	case weight != nil:
		if !weight.IsPositive() {
			return decimal.NullDecimal{}, invalidArgument("weight must be positive, got %s", weight)
		}
		return decimal.NewNullDecimal(*weight), nil
	case isChild:
		return decimal.NewNullDecimal(childWeight), nil
	default:
		return decimal.NullDecimal{}, nil
	}
}

func tripToProto(t *models.Trip) *api.Trip {
	return &api.Trip{
		Id:                  t.ID,
		Name:                t.Name,
		Description:         t.Description,
		Destination:         t.Destination,
		StartDate:           formatDate(t.StartDate),
		EndDate:             formatDate(t.EndDate),
		BaseCurrency:        t.BaseCurrency,
		RoundingGranularity: t.RoundingGranularity,
		DefaultWeight:       t.DefaultWeight,
		InviteCode:          t.InviteCode,
		CreatedAt:           t.CreatedAt,
	}
}

func memberToProto(m *models.Member) *api.Member {
	out := &api.Member{
		Id:        m.ID,
		TripId:    m.TripID,
		Name:      m.Name,
		Email:     m.Email,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
	}
	if m.Weight.Valid {
		w := m.Weight.Decimal
		out.Weight = &w
	}
	return out
}

func expenseToProto(e *models.Expense) *api.Expense {
	out := &api.Expense{
		Id:          e.ID,
		TripId:      e.TripID,
		ActivityId:  e.ActivityID,
		PayerId:     e.PayerID,
		Description: e.Description,
		Amount:      e.Amount.Decimal(),
		Currency:    e.Currency,
		Category:    string(e.Category),
		IsShared:    e.IsShared,
		Date:        formatDate(e.Date),
		CreatedAt:   e.CreatedAt,
	}
	if !e.ExchangeRate.IsZero() {
		rate := e.ExchangeRate
		out.ExchangeRate = &rate
	}
	return out
}

func paymentToProto(p *models.Payment) *api.Payment {
	return &api.Payment{
		Id:           p.ID,
		TripId:       p.TripID,
		FromMemberId: p.FromMemberID,
		ToMemberId:   p.ToMemberID,
		Amount:       p.Amount.Decimal(),
		Note:         p.Note,
		Date:         formatDate(p.Date),
		CreatedAt:    p.CreatedAt,
	}
}

func balanceToProto(b calculator.MemberBalance) *api.MemberBalance {
	return &api.MemberBalance{
		MemberId:         b.MemberID,
		MemberName:       b.MemberName,
		TotalPaid:        b.TotalPaid.Decimal(),
		TotalOwed:        b.TotalOwed.Decimal(),
		PersonalExpenses: b.PersonalExpenses.Decimal(),
		PaymentsSent:     b.PaymentsSent.Decimal(),
		PaymentsReceived: b.PaymentsReceived.Decimal(),
		Balance:          b.Balance.Decimal(),
	}
}

func settlementsToProto(settlements []calculator.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = &api.Settlement{
			FromMemberId:   s.FromMemberID,
			FromMemberName: s.FromMemberName,
			ToMemberId:     s.ToMemberID,
			ToMemberName:   s.ToMemberName,
			Amount:         s.Amount.Decimal(),
		}
	}
	return out
}

func summaryToProto(tripID string, s *calculator.TripSummary) *api.TripSummary {
	balances := make([]*api.MemberBalance, len(s.MemberBalances))
	for i, b := range s.MemberBalances {
		balances[i] = balanceToProto(b)
	}
	return &api.TripSummary{
		TripId:              tripID,
		BaseCurrency:        s.BaseCurrency,
		RoundingGranularity: s.Granularity,
		TotalExpenses:       s.TotalExpenses.Decimal(),
		TotalSharedExpenses: s.TotalSharedExpenses.Decimal(),
		MemberBalances:      balances,
		Settlements:         settlementsToProto(s.Settlements),
		ExpenseByCategory:   moneyMap(s.ExpenseByCategory),
		ExpenseByDate:       moneyMap(s.ExpenseByDate),
	}
}

func moneyMap(in map[string]models.Money) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v.Decimal()
	}
	return out
}
