package calculator

import (
	"fmt"

	"github.com/mmynk/tripsplit/internal/models"
)

// Balance is one member's position across a trip, in base-currency minor
// units and at full precision (no rounding policy applied).
type Balance struct {
	MemberID   string
	MemberName string

	// Paid is every normalized expense this member paid, shared or not.
	Paid models.Money

	// Owed is this member's share of shared expenses.
	Owed models.Money

	// Personal is the part of Paid spent on the member's own personal
	// expenses. It is covered by the member themselves.
	Personal models.Money

	// Sent and Received are recorded payments between members.
	Sent     models.Money
	Received models.Money
}

// Net is positive when others owe this member money.
func (b *Balance) Net() models.Money {
	return b.Paid - b.Personal - b.Owed + b.Sent - b.Received
}

// Aggregate computes balances across expenses and recorded payments.
//
// Algorithm:
//   - For each expense: payer's Paid grows by the normalized amount.
//   - Shared expense: every participant's Owed grows by their weighted share.
//   - Personal expense: payer's Personal grows, nobody else is touched.
//   - For each payment: sender's Sent and receiver's Received grow.
//
// The result depends only on the multiset of inputs.
func Aggregate(participants []Participant, expenses []models.Expense, payments []models.Payment, baseCurrency string) (map[string]*Balance, error) {
	balances := make(map[string]*Balance, len(participants))
	for _, p := range participants {
		balances[p.ID] = &Balance{MemberID: p.ID, MemberName: p.Name}
	}

	for _, e := range expenses {
		payer, ok := balances[e.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: expense %s paid by %q", ErrUnknownMember, e.ID, e.PayerID)
		}
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: expense %s has amount %s", ErrInvalidAmount, e.ID, e.Amount)
		}

		amount, err := Normalize(e, baseCurrency)
		if err != nil {
			return nil, err
		}

		payer.Paid += amount
		if !e.IsShared {
			payer.Personal += amount
			continue
		}

		shares, err := Allocate(amount, participants)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate expense %s: %w", e.ID, err)
		}
		for id, share := range shares {
			balances[id].Owed += share
		}
	}

	for _, p := range payments {
		from, ok := balances[p.FromMemberID]
		if !ok {
			return nil, fmt.Errorf("%w: payment %s sent by %q", ErrUnknownMember, p.ID, p.FromMemberID)
		}
		to, ok := balances[p.ToMemberID]
		if !ok {
			return nil, fmt.Errorf("%w: payment %s received by %q", ErrUnknownMember, p.ID, p.ToMemberID)
		}
		if p.Amount <= 0 {
			return nil, fmt.Errorf("%w: payment %s has amount %s", ErrInvalidAmount, p.ID, p.Amount)
		}
		if p.FromMemberID == p.ToMemberID {
			return nil, fmt.Errorf("%w: payment %s is from a member to themselves", ErrValidation, p.ID)
		}
		from.Sent += p.Amount
		to.Received += p.Amount
	}

	return balances, nil
}
