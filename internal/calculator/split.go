package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/models"
)

// Participant is a member with the weight the allocator uses for them.
type Participant struct {
	ID     string
	Name   string
	Weight decimal.Decimal
}

// ResolveParticipants applies the trip default weight to members without
// an explicit one. The default never multiplies an explicit weight.
func ResolveParticipants(members []models.Member, defaultWeight decimal.Decimal) ([]Participant, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	seen := make(map[string]bool, len(members))
	participants := make([]Participant, 0, len(members))
	for _, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: member %q has no id", ErrValidation, m.Name)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
		}
		seen[m.ID] = true

		weight := defaultWeight
		if m.Weight.Valid {
			weight = m.Weight.Decimal
		}
		if !weight.IsPositive() {
			return nil, fmt.Errorf("%w: member %s has weight %s", ErrInvalidWeight, m.ID, weight)
		}
		participants = append(participants, Participant{ID: m.ID, Name: m.Name, Weight: weight})
	}

	sort.Slice(participants, func(i, j int) bool { return participants[i].ID < participants[j].ID })
	return participants, nil
}

// Allocate splits a shared amount across participants in proportion to
// their weights: share = amount × weight / Σweight.
//
// Shares are whole minor units apportioned by largest remainder, so they
// always add up to amount exactly. Leftover units go to the largest
// fractional remainders, ties broken by member id ascending.
func Allocate(amount models.Money, participants []Participant) (map[string]models.Money, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: cannot allocate %s", ErrInvalidAmount, amount)
	}
	if len(participants) == 0 {
		return nil, ErrNoMembers
	}

	totalWeight := decimal.Zero
	for _, p := range participants {
		if !p.Weight.IsPositive() {
			return nil, fmt.Errorf("%w: member %s has weight %s", ErrInvalidWeight, p.ID, p.Weight)
		}
		totalWeight = totalWeight.Add(p.Weight)
	}

	type portion struct {
		id        string
		remainder decimal.Decimal
	}

	shares := make(map[string]models.Money, len(participants))
	portions := make([]portion, 0, len(participants))
	total := decimal.NewFromInt(int64(amount))
	var assigned models.Money

	for _, p := range participants {
		q, r := total.Mul(p.Weight).QuoRem(totalWeight, 0)
		share := models.Money(q.IntPart())
		shares[p.ID] += share
		assigned += share
		portions = append(portions, portion{id: p.ID, remainder: r})
	}

	leftover := int(amount - assigned)
	if leftover == 0 {
		return shares, nil
	}

	sort.Slice(portions, func(i, j int) bool {
		if c := portions[i].remainder.Cmp(portions[j].remainder); c != 0 {
			return c > 0
		}
		return portions[i].id < portions[j].id
	})
	for i := 0; i < leftover; i++ {
		shares[portions[i%len(portions)].id]++
	}

	return shares, nil
}
