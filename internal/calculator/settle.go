package calculator

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/mmynk/tripsplit/internal/models"
)

// NetBalance is the input to settlement: positive = creditor, negative = debtor.
type NetBalance struct {
	MemberID string
	Net      models.Money
}

// Transfer is one directed payment that settles part of a debt.
type Transfer struct {
	From   string // Member who owes
	To     string // Member who is owed
	Amount models.Money
}

// Settle computes the transfers that zero every balance.
//
// Balances are first snapped onto the rounding grid so that every transfer
// is a whole number of rounding units and the snapped balances still sum to
// zero. Then the largest remaining creditor is repeatedly matched with the
// largest remaining debtor for min(credit, debt). Every match exhausts at
// least one party, so at most N-1 transfers are produced for N unsettled
// members. This is the greedy heuristic, not the true minimum.
//
// Ties are broken by member id ascending; output never depends on input order.
func Settle(nets []NetBalance, granularity int64) ([]Transfer, error) {
	_, transfers, err := settle(nets, granularity)
	return transfers, err
}

// settle is Settle that also returns the snapped balances, sorted by member
// id. Each snapped balance equals the member's net flow in the transfers.
func settle(nets []NetBalance, granularity int64) ([]NetBalance, []Transfer, error) {
	if granularity < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidGranularity, granularity)
	}

	seen := make(map[string]bool, len(nets))
	var sum models.Money
	for _, n := range nets {
		if seen[n.MemberID] {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateMember, n.MemberID)
		}
		seen[n.MemberID] = true
		sum += n.Net
	}
	if !nearZero(sum, granularity) {
		return nil, nil, fmt.Errorf("%w: balances sum to %s, tolerance is half of %d",
			ErrImbalancedInput, sum, granularity)
	}

	snapped := snapToGrid(nets, granularity)

	arena := make([]party, 0, len(snapped))
	for _, n := range snapped {
		if n.Net != 0 {
			arena = append(arena, party{id: n.MemberID, remaining: n.Net.Abs()})
		}
	}
	creditors := &partyHeap{arena: arena}
	debtors := &partyHeap{arena: arena}
	i := 0
	for _, n := range snapped {
		switch {
		case n.Net > 0:
			creditors.idx = append(creditors.idx, i)
			i++
		case n.Net < 0:
			debtors.idx = append(debtors.idx, i)
			i++
		}
	}
	heap.Init(creditors)
	heap.Init(debtors)

	var transfers []Transfer
	for creditors.Len() > 0 && debtors.Len() > 0 {
		c := heap.Pop(creditors).(int)
		d := heap.Pop(debtors).(int)

		amount := min(arena[c].remaining, arena[d].remaining)
		transfers = append(transfers, Transfer{
			From:   arena[d].id,
			To:     arena[c].id,
			Amount: amount,
		})

		arena[c].remaining -= amount
		arena[d].remaining -= amount

		if !nearZero(arena[c].remaining, granularity) {
			heap.Push(creditors, c)
		}
		if !nearZero(arena[d].remaining, granularity) {
			heap.Push(debtors, d)
		}
	}

	return snapped, finalizeTransfers(transfers, granularity), nil
}

// snapToGrid rounds every balance to a multiple of granularity while
// keeping the sum at zero: floor everything, then hand the missing units
// back to the largest remainders (ties by member id).
func snapToGrid(nets []NetBalance, granularity int64) []NetBalance {
	out := make([]NetBalance, len(nets))
	copy(out, nets)
	sort.Slice(out, func(i, j int) bool { return out[i].MemberID < out[j].MemberID })
	if granularity <= 1 {
		return out
	}

	g := models.Money(granularity)
	remainders := make([]models.Money, len(out))
	var remainderSum models.Money
	for i := range out {
		floor := floorDiv(out[i].Net, g) * g
		remainders[i] = out[i].Net - floor
		remainderSum += remainders[i]
		out[i].Net = floor
	}

	units := int(Round(remainderSum, granularity) / g)
	if units == 0 {
		return out
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for k := 0; k < units && k < len(order); k++ {
		out[order[k]].Net += g
	}
	return out
}

func floorDiv(a, b models.Money) models.Money {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// finalizeTransfers applies the rounding policy, drops zero amounts and
// merges repeated pairs into the first occurrence.
func finalizeTransfers(raw []Transfer, granularity int64) []Transfer {
	type pair struct{ from, to string }
	position := make(map[pair]int, len(raw))
	out := make([]Transfer, 0, len(raw))

	for _, t := range raw {
		t.Amount = Round(t.Amount, granularity)
		if t.Amount <= 0 || t.From == t.To {
			continue
		}
		key := pair{t.From, t.To}
		if i, ok := position[key]; ok {
			out[i].Amount += t.Amount
			continue
		}
		position[key] = len(out)
		out = append(out, t)
	}
	return out
}

// party is a creditor or debtor in the matching arena. remaining is always
// the absolute amount still to settle.
type party struct {
	id        string
	remaining models.Money
}

// partyHeap is a max-heap of arena indices ordered by remaining amount,
// then member id ascending.
type partyHeap struct {
	arena []party
	idx   []int
}

func (h *partyHeap) Len() int { return len(h.idx) }

func (h *partyHeap) Less(i, j int) bool {
	a, b := h.arena[h.idx[i]], h.arena[h.idx[j]]
	if a.remaining != b.remaining {
		return a.remaining > b.remaining
	}
	return a.id < b.id
}

func (h *partyHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *partyHeap) Push(x any) { h.idx = append(h.idx, x.(int)) }

func (h *partyHeap) Pop() any {
	n := len(h.idx)
	v := h.idx[n-1]
	h.idx = h.idx[:n-1]
	return v
}
