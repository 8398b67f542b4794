package api

import "github.com/shopspring/decimal"

// Trip amounts: RoundingGranularity is in minor units of BaseCurrency
// (100000 = 1000.00). Money fields elsewhere are major units.
type Trip struct {
	Id                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Destination         string          `json:"destination,omitempty"`
	StartDate           string          `json:"startDate,omitempty"`
	EndDate             string          `json:"endDate,omitempty"`
	BaseCurrency        string          `json:"baseCurrency"`
	RoundingGranularity int64           `json:"roundingGranularity"`
	DefaultWeight       decimal.Decimal `json:"defaultWeight"`
	InviteCode          string          `json:"inviteCode"`
	CreatedAt           int64           `json:"createdAt"`
}

type Member struct {
	Id     string `json:"id"`
	TripId string `json:"tripId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	// Weight is absent when the trip default applies.
	Weight    *decimal.Decimal `json:"weight,omitempty"`
	IsAdmin   bool             `json:"isAdmin"`
	CreatedAt int64            `json:"createdAt"`
}

type Expense struct {
	Id           string           `json:"id"`
	TripId       string           `json:"tripId"`
	ActivityId   string           `json:"activityId,omitempty"`
	PayerId      string           `json:"payerId"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	Category     string           `json:"category"`
	IsShared     bool             `json:"isShared"`
	Date         string           `json:"date"`
	CreatedAt    int64            `json:"createdAt"`
}

type Payment struct {
	Id           string          `json:"id"`
	TripId       string          `json:"tripId"`
	FromMemberId string          `json:"fromMemberId"`
	ToMemberId   string          `json:"toMemberId"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	Date         string          `json:"date"`
	CreatedAt    int64           `json:"createdAt"`
}

type MemberBalance struct {
	MemberId         string          `json:"memberId"`
	MemberName       string          `json:"memberName"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOwed        decimal.Decimal `json:"totalOwed"`
	PersonalExpenses decimal.Decimal `json:"personalExpenses"`
	PaymentsSent     decimal.Decimal `json:"paymentsSent"`
	PaymentsReceived decimal.Decimal `json:"paymentsReceived"`
	// Balance is positive when the member is owed money.
	Balance decimal.Decimal `json:"balance"`
}

type Settlement struct {
	FromMemberId   string          `json:"fromMemberId"`
	FromMemberName string          `json:"fromMemberName"`
	ToMemberId     string          `json:"toMemberId"`
	ToMemberName   string          `json:"toMemberName"`
	Amount         decimal.Decimal `json:"amount"`
}

type TripSummary struct {
	TripId              string                     `json:"tripId"`
	BaseCurrency        string                     `json:"baseCurrency"`
	RoundingGranularity int64                      `json:"roundingGranularity"`
	TotalExpenses       decimal.Decimal            `json:"totalExpenses"`
	TotalSharedExpenses decimal.Decimal            `json:"totalSharedExpenses"`
	MemberBalances      []*MemberBalance           `json:"memberBalances"`
	Settlements         []*Settlement              `json:"settlements"`
	ExpenseByCategory   map[string]decimal.Decimal `json:"expenseByCategory"`
	ExpenseByDate       map[string]decimal.Decimal `json:"expenseByDate"`
}

type CreateTripRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Destination  string `json:"destination,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	BaseCurrency string `json:"baseCurrency,omitempty"`
	// RoundingGranularity (minor units) and DefaultWeight fall back to
	// server defaults when absent.
	RoundingGranularity *int64           `json:"roundingGranularity,omitempty"`
	DefaultWeight       *decimal.Decimal `json:"defaultWeight,omitempty"`
	// CreatorName, when set, adds the creator as the trip's first admin member.
	CreatorName  string `json:"creatorName,omitempty"`
	CreatorEmail string `json:"creatorEmail,omitempty"`
}

type CreateTripResponse struct {
	Trip    *Trip   `json:"trip"`
	Creator *Member `json:"creator,omitempty"`
}

type GetTripRequest struct {
	TripId string `json:"tripId"`
}

type GetTripResponse struct {
	Trip    *Trip     `json:"trip"`
	Members []*Member `json:"members"`
}

type JoinTripRequest struct {
	InviteCode string           `json:"inviteCode"`
	Name       string           `json:"name"`
	Email      string           `json:"email,omitempty"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`
	IsChild    bool             `json:"isChild,omitempty"`
}

type JoinTripResponse struct {
	Trip   *Trip   `json:"trip"`
	Member *Member `json:"member"`
}

type AddMemberRequest struct {
	TripId string           `json:"tripId"`
	Name   string           `json:"name"`
	Email  string           `json:"email,omitempty"`
	Weight *decimal.Decimal `json:"weight,omitempty"`
	// IsChild applies the server's child weight when Weight is absent.
	IsChild bool `json:"isChild,omitempty"`
	IsAdmin bool `json:"isAdmin,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type AddExpenseRequest struct {
	TripId       string           `json:"tripId"`
	PayerId      string           `json:"payerId"`
	ActivityId   string           `json:"activityId,omitempty"`
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	Currency     string           `json:"currency,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	Category     string           `json:"category,omitempty"`
	IsShared     bool             `json:"isShared"`
	Date         string           `json:"date"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	TripId    string `json:"tripId"`
	ExpenseId string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type ListExpensesRequest struct {
	TripId   string `json:"tripId"`
	Category string `json:"category,omitempty"`
	PayerId  string `json:"payerId,omitempty"`
	Shared   *bool  `json:"shared,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type RecordPaymentRequest struct {
	TripId       string          `json:"tripId"`
	FromMemberId string          `json:"fromMemberId"`
	ToMemberId   string          `json:"toMemberId"`
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	Date         string          `json:"date,omitempty"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type GetTripSummaryRequest struct {
	TripId string `json:"tripId"`
}

type GetTripSummaryResponse struct {
	Summary *TripSummary `json:"summary"`
}

type GetMemberDebtSummaryRequest struct {
	TripId   string `json:"tripId"`
	MemberId string `json:"memberId"`
}

type GetMemberDebtSummaryResponse struct {
	Balance            *MemberBalance  `json:"balance"`
	RelatedSettlements []*Settlement   `json:"relatedSettlements"`
	ShouldPay          decimal.Decimal `json:"shouldPay"`
	ShouldReceive      decimal.Decimal `json:"shouldReceive"`
}
