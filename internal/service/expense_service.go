package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
)

// AddExpense records an expense paid by one trip member.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	msg := req.Msg
	slog.Info("AddExpense request received",
		"trip_id", msg.TripId,
		"payer_id", msg.PayerId,
		"amount", msg.Amount,
		"currency", msg.Currency,
		"is_shared", msg.IsShared,
	)

	trip, err := s.store.GetTrip(ctx, msg.TripId)
	if err != nil {
		slog.Error("AddExpense failed", "trip_id", msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	expense, err := expenseFromRequest(msg, trip)
	if err != nil {
		slog.Warn("AddExpense rejected", "trip_id", trip.ID, "error", err)
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "trip_id", trip.ID, "expense_id", expense.ID)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: expenseToProto(expense)}), nil
}

func expenseFromRequest(msg *api.AddExpenseRequest, trip *models.Trip) (*models.Expense, error) {
	if msg.PayerId == "" {
		return nil, invalidArgument("payer_id required")
	}

	amount, err := parseAmount("amount", msg.Amount)
	if err != nil {
		return nil, err
	}

	if msg.Date == "" {
		return nil, invalidArgument("date required")
	}
	date, err := parseDate("date", msg.Date)
	if err != nil {
		return nil, err
	}
	if !trip.StartDate.IsZero() && date.Before(trip.StartDate) {
		return nil, invalidArgument("expense date %s is before the trip starts", msg.Date)
	}
	if !trip.EndDate.IsZero() && date.After(trip.EndDate) {
		return nil, invalidArgument("expense date %s is after the trip ends", msg.Date)
	}

	currency := strings.ToUpper(strings.TrimSpace(msg.Currency))
	if currency == "" {
		currency = trip.BaseCurrency
	}

	expense := &models.Expense{
		TripID:      trip.ID,
		ActivityID:  msg.ActivityId,
		PayerID:     msg.PayerId,
		Description: strings.TrimSpace(msg.Description),
		Amount:      amount,
		Currency:    currency,
		Category:    models.ParseCategory(msg.Category),
		IsShared:    msg.IsShared,
		Date:        date,
	}
	if msg.ExchangeRate != nil {
		expense.ExchangeRate = *msg.ExchangeRate
	}

	// Reject expenses the engine could never convert instead of failing
	// every later summary.
	if _, err := calculator.Normalize(*expense, trip.BaseCurrency); err != nil {
		return nil, toConnectError(err)
	}

	return expense, nil
}

// DeleteExpense removes an expense from a trip.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)

	if req.Msg.ExpenseId == "" {
		return nil, invalidArgument("expense_id required")
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.TripId, req.Msg.ExpenseId); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ExpenseId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseId)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns a trip's expenses, newest first, narrowed by the
// optional filters.
func (s *TripService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	msg := req.Msg
	slog.Info("ListExpenses request received", "trip_id", msg.TripId)

	if _, err := s.store.GetTrip(ctx, msg.TripId); err != nil {
		slog.Error("ListExpenses failed", "trip_id", msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	filter := storage.ExpenseFilter{
		PayerID: msg.PayerId,
		Shared:  msg.Shared,
		Limit:   msg.Limit,
		Offset:  msg.Offset,
	}
	if msg.Category != "" {
		filter.Category = models.ParseCategory(msg.Category)
	}
	if msg.Limit < 0 || msg.Offset < 0 {
		return nil, invalidArgument("limit and offset must not be negative")
	}
	var err error
	if filter.From, err = parseDate("from", msg.From); err != nil {
		return nil, err
	}
	if filter.To, err = parseDate("to", msg.To); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, msg.TripId, filter)
	if err != nil {
		slog.Error("ListExpenses failed", "trip_id", msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	protoExpenses := make([]*api.Expense, len(expenses))
	for i := range expenses {
		protoExpenses[i] = expenseToProto(&expenses[i])
	}

	slog.Info("ListExpenses successful", "trip_id", msg.TripId, "count", len(expenses))

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: protoExpenses}), nil
}

// RecordPayment records money handed from one member to another.
func (s *TripService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	msg := req.Msg
	slog.Info("RecordPayment request received",
		"trip_id", msg.TripId,
		"from", msg.FromMemberId,
		"to", msg.ToMemberId,
		"amount", msg.Amount,
	)

	if msg.FromMemberId == "" || msg.ToMemberId == "" {
		return nil, invalidArgument("from_member_id and to_member_id required")
	}
	if msg.FromMemberId == msg.ToMemberId {
		return nil, invalidArgument("a member cannot pay themselves")
	}
	amount, err := parseAmount("amount", msg.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", msg.Date)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TripID:       msg.TripId,
		FromMemberID: msg.FromMemberId,
		ToMemberID:   msg.ToMemberId,
		Amount:       amount,
		Note:         strings.TrimSpace(msg.Note),
		Date:         date,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("RecordPayment failed", "trip_id", msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Payment recorded", "trip_id", msg.TripId, "payment_id", payment.ID)

	return connect.NewResponse(&api.RecordPaymentResponse{Payment: paymentToProto(payment)}), nil
}
