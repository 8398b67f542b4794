package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/internal/calculator"
	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/pkg/api"
)

// GetTripSummary computes balances and the settlement plan for a trip.
func (s *TripService) GetTripSummary(ctx context.Context, req *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error) {
	slog.Info("GetTripSummary request received", "trip_id", req.Msg.TripId)

	summary, err := s.summarize(ctx, req.Msg.TripId)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("GetTripSummary successful",
		"trip_id", req.Msg.TripId,
		"members_count", len(summary.MemberBalances),
		"settlements_count", len(summary.Settlements),
	)

	return connect.NewResponse(&api.GetTripSummaryResponse{
		Summary: summaryToProto(req.Msg.TripId, summary),
	}), nil
}

// GetMemberDebtSummary returns what one member still has to pay or receive.
func (s *TripService) GetMemberDebtSummary(ctx context.Context, req *connect.Request[api.GetMemberDebtSummaryRequest]) (*connect.Response[api.GetMemberDebtSummaryResponse], error) {
	slog.Info("GetMemberDebtSummary request received", "trip_id", req.Msg.TripId, "member_id", req.Msg.MemberId)

	summary, err := s.summarize(ctx, req.Msg.TripId)
	if err != nil {
		return nil, toConnectError(err)
	}

	debt, err := calculator.MemberDebtSummary(summary, req.Msg.MemberId)
	if errors.Is(err, calculator.ErrUnknownMember) {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMemberDebtSummaryResponse{
		Balance:            balanceToProto(debt.Balance),
		RelatedSettlements: settlementsToProto(debt.RelatedSettlements),
		ShouldPay:          debt.ShouldPay.Decimal(),
		ShouldReceive:      debt.ShouldReceive.Decimal(),
	}), nil
}

// summarize loads a consistent snapshot of the trip and runs the engine on it.
func (s *TripService) summarize(ctx context.Context, tripID string) (*calculator.TripSummary, error) {
	start := time.Now()

	snap, err := s.store.LoadTripSnapshot(ctx, tripID)
	if err != nil {
		slog.Error("Failed to load trip", "trip_id", tripID, "error", err)
		s.metrics.ObserveSummary(metrics.OutcomeError, time.Since(start), 0)
		return nil, err
	}

	summary, err := calculator.Summarize(calculator.TripInput{
		BaseCurrency:  snap.Trip.BaseCurrency,
		Granularity:   snap.Trip.RoundingGranularity,
		DefaultWeight: snap.Trip.DefaultWeight,
		Members:       snap.Members,
		Expenses:      snap.Expenses,
		Payments:      snap.Payments,
	})
	if err != nil {
		outcome := metrics.OutcomeError
		switch {
		case calculator.IsValidation(err):
			outcome = metrics.OutcomeInvalid
			slog.Warn("Trip summary rejected", "trip_id", tripID, "error", err)
		case errors.Is(err, calculator.ErrImbalancedInput):
			outcome = metrics.OutcomeImbalanced
		}
		s.metrics.ObserveSummary(outcome, time.Since(start), 0)
		return nil, err
	}

	s.metrics.ObserveSummary(metrics.OutcomeOK, time.Since(start), len(summary.Settlements))
	slog.Debug("Trip summary computed",
		"trip_id", tripID,
		"expenses_count", len(snap.Expenses),
		"payments_count", len(snap.Payments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}
