package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripsplit/internal/metrics"
	"github.com/mmynk/tripsplit/internal/models"
	"github.com/mmynk/tripsplit/internal/storage"
	"github.com/mmynk/tripsplit/pkg/api"
	"github.com/mmynk/tripsplit/pkg/api/apiconnect"
)

var _ apiconnect.TripServiceHandler = (*TripService)(nil)

// Defaults are applied to new trips and members when a request leaves a
// setting out.
type Defaults struct {
	BaseCurrency        string
	RoundingGranularity int64
	Weight              decimal.Decimal
	ChildWeight         decimal.Decimal
}

// TripService implements the Connect TripService
type TripService struct {
	store    storage.Store
	defaults Defaults
	metrics  *metrics.Metrics
}

// NewTripService creates a new TripService with the given storage backend.
// m may be nil to disable metrics.
func NewTripService(store storage.Store, defaults Defaults, m *metrics.Metrics) *TripService {
	return &TripService{store: store, defaults: defaults, metrics: m}
}

// CreateTrip creates a new trip and, optionally, its first admin member.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	msg := req.Msg
	slog.Info("CreateTrip request received",
		"name", msg.Name,
		"base_currency", msg.BaseCurrency,
	)

	trip, err := s.tripFromRequest(msg)
	if err != nil {
		slog.Warn("CreateTrip rejected", "error", err)
		return nil, err
	}

	// Save to storage (generates ID, InviteCode and CreatedAt)
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	resp := &api.CreateTripResponse{Trip: tripToProto(trip)}
	if name := strings.TrimSpace(msg.CreatorName); name != "" {
		creator := &models.Member{
			TripID:  trip.ID,
			Name:    name,
			Email:   msg.CreatorEmail,
			IsAdmin: true,
		}
		if err := s.store.AddMember(ctx, creator); err != nil {
			slog.Error("Failed to add trip creator", "trip_id", trip.ID, "error", err)
			return nil, toConnectError(err)
		}
		resp.Creator = memberToProto(creator)
	}

	slog.Info("Trip created", "trip_id", trip.ID, "invite_code", trip.InviteCode)

	return connect.NewResponse(resp), nil
}

func (s *TripService) tripFromRequest(msg *api.CreateTripRequest) (*models.Trip, error) {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return nil, invalidArgument("trip name is required")
	}

	currency := strings.ToUpper(strings.TrimSpace(msg.BaseCurrency))
	if currency == "" {
		currency = s.defaults.BaseCurrency
	}
	if len(currency) != 3 {
		return nil, invalidArgument("base currency must be a 3-letter code, got %q", currency)
	}

	start, err := parseDate("start_date", msg.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", msg.EndDate)
	if err != nil {
		return nil, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, invalidArgument("end date %s is before start date %s", msg.EndDate, msg.StartDate)
	}

	granularity := s.defaults.RoundingGranularity
	if msg.RoundingGranularity != nil {
		granularity = *msg.RoundingGranularity
		if granularity < 1 {
			return nil, invalidArgument("rounding granularity must be at least 1 minor unit, got %d", granularity)
		}
	}

	weight := s.defaults.Weight
	if msg.DefaultWeight != nil {
		weight = *msg.DefaultWeight
	}
	if !weight.IsPositive() {
		return nil, invalidArgument("default weight must be positive, got %s", weight)
	}

	return &models.Trip{
		Name:                name,
		Description:         msg.Description,
		Destination:         msg.Destination,
		StartDate:           start,
		EndDate:             end,
		BaseCurrency:        currency,
		RoundingGranularity: granularity,
		DefaultWeight:       weight,
	}, nil
}

// GetTrip retrieves a trip and its members.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripId)

	trip, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	members, err := s.store.ListMembers(ctx, trip.ID)
	if err != nil {
		slog.Error("Failed to list members", "trip_id", trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	protoMembers := make([]*api.Member, len(members))
	for i := range members {
		protoMembers[i] = memberToProto(&members[i])
	}

	slog.Info("GetTrip successful", "trip_id", trip.ID, "members_count", len(members))

	return connect.NewResponse(&api.GetTripResponse{
		Trip:    tripToProto(trip),
		Members: protoMembers,
	}), nil
}

// JoinTrip adds a new member to the trip an invite code belongs to.
func (s *TripService) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	msg := req.Msg
	slog.Info("JoinTrip request received", "invite_code", msg.InviteCode, "name", msg.Name)

	if strings.TrimSpace(msg.InviteCode) == "" {
		return nil, invalidArgument("invite code is required")
	}

	trip, err := s.store.GetTripByInviteCode(ctx, msg.InviteCode)
	if err != nil {
		slog.Warn("JoinTrip failed", "invite_code", msg.InviteCode, "error", err)
		return nil, toConnectError(err)
	}

	member, err := s.addMember(ctx, trip.ID, msg.Name, msg.Email, msg.Weight, msg.IsChild, false)
	if err != nil {
		return nil, err
	}

	slog.Info("Member joined trip", "trip_id", trip.ID, "member_id", member.ID)

	return connect.NewResponse(&api.JoinTripResponse{
		Trip:   tripToProto(trip),
		Member: memberToProto(member),
	}), nil
}

// AddMember adds a traveler to a trip.
func (s *TripService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	msg := req.Msg
	slog.Info("AddMember request received", "trip_id", msg.TripId, "name", msg.Name)

	member, err := s.addMember(ctx, msg.TripId, msg.Name, msg.Email, msg.Weight, msg.IsChild, msg.IsAdmin)
	if err != nil {
		return nil, err
	}

	slog.Info("Member added", "trip_id", msg.TripId, "member_id", member.ID)

	return connect.NewResponse(&api.AddMemberResponse{Member: memberToProto(member)}), nil
}

func (s *TripService) addMember(ctx context.Context, tripID, name, email string, weight *decimal.Decimal, isChild, isAdmin bool) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgument("member name is required")
	}

	w, err := resolveWeight(weight, isChild, s.defaults.ChildWeight)
	if err != nil {
		return nil, err
	}

	member := &models.Member{
		TripID:  tripID,
		Name:    name,
		Email:   email,
		Weight:  w,
		IsAdmin: isAdmin,
	}
	if err := s.store.AddMember(ctx, member); err != nil {
		slog.Error("AddMember failed", "trip_id", tripID, "error", err)
		return nil, toConnectError(err)
	}
	return member, nil
}
