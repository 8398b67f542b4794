// Package apiconnect wires the tripsplit.v1.TripService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripsplit/pkg/api"
)

// TripServiceName is the fully-qualified name of the TripService service.
const TripServiceName = "tripsplit.v1.TripService"

// Procedure paths, as they appear in URLs and in connect.Spec.Procedure.
const (
	TripServiceCreateTripProcedure           = "/tripsplit.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure              = "/tripsplit.v1.TripService/GetTrip"
	TripServiceJoinTripProcedure             = "/tripsplit.v1.TripService/JoinTrip"
	TripServiceAddMemberProcedure            = "/tripsplit.v1.TripService/AddMember"
	TripServiceAddExpenseProcedure           = "/tripsplit.v1.TripService/AddExpense"
	TripServiceDeleteExpenseProcedure        = "/tripsplit.v1.TripService/DeleteExpense"
	TripServiceListExpensesProcedure         = "/tripsplit.v1.TripService/ListExpenses"
	TripServiceRecordPaymentProcedure        = "/tripsplit.v1.TripService/RecordPayment"
	TripServiceGetTripSummaryProcedure       = "/tripsplit.v1.TripService/GetTripSummary"
	TripServiceGetMemberDebtSummaryProcedure = "/tripsplit.v1.TripService/GetMemberDebtSummary"
)

// TripServiceHandler is implemented by the trip service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetTripSummary(context.Context, *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error)
	GetMemberDebtSummary(context.Context, *connect.Request[api.GetMemberDebtSummaryRequest]) (*connect.Response[api.GetMemberDebtSummaryResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)

	createTripHandler := connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...)
	getTripHandler := connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...)
	joinTripHandler := connect.NewUnaryHandler(TripServiceJoinTripProcedure, svc.JoinTrip, opts...)
	addMemberHandler := connect.NewUnaryHandler(TripServiceAddMemberProcedure, svc.AddMember, opts...)
	addExpenseHandler := connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...)
	deleteExpenseHandler := connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	listExpensesHandler := connect.NewUnaryHandler(TripServiceListExpensesProcedure, svc.ListExpenses, opts...)
	recordPaymentHandler := connect.NewUnaryHandler(TripServiceRecordPaymentProcedure, svc.RecordPayment, opts...)
	getTripSummaryHandler := connect.NewUnaryHandler(TripServiceGetTripSummaryProcedure, svc.GetTripSummary, opts...)
	getMemberDebtSummaryHandler := connect.NewUnaryHandler(TripServiceGetMemberDebtSummaryProcedure, svc.GetMemberDebtSummary, opts...)

	return "/" + TripServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TripServiceCreateTripProcedure:
			createTripHandler.ServeHTTP(w, r)
		case TripServiceGetTripProcedure:
			getTripHandler.ServeHTTP(w, r)
		case TripServiceJoinTripProcedure:
			joinTripHandler.ServeHTTP(w, r)
		case TripServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case TripServiceAddExpenseProcedure:
			addExpenseHandler.ServeHTTP(w, r)
		case TripServiceDeleteExpenseProcedure:
			deleteExpenseHandler.ServeHTTP(w, r)
		case TripServiceListExpensesProcedure:
			listExpensesHandler.ServeHTTP(w, r)
		case TripServiceRecordPaymentProcedure:
			recordPaymentHandler.ServeHTTP(w, r)
		case TripServiceGetTripSummaryProcedure:
			getTripSummaryHandler.ServeHTTP(w, r)
		case TripServiceGetMemberDebtSummaryProcedure:
			getMemberDebtSummaryHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// TripServiceClient is a client for the tripsplit.v1.TripService service.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	RecordPayment(context.Context, *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error)
	GetTripSummary(context.Context, *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error)
	GetMemberDebtSummary(context.Context, *connect.Request[api.GetMemberDebtSummaryRequest]) (*connect.Response[api.GetMemberDebtSummaryResponse], error)
}

// NewTripServiceClient constructs a client for the TripService. The baseURL
// is the scheme and host the service is served on, e.g. http://localhost:8080.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &tripServiceClient{
		createTrip:           connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:              connect.NewClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		joinTrip:             connect.NewClient[api.JoinTripRequest, api.JoinTripResponse](httpClient, baseURL+TripServiceJoinTripProcedure, opts...),
		addMember:            connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+TripServiceAddMemberProcedure, opts...),
		addExpense:           connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		listExpenses:         connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+TripServiceListExpensesProcedure, opts...),
		recordPayment:        connect.NewClient[api.RecordPaymentRequest, api.RecordPaymentResponse](httpClient, baseURL+TripServiceRecordPaymentProcedure, opts...),
		getTripSummary:       connect.NewClient[api.GetTripSummaryRequest, api.GetTripSummaryResponse](httpClient, baseURL+TripServiceGetTripSummaryProcedure, opts...),
		getMemberDebtSummary: connect.NewClient[api.GetMemberDebtSummaryRequest, api.GetMemberDebtSummaryResponse](httpClient, baseURL+TripServiceGetMemberDebtSummaryProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip           *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	getTrip              *connect.Client[api.GetTripRequest, api.GetTripResponse]
	joinTrip             *connect.Client[api.JoinTripRequest, api.JoinTripResponse]
	addMember            *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
	addExpense           *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpenses         *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	recordPayment        *connect.Client[api.RecordPaymentRequest, api.RecordPaymentResponse]
	getTripSummary       *connect.Client[api.GetTripSummaryRequest, api.GetTripSummaryResponse]
	getMemberDebtSummary *connect.Client[api.GetMemberDebtSummaryRequest, api.GetMemberDebtSummaryResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	return c.joinTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *tripServiceClient) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTripSummary(ctx context.Context, req *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error) {
	return c.getTripSummary.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetMemberDebtSummary(ctx context.Context, req *connect.Request[api.GetMemberDebtSummaryRequest]) (*connect.Response[api.GetMemberDebtSummaryResponse], error) {
	return c.getMemberDebtSummary.CallUnary(ctx, req)
}
