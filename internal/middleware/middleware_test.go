package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripsplit/pkg/api"
)

type echoRequest struct {
	Fail bool `json:"fail"`
}

type echoResponse struct {
	RequestID string `json:"requestId"`
}

const echoProcedure = "/test.v1.EchoService/Echo"

func setupEchoServer(t *testing.T) (*connect.Client[echoRequest, echoResponse], func()) {
	t.Helper()

	handler := connect.NewUnaryHandler(echoProcedure,
		func(ctx context.Context, req *connect.Request[echoRequest]) (*connect.Response[echoResponse], error) {
			if req.Msg.Fail {
				return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("asked to fail"))
			}
			return connect.NewResponse(&echoResponse{RequestID: GetRequestID(ctx)}), nil
		},
		connect.WithCodec(api.JSONCodec{}),
		connect.WithInterceptors(RequestID(), LoggingInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(echoProcedure, handler)
	server := httptest.NewServer(CORS(RequestLogging(mux)))

	client := connect.NewClient[echoRequest, echoResponse](http.DefaultClient, server.URL+echoProcedure,
		connect.WithCodec(api.JSONCodec{}),
	)
	return client, server.Close
}

func TestRequestID(t *testing.T) {
	client, cleanup := setupEchoServer(t)
	defer cleanup()

	t.Run("generated when absent", func(t *testing.T) {
		resp, err := client.CallUnary(context.Background(), connect.NewRequest(&echoRequest{}))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Msg.RequestID)
		assert.Equal(t, resp.Msg.RequestID, resp.Header().Get(RequestIDHeader))
	})

	t.Run("propagated from client", func(t *testing.T) {
		req := connect.NewRequest(&echoRequest{})
		req.Header().Set(RequestIDHeader, "trip-42")

		resp, err := client.CallUnary(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "trip-42", resp.Msg.RequestID)
	})

	t.Run("attached to errors", func(t *testing.T) {
		req := connect.NewRequest(&echoRequest{Fail: true})
		req.Header().Set(RequestIDHeader, "trip-43")

		_, err := client.CallUnary(context.Background(), req)
		require.Error(t, err)
		var connectErr *connect.Error
		require.True(t, errors.As(err, &connectErr))
		assert.Equal(t, connect.CodeInvalidArgument, connectErr.Code())
		assert.Equal(t, "trip-43", connectErr.Meta().Get(RequestIDHeader))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/tripsplit.v1.TripService/GetTrip", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), RequestIDHeader)
}
