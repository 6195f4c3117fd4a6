package calculate_fee

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingFeeService/internal/domain"
	calculateFee "github.com/m04kA/SMC-ParkingFeeService/internal/usecase/calculate_fee"
)

type fakeUseCase struct {
	resp *calculateFee.Response
	err  error
	got  *calculateFee.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *calculateFee.Request) (*calculateFee.Response, error) {
	f.got = req
	return f.resp, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fees/calculate", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle_OK(t *testing.T) {
	uc := &fakeUseCase{resp: &calculateFee.Response{
		TotalFee:  decimal.RequireFromString("4.80"),
		Currency:  "SGD",
		RatePlan:  "Hourly",
		RateModel: domain.ModelComprehensive,
	}}
	h := NewHandler(uc, noopLogger{})

	rec := doRequest(t, h, CalculateFeeRequest{
		EntryTime:   "2025-06-02T08:00:00Z",
		ExitTime:    "2025-06-02T10:05:00Z",
		VehicleType: "Car/HGV",
		RatePlan:    "Hourly",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp FeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "4.80", resp.TotalFee)
	require.Equal(t, "SGD", resp.Currency)
	require.Equal(t, "Hourly", resp.RatePlan)
	require.Equal(t, "Comprehensive", resp.RateModel)

	require.NotNil(t, uc.got)
	require.Equal(t, "Car/HGV", uc.got.VehicleType)
}

func TestHandler_Handle_BadTimestamp(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	rec := doRequest(t, h, CalculateFeeRequest{
		EntryTime:   "yesterday",
		ExitTime:    "2025-06-02T10:05:00Z",
		VehicleType: "Car/HGV",
		RatePlan:    "Hourly",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Handle_UnknownField(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, noopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/fees/calculate",
		bytes.NewReader([]byte(`{"entryTime":"2025-06-02T08:00:00Z","surprise":true}`)))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Handle_ErrorMapping(t *testing.T) {
	validReq := CalculateFeeRequest{
		EntryTime:   "2025-06-02T08:00:00Z",
		ExitTime:    "2025-06-02T10:05:00Z",
		VehicleType: "Car/HGV",
		RatePlan:    "Hourly",
	}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid interval", err: calculateFee.ErrInvalidInterval, wantStatus: http.StatusBadRequest},
		{name: "unknown rate plan", err: calculateFee.ErrUnknownRatePlan, wantStatus: http.StatusBadRequest},
		{name: "unknown vehicle type", err: calculateFee.ErrUnknownVehicleType, wantStatus: http.StatusBadRequest},
		{name: "no applicable tariff", err: calculateFee.ErrNoApplicableTariff, wantStatus: http.StatusNotFound},
		{name: "ambiguous tariff", err: calculateFee.ErrAmbiguousTariff, wantStatus: http.StatusInternalServerError},
		{name: "internal error", err: calculateFee.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, noopLogger{})
			rec := doRequest(t, h, validReq)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
