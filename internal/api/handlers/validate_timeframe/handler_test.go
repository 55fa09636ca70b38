package validate_timeframe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	validateTimeframe "github.com/m04kA/SMC-AvailabilityService/internal/usecase/validate_timeframe"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeUseCase struct {
	got  *validateTimeframe.Request
	resp *validateTimeframe.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *validateTimeframe.Request) (*validateTimeframe.Response, error) {
	f.got = req
	return f.resp, f.err
}

func post(h *Handler, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/timeframes/validate", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_RejectedIsOK(t *testing.T) {
	uc := &fakeUseCase{resp: &validateTimeframe.Response{
		Valid: false,
		Error: &validateTimeframe.ValidationError{
			Kind:             validateTimeframe.KindGridMismatchOnOverlap,
			ConflictingID:    4,
			ConflictingTitle: "Weekdays",
		},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := post(h, `{"id":12,"kind":2,"locationId":1,"itemId":2,"startDate":"2025-06-01","grid":0}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), uc.got.Candidate.ID)

	var resp ValidateTimeframeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "grid_mismatch_on_overlap", resp.Error.Kind)
	assert.Equal(t, int64(4), resp.Error.ConflictingID)
	assert.Contains(t, resp.Error.Message, "Weekdays")
}

func TestHandle_Valid(t *testing.T) {
	h := NewHandler(&fakeUseCase{resp: &validateTimeframe.Response{Valid: true}}, logger.NewNop())

	rec := post(h, `{"kind":3}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		ucErr      error
		wantStatus int
	}{
		{name: "bad json", payload: `[]`, wantStatus: http.StatusBadRequest},
		{name: "bad date", payload: `{"startDate":"01.06.2025"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid input", payload: `{}`, ucErr: validateTimeframe.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage failure", payload: `{}`, ucErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.ucErr}, logger.NewNop())
			assert.Equal(t, tt.wantStatus, post(h, tt.payload).Code)
		})
	}
}
