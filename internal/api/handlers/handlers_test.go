package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList(" 3, 4,5 ")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, ids)

	ids, err = ParseIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDList("3,,4")
	assert.Error(t, err)

	_, err = ParseIDList("-1")
	assert.Error(t, err)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "нет")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":404,"message":"нет"}`, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "a", v.Name)
}

func TestTimeframeBody_RoundTrip(t *testing.T) {
	body := TimeframeBody{
		Title:      "Weekdays",
		Kind:       int(domain.KindBookable),
		LocationID: ptr.Ptr[int64](7),
		ItemID:     ptr.Ptr[int64](3),
		StartDate:  ptr.Ptr("2025-06-01"),
		StartTime:  ptr.Ptr("09:00"),
		EndTime:    ptr.Ptr("17:30"),
		Grid:       int(domain.GridHourly),
	}

	tf, err := body.ToDomain(12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), tf.ID)
	assert.Nil(t, tf.EndDate)
	assert.True(t, tf.IsSubjectToOverlapCheck())

	resp := FromDomainTimeframe(tf)
	assert.Equal(t, "bookable", resp.KindName)
	assert.Equal(t, "2025-06-01", *resp.StartDate)
	assert.Equal(t, "17:30", *resp.EndTime)
	assert.Equal(t, domain.DefaultMaxAdvanceBookingDays, resp.MaxAdvanceBookingDays)

	body.EndTime = ptr.Ptr("late")
	_, err = body.ToDomain(0)
	assert.Error(t, err)
}
