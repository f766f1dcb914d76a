package travel

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/models"
)

var fixedNow = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

const profileFixture = `{
  "username": "jorgechato",
  "location": {
    "now": {
      "city": "Zaragoza",
      "city_slug": "zaragoza-spain",
      "country": "Spain",
      "country_code": "ES",
      "latitude": 41.65,
      "longitude": -0.88,
      "date_start": "2026-10-01",
      "date_end": "2026-10-30",
      "place_photo": "https://nomads.com/assets/img/places/zaragoza-spain.jpg"
    },
    "next": {
      "city": "Lisbon",
      "city_slug": "lisbon-portugal",
      "country": "Portugal",
      "country_code": "PT",
      "latitude": 38.72,
      "longitude": -9.14,
      "date_start": "2026-11-02",
      "date_end": "2026-11-20"
    }
  },
  "stats": {"cities": 120, "countries": 40, "distance_traveled_km": 123456.5},
  "trips": [
    {"place": "Tokyo", "place_slug": "tokyo-japan", "country": "Japan", "country_slug": "japan", "country_code": "JP", "date_start": "2027-03-10", "date_end": "2027-03-30", "length": "20d", "place_photo": "/assets/img/places/tokyo-japan.jpg?width=100,height=100"},
    {"place": "Rome", "place_slug": "rome-italy", "date_start": "2025-01-01", "date_end": "2025-01-10", "length": "9d"},
    {"place": "Lisbon", "place_slug": "lisbon-portugal", "date_start": "2026-11-02", "date_end": "2026-11-20", "length": "18d"},
    {"place": "Nowhere", "date_start": "someday"},
    {"place": "Today", "date_start": "2026-10-19T12:00:00Z"}
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(baseURL string, overrides models.ThumbnailOverrides) *ServiceImpl {
	return NewService(
		Config{Username: "jorgechato", Key: "s3cret", BaseURL: baseURL, Timeout: 2 * time.Second},
		overrides,
		zap.NewNop(),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func serveJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestFetch_BuildsSnapshot(t *testing.T) {
	var gotPath, gotKey string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		serveJSON(profileFixture)(w, r)
	})

	svc := newTestService(srv.URL, models.ThumbnailOverrides{"Lisbon": "https://example.com/lisbon.jpg"})
	snapshot, err := svc.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/@jorgechato.json", gotPath)
	assert.Equal(t, "s3cret", gotKey)

	require.NotNil(t, snapshot.Location.Now)
	assert.Equal(t, "Zaragoza", snapshot.Location.Now.City)
	assert.Equal(t, "zaragoza-spain", snapshot.Location.Now.CitySlug)
	assert.Equal(t, "https://nomads.com/cdn-cgi/image/format=auto,fit=cover,width=250,height=320/assets/img/places/zaragoza-spain.jpg", snapshot.Location.Now.Thumbnail)

	require.NotNil(t, snapshot.Location.Next)
	assert.Equal(t, "Lisbon", snapshot.Location.Next.City)
	assert.Equal(t, "https://example.com/lisbon.jpg", snapshot.Location.Next.Thumbnail)

	require.Len(t, snapshot.Trips, 2)
	assert.Equal(t, "Lisbon", snapshot.Trips[0].City)
	assert.Equal(t, "Tokyo", snapshot.Trips[1].City)
	assert.Equal(t, "https://nomads.com/assets/img/places/tokyo-japan.jpg?width=250,height=320", snapshot.Trips[1].Thumbnail)
	assert.Equal(t, "JP", snapshot.Trips[1].CountryCode)

	require.NotNil(t, snapshot.Stats)
	assert.Equal(t, 120, snapshot.Stats.Cities)
	assert.InDelta(t, 123456.5, snapshot.Stats.DistanceTraveledKm, 0.001)
}

func TestFetch_OnlyFutureTrips(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{
		"location": {"now": {"city": "Zaragoza"}},
		"trips": [
			{"place": "Future", "date_start": "2026-10-20"},
			{"place": "Past", "date_start": "2026-10-18"}
		]
	}`))

	snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Trips, 1)
	assert.Equal(t, "Future", snapshot.Trips[0].City)
}

func TestFetch_SortsAscendingAndStable(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{
		"location": {},
		"trips": [
			{"place": "C", "date_start": "2027-05-01"},
			{"place": "A", "date_start": "2027-01-01"},
			{"place": "B1", "date_start": "2027-03-01"},
			{"place": "B2", "date_start": "2027-03-01"}
		]
	}`))

	snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)

	var cities []string
	for _, trip := range snapshot.Trips {
		cities = append(cities, trip.City)
	}
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, cities)
}

func TestFetch_NonListTrips(t *testing.T) {
	for name, trips := range map[string]string{
		"object": `{"place": "Tokyo", "date_start": "2027-01-01"}`,
		"string": `"none"`,
		"null":   `null`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, serveJSON(`{"location": {"now": {"city": "Zaragoza"}}, "trips": `+trips+`}`))

			snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, snapshot.Trips)
			assert.Empty(t, snapshot.Trips)
		})
	}
}

func TestFetch_MissingNextLocation(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{"location": {"now": {"city": "Zaragoza"}}, "trips": []}`))

	snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot.Location.Now)
	assert.Nil(t, snapshot.Location.Next)
	assert.Nil(t, snapshot.Stats)
}

func TestFetch_ToleratesOddRecords(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{
		"location": {
			"now": {"city": "Zaragoza", "latitude": 41.65, "longitude": -0.88},
			"next": []
		},
		"stats": [],
		"trips": [
			{"place": "Tokyo", "date_start": "2027-03-10", "latitude": "35.6", "longitude": "139.7", "length": 20},
			{"place": "Nowhere", "date_start": "2027-04-01", "latitude": "north"},
			"not a trip",
			{"place": "Osaka", "date_start": "2027-05-01", "latitude": null}
		]
	}`))

	snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)

	require.NotNil(t, snapshot.Location.Now)
	assert.Equal(t, "Zaragoza", snapshot.Location.Now.City)
	assert.Nil(t, snapshot.Location.Next)
	assert.Nil(t, snapshot.Stats)

	require.Len(t, snapshot.Trips, 2)
	assert.Equal(t, "Tokyo", snapshot.Trips[0].City)
	assert.InDelta(t, 35.6, snapshot.Trips[0].Latitude, 0.0001)
	assert.InDelta(t, 139.7, snapshot.Trips[0].Longitude, 0.0001)
	assert.Equal(t, "20", snapshot.Trips[0].Length)
	assert.Equal(t, "Osaka", snapshot.Trips[1].City)
	assert.Zero(t, snapshot.Trips[1].Latitude)
}

func TestFetch_EmptyLocationArray(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{"location": [], "trips": [{"place": "Tokyo", "date_start": "2027-03-10"}]}`))

	snapshot, err := newTestService(srv.URL, nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snapshot.Location.Now)
	assert.Nil(t, snapshot.Location.Next)
	require.Len(t, snapshot.Trips, 1)
}

func TestFetch_LocalTimeForDateTimesWithoutOffset(t *testing.T) {
	srv := newTestServer(t, serveJSON(`{
		"location": {},
		"trips": [
			{"place": "Earlier", "date_start": "2026-10-19T13:30:00"},
			{"place": "Later", "date_start": "2026-10-19 14:30:00"}
		]
	}`))

	// 13:30 at UTC+2 is 11:30 UTC, before the fixed clock
	svc := newTestService(srv.URL, nil)
	WithLocation(time.FixedZone("CEST", 2*60*60))(svc)

	snapshot, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Trips, 1)
	assert.Equal(t, "Later", snapshot.Trips[0].City)
}

func TestParseDate(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)

	tests := []struct {
		value string
		want  time.Time
		ok    bool
	}{
		{value: "2027-01-02", want: time.Date(2027, 1, 2, 0, 0, 0, 0, time.UTC), ok: true},
		{value: "2027-01-02T10:00:00Z", want: time.Date(2027, 1, 2, 10, 0, 0, 0, time.UTC), ok: true},
		{value: "2027-01-02T10:00:00+05:00", want: time.Date(2027, 1, 2, 5, 0, 0, 0, time.UTC), ok: true},
		{value: "2027-01-02T10:00:00", want: time.Date(2027, 1, 2, 10, 0, 0, 0, cest), ok: true},
		{value: "2027-01-02 10:00:00", want: time.Date(2027, 1, 2, 10, 0, 0, 0, cest), ok: true},
		{value: "someday"},
		{value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := parseDate(tt.value, cest)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: ErrStatus,
		},
		{
			name:    "html body",
			handler: serveJSON(`<html>maintenance</html>`),
			wantErr: ErrDecode,
		},
		{
			name:    "missing location",
			handler: serveJSON(`{"trips": []}`),
			wantErr: ErrMalformedProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.handler)
			svc := newTestService(srv.URL, nil)

			_, err := svc.Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			snapshot := svc.Load(context.Background())
			assert.Equal(t, models.EmptyTravelSnapshot(), snapshot)
		})
	}
}

func TestLoad_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	svc := newTestService(baseURL, nil)

	_, err := svc.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrTransport)

	snapshot := svc.Load(context.Background())
	assert.Nil(t, snapshot.Location.Now)
	assert.Nil(t, snapshot.Location.Next)
	assert.NotNil(t, snapshot.Trips)
	assert.Empty(t, snapshot.Trips)
	assert.True(t, snapshot.IsEmpty())
}

func TestLoad_CanceledContext(t *testing.T) {
	srv := newTestServer(t, serveJSON(profileFixture))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot := newTestService(srv.URL, nil).Load(ctx)
	assert.True(t, snapshot.IsEmpty())
}

func TestFailureReason(t *testing.T) {
	assert.Equal(t, "transport", failureReason(ErrTransport))
	assert.Equal(t, "status", failureReason(ErrStatus))
	assert.Equal(t, "decode", failureReason(ErrDecode))
	assert.Equal(t, "malformed", failureReason(ErrMalformedProfile))
	assert.Equal(t, "unknown", failureReason(errors.New("other")))
}

func TestProfileURL_EscapesUsername(t *testing.T) {
	svc := NewService(Config{Username: "a b", Key: "k&1"}, nil, nil)
	assert.Equal(t, "https://nomads.com/@a%20b.json?key=k%261", svc.profileURL())
}
