package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/app/models"
	"github.com/jorgechato/website/internal/app/observability/metrics"
)

const (
	defaultBaseURL  = nomadsHost
	defaultTimeout  = 10 * time.Second
	maxProfileBytes = 5 << 20
)

var (
	ErrTransport        = errors.New("nomads request failed")
	ErrStatus           = errors.New("nomads returned an unexpected status")
	ErrDecode           = errors.New("nomads response could not be decoded")
	ErrMalformedProfile = errors.New("nomads profile has no location")
)

// dateLayouts are tried in order when reading a trip start date. Plain
// dates are UTC; date-times without an offset are read in the service's
// time zone.
var dateLayouts = []struct {
	layout string
	local  bool
}{
	{layout: "2006-01-02"},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05", local: true},
	{layout: "2006-01-02 15:04:05", local: true},
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Fetch(ctx context.Context) (models.TravelSnapshot, error)
	Load(ctx context.Context) models.TravelSnapshot
}

type Config struct {
	Username string
	Key      string
	BaseURL  string
	Timeout  time.Duration
}

type Option func(*ServiceImpl)

// WithClock replaces the wall clock used to decide which trips are upcoming.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceImpl) { s.now = now }
}

// WithLocation sets the time zone for trip dates that carry no offset.
func WithLocation(loc *time.Location) Option {
	return func(s *ServiceImpl) { s.location = loc }
}

// WithHTTPClient replaces the default instrumented client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *ServiceImpl) { s.client = client }
}

type ServiceImpl struct {
	cfg       Config
	overrides models.ThumbnailOverrides
	client    *http.Client
	now       func() time.Time
	location  *time.Location
	logger    *zap.Logger
}

func NewService(cfg Config, overrides models.ThumbnailOverrides, logger *zap.Logger, opts ...Option) *ServiceImpl {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if overrides == nil {
		overrides = models.ThumbnailOverrides{}
	}

	s := &ServiceImpl{
		cfg:       cfg,
		overrides: overrides,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now:      time.Now,
		location: time.Local,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// profileDocument keeps every record raw so one malformed entry only drops
// that entry.
type profileDocument struct {
	Location json.RawMessage `json:"location"`
	Trips    json.RawMessage `json:"trips"`
	Stats    json.RawMessage `json:"stats"`
}

type rawCurrentLocation struct {
	Now  json.RawMessage `json:"now"`
	Next json.RawMessage `json:"next"`
}

type rawStats struct {
	Cities                     int     `json:"cities"`
	Countries                  int     `json:"countries"`
	Followers                  int     `json:"followers"`
	Following                  int     `json:"following"`
	DistanceTraveledKm         float64 `json:"distance_traveled_km"`
	DistanceTraveledMiles      float64 `json:"distance_traveled_miles"`
	CountriesVisitedPercentage float64 `json:"countries_visited_percentage"`
	CitiesVisitedPercentage    float64 `json:"cities_visited_percentage"`
}

// Load never fails: any error from Fetch is logged and replaced by the
// empty snapshot so the pages always have something to render.
func (s *ServiceImpl) Load(ctx context.Context) models.TravelSnapshot {
	snapshot, err := s.Fetch(ctx)
	if err != nil {
		s.logger.Warn("Serving empty travel snapshot",
			zap.String("reason", failureReason(err)),
			zap.Error(err))
		metrics.Get().NomadsFetchFailures.Add(ctx, 1,
			metric.WithAttributes(attribute.String("reason", failureReason(err))))
		return models.EmptyTravelSnapshot()
	}
	return snapshot
}

// Fetch downloads the profile document and shapes it into a snapshot.
func (s *ServiceImpl) Fetch(ctx context.Context) (models.TravelSnapshot, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "Fetch")
	defer span.End()

	l := s.logger.With(zap.String("method", "Fetch"), zap.String("username", s.cfg.Username))
	start := time.Now()
	defer func() {
		metrics.Get().NomadsFetchTotal.Add(ctx, 1)
		metrics.Get().NomadsFetchDuration.Record(ctx, time.Since(start).Seconds())
	}()

	doc, err := s.fetchProfile(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch nomads profile")
		return models.TravelSnapshot{}, err
	}

	snapshot, err := s.buildSnapshot(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Malformed nomads profile")
		return models.TravelSnapshot{}, err
	}

	l.Debug("Travel snapshot built", zap.Int("trips", len(snapshot.Trips)))
	span.SetAttributes(attribute.Int("trips.count", len(snapshot.Trips)))
	span.SetStatus(codes.Ok, "Travel snapshot built")
	return snapshot, nil
}

func (s *ServiceImpl) profileURL() string {
	q := url.Values{}
	q.Set("key", s.cfg.Key)
	return fmt.Sprintf("%s/@%s.json?%s", s.cfg.BaseURL, url.PathEscape(s.cfg.Username), q.Encode())
}

func (s *ServiceImpl) fetchProfile(ctx context.Context) (*profileDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.profileURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var doc profileDocument
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBytes)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &doc, nil
}

func (s *ServiceImpl) buildSnapshot(doc *profileDocument) (models.TravelSnapshot, error) {
	if isNullJSON(doc.Location) {
		return models.TravelSnapshot{}, ErrMalformedProfile
	}

	// nomads sends [] instead of {} for an empty location object
	var current rawCurrentLocation
	if err := json.Unmarshal(doc.Location, &current); err != nil {
		s.logger.Warn("Ignoring undecodable nomads location", zap.Error(err))
	}

	return models.TravelSnapshot{
		Location: models.CurrentLocation{
			Now:  s.decodeLocation("now", current.Now),
			Next: s.decodeLocation("next", current.Next),
		},
		Trips: s.upcomingTrips(doc.Trips),
		Stats: s.decodeStats(doc.Stats),
	}, nil
}

// decodeLocation returns nil for an absent, null or undecodable record.
func (s *ServiceImpl) decodeLocation(field string, raw json.RawMessage) *models.Location {
	if isNullJSON(raw) {
		return nil
	}
	var record rawLocation
	if err := json.Unmarshal(raw, &record); err != nil {
		s.logger.Warn("Ignoring undecodable nomads location",
			zap.String("field", field),
			zap.Error(err))
		return nil
	}
	loc := NormalizeLocation(record, s.overrides)
	return &loc
}

func (s *ServiceImpl) decodeStats(raw json.RawMessage) *models.TravelStats {
	if isNullJSON(raw) {
		return nil
	}
	var stats rawStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Warn("Ignoring undecodable nomads stats", zap.Error(err))
		return nil
	}
	converted := models.TravelStats(stats)
	return &converted
}

type datedTrip struct {
	start    time.Time
	location models.Location
}

// upcomingTrips keeps the trips starting strictly after now, oldest first.
// Anything other than a JSON array yields no trips and undecodable entries
// are skipped.
func (s *ServiceImpl) upcomingTrips(raw json.RawMessage) []models.Location {
	trips := []models.Location{}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !isNullJSON(trimmed) {
			s.logger.Warn("Nomads trips field is not a list, ignoring it")
		}
		return trips
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		s.logger.Warn("Nomads trips list could not be decoded, ignoring it", zap.Error(err))
		return trips
	}

	now := s.now()
	dated := make([]datedTrip, 0, len(entries))
	for i, entry := range entries {
		var record rawLocation
		if err := json.Unmarshal(entry, &record); err != nil {
			s.logger.Warn("Skipping undecodable nomads trip", zap.Int("index", i), zap.Error(err))
			continue
		}
		start, ok := parseDate(record.DateStart, s.location)
		if !ok || !start.After(now) {
			continue
		}
		dated = append(dated, datedTrip{start: start, location: NormalizeLocation(record, s.overrides)})
	}

	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].start.Before(dated[j].start)
	})

	for _, trip := range dated {
		trips = append(trips, trip.location)
	}
	return trips
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	for _, l := range dateLayouts {
		where := time.UTC
		if l.local && loc != nil {
			where = loc
		}
		if t, err := time.ParseInLocation(l.layout, value, where); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrMalformedProfile):
		return "malformed"
	default:
		return "unknown"
	}
}
