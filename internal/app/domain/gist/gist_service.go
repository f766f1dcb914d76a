package gist

import (
	"context"
	"encoding/json"
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
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jorgechato/website/internal/app/models"
	"github.com/jorgechato/website/internal/app/observability/metrics"
	"github.com/jorgechato/website/internal/pkg/cache"
	"github.com/jorgechato/website/internal/pkg/markdown"
)

const (
	defaultAPIURL = "https://api.github.com"
	maxGistBytes  = 2 << 20
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Page returns the gist rendered to HTML.
	Page(ctx context.Context) (string, error)
}

type Config struct {
	Owner    string
	ID       string
	APIURL   string
	CacheTTL time.Duration
	Timeout  time.Duration
}

type ServiceImpl struct {
	cfg      Config
	client   *http.Client
	renderer *markdown.Renderer
	cache    *cache.UnifiedCache[string]
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(cfg Config, renderer *markdown.Renderer, logger *zap.Logger) *ServiceImpl {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	cfg.APIURL = strings.TrimSuffix(cfg.APIURL, "/")
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if renderer == nil {
		renderer = markdown.NewRenderer()
	}

	return &ServiceImpl{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		renderer: renderer,
		cache:    cache.NewUnifiedCache[string](cfg.CacheTTL, "gist", logger),
		logger:   logger,
	}
}

type gistFile struct {
	Filename  string `json:"filename"`
	Language  string `json:"language"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

type gistResponse struct {
	Owner *struct {
		Login string `json:"login"`
	} `json:"owner"`
	Files map[string]gistFile `json:"files"`
}

func (s *ServiceImpl) Page(ctx context.Context) (string, error) {
	if s.cfg.ID == "" {
		return "", models.ErrContentNotConfig
	}

	if html, ok := s.cache.Get(s.cfg.ID); ok {
		metrics.Get().GistCacheHits.Add(ctx, 1)
		return html, nil
	}
	metrics.Get().GistCacheMisses.Add(ctx, 1)

	// The shared fetch outlives any single caller; the client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(s.cfg.ID, func() (any, error) {
		return s.load(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *ServiceImpl) load(ctx context.Context) (string, error) {
	source, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}
	html, err := s.renderer.Render(source)
	if err != nil {
		return "", err
	}
	s.cache.Set(s.cfg.ID, html)
	return html, nil
}

func (s *ServiceImpl) fetch(ctx context.Context) (string, error) {
	ctx, span := otel.Tracer("GistService").Start(ctx, "fetch")
	defer span.End()
	span.SetAttributes(attribute.String("gist.id", s.cfg.ID))

	l := s.logger.With(zap.String("method", "fetch"), zap.String("gist", s.cfg.ID))

	resp, err := s.get(ctx, s.cfg.APIURL+"/gists/"+url.PathEscape(s.cfg.ID), "application/vnd.github+json")
	if err != nil {
		l.Error("Failed to fetch gist", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gist request failed")
		return "", err
	}
	defer resp.Body.Close()

	var gist gistResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxGistBytes)).Decode(&gist); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gist decode failed")
		return "", fmt.Errorf("%w: decoding gist: %v", models.ErrUpstream, err)
	}

	if s.cfg.Owner != "" && (gist.Owner == nil || !strings.EqualFold(gist.Owner.Login, s.cfg.Owner)) {
		err := fmt.Errorf("%w: gist %s is not owned by %s", models.ErrNotFound, s.cfg.ID, s.cfg.Owner)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Gist owner mismatch")
		return "", err
	}

	file, ok := pickFile(gist.Files)
	if !ok {
		return "", fmt.Errorf("%w: gist %s has no files", models.ErrNotFound, s.cfg.ID)
	}

	content := file.Content
	if file.Truncated && file.RawURL != "" {
		content, err = s.fetchRaw(ctx, file.RawURL)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Raw gist download failed")
			return "", err
		}
	}

	l.Info("Fetched gist", zap.String("file", file.Filename), zap.Int("bytes", len(content)))
	span.SetStatus(codes.Ok, "Gist fetched")
	return content, nil
}

func (s *ServiceImpl) fetchRaw(ctx context.Context, rawURL string) (string, error) {
	resp, err := s.get(ctx, rawURL, "text/plain")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGistBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading raw gist: %v", models.ErrUpstream, err)
	}
	return string(body), nil
}

// get issues a GET and returns the response only for 2xx statuses.
func (s *ServiceImpl) get(ctx context.Context, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrBadRequest, err)
	}
	req.Header.Set("Accept", accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUpstream, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, target)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", models.ErrUpstream, resp.StatusCode)
	}
	return resp, nil
}

// pickFile prefers the first Markdown file by name, then the first file.
func pickFile(files map[string]gistFile) (gistFile, bool) {
	if len(files) == 0 {
		return gistFile{}, false
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := files[name]
		if strings.EqualFold(f.Language, "markdown") || strings.HasSuffix(strings.ToLower(name), ".md") {
			return f, true
		}
	}
	return files[names[0]], true
}
