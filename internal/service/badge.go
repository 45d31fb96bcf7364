package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/badge-service/internal/badge"
	"github.com/guttosm/badge-service/internal/domain/model"
	"github.com/guttosm/badge-service/internal/metrics"
	"github.com/guttosm/badge-service/internal/service/cache"
)

// DefaultTTL is how long a rendered badge is served from cache.
const DefaultTTL = 60 * time.Second

var (
	// ErrInvalidPackageName is returned for blank package names.
	ErrInvalidPackageName = fmt.Errorf("%w: package name is blank", badge.ErrInvalidArgument)
	// ErrPackageNotFound is returned when no usable metadata exists for a package.
	ErrPackageNotFound = errors.New("package not found")

	// errAbandoned marks work whose initiating request went away.
	errAbandoned = errors.New("badge lookup abandoned")
)

// MetadataFetcher retrieves package metadata from the remote registry.
type MetadataFetcher interface {
	Fetch(ctx context.Context, packageName string) (*model.PackageMetadata, error)
}

// BadgeRenderer renders badge SVG documents.
type BadgeRenderer interface {
	RenderBadge(label, version string, appearance *badge.Appearance) (badge.Result, error)
}

// BadgeResult is a badge and how it was obtained.
type BadgeResult struct {
	SVG      string
	CacheHit bool
	// Metadata is set on cache misses only.
	Metadata *model.PackageMetadata
}

// BadgeService returns badges for packages.
type BadgeService interface {
	GetBadge(ctx context.Context, packageName string) (string, error)
	Lookup(ctx context.Context, packageName string) (BadgeResult, error)
	TTL() time.Duration
}

// BadgeServiceOption configures a BadgeServiceImpl.
type BadgeServiceOption func(*BadgeServiceImpl)

// WithCache sets the badge cache. The service does not stop a cache it was given.
func WithCache(c cache.Cache) BadgeServiceOption {
	return func(s *BadgeServiceImpl) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithTTL sets how long rendered badges are cached.
func WithTTL(ttl time.Duration) BadgeServiceOption {
	return func(s *BadgeServiceImpl) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithSingleFlight collapses concurrent misses for the same package into
// one fetch and render when enabled.
func WithSingleFlight(enabled bool) BadgeServiceOption {
	return func(s *BadgeServiceImpl) {
		s.singleFlight = enabled
	}
}

// BadgeServiceImpl looks badges up in the cache and, on a miss, fetches
// metadata, renders the badge and caches it. Failed lookups are never
// answered from stale entries, and a lookup whose context ends before it
// completes writes nothing to the cache.
type BadgeServiceImpl struct {
	fetcher      MetadataFetcher
	renderer     BadgeRenderer
	appearance   *badge.Appearance
	cache        cache.Cache
	ttl          time.Duration
	singleFlight bool
	group        singleflight.Group
}

var _ BadgeService = (*BadgeServiceImpl)(nil)

// NewBadgeService creates a BadgeServiceImpl. Without WithCache it uses a
// private BadgeCache with background sweeping disabled.
func NewBadgeService(fetcher MetadataFetcher, renderer BadgeRenderer, appearance *badge.Appearance, opts ...BadgeServiceOption) *BadgeServiceImpl {
	s := &BadgeServiceImpl{
		fetcher:    fetcher,
		renderer:   renderer,
		appearance: appearance,
		ttl:        DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NewBadgeCache(WithSweepInterval(0))
	}
	return s
}

// TTL returns the cache lifetime of rendered badges.
func (s *BadgeServiceImpl) TTL() time.Duration {
	return s.ttl
}

// GetBadge returns the SVG badge for packageName.
func (s *BadgeServiceImpl) GetBadge(ctx context.Context, packageName string) (string, error) {
	res, err := s.Lookup(ctx, packageName)
	if err != nil {
		return "", err
	}
	return res.SVG, nil
}

// Lookup returns the badge for packageName together with its provenance.
// Blank names fail with ErrInvalidPackageName before touching the cache or
// the registry; registry failures of any kind fail with ErrPackageNotFound.
func (s *BadgeServiceImpl) Lookup(ctx context.Context, packageName string) (BadgeResult, error) {
	if strings.TrimSpace(packageName) == "" {
		metrics.RecordBadgeRequest("invalid")
		return BadgeResult{}, ErrInvalidPackageName
	}

	if svg, ok := s.cache.Get(packageName); ok {
		metrics.RecordBadgeRequest("hit")
		return BadgeResult{SVG: svg, CacheHit: true}, nil
	}

	var (
		res BadgeResult
		err error
	)
	if s.singleFlight {
		res, err = s.buildShared(ctx, packageName)
	} else {
		res, err = s.build(ctx, packageName)
	}
	err = unwrapAbandoned(err)

	metrics.RecordBadgeRequest(requestResult(err))
	return res, err
}

// buildShared joins an in-flight build for the same package or starts one.
// If the build was started by a request that has since gone away, the
// remaining waiters start a fresh one.
func (s *BadgeServiceImpl) buildShared(ctx context.Context, packageName string) (BadgeResult, error) {
	for {
		ch := s.group.DoChan(packageName, func() (interface{}, error) {
			return s.build(ctx, packageName)
		})

		select {
		case <-ctx.Done():
			return BadgeResult{}, ctx.Err()
		case r := <-ch:
			if r.Err != nil {
				if errors.Is(r.Err, errAbandoned) && ctx.Err() == nil {
					continue
				}
				return BadgeResult{}, r.Err
			}
			return r.Val.(BadgeResult), nil
		}
	}
}

func (s *BadgeServiceImpl) build(ctx context.Context, packageName string) (BadgeResult, error) {
	meta, err := s.fetcher.Fetch(ctx, packageName)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return BadgeResult{}, fmt.Errorf("%w: %w", errAbandoned, ctxErr)
	}
	if err != nil {
		log.Warn().Err(err).Str("package", packageName).Msg("Metadata lookup failed")
		return BadgeResult{}, fmt.Errorf("%w: %s: %w", ErrPackageNotFound, packageName, err)
	}
	if !meta.Complete() {
		return BadgeResult{}, fmt.Errorf("%w: %s: metadata has no name or version", ErrPackageNotFound, packageName)
	}

	start := time.Now()
	rendered, err := s.renderer.RenderBadge(meta.Name, meta.Version, s.appearance)
	if err != nil {
		return BadgeResult{}, fmt.Errorf("rendering badge for %s: %w", packageName, err)
	}
	measurement := badge.SourceFont.String()
	if rendered.UsedFallback() {
		measurement = badge.SourceFallback.String()
	}
	metrics.RecordBadgeRender(time.Since(start), measurement)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return BadgeResult{}, fmt.Errorf("%w: %w", errAbandoned, ctxErr)
	}
	s.cache.Put(packageName, rendered.SVG, s.ttl)

	return BadgeResult{SVG: rendered.SVG, Metadata: meta}, nil
}

// unwrapAbandoned returns the context error behind an abandoned build.
func unwrapAbandoned(err error) error {
	if err == nil || !errors.Is(err, errAbandoned) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return context.DeadlineExceeded
	}
	return context.Canceled
}

func requestResult(err error) string {
	switch {
	case err == nil:
		return "miss"
	case errors.Is(err, ErrPackageNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}
