package app

import (
	"fmt"

	"github.com/guttosm/badge-service/config"
	"github.com/guttosm/badge-service/internal/badge"
	"github.com/guttosm/badge-service/internal/circuitbreaker"
	"github.com/guttosm/badge-service/internal/metadata"
	"github.com/guttosm/badge-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Appearance      *badge.Appearance
	Renderer        *badge.Renderer
	Cache           *service.BadgeCache
	MetadataBreaker *circuitbreaker.CircuitBreaker
	Metadata        *metadata.Client
	Badges          *service.BadgeServiceImpl
}

// BuildAppearance turns the appearance settings into a validated badge.Appearance.
func BuildAppearance(cfg config.AppearanceConfig) (*badge.Appearance, error) {
	logo, err := badge.ParseLogoTemplate(cfg.Logo)
	if err != nil {
		return nil, fmt.Errorf("appearance.logo: %w", err)
	}

	appearance := &badge.Appearance{
		FontFamily:          cfg.FontFamily,
		FontSize:            cfg.FontSize,
		Height:              cfg.Height,
		Logo:                logo,
		MeasureFont:         cfg.MeasureFont,
		PrimaryBackground:   cfg.PrimaryBackground,
		PrimaryForeground:   cfg.PrimaryForeground,
		SecondaryBackground: cfg.SecondaryBackground,
		SecondaryForeground: cfg.SecondaryForeground,
	}
	if err := appearance.Validate(); err != nil {
		return nil, fmt.Errorf("appearance: %w", err)
	}
	return appearance, nil
}

// InitializeServices initializes the badge pipeline: appearance, renderer,
// metadata client behind its circuit breaker, cache and badge service.
func InitializeServices(cfg *config.Config) (*ServiceComponents, error) {
	appearance, err := BuildAppearance(cfg.Appearance)
	if err != nil {
		return nil, err
	}

	template, err := metadata.ParseURLTemplate(cfg.Requests.Template)
	if err != nil {
		return nil, fmt.Errorf("requests.template: %w", err)
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.Resilience.FailureThreshold,
		SuccessThreshold: cfg.Resilience.SuccessThreshold,
		Timeout:          cfg.Resilience.Timeout,
		Name:             "metadata",
		Ignore:           metadata.IsClientError,
	})

	client := metadata.NewClient(template,
		metadata.WithCircuitBreaker(breaker),
		metadata.WithConfig(metadata.Config{
			Timeout:      cfg.Requests.Timeout,
			MaxAttempts:  cfg.Requests.MaxAttempts,
			InitialDelay: cfg.Requests.InitialDelay,
			MaxDelay:     cfg.Requests.MaxDelay,
		}),
	)

	badgeCache := service.NewBadgeCache(service.WithSweepInterval(cfg.Cache.SweepInterval))
	renderer := badge.NewRenderer()

	badges := service.NewBadgeService(client, renderer, appearance,
		service.WithCache(badgeCache),
		service.WithTTL(cfg.Cache.TTL),
		service.WithSingleFlight(cfg.Cache.SingleFlight),
	)

	return &ServiceComponents{
		Appearance:      appearance,
		Renderer:        renderer,
		Cache:           badgeCache,
		MetadataBreaker: breaker,
		Metadata:        client,
		Badges:          badges,
	}, nil
}
