//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/badge-service/config"
	"github.com/guttosm/badge-service/internal/badge"
)

func TestBuildAppearance(t *testing.T) {
	base := func() config.AppearanceConfig {
		return config.AppearanceConfig{
			FontFamily:          "Arial, Helvetica, sans-serif",
			FontSize:            12,
			Height:              20,
			Logo:                badge.DefaultLogo,
			MeasureFont:         "Fonts/arial.ttf",
			PrimaryBackground:   "#444444",
			PrimaryForeground:   "#FFFFFF",
			SecondaryBackground: "#F9C438",
			SecondaryForeground: "#000000",
		}
	}

	tests := []struct {
		name      string
		modify    func(*config.AppearanceConfig)
		wantError bool
	}{
		{name: "defaults"},
		{name: "no logo", modify: func(c *config.AppearanceConfig) { c.Logo = "" }},
		{name: "positional logo placeholders", modify: func(c *config.AppearanceConfig) {
			c.Logo = `<svg x="{0}" y="{1}" width="{2}px" height="{2}px"/>`
		}},
		{name: "colour names", modify: func(c *config.AppearanceConfig) { c.PrimaryBackground = "navy" }},
		{name: "malformed logo", modify: func(c *config.AppearanceConfig) { c.Logo = "not xml" }, wantError: true},
		{name: "zero font size", modify: func(c *config.AppearanceConfig) { c.FontSize = 0 }, wantError: true},
		{name: "negative height", modify: func(c *config.AppearanceConfig) { c.Height = -1 }, wantError: true},
		{name: "bad colour", modify: func(c *config.AppearanceConfig) { c.SecondaryForeground = "#00000g" }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			if tt.modify != nil {
				tt.modify(&cfg)
			}

			appearance, err := BuildAppearance(cfg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg.FontFamily, appearance.FontFamily)
			assert.Equal(t, cfg.FontSize, appearance.FontSize)
			assert.Equal(t, cfg.PrimaryBackground, appearance.PrimaryBackground)
			assert.Equal(t, cfg.Logo == "", appearance.Logo.IsZero())
		})
	}
}

func TestInitializeServices(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Cache.TTL = 2 * time.Minute

	services, err := InitializeServices(cfg)
	require.NoError(t, err)
	t.Cleanup(services.Cache.Stop)

	assert.NotNil(t, services.Renderer)
	assert.NotNil(t, services.Metadata)
	assert.Equal(t, 2*time.Minute, services.Badges.TTL())
	assert.Equal(t, "metadata", services.MetadataBreaker.Name())
	assert.Equal(t, cfg.Appearance.FontFamily, services.Appearance.FontFamily)
}
