package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/cloud-atlas/pkg/models/domain"
	"github.com/de-tools/cloud-atlas/pkg/services/classify"
	"github.com/de-tools/cloud-atlas/pkg/services/diagram"
	"github.com/de-tools/cloud-atlas/pkg/services/render"
)

// Profile is the optional tool configuration file. Everything is additive
// over built-in defaults, so an empty profile is fully usable.
type Profile struct {
	Diagram DiagramProfile `mapstructure:"diagram"`
	Render  RenderProfile  `mapstructure:"render"`
}

type DiagramProfile struct {
	// Colors overrides palette entries, keyed by category name.
	Colors       map[string]string `mapstructure:"colors"`
	DefaultColor string            `mapstructure:"default_color"`
	// NameRules replaces the built-in name-substring classification rules
	// when non-empty. Order is significant; first match wins.
	NameRules []NameRuleProfile `mapstructure:"name_rules"`
}

type NameRuleProfile struct {
	Pattern  string `mapstructure:"pattern"`
	Category string `mapstructure:"category"`
}

type RenderProfile struct {
	Binary         string   `mapstructure:"binary"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
	Workers        int      `mapstructure:"workers"`
	Formats        []string `mapstructure:"formats"`
}

// DefaultProfile is the profile used when no file is given.
func DefaultProfile() *Profile {
	return &Profile{}
}

// LoadProfile loads configuration from the specified profile path.
func LoadProfile(path string) (*Profile, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// Palette resolves the profile's color overrides over the default palette.
func (p *Profile) Palette() (diagram.Palette, error) {
	pal := diagram.DefaultPalette()
	for name, color := range p.Diagram.Colors {
		cat, err := domain.ParseCategory(name)
		if err != nil {
			return diagram.Palette{}, fmt.Errorf("profile color table: %w", err)
		}
		pal.Colors[cat] = color
	}
	if p.Diagram.DefaultColor != "" {
		pal.Default = p.Diagram.DefaultColor
	}
	return pal, nil
}

// ClassifierRules resolves the profile's name rules over the defaults.
func (p *Profile) ClassifierRules() (classify.Rules, error) {
	rules := classify.DefaultRules()
	if len(p.Diagram.NameRules) == 0 {
		return rules, nil
	}
	rules.Names = nil
	for _, nr := range p.Diagram.NameRules {
		cat, err := domain.ParseCategory(nr.Category)
		if err != nil {
			return classify.Rules{}, fmt.Errorf("profile name rule %q: %w", nr.Pattern, err)
		}
		rules.Names = append(rules.Names, classify.NameRule{Pattern: nr.Pattern, Category: cat})
	}
	return rules, nil
}

// DotSettings resolves the profile's renderer overrides over the defaults.
func (p *Profile) DotSettings() render.DotSettings {
	settings := render.DefaultDotSettings()
	if p.Render.Binary != "" {
		settings.Binary = p.Render.Binary
	}
	if p.Render.TimeoutSeconds > 0 {
		settings.Timeout = time.Duration(p.Render.TimeoutSeconds) * time.Second
	}
	return settings
}

// PipelineSettings resolves the profile's batch overrides over the defaults.
func (p *Profile) PipelineSettings() render.Settings {
	settings := render.DefaultSettings()
	if p.Render.Workers > 0 {
		settings.Workers = p.Render.Workers
	}
	return settings
}

// Formats parses the profile's default image formats.
func (p *Profile) Formats() ([]domain.ImageFormat, error) {
	var formats []domain.ImageFormat
	for _, s := range p.Render.Formats {
		f, err := domain.ParseImageFormat(s)
		if err != nil {
			return nil, fmt.Errorf("profile render formats: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
