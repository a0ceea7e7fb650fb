package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/prowl-osint/prowl-cli/internal/core/domain"
	"github.com/prowl-osint/prowl-cli/internal/core/ports/driven"
)

// Setting keys accepted by the defaults service. They mirror the
// fields of domain.SearchDefaults.
const (
	SettingTopSites       = "top_sites"
	SettingTimeout        = "timeout"
	SettingMaxConnections = "max_connections"
	SettingRetries        = "retries"
	SettingParsingEnabled = "parsing_enabled"
	SettingIncludeSimilar = "include_similar"
	SettingIDType         = "id_type"
)

// DefaultsService resolves the effective search defaults: the
// configured base overlaid with persisted runtime overrides. Overrides
// are validated and clamped on write, so stored values are always
// inside the hard limits.
type DefaultsService struct {
	base  domain.SearchDefaults
	store driven.SettingsStore
}

// NewDefaultsService creates a DefaultsService over the given base
// defaults and override store.
func NewDefaultsService(base domain.SearchDefaults, store driven.SettingsStore) *DefaultsService {
	return &DefaultsService{base: base.Clamped(), store: store}
}

// Keys returns the accepted setting keys, sorted.
func (s *DefaultsService) Keys() []string {
	keys := []string{
		SettingTopSites, SettingTimeout, SettingMaxConnections,
		SettingRetries, SettingParsingEnabled, SettingIncludeSimilar,
		SettingIDType,
	}
	sort.Strings(keys)
	return keys
}

// Current returns the effective defaults.
func (s *DefaultsService) Current(ctx context.Context) (domain.SearchDefaults, error) {
	overrides, err := s.store.All(ctx)
	if err != nil {
		return domain.SearchDefaults{}, fmt.Errorf("loading setting overrides: %w", err)
	}

	defaults := s.base
	for key, value := range overrides {
		switch key {
		case SettingTopSites:
			setInt(&defaults.TopSites, value)
		case SettingTimeout:
			setInt(&defaults.TimeoutSeconds, value)
		case SettingMaxConnections:
			setInt(&defaults.MaxConnections, value)
		case SettingRetries:
			setInt(&defaults.Retries, value)
		case SettingParsingEnabled:
			setBool(&defaults.ParsingEnabled, value)
		case SettingIncludeSimilar:
			setBool(&defaults.IncludeSimilar, value)
		case SettingIDType:
			if value != "" {
				defaults.IDType = value
			}
		}
	}
	return defaults.Clamped(), nil
}

// Overrides returns the persisted overrides only.
func (s *DefaultsService) Overrides(ctx context.Context) (map[string]string, error) {
	return s.store.All(ctx)
}

// Set validates and persists one override. Integer settings are
// clamped into their hard limits before storage; the stored value is
// returned.
func (s *DefaultsService) Set(ctx context.Context, key, value string) (string, error) {
	value = strings.TrimSpace(value)

	var stored string
	switch key {
	case SettingTopSites, SettingTimeout, SettingMaxConnections, SettingRetries:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		min, max := settingBounds(key)
		stored = strconv.Itoa(domain.Clamp(n, min, max))
	case SettingParsingEnabled, SettingIncludeSimilar:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = strconv.FormatBool(b)
	case SettingIDType:
		if value == "" {
			return "", fmt.Errorf("%w: id_type must not be empty", domain.ErrInvalidInput)
		}
		stored = value
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.store.Set(ctx, key, stored); err != nil {
		return "", fmt.Errorf("storing setting: %w", err)
	}
	return stored, nil
}

// Reset removes one override, restoring the configured base value.
func (s *DefaultsService) Reset(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}

func settingBounds(key string) (int, int) {
	switch key {
	case SettingTopSites:
		return domain.TopSitesMin, domain.TopSitesMax
	case SettingTimeout:
		return domain.TimeoutMin, domain.TimeoutMax
	case SettingMaxConnections:
		return domain.MaxConnectionsMin, domain.MaxConnectionsMax
	default:
		return domain.RetriesMin, domain.RetriesMax
	}
}

func setInt(dst *int, value string) {
	if n, err := strconv.Atoi(value); err == nil {
		*dst = n
	}
}

func setBool(dst *bool, value string) {
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
