package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

// KeyCatalogs holds the three static activation-key tables. It satisfies the
// license engine's Catalogs interface and is never mutated after loading.
type KeyCatalogs struct {
	daily    map[string]string
	annual   map[string]struct{}
	lifetime map[string]struct{}
}

// catalogFile is the on-disk YAML shape of the key tables.
type catalogFile struct {
	Daily    map[string]string `yaml:"daily"`
	Annual   []string          `yaml:"annual"`
	Lifetime []string          `yaml:"lifetime"`
}

// dayMonthRe validates DD/MM table entries.
var dayMonthRe = regexp.MustCompile(`^([0-2][0-9]|3[01])/(0[1-9]|1[0-2])$`)

// LoadCatalogs reads the key catalog file. Missing or malformed catalogs are
// a fatal startup condition, not a runtime error: the engine cannot operate
// without them.
func LoadCatalogs(path string) (*KeyCatalogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return NewKeyCatalogs(file.Daily, file.Annual, file.Lifetime)
}

// NewKeyCatalogs builds catalogs from in-memory tables, validating the daily
// table's DD/MM date keys.
func NewKeyCatalogs(daily map[string]string, annual, lifetime []string) (*KeyCatalogs, error) {
	c := &KeyCatalogs{
		daily:    make(map[string]string, len(daily)),
		annual:   make(map[string]struct{}, len(annual)),
		lifetime: make(map[string]struct{}, len(lifetime)),
	}
	for date, key := range daily {
		if !dayMonthRe.MatchString(date) {
			return nil, fmt.Errorf("invalid daily catalog date %q: want DD/MM", date)
		}
		if key == "" {
			return nil, fmt.Errorf("empty daily key for date %q", date)
		}
		c.daily[date] = key
	}
	for _, key := range annual {
		if key == "" {
			return nil, fmt.Errorf("empty key in annual catalog")
		}
		c.annual[key] = struct{}{}
	}
	for _, key := range lifetime {
		if key == "" {
			return nil, fmt.Errorf("empty key in lifetime catalog")
		}
		c.lifetime[key] = struct{}{}
	}
	return c, nil
}

// DailyKey returns the key configured for a DD/MM calendar date.
func (c *KeyCatalogs) DailyKey(dayMonth string) (string, bool) {
	key, ok := c.daily[dayMonth]
	return key, ok
}

// ContainsAnnual reports membership in the annual key set.
func (c *KeyCatalogs) ContainsAnnual(key string) bool {
	_, ok := c.annual[key]
	return ok
}

// ContainsLifetime reports membership in the lifetime key set.
func (c *KeyCatalogs) ContainsLifetime(key string) bool {
	_, ok := c.lifetime[key]
	return ok
}
