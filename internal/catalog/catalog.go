// Package catalog serves the read-only menu, chef and testimonial data shown on the site.
package catalog

import (
	"fmt"
	"os"
	"slices"

	"restoran/internal/models"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Catalog is the site's static content
type Catalog struct {
	MenuItems    []models.MenuItem    `yaml:"menu"`
	ChefList     []models.Chef        `yaml:"chefs"`
	Testimonials []models.Testimonial `yaml:"testimonials"`
}

// Load reads a YAML catalog file; an empty path returns the built-in catalog
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	for i := range c.MenuItems {
		if err := models.ValidateMenuItem(&c.MenuItems[i]); err != nil {
			return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
		}
	}
	return &c, nil
}

// Menu returns every dish, or only those of category when it is not empty
func (c *Catalog) Menu(category string) []models.MenuItem {
	if category == "" {
		return slices.Clone(c.MenuItems)
	}
	return lo.Filter(c.MenuItems, func(item models.MenuItem, _ int) bool {
		return item.IsInCategory(category)
	})
}

// Categories returns the menu categories in first-seen order
func (c *Catalog) Categories() []string {
	return lo.Uniq(lo.Map(c.MenuItems, func(item models.MenuItem, _ int) string {
		return item.Category
	}))
}

// Chefs returns the kitchen brigade
func (c *Catalog) Chefs() []models.Chef {
	return slices.Clone(c.ChefList)
}

// Reviews returns the guest testimonials
func (c *Catalog) Reviews() []models.Testimonial {
	return slices.Clone(c.Testimonials)
}
