package models

import (
	"fmt"
	"strings"
)

// MenuItem represents a dish on the menu
type MenuItem struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	Price       float64 `json:"price" yaml:"price"`
	Rating      float64 `json:"rating" yaml:"rating"`
}

// MenuCategory represents the category of a menu item
type MenuCategory string

const (
	// Menu categories
	MenuCategorySignature MenuCategory = "Signature"
	MenuCategoryPremium   MenuCategory = "Premium"
	MenuCategorySeafood   MenuCategory = "Seafood"
	MenuCategoryClassic   MenuCategory = "Classic"
	MenuCategoryDessert   MenuCategory = "Dessert"
)

// Chef represents a member of the kitchen brigade shown on the site
type Chef struct {
	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title" yaml:"title"`
	Experience string `json:"experience" yaml:"experience"`
	Specialty  string `json:"specialty" yaml:"specialty"`
}

// Testimonial is a guest quote
type Testimonial struct {
	Name   string `json:"name" yaml:"name"`
	Text   string `json:"text" yaml:"text"`
	Rating int    `json:"rating" yaml:"rating"`
}

// ValidateMenuItem validates a menu item
func ValidateMenuItem(item *MenuItem) error {
	if item.Name == "" {
		return fmt.Errorf("menu item name is required")
	}
	if item.Price <= 0 {
		return fmt.Errorf("menu item %q price must be greater than 0", item.Name)
	}
	if item.Rating < 0 || item.Rating > 5 {
		return fmt.Errorf("menu item %q rating must be between 0 and 5", item.Name)
	}
	return nil
}

// DisplayPrice formats the price the way the menu card shows it
func (mi *MenuItem) DisplayPrice() string {
	if mi.Price == float64(int64(mi.Price)) {
		return fmt.Sprintf("$%d", int64(mi.Price))
	}
	return fmt.Sprintf("$%.2f", mi.Price)
}

// IsInCategory checks if the item belongs to a specific category
func (mi *MenuItem) IsInCategory(category string) bool {
	return strings.EqualFold(mi.Category, category)
}
