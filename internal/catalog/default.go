package catalog

import "restoran/internal/models"

// Default returns the catalog the site ships with
func Default() *Catalog {
	return &Catalog{
		MenuItems: []models.MenuItem{
			{Name: "Truffle Risotto", Price: 42, Category: string(models.MenuCategorySignature), Rating: 4.9, Description: "Creamy arborio rice with black truffle shavings"},
			{Name: "Wagyu Beef Steak", Price: 85, Category: string(models.MenuCategoryPremium), Rating: 5.0, Description: "Japanese A5 wagyu with seasonal vegetables"},
			{Name: "Lobster Thermidor", Price: 68, Category: string(models.MenuCategorySignature), Rating: 4.8, Description: "Fresh Atlantic lobster in brandy cream sauce"},
			{Name: "Seared Scallops", Price: 52, Category: string(models.MenuCategorySeafood), Rating: 4.9, Description: "Pan-seared scallops with cauliflower purée"},
			{Name: "Duck Confit", Price: 48, Category: string(models.MenuCategoryClassic), Rating: 4.7, Description: "Slow-cooked duck leg with cherry reduction"},
			{Name: "Chocolate Soufflé", Price: 24, Category: string(models.MenuCategoryDessert), Rating: 5.0, Description: "Dark chocolate soufflé with vanilla ice cream"},
		},
		ChefList: []models.Chef{
			{Name: "Marcus Chen", Title: "Executive Chef", Experience: "15 Years", Specialty: "French Cuisine"},
			{Name: "Isabella Romano", Title: "Pastry Chef", Experience: "12 Years", Specialty: "Desserts"},
			{Name: "James Mitchell", Title: "Sous Chef", Experience: "10 Years", Specialty: "Seafood"},
			{Name: "Sofia Laurent", Title: "Head Chef", Experience: "14 Years", Specialty: "Italian Cuisine"},
		},
		Testimonials: []models.Testimonial{
			{Name: "Sarah Johnson", Text: "An unforgettable dining experience! The ambiance and food were absolutely spectacular.", Rating: 5},
			{Name: "Michael Chen", Text: "Best restaurant in the city. The attention to detail is remarkable.", Rating: 5},
			{Name: "Emma Davis", Text: "From the moment we walked in, we knew this would be special. Exceeded all expectations!", Rating: 5},
		},
	}
}
