package domain

// POI Category constants
const (
	POICategoryRestaurant = "restaurant"
	POICategoryCafe       = "cafe"
	POICategoryBar        = "bar"
	POICategoryHotel      = "hotel"
	POICategoryMuseum     = "museum"
	POICategoryGallery    = "gallery"
	POICategoryPark       = "park"
	POICategoryAttraction = "attraction"
	POICategoryShopping   = "shopping"
	POICategoryNightlife  = "nightlife"
	POICategoryBeach      = "beach"
	POICategoryLandmark   = "landmark"
)

var validPOICategories = map[string]bool{
	POICategoryRestaurant: true,
	POICategoryCafe:       true,
	POICategoryBar:        true,
	POICategoryHotel:      true,
	POICategoryMuseum:     true,
	POICategoryGallery:    true,
	POICategoryPark:       true,
	POICategoryAttraction: true,
	POICategoryShopping:   true,
	POICategoryNightlife:  true,
	POICategoryBeach:      true,
	POICategoryLandmark:   true,
}

// IsValidPOICategory проверяет, известна ли категория POI
func IsValidPOICategory(category string) bool {
	return validPOICategories[category]
}
