package domain

// Place categories accepted by the places proxy.
const (
	CategorySupermarket = "commercial.supermarket"
	CategoryRestaurant  = "catering.restaurant"
	CategoryCinema      = "entertainment.cinema"
)

// SupportedCategories is the allow-list for place searches, in provider order.
var SupportedCategories = []string{
	CategorySupermarket,
	CategoryRestaurant,
	CategoryCinema,
}

// IsSupportedCategory reports whether c is on the allow-list.
func IsSupportedCategory(c string) bool {
	for _, s := range SupportedCategories {
		if s == c {
			return true
		}
	}
	return false
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point lies inside the WGS84 range.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Place is a point of interest returned by the places provider, annotated with
// its coordinates and provider identifier. Provider properties not listed here
// are not carried.
type Place struct {
	PlaceID      string   `json:"place_id"`
	Name         string   `json:"name,omitempty"`
	Formatted    string   `json:"formatted,omitempty"`
	AddressLine1 string   `json:"address_line1,omitempty"`
	AddressLine2 string   `json:"address_line2,omitempty"`
	Street       string   `json:"street,omitempty"`
	HouseNumber  string   `json:"housenumber,omitempty"`
	City         string   `json:"city,omitempty"`
	Postcode     string   `json:"postcode,omitempty"`
	Country      string   `json:"country,omitempty"`
	CountryCode  string   `json:"country_code,omitempty"`
	Categories   []string `json:"categories"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	Distance     float64  `json:"distance,omitempty"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
}
