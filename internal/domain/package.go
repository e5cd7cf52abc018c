// Package domain contains the core data types shared by the repo, service
// and handler layers of the trip planner API.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Package categories used by the catalog filter.
const (
	CategoryAdventure  = "Adventure"
	CategoryCultural   = "Cultural"
	CategoryRelaxation = "Relaxation"
	CategorySpiritual  = "Spiritual"
)

// Categories lists every valid package category.
var Categories = []string{CategoryAdventure, CategoryCultural, CategoryRelaxation, CategorySpiritual}

// Catalog sort orders. SortPopularity is the default.
const (
	SortPopularity = "popularity"
	SortPriceAsc   = "price-asc"
	SortPriceDesc  = "price-desc"
)

// TravelPackage is a curated tour listed in the catalog.
// Price is in whole rupees per person.
type TravelPackage struct {
	ID           uuid.UUID
	Slug         string
	Title        string
	Description  string
	Location     string
	ImageURL     string
	Category     string
	Price        int
	Days         int
	Nights       int
	Rating       float64
	ReviewsCount int
	Popularity   int
	Featured     bool
	Highlights   []string
	Tags         []string
	CreatedAt    time.Time
}

// PackageDetail is a TravelPackage together with the content of its
// detail page.
type PackageDetail struct {
	TravelPackage
	Images     []string
	Itinerary  []ItineraryDay
	Inclusions []string
	Exclusions []string
	Reviews    []Review
}

// ItineraryDay describes one day of a package's itinerary.
type ItineraryDay struct {
	Day     int    `json:"day"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Review is a traveller's rating of a package.
type Review struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// PackageFilter narrows a catalog listing. Zero values mean "no filter".
type PackageFilter struct {
	// Query matches a case-insensitive substring of the title.
	Query string
	// Categories keeps packages in any of the listed categories.
	Categories []string
	// Featured, when non-nil, keeps only packages with that flag.
	Featured *bool
	// Sort is one of SortPopularity, SortPriceAsc, SortPriceDesc.
	Sort string
}
