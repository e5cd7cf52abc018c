package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Package is a catalog listing entry.
type Package struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	Price        Money     `json:"price"`
	Days         int       `json:"days"`
	Nights       int       `json:"nights"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviews_count"`
	Featured     bool      `json:"featured"`
	Highlights   []string  `json:"highlights"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

type PackageList struct {
	Data       []Package  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type PackageDetail struct {
	Package
	Images     []string              `json:"images"`
	Itinerary  []domain.ItineraryDay `json:"itinerary"`
	Inclusions []string              `json:"inclusions"`
	Exclusions []string              `json:"exclusions"`
	Reviews    []domain.Review       `json:"reviews"`
}

// ListPackages handles GET /packages.
// Supports ?q=, ?category= (repeatable or comma-separated), ?featured=,
// ?sort= and ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListPackages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := optionalInt(q.Get("page"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("page must be an integer"))
		return
	}
	limit, err := optionalInt(q.Get("limit"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("limit must be an integer"))
		return
	}
	filter := domain.PackageFilter{
		Query:      q.Get("q"),
		Categories: splitList(q["category"]),
		Sort:       q.Get("sort"),
	}
	if v := q.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, requestBody("featured must be true or false"))
			return
		}
		filter.Featured = &featured
	}

	params := domain.NewPaginationParams(page, limit)
	pkgs, total, err := s.catalog.List(r.Context(), filter, params)
	if err != nil {
		s.writeError(w, r, err, "package not found")
		return
	}

	data := make([]Package, len(pkgs))
	for i, p := range pkgs {
		data[i] = packageToResponse(p)
	}
	writeJSON(w, http.StatusOK, PackageList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetPackage handles GET /packages/{slug}.
func (s *Server) GetPackage(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.writeError(w, r, err, "package not found")
		return
	}
	writeJSON(w, http.StatusOK, PackageDetail{
		Package:    packageToResponse(d.TravelPackage),
		Images:     nonNil(d.Images),
		Itinerary:  nonNil(d.Itinerary),
		Inclusions: nonNil(d.Inclusions),
		Exclusions: nonNil(d.Exclusions),
		Reviews:    nonNil(d.Reviews),
	})
}

func packageToResponse(p domain.TravelPackage) Package {
	return Package{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		ImageURL:     p.ImageURL,
		Category:     p.Category,
		Price:        money(p.Price),
		Days:         p.Days,
		Nights:       p.Nights,
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
		Featured:     p.Featured,
		Highlights:   nonNil(p.Highlights),
		Tags:         nonNil(p.Tags),
		CreatedAt:    p.CreatedAt.UTC(),
	}
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// splitList flattens repeated and comma-separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// nonNil returns an empty slice for nil so JSON arrays are never null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
