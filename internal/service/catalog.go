package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/indianhorizon/tripplanner/internal/domain"
	"github.com/indianhorizon/tripplanner/internal/repo"
)

// CatalogService serves the curated package catalog.
type CatalogService struct {
	repo repo.PackageRepo
}

// NewCatalogService constructs a CatalogService backed by the provided PackageRepo.
func NewCatalogService(r repo.PackageRepo) *CatalogService {
	return &CatalogService{repo: r}
}

// List returns one page of packages matching f and the total match count.
// An empty sort means popularity. Returns domain.ErrValidation for an
// unknown sort or category.
func (s *CatalogService) List(ctx context.Context, f domain.PackageFilter, p domain.PaginationParams) ([]domain.TravelPackage, int64, error) {
	f.Query = strings.TrimSpace(f.Query)
	switch f.Sort {
	case "":
		f.Sort = domain.SortPopularity
	case domain.SortPopularity, domain.SortPriceAsc, domain.SortPriceDesc:
	default:
		return nil, 0, fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, f.Sort)
	}
	for _, c := range f.Categories {
		if !slices.Contains(domain.Categories, c) {
			return nil, 0, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, c)
		}
	}

	pkgs, total, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CatalogService.List: %w", err)
	}
	if pkgs == nil {
		pkgs = []domain.TravelPackage{}
	}
	return pkgs, total, nil
}

// GetBySlug returns the detail page of one package.
// Returns domain.ErrNotFound if no package has that slug.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (domain.PackageDetail, error) {
	d, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return domain.PackageDetail{}, fmt.Errorf("service.CatalogService.GetBySlug: %w", err)
	}
	return d, nil
}
