// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/indianhorizon/tripplanner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PackageRepo defines the read operations of the package catalog.
// The catalog is seeded by migrations; the API never writes to it.
type PackageRepo interface {
	// ListPaged returns one page of packages matching f and the total number
	// of matches. f.Sort must already be one of the domain.Sort* constants.
	ListPaged(ctx context.Context, f domain.PackageFilter, p domain.PaginationParams) ([]domain.TravelPackage, int64, error)

	// GetBySlug returns the full detail of one package.
	// Returns domain.ErrNotFound if no package has that slug.
	GetBySlug(ctx context.Context, slug string) (domain.PackageDetail, error)
}

// pgPackageRepo is the Postgres implementation of PackageRepo.
type pgPackageRepo struct {
	db db
}

// NewPackageRepo constructs a PackageRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPackageRepo(db db) PackageRepo {
	return &pgPackageRepo{db: db}
}

const packageColumns = `
	id, slug, title, description, location, image_url, category, price,
	days, nights, rating, reviews_count, popularity, featured, highlights, tags, created_at`

// orderBy maps each sort key to a fixed ORDER BY clause. Sort keys are never
// interpolated into SQL directly.
var orderBy = map[string]string{
	domain.SortPopularity: "popularity DESC, slug",
	domain.SortPriceAsc:   "price ASC, slug",
	domain.SortPriceDesc:  "price DESC, slug",
}

// packageWhere is shared by the page query and the count query.
const packageWhere = `
	WHERE (@query = '' OR title ILIKE '%' || @query || '%')
	  AND (cardinality(@categories::text[]) = 0 OR category = ANY(@categories::text[]))
	  AND (@featured::boolean IS NULL OR featured = @featured::boolean)`

// ListPaged returns one page of packages and the total match count.
func (r *pgPackageRepo) ListPaged(ctx context.Context, f domain.PackageFilter, p domain.PaginationParams) ([]domain.TravelPackage, int64, error) {
	order, ok := orderBy[f.Sort]
	if !ok {
		order = orderBy[domain.SortPopularity]
	}

	categories := f.Categories
	if categories == nil {
		categories = []string{}
	}
	args := pgx.NamedArgs{
		"query":      f.Query,
		"categories": categories,
		"featured":   f.Featured, // nil becomes NULL
		"limit":      p.Limit,
		"offset":     p.Offset(),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM packages`+packageWhere, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListPaged: count: %w", err)
	}

	q := `SELECT` + packageColumns + ` FROM packages` + packageWhere +
		` ORDER BY ` + order + ` LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	pkgs := []domain.TravelPackage{}
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.PackageRepo.ListPaged: scan: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.PackageRepo.ListPaged: rows: %w", err)
	}
	return pkgs, total, nil
}

// GetBySlug retrieves a package and its detail-page content.
func (r *pgPackageRepo) GetBySlug(ctx context.Context, slug string) (domain.PackageDetail, error) {
	const q = `
		SELECT` + packageColumns + `,
		       images, inclusions, exclusions, itinerary, reviews
		FROM packages
		WHERE slug = @slug`

	var (
		d  domain.PackageDetail
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(
		&id, &d.Slug, &d.Title, &d.Description, &d.Location, &d.ImageURL, &d.Category, &d.Price,
		&d.Days, &d.Nights, &d.Rating, &d.ReviewsCount, &d.Popularity, &d.Featured,
		&d.Highlights, &d.Tags, &d.CreatedAt,
		&d.Images, &d.Inclusions, &d.Exclusions, &d.Itinerary, &d.Reviews,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PackageDetail{}, fmt.Errorf("repo.PackageRepo.GetBySlug: %w", domain.ErrNotFound)
		}
		return domain.PackageDetail{}, fmt.Errorf("repo.PackageRepo.GetBySlug: %w", err)
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanPackage to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPackage maps one row selected with packageColumns into a domain.TravelPackage.
func scanPackage(s scanner) (domain.TravelPackage, error) {
	var (
		p  domain.TravelPackage
		id pgtype.UUID
	)
	err := s.Scan(
		&id, &p.Slug, &p.Title, &p.Description, &p.Location, &p.ImageURL, &p.Category, &p.Price,
		&p.Days, &p.Nights, &p.Rating, &p.ReviewsCount, &p.Popularity, &p.Featured,
		&p.Highlights, &p.Tags, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelPackage{}, domain.ErrNotFound
		}
		return domain.TravelPackage{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
