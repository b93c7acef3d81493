package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/civic-report-service/internal/domain"
)

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Update(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountByStatus(ctx context.Context) (*domain.StatusCounts, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (user_id, category, description, longitude, latitude, address, image_url, status, priority, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	lon, lat := locationColumns(report.Location)
	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.Category,
		report.Description,
		lon,
		lat,
		report.Address,
		report.ImageURL,
		report.Status,
		report.Priority,
		report.AssignedTo,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	const query = `
        UPDATE reports SET category=$1, description=$2, longitude=$3, latitude=$4, address=$5,
            image_url=$6, status=$7, priority=$8, assigned_to=$9, updated_at=NOW()
        WHERE id=$10`

	lon, lat := locationColumns(report.Location)
	cmd, err := r.pool.Exec(ctx, query,
		report.Category,
		report.Description,
		lon,
		lat,
		report.Address,
		report.ImageURL,
		report.Status,
		report.Priority,
		report.AssignedTo,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	const query = `
        SELECT id, user_id, category, description, longitude, latitude, address, image_url,
               status, priority, assigned_to, created_at, updated_at
        FROM reports WHERE id=$1`

	return scanReport(r.pool.QueryRow(ctx, query, id), false)
}

func (r *reportRepository) ListAll(ctx context.Context) ([]domain.Report, error) {
	const query = `
        SELECT r.id, r.user_id, r.category, r.description, r.longitude, r.latitude, r.address, r.image_url,
               r.status, r.priority, r.assigned_to, r.created_at, r.updated_at, u.email
        FROM reports r
        LEFT JOIN users u ON u.id = r.user_id
        ORDER BY r.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows, true)
}

func (r *reportRepository) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	const query = `
        SELECT id, user_id, category, description, longitude, latitude, address, image_url,
               status, priority, assigned_to, created_at, updated_at
        FROM reports WHERE user_id=$1
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows, false)
}

func (r *reportRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// CountByStatus runs four independent counts concurrently. The result is an
// eventually consistent snapshot: the numbers may not sum exactly under
// concurrent writes.
func (r *reportRepository) CountByStatus(ctx context.Context) (*domain.StatusCounts, error) {
	counts := &domain.StatusCounts{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.pool.QueryRow(gctx, `SELECT COUNT(*) FROM reports`).Scan(&counts.Total)
	})
	g.Go(func() error {
		return r.countStatus(gctx, domain.ReportStatusPending, &counts.Pending)
	})
	g.Go(func() error {
		return r.countStatus(gctx, domain.ReportStatusInProgress, &counts.InProgress)
	})
	g.Go(func() error {
		return r.countStatus(gctx, domain.ReportStatusResolved, &counts.Resolved)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *reportRepository) countStatus(ctx context.Context, status domain.ReportStatus, dest *int64) error {
	return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE status=$1`, status).Scan(dest)
}

func locationColumns(point *domain.GeoPoint) (*float64, *float64) {
	if point == nil {
		return nil, nil
	}
	return &point.Longitude, &point.Latitude
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner, withReporter bool) (*domain.Report, error) {
	var report domain.Report
	var lon, lat *float64
	var reporterEmail *string

	dest := []any{
		&report.ID,
		&report.UserID,
		&report.Category,
		&report.Description,
		&lon,
		&lat,
		&report.Address,
		&report.ImageURL,
		&report.Status,
		&report.Priority,
		&report.AssignedTo,
		&report.CreatedAt,
		&report.UpdatedAt,
	}
	if withReporter {
		dest = append(dest, &reporterEmail)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if lon != nil && lat != nil {
		report.Location = &domain.GeoPoint{Longitude: *lon, Latitude: *lat}
	}
	if reporterEmail != nil {
		report.ReporterEmail = *reporterEmail
	}
	return &report, nil
}

func scanReports(rows pgx.Rows, withReporter bool) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		report, err := scanReport(rows, withReporter)
		if err != nil {
			return nil, err
		}
		result = append(result, *report)
	}
	return result, rows.Err()
}
