package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

var locationColumns = []string{
	"id",
	"title",
	"pickup_instructions",
	"allow_lockdays_in_range",
	"address",
	"latitude",
	"longitude",
}

// Repository репозиторий справочников: предметы и настройки локаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetLocation получает локацию по ID
func (r *Repository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - build select query: %v", ErrBuildQuery, err)
	}

	location, err := scanLocation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - scan location: %v", ErrScanRow, err)
	}

	return location, nil
}

// GetLocationsByIDs получает локации по списку ID, отсортированные по названию
func (r *Repository) GetLocationsByIDs(ctx context.Context, ids []int64) ([]*domain.Location, error) {
	locations := make([]*domain.Location, 0, len(ids))
	if len(ids) == 0 {
		return locations, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(locationColumns...).
		From("locations").
		Where(squirrel.Eq{"id": ids}).
		OrderBy("title ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationsByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocationsByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetLocationsByIDs - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, location)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetLocationsByIDs - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// ListPublishedItems получает опубликованные предметы, отсортированные по названию
func (r *Repository) ListPublishedItems(ctx context.Context) ([]*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "status").
		From("items").
		Where(squirrel.Eq{"status": domain.ItemStatusPublished}).
		OrderBy("title ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPublishedItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPublishedItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Status); err != nil {
			return nil, fmt.Errorf("%w: ListPublishedItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPublishedItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var (
		location           domain.Location
		instructions, addr sql.NullString
		lat, long          sql.NullFloat64
	)

	err := row.Scan(
		&location.ID,
		&location.Title,
		&instructions,
		&location.AllowLockDaysInRange,
		&addr,
		&lat,
		&long,
	)
	if err != nil {
		return nil, err
	}

	location.PickupInstructions = instructions.String
	location.Address = addr.String
	if lat.Valid {
		location.Latitude = &lat.Float64
	}
	if long.Valid {
		location.Longitude = &long.Float64
	}

	return &location, nil
}
