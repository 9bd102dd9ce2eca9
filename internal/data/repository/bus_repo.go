package repository

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BusRepository interface {
	Create(ctx context.Context, bus *entity.Bus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error)
	Search(ctx context.Context, routeFrom, routeTo string) ([]*entity.Bus, error)
	FindAll(ctx context.Context) ([]*entity.Bus, error)
	Update(ctx context.Context, bus *entity.Bus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)

	// DebitSeats is the only writer of available_seats. The decrement is a
	// single atomic update, never a fetch-then-write pair.
	DebitSeats(ctx context.Context, busID uuid.UUID, seats int) error
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

const busColumns = `id, bus_number, route_from, route_to, departure_time, arrival_time,
	total_seats, available_seats, price, amenities, bus_type, created_at, updated_at`

func scanBus(row pgx.Row) (*entity.Bus, error) {
	var bus entity.Bus
	err := row.Scan(
		&bus.ID,
		&bus.BusNumber,
		&bus.RouteFrom,
		&bus.RouteTo,
		&bus.DepartureTime,
		&bus.ArrivalTime,
		&bus.TotalSeats,
		&bus.AvailableSeats,
		&bus.Price,
		&bus.Amenities,
		&bus.BusType,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *busRepository) Create(ctx context.Context, bus *entity.Bus) error {
	query := `
		INSERT INTO buses (id, bus_number, route_from, route_to, departure_time, arrival_time,
			total_seats, available_seats, price, amenities, bus_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.BusNumber,
		bus.RouteFrom,
		bus.RouteTo,
		bus.DepartureTime,
		bus.ArrivalTime,
		bus.TotalSeats,
		bus.AvailableSeats,
		bus.Price,
		bus.Amenities,
		bus.BusType,
		bus.CreatedAt,
		bus.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create bus",
			zap.Error(err),
			zap.String("bus_number", bus.BusNumber),
		)
		return fmt.Errorf("create bus %s: %w", bus.BusNumber, err)
	}

	return nil
}

func (r *busRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE id = $1`

	bus, err := scanBus(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus by ID",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return nil, fmt.Errorf("find bus by ID %s: %w", id.String(), err)
	}

	return bus, nil
}

func (r *busRepository) Search(ctx context.Context, routeFrom, routeTo string) ([]*entity.Bus, error) {
	// Case-insensitive substring match on either endpoint; empty filters match all.
	query := `
		SELECT ` + busColumns + `
		FROM buses
		WHERE ($1 = '' OR route_from ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR route_to ILIKE '%' || $2 || '%')
		ORDER BY departure_time
	`

	rows, err := r.db.Query(ctx, query, routeFrom, routeTo)
	if err != nil {
		r.log.Error("Failed to search buses",
			zap.Error(err),
			zap.String("route_from", routeFrom),
			zap.String("route_to", routeTo),
		)
		return nil, fmt.Errorf("search buses %s -> %s: %w", routeFrom, routeTo, err)
	}
	defer rows.Close()

	var buses []*entity.Bus
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		buses = append(buses, bus)
	}

	return buses, nil
}

func (r *busRepository) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	return r.Search(ctx, "", "")
}

func (r *busRepository) Update(ctx context.Context, bus *entity.Bus) error {
	query := `
		UPDATE buses
		SET bus_number = $2, route_from = $3, route_to = $4, departure_time = $5,
		    arrival_time = $6, total_seats = $7, available_seats = $8, price = $9,
		    amenities = $10, bus_type = $11, updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.BusNumber,
		bus.RouteFrom,
		bus.RouteTo,
		bus.DepartureTime,
		bus.ArrivalTime,
		bus.TotalSeats,
		bus.AvailableSeats,
		bus.Price,
		bus.Amenities,
		bus.BusType,
		bus.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update bus",
			zap.Error(err),
			zap.String("bus_id", bus.ID.String()),
		)
		return fmt.Errorf("update bus %s: %w", bus.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", bus.ID.String())
	}

	return nil
}

func (r *busRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM buses WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete bus",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return fmt.Errorf("delete bus %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", id.String())
	}

	r.log.Info("Bus deleted", zap.String("bus_id", id.String()))
	return nil
}

func (r *busRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM buses`

	var count int64
	err := r.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count buses", zap.Error(err))
		return 0, fmt.Errorf("count buses: %w", err)
	}

	return count, nil
}

func (r *busRepository) DebitSeats(ctx context.Context, busID uuid.UUID, seats int) error {
	query := `
		UPDATE buses
		SET available_seats = available_seats - $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, busID, seats)
	if err != nil {
		r.log.Error("Failed to debit bus seats",
			zap.Error(err),
			zap.String("bus_id", busID.String()),
			zap.Int("seats", seats),
		)
		return fmt.Errorf("debit %d seats on bus %s: %w", seats, busID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", busID.String())
	}

	return nil
}
