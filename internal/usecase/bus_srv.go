package usecase

import (
	"context"
	"fmt"
	"time"

	"bus-booking/internal/cache"
	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/dto/response"
	"bus-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BusService interface {
	// Public endpoints
	Search(ctx context.Context, routeFrom, routeTo string) ([]response.BusResponse, error)
	GetByID(ctx context.Context, busID string) (*response.BusResponse, error)

	// Admin endpoints
	Create(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error)
	Update(ctx context.Context, busID string, req *request.BusRequest) error
	Delete(ctx context.Context, busID string) error
	ListAll(ctx context.Context) ([]response.BusResponse, error)
}

type busService struct {
	repo  *repository.Repository
	cache cache.BusCache
	log   *zap.Logger
}

func NewBusService(repo *repository.Repository, busCache cache.BusCache, log *zap.Logger) BusService {
	return &busService{
		repo:  repo,
		cache: busCache,
		log:   log.With(zap.String("service", "bus")),
	}
}

func (s *busService) Search(ctx context.Context, routeFrom, routeTo string) ([]response.BusResponse, error) {
	// Unfiltered searches are served from cache when possible; filtered
	// queries always hit the store.
	if routeFrom == "" && routeTo == "" {
		if cached, err := s.cache.GetBuses(ctx); err == nil && cached != nil {
			return busesToResponses(cached), nil
		} else if err != nil {
			s.log.Warn("Bus cache read failed", zap.Error(err))
		}
	}

	buses, err := s.repo.Bus.Search(ctx, routeFrom, routeTo)
	if err != nil {
		s.log.Error("Failed to search buses",
			zap.Error(err),
			zap.String("route_from", routeFrom),
			zap.String("route_to", routeTo),
		)
		return nil, fmt.Errorf("search buses: %w", err)
	}

	if routeFrom == "" && routeTo == "" {
		if err := s.cache.SetBuses(ctx, buses); err != nil {
			s.log.Warn("Bus cache write failed", zap.Error(err))
		}
	}

	return busesToResponses(buses), nil
}

func (s *busService) GetByID(ctx context.Context, busID string) (*response.BusResponse, error) {
	id, err := uuid.Parse(busID)
	if err != nil {
		return nil, fmt.Errorf("invalid bus ID format %s: %w", busID, err)
	}

	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bus: %w", err)
	}
	if bus == nil {
		return nil, fmt.Errorf("bus %s: %w", busID, ErrNotFound)
	}

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) Create(ctx context.Context, req *request.BusRequest) (*response.BusResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create bus validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	busType := entity.BusType(req.BusType)
	if busType == "" {
		busType = entity.BusTypeSeater
	}

	// A new bus starts fully available; only payment reconciliation debits it.
	now := time.Now()
	bus := &entity.Bus{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BusNumber:      req.BusNumber,
		RouteFrom:      req.RouteFrom,
		RouteTo:        req.RouteTo,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Price:          req.Price,
		Amenities:      req.Amenities,
		BusType:        busType,
	}

	if err := s.repo.Bus.Create(ctx, bus); err != nil {
		s.log.Error("Failed to create bus", zap.Error(err), zap.String("bus_number", req.BusNumber))
		return nil, fmt.Errorf("create bus: %w", err)
	}

	s.invalidateCache(ctx)

	s.log.Info("Bus created",
		zap.String("bus_id", bus.ID.String()),
		zap.String("bus_number", bus.BusNumber),
		zap.Int("total_seats", bus.TotalSeats),
	)

	resp := response.BusToResponse(bus)
	return &resp, nil
}

func (s *busService) Update(ctx context.Context, busID string, req *request.BusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update bus validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(busID)
	if err != nil {
		return fmt.Errorf("invalid bus ID format %s: %w", busID, err)
	}

	existing, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find bus: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("bus %s: %w", busID, ErrNotFound)
	}

	// Wholesale replace of the attribute fields. available_seats is carried
	// over untouched; concurrent debits and this replace are not fenced
	// against each other.
	existing.BusNumber = req.BusNumber
	existing.RouteFrom = req.RouteFrom
	existing.RouteTo = req.RouteTo
	existing.DepartureTime = req.DepartureTime
	existing.ArrivalTime = req.ArrivalTime
	existing.TotalSeats = req.TotalSeats
	existing.Price = req.Price
	existing.Amenities = req.Amenities
	if req.BusType != "" {
		existing.BusType = entity.BusType(req.BusType)
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Bus.Update(ctx, existing); err != nil {
		s.log.Error("Failed to update bus", zap.Error(err), zap.String("bus_id", busID))
		return fmt.Errorf("update bus %s: %w", busID, err)
	}

	s.invalidateCache(ctx)

	s.log.Info("Bus updated", zap.String("bus_id", busID))
	return nil
}

func (s *busService) Delete(ctx context.Context, busID string) error {
	id, err := uuid.Parse(busID)
	if err != nil {
		return fmt.Errorf("invalid bus ID format %s: %w", busID, err)
	}

	bus, err := s.repo.Bus.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find bus: %w", err)
	}
	if bus == nil {
		return fmt.Errorf("bus %s: %w", busID, ErrNotFound)
	}

	// No cascade: bookings keep referencing the deleted bus and joins go
	// tolerant (nil bus details).
	if err := s.repo.Bus.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete bus", zap.Error(err), zap.String("bus_id", busID))
		return fmt.Errorf("delete bus %s: %w", busID, err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *busService) ListAll(ctx context.Context) ([]response.BusResponse, error) {
	buses, err := s.repo.Bus.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list buses", zap.Error(err))
		return nil, fmt.Errorf("list buses: %w", err)
	}

	return busesToResponses(buses), nil
}

func (s *busService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Bus cache invalidation failed", zap.Error(err))
	}
}

func busesToResponses(buses []*entity.Bus) []response.BusResponse {
	responses := make([]response.BusResponse, len(buses))
	for i, bus := range buses {
		responses[i] = response.BusToResponse(bus)
	}
	return responses
}
