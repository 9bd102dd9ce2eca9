package usecase

import (
	"context"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/response"

	"go.uber.org/zap"
)

const recentBookingsLimit = 10

type AnalyticsService interface {
	Summary(ctx context.Context) (*response.AnalyticsResponse, error)
}

type analyticsService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAnalyticsService(repo *repository.Repository, log *zap.Logger) AnalyticsService {
	return &analyticsService{
		repo: repo,
		log:  log.With(zap.String("service", "analytics")),
	}
}

func (s *analyticsService) Summary(ctx context.Context) (*response.AnalyticsResponse, error) {
	totalBuses, err := s.repo.Bus.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count buses: %w", err)
	}

	totalBookings, err := s.repo.Booking.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	totalUsers, err := s.repo.User.CountByRole(ctx, entity.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	confirmed, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("count confirmed bookings: %w", err)
	}

	pending, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}

	revenue, err := s.repo.Booking.SumCompletedAmount(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum completed revenue: %w", err)
	}

	recent, err := s.repo.Booking.FindRecent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent bookings: %w", err)
	}

	recentResponses := make([]response.BookingResponse, 0, len(recent))
	for _, b := range recent {
		bus := lookupBus(ctx, s.repo, s.log, b.BusID)
		recentResponses = append(recentResponses, response.BookingToResponse(b, bus))
	}

	return &response.AnalyticsResponse{
		TotalBuses:        totalBuses,
		TotalBookings:     totalBookings,
		TotalUsers:        totalUsers,
		ConfirmedBookings: confirmed,
		PendingBookings:   pending,
		TotalRevenue:      revenue,
		RecentBookings:    recentResponses,
	}, nil
}
