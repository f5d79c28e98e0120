package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
)

// AdminService defines the interface for admin dashboard operations
type AdminService interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
}

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	memberRepo       *repositories.MemberRepository
	eventRepo        *repositories.EventRepository
	registrationRepo *repositories.RegistrationRepository
	logger           zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	memberRepo *repositories.MemberRepository,
	eventRepo *repositories.EventRepository,
	registrationRepo *repositories.RegistrationRepository,
	logger zerolog.Logger,
) AdminService {
	return &adminServiceImpl{
		memberRepo:       memberRepo,
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// Overview aggregates dashboard statistics
func (s *adminServiceImpl) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	s.logger.Debug().Msg("Building admin overview")

	totalMembers, err := s.memberRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error counting members: %w", err)
	}

	totalEvents, err := s.eventRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting events: %w", err)
	}

	upcomingEvents, err := s.eventRepo.CountUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error counting upcoming events: %w", err)
	}

	totalRegistrations, err := s.registrationRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting registrations: %w", err)
	}

	drifted, err := s.eventRepo.CountDriftedCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting drifted counters: %w", err)
	}

	return &dto.OverviewResponse{
		TotalMembers:       totalMembers,
		TotalEvents:        totalEvents,
		UpcomingEvents:     upcomingEvents,
		TotalRegistrations: totalRegistrations,
		DriftedCounters:    drifted,
		GeneratedAt:        time.Now(),
	}, nil
}
