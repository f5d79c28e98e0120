package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/emrekaya/clubsphere/internal/app/models/dto"
	"github.com/emrekaya/clubsphere/internal/app/repositories"
	"github.com/emrekaya/clubsphere/internal/pkg/helpers"
)

// MemberService defines the interface for member profile operations
type MemberService interface {
	GetProfile(ctx context.Context, memberID int64) (*dto.MemberResponse, error)
	UpdateProfile(ctx context.Context, memberID int64, req *dto.UpdateProfileRequest) (*dto.MemberResponse, error)
	ListMembers(ctx context.Context, search string, page, size int) (*dto.MemberListResponse, error)
}

// memberServiceImpl implements MemberService
type memberServiceImpl struct {
	memberRepo *repositories.MemberRepository
	logger     zerolog.Logger
}

// NewMemberService creates a new MemberService
func NewMemberService(memberRepo *repositories.MemberRepository, logger zerolog.Logger) MemberService {
	return &memberServiceImpl{
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// GetProfile retrieves a member's profile
func (s *memberServiceImpl) GetProfile(ctx context.Context, memberID int64) (*dto.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	resp := toMemberResponse(member)
	return &resp, nil
}

// UpdateProfile updates a member's profile and returns the fresh view
func (s *memberServiceImpl) UpdateProfile(ctx context.Context, memberID int64, req *dto.UpdateProfileRequest) (*dto.MemberResponse, error) {
	s.logger.Debug().Int64("memberID", memberID).Msg("Updating member profile")

	err := s.memberRepo.UpdateProfile(ctx, memberID, req.FirstName, req.LastName, req.Major, req.AvatarURL)
	if err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, memberID)
}

// ListMembers retrieves members with optional search and pagination
func (s *memberServiceImpl) ListMembers(ctx context.Context, search string, page, size int) (*dto.MemberListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	members, err := s.memberRepo.List(ctx, search, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing members: %w", err)
	}

	total, err := s.memberRepo.Count(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("error counting members: %w", err)
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, toMemberResponse(member))
	}

	return &dto.MemberListResponse{
		Members:        responses,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}
