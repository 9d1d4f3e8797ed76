package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/axxyfin/axxy_backend/internal/apperrors"
	"github.com/axxyfin/axxy_backend/internal/core/domain"
	portsrepo "github.com/axxyfin/axxy_backend/internal/core/ports/repositories"
	portssvc "github.com/axxyfin/axxy_backend/internal/core/ports/services"
	"github.com/axxyfin/axxy_backend/internal/dto"
	"github.com/google/uuid"
)

type GoalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

func NewGoalService(repo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &GoalService{goalRepo: repo}
}

var _ portssvc.GoalSvcFacade = (*GoalService)(nil)

func (s *GoalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest) (*domain.Goal, error) {
	now := time.Now()
	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		Name:          req.Name,
		CurrentAmount: req.CurrentAmount,
		TargetAmount:  req.TargetAmount,
		Deadline:      req.Deadline,
		Color:         req.Color,
		ImageURL:      req.ImageURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("goal_id", goal.GoalID))
		return nil, err
	}
	return &goal, nil
}

func (s *GoalService) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals")
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.CurrentAmount != nil {
		goal.CurrentAmount = *req.CurrentAmount
	}
	if req.TargetAmount != nil {
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Deadline != nil {
		goal.Deadline = *req.Deadline
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	if req.ImageURL != nil {
		goal.ImageURL = *req.ImageURL
	}
	goal.LastUpdatedAt = time.Now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, goalID string) error {
	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		}
		return err
	}
	return nil
}
