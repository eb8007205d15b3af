package service

import (
	"context"

	"planora/internal/matching"
	"planora/internal/vendors/repository"
	"planora/internal/vendors/validator"
	"planora/pkg/config"
	apperrors "planora/pkg/errors"
	"planora/pkg/model"
)

type MatchingService interface {
	Match(ctx context.Context, criteria model.MatchCriteria) ([]model.VendorMatch, error)
}

type matchingService struct {
	repo      repository.VendorProfileRepository
	validator *validator.VendorProfileValidator
	cfg       *config.Config
}

func NewMatchingService(
	repo repository.VendorProfileRepository,
	validator *validator.VendorProfileValidator,
	cfg *config.Config,
) MatchingService {
	return &matchingService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *matchingService) Match(ctx context.Context, criteria model.MatchCriteria) ([]model.VendorMatch, error) {
	if err := s.validator.ValidateCriteria(&criteria); err != nil {
		s.cfg.Log.Warn("Match criteria validation failed", "error", err)
		return nil, apperrors.Validation("Match criteria validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if criteria.Location != "" {
		// Accepted but not yet applied as a filter; log so its use is visible.
		s.cfg.Log.Debug("Match criteria includes location, ignoring",
			"location", criteria.Location,
		)
	}

	candidates, err := s.repo.FindMatching(ctx, criteria)
	if err != nil {
		s.cfg.Log.Error("Failed to query matching vendors",
			"category", criteria.Category,
			"error", err,
		)
		return nil, apperrors.Unavailable("Failed to find matching vendors", err)
	}

	// The store query prefilters; the engine re-checks eligibility (date
	// granularity, slot status) and ranks.
	matches := matching.Rank(candidates, criteria)

	s.cfg.Log.Info("Vendor match completed",
		"category", criteria.Category,
		"date", criteria.Date,
		"max_budget", criteria.MaxBudget,
		"candidates", len(candidates),
		"matches", len(matches),
	)
	return matches, nil
}
