package service

import (
	"context"
	"errors"
	"sync"
	"time"

	vendorserrors "planora/internal/vendors/errors"
	"planora/internal/vendors/repository"
	"planora/internal/vendors/validator"
	"planora/pkg/config"
	apperrors "planora/pkg/errors"
	"planora/pkg/model"
	"planora/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// PortfolioItemKind selects which portfolio list an item is appended to.
type PortfolioItemKind string

const (
	PortfolioImage PortfolioItemKind = "image"
	PortfolioVideo PortfolioItemKind = "video"
)

type VendorProfileService interface {
	GetProfile(ctx context.Context, vendorID string) (*model.VendorProfile, error)
	UpsertProfile(ctx context.Context, vendorID string, update *model.VendorProfileUpdate) (*model.VendorProfile, error)
	GetAvailabilityRange(ctx context.Context, vendorID string, start, end time.Time) ([]model.AvailabilitySlot, error)
	SetAvailabilitySlot(ctx context.Context, vendorID string, slot *model.AvailabilitySlot) (*model.VendorProfile, error)
	GetPortfolio(ctx context.Context, vendorID string) (*model.Portfolio, error)
	AddPortfolioItem(ctx context.Context, vendorID string, kind PortfolioItemKind, item *model.PortfolioItem) (*model.Portfolio, error)
	GetPerformance(ctx context.Context, vendorID string) (*model.Performance, error)
	List(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, int64, error)
}

type vendorProfileService struct {
	repo      repository.VendorProfileRepository
	validator *validator.VendorProfileValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewVendorProfileService(
	repo repository.VendorProfileRepository,
	validator *validator.VendorProfileValidator,
	publisher EventPublisher,
	cfg *config.Config,
) VendorProfileService {
	return &vendorProfileService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

// GetProfile returns the vendor's profile, creating a default stub on first
// access so every authenticated vendor always has a profile to edit.
func (s *vendorProfileService) GetProfile(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}

	profile, err := s.repo.FindByVendorID(ctx, vendorID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, vendorserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to get vendor profile",
			"vendor_id", vendorID,
			"error", err,
		)
		return nil, apperrors.Unavailable("Failed to retrieve vendor profile", err)
	}

	// First access: create the stub inside a transaction so concurrent
	// first reads settle on a single document.
	created := s.defaultProfile(vendorID)
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByVendorID(sessCtx, vendorID)
		if err == nil {
			created = existing
			return nil
		}
		if !errors.Is(err, vendorserrors.ErrNotFound) {
			return apperrors.Unavailable("Failed to check for existing profile", err)
		}
		return s.repo.Create(sessCtx, created)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create default vendor profile",
			"vendor_id", vendorID,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Unavailable("Failed to create vendor profile", err)
	}

	s.cfg.Log.Info("Default vendor profile created",
		"vendor_id", vendorID,
		"business_name", created.BusinessName,
	)
	s.publish(ctx, created)
	return created, nil
}

func (s *vendorProfileService) defaultProfile(vendorID string) *model.VendorProfile {
	return &model.VendorProfile{
		VendorID:     vendorID,
		BusinessName: s.cfg.DefaultBusinessName,
		Description:  s.cfg.DefaultDescription,
		Categories:   []model.Category{model.CategoryOther},
		Availability: model.Availability{
			Schedule: []model.AvailabilitySlot{},
			WorkingHours: model.WorkingHours{
				Start: s.cfg.DefaultWorkingHoursStart,
				End:   s.cfg.DefaultWorkingHoursEnd,
			},
			AdvanceBookingDays: s.cfg.DefaultAdvanceBookingDays,
		},
		Portfolio: model.Portfolio{
			Images:       []model.PortfolioItem{},
			Videos:       []model.PortfolioItem{},
			Testimonials: []model.Testimonial{},
		},
		Services: []model.Service{},
	}
}

func (s *vendorProfileService) UpsertProfile(ctx context.Context, vendorID string, update *model.VendorProfileUpdate) (*model.VendorProfile, error) {
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}

	s.sanitizeUpdate(update)

	if err := s.validator.ValidateUpdate(update); err != nil {
		s.cfg.Log.Warn("Vendor profile validation failed",
			"vendor_id", vendorID,
			"error", err,
		)
		return nil, apperrors.Validation("Vendor profile validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	var result *model.VendorProfile
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.repo.FindByVendorID(sessCtx, vendorID)
		if err != nil {
			if !errors.Is(err, vendorserrors.ErrNotFound) {
				return apperrors.Unavailable("Failed to load vendor profile", err)
			}
			profile = s.defaultProfile(vendorID)
			applyUpdate(profile, update)
			result = profile
			return s.repo.Create(sessCtx, profile)
		}

		applyUpdate(profile, update)
		result = profile
		return s.repo.Replace(sessCtx, profile)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to upsert vendor profile",
			"vendor_id", vendorID,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Unavailable("Failed to save vendor profile", err)
	}

	s.cfg.Log.Info("Vendor profile saved",
		"vendor_id", vendorID,
		"business_name", result.BusinessName,
	)
	s.publish(ctx, result)
	return result, nil
}

// applyUpdate copies the edit onto the stored profile. Performance and
// documents are never writable through the profile endpoint.
func applyUpdate(profile *model.VendorProfile, update *model.VendorProfileUpdate) {
	profile.BusinessName = update.BusinessName
	profile.Description = update.Description
	profile.Categories = update.Categories

	if update.Portfolio != nil {
		profile.Portfolio = *update.Portfolio
	}
	if update.Availability != nil {
		profile.Availability = *update.Availability
	}
	if update.Services != nil {
		profile.Services = *update.Services
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Contact != nil {
		profile.Contact = *update.Contact
	}
}

func (s *vendorProfileService) sanitizeUpdate(update *model.VendorProfileUpdate) {
	update.BusinessName = sanitizer.NormalizeName(update.BusinessName)
	update.Description = sanitizer.NormalizeDescription(update.Description)

	if update.Portfolio != nil {
		sanitizePortfolio(update.Portfolio)
	}
	if update.Services != nil {
		for i := range *update.Services {
			(*update.Services)[i].Name = sanitizer.NormalizeName((*update.Services)[i].Name)
			(*update.Services)[i].Description = sanitizer.NormalizeDescription((*update.Services)[i].Description)
		}
	}
	if update.Contact != nil {
		update.Contact.Website = sanitizer.NormalizeURL(update.Contact.Website)
	}
}

func sanitizePortfolio(p *model.Portfolio) {
	for i := range p.Images {
		p.Images[i].URL = sanitizer.NormalizeURL(p.Images[i].URL)
		p.Images[i].Caption = sanitizer.NormalizeCaption(p.Images[i].Caption)
	}
	for i := range p.Videos {
		p.Videos[i].URL = sanitizer.NormalizeURL(p.Videos[i].URL)
		p.Videos[i].Caption = sanitizer.NormalizeCaption(p.Videos[i].Caption)
	}
}

func (s *vendorProfileService) GetAvailabilityRange(ctx context.Context, vendorID string, start, end time.Time) ([]model.AvailabilitySlot, error) {
	profile, err := s.findExisting(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return profile.Availability.SlotsInRange(start, end), nil
}

func (s *vendorProfileService) SetAvailabilitySlot(ctx context.Context, vendorID string, slot *model.AvailabilitySlot) (*model.VendorProfile, error) {
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}

	if err := s.validator.ValidateSlot(slot); err != nil {
		s.cfg.Log.Warn("Availability slot validation failed",
			"vendor_id", vendorID,
			"error", err,
		)
		return nil, apperrors.Validation("Availability slot validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	normalized := model.AvailabilitySlot{
		Date:    model.DateOnly(slot.Date),
		Status:  slot.Status,
		EventID: slot.EventID,
	}

	var result *model.VendorProfile
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.repo.FindByVendorID(sessCtx, vendorID)
		if err != nil {
			if errors.Is(err, vendorserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Vendor profile", vendorID)
			}
			return apperrors.Unavailable("Failed to load vendor profile", err)
		}

		profile.Availability.SetSlot(normalized.Date, normalized.Status, normalized.EventID)
		result = profile
		return s.repo.Replace(sessCtx, profile)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to set availability slot",
			"vendor_id", vendorID,
			"date", normalized.Date,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Unavailable("Failed to update availability", err)
	}

	s.cfg.Log.Info("Availability slot updated",
		"vendor_id", vendorID,
		"date", normalized.Date,
		"status", normalized.Status,
	)
	if pubErr := s.publisher.AvailabilityChanged(ctx, vendorID, normalized); pubErr != nil {
		s.cfg.Log.Warn("Failed to publish availability change",
			"vendor_id", vendorID,
			"error", pubErr,
		)
	}
	return result, nil
}

func (s *vendorProfileService) GetPortfolio(ctx context.Context, vendorID string) (*model.Portfolio, error) {
	profile, err := s.findExisting(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &profile.Portfolio, nil
}

func (s *vendorProfileService) AddPortfolioItem(ctx context.Context, vendorID string, kind PortfolioItemKind, item *model.PortfolioItem) (*model.Portfolio, error) {
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}
	if kind != PortfolioImage && kind != PortfolioVideo {
		return nil, apperrors.InvalidInput("Portfolio item kind must be 'image' or 'video'")
	}

	item.URL = sanitizer.NormalizeURL(item.URL)
	item.Caption = sanitizer.NormalizeCaption(item.Caption)

	if err := s.validator.ValidatePortfolioItem(item); err != nil {
		s.cfg.Log.Warn("Portfolio item validation failed",
			"vendor_id", vendorID,
			"error", err,
		)
		return nil, apperrors.Validation("Portfolio item validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	var result *model.Portfolio
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		profile, err := s.repo.FindByVendorID(sessCtx, vendorID)
		if err != nil {
			if errors.Is(err, vendorserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Vendor profile", vendorID)
			}
			return apperrors.Unavailable("Failed to load vendor profile", err)
		}

		switch kind {
		case PortfolioImage:
			profile.Portfolio.Images = append(profile.Portfolio.Images, *item)
		case PortfolioVideo:
			profile.Portfolio.Videos = append(profile.Portfolio.Videos, *item)
		}

		result = &profile.Portfolio
		return s.repo.Replace(sessCtx, profile)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to add portfolio item",
			"vendor_id", vendorID,
			"kind", kind,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Unavailable("Failed to update portfolio", err)
	}

	s.cfg.Log.Info("Portfolio item added",
		"vendor_id", vendorID,
		"kind", kind,
		"url", item.URL,
	)
	return result, nil
}

func (s *vendorProfileService) GetPerformance(ctx context.Context, vendorID string) (*model.Performance, error) {
	profile, err := s.findExisting(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return &profile.Performance, nil
}

func (s *vendorProfileService) List(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var profiles []*model.VendorProfile
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(sharedCtx)
	}()
	go func() {
		defer wg.Done()
		profiles, errFind = s.repo.FindAll(sharedCtx, limit, offset)
	}()
	wg.Wait()

	if errCount != nil {
		s.cfg.Log.Error("Failed to count vendor profiles", "error", errCount)
		return nil, 0, apperrors.Unavailable("Failed to count vendor profiles", errCount)
	}
	if errFind != nil {
		s.cfg.Log.Error("Failed to list vendor profiles", "error", errFind)
		return nil, 0, apperrors.Unavailable("Failed to list vendor profiles", errFind)
	}

	return profiles, count, nil
}

// findExisting is the read path shared by the sub-document getters: unlike
// GetProfile it never creates a stub.
func (s *vendorProfileService) findExisting(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
	if vendorID == "" {
		return nil, apperrors.InvalidInput("Vendor ID cannot be empty")
	}

	profile, err := s.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, vendorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Vendor profile", vendorID)
		}
		s.cfg.Log.Error("Failed to get vendor profile",
			"vendor_id", vendorID,
			"error", err,
		)
		return nil, apperrors.Unavailable("Failed to retrieve vendor profile", err)
	}
	return profile, nil
}

func (s *vendorProfileService) publish(ctx context.Context, profile *model.VendorProfile) {
	if err := s.publisher.ProfileUpdated(ctx, profile); err != nil {
		s.cfg.Log.Warn("Failed to publish profile update",
			"vendor_id", profile.VendorID,
			"error", err,
		)
	}
}
