package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"planora/internal/vendors/service"
	apperrors "planora/pkg/errors"
	"planora/pkg/logger"
	"planora/pkg/middleware"
	"planora/pkg/model"
)

type mockProfileService struct {
	getProfileFunc      func(ctx context.Context, vendorID string) (*model.VendorProfile, error)
	upsertProfileFunc   func(ctx context.Context, vendorID string, update *model.VendorProfileUpdate) (*model.VendorProfile, error)
	setSlotFunc         func(ctx context.Context, vendorID string, slot *model.AvailabilitySlot) (*model.VendorProfile, error)
	getPortfolioFunc    func(ctx context.Context, vendorID string) (*model.Portfolio, error)
	addPortfolioFunc    func(ctx context.Context, vendorID string, kind service.PortfolioItemKind, item *model.PortfolioItem) (*model.Portfolio, error)
	getAvailabilityFunc func(ctx context.Context, vendorID string, start, end time.Time) ([]model.AvailabilitySlot, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, vendorID)
	}
	return &model.VendorProfile{VendorID: vendorID}, nil
}

func (m *mockProfileService) UpsertProfile(ctx context.Context, vendorID string, update *model.VendorProfileUpdate) (*model.VendorProfile, error) {
	if m.upsertProfileFunc != nil {
		return m.upsertProfileFunc(ctx, vendorID, update)
	}
	return &model.VendorProfile{VendorID: vendorID}, nil
}

func (m *mockProfileService) GetAvailabilityRange(ctx context.Context, vendorID string, start, end time.Time) ([]model.AvailabilitySlot, error) {
	if m.getAvailabilityFunc != nil {
		return m.getAvailabilityFunc(ctx, vendorID, start, end)
	}
	return []model.AvailabilitySlot{}, nil
}

func (m *mockProfileService) SetAvailabilitySlot(ctx context.Context, vendorID string, slot *model.AvailabilitySlot) (*model.VendorProfile, error) {
	if m.setSlotFunc != nil {
		return m.setSlotFunc(ctx, vendorID, slot)
	}
	return &model.VendorProfile{VendorID: vendorID}, nil
}

func (m *mockProfileService) GetPortfolio(ctx context.Context, vendorID string) (*model.Portfolio, error) {
	if m.getPortfolioFunc != nil {
		return m.getPortfolioFunc(ctx, vendorID)
	}
	return &model.Portfolio{}, nil
}

func (m *mockProfileService) AddPortfolioItem(ctx context.Context, vendorID string, kind service.PortfolioItemKind, item *model.PortfolioItem) (*model.Portfolio, error) {
	if m.addPortfolioFunc != nil {
		return m.addPortfolioFunc(ctx, vendorID, kind, item)
	}
	return &model.Portfolio{}, nil
}

func (m *mockProfileService) GetPerformance(ctx context.Context, vendorID string) (*model.Performance, error) {
	return &model.Performance{}, nil
}

func (m *mockProfileService) List(ctx context.Context, limit int, offset int64) ([]*model.VendorProfile, int64, error) {
	return []*model.VendorProfile{}, 0, nil
}

type mockMatchingService struct {
	matchFunc func(ctx context.Context, criteria model.MatchCriteria) ([]model.VendorMatch, error)
}

func (m *mockMatchingService) Match(ctx context.Context, criteria model.MatchCriteria) ([]model.VendorMatch, error) {
	if m.matchFunc != nil {
		return m.matchFunc(ctx, criteria)
	}
	return []model.VendorMatch{}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func newTestHandler(profiles *mockProfileService, matchSvc *mockMatchingService) *VendorHandler {
	if profiles == nil {
		profiles = &mockProfileService{}
	}
	if matchSvc == nil {
		matchSvc = &mockMatchingService{}
	}
	return NewVendorHandler(profiles, matchSvc, testLogger())
}

func asCaller(r *http.Request, id, role string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.CallerKey, middleware.Caller{ID: id, Role: role})
	return r.WithContext(ctx)
}

func TestGetProfile_RequiresAuthentication(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/profile", nil)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}

func TestGetProfile_RejectsUserRole(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet, "/api/v1/vendors/profile", nil), "user-1", middleware.RoleUser)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req, nil)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rec.Code)
	}
}

func TestGetProfile_UsesCallerID(t *testing.T) {
	var requestedID string
	profiles := &mockProfileService{
		getProfileFunc: func(ctx context.Context, vendorID string) (*model.VendorProfile, error) {
			requestedID = vendorID
			return &model.VendorProfile{VendorID: vendorID, BusinessName: "My Business"}, nil
		},
	}
	h := newTestHandler(profiles, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet, "/api/v1/vendors/profile", nil), "vendor-7", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.GetProfile(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if requestedID != "vendor-7" {
		t.Errorf("Expected caller ID to address the profile, got %q", requestedID)
	}
}

func TestUpsertProfile_InvalidBody(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/vendors/profile",
		bytes.NewBufferString("{not json")), "vendor-1", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.UpsertProfile(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestUpsertProfile_ServiceErrorMapped(t *testing.T) {
	profiles := &mockProfileService{
		upsertProfileFunc: func(ctx context.Context, vendorID string, update *model.VendorProfileUpdate) (*model.VendorProfile, error) {
			return nil, apperrors.Validation("Vendor profile validation failed", nil)
		},
	}
	h := newTestHandler(profiles, nil)

	body, _ := json.Marshal(model.VendorProfileUpdate{BusinessName: "X"})
	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/vendors/profile",
		bytes.NewBuffer(body)), "vendor-1", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.UpsertProfile(rec, req, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestGetAvailability_RequiresDateParams(t *testing.T) {
	h := newTestHandler(nil, nil)

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing both", query: ""},
		{name: "missing end", query: "?start_date=2026-05-01"},
		{name: "malformed start", query: "?start_date=May-1&end_date=2026-05-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asCaller(httptest.NewRequest(http.MethodGet, "/api/v1/vendors/availability"+tt.query, nil),
				"vendor-1", middleware.RoleVendor)
			rec := httptest.NewRecorder()

			h.GetAvailability(rec, req, nil)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGetAvailability_PassesRange(t *testing.T) {
	var gotStart, gotEnd time.Time
	profiles := &mockProfileService{
		getAvailabilityFunc: func(ctx context.Context, vendorID string, start, end time.Time) ([]model.AvailabilitySlot, error) {
			gotStart, gotEnd = start, end
			return []model.AvailabilitySlot{}, nil
		},
	}
	h := newTestHandler(profiles, nil)

	req := asCaller(httptest.NewRequest(http.MethodGet,
		"/api/v1/vendors/availability?start_date=2026-05-01&end_date=2026-05-10", nil),
		"vendor-1", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.GetAvailability(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gotStart != time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Unexpected start date: %v", gotStart)
	}
	if gotEnd != time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Unexpected end date: %v", gotEnd)
	}
}

func TestSetAvailabilitySlot_NotFoundMapped(t *testing.T) {
	profiles := &mockProfileService{
		setSlotFunc: func(ctx context.Context, vendorID string, slot *model.AvailabilitySlot) (*model.VendorProfile, error) {
			return nil, apperrors.NotFoundWithID("Vendor profile", vendorID)
		},
	}
	h := newTestHandler(profiles, nil)

	body, _ := json.Marshal(model.AvailabilitySlot{
		Date:   time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Status: model.SlotAvailable,
	})
	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/vendors/availability",
		bytes.NewBuffer(body)), "vendor-1", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.SetAvailabilitySlot(rec, req, nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestGetPortfolio_PublicByVendorID(t *testing.T) {
	var requestedID string
	profiles := &mockProfileService{
		getPortfolioFunc: func(ctx context.Context, vendorID string) (*model.Portfolio, error) {
			requestedID = vendorID
			return &model.Portfolio{}, nil
		},
	}
	h := newTestHandler(profiles, nil)

	// No caller context: the route is public.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/portfolio/vendor-9", nil)
	rec := httptest.NewRecorder()

	h.GetPortfolio(rec, req, httprouter.Params{{Key: "vendorId", Value: "vendor-9"}})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if requestedID != "vendor-9" {
		t.Errorf("Expected vendor-9, got %q", requestedID)
	}
}

func TestAddPortfolioItem_Created(t *testing.T) {
	profiles := &mockProfileService{
		addPortfolioFunc: func(ctx context.Context, vendorID string, kind service.PortfolioItemKind, item *model.PortfolioItem) (*model.Portfolio, error) {
			return &model.Portfolio{Images: []model.PortfolioItem{*item}}, nil
		},
	}
	h := newTestHandler(profiles, nil)

	body, _ := json.Marshal(addPortfolioItemRequest{
		Kind: "image",
		Item: model.PortfolioItem{URL: "https://example.com/a.jpg"},
	})
	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/vendors/portfolio",
		bytes.NewBuffer(body)), "vendor-1", middleware.RoleVendor)
	rec := httptest.NewRecorder()

	h.AddPortfolioItem(rec, req, nil)

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d", rec.Code)
	}
}

func TestMatch_ValidatesQueryParams(t *testing.T) {
	h := newTestHandler(nil, nil)

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing category", query: "?date=2026-09-12&max_budget=2000"},
		{name: "missing date", query: "?category=Catering&max_budget=2000"},
		{name: "missing budget", query: "?category=Catering&date=2026-09-12"},
		{name: "malformed budget", query: "?category=Catering&date=2026-09-12&max_budget=lots"},
		{name: "malformed date", query: "?category=Catering&date=September&max_budget=2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asCaller(httptest.NewRequest(http.MethodGet, "/api/v1/vendors/match"+tt.query, nil),
				"user-1", middleware.RoleUser)
			rec := httptest.NewRecorder()

			h.Match(rec, req, nil)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestMatch_ReturnsRankedMatches(t *testing.T) {
	matchSvc := &mockMatchingService{
		matchFunc: func(ctx context.Context, criteria model.MatchCriteria) ([]model.VendorMatch, error) {
			if criteria.Category != model.CategoryCatering {
				t.Errorf("Expected category Catering, got %s", criteria.Category)
			}
			if criteria.MaxBudget != 2000 {
				t.Errorf("Expected budget 2000, got %v", criteria.MaxBudget)
			}
			return []model.VendorMatch{
				{Profile: &model.VendorProfile{VendorID: "vendor-1"}, Score: 30.0},
			}, nil
		},
	}
	h := newTestHandler(nil, matchSvc)

	req := asCaller(httptest.NewRequest(http.MethodGet,
		"/api/v1/vendors/match?category=Catering&date=2026-09-12&max_budget=2000", nil),
		"user-1", middleware.RoleUser)
	rec := httptest.NewRecorder()

	h.Match(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []model.VendorMatch `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Profile.VendorID != "vendor-1" {
		t.Errorf("Unexpected matches: %+v", resp.Data)
	}
}

func TestMatch_RequiresAuthentication(t *testing.T) {
	h := newTestHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/vendors/match?category=Catering&date=2026-09-12&max_budget=2000", nil)
	rec := httptest.NewRecorder()

	h.Match(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", rec.Code)
	}
}
