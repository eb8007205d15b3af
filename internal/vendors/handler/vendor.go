package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"planora/internal/vendors/service"
	apperrors "planora/pkg/errors"
	httputil "planora/pkg/http"
	"planora/pkg/logger"
	"planora/pkg/middleware"
	"planora/pkg/model"
)

const dateParamLayout = "2006-01-02"

type VendorHandler struct {
	profiles service.VendorProfileService
	matching service.MatchingService
	log      *logger.Logger
}

func NewVendorHandler(profiles service.VendorProfileService, matching service.MatchingService, log *logger.Logger) *VendorHandler {
	return &VendorHandler{
		profiles: profiles,
		matching: matching,
		log:      log,
	}
}

func (h *VendorHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/vendors", h.List)
	router.GET("/api/v1/vendors/profile", h.GetProfile)
	router.POST("/api/v1/vendors/profile", h.UpsertProfile)
	router.GET("/api/v1/vendors/availability", h.GetAvailability)
	router.POST("/api/v1/vendors/availability", h.SetAvailabilitySlot)
	router.GET("/api/v1/vendors/portfolio/:vendorId", h.GetPortfolio)
	router.POST("/api/v1/vendors/portfolio", h.AddPortfolioItem)
	router.GET("/api/v1/vendors/performance", h.GetPerformance)
	router.GET("/api/v1/vendors/match", h.Match)
}

// requireVendor resolves the authenticated caller and enforces the vendor or
// admin role. It writes the error response itself and returns ok=false when
// the request must not proceed.
func (h *VendorHandler) requireVendor(w http.ResponseWriter, r *http.Request) (middleware.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		h.writeError(w, "requireVendor", apperrors.Unauthorized("Authentication required"))
		return middleware.Caller{}, false
	}
	if caller.Role != middleware.RoleVendor && caller.Role != middleware.RoleAdmin {
		h.writeError(w, "requireVendor", apperrors.Forbidden("Vendor role required"))
		return middleware.Caller{}, false
	}
	return caller, true
}

// requireCaller only enforces that the gateway authenticated the request.
func (h *VendorHandler) requireCaller(w http.ResponseWriter, r *http.Request) (middleware.Caller, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		h.writeError(w, "requireCaller", apperrors.Unauthorized("Authentication required"))
		return middleware.Caller{}, false
	}
	return caller, true
}

func (h *VendorHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), caller.ID)
	if err != nil {
		h.writeError(w, "GetProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "GetProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VendorHandler) UpsertProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	var update model.VendorProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpsertProfile", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	profile, err := h.profiles.UpsertProfile(r.Context(), caller.ID, &update)
	if err != nil {
		h.writeError(w, "UpsertProfile", err)
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "UpsertProfile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VendorHandler) GetAvailability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	start, err := parseDateParam(query.Get("start_date"), "start_date")
	if err != nil {
		h.writeError(w, "GetAvailability", err)
		return
	}
	end, err := parseDateParam(query.Get("end_date"), "end_date")
	if err != nil {
		h.writeError(w, "GetAvailability", err)
		return
	}

	slots, err := h.profiles.GetAvailabilityRange(r.Context(), caller.ID, start, end)
	if err != nil {
		h.writeError(w, "GetAvailability", err)
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VendorHandler) SetAvailabilitySlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	var slot model.AvailabilitySlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetAvailabilitySlot", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	profile, err := h.profiles.SetAvailabilitySlot(r.Context(), caller.ID, &slot)
	if err != nil {
		h.writeError(w, "SetAvailabilitySlot", err)
		return
	}

	if err := httputil.WriteSuccess(w, profile.Availability); err != nil {
		h.log.Error("failed to write success response", "handler", "SetAvailabilitySlot", "operation", "WriteSuccess", "error", err)
	}
}

// GetPortfolio is public: clients browse vendor portfolios without a vendor
// role, so the vendor is addressed by path parameter rather than caller ID.
func (h *VendorHandler) GetPortfolio(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vendorID := ps.ByName("vendorId")
	if vendorID == "" {
		if err := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Vendor ID parameter is required",
		}); err != nil {
			h.log.Error("failed to write bad request response", "handler", "GetPortfolio", "operation", "WriteJSON", "error", err)
		}
		return
	}

	portfolio, err := h.profiles.GetPortfolio(r.Context(), vendorID)
	if err != nil {
		h.writeError(w, "GetPortfolio", err)
		return
	}

	if err := httputil.WriteSuccess(w, portfolio); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPortfolio", "operation", "WriteSuccess", "error", err)
	}
}

type addPortfolioItemRequest struct {
	Kind string              `json:"kind"`
	Item model.PortfolioItem `json:"item"`
}

func (h *VendorHandler) AddPortfolioItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	var req addPortfolioItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "AddPortfolioItem", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	portfolio, err := h.profiles.AddPortfolioItem(r.Context(), caller.ID, service.PortfolioItemKind(req.Kind), &req.Item)
	if err != nil {
		h.writeError(w, "AddPortfolioItem", err)
		return
	}

	if err := httputil.WriteCreated(w, portfolio); err != nil {
		h.log.Error("failed to write created response", "handler", "AddPortfolioItem", "operation", "WriteCreated", "error", err)
	}
}

func (h *VendorHandler) GetPerformance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	caller, ok := h.requireVendor(w, r)
	if !ok {
		return
	}

	performance, err := h.profiles.GetPerformance(r.Context(), caller.ID)
	if err != nil {
		h.writeError(w, "GetPerformance", err)
		return
	}

	if err := httputil.WriteSuccess(w, performance); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPerformance", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VendorHandler) Match(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := h.requireCaller(w, r); !ok {
		return
	}

	query := r.URL.Query()

	category := query.Get("category")
	if category == "" {
		h.writeError(w, "Match", apperrors.InvalidInput("category parameter is required"))
		return
	}

	date, err := parseDateParam(query.Get("date"), "date")
	if err != nil {
		h.writeError(w, "Match", err)
		return
	}

	budgetStr := query.Get("max_budget")
	if budgetStr == "" {
		h.writeError(w, "Match", apperrors.InvalidInput("max_budget parameter is required"))
		return
	}
	maxBudget, err := strconv.ParseFloat(budgetStr, 64)
	if err != nil {
		h.writeError(w, "Match", apperrors.InvalidInput(fmt.Sprintf("invalid max_budget parameter: %s", budgetStr)))
		return
	}

	matches, err := h.matching.Match(r.Context(), model.MatchCriteria{
		Category:  model.Category(category),
		Date:      date,
		MaxBudget: maxBudget,
		Location:  query.Get("location"),
	})
	if err != nil {
		h.writeError(w, "Match", err)
		return
	}

	if err := httputil.WriteSuccess(w, matches); err != nil {
		h.log.Error("failed to write success response", "handler", "Match", "operation", "WriteSuccess", "error", err)
	}
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, ok := h.requireCaller(w, r); !ok {
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	profiles, totalCount, err := h.profiles.List(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WritePaginated(w, profiles, totalCount, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "List", "operation", "WritePaginated", "error", err)
	}
}

func (h *VendorHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
	}
}

func parseDateParam(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("%s parameter is required", name))
	}
	t, err := time.Parse(dateParamLayout, value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s (expected YYYY-MM-DD)", name, value))
	}
	return t, nil
}
