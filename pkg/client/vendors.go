package client

import (
	"fmt"
	"net/url"
	"time"
)

// VendorClient is the Go SDK for the vendors service. Caller identity headers
// mirror what the gateway injects in production.
type VendorClient struct {
	httpClient *HttpClient
}

func NewVendorClient(baseURL string) *VendorClient {
	return &VendorClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func callerHeaders(callerID, role string) map[string]string {
	return map[string]string{
		"X-Caller-Id":   callerID,
		"X-Caller-Role": role,
	}
}

func (c *VendorClient) GetProfile(callerID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/vendors/profile", callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) UpsertProfile(callerID string, body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/vendors/profile", body, callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) GetAvailability(callerID string, start, end time.Time) (*Response, error) {
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	return c.httpClient.GET("/api/v1/vendors/availability?"+q.Encode(), callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) SetAvailabilitySlot(callerID string, body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/vendors/availability", body, callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) GetPortfolio(vendorID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/vendors/portfolio/"+url.PathEscape(vendorID), nil)
}

func (c *VendorClient) AddPortfolioItem(callerID string, body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/vendors/portfolio", body, callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) GetPerformance(callerID string) (*Response, error) {
	return c.httpClient.GET("/api/v1/vendors/performance", callerHeaders(callerID, "vendor"))
}

func (c *VendorClient) MatchVendors(callerID, category string, date time.Time, maxBudget float64, location string) (*Response, error) {
	q := url.Values{}
	q.Set("category", category)
	q.Set("date", date.Format("2006-01-02"))
	q.Set("max_budget", fmt.Sprintf("%g", maxBudget))
	if location != "" {
		q.Set("location", location)
	}
	return c.httpClient.GET("/api/v1/vendors/match?"+q.Encode(), callerHeaders(callerID, "user"))
}

func (c *VendorClient) ListVendors(callerID string, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/vendors?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path, callerHeaders(callerID, "user"))
}
