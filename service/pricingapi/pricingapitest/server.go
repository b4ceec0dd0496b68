// Package pricingapitest runs an in-memory pricing backend that speaks the
// same HTTP contract as the real one, for use in tests.
package pricingapitest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const SessionCookie = "session"

// Request is a call the server received
type Request struct {
	Method string
	Path   string
	Query  string
}

// Failure makes an endpoint answer success:false
type Failure struct {
	Status  int
	Message string
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	carts     map[string][]model.CartItem
	pricing   map[model.ServiceKind][]model.PricingEntry
	instances map[string][]string
	failures  map[string]Failure
	payloads  map[model.ServiceKind][]map[string]any
	requests  []Request
}

// NewServer starts a backend with EC2 and S3 fixtures matching the AWS
// list prices used throughout the tests. It is closed when t ends.
func NewServer(t testing.TB) *Server {
	s := &Server{
		carts:     make(map[string][]model.CartItem),
		pricing:   make(map[model.ServiceKind][]model.PricingEntry),
		instances: make(map[string][]string),
		failures:  make(map[string]Failure),
		payloads:  make(map[model.ServiceKind][]map[string]any),
	}

	s.pricing[model.ServiceEC2] = []model.PricingEntry{{
		InstanceType: "t3.micro",
		VCPU:         "2",
		Memory:       "1 GiB",
		Location:     model.DefaultRegion,
		Prices:       []model.PriceDimension{{Amount: decimal.RequireFromString("0.0104"), Unit: "Hrs"}},
	}}
	s.pricing[model.ServiceS3] = []model.PricingEntry{{
		Service:      "S3",
		StorageClass: "General Purpose",
		Location:     model.DefaultRegion,
		Prices: []model.PriceDimension{{
			Amount:      decimal.RequireFromString("0.023"),
			MonthlyCost: decimal.RequireFromString("2.30"),
			Unit:        "GB-Mo",
		}},
	}}
	s.instances[model.DefaultRegion] = []string{"m5.large", "t2.micro", "t3.micro"}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(s.record)

	e.GET("/api/test-connection", s.testConnection)
	e.GET("/api/available-instances", s.availableInstances)
	e.POST("/api/pricing/:service", s.getPricing)
	e.POST("/api/cart/add", s.addToCart)
	e.GET("/api/cart/items", s.getCartItems)
	e.DELETE("/api/cart/remove/:id", s.removeFromCart)
	e.DELETE("/api/cart/clear", s.clearCart)
	e.GET("/api/cart/total", s.getCartTotal)
	e.GET("/api/export/csv", s.exportCSV)

	s.Server = httptest.NewServer(e)
	t.Cleanup(s.Close)

	return s
}

// SetPricing replaces the entries returned for kind
func (s *Server) SetPricing(kind model.ServiceKind, entries []model.PricingEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing[kind] = entries
}

// SetInstances replaces the instance types listed for region
func (s *Server) SetInstances(region string, instances []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[region] = instances
}

// Fail makes every call to path answer with f until Recover is called
func (s *Server) Fail(path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = f
}

func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Requests returns the calls received on path, in order
func (s *Server) Requests(path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, r := range s.requests {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// Payloads returns the request bodies posted to the pricing endpoint of kind
func (s *Server) Payloads(kind model.ServiceKind) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.payloads[kind]...)
}

// Cart returns the items stored for session
func (s *Server) Cart(session string) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartItem(nil), s.carts[session]...)
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: req.Method, Path: req.URL.Path, Query: req.URL.RawQuery})
		failure, failing := s.failures[req.URL.Path]
		s.mu.Unlock()

		if failing {
			status := failure.Status
			if status == 0 {
				status = http.StatusInternalServerError
			}
			return c.JSON(status, echo.Map{"success": false, "error": failure.Message})
		}
		return next(c)
	}
}

func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}

	msg := "Internal server error"
	if code == http.StatusNotFound {
		msg = "Resource not found"
	}

	if !c.Response().Committed {
		_ = c.JSON(code, echo.Map{"success": false, "error": msg})
	}
}

// session returns the caller's session id, issuing a cookie on first use
func (s *Server) session(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{Name: SessionCookie, Value: id, Path: "/", HttpOnly: true})
	return id
}

func (s *Server) testConnection(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Using credential-free pricing"})
}

func (s *Server) availableInstances(c echo.Context) error {
	region := c.QueryParam("region")
	if region == "" {
		region = model.DefaultRegion
	}

	s.mu.Lock()
	instances := append([]string{}, s.instances[region]...)
	s.mu.Unlock()

	sort.Strings(instances)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "instances": instances, "count": len(instances), "region": region})
}

func (s *Server) getPricing(c echo.Context) error {
	kind, err := model.ParseServiceKind(c.Param("service"))
	if err != nil {
		return echo.ErrNotFound
	}

	payload := make(map[string]any)
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}

	s.mu.Lock()
	s.payloads[kind] = append(s.payloads[kind], payload)
	data := append([]model.PricingEntry{}, s.pricing[kind]...)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data, "count": len(data)})
}

func (s *Server) addToCart(c echo.Context) error {
	var item model.CartItem
	if err := c.Bind(&item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": err.Error()})
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	item.ID = uuid.NewString()

	session := s.session(c)

	s.mu.Lock()
	s.carts[session] = append(s.carts[session], item)
	count := len(s.carts[session])
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item added to cart", "cartCount": count})
}

func (s *Server) getCartItems(c echo.Context) error {
	session := s.session(c)

	s.mu.Lock()
	items := append([]model.CartItem{}, s.carts[session]...)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "items": items, "count": len(items)})
}

func (s *Server) removeFromCart(c echo.Context) error {
	session := s.session(c)
	id := c.Param("id")

	s.mu.Lock()
	kept := s.carts[session][:0:0]
	for _, item := range s.carts[session] {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.carts[session] = kept
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Item removed from cart", "cartCount": len(kept)})
}

func (s *Server) clearCart(c echo.Context) error {
	session := s.session(c)

	s.mu.Lock()
	s.carts[session] = nil
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Cart cleared"})
}

func (s *Server) getCartTotal(c echo.Context) error {
	session := s.session(c)

	s.mu.Lock()
	items := s.carts[session]
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.MonthlyCost)
	}
	count := len(items)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, echo.Map{"success": true, "total": json.Number(total.Round(2).String()), "count": count})
}

func (s *Server) exportCSV(c echo.Context) error {
	session := s.session(c)

	s.mu.Lock()
	items := append([]model.CartItem{}, s.carts[session]...)
	s.mu.Unlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"AWS COST ESTIMATE REPORT"})
	_ = w.Write([]string{"Service", "Resource", "Specifications", "Region", "Qty", "Hourly Rate", "Monthly Cost"})
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.MonthlyCost)
		_ = w.Write([]string{
			item.Service,
			item.ResourceType,
			item.Specifications,
			item.Region,
			fmt.Sprint(item.Quantity),
			"$" + item.HourlyCost.StringFixed(4) + "/hr",
			"$" + item.MonthlyCost.StringFixed(2),
		})
	}
	_ = w.Write([]string{"Monthly", "$" + total.StringFixed(2)})
	w.Flush()

	c.Response().Header().Set("Content-Disposition", "attachment; filename=aws_cost_estimate.csv")
	return c.Blob(http.StatusOK, "text/csv", []byte(strings.TrimSpace(buf.String())+"\n"))
}
