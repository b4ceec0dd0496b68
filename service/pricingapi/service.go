package pricingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/elC0mpa/aws-pricing-cart/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	RequestIDHeader = "X-Request-Id"
	// DefaultFilename names the report when the server does not
	DefaultFilename = "aws_cost_estimate.csv"
)

func NewService(cfg model.Config, logger *zap.Logger) (*service, error) {
	baseURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("new cookie jar: %w", err)
	}

	if cfg.Session != "" {
		jar.SetCookies(baseURL, []*http.Cookie{{Name: cfg.SessionCookie, Value: cfg.Session, Path: "/"}})
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		sessionCookie: cfg.SessionCookie,
		logger:        logger.Named("pricingapi"),
	}, nil
}

// Session returns the backend session cookie that owns the cart, if any
func (s *service) Session() string {
	for _, c := range s.client.Jar.Cookies(s.baseURL) {
		if c.Name == s.sessionCookie {
			return c.Value
		}
	}
	return ""
}

func (s *service) TestConnection(ctx context.Context) (*model.ConnectionStatus, error) {
	var res envelope
	err := s.doRequest(ctx, http.MethodGet, "/api/test-connection", nil, &res)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok {
			return &model.ConnectionStatus{Connected: false, Message: apiErr.Message}, nil
		}
		return nil, err
	}

	return &model.ConnectionStatus{Connected: true, Message: res.Message}, nil
}

func (s *service) GetAvailableInstances(ctx context.Context, region string) ([]string, error) {
	path := "/api/available-instances?" + url.Values{"region": {region}}.Encode()

	var res instancesResponse
	if err := s.doRequest(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Instances, nil
}

func (s *service) GetPricing(ctx context.Context, kind model.ServiceKind, payload map[string]any) ([]model.PricingEntry, error) {
	spec, err := model.SpecFor(kind)
	if err != nil {
		return nil, err
	}

	var res pricingResponse
	if err := s.doRequest(ctx, http.MethodPost, spec.Endpoint, payload, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (s *service) AddCartItem(ctx context.Context, item model.CartItem) error {
	var res cartMutationResponse
	return s.doRequest(ctx, http.MethodPost, "/api/cart/add", item, &res)
}

func (s *service) GetCartItems(ctx context.Context) ([]model.CartItem, error) {
	var res cartItemsResponse
	if err := s.doRequest(ctx, http.MethodGet, "/api/cart/items", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (s *service) RemoveCartItem(ctx context.Context, id string) error {
	var res cartMutationResponse
	return s.doRequest(ctx, http.MethodDelete, "/api/cart/remove/"+url.PathEscape(id), nil, &res)
}

func (s *service) ClearCart(ctx context.Context) error {
	var res cartMutationResponse
	return s.doRequest(ctx, http.MethodDelete, "/api/cart/clear", nil, &res)
}

func (s *service) GetCartTotal(ctx context.Context) (decimal.Decimal, error) {
	var res cartTotalResponse
	if err := s.doRequest(ctx, http.MethodGet, "/api/cart/total", nil, &res); err != nil {
		return decimal.Zero, err
	}
	return res.Total, nil
}

// ExportCSV streams the backend report into w and returns the file name the
// backend suggested.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) (string, error) {
	res, requestID, err := s.send(ctx, http.MethodGet, "/api/export/csv", nil)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, err := io.ReadAll(res.Body)
		if err != nil {
			return "", fmt.Errorf("%w: read body: %w", ErrTransport, err)
		}
		return "", responseError(res.StatusCode, body)
	}

	if _, err := io.Copy(w, res.Body); err != nil {
		return "", fmt.Errorf("%w: copy report: %w", ErrTransport, err)
	}

	s.logger.Debug("report exported", zap.String("request_id", requestID))

	return attachmentName(res.Header.Get("Content-Disposition")), nil
}

func (s *service) doRequest(ctx context.Context, method, path string, payload, v any) error {
	res, requestID, err := s.send(ctx, method, path, payload)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if err := responseError(res.StatusCode, body); err != nil {
		s.logger.Debug("pricing api failure",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (s *service) send(ctx context.Context, method, path string, payload any) (*http.Response, string, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL.String()+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := s.client.Do(req)
	if err != nil {
		return nil, requestID, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	s.logger.Debug("pricing api request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	return res, requestID, nil
}

// responseError classifies a response body: success:false and non-2xx
// statuses become an *APIError carrying the server message when present.
func responseError(status int, body []byte) error {
	var env envelope
	parsed := json.Unmarshal(body, &env) == nil

	if parsed && env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Status: status, Message: msg}
	}

	if status < 200 || status > 299 {
		msg := ""
		if parsed {
			msg = env.Error
		}
		return &APIError{Status: status, Message: msg}
	}

	return nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return DefaultFilename
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return DefaultFilename
	}
	return params["filename"]
}
