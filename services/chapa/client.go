// Package chapa là client HTTP cho cổng thanh toán Chapa
package chapa

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "travel-app/errors"

	"github.com/goccy/go-json"
)

const DefaultBaseURL = "https://api.chapa.co/v1"

// Config chứa thông tin truy cập Chapa
type Config struct {
	SecretKey string
	PublicKey string
	BaseURL   string
	// Timeout = 0 nghĩa là không giới hạn
	Timeout time.Duration
}

type InitializeRequest struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TxRef     string `json:"tx_ref"`
}

type InitializeResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    *struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
	// Raw là body gốc gateway trả về
	Raw []byte `json:"-"`
}

// CheckoutURL trả về checkout_url hoặc chuỗi rỗng
func (r *InitializeResponse) CheckoutURL() string {
	if r.Data == nil {
		return ""
	}
	return r.Data.CheckoutURL
}

type VerifyResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Data    *struct {
		Status   string `json:"status"`
		TxRef    string `json:"tx_ref"`
		Currency string `json:"currency"`
	} `json:"data"`
	Raw []byte `json:"-"`
}

// Succeeded chỉ đúng khi cả status ngoài và data.status đều là "success"
func (r *VerifyResponse) Succeeded() bool {
	return r.Status == "success" && r.Data != nil && r.Data.Status == "success"
}

type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Initialize gọi POST /transaction/initialize.
// Non-200 trả về *errors.GatewayError giữ nguyên status và body.
func (c *Client) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, transportError("encode initialize request", err)
	}
	status, body, err := c.do(ctx, http.MethodPost, c.cfg.BaseURL+"/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &apperrors.GatewayError{StatusCode: status, Body: body}
	}

	var out InitializeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transportError("decode initialize response", err)
	}
	out.Raw = body
	return &out, nil
}

// Verify gọi GET /transaction/verify/{tx_ref}. Body được parse bất kể status code.
func (c *Client) Verify(ctx context.Context, txRef string) (*VerifyResponse, error) {
	_, body, err := c.do(ctx, http.MethodGet, c.cfg.BaseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return nil, err
	}
	var out VerifyResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, transportError("decode verify response", err)
	}
	out.Raw = body
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, transportError("build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, transportError("send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, transportError("read response", err)
	}
	return resp.StatusCode, body, nil
}

func transportError(op string, err error) error {
	return apperrors.NewAppError(apperrors.ErrCodeTransport, fmt.Sprintf("chapa: %s: %v", op, err), err)
}

// KeyMode cho biết key thuộc môi trường test hay live
type KeyMode string

const (
	KeyModeTest KeyMode = "TEST"
	KeyModeLive KeyMode = "LIVE"
)

// ValidateSecretKey kiểm tra định dạng CHASECK_TEST- / CHASECK_LIVE-
func ValidateSecretKey(key string) (KeyMode, error) {
	return keyMode(key, "CHASECK_", "secret")
}

// ValidatePublicKey kiểm tra định dạng CHAPUBK_TEST- / CHAPUBK_LIVE-
func ValidatePublicKey(key string) (KeyMode, error) {
	return keyMode(key, "CHAPUBK_", "public")
}

func keyMode(key, prefix, kind string) (KeyMode, error) {
	switch {
	case key == "":
		return "", fmt.Errorf("%s key not set", kind)
	case strings.HasPrefix(key, prefix+"TEST-"):
		return KeyModeTest, nil
	case strings.HasPrefix(key, prefix+"LIVE-"):
		return KeyModeLive, nil
	default:
		return "", fmt.Errorf("%s key has invalid format, expected %sTEST- or %sLIVE- prefix", kind, prefix, prefix)
	}
}
