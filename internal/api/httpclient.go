package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avezina/givehub/internal/logging"
)

// HTTPClient implements Client over plain HTTP/JSON.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewHTTPClient constructs a client for the backend at baseURL. The timeout
// applies per request; there is no retry layer here, callers decide whether
// to retry.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Account, error) {
	body := map[string]string{"email": email, "password": password}

	respBody, err := c.do(ctx, http.MethodPost, "/auth/login", "", "", body, ErrInvalidCredentials)
	if err != nil {
		return nil, err
	}
	return parseAccount(respBody, email)
}

func (c *HTTPClient) SignUp(ctx context.Context, p SignUpParams) (*Account, error) {
	body := map[string]string{
		"name":     p.Name,
		"email":    p.Email,
		"password": p.Password,
		"userType": string(p.Role),
	}

	respBody, err := c.do(ctx, http.MethodPost, "/auth/signup", "", "", body, ErrInvalidCredentials)
	if err != nil {
		return nil, err
	}
	return parseAccount(respBody, p.Email)
}

func (c *HTTPClient) Donations(ctx context.Context, authz string) ([]Donation, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/donations", authz, "", nil, ErrRequestRejected)
	if err != nil {
		return nil, err
	}

	var out []Donation
	if err := json.Unmarshal(unwrapData(respBody), &out); err != nil {
		return nil, fmt.Errorf("%w: donations list: %s", ErrMalformedResponse, err)
	}
	return out, nil
}

func (c *HTTPClient) CreateDonation(ctx context.Context, authz string, req DonationRequest) (*Receipt, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/donations", authz, req.IdempotencyKey, req, ErrRequestRejected)
	if err != nil {
		return nil, err
	}

	var out Receipt
	if err := json.Unmarshal(unwrapData(respBody), &out); err != nil {
		return nil, fmt.Errorf("%w: donation receipt: %s", ErrMalformedResponse, err)
	}
	if out.DonationID == "" {
		return nil, fmt.Errorf("%w: donation receipt without id", ErrMalformedResponse)
	}
	return &out, nil
}

func (c *HTTPClient) Campaigns(ctx context.Context) ([]Campaign, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/campaigns", "", "", nil, ErrRequestRejected)
	if err != nil {
		return nil, err
	}

	var out []Campaign
	if err := json.Unmarshal(unwrapData(respBody), &out); err != nil {
		return nil, fmt.Errorf("%w: campaigns list: %s", ErrMalformedResponse, err)
	}
	return out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", "", "", nil, ErrRequestRejected)
	return err
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// do performs one request and returns the raw response body. Non-2xx
// responses become an *APIError wrapping rejectKind with the backend message
// extracted; transport failures wrap ErrNetworkUnavailable. No retries.
func (c *HTTPClient) do(ctx context.Context, method, path, authz, idemKey string, body any, rejectKind error) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %s", ErrNetworkUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := extractErrorMessage(respBody)
		c.log.Warn(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &APIError{Status: resp.StatusCode, Message: msg, kind: rejectKind}
	}
	return respBody, nil
}

// extractErrorMessage pulls the human-readable message out of an error body.
// Deployments disagree on the field name.
func extractErrorMessage(body []byte) string {
	var eb struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}

// unwrapData strips the optional {"data": ...} envelope some deployments put
// around every payload.
func unwrapData(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return body
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return body
	}
	return env.Data
}

// authPayload covers every auth-response shape seen across deployments:
// flat fields, data-wrapped (handled by unwrapData), and a nested user
// object carrying the token.
type authPayload struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Role     string `json:"role"`
	User     *struct {
		Token    string `json:"token"`
		ID       string `json:"id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		UserType string `json:"userType"`
	} `json:"user"`
}

// parseAccount normalizes an auth response into an Account. fallbackEmail is
// the address the user submitted; some deployments do not echo it back.
func parseAccount(body []byte, fallbackEmail string) (*Account, error) {
	var p authPayload
	if err := json.Unmarshal(unwrapData(body), &p); err != nil {
		return nil, fmt.Errorf("%w: auth response: %s", ErrMalformedResponse, err)
	}

	acct := &Account{
		UserID: firstNonEmpty(p.UserID, p.ID),
		Name:   firstNonEmpty(p.Name, p.UserName),
		Email:  firstNonEmpty(p.Email, fallbackEmail),
		Token:  p.Token,
		Role:   Role(firstNonEmpty(p.UserType, p.Role)),
	}
	if p.User != nil {
		if acct.Token == "" {
			acct.Token = p.User.Token
		}
		if acct.UserID == "" {
			acct.UserID = p.User.ID
		}
		if acct.Name == "" {
			acct.Name = p.User.Name
		}
		if acct.Email == "" || acct.Email == fallbackEmail {
			acct.Email = firstNonEmpty(p.User.Email, acct.Email)
		}
		if acct.Role == "" {
			acct.Role = Role(p.User.UserType)
		}
	}

	if acct.Token == "" || acct.UserID == "" {
		return nil, fmt.Errorf("%w: auth response missing token or user id", ErrMalformedResponse)
	}
	return acct, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
