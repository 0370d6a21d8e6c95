// Package paystack is a client for the parts of the Paystack API that the
// backend uses: initializing charge sessions and verifying the signature
// of webhook deliveries.
package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// SignatureHeader is the request header Paystack signs webhook deliveries with.
const SignatureHeader = "x-paystack-signature"

// ErrUnavailable is returned when the Paystack API cannot be reached or
// answers with an unusable response. No local state may be written when
// this is returned.
var ErrUnavailable = errors.New("the payment provider is currently unavailable, please try again later")

// Client is a client for the Paystack API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient returns a Client for the API at baseURL, authenticated with
// the given secret key.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InitializeRequest is the payload for the transaction initialization endpoint.
type InitializeRequest struct {
	Amount int64  `json:"amount"` // Charge amount in kobo
	Email  string `json:"email"`
}

// InitializeResponse is the response of the transaction initialization endpoint.
type InitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// InitializeTransaction opens a charge session for the given email address
// and amount. The returned reference correlates the session with the
// webhook delivery that settles it.
func (c *Client) InitializeTransaction(ctx context.Context, email string, amountKobo int64) (InitializeResponse, error) {
	body, err := json.Marshal(InitializeRequest{
		Amount: amountKobo,
		Email:  email,
	})
	if err != nil {
		return InitializeResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return InitializeResponse{}, err
	}

	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return InitializeResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return InitializeResponse{}, fmt.Errorf("%w: HTTP %d", ErrUnavailable, res.StatusCode)
	}

	var parsed InitializeResponse
	err = json.NewDecoder(res.Body).Decode(&parsed)
	if err != nil {
		return InitializeResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if parsed.Data.Reference == "" {
		return InitializeResponse{}, fmt.Errorf("%w: response contains no reference", ErrUnavailable)
	}

	return parsed, nil
}

// ValidSignature reports whether the signature header of a webhook
// delivery matches the raw request body. Paystack signs the body with
// HMAC-SHA512 using the API secret key, hex encoded.
func (c *Client) ValidSignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Kobo converts a naira amount into the kobo integer the API expects.
func Kobo(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}
