package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sincrochat/catalog-backend/pkg/config"
	pkgerrors "github.com/sincrochat/catalog-backend/pkg/errors"
)

// Client talks to the upstream webhook backend that validates tokens, serves
// catalog bundles and creates orders.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchBundle loads the full catalog bundle for a session token. The upstream
// checks token validity and expiry.
func (c *Client) FetchBundle(ctx context.Context, token string) (*Bundle, error) {
	endpoint := fmt.Sprintf("%s/catalog?t=%s", c.baseURL, url.QueryEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building catalog request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog fetch failed")
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp, "catalog fetch")
	}

	var bundle Bundle
	if err := json.NewDecoder(resp.Body).Decode(&bundle); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding catalog bundle")
	}
	return &bundle, nil
}

// SubmitOrder posts the order payload upstream and returns the created order
// id. The upstream creates order rows and notifies the business; pricing in
// the payload is trusted as-is.
func (c *Client) SubmitOrder(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding order payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building order request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order submission failed")
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", upstreamError(resp, "order submission")
	}

	var created struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding order response")
	}
	if created.OrderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "upstream returned no order id")
	}
	return created.OrderID, nil
}

// upstreamError maps upstream status codes onto typed errors. 410 means the
// tokenized link expired.
func upstreamError(resp *http.Response, op string) error {
	var upstream struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&upstream)

	msg := upstream.Message
	if msg == "" {
		msg = fmt.Sprintf("%s returned status %d", op, resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, msg)
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	case http.StatusGone:
		return pkgerrors.New(pkgerrors.CodeSessionGone, msg)
	case http.StatusBadRequest:
		return pkgerrors.New(pkgerrors.CodeValidation, msg)
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, msg)
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
