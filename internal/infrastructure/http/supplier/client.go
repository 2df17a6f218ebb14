package supplier

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
)

// Client pulls the supplier tire feed page by page, with a pause between
// pages so the feed is not hammered.
type Client struct {
	httpClient *http.Client
	cfg        config.SupplierConfig
}

func NewClient(cfg config.SupplierConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}
}

type tiresResponse struct {
	Data       []tireRecord `json:"data"`
	TotalPages int          `json:"total_pages"`
}

type tireRecord struct {
	ID         int64               `json:"id"`
	Code       string              `json:"code"`
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Dimensions string              `json:"dimensions"`
	Brand      string              `json:"brand"`
	Price      decimal.NullDecimal `json:"wholesale_price"`
	IsActive   *bool               `json:"is_active"`
}

// FetchTires downloads the feed, optionally limited to tires updated
// since the given time, walking every page.
func (c *Client) FetchTires(ctx context.Context, updatedSince *time.Time) ([]catalog.Tire, error) {
	if c.cfg.APIKey == "" || c.cfg.SupplierID == "" {
		return nil, fmt.Errorf("supplier api_key or supplier_id is empty")
	}

	all := make([]catalog.Tire, 0)
	page := 1
	totalPages := 1
	pageSize := c.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 500
	}
	sleep := time.Duration(c.cfg.SleepMS) * time.Millisecond
	if sleep <= 0 {
		sleep = time.Second
	}

	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid supplier base url: %w", err)
	}

	for page <= totalPages {
		u := *base
		u.Path = fmt.Sprintf("%s/suppliers/%s/tires", base.Path, c.cfg.SupplierID)

		q := u.Query()
		q.Set("api_key", c.cfg.APIKey)
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
		q.Set("page_number", fmt.Sprintf("%d", page))
		if updatedSince != nil {
			q.Set("updated_since", fmt.Sprintf("%d", updatedSince.Unix()))
		}
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call supplier feed: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("supplier feed status %d", resp.StatusCode)
		}

		var body tiresResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		if len(body.Data) == 0 {
			break
		}

		for _, rec := range body.Data {
			all = append(all, rec.toTire())
		}

		if body.TotalPages > 0 {
			totalPages = body.TotalPages
		}
		page++

		select {
		case <-ctx.Done():
			return all, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return all, nil
}

func (r tireRecord) toTire() catalog.Tire {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return catalog.Tire{
		ID:         r.ID,
		Code:       r.Code,
		Name:       r.Name,
		Type:       r.Type,
		Dimensions: r.Dimensions,
		Brand:      r.Brand,
		Price:      r.Price,
		Active:     active,
	}
}
