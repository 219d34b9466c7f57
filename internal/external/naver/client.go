package naver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wonny/smartmoney/pkg/config"
	"github.com/wonny/smartmoney/pkg/httputil"
	"github.com/wonny/smartmoney/pkg/logger"
)

// Client handles communication with Naver Finance
// ⭐ SSOT: Naver Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger

	baseURL       string // finance.naver.com (HTML)
	chartURL      string // fchart.stock.naver.com (daily bars)
	marketURL     string // stock list API (market cap)
	investorPages int
}

// NewClient creates a new Naver Finance client
func NewClient(httpClient *httputil.Client, cfg config.NaverConfig, log *logger.Logger) *Client {
	pages := cfg.InvestorPage
	if pages <= 0 {
		pages = 1
	}

	return &Client{
		httpClient:    httpClient.WithHeader("Referer", "https://finance.naver.com/"),
		logger:        log,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		chartURL:      strings.TrimRight(cfg.ChartURL, "/"),
		marketURL:     strings.TrimRight(cfg.MarketURL, "/"),
		investorPages: pages,
	}
}

// fetch GETs base+path and returns the body of a 200 response
func (c *Client) fetch(ctx context.Context, base, path string, params url.Values) ([]byte, error) {
	fullURL := fmt.Sprintf("%s%s", base, path)
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", fullURL, params.Encode())
	}

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
