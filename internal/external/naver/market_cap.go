package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxMarketCapPages bounds the stock list scan per market (100 per page)
const maxMarketCapPages = 15

var marketTypes = []string{"KOSPI", "KOSDAQ"}

// MarketCapData represents market capitalization
type MarketCapData struct {
	StockCode         string
	TradeDate         time.Time
	MarketCap         int64
	SharesOutstanding int64
}

// stockListItem is one entry of the market stock list API
type stockListItem struct {
	ItemCode       string `json:"itemcode"`
	ItemName       string `json:"itemname"`
	NowVal         string `json:"nowVal"`         // 현재가
	MarketSum      string `json:"marketSum"`      // 시가총액 (원)
	ListedStockCnt string `json:"listedStockCnt"` // 상장주식수
}

// FetchMarketCap scans the market-cap ordered stock list for one stock.
// There is no single-stock endpoint.
// ⭐ SSOT: Naver 시가총액 호출은 이 함수에서만
func (c *Client) FetchMarketCap(ctx context.Context, stockCode string) (*MarketCapData, error) {
	for _, market := range marketTypes {
		for page := 1; page <= maxMarketCapPages; page++ {
			items, err := c.fetchStockList(ctx, market, page)
			if err != nil {
				return nil, err
			}
			if len(items) == 0 {
				break
			}

			for _, item := range items {
				if item.ItemCode == stockCode {
					return parseMarketCapData(item)
				}
			}
		}
	}

	return nil, fmt.Errorf("stock %s not found in market list", stockCode)
}

func (c *Client) fetchStockList(ctx context.Context, market string, page int) ([]stockListItem, error) {
	params := url.Values{}
	params.Set("orderType", "marketSum")
	params.Set("marketType", market)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", "100")

	body, err := c.fetch(ctx, c.marketURL, "/api/domestic/market/stock/default", params)
	if err != nil {
		return nil, err
	}

	var items []stockListItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return items, nil
}

// parseMarketCapData parses a list item into MarketCapData
func parseMarketCapData(item stockListItem) (*MarketCapData, error) {
	marketCap, err := strconv.ParseFloat(strings.ReplaceAll(item.MarketSum, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("parse market cap: %w", err)
	}

	shares, err := strconv.ParseFloat(strings.ReplaceAll(item.ListedStockCnt, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("parse shares outstanding: %w", err)
	}

	return &MarketCapData{
		StockCode:         item.ItemCode,
		TradeDate:         time.Now().Truncate(24 * time.Hour),
		MarketCap:         int64(marketCap),
		SharesOutstanding: int64(shares),
	}, nil
}
