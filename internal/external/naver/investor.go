package naver

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var investorDateRe = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)

// InvestorDay is one row of the foreign/institution trading page
type InvestorDay struct {
	TradeDate      time.Time
	Close          float64
	Volume         int64
	InstitutionNet int64   // 기관 순매매 (주)
	ForeignNet     int64   // 외국인 순매매 (주)
	ForeignHeld    int64   // 외국인 보유주수
	ForeignRatio   float64 // 외국인 보유율 (%)
}

// FetchInvestorFlow fetches foreign/institution trading rows, ascending by date
// ⭐ SSOT: Naver Finance 투자자 수급 데이터 호출은 이 함수에서만
func (c *Client) FetchInvestorFlow(ctx context.Context, stockCode string) ([]InvestorDay, error) {
	var days []InvestorDay

	for page := 1; page <= c.investorPages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		params := url.Values{}
		params.Set("code", stockCode)
		params.Set("page", strconv.Itoa(page))

		body, err := c.fetch(ctx, c.baseURL, "/item/frgn.naver", params)
		if err != nil {
			return nil, err
		}

		rows, hasMore, err := parseInvestorHTML(body)
		if err != nil {
			return nil, fmt.Errorf("parse investor page %d: %w", page, err)
		}
		days = append(days, rows...)

		if !hasMore {
			break
		}
	}

	// 페이지는 최신순
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].TradeDate.Before(days[j].TradeDate)
	})

	c.logger.WithFields(map[string]interface{}{
		"stock_code": stockCode,
		"count":      len(days),
	}).Debug("Fetched investor flow")
	return days, nil
}

// parseInvestorHTML parses frgn.naver. 컬럼: 날짜 | 종가 | 전일비 | 등락률 | 거래량 |
// 기관 순매매 | 외국인 순매매 | 외국인 보유주수 | 외국인 보유율
func parseInvestorHTML(html []byte) ([]InvestorDay, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, false, err
	}

	// 두번째 table.type2가 데이터 테이블
	tables := doc.Find("table.type2")
	if tables.Length() < 2 {
		return nil, false, nil
	}

	var days []InvestorDay
	tables.Eq(1).Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 9 {
			return
		}

		dateText := strings.TrimSpace(cells.Eq(0).Text())
		if !investorDateRe.MatchString(dateText) {
			return
		}
		tradeDate, err := time.Parse("2006.01.02", dateText)
		if err != nil {
			return
		}

		days = append(days, InvestorDay{
			TradeDate:      tradeDate,
			Close:          parseNumber(cells.Eq(1).Text()),
			Volume:         int64(parseNumber(cells.Eq(4).Text())),
			InstitutionNet: int64(parseNumber(cells.Eq(5).Text())),
			ForeignNet:     int64(parseNumber(cells.Eq(6).Text())),
			ForeignHeld:    int64(parseNumber(cells.Eq(7).Text())),
			ForeignRatio:   parseNumber(strings.TrimSuffix(strings.TrimSpace(cells.Eq(8).Text()), "%")),
		})
	})

	// 다음 페이지 존재 여부 확인
	hasMore := doc.Find(".pgRR").Length() > 0
	return days, hasMore, nil
}

// parseNumber reads "+1,234", "-56", "12.5" and treats blanks as 0
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "+", "")
	if s == "" || s == "-" {
		return 0
	}
	n, _ := strconv.ParseFloat(s, 64)
	return n
}
