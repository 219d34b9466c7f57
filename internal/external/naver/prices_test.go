package naver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriceJSON(t *testing.T) {
	tests := []struct {
		name    string
		rawData [][]interface{}
		want    int
	}{
		{
			name: "valid data with header",
			rawData: [][]interface{}{
				{"날짜", "시가", "고가", "저가", "종가", "거래량"},
				{"20240115", 72300.0, 73000.0, 72000.0, 72500.0, 1000000.0},
				{"20240116", 72500.0, 73500.0, 72300.0, 73000.0, 1200000.0},
			},
			want: 2,
		},
		{
			name: "valid data with string numbers",
			rawData: [][]interface{}{
				{"날짜", "시가", "고가", "저가", "종가", "거래량"},
				{"20240115", "72300", "73000", "72000", "72500", "1000000"},
			},
			want: 1,
		},
		{
			name:    "empty data",
			rawData: [][]interface{}{},
			want:    0,
		},
		{
			name: "data with insufficient columns",
			rawData: [][]interface{}{
				{"날짜", "시가"},
				{"20240115", 72300.0, 73000.0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePriceJSON(tt.rawData)
			assert.Len(t, got, tt.want)

			for _, bar := range got {
				assert.False(t, bar.Date.IsZero())
				assert.Positive(t, bar.Close)
				assert.GreaterOrEqual(t, bar.High, bar.Low)
			}
		})
	}
}

func TestParsePriceResponse_SingleQuotedBody(t *testing.T) {
	body := `
[['날짜', '시가', '고가', '저가', '종가', '거래량', '외국인소진율'],
["20240115", 72300, 73000, 72000, 72500, 1000000, 52.1],
["20240116", 72500, 73500, 72300, 73000, 1200000, 52.2]
]
`
	bars, err := parsePriceResponse(body)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 73000.0, bars[1].Close)
	assert.Equal(t, int64(1200000), bars[1].Volume)
	assert.True(t, bars[0].Date.Before(bars[1].Date))
}

func TestParsePriceRegex(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{
			name: "valid regex format",
			body: `[["20240115", 72300, 73000, 72000, 72500, 1000000], ["20240116", 72500, 73500, 72300, 73000, 1200000]`,
			want: 2,
		},
		{
			name: "decimal prices",
			body: `["20240115", 1672.5, 1690.0, 1660.1, 1688.8, 33000]`,
			want: 1,
		},
		{
			name: "invalid format",
			body: `{"invalid": "json"}`,
			want: 0,
		},
		{
			name: "empty string",
			body: "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, parsePriceRegex(tt.body), tt.want)
		})
	}
}

func TestToFloat64(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  float64
	}{
		{"float64", 123.45, 123.45},
		{"int64", int64(123), 123},
		{"int", int(123), 123},
		{"string", "1,234", 1234},
		{"invalid string", "abc", 0},
		{"nil", nil, 0},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toFloat64(tt.input))
		})
	}
}
