package data

import (
	"fmt"
	"time"

	"github.com/markcheno/go-quote"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/backtester/market"
)

const dateFormat = "2006-01-02"

// Download fetches daily OHLCV bars for the symbol covering the last
// `days` days from Yahoo Finance (symbols like "BTC-USD", "AAPL").
func Download(symbol string, days int) ([]market.Bar, error) {
	if days < 1 {
		return nil, fmt.Errorf("data: days must be >= 1, got %d", days)
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	q, err := quote.NewQuoteFromYahoo(symbol, start.Format(dateFormat), end.Format(dateFormat), quote.Daily, true)
	if err != nil {
		return nil, fmt.Errorf("data: download %s: %w", symbol, err)
	}

	return FromQuote(q)
}

// FromQuote converts a go-quote result to bars, sorted and validated.
func FromQuote(q quote.Quote) ([]market.Bar, error) {
	bars := make([]market.Bar, 0, len(q.Date))
	for i := range q.Date {
		bars = append(bars, market.Bar{
			Time:   q.Date[i].UTC(),
			Open:   decimal.NewFromFloat(q.Open[i]),
			High:   decimal.NewFromFloat(q.High[i]),
			Low:    decimal.NewFromFloat(q.Low[i]),
			Close:  decimal.NewFromFloat(q.Close[i]),
			Volume: decimal.NewFromFloat(q.Volume[i]),
		})
	}

	if err := market.ValidateBars(bars); err != nil {
		return nil, err
	}
	return bars, nil
}
