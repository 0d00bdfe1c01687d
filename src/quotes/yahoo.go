package quotes

import (
	"encoding/json"
	"fmt"

	"price-recorder/src/interfaces"
	"price-recorder/src/logger"
)

// exchangeSuffix maps a supported exchange code to the Yahoo Finance symbol
// suffix. American exchanges use the bare ticker.
var exchangeSuffix = map[string]string{
	"MIL":    ".MI",
	"BIT":    ".MI",
	"LSE":    ".L",
	"XETRA":  ".DE",
	"ETR":    ".DE",
	"NASDAQ": "",
	"NYSE":   "",
}

type YahooQuoteSource struct {
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewYahooQuoteSource(netMgr interfaces.INetworkManager, log *logger.Logger) *YahooQuoteSource {
	return &YahooQuoteSource{
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *YahooQuoteSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------

// Symbol converts an exchange/ticker pair into a Yahoo Finance symbol.
func Symbol(exchange, ticker string) string {
	return ticker + exchangeSuffix[exchange]
}

// -----------------------------------------------------------------------------

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// -----------------------------------------------------------------------------

// Quote fetches the current regular-market price for an exchange/ticker pair.
// This is a preview only: history entries always store the spreadsheet formula,
// never a fetched price.
func (s *YahooQuoteSource) Quote(exchange, ticker string) (float64, error) {
	symbol := Symbol(exchange, ticker)

	params := map[string]string{
		"interval": "1m",
		"range":    "1d",
	}

	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s", symbol)

	respBytes, err := s.Network.Get(url, params)
	if err != nil {
		return 0, fmt.Errorf("network error for %s: %w", symbol, err)
	}

	var resp chartResponse
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return 0, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		return 0, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	if len(resp.Chart.Result) == 0 {
		return 0, fmt.Errorf("no result in response for %s", symbol)
	}

	price := resp.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("no valid price for %s", symbol)
	}

	s.Logger.Debug("Quote %s: %.4f", symbol, price)
	return price, nil
}
