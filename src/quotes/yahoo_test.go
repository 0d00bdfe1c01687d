package quotes

import (
	"errors"
	"testing"

	"price-recorder/src/logger"
)

type fakeNetwork struct {
	lastURL string
	body    []byte
	err     error
}

func (f *fakeNetwork) Get(url string, params map[string]string) ([]byte, error) {
	f.lastURL = url
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

// -----------------------------------------------------------------------------

func TestSymbolMapping(t *testing.T) {
	cases := []struct {
		exchange, ticker, want string
	}{
		{"MIL", "ENI", "ENI.MI"},
		{"BIT", "UCG", "UCG.MI"},
		{"LSE", "BP", "BP.L"},
		{"XETRA", "SAP", "SAP.DE"},
		{"ETR", "BMW", "BMW.DE"},
		{"NASDAQ", "AAPL", "AAPL"},
		{"NYSE", "KO", "KO"},
	}
	for _, c := range cases {
		if got := Symbol(c.exchange, c.ticker); got != c.want {
			t.Errorf("Symbol(%s, %s) = %s, want %s", c.exchange, c.ticker, got, c.want)
		}
	}
}

func TestQuoteParsesPrice(t *testing.T) {
	net := &fakeNetwork{body: []byte(`{
		"chart": {
			"result": [{"meta": {"symbol": "ENI.MI", "regularMarketPrice": 14.52}}],
			"error": null
		}
	}`)}
	src := NewYahooQuoteSource(net, logger.NewLogger("INFO", "test"))

	price, err := src.Quote("MIL", "ENI")
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if price != 14.52 {
		t.Errorf("price mismatch: got %v", price)
	}
	if net.lastURL != "https://query1.finance.yahoo.com/v8/finance/chart/ENI.MI" {
		t.Errorf("wrong chart URL: %s", net.lastURL)
	}
}

func TestQuoteAPIError(t *testing.T) {
	net := &fakeNetwork{body: []byte(`{
		"chart": {"result": [], "error": {"code": "Not Found", "description": "No data found"}}
	}`)}
	src := NewYahooQuoteSource(net, logger.NewLogger("INFO", "test"))

	if _, err := src.Quote("NASDAQ", "NOPE"); err == nil {
		t.Fatal("expected an error from the API error payload")
	}
}

func TestQuoteNetworkError(t *testing.T) {
	net := &fakeNetwork{err: errors.New("timeout")}
	src := NewYahooQuoteSource(net, logger.NewLogger("INFO", "test"))

	if _, err := src.Quote("NYSE", "KO"); err == nil {
		t.Fatal("expected network errors to propagate")
	}
}
