package server

import (
	"fmt"
	"strings"
	"sync"

	"price-recorder/src/config"
	"price-recorder/src/interfaces"
	"price-recorder/src/logger"
	"price-recorder/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *config.Config
	Logger *logger.Logger
	Store  interfaces.ITableStore
	Quotes interfaces.IQuoteSource
	engine *gin.Engine

	// RunFunc triggers an immediate update run. Optional.
	RunFunc func() *models.MRunReport

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MRunReport
	register   chan *Client
	unregister chan *Client

	// Local cache of the most recent run
	latestReport *models.MRunReport
	stateMutex   sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *config.Config, store interfaces.ITableStore, quotes interfaces.IQuoteSource, log *logger.Logger) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  log,
		Store:   store,
		Quotes:  quotes,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered so a burst of run reports never blocks the publisher
		broadcast:  make(chan *models.MRunReport, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestReport: &models.MRunReport{
			Type: "INITIAL",
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/stats", s.getStats)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/history", s.getHistory)
	s.engine.GET("/api/quote/:exchange/:ticker", s.getQuote)
	s.engine.POST("/api/run", s.postRun)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	lastRun := s.latestReport.RunTimestamp
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":      "ok",
		"connections": connections,
		"last_run":    lastRun,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getStats(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	c.JSON(200, s.latestReport)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"source_sheet": s.Config.Tables.SourceSheet,
		"target_sheet": s.Config.Tables.TargetSheet,
		"log_sheet":    s.Config.Tables.LogSheet,
		"exchanges": gin.H{
			"european": s.Config.Exchange.European,
			"american": s.Config.Exchange.American,
		},
		"schedule": s.Config.Schedule.Times,
		"timezone": s.Config.Schedule.Timezone,
	})
}

// -----------------------------------------------------------------------------

// getHistory returns the most recent history rows from the target sheet.
func (s *APIServer) getHistory(c *gin.Context) {
	const maxRows = 200

	last, err := s.Store.LastRow(s.Config.Tables.TargetSheet)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if last <= 1 {
		c.JSON(200, gin.H{"rows": [][]string{}})
		return
	}

	startRow := 2
	numRows := last - 1
	if numRows > maxRows {
		startRow = last - maxRows + 1
		numRows = maxRows
	}

	rows, err := s.Store.ReadRange(s.Config.Tables.TargetSheet, startRow, s.Config.Tables.TargetFormulaCol, numRows, 5)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"rows": rows})
}

// -----------------------------------------------------------------------------

// getQuote previews a live price. Quotes never end up in the target sheet,
// which stores formulas only.
func (s *APIServer) getQuote(c *gin.Context) {
	if s.Quotes == nil || !s.Config.Quotes.Enabled {
		c.JSON(503, gin.H{"error": "quote source disabled"})
		return
	}

	exchange := c.Param("exchange")
	ticker := c.Param("ticker")

	if _, ok := s.Config.SupportedExchanges()[exchange]; !ok {
		c.JSON(400, gin.H{"error": fmt.Sprintf("unsupported exchange '%s'", exchange)})
		return
	}

	price, err := s.Quotes.Quote(exchange, ticker)
	if err != nil {
		c.JSON(502, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"exchange": exchange,
		"ticker":   ticker,
		"price":    price,
		"source":   s.Quotes.Name(),
	})
}

// -----------------------------------------------------------------------------

// postRun triggers an immediate update run, synchronously, and returns the
// resulting report.
func (s *APIServer) postRun(c *gin.Context) {
	if s.RunFunc == nil {
		c.JSON(503, gin.H{"error": "manual runs disabled"})
		return
	}

	report := s.RunFunc()
	s.PublishReport(report)
	c.JSON(200, report)
}
