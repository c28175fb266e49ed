//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pacectrl/internal/domain/trip"
	"pacectrl/internal/handler/api"
	"pacectrl/internal/infra/memstore"
	"pacectrl/internal/pkg/clock"
	"pacectrl/internal/pkg/config"
	"pacectrl/internal/stream"
	"pacectrl/internal/usecase"
	"pacectrl/internal/usecase/commands"
	"pacectrl/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

type ChoiceHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	engine *usecase.Engine
	clock  *clock.MockClock
}

func (s *ChoiceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.clock = clock.NewMockClock(baseTime)
	s.engine = usecase.NewEngine(
		memstore.NewStore(),
		trip.NewStaticCatalog(),
		stream.NewBroadcaster(16),
		s.clock,
		config.NewTestConfig(),
	)

	cmds := commands.NewChoiceCommands(s.engine)
	q := queries.NewChoiceQueries(s.engine)
	widgetHandler := api.NewWidgetHandler(q, config.NewTestConfig())
	choiceHandler := api.NewChoiceHandler(cmds)
	adminHandler := api.NewAdminHandler(q)

	s.router.GET("/widget.js", widgetHandler.ServeScript)
	s.router.GET("/api/v1/public/widget/config", widgetHandler.GetConfig)
	s.router.POST("/api/v1/public/choice-intents", choiceHandler.CreateIntent)
	s.router.POST("/api/v1/public/choice-confirmations", choiceHandler.ConfirmChoice)
	s.router.GET("/api/v1/admin/choice-intents", adminHandler.ListIntents)
	s.router.GET("/api/v1/admin/choice-confirmations", adminHandler.ListConfirmations)
	s.router.GET("/api/v1/admin/trip-average", adminHandler.TripAverage)
}

func TestChoiceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ChoiceHandlerTestSuite))
}

func (s *ChoiceHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ChoiceHandlerTestSuite) decode(rec *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), out))
}

func (s *ChoiceHandlerTestSuite) createIntent(tripID string, pct float64) string {
	rec := s.perform(http.MethodPost, "/api/v1/public/choice-intents", gin.H{
		"external_trip_id": tripID,
		"reduction_pct":    pct,
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var resp struct {
		IntentID string `json:"intent_id"`
	}
	s.decode(rec, &resp)
	s.Require().NotEmpty(resp.IntentID)
	return resp.IntentID
}

// ================================================================================
// Widget config
// ================================================================================

func (s *ChoiceHandlerTestSuite) TestWidgetConfig() {
	s.Run("success: returns bounds and theme", func() {
		rec := s.perform(http.MethodGet, "/api/v1/public/widget/config?external_trip_id=HEL-TLL-2025-12-12", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp struct {
			ExternalTripID  string  `json:"external_trip_id"`
			MaxReductionPct float64 `json:"max_reduction_pct"`
			Theme           struct {
				PrimaryColor string `json:"primary_color"`
			} `json:"theme"`
		}
		s.decode(rec, &resp)
		s.Equal("HEL-TLL-2025-12-12", resp.ExternalTripID)
		s.Equal(20.0, resp.MaxReductionPct)
		s.Equal("#10b981", resp.Theme.PrimaryColor)
	})

	s.Run("unknown trip returns 404", func() {
		rec := s.perform(http.MethodGet, "/api/v1/public/widget/config?external_trip_id=NO-SUCH-TRIP", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("missing trip id returns 400", func() {
		rec := s.perform(http.MethodGet, "/api/v1/public/widget/config", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// Widget script
// ================================================================================

func (s *ChoiceHandlerTestSuite) TestServeScript() {
	s.Run("bundle not built yet returns 404", func() {
		rec := s.perform(http.MethodGet, "/widget.js", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("serves the built bundle as javascript", func() {
		script := "(function(){console.log(\"widget\")})();"
		path := filepath.Join(s.T().TempDir(), "widget.js")
		s.Require().NoError(os.WriteFile(path, []byte(script), 0o644))

		cfg := config.NewTestConfig()
		cfg.Widget.ScriptPath = path
		router := gin.New()
		router.GET("/widget.js", api.NewWidgetHandler(queries.NewChoiceQueries(s.engine), cfg).ServeScript)

		req := httptest.NewRequest(http.MethodGet, "/widget.js", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("application/javascript", rec.Header().Get("Content-Type"))
		s.Equal(script, rec.Body.String())
	})
}

// ================================================================================
// Intent creation
// ================================================================================

func (s *ChoiceHandlerTestSuite) TestCreateIntent() {
	url := "/api/v1/public/choice-intents"

	cases := []struct {
		name       string
		body       gin.H
		expectCode int
	}{
		{name: "valid request", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12", "reduction_pct": 10}, expectCode: http.StatusCreated},
		{name: "zero reduction is valid", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12", "reduction_pct": 0}, expectCode: http.StatusCreated},
		{name: "reduction at trip maximum", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12", "reduction_pct": 20}, expectCode: http.StatusCreated},
		{name: "reduction above trip maximum", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12", "reduction_pct": 25}, expectCode: http.StatusBadRequest},
		{name: "negative reduction", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12", "reduction_pct": -5}, expectCode: http.StatusBadRequest},
		{name: "unknown trip", body: gin.H{"external_trip_id": "NO-SUCH-TRIP", "reduction_pct": 10}, expectCode: http.StatusNotFound},
		{name: "missing field: external_trip_id", body: gin.H{"reduction_pct": 10}, expectCode: http.StatusBadRequest},
		{name: "missing field: reduction_pct", body: gin.H{"external_trip_id": "HEL-TLL-2025-12-12"}, expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := s.perform(http.MethodPost, url, tc.body)
			s.Equal(tc.expectCode, rec.Code)
		})
	}
}

// ================================================================================
// Confirmation
// ================================================================================

func (s *ChoiceHandlerTestSuite) TestConfirmChoice() {
	url := "/api/v1/public/choice-confirmations"

	s.Run("success: binds the booking to the intent", func() {
		intentID := s.createIntent("HEL-TLL-2025-12-12", 12.5)
		rec := s.perform(http.MethodPost, url, gin.H{"booking_id": 42, "intent_id": intentID})
		s.Equal(http.StatusOK, rec.Code)

		var resp struct {
			BookingID      int64   `json:"booking_id"`
			IntentID       string  `json:"intent_id"`
			ExternalTripID string  `json:"external_trip_id"`
			ReductionPct   float64 `json:"reduction_pct"`
			ConfirmedAt    string  `json:"confirmed_at"`
		}
		s.decode(rec, &resp)
		s.Equal(int64(42), resp.BookingID)
		s.Equal(intentID, resp.IntentID)
		s.Equal("HEL-TLL-2025-12-12", resp.ExternalTripID)
		s.Equal(12.5, resp.ReductionPct)

		confirmedAt, err := time.Parse(time.RFC3339Nano, resp.ConfirmedAt)
		s.Require().NoError(err)
		s.True(confirmedAt.Equal(baseTime))
	})

	s.Run("second confirmation of the same intent returns 404", func() {
		intentID := s.createIntent("HEL-TLL-2025-12-12", 10)
		rec := s.perform(http.MethodPost, url, gin.H{"booking_id": 1, "intent_id": intentID})
		s.Equal(http.StatusOK, rec.Code)

		rec = s.perform(http.MethodPost, url, gin.H{"booking_id": 2, "intent_id": intentID})
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("expired intent returns 404", func() {
		intentID := s.createIntent("HEL-TLL-2025-12-12", 10)
		s.clock.Add(16 * time.Minute)
		rec := s.perform(http.MethodPost, url, gin.H{"booking_id": 1, "intent_id": intentID})
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("unknown intent returns 404", func() {
		rec := s.perform(http.MethodPost, url, gin.H{"booking_id": 1, "intent_id": "int_MISSIN"})
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("missing fields return 400", func() {
		rec := s.perform(http.MethodPost, url, gin.H{"intent_id": "int_AAAAAA"})
		s.Equal(http.StatusBadRequest, rec.Code)

		rec = s.perform(http.MethodPost, url, gin.H{"booking_id": 1})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// Admin reads
// ================================================================================

func (s *ChoiceHandlerTestSuite) TestAdminLists() {
	s.Run("live intents most recent first, expired ones pruned", func() {
		first := s.createIntent("HEL-TLL-2025-12-12", 5)
		s.clock.Add(10 * time.Minute)
		second := s.createIntent("VAA-UME-2025-12-15", 6)
		s.clock.Add(10 * time.Minute) // first is now 20 minutes old

		rec := s.perform(http.MethodGet, "/api/v1/admin/choice-intents", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp []struct {
			IntentID  string `json:"intent_id"`
			CreatedAt string `json:"created_at"`
		}
		s.decode(rec, &resp)
		s.Require().Len(resp, 1)
		s.Equal(second, resp[0].IntentID)
		s.NotEqual(first, resp[0].IntentID)
	})

	s.Run("confirmations most recent first", func() {
		for i, pct := range []float64{5, 10} {
			intentID := s.createIntent("HEL-TLL-2025-12-12", pct)
			s.clock.Add(time.Minute)
			rec := s.perform(http.MethodPost, "/api/v1/public/choice-confirmations", gin.H{"booking_id": i + 1, "intent_id": intentID})
			s.Require().Equal(http.StatusOK, rec.Code)
		}

		rec := s.perform(http.MethodGet, "/api/v1/admin/choice-confirmations", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp []struct {
			BookingID    int64   `json:"booking_id"`
			ReductionPct float64 `json:"reduction_pct"`
		}
		s.decode(rec, &resp)
		s.Require().Len(resp, 2)
		s.Equal(int64(2), resp[0].BookingID)
		s.Equal(int64(1), resp[1].BookingID)
	})
}

func (s *ChoiceHandlerTestSuite) TestTripAverage() {
	url := "/api/v1/admin/trip-average?external_trip_id=HEL-TLL-2025-12-12"

	s.Run("end to end: one confirmed choice", func() {
		intentID := s.createIntent("HEL-TLL-2025-12-12", 10)
		rec := s.perform(http.MethodPost, "/api/v1/public/choice-confirmations", gin.H{"booking_id": 42, "intent_id": intentID})
		s.Require().Equal(http.StatusOK, rec.Code)

		rec = s.perform(http.MethodGet, url, nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp struct {
			ExternalTripID      string  `json:"external_trip_id"`
			Count               int     `json:"count"`
			AverageReductionPct float64 `json:"average_reduction_pct"`
		}
		s.decode(rec, &resp)
		s.Equal("HEL-TLL-2025-12-12", resp.ExternalTripID)
		s.Equal(1, resp.Count)
		s.Equal(10.0, resp.AverageReductionPct)
	})

	s.Run("known trip without confirmations", func() {
		rec := s.perform(http.MethodGet, "/api/v1/admin/trip-average?external_trip_id=VAA-UME-2025-12-15", nil)
		s.Equal(http.StatusOK, rec.Code)

		var resp struct {
			Count               int     `json:"count"`
			AverageReductionPct float64 `json:"average_reduction_pct"`
		}
		s.decode(rec, &resp)
		s.Equal(0, resp.Count)
		s.Equal(0.0, resp.AverageReductionPct)
	})

	s.Run("unknown trip returns 404", func() {
		rec := s.perform(http.MethodGet, "/api/v1/admin/trip-average?external_trip_id=NO-SUCH-TRIP", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("missing trip id returns 400", func() {
		rec := s.perform(http.MethodGet, "/api/v1/admin/trip-average", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
