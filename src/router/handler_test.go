package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/eventpubsub"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
	"github.com/hilljasont-svg/Tradejournal/src/matching"
	"github.com/hilljasont-svg/Tradejournal/src/store"
)

const upload = "Date,Time,Symbol,Side,Qty,Price,Fees\n" +
	"2025-03-03,09:30:00,AAPL,Buy,100,10.00,1.00\n" +
	"2025-03-03,10:00:00,AAPL,Sell,100,12.00,1.00\n" +
	"2025-03-04,10:05:00,TSLA,Sell,10,200.00,0\n"

const mappingJSON = `{"date":"Date","time":"Time","symbol":"Symbol","action":"Side","quantity":"Qty","price":"Price","fees":"Fees"}`

func newTestServer(t *testing.T) http.Handler {
	st, err := store.NewCSVStore(t.TempDir())
	require.NoError(t, err)

	svc, err := journal.NewService(st, eventpubsub.New(), nil, matching.MatchOptions{Workers: 1})
	require.NoError(t, err)

	router := mux.NewRouter()
	SetupHandler(router.PathPrefix("/api").Subrouter(), svc)

	return WithCORS([]string{"http://localhost:3000"}, router)
}

func multipartRequest(t *testing.T, path string, fields map[string]string, withFile bool) *http.Request {
	if !withFile {
		return multipartUpload(t, path, fields, "")
	}

	return multipartUpload(t, path, fields, upload)
}

// multipartUpload posts csv as the file part; an empty csv omits the part.
func multipartUpload(t *testing.T, path string, fields map[string]string, csv string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if csv != "" {
		fw, err := mw.CreateFormFile("file", "orders.csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(csv))
		require.NoError(t, err)
	}

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPreviewCSV(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, multipartRequest(t, "/api/preview-csv", nil, true))
	require.Equal(t, http.StatusOK, rec.Code)

	preview := decode[map[string]interface{}](t, rec)
	assert.Len(t, preview["headers"], 7)

	rec = serve(h, multipartRequest(t, "/api/preview-csv", nil, false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportWithMapping_LongRoundTrip(t *testing.T) {
	h := newTestServer(t)
	csv := "Date,Time,Symbol,Side,Qty,Price,Fees\n" +
		"2025-01-02,09:30:00,AAPL,Buy,100,10,0\n" +
		"2025-01-02,10:00:00,AAPL,Sell,100,12,0\n"

	rec := serve(h, multipartUpload(t, "/api/import-with-mapping", map[string]string{"mapping": mappingJSON}, csv))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[journal.ImportResult](t, rec)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.MatchedTrades)
	assert.Equal(t, 0, result.OpenPositions)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/trades", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	trades := decode[[]eventmodels.MatchedTradeDTO](t, rec)
	require.Len(t, trades, 1)
	assert.Equal(t, "AAPL", trades[0].Symbol)
	assert.Equal(t, string(eventmodels.TradeSideLong), trades[0].Side)
	assert.Equal(t, 100, trades[0].Quantity)
	assert.Equal(t, 200.0, trades[0].PnL)
	assert.Equal(t, string(eventmodels.TradeResultWin), trades[0].Result)
	assert.Equal(t, "2025-01-02", trades[0].TradeDate)
}

func TestImportAndReads(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, multipartRequest(t, "/api/import-with-mapping", map[string]string{"mapping": mappingJSON}, true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[journal.ImportResult](t, rec)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 1, result.MatchedTrades)
	assert.Equal(t, "Imported 3 new trades, 0 duplicates skipped", result.Message)

	rec = serve(h, multipartRequest(t, "/api/import-with-mapping", map[string]string{"mapping": mappingJSON}, true))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decode[journal.ImportResult](t, rec).Duplicates)

	t.Run("trades", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/trades?start_date=2025-03-03&end_date=2025-03-03", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		trades := decode[[]eventmodels.MatchedTradeDTO](t, rec)
		require.Len(t, trades, 1)
		assert.Equal(t, "AAPL", trades[0].Symbol)
		assert.Equal(t, 200.0, trades[0].PnL)

		rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/trades?symbol=TSLA", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("open positions", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/open-positions", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		positions := decode[[]matching.OpenPositionDTO](t, rec)
		require.Len(t, positions, 1)
		assert.Equal(t, "TSLA", positions[0].Symbol)
		assert.Equal(t, string(eventmodels.TradeSideShort), positions[0].Side)
	})

	t.Run("dashboard", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/dashboard-metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		metrics := decode[analytics.DashboardMetrics](t, rec)
		assert.Equal(t, 1, metrics.TotalTrades)
		assert.Equal(t, 198.0, metrics.NetPnL)

		rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/dashboard-metrics?start_date=bad", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		errResp := decode[map[string]string](t, rec)
		assert.Equal(t, "handleDashboard", errResp["type"])
		assert.Contains(t, errResp["message"], "invalid trade date")
	})

	t.Run("analytics endpoints", func(t *testing.T) {
		for _, path := range []string{"/api/calendar-data", "/api/time-analysis", "/api/symbol-performance", "/api/cumulative-pnl"} {
			rec := serve(h, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code, path)

			items := decode[[]map[string]interface{}](t, rec)
			assert.Len(t, items, 1, path)
		}
	})

	t.Run("rematch", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/rematch", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[RematchResponse](t, rec)
		assert.Equal(t, 1, resp.Trades)
		assert.Equal(t, 1, resp.OpenPositions)
		assert.Empty(t, resp.FailedSymbols)
	})

	t.Run("reset", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodDelete, "/api/trades", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/trades", nil))
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}

func TestImport_BadRequests(t *testing.T) {
	h := newTestServer(t)

	rec := serve(h, multipartRequest(t, "/api/import-with-mapping", map[string]string{"mapping": "{not json"}, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, multipartRequest(t, "/api/import-with-mapping", map[string]string{"profile": "unknown"}, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, multipartRequest(t, "/api/import-with-mapping", map[string]string{"mapping": `{"date":"Nope"}`}, true))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/import-with-mapping", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := serve(h, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/time-analysis", nil)
	req.Header.Set("Origin", "http://evil.example")

	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "[]\n", rec.Body.String())
}
