package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hilljasont-svg/Tradejournal/src/analytics"
	"github.com/hilljasont-svg/Tradejournal/src/eventmodels"
	"github.com/hilljasont-svg/Tradejournal/src/ingestion"
	"github.com/hilljasont-svg/Tradejournal/src/journal"
)

const maxUploadBytes = 32 << 20

type Handler struct {
	journal *journal.Service
	decoder *schema.Decoder
}

type RematchResponse struct {
	Trades        int      `json:"trades"`
	OpenPositions int      `json:"open_positions"`
	FailedSymbols []string `json:"failed_symbols"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SetupHandler registers the journal API on router, which is usually the /api
// subrouter.
func SetupHandler(router *mux.Router, svc *journal.Service) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	h := &Handler{journal: svc, decoder: decoder}

	handleFunc := func(method, pattern string, handlerFunc func(http.ResponseWriter, *http.Request)) {
		handler := otelhttp.WithRouteTag(pattern, http.HandlerFunc(handlerFunc))
		router.Handle(pattern, handler).Methods(method)
	}

	handleFunc(http.MethodPost, "/preview-csv", h.handlePreviewCSV)
	handleFunc(http.MethodPost, "/import-with-mapping", h.handleImport)
	handleFunc(http.MethodGet, "/profiles", h.handleProfiles)
	handleFunc(http.MethodGet, "/trades", h.handleTrades)
	handleFunc(http.MethodDelete, "/trades", h.handleReset)
	handleFunc(http.MethodGet, "/open-positions", h.handleOpenPositions)
	handleFunc(http.MethodPost, "/rematch", h.handleRematch)
	handleFunc(http.MethodGet, "/dashboard-metrics", h.handleDashboard)
	handleFunc(http.MethodGet, "/calendar-data", h.handleCalendar)
	handleFunc(http.MethodGet, "/time-analysis", h.handleTimeAnalysis)
	handleFunc(http.MethodGet, "/symbol-performance", h.handleSymbolPerformance)
	handleFunc(http.MethodGet, "/cumulative-pnl", h.handleCumulativePnL)

	return h
}

func (h *Handler) decodeQuery(dst interface{}, r *http.Request) error {
	if err := h.decoder.Decode(dst, r.URL.Query()); err != nil {
		return eventmodels.NewBadRequestError("invalid query", err)
	}

	return nil
}

func (h *Handler) dateFilter(r *http.Request) (analytics.DateFilter, error) {
	var filter analytics.DateFilter
	err := h.decodeQuery(&filter, r)
	return filter, err
}

func (h *Handler) handlePreviewCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setErrorResponse("handlePreviewCSV: failed to parse form", http.StatusBadRequest, err, w)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		setErrorResponse("handlePreviewCSV: missing file", http.StatusBadRequest, err, w)
		return
	}
	defer file.Close()

	preview, err := ingestion.Preview(file)
	if err != nil {
		setErrorResponse("handlePreviewCSV: failed to read csv", http.StatusBadRequest, err, w)
		return
	}

	respond("handlePreviewCSV", preview, nil, w)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		setErrorResponse("handleImport: failed to parse form", http.StatusBadRequest, err, w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		setErrorResponse("handleImport: missing file", http.StatusBadRequest, err, w)
		return
	}
	defer file.Close()

	req := journal.ImportRequest{
		Profile: r.FormValue("profile"),
		Format:  r.FormValue("format"),
		Source:  header.Filename,
	}

	if raw := strings.TrimSpace(r.FormValue("mapping")); raw != "" {
		var mapping ingestion.ColumnMapping
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			setErrorResponse("handleImport: invalid mapping", http.StatusBadRequest, fmt.Errorf("mapping: %w", err), w)
			return
		}

		req.Mapping = &mapping
	}

	result, err := h.journal.Import(r.Context(), file, req)
	respond("handleImport", result, err, w)
}

func (h *Handler) handleProfiles(w http.ResponseWriter, r *http.Request) {
	respond("handleProfiles", h.journal.Profiles(), nil, w)
}

func (h *Handler) handleTrades(w http.ResponseWriter, r *http.Request) {
	var query journal.TradesQuery
	if err := h.decodeQuery(&query, r); err != nil {
		respond("handleTrades", nil, err, w)
		return
	}

	trades, err := h.journal.Trades(query)
	if err != nil {
		respond("handleTrades", nil, err, w)
		return
	}

	respond("handleTrades", eventmodels.ConvertMatchedTradesToDTO(trades), nil, w)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.journal.Reset(r.Context()); err != nil {
		respond("handleReset", nil, err, w)
		return
	}

	respond("handleReset", MessageResponse{Message: "Journal cleared"}, nil, w)
}

func (h *Handler) handleOpenPositions(w http.ResponseWriter, r *http.Request) {
	respond("handleOpenPositions", h.journal.OpenPositions(), nil, w)
}

func (h *Handler) handleRematch(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.journal.Rematch(r.Context())
	if err != nil {
		respond("handleRematch", nil, err, w)
		return
	}

	resp := RematchResponse{
		Trades:        len(ledger.Trades),
		OpenPositions: len(ledger.OpenLots),
		FailedSymbols: []string{},
	}

	for symbol := range ledger.Failed {
		resp.FailedSymbols = append(resp.FailedSymbols, symbol)
	}

	sort.Strings(resp.FailedSymbols)

	respond("handleRematch", resp, nil, w)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := h.dateFilter(r)
	if err != nil {
		respond("handleDashboard", nil, err, w)
		return
	}

	metrics, err := h.journal.Dashboard(filter)
	respond("handleDashboard", metrics, err, w)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	filter, err := h.dateFilter(r)
	if err != nil {
		respond("handleCalendar", nil, err, w)
		return
	}

	days, err := h.journal.Calendar(filter)
	respond("handleCalendar", days, err, w)
}

func (h *Handler) handleTimeAnalysis(w http.ResponseWriter, r *http.Request) {
	respond("handleTimeAnalysis", h.journal.TimeAnalysis(), nil, w)
}

func (h *Handler) handleSymbolPerformance(w http.ResponseWriter, r *http.Request) {
	respond("handleSymbolPerformance", h.journal.SymbolPerformance(), nil, w)
}

func (h *Handler) handleCumulativePnL(w http.ResponseWriter, r *http.Request) {
	respond("handleCumulativePnL", h.journal.CumulativePnL(), nil, w)
}
