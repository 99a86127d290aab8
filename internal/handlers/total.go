package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/example/monelog/internal/expense"
	"github.com/example/monelog/internal/metrics"
	"github.com/example/monelog/internal/types"
	"github.com/example/monelog/pkg/jsonutil"
	"github.com/rs/zerolog"
)

const (
	defaultMaxValues = 10000
	maxBodyBytes     = 4 << 20
)

// TotalDeps bundles dependencies needed by the handler.
type TotalDeps struct {
	// MaxValues caps the number of entries per request.
	MaxValues int
	// Currency is used when the request names none.
	Currency string
	Log      zerolog.Logger
}

type TotalHandler struct{ Deps TotalDeps }

func NewTotalHandler(deps TotalDeps) *TotalHandler {
	if deps.MaxValues <= 0 {
		deps.MaxValues = defaultMaxValues
	}
	deps.Currency = expense.NormalizeCurrency(deps.Currency)
	return &TotalHandler{Deps: deps}
}

// ServeHTTP handles POST /api/total. Entries that are not numbers count as
// zero. Rejected: a malformed body, an oversized list, an unknown currency,
// or a total that is not a finite float64.
func (h *TotalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	req, err := types.DecodeTotalRequest(json.NewDecoder(r.Body))
	if err != nil {
		jsonutil.Error(w, http.StatusBadRequest, "bad request")
		return
	}
	if len(req.Values) > h.Deps.MaxValues {
		jsonutil.Error(w, http.StatusBadRequest, "too many values")
		return
	}
	currency := h.Deps.Currency
	if req.Currency != "" {
		currency = expense.NormalizeCurrency(req.Currency)
	}
	if !expense.KnownCurrency(currency) {
		jsonutil.Error(w, http.StatusBadRequest, "unknown currency")
		return
	}

	sum := expense.Summarize(req.Values)
	metrics.TotalsComputed.Inc()
	metrics.EntriesIgnored.Add(float64(sum.Ignored))
	h.Deps.Log.Debug().
		Str("event", "total").
		Int("count", sum.Count).
		Int("ignored", sum.Ignored).
		Str("currency", currency).
		Msg("computed total")

	if math.IsInf(sum.Total, 0) || math.IsNaN(sum.Total) {
		jsonutil.Error(w, http.StatusBadRequest, "total out of range")
		return
	}

	jsonutil.JSON(w, http.StatusOK, types.TotalResponse{
		Total:     sum.Total,
		Exact:     sum.Exact.String(),
		Formatted: expense.Format(sum.Exact, currency),
		Currency:  currency,
		Count:     sum.Count,
		Ignored:   sum.Ignored,
	})
}
