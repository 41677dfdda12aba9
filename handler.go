package astrotime

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/subtlepseudonym/astrotime/csvtab"
	"github.com/subtlepseudonym/astrotime/registry"
	"github.com/subtlepseudonym/astrotime/sentinel"
)

// Handler serves conversions over HTTP against a registry.
type Handler struct {
	Registry *registry.Registry
}

// NewHandler returns a Handler for r. A nil r uses registry.Default().
func NewHandler(r *registry.Registry) *Handler {
	if r == nil {
		r = registry.Default()
	}
	return &Handler{Registry: r}
}

// Register adds the handler's routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/convert", h.ConvertHandler)
	mux.HandleFunc("/offset", h.OffsetHandler)
	mux.HandleFunc("/status", h.StatusHandler)
}

type convertResponse struct {
	UTC       string  `json:"utc"`
	Scale     string  `json:"scale"`
	JulianDay float64 `json:"julian_day"`
	Stale     bool    `json:"stale"`
	DeltaT    float64 `json:"delta_t"`
	DUT1      float64 `json:"dut1,omitempty"`
}

type offsetResponse struct {
	UTC     string  `json:"utc"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Seconds float64 `json:"seconds"`
}

// StatusReport describes the installed providers.
type StatusReport struct {
	LeapSource       string `json:"leap_source"`
	LeapVersion      string `json:"leap_version"`
	LeapLastChange   string `json:"leap_last_change"`
	StalenessHorizon string `json:"staleness_horizon"`
	HorizonIn        string `json:"horizon_in"`
	HorizonYears     int    `json:"horizon_years"`
	Strict           bool   `json:"strict"`
	EopSource        string `json:"eop_source"`
	EopVersion       string `json:"eop_version"`
	EopEpoch         string `json:"eop_epoch,omitempty"`
}

// ConvertHandler returns the Julian day of the "time" parameter on the
// "scale" parameter. Both default: now and TT.
func (h *Handler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := h.timeParam(w, r)
	if !ok {
		return
	}

	scale := TT
	if param := r.FormValue("scale"); param != "" {
		parsed, err := ParseTimeScale(param)
		if err != nil {
			log.Debugw("parse scale param", "param", param, "error", err)
			writeError(w, http.StatusBadRequest, "unable to parse scale parameter")
			return
		}
		scale = parsed
	}

	opts := []Option{WithRegistry(h.Registry)}
	inst, err := Normalize(t, opts...)
	if err != nil {
		writeConversionError(w, err)
		return
	}

	jd, err := inst.JulianDay(scale, opts...)
	if err != nil {
		writeConversionError(w, err)
		return
	}

	res := convertResponse{
		UTC:       inst.String(),
		Scale:     scale.String(),
		JulianDay: jd.Float(),
		Stale:     inst.Stale(),
		DeltaT:    inst.DeltaT(opts...),
	}
	if dut1, ok := inst.UT1MinusUTC(opts...); ok {
		res.DUT1 = dut1
	}
	writeJSON(w, http.StatusOK, res)
}

// OffsetHandler returns the offset in seconds between the "from" and "to"
// scale parameters at the "time" parameter.
func (h *Handler) OffsetHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := h.timeParam(w, r)
	if !ok {
		return
	}

	var scales [2]TimeScale
	for i, name := range []string{"from", "to"} {
		param := r.FormValue(name)
		if param == "" {
			writeError(w, http.StatusBadRequest, name+" parameter is required")
			return
		}
		parsed, err := ParseTimeScale(param)
		if err != nil {
			log.Debugw("parse scale param", "param", param, "error", err)
			writeError(w, http.StatusBadRequest, "unable to parse "+name+" parameter")
			return
		}
		scales[i] = parsed
	}

	seconds, err := OffsetSeconds(scales[0], scales[1], t, WithRegistry(h.Registry))
	if err != nil {
		writeConversionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, offsetResponse{
		UTC:     t.UTC().Format(time.RFC3339Nano),
		From:    scales[0].String(),
		To:      scales[1].String(),
		Seconds: seconds,
	})
}

// StatusHandler reports the installed providers and staleness settings.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Status(h.Registry))
}

// Status summarizes the providers installed in reg.
func Status(reg *registry.Registry) StatusReport {
	lp := reg.LeapSeconds()
	gate := reg.Gate()
	horizon := gate.Horizon(lp)

	res := StatusReport{
		LeapSource:       lp.Source(),
		LeapVersion:      lp.DataVersion(),
		LeapLastChange:   lp.LastChange().Format(time.RFC3339),
		StalenessHorizon: horizon.Format(time.RFC3339),
		HorizonIn:        humanize.Time(horizon),
		HorizonYears:     gate.HorizonYears(),
		Strict:           gate.Strict(),
		EopSource:        reg.Eop().Source(),
		EopVersion:       reg.Eop().DataVersion(),
	}
	if epoch := reg.Eop().DataEpoch(); !epoch.IsZero() {
		res.EopEpoch = epoch.Format("2006-01-02")
	}
	return res
}

func (h *Handler) timeParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	param := r.FormValue("time")
	if param == "" {
		return currentClock().Now(), true
	}

	t, err := csvtab.ParseTime(param)
	if err != nil {
		log.Debugw("parse time param", "param", param, "error", err)
		writeError(w, http.StatusBadRequest, "unable to parse time parameter")
		return time.Time{}, false
	}
	return t, true
}

func writeConversionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrStaleInstant):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, sentinel.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorw("conversion", "error", err)
		writeError(w, http.StatusInternalServerError, "unable to convert")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorw("encode response", "error", err)
	}
}
