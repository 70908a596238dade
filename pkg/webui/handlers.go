package webui

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NotCoffee418/gws_dashboard/pkg/chartrender"
	"github.com/NotCoffee418/gws_dashboard/pkg/chartspec"
	"github.com/NotCoffee418/gws_dashboard/pkg/dashboard"
	"github.com/NotCoffee418/gws_dashboard/pkg/types"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// selectionFromQuery reads ?mode=&sensor=&plant1=&plant2=, plant parameters may repeat.
func selectionFromQuery(r *http.Request) (types.Selection, error) {
	q := r.URL.Query()
	mode, err := dashboard.ParseMode(q.Get("mode"))
	if err != nil {
		return types.Selection{}, err
	}
	return types.Selection{
		Mode:        mode,
		SensorID:    q.Get("sensor"),
		PlantTypes1: q["plant1"],
		PlantTypes2: q["plant2"],
	}, nil
}

func (s *Server) viewHandler(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	view, err := s.pipeline.Build(sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) describeHandler(w http.ResponseWriter, r *http.Request) {
	src, err := s.pipeline.Source()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, describeResponse{
		Path:      s.pipeline.SourcePath,
		Rows:      src.Len(),
		Columns:   src.Columns,
		Options:   dashboard.OptionsFor(src),
		Summaries: src.Describe(),
	})
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	measurement, ok := chartspec.MeasurementByKey(vars["measurement"])
	if !ok {
		writeJSON(w, http.StatusNotFound, dashboard.ErrorResponse{Error: "unknown measurement " + vars["measurement"]})
		return
	}
	format, err := chartrender.ParseFormat(vars["format"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dashboard.ErrorResponse{Error: err.Error()})
		return
	}
	sel, err := selectionFromQuery(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	prepared, _, err := s.pipeline.PreparedTable(sel)
	if err != nil {
		s.writeError(w, err)
		return
	}
	spec, err := chartspec.Project(prepared, measurement.Column, measurement.Title)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := chartrender.Render(spec, format, w, s.chartWidth, s.chartHeight); err != nil {
		// Headers are gone already, nothing left but logging
		s.logger.Error("Failed to render chart", zap.String("chart", measurement.Key), zap.Error(err))
	}
}

// writeError maps pipeline errors to a status code with a single user-visible message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, dashboard.ErrUnknownMode) {
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}
	writeJSON(w, status, dashboard.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
