// Package handler — export.go implements GET /trips/{tripID}/export.
// Returns the trip's rooms and stays as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name",
	"room_id", "room_name", "room_capacity",
	"person_name", "start_date", "end_date", "nights",
}

// GetTripExport handles GET /trips/{tripID}/export.
// One row per stay, rooms in display order; a room with no stays still
// contributes one row so the export lists every room.
func (s *Server) GetTripExport(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "tripID")
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}

	rows, err := s.export.Export(r.Context(), tripID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		s.writeCSV(w, rows)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

// writeCSV streams the export rows as text/csv.
func (s *Server) writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="export.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		s.logger.Error("writing csv export failed", "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			s.logger.Error("writing csv export failed", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.logger.Error("flushing csv export failed", "error", err)
	}
}

// csvRecord encodes an export row as a flat string slice.
// Empty stay fields stay empty strings for rooms without assignments.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.RoomID,
		r.RoomName,
		strconv.Itoa(r.RoomCapacity),
		r.PersonName,
		r.StartDate,
		r.EndDate,
		strconv.Itoa(r.Nights),
	}
}
