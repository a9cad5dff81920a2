package httpapi

import (
	"database/sql"
	"net/http"

	"bds-pipeline/internal/store"
)

type DataHandler struct {
	DB *sql.DB
}

func (h DataHandler) National(w http.ResponseWriter, r *http.Request) {
	rows, err := store.NationalSeries(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h DataHandler) FirmAge(w http.ResponseWriter, r *http.Request) {
	fage, err := intParam(r, "fage")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_param", "fage must be an integer")
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_param", "year must be an integer")
		return
	}

	rows, err := store.FirmAgeSlice(r.Context(), h.DB, store.FirmAgeFilter{FAGE: fage, Year: year})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (h DataHandler) States(w http.ResponseWriter, r *http.Request) {
	state, err := intParam(r, "state")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_param", "state must be an integer FIPS code")
		return
	}
	year, err := intParam(r, "year")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_param", "year must be an integer")
		return
	}

	rows, err := store.StateSlice(r.Context(), h.DB, store.StateFilter{State: state, Year: year})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "query_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}
