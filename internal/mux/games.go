package mux

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"literature-server/pkg/record"
)

// bounds on a page of recorded games
const (
	gamesPerPage    = 25
	maxGamesPerPage = 100
)

type gamesPage struct {
	start int64
	rows  int
}

// parseGamesPage reads ?start= and ?rows= from the request
func parseGamesPage(r *http.Request) (gamesPage, error) {
	page := gamesPage{rows: gamesPerPage}

	if s := r.FormValue("start"); s != "" {
		start, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return gamesPage{}, fmt.Errorf("invalid start: %q", s)
		}

		if start < 0 {
			return gamesPage{}, errors.New("start cannot be less than zero")
		}

		page.start = start
	}

	if s := r.FormValue("rows"); s != "" {
		rows, err := strconv.Atoi(s)
		if err != nil {
			return gamesPage{}, fmt.Errorf("invalid rows: %q", s)
		}

		switch {
		case rows <= 0:
			return gamesPage{}, errors.New("rows must be greater than zero")
		case rows > maxGamesPerPage:
			return gamesPage{}, fmt.Errorf("rows cannot be greater than %d", maxGamesPerPage)
		}

		page.rows = rows
	}

	return page, nil
}

// getGames lists recorded games, newest first
func (m *Mux) getGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := parseGamesPage(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if m.games == nil {
			writeJSON(w, http.StatusOK, []*record.Game{})
			return
		}

		games, err := m.games.Recent(r.Context(), page.start, page.rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, games)
	}
}
