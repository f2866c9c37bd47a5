package mux

import "net/http"

// getState returns what a spectator may see, with no hands
func (m *Mux) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.dealer.Spectate(r.Context())
		if err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, err)
			return
		}

		writeJSON(w, http.StatusOK, state)
	}
}
