package mux

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Seated  int    `json:"seated"`
}

// getHealth reports OK while the dealer's run loop answers
func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.dealer.Spectate(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "UNAVAILABLE",
				Version: m.version,
			})
			return
		}

		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "OK",
			Version: m.version,
			Seated:  state.Clients,
		})
	}
}
