package server

import "net/http"

func (s *Server) handleRewardsSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.deps.Rewards.Summary(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError, "An error occurred")
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Rewards.Recommend(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway, "Could not get recommendations at this time.")
		return
	}
	respondJSON(w, http.StatusOK, out)
}
