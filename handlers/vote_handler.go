package handlers

import (
	"net/http"

	"github.com/trungvq/football-predictions/middleware"
	"github.com/trungvq/football-predictions/services"
)

type VoteHandler struct {
	voteService services.VoteService
}

func NewVoteHandler(voteService services.VoteService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
	}
}

func (h *VoteHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input struct {
		Teams []string `json:"teams"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	vote, err := h.voteService.VoteFavoriteTeams(r.Context(), userID, input.Teams)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, vote, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *VoteHandler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	vote, err := h.voteService.MyVote(r.Context(), userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, vote, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
