package model

// CreateRequest is the payload for requesting to join a team.
// The requester is always the authenticated caller.
type CreateRequest struct {
	TeamID string `json:"team_id" binding:"required"`
}

// CreateResponse confirms a stored join request.
type CreateResponse struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// ManageRequest is a leader's decision on a join request.
type ManageRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Action    Action `json:"action" binding:"required"`
}

// ManageResponse reports the outcome of a decision. UserAlreadyInTeam is set
// when the requester had joined another team and the request was removed.
type ManageResponse struct {
	OK                bool   `json:"ok"`
	Status            Status `json:"status,omitempty"`
	UserAlreadyInTeam bool   `json:"user_already_in_team,omitempty"`
	Message           string `json:"message"`
}

// ListResponse wraps pending requests for the caller's team.
type ListResponse struct {
	Requests []JoinRequest `json:"requests"`
}

// RequestedTeamsResponse lists the teams the caller has pending requests for.
type RequestedTeamsResponse struct {
	RequestedTeamIDs []string `json:"requested_team_ids"`
}
