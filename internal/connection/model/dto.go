package model

// CreateRequest names the participant the caller wants to team up with.
type CreateRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
}

// CreateResponse confirms a stored connection request.
type CreateResponse struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// ListResponse wraps connection requests addressed to the caller.
type ListResponse struct {
	Requests []ConnectionRequest `json:"requests"`
}
