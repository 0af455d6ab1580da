package model

import "github.com/festy23/hackathon_teams/internal/apperr"

// ErrBroadcastFailed indicates the mail server did not accept the broadcast.
var ErrBroadcastFailed = apperr.New(apperr.KindUnavailable, "BROADCAST_FAILED", "failed to send emails")
