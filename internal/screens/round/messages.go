package round

import (
	rnd "github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/scoring"
)

// CompletedMsg is sent once the last question has been submitted.
type CompletedMsg struct {
	SessionID   string
	Submissions []rnd.Submission
	Result      *scoring.Result
	Err         error
}

// AbandonedMsg is sent when the player quits mid-round.
type AbandonedMsg struct {
	SessionID string
	Answered  int
	Total     int
}
