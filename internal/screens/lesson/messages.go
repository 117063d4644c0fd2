package lesson

import (
	"github.com/abhisek/learnpath/internal/progress"
	"github.com/abhisek/learnpath/internal/session"
)

// lessonCompletedMsg is sent once the session is completed and the progress
// engine has recorded it.
type lessonCompletedMsg struct {
	Result     session.Result
	Profile    progress.UserProfile
	Completion progress.Completion
}

// completeFailedMsg is sent when the session refuses to complete.
type completeFailedMsg struct {
	Err error
}
