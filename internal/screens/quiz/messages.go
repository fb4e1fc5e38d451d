package quiz

import (
	sess "github.com/abhisek/fractiz/internal/session"
)

// quizReadyMsg is sent when the questions have been generated.
type quizReadyMsg struct {
	Quiz *sess.Quiz
	Err  error
}

// quizDoneMsg is sent once the quiz is finished and its progress stored.
type quizDoneMsg struct {
	Summary *sess.Summary
	Outcome sess.Outcome
	Err     error
}
