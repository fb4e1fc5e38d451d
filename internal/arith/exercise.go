// Package arith generates seeded whole-number arithmetic drills.
package arith

import (
	"fmt"
	"time"

	"github.com/abhisek/fractiz/internal/lessons"
)

// Operation is one of the four basic operations.
type Operation string

const (
	OpAdd      Operation = "suma"
	OpSubtract Operation = "resta"
	OpMultiply Operation = "multiplicacion"
	OpDivide   Operation = "division"
)

// AllOperations returns the operations in draw order.
func AllOperations() []Operation {
	return []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide}
}

// Symbol returns the operator as shown in a question.
func (o Operation) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

// Label returns the learner-facing name.
func (o Operation) Label() string {
	switch o {
	case OpAdd:
		return "Suma"
	case OpSubtract:
		return "Resta"
	case OpMultiply:
		return "Multiplicación"
	case OpDivide:
		return "División"
	default:
		return string(o)
	}
}

// Exercise is one generated drill item. UserAnswer and Correct are nil
// until the exercise is answered.
type Exercise struct {
	ID         string             `json:"id"`
	Operation  Operation          `json:"operationType"`
	Difficulty lessons.Difficulty `json:"difficulty"`
	Question   string             `json:"question"`
	Answer     int                `json:"answer"`
	Timestamp  time.Time          `json:"timestamp"`
	Solved     bool               `json:"solved"`
	UserAnswer *int               `json:"userAnswer,omitempty"`
	Correct    *bool              `json:"correct,omitempty"`
}

// Record stores the learner's answer and reports whether it is correct.
// Answering again overwrites the previous attempt.
func (e *Exercise) Record(answer int) bool {
	correct := answer == e.Answer
	e.UserAnswer = &answer
	e.Correct = &correct
	e.Solved = true
	return correct
}

// IsCorrect reports whether the exercise was answered correctly.
func (e Exercise) IsCorrect() bool {
	return e.Correct != nil && *e.Correct
}

func formatQuestion(a int, op Operation, b int) string {
	return fmt.Sprintf("%d %s %d = ?", a, op.Symbol(), b)
}
