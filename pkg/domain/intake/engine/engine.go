// Package engine drives a scripted intake conversation.
//
// The engine itself is stateless: callers own a State value and pass it
// into every Submit, getting the successor state back. One State belongs
// to one conversation; two engines over the same script given the same
// inputs produce the same outputs, whatever surface hosts them.
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sklowrylaw/website/pkg/domain/intake/script"
)

// State is the progress of one conversation.
type State struct {
	// Step indexes the question currently being asked.
	Step int `json:"step"`

	// Answers holds the accepted value per script field.
	Answers map[string]string `json:"answers"`
}

// NewState starts a conversation at the first question with no answers.
func NewState() State {
	return State{Step: 0, Answers: map[string]string{}}
}

// Result is what the conversation says back after an input.
type Result struct {
	// Prompt is the text to show. While the conversation runs it is the
	// current or next question; on completion it is empty.
	Prompt string

	// Choices are quick options for the prompted question, if any.
	Choices []string

	// ErrorText is set instead of advancing when input was rejected.
	ErrorText string

	// Done reports that every question is answered.
	Done bool

	// Summary is the labeled recap of all answers, set when Done.
	Summary string
}

type Engine struct {
	questions []script.QuestionSpec
}

var ErrScript = errors.New("invalid conversation script")

// New checks the script and builds an engine for it.
func New(questions []script.QuestionSpec) (*Engine, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrScript)
	}

	answered := map[string]bool{}
	for i, q := range questions {
		if q.Field == "" {
			return nil, fmt.Errorf("%w: question %d has no field", ErrScript, i)
		}
		if answered[q.Field] {
			return nil, fmt.Errorf("%w: field %q is asked twice", ErrScript, q.Field)
		}
		for _, ref := range placeholdersIn(q.Prompt) {
			if !answered[ref] {
				return nil, fmt.Errorf(
					"%w: question %q references {%s} before it is answered",
					ErrScript, q.Field, ref,
				)
			}
		}
		answered[q.Field] = true
	}

	return &Engine{questions: questions}, nil
}

// Start renders the first question of a fresh conversation.
func (e *Engine) Start() Result {
	return e.render(NewState())
}

// Submit feeds one user input into the conversation.
//
//   - blank input: the state comes back unchanged and the current
//     question is re-presented;
//   - rejected input: the state comes back unchanged with the step's
//     fixed error text;
//   - accepted input: the (transformed) value is stored, the step
//     advances, and the next question — or the completion summary — is
//     returned.
func (e *Engine) Submit(st State, input string) (State, Result) {
	if st.Step >= len(e.questions) {
		return st, e.complete(st)
	}

	if strings.TrimSpace(input) == "" {
		return st, e.render(st)
	}

	q := e.questions[st.Step]
	if q.Validate != nil && !q.Validate(input) {
		return st, Result{ErrorText: q.ErrorText}
	}

	value := input
	if q.Transform != nil {
		value = q.Transform(value)
	}

	next := State{Step: st.Step + 1, Answers: make(map[string]string, len(st.Answers)+1)}
	for k, v := range st.Answers {
		next.Answers[k] = v
	}
	next.Answers[q.Field] = value

	if next.Step >= len(e.questions) {
		return next, e.complete(next)
	}
	return next, e.render(next)
}

func (e *Engine) render(st State) Result {
	q := e.questions[st.Step]

	prompt := q.Prompt
	for field, value := range st.Answers {
		prompt = strings.ReplaceAll(prompt, "{"+field+"}", value)
	}

	return Result{Prompt: prompt, Choices: q.Choices}
}

func (e *Engine) complete(st State) Result {
	labels := script.Labels()

	b := &strings.Builder{}
	for i, q := range e.questions {
		label := labels[q.Field]
		if label == "" {
			label = q.Field
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s: %s", label, st.Answers[q.Field])
	}

	return Result{Done: true, Summary: b.String()}
}

func placeholdersIn(prompt string) []string {
	found := []string{}
	rest := prompt
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			return found
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			return found
		}
		found = append(found, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
}
