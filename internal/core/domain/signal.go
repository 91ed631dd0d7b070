package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.trai.ch/zerr"
)

// AttemptToken identifies one submitted attempt.
type AttemptToken string

// NewAttemptToken returns a fresh random token.
func NewAttemptToken() AttemptToken {
	return AttemptToken(uuid.NewString())
}

// OutcomeKind tags an outcome event.
type OutcomeKind uint8

const (
	// OutcomeNone marks a notice that says nothing about the attempt.
	OutcomeNone OutcomeKind = iota
	// OutcomeSuccess marks an accepted attempt.
	OutcomeSuccess
	// OutcomeFailure marks a rejected attempt.
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "none"
	}
}

// Signal is an event observed in one observing context.
type Signal interface {
	isSignal()
}

// InputSignal reports that the composed input changed.
type InputSignal struct {
	Value string
}

// SubmitSignal reports that the current input was submitted.
// An empty Token asks the classifier to generate one.
type SubmitSignal struct {
	Token AttemptToken
}

// OutcomeSignal reports the result of a submitted attempt.
type OutcomeSignal struct {
	Kind  OutcomeKind
	Text  string
	Token AttemptToken
}

func (InputSignal) isSignal()   {}
func (SubmitSignal) isSignal()  {}
func (OutcomeSignal) isSignal() {}

var negativeNotice = regexp.MustCompile(`(?i)\b(not (a )?(valid )?word|not in (the )?word ?list|invalid word)\b`)

// ClassifyNotice maps the text of an on-page notice to an outcome.
// Only explicit negative phrases count as a failure.
func ClassifyNotice(text string) OutcomeKind {
	if negativeNotice.MatchString(text) {
		return OutcomeFailure
	}
	return OutcomeNone
}

// ParseSignal parses one line of a signal stream.
//
//	input <text>
//	submit [@token]
//	success [@token]
//	failure [@token]
//	notice <text> [@token]
func ParseSignal(line string) (Signal, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, zerr.Wrap(ErrInvalidSignal, "empty line")
	}

	verb := strings.ToLower(fields[0])
	rest, token := splitToken(fields[1:])

	switch verb {
	case "input":
		return InputSignal{Value: strings.Join(rest, " ")}, nil
	case "submit":
		return SubmitSignal{Token: token}, nil
	case "success":
		return OutcomeSignal{Kind: OutcomeSuccess, Token: token}, nil
	case "failure":
		return OutcomeSignal{Kind: OutcomeFailure, Token: token}, nil
	case "notice":
		text := strings.Join(rest, " ")
		return OutcomeSignal{Kind: ClassifyNotice(text), Text: text, Token: token}, nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrInvalidSignal, "unknown verb"), "verb", verb)
	}
}

func splitToken(fields []string) ([]string, AttemptToken) {
	if n := len(fields); n > 0 && strings.HasPrefix(fields[n-1], "@") && len(fields[n-1]) > 1 {
		return fields[:n-1], AttemptToken(fields[n-1][1:])
	}
	return fields, ""
}
