package advisor

import (
	"errors"
	"fmt"
	"strings"

	"routine-bot/internal/timeslot"
)

const directivePrefix = "ADD:"

// ErrBadDirective marks a reply that matched the ADD: prefix but does not
// follow the directive grammar.
var ErrBadDirective = errors.New("malformed add directive")

type ReplyKind int

const (
	ReplyText ReplyKind = iota
	ReplyAdd
)

// AddDirective is the structured form of the single-line grammar
// "ADD: <name> | <HH:MM>-<HH:MM>".
type AddDirective struct {
	Name      string
	StartText string
	EndText   string
}

// RangeText reassembles the original HH:MM-HH:MM text for parsing and for
// echoing back in the confirmation message.
func (d AddDirective) RangeText() string {
	return d.StartText + "-" + d.EndText
}

// Reply is the classified advisory output: either free text to show verbatim
// or a validated add-directive.
type Reply struct {
	Kind      ReplyKind
	Text      string
	Directive AddDirective
}

// ParseReply classifies raw advisory output. A reply without the ADD: prefix
// is free text. With the prefix, the remainder must split on "|" into a
// non-empty name and a well-formed time range; anything else is
// ErrBadDirective, surfaced the same way as a service failure.
func ParseReply(answer string) (Reply, error) {
	if !strings.HasPrefix(answer, directivePrefix) {
		return Reply{Kind: ReplyText, Text: answer}, nil
	}
	rest := strings.TrimPrefix(answer, directivePrefix)
	parts := strings.SplitN(rest, "|", 2)
	if len(parts) != 2 {
		return Reply{}, fmt.Errorf("%w: missing separator", ErrBadDirective)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Reply{}, fmt.Errorf("%w: empty name", ErrBadDirective)
	}
	rangeText := strings.TrimSpace(parts[1])
	if _, _, err := timeslot.ParseRange(rangeText); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrBadDirective, err)
	}
	times := strings.SplitN(rangeText, "-", 2)
	return Reply{
		Kind: ReplyAdd,
		Directive: AddDirective{
			Name:      name,
			StartText: times[0],
			EndText:   times[1],
		},
	}, nil
}
