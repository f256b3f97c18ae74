package script

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Command is a parsed statement. The set of implementations is closed:
// Say, Fight, SetPlayer, Select, BlockMarker and Unrecognized.
type Command interface {
	command()
}

// Say prints a line of dialogue and optionally pauses afterwards.
type Say struct {
	Text    string
	Speaker string
	Delay   time.Duration
}

// Fight starts combat. HP and Damage are kept as written and only
// converted to integers when the fight runs.
type Fight struct {
	HP     string
	Damage string
	Name   string
}

// SetPlayer changes player stats. Each field is either an integer
// literal or an "add N" increment.
type SetPlayer struct {
	HP     string
	Damage string
}

// Select offers the player a numbered choice.
type Select struct {
	Options []string
}

// BlockMarker introduces the body of a select branch ("N:").
type BlockMarker struct {
	Number int
}

// Unrecognized is any statement that matched no rule. It is a no-op.
type Unrecognized struct {
	Text string
}

func (Say) command()          {}
func (Fight) command()        {}
func (SetPlayer) command()    {}
func (Select) command()       {}
func (BlockMarker) command()  {}
func (Unrecognized) command() {}

var (
	sayWithDelay = regexp.MustCompile(`^say\((.*?),\s*(.*?),\s*(\d+(?:\.\d+)?)\)`)
	sayPlain     = regexp.MustCompile(`^say\((.*?),\s*(.*?)\)`)
	fightRe      = regexp.MustCompile(`^fight\((.*?),\s*(.*?),\s*(.*?)\)`)
	playerRe     = regexp.MustCompile(`^player\((.*?),\s*(.*?)\)`)
	markerRe     = regexp.MustCompile(`^\s*(\d+):\s*$`)
)

const selectPrefix = "select("

// Parse converts one statement into a Command. Parsing never fails;
// text that matches no rule comes back as Unrecognized.
//
// The richer say form is tried before the two-argument one, so a
// trailing delay is only recognised when it is a plain decimal number.
func Parse(text string) Command {
	switch {
	case strings.HasPrefix(text, "say("):
		if m := sayWithDelay.FindStringSubmatch(text); m != nil {
			secs, err := strconv.ParseFloat(m[3], 64)
			if err == nil {
				return Say{Text: m[1], Speaker: m[2], Delay: secondsToDuration(secs)}
			}
		}
		if m := sayPlain.FindStringSubmatch(text); m != nil {
			return Say{Text: m[1], Speaker: m[2]}
		}
	case strings.HasPrefix(text, "fight("):
		if m := fightRe.FindStringSubmatch(text); m != nil {
			return Fight{HP: m[1], Damage: m[2], Name: m[3]}
		}
	case strings.HasPrefix(text, "player("):
		if m := playerRe.FindStringSubmatch(text); m != nil {
			return SetPlayer{HP: m[1], Damage: m[2]}
		}
	case strings.HasPrefix(text, selectPrefix):
		rest := text[len(selectPrefix):]
		if end := closingParen(rest); end >= 0 {
			return Select{Options: splitTopLevel(rest[:end])}
		}
	default:
		if m := markerRe.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if errors.Is(err, strconv.ErrRange) {
				// still a block boundary; no choice can reach it
				n = math.MaxInt
			} else if err != nil {
				break
			}
			return BlockMarker{Number: n}
		}
	}
	return Unrecognized{Text: text}
}

// secondsToDuration converts a delay, saturating at the longest
// representable duration.
func secondsToDuration(secs float64) time.Duration {
	d := secs * float64(time.Second)
	if d >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// ParseAll parses every statement in order.
func ParseAll(stmts []Statement) []Command {
	cmds := make([]Command, len(stmts))
	for i, s := range stmts {
		cmds[i] = Parse(s.Text)
	}
	return cmds
}
