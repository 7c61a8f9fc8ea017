package lyrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Line is one timed lyrics line: the text to display and the playback
// offset at which it becomes current.
//
// Sequences produced by a well-formed source are non-decreasing in
// OffsetMS, but Parse does not enforce that; consumers must tolerate
// out-of-order input.
type Line struct {
	Text     string
	OffsetMS int
}

// linePattern matches a timed lyrics line: two-digit minutes, two-digit
// seconds, and a 2- or 3-digit fractional field.
var linePattern = regexp.MustCompile(`^\[(\d{2}):(\d{2})\.(\d{2,3})\](.*)$`)

// Parse converts LRC text into timed lines. Lines that do not match the
// timestamp grammar are silently dropped.
//
// A 2-digit fractional field is centiseconds and is scaled to form a
// millisecond value; a 3-digit field is milliseconds as-is:
//
//	"[00:12.34]text"  -> offset 12340
//	"[00:12.340]text" -> offset 12340
func Parse(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		m := linePattern.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		min, _ := strconv.Atoi(m[1])
		sec, _ := strconv.Atoi(m[2])
		frac, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			frac *= 10
		}
		lines = append(lines, Line{
			Text:     strings.TrimSpace(m[4]),
			OffsetMS: min*60000 + sec*1000 + frac,
		})
	}
	return lines
}

// Render formats timed lines as LRC text, one line per entry, joined by
// newlines without a trailing newline.
//
// The fractional field is always two-digit centiseconds with the
// millisecond remainder truncated, because that is the format the target
// player consumes. Render is therefore lossy for 3-digit-millisecond
// input: parse(render(parse(x))) is idempotent but render alone drops
// sub-centisecond precision.
func Render(lines []Line) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, fmt.Sprintf("[%02d:%02d.%02d]%s",
			l.OffsetMS/60000,
			l.OffsetMS%60000/1000,
			l.OffsetMS%1000/10,
			l.Text))
	}
	return strings.Join(out, "\n")
}
