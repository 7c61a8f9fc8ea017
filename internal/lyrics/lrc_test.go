package lyrics

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Line
	}{
		{
			name:  "three digit fraction is milliseconds",
			input: "[00:12.340]Hello there",
			want:  []Line{{Text: "Hello there", OffsetMS: 12340}},
		},
		{
			name:  "two digit fraction is centiseconds",
			input: "[00:12.34]Hello there",
			want:  []Line{{Text: "Hello there", OffsetMS: 12340}},
		},
		{
			name:  "non matching lines dropped",
			input: "not a lyric line\n[00:01.00]kept\n[artist: meta]",
			want:  []Line{{Text: "kept", OffsetMS: 1000}},
		},
		{
			name:  "surrounding whitespace tolerated",
			input: "  [01:05.00]  spaced out  ",
			want:  []Line{{Text: "spaced out", OffsetMS: 65000}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	lines := []Line{
		{Text: "hello", OffsetMS: 1234},
		{Text: "world", OffsetMS: 65000},
	}

	want := "[00:01.23]hello\n[01:05.00]world"
	if got := Render(lines); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_NoTrailingNewline(t *testing.T) {
	got := Render([]Line{{Text: "only", OffsetMS: 0}})
	if got != "[00:00.00]only" {
		t.Errorf("Render() = %q", got)
	}
}

// Render truncates to centiseconds, so a reparse loses sub-centisecond
// precision exactly once and is stable afterwards.
func TestRoundTrip_CentisecondTruncation(t *testing.T) {
	lines := []Line{
		{Text: "hello", OffsetMS: 1234},
		{Text: "world", OffsetMS: 65000},
	}

	got := Parse(Render(lines))
	want := []Line{
		{Text: "hello", OffsetMS: 1230},
		{Text: "world", OffsetMS: 65000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parse(render(x)) = %v, want %v", got, want)
	}

	again := Parse(Render(got))
	if !reflect.DeepEqual(again, got) {
		t.Errorf("second round trip changed data: %v != %v", again, got)
	}
}
