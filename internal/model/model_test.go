package model

import "testing"

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal name", "normal name"},
		{`back\slash`, "backslash"},
		{"for/ward", "forward"},
		{"co:lon", "colon"},
		{"st*ar", "star"},
		{"que?stion", "question"},
		{`qu"ote`, "quote"},
		{"an<gle>s", "angles"},
		{"pi|pe", "pipe"},
		{"  padded  ", "padded"},
		{`all\/:*?"<>|gone`, "allgone"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SafeFileName(tt.input); got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTargetFileName(t *testing.T) {
	album := &Album{Name: "Album", Artist: "IU"}
	track := NewTrack(album, 3, 1, "Love wins all?", "IU", "123")

	want := "IU-03-Love wins all"
	if got := TargetFileName(track); got != want {
		t.Errorf("TargetFileName() = %q, want %q", got, want)
	}
}

func TestTargetFileName_TwoDigitPadding(t *testing.T) {
	album := &Album{Artist: "A"}
	track := NewTrack(album, 12, 1, "T", "A", "")

	if got := TargetFileName(track); got != "A-12-T" {
		t.Errorf("TargetFileName() = %q, want %q", got, "A-12-T")
	}
}

func TestNewTrack_CopiesAlbumFields(t *testing.T) {
	album := &Album{Name: "Original Name", Artist: "Original Artist", Genre: "Ballad"}
	track := NewTrack(album, 1, 1, "Title", "Artist", "")

	// The copies must be independent of later album mutation.
	album.Name = "Changed"
	album.Artist = "Changed"
	album.Genre = "Changed"

	if track.AlbumName != "Original Name" {
		t.Errorf("AlbumName = %q, want %q", track.AlbumName, "Original Name")
	}
	if track.AlbumArtist != "Original Artist" {
		t.Errorf("AlbumArtist = %q, want %q", track.AlbumArtist, "Original Artist")
	}
	if track.Genre != "Ballad" {
		t.Errorf("Genre = %q, want %q", track.Genre, "Ballad")
	}
}
