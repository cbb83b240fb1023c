package entry

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Happy", "happy"},
		{"trim", "  calm  ", "calm"},
		{"collapse whitespace", "coffee   shop\tdowntown", "coffee shop downtown"},
		{"empty", "", ""},
		{"only whitespace", "   \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainText_StripsMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "# Morning pages", "Morning pages"},
		{"emphasis", "felt *really* good today", "felt really good today"},
		{"strong", "a **great** walk", "a great walk"},
		{"link text kept", "[the park](https://example.com) was quiet", "the park was quiet"},
		{"paragraphs separated", "first thought\n\nsecond thought", "first thought second thought"},
		{"list items", "- coffee\n- journal\n- walk", "coffee journal walk"},
		{"plain passthrough", "nothing fancy here", "nothing fancy here"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlainText_KeepsCodeBlockContent(t *testing.T) {
	got := PlainText("thought about this snippet\n\n```\nx := 1\n```")
	want := "thought about this snippet x := 1"
	if got != want {
		t.Errorf("PlainText() = %q, want %q", got, want)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"one", 1},
		{"a longer sentence with six words", 6},
		{"  padded   spacing  ", 2},
	}

	for _, tt := range tests {
		if got := CountWords(tt.input); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCountChars_MultiByte(t *testing.T) {
	if got := CountChars("héllo"); got != 5 {
		t.Errorf("CountChars(héllo) = %d, want 5", got)
	}
	if got := CountChars("日記"); got != 2 {
		t.Errorf("CountChars(日記) = %d, want 2", got)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short", 10); got != "short" {
		t.Errorf("Preview(short, 10) = %q", got)
	}
	if got := Preview("a very long line of text", 6); got != "a very..." {
		t.Errorf("Preview() = %q, want %q", got, "a very...")
	}
	if got := Preview("text", 0); got != "" {
		t.Errorf("Preview(text, 0) = %q, want empty", got)
	}
	// Never splits a multi-byte rune
	if got := Preview("日記日記", 2); got != "日記..." {
		t.Errorf("Preview(日記日記, 2) = %q, want %q", got, "日記...")
	}
}

func TestToSummary(t *testing.T) {
	mood := "calm"
	e := &Entry{
		ID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Content:   "# Hello",
		PlainText: "Hello",
		Mood:      &mood,
		WordCount: 1,
		CreatedAt: 1700000000000,
		UpdatedAt: 1700000000000,
	}

	s := e.ToSummary()
	if s.ID != e.ID {
		t.Errorf("ID = %q, want %q", s.ID, e.ID)
	}
	if s.Preview != "Hello" {
		t.Errorf("Preview = %q, want %q", s.Preview, "Hello")
	}
	if s.Mood == nil || *s.Mood != "calm" {
		t.Errorf("Mood = %v, want calm", s.Mood)
	}
}
