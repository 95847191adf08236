package vader

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestNewDefault(t *testing.T) {
	a := NewDefault()
	if a.LexiconSize() == 0 {
		t.Fatal("Embedded lexicon should not be empty")
	}
	if v, ok := a.Valence("good"); !ok || v != 1.9 {
		t.Errorf("Expected good=1.9, got %v (found=%v)", v, ok)
	}
}

func TestEmbeddedLexicon(t *testing.T) {
	a := NewDefault()

	// 7518 lines; a few tokens such as "lol" and "ok" appear twice
	if n := a.LexiconSize(); n != 7504 {
		t.Errorf("LexiconSize() = %d, want 7504", n)
	}
	if n := len(a.emojiLexicon); n != 1212 {
		t.Errorf("Expected 1212 single-rune emoji, got %d", n)
	}

	for token, want := range map[string]float64{
		"recommend":     1.5,
		"recommended":   0.8,
		"like":          1.5,
		"stunning":      1.6,
		"treat":         1.7,
		"inconvenience": -1.5,
		"terrible":      -2.1,
	} {
		if v, ok := a.Valence(token); !ok || v != want {
			t.Errorf("Valence(%q) = %v (found=%v), want %v", token, v, ok, want)
		}
	}
	for _, token := range []string{"cozy", "comfy", "spotless", "table"} {
		if _, ok := a.Valence(token); ok {
			t.Errorf("%q should not be in the lexicon", token)
		}
	}
}

func TestPolarityScoresReviewWords(t *testing.T) {
	a := NewDefault()

	tests := map[string]float64{
		"recommend":        0.3612,
		"highly recommend": 0.4201,
		"like":             0.3612,
		"stunning":         0.3818,
		"cozy":             0,
	}
	for text, want := range tests {
		if got := a.PolarityScores(text).Compound; got != want {
			t.Errorf("PolarityScores(%q).Compound = %v, want %v", text, got, want)
		}
	}
}

func TestPolarityScoresKnownValues(t *testing.T) {
	a := NewDefault()

	got := a.PolarityScores("The book was good.")
	want := Polarity{Neg: 0, Neu: 0.508, Pos: 0.492, Compound: 0.4404}
	if got != want {
		t.Errorf("PolarityScores = %+v, want %+v", got, want)
	}
}

func TestPolarityScoresSign(t *testing.T) {
	a := NewDefault()

	tests := []struct {
		text string
		sign int
	}{
		{"great location and clean room", 1},
		{"terrible service dirty bathroom", -1},
		{"the book was not good", -1},
		{"at least it isn't a horrible book", 1},
		{"table chair window", 0},
		{"", 0},
	}

	for _, tt := range tests {
		c := a.PolarityScores(tt.text).Compound
		var sign int
		switch {
		case c > 0:
			sign = 1
		case c < 0:
			sign = -1
		}
		if sign != tt.sign {
			t.Errorf("PolarityScores(%q).Compound = %v, want sign %d", tt.text, c, tt.sign)
		}
	}
}

func TestPolarityScoresEmpty(t *testing.T) {
	a := NewDefault()

	for _, text := range []string{"", "   ", "a"} {
		if got := a.PolarityScores(text); got != (Polarity{}) {
			t.Errorf("PolarityScores(%q) = %+v, want all zeros", text, got)
		}
	}

	if got := a.PolarityScores("table"); got.Neu != 1 || got.Compound != 0 {
		t.Errorf("Neutral word should be fully neutral, got %+v", got)
	}
}

func TestPolarityScoresEmphasis(t *testing.T) {
	a := NewDefault()

	plain := a.PolarityScores("The food was good").Compound
	caps := a.PolarityScores("The food was GOOD").Compound
	bang := a.PolarityScores("The food was good!!").Compound
	boosted := a.PolarityScores("The food was very good").Compound

	if caps <= plain {
		t.Errorf("ALL CAPS should add emphasis: caps=%v plain=%v", caps, plain)
	}
	if bang <= plain {
		t.Errorf("Exclamation should add emphasis: bang=%v plain=%v", bang, plain)
	}
	if boosted <= plain {
		t.Errorf("Booster should add emphasis: boosted=%v plain=%v", boosted, plain)
	}

	// all words capitalised is no differential
	if got := a.PolarityScores("THE FOOD WAS GOOD").Compound; got != plain {
		t.Errorf("Uniform caps should not add emphasis: got %v want %v", got, plain)
	}
}

func TestPolarityScoresEmoji(t *testing.T) {
	a := NewDefault()

	if c := a.PolarityScores("😁").Compound; c <= 0 {
		t.Errorf("Expected positive score for smiling emoji, got %v", c)
	}
	if c := a.PolarityScores("stay was fine😢").Compound; c >= a.PolarityScores("stay was fine").Compound {
		t.Errorf("Crying emoji should lower the score, got %v", c)
	}
}

func TestPolaritySumsToOne(t *testing.T) {
	a := NewDefault()

	for _, text := range []string{
		"great location but terrible breakfast",
		"the host was friendly and helpful, rooms were noisy",
		"worst stay ever!!!",
	} {
		p := a.PolarityScores(text)
		if sum := p.Neg + p.Neu + p.Pos; math.Abs(sum-1) > 0.002 {
			t.Errorf("%q: proportions sum to %v", text, sum)
		}
		if p.Compound < -1 || p.Compound > 1 {
			t.Errorf("%q: compound out of range: %v", text, p.Compound)
		}
	}
}

func TestButCheck(t *testing.T) {
	words := []string{"good", "but", "bad"}
	got := butCheck(words, []float64{1, 0, -1})
	want := []float64{0.5, 0, -1.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("butCheck = %v, want %v", got, want)
	}

	// only the first "but" applies
	words = []string{"good", "but", "ok", "but", "bad"}
	got = butCheck(words, []float64{1, 0, 1, 0, -1})
	want = []float64{0.5, 0, 1.5, 0, -1.5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("butCheck with two buts = %v, want %v", got, want)
	}
}

func TestCleanWordsAndEmoticons(t *testing.T) {
	got := CleanWordsAndEmoticons("Make sure you :) or :D today!")
	want := []string{"Make", "sure", "you", ":)", "or", ":D", "today"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanWordsAndEmoticons = %v, want %v", got, want)
	}
}

func TestIsAllCapDiff(t *testing.T) {
	tests := []struct {
		words []string
		want  bool
	}{
		{[]string{"GOOD", "food"}, true},
		{[]string{"GOOD", "FOOD"}, false},
		{[]string{"good", "food"}, false},
		{[]string{":)", "food"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsAllCapDiff(tt.words); got != tt.want {
			t.Errorf("IsAllCapDiff(%v) = %v, want %v", tt.words, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(0); got != 0 {
		t.Errorf("Normalize(0) = %v", got)
	}
	if got := Normalize(1000); got <= 0.99 || got > 1 {
		t.Errorf("Normalize(1000) = %v, want close to 1", got)
	}
	if got := Normalize(-1000); got >= -0.99 || got < -1 {
		t.Errorf("Normalize(-1000) = %v, want close to -1", got)
	}
}

func TestReplacePercentages(t *testing.T) {
	got := ReplacePercentages("prices went up +15% this year")
	if !strings.Contains(got, "xpositivepercentx") {
		t.Errorf("Expected positive placeholder, got %q", got)
	}
	got = ReplacePercentages("occupancy -3.5% lower")
	if !strings.Contains(got, "xnegativepercentx") {
		t.Errorf("Expected negative placeholder, got %q", got)
	}
}

func TestContainsNegation(t *testing.T) {
	if !ContainsNegation([]string{"not"}) {
		t.Error("'not' is a negation")
	}
	if !ContainsNegation([]string{"shouldn't"}) {
		t.Error("'n't' contractions are negations")
	}
	if ContainsNegation([]string{"at", "least"}) {
		t.Error("'at least' is not a negation")
	}
	if ContainsNegation([]string{"good"}) {
		t.Error("'good' is not a negation")
	}
}

func TestPolarityMap(t *testing.T) {
	p := Polarity{Neg: 0.1, Neu: 0.2, Pos: 0.7, Compound: 0.5}
	m := p.Map()
	if len(m) != 4 || m["pos"] != 0.7 || m["compound"] != 0.5 {
		t.Errorf("Unexpected map: %v", m)
	}
}

func TestNewWithFiles(t *testing.T) {
	tmpDir := t.TempDir()
	lexPath := filepath.Join(tmpDir, "lex.txt")
	emojiPath := filepath.Join(tmpDir, "emoji.txt")

	os.WriteFile(lexPath, []byte("yay\t2.0\t0.5\t[2, 2]\nmeh\t-0.5\n"), 0644)
	os.WriteFile(emojiPath, []byte("🎉\tyay\n🏳️‍🌈\tflag\n"), 0644)

	a, err := New(Options{LexiconPath: lexPath, EmojiLexiconPath: emojiPath})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.LexiconSize() != 2 {
		t.Errorf("Expected 2 lexicon entries, got %d", a.LexiconSize())
	}
	if len(a.emojiLexicon) != 1 {
		t.Errorf("Multi-rune emoji should be skipped, got %d entries", len(a.emojiLexicon))
	}
	if c := a.PolarityScores("🎉").Compound; c <= 0 {
		t.Errorf("Custom emoji should score positive, got %v", c)
	}
	if _, ok := a.Valence("good"); ok {
		t.Error("Custom lexicon should replace the embedded one")
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Options{LexiconPath: "/nonexistent/lex.txt"}); err == nil {
		t.Error("Should error on missing lexicon")
	}
	if _, err := New(Options{EmojiLexiconPath: "/nonexistent/emoji.txt"}); err == nil {
		t.Error("Should error on missing emoji lexicon")
	}

	tmpDir := t.TempDir()
	bad := filepath.Join(tmpDir, "bad.txt")
	os.WriteFile(bad, []byte("good\tnotanumber\n"), 0644)
	if _, err := New(Options{LexiconPath: bad}); err == nil {
		t.Error("Should error on malformed valence")
	}

	if _, err := ParseLexicon("justatoken\n"); err == nil {
		t.Error("Should error on line without valence")
	}
	if _, err := ParseEmojiLexicon("😀\n"); err == nil {
		t.Error("Should error on emoji without description")
	}
}

func BenchmarkPolarityScores(b *testing.B) {
	a := NewDefault()
	text := "The host was friendly, the room was NOT clean but the breakfast was very good!!"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.PolarityScores(text)
	}
}
