package match

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pizza", "pizza"},
		{"  Jon   Smith\t", "jon smith"},
		{"ＰＩＺＺＡ", "pizza"}, // fullwidth folds under NFKC
		{"Straße", "strasse"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		atLeast int
		below   int
	}{
		{name: "case only", a: "Pizza", b: "pizza", atLeast: 100, below: 101},
		{name: "whitespace only", a: " cucumber ", b: "cucumber", atLeast: 100, below: 101},
		{name: "reordered tokens", a: "Jon Smith", b: "Smith, Jon", atLeast: 90, below: 101},
		{name: "single typo", a: "broccoli", b: "brocoli", atLeast: 80, below: 101},
		{name: "hyphen vs space", a: "bok-choy", b: "bok choy", atLeast: 100, below: 101},
		{name: "unrelated", a: "Jon Smith", b: "Zzyx", atLeast: 0, below: 20},
		{name: "unrelated foods", a: "cheeseburger", b: "pizza", atLeast: 0, below: 80},
		{name: "punctuation only", a: "!!!", b: "abc", atLeast: 0, below: 1},
		{name: "empty", a: "", b: "abc", atLeast: 0, below: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if got < tt.atLeast || got >= tt.below {
				t.Errorf("Score(%q, %q) = %d, want in [%d, %d)", tt.a, tt.b, got, tt.atLeast, tt.below)
			}
		})
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Jon Smith", "Smith, Jon"},
		{"cucumber", "cucumber salad"},
		{"broccoli", "brocoli"},
		{"gretchen", "gretch"},
	}
	for _, p := range pairs {
		if ab, ba := Score(p[0], p[1]), Score(p[1], p[0]); ab != ba {
			t.Errorf("Score(%q, %q) = %d but reversed = %d", p[0], p[1], ab, ba)
		}
	}
}

func TestScoreRange(t *testing.T) {
	names := []string{"a", "pizza", "Jon Smith", "x y z", "cheeseburger deluxe with fries", "小白菜"}
	for _, a := range names {
		for _, b := range names {
			if s := Score(a, b); s < 0 || s > 100 {
				t.Errorf("Score(%q, %q) = %d out of range", a, b, s)
			}
		}
	}
}

func TestMatcherBest(t *testing.T) {
	m := New(DefaultThreshold)

	idx, score, ok := m.Best("Smith, Jon", []string{"Jane Doe", "Jon Smith", "Zzyx"})
	if !ok || idx != 1 {
		t.Fatalf("Best() = (%d, %d, %v), want idx 1", idx, score, ok)
	}
	if !m.Accept(score) {
		t.Errorf("Accept(%d) = false, want true", score)
	}

	if _, _, ok := m.Best("anything", nil); ok {
		t.Error("Best() on empty candidates should report ok=false")
	}
}

func TestMatcherBestTiePrefersEarliest(t *testing.T) {
	m := New(DefaultThreshold)
	idx, _, ok := m.Best("broccoli", []string{"brocoli", "brocoli", "brocolli"})
	if !ok || idx != 0 {
		t.Errorf("Best() idx = %d, want 0", idx)
	}
}

func TestMatcherThresholdClamp(t *testing.T) {
	if got := New(150).Threshold(); got != 100 {
		t.Errorf("New(150).Threshold() = %d, want 100", got)
	}
	if got := New(-3).Threshold(); got != 0 {
		t.Errorf("New(-3).Threshold() = %d, want 0", got)
	}
}

func TestMatcherRankN(t *testing.T) {
	m := New(DefaultThreshold)
	got := m.RankN("pizza", []string{"cheeseburger", "Pizza", "pizzas", "broccoli"}, 2)
	if len(got) != 2 {
		t.Fatalf("RankN() returned %d candidates, want 2", len(got))
	}
	if got[0].Name != "Pizza" || got[0].Score != 100 {
		t.Errorf("RankN()[0] = %+v, want Pizza/100", got[0])
	}
	if got[1].Name != "pizzas" {
		t.Errorf("RankN()[1] = %+v, want pizzas", got[1])
	}
	if all := m.Rank("pizza", []string{"a", "b", "c"}); len(all) != 3 {
		t.Errorf("Rank() returned %d candidates, want 3", len(all))
	}
}
