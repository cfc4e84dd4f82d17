package news

import "testing"

func TestContentID(t *testing.T) {
	t.Run("stable across calls", func(t *testing.T) {
		a := ContentID("근로기준법 개정안 입법예고", "https://example.com/1")
		b := ContentID("근로기준법 개정안 입법예고", "https://example.com/1")
		if a != b {
			t.Errorf("ContentID not stable: %s != %s", a, b)
		}
	})

	t.Run("differs for different pairs", func(t *testing.T) {
		pairs := [][2]string{
			{"title", "https://example.com/1"},
			{"title", "https://example.com/2"},
			{"other", "https://example.com/1"},
			{"", "https://example.com/1"},
			{"title", ""},
		}
		seen := make(map[string][2]string)
		for _, p := range pairs {
			id := ContentID(p[0], p[1])
			if prev, ok := seen[id]; ok {
				t.Errorf("collision between %v and %v", prev, p)
			}
			seen[id] = p
		}
	})

	t.Run("length prefix disambiguates field boundary", func(t *testing.T) {
		if ContentID("ab", "c") == ContentID("a", "bc") {
			t.Error("field boundary ambiguous: (ab,c) == (a,bc)")
		}
	})

	t.Run("hex encoded sha256", func(t *testing.T) {
		id := ContentID("title", "link")
		if len(id) != 64 {
			t.Errorf("unexpected id length %d, want 64", len(id))
		}
	})
}
