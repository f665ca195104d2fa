package chunker

import (
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	cases := []string{"", "   ", "\n\t\n", " \r\n "}
	for _, c := range cases {
		if got := Split(c, 1000, 200); got != nil {
			t.Errorf("Split(%q) = %v, want nil", c, got)
		}
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	text := "  A short business plan.  "
	got := Split(text, 1000, 200)
	if len(got) != 1 {
		t.Fatalf("got %d chunks, want 1", len(got))
	}
	if got[0] != "A short business plan." {
		t.Errorf("chunk = %q, want trimmed text", got[0])
	}
}

func TestSplit_UnbrokenTextWindows(t *testing.T) {
	// no sentence endings or whitespace anywhere, so every boundary
	// stays at the full window and steps advance by chunkSize-overlap
	text := strings.Repeat("a", 2500)
	got := Split(text, 1000, 200)

	wantLens := []int{1000, 1000, 900}
	if len(got) != len(wantLens) {
		t.Fatalf("got %d chunks, want %d", len(got), len(wantLens))
	}
	for i, want := range wantLens {
		if len(got[i]) != want {
			t.Errorf("chunk %d length = %d, want %d", i, len(got[i]), want)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("The startup raised a funding round. ", 200)
	a := Split(text, 1000, 200)
	b := Split(text, 1000, 200)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplit_PrefersSentenceBoundary(t *testing.T) {
	// a sentence ends 40 chars before the window edge, well within the
	// 100-char lookback
	sentence := strings.Repeat("x", 958) + ". "
	text := sentence + strings.Repeat("y", 500)

	got := Split(text, 1000, 200)
	if len(got) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(got))
	}
	if !strings.HasSuffix(got[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got suffix %q", got[0][len(got[0])-5:])
	}
}

func TestSplit_FallsBackToWhitespace(t *testing.T) {
	// no sentence ending in range, but a space 20 chars before the edge
	text := strings.Repeat("x", 979) + " " + strings.Repeat("y", 600)

	got := Split(text, 1000, 200)
	if len(got) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(got))
	}
	if strings.ContainsAny(got[0], " ") {
		t.Errorf("first chunk should break at the whitespace, got %q...", got[0][:20])
	}
	if len(got[0]) != 979 {
		t.Errorf("first chunk length = %d, want 979", len(got[0]))
	}
}

func TestSplit_ConsecutiveChunksOverlap(t *testing.T) {
	text := strings.Repeat("a", 5000)
	got := Split(text, 1000, 200)

	if len(got) < 2 {
		t.Fatalf("got %d chunks, want several", len(got))
	}
	for i := 1; i < len(got); i++ {
		tail := got[i-1][len(got[i-1])-200:]
		if !strings.HasPrefix(got[i], tail) {
			t.Errorf("chunk %d does not start with the previous chunk's overlap", i)
		}
	}
}

func TestSplit_EveryChunkWithinSize(t *testing.T) {
	text := strings.Repeat("The founder pitched the investors. ", 300)
	for _, chunk := range Split(text, 1000, 200) {
		if len(chunk) > 1000 {
			t.Errorf("chunk length %d exceeds window", len(chunk))
		}
		if chunk == "" {
			t.Error("empty chunk emitted")
		}
	}
}
