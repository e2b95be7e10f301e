package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booktrans/internal/document"
)

type fakeSource struct {
	pages   []string
	outline []document.OutlineEntry
}

func (f *fakeSource) PageCount() int { return len(f.pages) }

func (f *fakeSource) Outline() ([]document.OutlineEntry, error) { return f.outline, nil }

func (f *fakeSource) PageText(p int) (string, error) { return f.pages[p-1], nil }

func blankPages(n int) []string {
	return make([]string, n)
}

func TestIdentifyFullMode(t *testing.T) {
	src := &fakeSource{pages: blankPages(42)}

	segs, err := Identify(src, ModeFull)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Index: 1, Title: "Full Document", Start: 1, End: 42}, segs[0])
}

func TestIdentifyBookmarkMode(t *testing.T) {
	src := &fakeSource{
		pages: blankPages(100),
		outline: []document.OutlineEntry{
			{Title: "Introduction", Page: 1, Depth: 1},
			{Title: "History", Page: 20, Depth: 1},
			{Title: "Early Years", Page: 25, Depth: 2}, // nested, not a boundary
			{Title: "Conclusion", Page: 80, Depth: 1},
		},
	}

	segs, err := Identify(src, ModeBookmark)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, Segment{Index: 1, Title: "Introduction", Start: 1, End: 19}, segs[0])
	assert.Equal(t, Segment{Index: 2, Title: "History", Start: 20, End: 79}, segs[1])
	assert.Equal(t, Segment{Index: 3, Title: "Conclusion", Start: 80, End: 100}, segs[2])
}

func TestIdentifyBookmarkModeSynthesizesFrontMatter(t *testing.T) {
	src := &fakeSource{
		pages: blankPages(50),
		outline: []document.OutlineEntry{
			{Title: "Chapter One", Page: 9, Depth: 1},
			{Title: "Chapter Two", Page: 30, Depth: 1},
		},
	}

	segs, err := Identify(src, ModeBookmark)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, Segment{Index: 1, Title: "Front Matter", Start: 1, End: 8}, segs[0])
	assert.Equal(t, Segment{Index: 2, Title: "Chapter One", Start: 9, End: 29}, segs[1])
	assert.Equal(t, Segment{Index: 3, Title: "Chapter Two", Start: 30, End: 50}, segs[2])
}

func TestIdentifyBookmarkModeNoOutline(t *testing.T) {
	src := &fakeSource{pages: blankPages(10)}

	_, err := Identify(src, ModeBookmark)
	require.ErrorIs(t, err, ErrNoBookmarks)
}

func TestIdentifyChapterMode(t *testing.T) {
	pages := blankPages(12)
	pages[0] = "Some Title\n\nA preface paragraph."
	pages[2] = "Chapter 1\nThe Beginning\n\nbody text"
	pages[6] = "CHAPTER II: The Middle\n\nbody text"
	pages[9] = "Chapter 3. The End\n\nbody text"

	src := &fakeSource{pages: pages}

	segs, err := Identify(src, ModeChapter)
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, Segment{Index: 1, Title: "Front Matter", Start: 1, End: 2}, segs[0])
	assert.Equal(t, Segment{Index: 2, Title: "Chapter 1", Start: 3, End: 6}, segs[1])
	assert.Equal(t, Segment{Index: 3, Title: "CHAPTER II The Middle", Start: 7, End: 9}, segs[2])
	assert.Equal(t, Segment{Index: 4, Title: "Chapter 3 The End", Start: 10, End: 12}, segs[3])
}

func TestIdentifyChapterModeDegradesToFull(t *testing.T) {
	src := &fakeSource{pages: blankPages(7)}

	segs, err := Identify(src, ModeChapter)
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Index: 1, Title: "Full Document", Start: 1, End: 7}, segs[0])
}

// Partition property: every page belongs to exactly one segment, in order,
// no gaps, no overlaps. Duplicate bookmarks on one page collapse to one
// boundary.
func TestIdentifyCoversAllPagesWithoutOverlap(t *testing.T) {
	src := &fakeSource{
		pages: blankPages(60),
		outline: []document.OutlineEntry{
			{Title: "A", Page: 5, Depth: 1},
			{Title: "B", Page: 5, Depth: 1}, // same page as A
			{Title: "C", Page: 40, Depth: 1},
		},
	}

	for _, mode := range []Mode{ModeBookmark, ModeChapter, ModeFull} {
		segs, err := Identify(src, mode)
		require.NoError(t, err, "mode %s", mode)

		next := 1
		for _, s := range segs {
			require.Equal(t, next, s.Start, "mode %s segment %d", mode, s.Index)
			require.GreaterOrEqual(t, s.End, s.Start, "mode %s segment %d", mode, s.Index)
			next = s.End + 1
		}
		assert.Equal(t, 61, next, "mode %s must end on page 60", mode)
	}
}

func TestIdentifyIsDeterministic(t *testing.T) {
	pages := blankPages(30)
	pages[4] = "Chapter 1 Alpha"
	pages[19] = "Chapter 2 Beta"
	src := &fakeSource{pages: pages}

	first, err := Identify(src, ModeChapter)
	require.NoError(t, err)
	second, err := Identify(src, ModeChapter)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseMode(t *testing.T) {
	for _, good := range []string{"bookmark", "chapter", "full"} {
		m, err := ParseMode(good)
		require.NoError(t, err)
		assert.Equal(t, Mode(good), m)
	}
	_, err := ParseMode("pages")
	assert.Error(t, err)
}

func TestDetectChapterHeading(t *testing.T) {
	cases := []struct {
		text  string
		title string
		ok    bool
	}{
		{"Chapter 7\nbody", "Chapter 7", true},
		{"CHAPTER XIV: Storm\nbody", "CHAPTER XIV Storm", true},
		{"Part II\nbody", "Part II", true},
		{"3. The Long Road\nbody", "3 The Long Road", true},
		{"plain paragraph text", "", false},
		{"", "", false},
		// heading buried deep in the page is running text, not a boundary
		{"a\nb\nc\nd\ne\nf\nChapter 9", "", false},
	}
	for _, c := range cases {
		title, ok := detectChapterHeading(c.text)
		assert.Equal(t, c.ok, ok, "text %q", c.text)
		if c.ok {
			assert.Equal(t, c.title, title, "text %q", c.text)
		}
	}
}
