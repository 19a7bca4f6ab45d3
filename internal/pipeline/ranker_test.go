package pipeline_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"house31/internal/domain"
	"house31/internal/pipeline"
)

func record(id string, p domain.Priority, media domain.MediaType, at time.Time) domain.ContentRecord {
	return domain.ContentRecord{
		ID:       id,
		Title:    "Title " + id,
		Slug:     "title-" + id,
		Category: domain.CategoryMilitary,
		Priority: p,
		Type:     media,
		PostedAt: at,
		PostDate: at.Format(time.RFC3339),
	}
}

func ids(records []domain.ContentRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestRank_HighPriorityVideosLeadCuratedList(t *testing.T) {
	// Arrange: 5 high/video and 10 low/link, interleaved
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var in []domain.ContentRecord
	for i := 0; i < 15; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		if i%3 == 0 {
			in = append(in, record(fmt.Sprintf("h%d", i), domain.PriorityHigh, domain.MediaVideo, at))
		} else {
			in = append(in, record(fmt.Sprintf("l%d", i), domain.PriorityLow, domain.MediaLink, at))
		}
	}

	// Act
	curated := pipeline.Rank(in)
	trending := pipeline.TopTrending(curated, pipeline.TrendingLimit)

	// Assert
	if len(curated) != 12 {
		t.Fatalf("curated length: got %d, want 12", len(curated))
	}
	wantHead := []string{"h12", "h9", "h6", "h3", "h0"}
	if got := ids(curated[:5]); !reflect.DeepEqual(got, wantHead) {
		t.Errorf("curated head: got %v, want %v", got, wantHead)
	}
	wantTail := []string{"l14", "l13", "l11", "l10", "l8", "l7", "l5"}
	if got := ids(curated[5:]); !reflect.DeepEqual(got, wantTail) {
		t.Errorf("curated tail: got %v, want %v", got, wantTail)
	}

	if len(trending) != 5 {
		t.Fatalf("trending length: got %d, want 5", len(trending))
	}
	for i, v := range trending {
		if v.ID != i+1 {
			t.Errorf("trending[%d] rank: got %d, want %d", i, v.ID, i+1)
		}
		if v.Slug != "title-"+wantHead[i] {
			t.Errorf("trending[%d] slug: got %q", i, v.Slug)
		}
	}
}

func TestRank_EqualKeysKeepInputOrder(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []domain.ContentRecord{
		record("a", domain.PriorityMedium, domain.MediaLink, at),
		record("b", domain.PriorityMedium, domain.MediaLink, at),
		record("c", domain.PriorityHigh, domain.MediaLink, at),
		record("d", domain.PriorityMedium, domain.MediaLink, at),
	}

	got := ids(pipeline.Rank(in))

	want := []string{"c", "a", "b", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []domain.ContentRecord{
		record("a", domain.PriorityLow, domain.MediaLink, at),
		record("b", domain.PriorityHigh, domain.MediaLink, at),
	}

	_ = pipeline.Rank(in)

	if in[0].ID != "a" || in[1].ID != "b" {
		t.Errorf("input reordered: %v", ids(in))
	}
}

func TestRank_FewerThanCapReturnsAll(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []domain.ContentRecord{record("a", domain.PriorityLow, domain.MediaLink, at)}

	if got := pipeline.Rank(in); len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
	if got := pipeline.Rank(nil); got == nil || len(got) != 0 {
		t.Errorf("empty input should give an empty, non-nil list: %#v", got)
	}
}

func TestTopTrending_CapsAtSixAndOnlyVideos(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var ranked []domain.ContentRecord
	for i := 0; i < 12; i++ {
		media := domain.MediaVideo
		if i%4 == 0 {
			media = domain.MediaImage
		}
		ranked = append(ranked, record(fmt.Sprintf("r%d", i), domain.PriorityHigh, media, base))
	}

	trending := pipeline.TopTrending(ranked, pipeline.TrendingLimit)

	if len(trending) != 6 {
		t.Fatalf("got %d, want 6", len(trending))
	}
	byID := map[string]domain.ContentRecord{}
	for _, r := range ranked {
		byID[r.Slug] = r
	}
	for _, v := range trending {
		if byID[v.Slug].Type != domain.MediaVideo {
			t.Errorf("%s is not a video", v.Slug)
		}
	}
}

func TestCategoryCounts(t *testing.T) {
	at := time.Now()
	a := record("a", domain.PriorityHigh, domain.MediaVideo, at)
	b := record("b", domain.PriorityHigh, domain.MediaVideo, at)
	c := record("c", domain.PriorityMedium, domain.MediaLink, at)
	c.Category = domain.CategorySpace

	counts := pipeline.CategoryCounts([]domain.ContentRecord{a, b, c})

	want := map[domain.Category]int{domain.CategoryMilitary: 2, domain.CategorySpace: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("got %v, want %v", counts, want)
	}
}

func TestProcess_IsDeterministicForFixedClockAndGrowth(t *testing.T) {
	n := newFixedNormalizer()
	posts := []domain.RawPost{
		militaryVideoPost(),
		{ID: "2", Message: "SpaceX starship rocket launch to orbit around the moon", CreatedTime: "2023-12-31T20:00:00Z"},
		{ID: "3", Message: "I had a great lunch today"},
		{ID: "4", Message: "ok"},
	}

	first := n.Process(posts)
	second := n.Process(posts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs differ:\n%+v\n%+v", first, second)
	}
	if len(first.Curated) != 2 {
		t.Errorf("curated: got %d, want 2", len(first.Curated))
	}
	if first.Dropped[pipeline.DropOffTopic] != 1 || first.Dropped[pipeline.DropTooShort] != 1 {
		t.Errorf("dropped: got %v", first.Dropped)
	}
	if first.Curated[0].ID != "1000_2001" {
		t.Errorf("high priority post should rank first, got %s", first.Curated[0].ID)
	}
}

func TestProcess_EmptyInputIsValid(t *testing.T) {
	batch := newFixedNormalizer().Process(nil)

	if len(batch.Curated) != 0 || len(batch.Trending) != 0 || len(batch.CategoryCounts) != 0 {
		t.Errorf("expected empty batch, got %+v", batch)
	}
	if batch.Curated == nil || batch.Trending == nil {
		t.Error("empty lists should be non-nil so they encode as []")
	}
}

func TestTopTrending_NegativeLimitIsEmpty(t *testing.T) {
	at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ranked := []domain.ContentRecord{record("a", domain.PriorityHigh, domain.MediaVideo, at)}

	trending := pipeline.TopTrending(ranked, -1)

	if trending == nil || len(trending) != 0 {
		t.Errorf("got %v, want empty non-nil slice", trending)
	}
}
