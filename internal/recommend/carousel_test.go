// Marquee - Movie Recommendations with Poster Resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package recommend

import (
	"context"
	"reflect"
	"testing"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/notice"
)

func TestCarousel_Load(t *testing.T) {
	t.Parallel()

	r := &stubResolver{fail: map[int64]bool{17455: true, 240: true}}
	c := NewCarousel(config.DefaultCarouselIDs, r)

	if _, ok := c.Snapshot(); ok {
		t.Fatal("expected no snapshot before Load")
	}

	snap := c.Load(context.Background())
	got, ok := c.Snapshot()
	if !ok || got != snap {
		t.Fatal("expected Load to publish its snapshot")
	}

	var ids []int64
	for _, p := range snap.Posters {
		ids = append(ids, p.ExternalID)
		if p.URL == "" {
			t.Errorf("poster %d has no url", p.ExternalID)
		}
	}
	want := []int64{1632, 299536, 2830, 429422, 9722, 13972, 155, 598, 914, 255709, 572154}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
	if !reflect.DeepEqual(r.called(), config.DefaultCarouselIDs) {
		t.Errorf("expected every id looked up once in order, got %v", r.called())
	}
}

func TestCarousel_CopiesIDs(t *testing.T) {
	t.Parallel()

	ids := []int64{1, 2}
	c := NewCarousel(ids, &stubResolver{})
	ids[0] = 99

	if got := c.IDs(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("expected ids to be copied, got %v", got)
	}
}

func TestCarousel_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &stubResolver{}
	snap := NewCarousel([]int64{1, 2, 3}, r).Load(ctx)
	if len(snap.Posters) != 0 || len(r.called()) != 0 {
		t.Errorf("expected nothing resolved after cancel, got %+v", snap.Posters)
	}
}

func TestCarousel_CollectsNotices(t *testing.T) {
	t.Parallel()

	r := noticeResolver{}
	snap := NewCarousel([]int64{5}, r).Load(context.Background())
	if len(snap.Notices) != 1 || snap.Notices[0].ExternalID != 5 {
		t.Errorf("expected the resolver warning in the snapshot, got %+v", snap.Notices)
	}
}

// noticeResolver always fails with a warning.
type noticeResolver struct{}

func (noticeResolver) Resolve(ctx context.Context, id int64) (string, bool) {
	notice.Warn(ctx, notice.CodePosterTimeout, id, "Timeout for movie ID: %d", id)
	return "", false
}
