package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/embed-rewriter/internal/entity"
	"github.com/user/embed-rewriter/pkg/metrics"
)

type fakeSiteRepo struct {
	sites []*entity.Site
	err   error
}

func (f *fakeSiteRepo) List(ctx context.Context) ([]*entity.Site, error) {
	return f.sites, f.err
}

type bodyUpdate struct {
	siteID, postID int64
	body           string
}

type fakePostRepo struct {
	posts     map[int64][]*entity.Post // keyed by site ID
	updates   []bodyUpdate
	updateErr error
}

func (f *fakePostRepo) FindEmbedCandidates(ctx context.Context, siteID int64) ([]*entity.Post, error) {
	return f.posts[siteID], nil
}

func (f *fakePostRepo) UpdateBody(ctx context.Context, siteID, postID int64, body string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, bodyUpdate{siteID, postID, body})
	return nil
}

type metaDelete struct {
	siteID, postID int64
	prefix         string
}

type fakeMetaRepo struct {
	deletes []metaDelete
	rows    int64
}

func (f *fakeMetaRepo) DeleteByPrefix(ctx context.Context, siteID, postID int64, prefix string) (int64, error) {
	f.deletes = append(f.deletes, metaDelete{siteID, postID, prefix})
	return f.rows, nil
}

type fakeRenderCache struct {
	invalidated []bodyUpdate // body unused
	err         error
}

func (f *fakeRenderCache) Invalidate(ctx context.Context, siteID, postID int64) error {
	if f.err != nil {
		return f.err
	}
	f.invalidated = append(f.invalidated, bodyUpdate{siteID: siteID, postID: postID})
	return nil
}

func newFixture() (*fakeSiteRepo, *fakePostRepo, *fakeMetaRepo, *fakeRenderCache, Rewriter) {
	metrics.Init()
	sites := &fakeSiteRepo{sites: []*entity.Site{
		{ID: 1, BaseURL: "https://one.example.com"},
		{ID: 2, BaseURL: "https://two.example.com"},
	}}
	posts := &fakePostRepo{posts: map[int64][]*entity.Post{
		1: {
			{ID: 10, SiteID: 1, Slug: "clip", Type: "post", Body: "Watch https://youtu.be/abc123 now"},
			{ID: 11, SiteID: 1, Slug: "watch", Type: "post", Body: "https://www.youtube.com/watch?v=zzz only"},
		},
		2: {
			{ID: 20, SiteID: 2, Slug: "two-clips", Type: "page", Body: `"https://youtu.be/one" and "https://youtu.be/two"`},
		},
	}}
	meta := &fakeMetaRepo{rows: 2}
	cache := &fakeRenderCache{}
	return sites, posts, meta, cache, NewRewriter(sites, posts, meta, cache)
}

func TestRunRewritesAndPersists(t *testing.T) {
	_, posts, meta, cache, rw := newFixture()

	rewrites, stats, err := rw.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, rewrites, 3)
	assert.Equal(t, entity.Rewrite{
		SiteID:      1,
		PostID:      10,
		Permalink:   "https://one.example.com/clip/",
		OriginalURL: "https://youtu.be/abc123",
		ReplacedURL: "https://youtube.com/embed/abc123",
	}, rewrites[0])

	// Only the posts that changed are written back, once each.
	require.Len(t, posts.updates, 2)
	assert.Equal(t, bodyUpdate{1, 10, "Watch https://youtube.com/embed/abc123 now"}, posts.updates[0])
	assert.Equal(t, bodyUpdate{2, 20, `"https://youtube.com/embed/one" and "https://youtube.com/embed/two"`}, posts.updates[1])

	// The render cache is dropped for exactly the rewritten posts.
	require.Len(t, cache.invalidated, 2)
	assert.Equal(t, int64(10), cache.invalidated[0].postID)
	assert.Equal(t, int64(20), cache.invalidated[1].postID)

	// Cache clearing was not requested.
	assert.Empty(t, meta.deletes)

	assert.Equal(t, 2, stats.SitesProcessed)
	assert.Equal(t, 3, stats.PostsScanned)
}

func TestRunDryRunWritesNothing(t *testing.T) {
	_, posts, meta, cache, rw := newFixture()

	rewrites, stats, err := rw.Run(context.Background(), Options{DryRun: true, ClearCache: true})
	require.NoError(t, err)

	// The rewrite log is still produced in full.
	require.Len(t, rewrites, 3)
	assert.Equal(t, 3, stats.PostsScanned)

	assert.Empty(t, posts.updates)
	assert.Empty(t, cache.invalidated)
	assert.Empty(t, meta.deletes)
	assert.Zero(t, stats.MetaDeleted)
}

func TestRunClearCacheCoversEveryScannedPost(t *testing.T) {
	_, _, meta, _, rw := newFixture()

	_, stats, err := rw.Run(context.Background(), Options{ClearCache: true})
	require.NoError(t, err)

	// Post 11 had no rewrite but its oEmbed cache is still cleared.
	require.Len(t, meta.deletes, 3)
	for _, d := range meta.deletes {
		assert.Equal(t, "_oembed_", d.prefix)
	}
	assert.Equal(t, int64(6), stats.MetaDeleted)
}

func TestRunNoSitesIsANoOp(t *testing.T) {
	metrics.Init()
	rw := NewRewriter(&fakeSiteRepo{}, &fakePostRepo{}, &fakeMetaRepo{}, &fakeRenderCache{})

	rewrites, stats, err := rw.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Empty(t, rewrites)
	assert.Zero(t, stats.SitesProcessed)
}

func TestRunSiteListErrorIsWrapped(t *testing.T) {
	metrics.Init()
	listErr := errors.New("connection refused")
	rw := NewRewriter(&fakeSiteRepo{err: listErr}, &fakePostRepo{}, &fakeMetaRepo{}, &fakeRenderCache{})

	_, _, err := rw.Run(context.Background(), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)
}

func TestRunUpdateErrorAbortsButKeepsLog(t *testing.T) {
	_, posts, _, _, rw := newFixture()
	posts.updateErr = fmt.Errorf("disk full")

	rewrites, stats, err := rw.Run(context.Background(), Options{})
	require.Error(t, err)

	// The first post's rewrite was logged before the write failed; no
	// later site was processed.
	assert.NotEmpty(t, rewrites)
	assert.Zero(t, stats.SitesProcessed)
}

func TestRunRenderCacheFailureIsNotFatal(t *testing.T) {
	_, posts, _, cache, rw := newFixture()
	cache.err = errors.New("redis down")

	_, stats, err := rw.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Len(t, posts.updates, 2)
	assert.Equal(t, 2, stats.SitesProcessed)
}

func TestRunCountsRewritesInMetrics(t *testing.T) {
	_, _, _, _, rw := newFixture()

	applied := metrics.URLsRewritten.WithLabelValues("applied")
	before := testutil.ToFloat64(applied)

	_, _, err := rw.Run(context.Background(), Options{})
	require.NoError(t, err)

	assert.Equal(t, float64(3), testutil.ToFloat64(applied)-before)
}
