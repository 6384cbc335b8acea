package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/embed-rewriter/internal/entity"
	"github.com/user/embed-rewriter/internal/repository"
	"github.com/user/embed-rewriter/internal/rewrite"
	"github.com/user/embed-rewriter/pkg/metrics"
)

// oembedMetaPrefix is the reserved key prefix of oEmbed cache rows in the
// metadata table.
const oembedMetaPrefix = "_oembed_"

// Options are the independent command flags. All combinations are valid.
type Options struct {
	// DryRun computes and logs rewrites without persisting anything: no body
	// update, no render-cache invalidation, no metadata deletion.
	DryRun bool
	// ClearCache deletes the oEmbed metadata rows of every scanned post,
	// whether or not a URL was rewritten in it.
	ClearCache bool
}

// Stats summarizes one run.
type Stats struct {
	SitesProcessed int
	PostsScanned   int
	MetaDeleted    int64
}

// Rewriter defines the interface for the full rewrite pass.
type Rewriter interface {
	// Run processes every site in order and returns the accumulated rewrite
	// log. On error the log holds the rewrites produced so far; earlier
	// sites' writes stay applied.
	Run(ctx context.Context, opts Options) ([]entity.Rewrite, Stats, error)
}

type rewriterUseCase struct {
	siteRepo    repository.SiteRepository
	postRepo    repository.PostRepository
	metaRepo    repository.MetaRepository
	renderCache repository.RenderCacheRepository
}

// NewRewriter creates a new instance of the rewriter use case.
func NewRewriter(
	siteRepo repository.SiteRepository,
	postRepo repository.PostRepository,
	metaRepo repository.MetaRepository,
	renderCache repository.RenderCacheRepository,
) Rewriter {
	return &rewriterUseCase{
		siteRepo:    siteRepo,
		postRepo:    postRepo,
		metaRepo:    metaRepo,
		renderCache: renderCache,
	}
}

func (uc *rewriterUseCase) Run(ctx context.Context, opts Options) ([]entity.Rewrite, Stats, error) {
	sites, err := uc.siteRepo.List(ctx)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to list sites: %w", err)
	}

	var rewrites []entity.Rewrite
	var stats Stats
	for _, site := range sites {
		slog.Info("Processing site", "site_id", site.ID, "base_url", site.BaseURL)

		startTime := time.Now()
		siteRewrites, err := uc.processSite(ctx, site, opts, &stats)
		metrics.SiteScanDuration.Observe(time.Since(startTime).Seconds())

		rewrites = append(rewrites, siteRewrites...)
		if err != nil {
			return rewrites, stats, fmt.Errorf("failed to process site %d: %w", site.ID, err)
		}
		stats.SitesProcessed++
	}

	return rewrites, stats, nil
}

// processSite scans one site's candidate posts and applies the rewrite rules.
// The returned rewrites are valid even when an error cut the scan short.
func (uc *rewriterUseCase) processSite(ctx context.Context, site *entity.Site, opts Options, stats *Stats) ([]entity.Rewrite, error) {
	posts, err := uc.postRepo.FindEmbedCandidates(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate posts: %w", err)
	}

	mode := "applied"
	if opts.DryRun {
		mode = "preview"
	}

	var rewrites []entity.Rewrite
	for _, post := range posts {
		stats.PostsScanned++
		metrics.PostsScanned.Inc()

		newBody, reps := rewrite.Apply(post.Body)
		for _, rep := range reps {
			permalink := site.Permalink(post.Slug)
			rewrites = append(rewrites, entity.Rewrite{
				SiteID:      site.ID,
				PostID:      post.ID,
				Permalink:   permalink,
				OriginalURL: rep.Original,
				ReplacedURL: rep.Replaced,
			})
			metrics.URLsRewritten.WithLabelValues(mode).Inc()
			slog.Info("Rewriting embedded video URL",
				"site_id", site.ID,
				"post_id", post.ID,
				"permalink", permalink,
				"original_url", rep.Original,
				"replaced_url", rep.Replaced,
				"dry_run", opts.DryRun,
			)
		}

		if len(reps) > 0 && !opts.DryRun {
			if err := uc.postRepo.UpdateBody(ctx, site.ID, post.ID, newBody); err != nil {
				return rewrites, fmt.Errorf("failed to update body of post %d: %w", post.ID, err)
			}
			post.Body = newBody

			// The stale rendering would keep serving the old URL; losing the
			// invalidation only delays the new embed until natural expiry.
			if err := uc.renderCache.Invalidate(ctx, site.ID, post.ID); err != nil {
				slog.Warn("Failed to invalidate render cache", "site_id", site.ID, "post_id", post.ID, "error", err)
			} else {
				metrics.RenderInvalidated.Inc()
			}
		}

		if opts.ClearCache && !opts.DryRun {
			deleted, err := uc.metaRepo.DeleteByPrefix(ctx, site.ID, post.ID, oembedMetaPrefix)
			if err != nil {
				return rewrites, fmt.Errorf("failed to clear oEmbed cache of post %d: %w", post.ID, err)
			}
			stats.MetaDeleted += deleted
			metrics.CacheMetaDeleted.Add(float64(deleted))
			slog.Info("Cleared oEmbed cache", "site_id", site.ID, "post_id", post.ID, "entries", deleted)
		}
	}

	return rewrites, nil
}
