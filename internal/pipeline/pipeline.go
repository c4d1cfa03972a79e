// Package pipeline orchestrates the incremental publish run: queue
// construction against the state store, per-item render → publish → record →
// playlist-attach sequencing, and batch summary reporting. Items are
// processed strictly sequentially; per-item failures are logged and skipped,
// never fatal to the run.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/tape2tube/internal/config"
	"github.com/backmassage/tape2tube/internal/logging"
	"github.com/backmassage/tape2tube/internal/meta"
	"github.com/backmassage/tape2tube/internal/probe"
	"github.com/backmassage/tape2tube/internal/render"
	"github.com/backmassage/tape2tube/internal/scan"
	"github.com/backmassage/tape2tube/internal/state"
	"github.com/backmassage/tape2tube/internal/upload"
)

// Encoder invokes the external video encoder for one plan. Injected so tests
// can substitute a fake for ffmpeg.
type Encoder interface {
	Encode(ctx context.Context, plan render.Plan) render.ExecResult
}

// FFmpegEncoder is the real encoder: it executes the plan's argument list.
type FFmpegEncoder struct {
	Verbose bool
}

func (e FFmpegEncoder) Encode(ctx context.Context, plan render.Plan) render.ExecResult {
	return render.Execute(ctx, plan, e.Verbose)
}

// Pipeline processes a work queue. Collaborators are injected once at
// construction; the zero-value hooks (clock, RNG, prober) are filled with
// real implementations.
type Pipeline struct {
	cfg   *config.Config
	log   *logging.Logger
	store *state.Store
	enc   Encoder
	pub   upload.Service

	// Substitutable in tests.
	Prober meta.Prober
	Rand   *rand.Rand
	Now    func() time.Time
}

// New wires a pipeline over the given collaborators.
func New(cfg *config.Config, log *logging.Logger, store *state.Store, enc Encoder, pub upload.Service) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		log:    log,
		store:  store,
		enc:    enc,
		pub:    pub,
		Prober: probe.Probe,
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:    time.Now,
	}
}

// Run processes the queue sequentially. The images pool must be non-empty
// (the caller verifies this once up front — an empty pool means no item
// could ever render, which is fatal to the whole run). Interruption via ctx
// stops between items, never mid-item.
func (p *Pipeline) Run(ctx context.Context, queue []scan.Source, images []string) RunStats {
	stats := RunStats{Total: len(queue)}

	for i, src := range queue {
		stats.Current = i + 1

		if ctx.Err() != nil {
			p.log.Warn("Interrupted")
			break
		}

		if p.processItem(ctx, src, images) {
			stats.Uploaded++
		} else {
			stats.Skipped++
		}
	}

	p.log.Info("==============================")
	p.log.Info("Done: %d uploaded, %d skipped", stats.Uploaded, stats.Skipped)
	return stats
}

// processItem drives one source through the item state machine. Returns true
// when the item reached Done.
func (p *Pipeline) processItem(ctx context.Context, src scan.Source, images []string) bool {
	p.log.Info("[%s] %s", src.ModTime.Format("2006-01-02"), src.Name)

	image := scan.PickRandom(images, p.Rand)
	plan := render.BuildPlan(render.OptionsFromConfig(p.cfg), src, image)
	withPlaylist := p.cfg.PlaylistID != ""

	var videoID string

	st := StatePending
	out := OutcomeOK
	for !st.Terminal() {
		var eff Effect
		st, eff = Next(st, out, withPlaylist)

		switch eff {
		case EffectNone:
			out = OutcomeOK
		case EffectRender:
			out = p.renderItem(ctx, src, image, plan)
		case EffectPublish:
			videoID, out = p.publishItem(ctx, src, plan)
		case EffectRecord:
			out = p.recordItem(src, videoID)
		case EffectAttach:
			out = p.attachItem(ctx, src, videoID)
		}
	}
	return st == StateDone
}

// renderItem invokes the external encoder. A nonzero exit is logged with a
// stderr tail and skips the item; it is never fatal to the run.
func (p *Pipeline) renderItem(ctx context.Context, src scan.Source, image string, plan render.Plan) Outcome {
	if err := os.MkdirAll(filepath.Dir(plan.OutputPath), 0o755); err != nil {
		p.log.Error("Cannot create output directory: %v", err)
		return OutcomeFail
	}

	p.log.Render("Rendering: %s with %s", src.Name, filepath.Base(image))
	res := p.enc.Encode(ctx, plan)
	if res.Err != nil {
		p.log.Error("Render failed for %s: %v", src.Name, res.Err)
		p.logStderrTail(res.Stderr)
		return OutcomeFail
	}
	return OutcomeOK
}

// publishItem builds the metadata bundle and submits the rendered video.
func (p *Pipeline) publishItem(ctx context.Context, src scan.Source, plan render.Plan) (string, Outcome) {
	tctx := meta.Context(ctx, src, p.Prober)
	md := buildMetadata(p.cfg, src, tctx)

	var size int64
	if fi, err := os.Stat(plan.OutputPath); err == nil {
		size = fi.Size()
	}

	p.log.Info("Uploading: %s", filepath.Base(plan.OutputPath))
	videoID, err := p.pub.Upload(ctx, plan.OutputPath, md, uploadProgress(p.log, src.Stem, size))
	if err != nil {
		p.log.Error("Upload failed for %s: %v", src.Name, err)
		return "", OutcomeFail
	}
	p.log.Success("Uploaded video ID: %s", videoID)
	return videoID, OutcomeOK
}

// recordItem persists the fingerprint + video ID and flushes the whole store
// before any playlist attach is attempted: a published-but-unrecorded item
// must never survive a crash between publish and attach.
func (p *Pipeline) recordItem(src scan.Source, videoID string) Outcome {
	p.store.MarkUploaded(src, videoID, p.Now())
	if err := p.store.Save(); err != nil {
		p.log.Error("Published %s as %s but could not record state: %v", src.Name, videoID, err)
		return OutcomeFail
	}
	return OutcomeOK
}

// attachItem adds the video to the configured playlist. Failure is logged
// and tolerated: the publish is already recorded.
func (p *Pipeline) attachItem(ctx context.Context, src scan.Source, videoID string) Outcome {
	p.log.Info("Adding to playlist: %s", p.cfg.PlaylistID)
	if _, err := p.pub.AttachToPlaylist(ctx, videoID, p.cfg.PlaylistID); err != nil {
		p.log.Warn("Playlist attach failed for %s (video %s remains published): %v", src.Name, videoID, err)
		return OutcomeFail
	}
	return OutcomeOK
}

func (p *Pipeline) logStderrTail(stderr string) {
	if stderr == "" {
		return
	}
	p.log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		p.log.Error("  %s", l)
	}
}

// VerifyImages loads the background image pool and fails when it is empty,
// since no queued item could render without one.
func VerifyImages(cfg *config.Config) ([]string, error) {
	images, err := scan.ImagePool(cfg.ImagesDir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("no .jpg/.jpeg files found in %s", cfg.ImagesDir)
	}
	return images, nil
}
