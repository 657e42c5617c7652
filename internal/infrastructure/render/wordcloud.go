// Package render draws per-topic word clouds and saves them as PNG images.
package render

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"
	"github.com/psykhi/wordclouds"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/config"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/ports"
)

const (
	titleBand   = 120 // vertical pixels reserved above the cloud
	titlePts    = 42
	subtitlePts = 28
	fontMaxSize = 300
	fontMinSize = 10
)

var palette = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.RGBA{R: 0x93, G: 0x4f, B: 0xc1, A: 0xff},
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
}

// WordCloudRenderer draws the term-frequency distribution of a topic onto a
// fixed-size canvas with a title band and writes
// <dir>/<subcorpus>/topic_<index>.png.
type WordCloudRenderer struct {
	cfg    config.ImagesConfig
	logger *slog.Logger
}

var _ ports.CloudRenderer = (*WordCloudRenderer)(nil)

// NewWordCloudRenderer validates the font up front so a misconfigured run
// fails before the first topic, not in the middle of the batch.
func NewWordCloudRenderer(cfg config.ImagesConfig, log *slog.Logger) (*WordCloudRenderer, error) {
	if _, err := os.Stat(cfg.FontFile); err != nil {
		return nil, fmt.Errorf("word-cloud font: %w", err)
	}
	return &WordCloudRenderer{cfg: cfg, logger: log}, nil
}

// Render draws and saves one topic cloud.
func (r *WordCloudRenderer) Render(ctx context.Context, cloud domain.TopicCloud) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(cloud.Frequencies) == 0 {
		return fmt.Errorf("topic %d has no term frequencies to render", cloud.Topic)
	}

	words := topWords(cloud.Frequencies, r.cfg.MaxWords)

	wc := wordclouds.NewWordcloud(words,
		wordclouds.FontFile(r.cfg.FontFile),
		wordclouds.FontMaxSize(fontMaxSize),
		wordclouds.FontMinSize(fontMinSize),
		wordclouds.Width(r.cfg.Width),
		wordclouds.Height(r.cfg.Height),
		wordclouds.Colors(palette),
		wordclouds.BackgroundColor(color.White),
	)
	img := wc.Draw()

	dc := gg.NewContext(r.cfg.Width, r.cfg.Height+titleBand)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(img, 0, titleBand)

	dc.SetColor(color.Black)
	if err := dc.LoadFontFace(r.cfg.FontFile, titlePts); err != nil {
		return fmt.Errorf("load title font: %w", err)
	}
	title := fmt.Sprintf("Topic %d: %s", cloud.Topic, cloud.Caption)
	dc.DrawStringAnchored(title, float64(r.cfg.Width)/2, float64(titleBand)/3, 0.5, 0.5)

	if err := dc.LoadFontFace(r.cfg.FontFile, subtitlePts); err != nil {
		return fmt.Errorf("load subtitle font: %w", err)
	}
	subtitle := fmt.Sprintf("Number of Reviews in Topic: %d", cloud.MemberCount)
	dc.DrawStringAnchored(subtitle, float64(r.cfg.Width)/2, float64(titleBand)*3/4, 0.5, 0.5)

	dir := filepath.Join(r.cfg.Dir, string(cloud.Subcorpus))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("topic_%d.png", cloud.Topic))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("word cloud saved", "subcorpus", string(cloud.Subcorpus), "topic", cloud.Topic, "path", path)
	}
	return nil
}

// topWords keeps the max highest-weighted terms, dropping zero weights the
// layout cannot size.
func topWords(freqs []domain.TermWeight, max int) map[string]float64 {
	sorted := make([]domain.TermWeight, len(freqs))
	copy(sorted, freqs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	words := make(map[string]float64, len(sorted))
	for _, tw := range sorted {
		if tw.Weight <= 0 {
			continue
		}
		words[tw.Term] = tw.Weight
	}
	return words
}
