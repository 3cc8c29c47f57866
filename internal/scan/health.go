package scan

import (
	"bytes"
	"context"
	"time"

	"github.com/lifeform/dochealth/internal/config"
	"github.com/lifeform/dochealth/internal/model"
)

// ScanHealth computes size, line count, age, tier and staleness for every
// watched path. Entries follow cfg.WatchedPaths order. A missing or
// unreadable file yields one entry with a Problem and touches no counter.
//
// The returned report holds whatever was scanned before ctx was cancelled,
// together with ctx.Err().
func (g *Generator) ScanHealth(ctx context.Context, cfg *config.Config) (*model.HealthReport, error) {
	report := &model.HealthReport{
		Entries: make([]model.HealthEntry, 0, len(cfg.WatchedPaths)),
	}

	now := g.now()
	for _, p := range cfg.WatchedPaths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		doc, problem := g.load(p)
		if problem != nil {
			g.logger.Debug("watched path not scanned",
				"path", p,
				"problem", problem.Kind.String(),
			)
			report.Entries = append(report.Entries, model.HealthEntry{Path: p, Problem: problem})
			continue
		}

		rec := g.record(ctx, cfg, p, doc, now)
		report.Entries = append(report.Entries, model.HealthEntry{Path: p, Document: &rec})

		switch rec.Tier {
		case model.TierCritical:
			report.Summary.CriticalCount++
		case model.TierLarge:
			report.Summary.LargeCount++
		}
		if rec.Stale {
			report.Summary.StaleCount++
		}
	}

	return report, nil
}

// record builds the DocumentRecord for a loaded document.
func (g *Generator) record(ctx context.Context, cfg *config.Config, watched string, doc *document, now time.Time) model.DocumentRecord {
	size := doc.info.Size()
	modified := g.ages.LastModified(ctx, doc.name, doc.info)
	age := ageDays(now, modified)
	tier := model.ClassifyTier(size, cfg.LargeThresholdBytes, cfg.CriticalThresholdBytes)

	return model.DocumentRecord{
		Path:      watched,
		SizeBytes: size,
		LineCount: bytes.Count(doc.data, []byte{'\n'}),
		AgeDays:   age,
		Tier:      tier,
		TierText:  tier.String(),
		Stale:     age > cfg.StaleDays,
		ModTime:   modified,
	}
}
