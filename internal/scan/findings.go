package scan

import (
	"context"

	"golang.org/x/crypto/sha3"

	"github.com/lifeform/dochealth/internal/config"
	"github.com/lifeform/dochealth/internal/model"
	"github.com/lifeform/dochealth/internal/rules"
)

// RuleIdenticalContent names the finding for watched files with byte-identical content.
const RuleIdenticalContent = "identical_content"

// ScanDuplication evaluates the duplication rules of rs against every
// readable watched file. A rule produces one finding when two or more files
// match it and nothing otherwise. With cfg.DetectIdentical, files whose
// content is byte-identical are reported as well.
func (g *Generator) ScanDuplication(ctx context.Context, cfg *config.Config, rs []rules.PatternRule) ([]model.Finding, error) {
	docs, err := g.loadAll(ctx, cfg.WatchedPaths)
	findings := make([]model.Finding, 0)
	if err != nil {
		return findings, err
	}

	for _, r := range rules.Filter(rs, model.CategoryDuplication) {
		paths, sample := matchAll(r, docs)
		if len(paths) < 2 {
			continue
		}
		findings = append(findings, newFinding(r.Name, r.Title, model.CategoryDuplication, r.Severity, paths, sample))
	}

	if cfg.DetectIdentical {
		findings = append(findings, identical(docs)...)
	}

	g.logger.Debug("duplication scan complete", "files", len(docs), "findings", len(findings))
	return findings, nil
}

// ScanSecurity evaluates the security rules of rs against every readable
// watched file. A rule produces one finding naming every matching file.
func (g *Generator) ScanSecurity(ctx context.Context, cfg *config.Config, rs []rules.PatternRule) ([]model.Finding, error) {
	docs, err := g.loadAll(ctx, cfg.WatchedPaths)
	findings := make([]model.Finding, 0)
	if err != nil {
		return findings, err
	}

	for _, r := range rules.Filter(rs, model.CategorySecurity) {
		paths, sample := matchAll(r, docs)
		if len(paths) == 0 {
			continue
		}
		findings = append(findings, newFinding(r.Name, r.Title, model.CategorySecurity, r.Severity, paths, sample))
	}

	g.logger.Debug("security scan complete", "files", len(docs), "findings", len(findings))
	return findings, nil
}

// matchAll returns the paths of docs matching r, in order, and the sample
// taken from the first match.
func matchAll(r rules.PatternRule, docs []*document) ([]string, string) {
	var (
		paths  []string
		sample string
	)
	for _, d := range docs {
		s, ok := r.Match(d.data)
		if !ok {
			continue
		}
		if len(paths) == 0 {
			sample = s
		}
		paths = append(paths, d.path)
	}
	return paths, sample
}

// identical groups non-empty documents by SHA3-256 digest and reports every
// group with more than one member, in order of first appearance.
func identical(docs []*document) []model.Finding {
	groups := make(map[[32]byte][]string)
	var order [][32]byte
	for _, d := range docs {
		if len(d.data) == 0 {
			continue
		}
		sum := sha3.Sum256(d.data)
		if _, ok := groups[sum]; !ok {
			order = append(order, sum)
		}
		groups[sum] = append(groups[sum], d.path)
	}

	var out []model.Finding
	for _, sum := range order {
		if paths := groups[sum]; len(paths) > 1 {
			out = append(out, newFinding(RuleIdenticalContent, "Identical content",
				model.CategoryDuplication, model.SeverityWarn, paths, ""))
		}
	}
	return out
}

func newFinding(rule, title string, category model.Category, severity model.Severity, paths []string, sample string) model.Finding {
	return model.Finding{
		Rule:         rule,
		Title:        title,
		Category:     category,
		Severity:     severity,
		SeverityText: severity.String(),
		Paths:        paths,
		Sample:       sample,
	}
}
