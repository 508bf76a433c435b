package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"reactome2bel/internal/bel"
	"reactome2bel/internal/evidence"
	"reactome2bel/internal/generator"
	"reactome2bel/internal/reactome"

	"go.uber.org/zap"
)

// ExpandSpecies resolves the "all" shorthand and rejects an empty selection.
func ExpandSpecies(species []string) ([]string, error) {
	if len(species) == 0 {
		return nil, errors.New("at least one species is required")
	}
	for _, s := range species {
		if s == "all" {
			return append([]string(nil), evidence.ModelOrganisms...), nil
		}
	}
	for _, s := range species {
		if _, err := evidence.TaxonomyID(s); err != nil {
			return nil, err
		}
	}
	return species, nil
}

// Convert is one reactome-to-BEL run.
type Convert struct {
	Source   reactome.Source
	Species  []string
	Pathways []string
	Version  bel.Version
	Memoize  bool

	OutputDir       string
	BadEvidenceFile string
	ReportFile      string
	BrowserURL      string
	Document        generator.DocumentInfo

	Logger *zap.Logger
	// Out receives progress lines; nil discards them.
	Out io.Writer
}

// Result points at what a run produced.
type Result struct {
	Reactions       []reactome.ReactionRef
	Evidences       *evidence.Collection
	ScriptPath      string
	BadEvidencePath string
	ReportPath      string
	Report          *generator.RunReport
}

func (c *Convert) Run(ctx context.Context) (*Result, error) {
	c.defaults()

	report := generator.NewRunReport(int(c.Version), c.Species, c.Pathways, c.OutputDir)
	res := &Result{Report: report}

	reactions, err := c.collectReactionsStage(ctx, report)
	if err != nil {
		return res, err
	}
	res.Reactions = reactions

	col, err := c.buildEvidencesStage(ctx, report, reactions)
	if err != nil {
		return res, err
	}
	res.Evidences = col

	if res.ScriptPath, err = c.renderStage(report, col); err != nil {
		return res, err
	}
	if res.BadEvidencePath, err = c.badEvidenceStage(report, col); err != nil {
		return res, err
	}

	statements := 0
	for _, ev := range col.Accepted {
		statements += len(ev.Statements)
	}
	report.SetEvidenceCounts(generator.EvidenceCounts{
		Reactions:  len(reactions),
		Accepted:   len(col.Accepted),
		Flagged:    len(col.Flagged),
		Skipped:    len(col.Skipped),
		Failed:     len(col.Failed),
		Statements: statements,
	})

	res.ReportPath = filepath.Join(c.OutputDir, c.ReportFile)
	if err := report.Save(res.ReportPath); err != nil {
		return res, fmt.Errorf("failed to save run report: %w", err)
	}
	fmt.Fprintf(c.Out, "🧾 Run report: %s\n", res.ReportPath)
	return res, nil
}

func (c *Convert) defaults() {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	if !c.Version.Valid() {
		c.Version = bel.V1
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.BadEvidenceFile == "" {
		c.BadEvidenceFile = "bad_evidences.json"
	}
	if c.ReportFile == "" {
		c.ReportFile = "run_report.json"
	}
}

func (c *Convert) collectReactionsStage(ctx context.Context, report *generator.RunReport) ([]reactome.ReactionRef, error) {
	h := report.BeginStage("collect_reactions")
	reactions, err := reactome.CollectReactions(ctx, c.Source, c.Species, c.Pathways)
	if err != nil {
		report.EndStage(h, "error", nil, c.Species, err)
		return nil, fmt.Errorf("failed to collect reactions: %w", err)
	}
	report.EndStage(h, "ok", map[string]float64{
		"species":   float64(len(c.Species)),
		"reactions": float64(len(reactions)),
	}, c.Pathways, nil)

	fmt.Fprintf(c.Out, "🔍 Collected %d reactions for %d species.\n", len(reactions), len(c.Species))
	return reactions, nil
}

func (c *Convert) buildEvidencesStage(ctx context.Context, report *generator.RunReport, reactions []reactome.ReactionRef) (*evidence.Collection, error) {
	const stage = "build_evidences"
	h := report.BeginStage(stage)

	conv := bel.NewConverter(c.Source, bel.Options{Version: c.Version, Memoize: c.Memoize}, c.Logger)
	builder := evidence.NewBuilder(c.Source, conv, c.Logger, evidence.Options{BrowserURL: c.BrowserURL})

	col, err := builder.BuildAll(ctx, reactions)
	if ctxErr := ctx.Err(); ctxErr != nil {
		report.EndStage(h, "error", nil, nil, ctxErr)
		return nil, ctxErr
	}

	for _, e := range unjoin(err) {
		report.AddSignal("reaction_failed", stage, "warning", e.Error(), 0)
	}
	if n := len(col.Flagged); n > 0 {
		report.AddSignal("disallowed_namespace", stage, "info",
			fmt.Sprintf("%d evidences reference ENSEMBL/EMBL and were set aside", n), float64(n))
	}
	if n := len(col.Skipped); n > 0 {
		report.AddSignal("reaction_skipped", stage, "info",
			fmt.Sprintf("%d reactions had no stable identifier or could not be fetched", n), float64(n))
	}

	status := "ok"
	if len(col.Failed) > 0 {
		status = "partial"
	}
	report.EndStage(h, status, map[string]float64{
		"accepted": float64(len(col.Accepted)),
		"flagged":  float64(len(col.Flagged)),
		"skipped":  float64(len(col.Skipped)),
		"failed":   float64(len(col.Failed)),
	}, nil, nil)

	fmt.Fprintf(c.Out, "🧬 Built %d evidences (%d flagged, %d skipped, %d failed).\n",
		len(col.Accepted), len(col.Flagged), len(col.Skipped), len(col.Failed))
	return col, nil
}

func (c *Convert) renderStage(report *generator.RunReport, col *evidence.Collection) (string, error) {
	h := report.BeginStage("render_bel_script")
	writer, err := generator.NewBELScriptWriter()
	if err != nil {
		report.EndStage(h, "error", nil, nil, err)
		return "", err
	}

	doc := generator.NewDocument(c.Document, c.Version, c.Pathways, col.Accepted)
	path, err := writer.Save(c.OutputDir, doc)
	if err != nil {
		report.EndStage(h, "error", nil, nil, err)
		return "", fmt.Errorf("failed to write BEL script: %w", err)
	}
	report.EndStage(h, "ok", map[string]float64{"evidences": float64(len(col.Accepted))}, nil, nil)
	report.AddOutput(path)

	fmt.Fprintf(c.Out, "📝 BEL script written to %s\n", path)
	return path, nil
}

func (c *Convert) badEvidenceStage(report *generator.RunReport, col *evidence.Collection) (string, error) {
	h := report.BeginStage("write_bad_evidences")
	path := filepath.Join(c.OutputDir, c.BadEvidenceFile)
	if err := generator.SaveBadEvidences(path, col.Flagged); err != nil {
		report.EndStage(h, "error", nil, nil, err)
		return "", fmt.Errorf("failed to write bad evidences: %w", err)
	}
	report.EndStage(h, "ok", map[string]float64{"evidences": float64(len(col.Flagged))}, nil, nil)
	report.AddOutput(path)
	return path, nil
}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
