// Package workflow sequences the interactive classification run:
// scan → prompt → write → validate → commit per manifest, then a full-tree
// validation pass. Items are processed strictly one at a time.
package workflow

import (
	"fmt"
	"io"
	"strings"

	"github.com/fulmenhq/manifestneat/internal/gitrepo"
	"github.com/fulmenhq/manifestneat/pkg/classify"
	"github.com/fulmenhq/manifestneat/pkg/logger"
	"github.com/fulmenhq/manifestneat/pkg/manifest"
)

// Summary is the explicit accumulator for one run.
type Summary struct {
	Found   int `json:"found"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	ValidationRan    bool `json:"validation_ran"`
	ValidationPassed bool `json:"validation_passed"`
	TotalManifests   int  `json:"total_manifests"`
	ValidManifests   int  `json:"valid_manifests"`
}

// Runner drives one interactive classification run.
type Runner struct {
	Root     string
	Patterns []string
	Prompter *classify.Prompter
	Out      io.Writer

	// CommitEnabled controls whether updates are recorded as commits.
	CommitEnabled bool
}

const rule = "======================================================================"
const itemRule = "----------------------------------------------------------------------"

// Run executes the workflow. Per-item failures are counted, never fatal; only
// environment failures (missing root) abort the run.
func (r *Runner) Run() (*Summary, error) {
	fmt.Fprintln(r.Out, rule)
	fmt.Fprintln(r.Out, "Manifest Integration Type Management Tool")
	fmt.Fprintln(r.Out, rule)

	candidates, err := manifest.FindCandidates(r.Root, r.Patterns)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Found: len(candidates)}
	if len(candidates) == 0 {
		fmt.Fprintln(r.Out, "\nNo manifests found that need updating.")
		fmt.Fprintln(r.Out, "All manifests either have integration_type or don't have config_flow enabled.")
		return summary, nil
	}

	fmt.Fprintf(r.Out, "\nFound %d manifest(s) that need integration_type added:\n", len(candidates))
	for _, path := range candidates {
		fmt.Fprintf(r.Out, "  - %s\n", manifest.IntegrationName(path))
	}

	for _, path := range candidates {
		r.processCandidate(path, summary)
	}

	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, rule)
	fmt.Fprintln(r.Out, "Summary:")
	fmt.Fprintf(r.Out, "  Updated: %d\n", summary.Updated)
	fmt.Fprintf(r.Out, "  Skipped: %d\n", summary.Skipped)
	fmt.Fprintf(r.Out, "  Failed:  %d\n", summary.Failed)
	fmt.Fprintln(r.Out, rule)

	fmt.Fprintln(r.Out, "\nRunning full validation...")
	batch, err := manifest.ValidateTree(r.Root, r.Patterns)
	if err != nil {
		return nil, err
	}
	WriteBatchReport(r.Out, batch)
	summary.ValidationRan = true
	summary.ValidationPassed = batch.AllValid()
	summary.TotalManifests = batch.Total
	summary.ValidManifests = batch.Valid

	return summary, nil
}

// processCandidate walks one manifest through
// Pending → Prompted → {Skipped | Updated} → Validated? → Committed? → Done.
func (r *Runner) processCandidate(path string, summary *Summary) {
	name := manifest.IntegrationName(path)
	fmt.Fprintln(r.Out, itemRule)

	choice, err := r.Prompter.Ask(name)
	if err != nil {
		fmt.Fprintf(r.Out, "Prompt failed for %s: %v\n", name, err)
		summary.Failed++
		return
	}
	if choice == classify.Skip {
		fmt.Fprintf(r.Out, "Skipping %s\n", name)
		summary.Skipped++
		return
	}

	fmt.Fprintf(r.Out, "Setting integration_type to '%s' for %s\n", choice, name)

	doc, err := manifest.Load(path)
	if err != nil {
		fmt.Fprintf(r.Out, "Error reading %s: %v\n", path, err)
		summary.Failed++
		return
	}
	if err := doc.SetIntegrationType(choice.String()); err != nil {
		fmt.Fprintf(r.Out, "Error updating %s: %v\n", path, err)
		summary.Failed++
		return
	}
	if err := manifest.WriteFile(path, doc); err != nil {
		// Original file is untouched on write failure
		fmt.Fprintf(r.Out, "Error writing %s: %v\n", path, err)
		summary.Failed++
		return
	}
	fmt.Fprintf(r.Out, "✓ Updated %s\n", path)

	// The file stays changed on a validation failure; the operator intervenes.
	if res := manifest.ValidateFile(path); !res.Valid {
		fmt.Fprintf(r.Out, "Warning: validation failed for %s: %s\n", name, strings.Join(res.Reasons, "; "))
		fmt.Fprintln(r.Out, "The file has been updated but may have issues.")
		summary.Failed++
		return
	}

	if r.CommitEnabled {
		message := fmt.Sprintf("Set integration_type to '%s' for %s", choice, name)
		if err := gitrepo.CommitFile(r.Root, path, message); err != nil {
			// The manifest content is correct, so the item still counts as updated
			fmt.Fprintf(r.Out, "Error committing changes for %s: %v\n", name, err)
			logger.Warn("commit failed", logger.String("integration", name), logger.Err(err))
		} else {
			fmt.Fprintf(r.Out, "✓ Committed changes for %s\n", name)
		}
	}
	summary.Updated++
}

// WriteBatchReport prints per-manifest status lines and the aggregate count.
func WriteBatchReport(w io.Writer, batch *manifest.BatchResult) {
	for _, res := range batch.Results {
		if res.Valid {
			fmt.Fprintf(w, "✓ %s\n", res.Name)
		} else {
			fmt.Fprintf(w, "❌ %s: %s\n", res.Name, strings.Join(res.Reasons, "; "))
		}
	}
	fmt.Fprintf(w, "\n%d/%d manifests valid\n", batch.Valid, batch.Total)
}
