// Package pipeline provides the high-level orchestration of a vendor profile
// run: one content retrieval, five independent section extractions, and a
// reconciliation pass, in either batch (parallel) or stream (sequential with
// progress events) mode.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/vendor-profiler/internal/extraction"
	"github.com/jonathan/vendor-profiler/internal/types"
)

// EventType classifies progress events.
type EventType string

// Progress event types. A stream ends with exactly one terminal event:
// EventComplete, or EventError for the fatal content-retrieval failure.
// Section-level EventError events are informational and do not terminate.
const (
	EventStatus   EventType = "status"
	EventSection  EventType = "section"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

// ProgressEvent represents a progress update during a stream-mode run.
// Defaulted marks a section event whose extraction fell back to the empty
// default result.
type ProgressEvent struct {
	Type        EventType `json:"type"`
	Section     string    `json:"section,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Message     string    `json:"message,omitempty"`
	Defaulted   bool      `json:"defaulted,omitempty"`
	Data        any       `json:"data,omitempty"`
}

// ProgressCallback is called for every progress event in stream mode.
type ProgressCallback func(event ProgressEvent)

// ContentRetriever fetches a vendor website once per run.
type ContentRetriever interface {
	Fetch(ctx context.Context, url string) (*types.WebsiteContent, error)
}

// SectionExtractor produces one section's result; it never fails outward.
type SectionExtractor interface {
	Extract(ctx context.Context, content *types.WebsiteContent, kind extraction.SectionKind) extraction.Outcome
}

// Reconciler normalizes the merged draft.
type Reconciler interface {
	Reconcile(ctx context.Context, draft map[string]any) map[string]any
}

// RunStore persists run bookkeeping. All calls are best effort; failures are
// logged and never fail the pipeline.
type RunStore interface {
	CreateRun(ctx context.Context, websiteURL string) (uuid.UUID, error)
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	retriever  ContentRetriever
	extractor  SectionExtractor
	reconciler Reconciler
	store      RunStore // optional
}

// NewOrchestrator creates an Orchestrator. store may be nil to disable run
// bookkeeping.
func NewOrchestrator(retriever ContentRetriever, extractor SectionExtractor, reconciler Reconciler, store RunStore) *Orchestrator {
	return &Orchestrator{
		retriever:  retriever,
		extractor:  extractor,
		reconciler: reconciler,
		store:      store,
	}
}

// Run executes a batch-mode run: all five sections are extracted concurrently
// against the same immutable content, merged in the fixed section order, and
// reconciled. The only error returned is a content-retrieval failure.
func (o *Orchestrator) Run(ctx context.Context, url string) (map[string]any, error) {
	runID := o.startRun(ctx, url)

	content, err := o.retriever.Fetch(ctx, url)
	if err != nil {
		o.finishRun(ctx, runID, "failed")
		return nil, fmt.Errorf("content retrieval failed: %w", err)
	}

	sections := extraction.Sections()
	outcomes := make([]extraction.Outcome, len(sections))

	// Sections own disjoint output keys, so completion order does not matter;
	// merge order below is still fixed for determinism.
	g, gCtx := errgroup.WithContext(ctx)
	for i, kind := range sections {
		g.Go(func() error {
			outcomes[i] = o.extractor.Extract(gCtx, content, kind)
			return nil
		})
	}
	_ = g.Wait() // extractions never return errors

	draft := make(map[string]any)
	for _, outcome := range outcomes {
		mergeSection(draft, outcome.Result)
		o.saveArtifact(ctx, runID, string(outcome.Kind), outcome.Result)
	}

	final := o.reconciler.Reconcile(ctx, draft)
	o.saveArtifact(ctx, runID, "vendorProfileDraft", final)
	o.finishRun(ctx, runID, "completed")

	return final, nil
}

// RunStream executes a stream-mode run: sections are extracted sequentially
// in the fixed order, each reported through onProgress as it completes. The
// event sequence ends with exactly one terminal event (complete or error).
//
// Cancellation is cooperative and checked at section boundaries only: an
// in-flight extraction is allowed to finish, subsequent sections are not
// started.
func (o *Orchestrator) RunStream(ctx context.Context, url string, onProgress ProgressCallback) (map[string]any, error) {
	runID := o.startRun(ctx, url)

	emit := func(event ProgressEvent) {
		if onProgress != nil {
			onProgress(event)
		}
	}

	emit(ProgressEvent{Type: EventStatus, Message: "Fetching website content..."})

	content, err := o.retriever.Fetch(ctx, url)
	if err != nil {
		o.finishRun(ctx, runID, "failed")
		err = fmt.Errorf("content retrieval failed: %w", err)
		emit(ProgressEvent{Type: EventError, Message: err.Error()})
		return nil, err
	}

	accumulator := make(map[string]any)

	for _, kind := range extraction.Sections() {
		if err := ctx.Err(); err != nil {
			o.finishRun(ctx, runID, "canceled")
			return nil, err
		}

		emit(ProgressEvent{
			Type:        EventStatus,
			Section:     string(kind),
			DisplayName: kind.DisplayName(),
			Message:     fmt.Sprintf("Analyzing %s...", kind.DisplayName()),
		})

		// Let an in-flight extraction finish even if the caller disconnects;
		// the loop condition above stops the run before the next section.
		outcome := o.extractor.Extract(context.WithoutCancel(ctx), content, kind)

		if outcome.Defaulted && outcome.Err != nil {
			emit(ProgressEvent{
				Type:        EventError,
				Section:     string(kind),
				DisplayName: kind.DisplayName(),
				Message:     fmt.Sprintf("%s extraction failed, using empty defaults", kind.DisplayName()),
			})
		}

		mergeSection(accumulator, outcome.Result)
		o.saveArtifact(ctx, runID, string(kind), outcome.Result)

		emit(ProgressEvent{
			Type:        EventSection,
			Section:     string(kind),
			DisplayName: kind.DisplayName(),
			Defaulted:   outcome.Defaulted,
			Data:        outcome.Result,
		})
	}

	final := o.reconciler.Reconcile(ctx, accumulator)
	o.saveArtifact(ctx, runID, "vendorProfileDraft", final)
	o.finishRun(ctx, runID, "completed")

	emit(ProgressEvent{Type: EventComplete, Data: final})

	return final, nil
}

// mergeSection merges one section's keys into the draft by shallow union.
// Sections own disjoint keys by construction; on collision the later section
// wins.
func mergeSection(draft map[string]any, result map[string]any) {
	for key, value := range result {
		draft[key] = value
	}
}

// startRun creates the bookkeeping record for a run, returning uuid.Nil when
// bookkeeping is disabled or unavailable.
func (o *Orchestrator) startRun(ctx context.Context, url string) uuid.UUID {
	if o.store == nil {
		return uuid.Nil
	}
	runID, err := o.store.CreateRun(ctx, url)
	if err != nil {
		log.Printf("Warning: failed to create analysis run: %v", err)
		return uuid.Nil
	}
	return runID
}

// saveArtifact persists a run artifact, best effort.
func (o *Orchestrator) saveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) {
	if o.store == nil || runID == uuid.Nil {
		return
	}
	if err := o.store.SaveArtifact(ctx, runID, step, content); err != nil {
		log.Printf("Warning: failed to save artifact %s: %v", step, err)
	}
}

// finishRun marks a run's terminal status, best effort.
func (o *Orchestrator) finishRun(ctx context.Context, runID uuid.UUID, status string) {
	if o.store == nil || runID == uuid.Nil {
		return
	}
	if err := o.store.CompleteRun(ctx, runID, status); err != nil {
		log.Printf("Warning: failed to complete analysis run: %v", err)
	}
}
