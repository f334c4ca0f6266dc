// Package leadimport turns inbound WhatsApp chat messages into diver contact
// candidates: it extracts profile fields from free text, scores confidence,
// applies the operator-configured admission policy and emits exactly one
// terminal decision per message.
package leadimport

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ContactStore is the external contact-store collaborator that persists an
// admitted lead.
type ContactStore interface {
	CreateContact(ctx context.Context, p Profile, prov Provenance) error
}

// Responder is the outbound-messaging collaborator. Sends are best-effort; a
// failed reply never changes the admission decision.
type Responder interface {
	SendTemplate(ctx context.Context, to, templateID string) error
}

// DecisionRecorder persists every decision for the recent-imports feed and
// the replayable decision log.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, msg InboundMessage, p Profile, score int, d Decision)
}

// Notifier pushes a decision to live dashboard listeners. Only called when
// NotifyOnImport is set.
type Notifier interface {
	NotifyDecision(msg InboundMessage, p Profile, score int, d Decision)
}

// PipelineDeps wires the collaborators into the pipeline. Directory and Store
// are required for a functional pipeline; Responder, Recorder and Notifier
// are optional.
type PipelineDeps struct {
	Directory ContactDirectory
	Store     ContactStore
	Responder Responder
	Recorder  DecisionRecorder
	Notifier  Notifier

	Settings Settings
	Location *time.Location

	LookupTimeout time.Duration
	ImportTimeout time.Duration

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

// Pipeline processes inbound messages concurrently. Each message is an
// independent unit of work; the only shared state is the settings snapshot
// pointer and the stats aggregator, both safe for concurrent use.
type Pipeline struct {
	engine    *Engine
	store     ContactStore
	responder Responder
	recorder  DecisionRecorder
	notifier  Notifier
	stats     *Stats

	settings      atomic.Pointer[Settings]
	clock         func() time.Time
	importTimeout time.Duration

	wg sync.WaitGroup
}

func NewPipeline(deps PipelineDeps) (*Pipeline, error) {
	if err := deps.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	importTimeout := deps.ImportTimeout
	if importTimeout <= 0 {
		importTimeout = 10 * time.Second
	}

	p := &Pipeline{
		engine:        NewEngine(NewDuplicateDetector(deps.Directory, deps.LookupTimeout), deps.Location),
		store:         deps.Store,
		responder:     deps.Responder,
		recorder:      deps.Recorder,
		notifier:      deps.Notifier,
		stats:         NewStats(),
		clock:         clock,
		importTimeout: importTimeout,
	}
	s := deps.Settings
	p.settings.Store(&s)
	return p, nil
}

// Settings returns the current policy snapshot.
func (p *Pipeline) Settings() Settings { return *p.settings.Load() }

// Reconfigure atomically swaps the policy settings. Decisions already in
// flight keep the snapshot they started with.
func (p *Pipeline) Reconfigure(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	p.settings.Store(&s)
	return nil
}

// Stats exposes the aggregator for the dashboard handlers.
func (p *Pipeline) Stats() *Stats { return p.stats }

// ProcessMessage runs one message through the pipeline under the current
// settings snapshot.
func (p *Pipeline) ProcessMessage(ctx context.Context, msg InboundMessage) Decision {
	return p.Process(ctx, msg, p.Settings())
}

// Process runs extraction, scoring, duplicate detection, policy evaluation,
// import and auto-reply for one message under an explicit settings snapshot.
// It always returns exactly one decision and records exactly one stats
// increment; internal panics are caught and mapped to an Error decision.
func (p *Pipeline) Process(ctx context.Context, msg InboundMessage, s Settings) (d Decision) {
	start := p.clock()
	committed := false

	// commit is the single exit path: auto-reply, stats, decision log and
	// dashboard notification happen here, after any import side effect, so a
	// decision is never half-applied.
	commit := func(profile Profile, score int) {
		if committed {
			return
		}
		committed = true

		if tmpl, ok := SelectReply(s, d); ok && p.responder != nil {
			if err := p.responder.SendTemplate(ctx, msg.FromAddress, tmpl); err != nil {
				log.Printf("lead %s: auto-reply %q failed: %v", msg.ID, tmpl, err)
			}
		}
		p.stats.Record(d, p.clock().Sub(msg.ReceivedAt))
		if p.recorder != nil {
			p.recorder.RecordDecision(ctx, msg, profile, score, d)
		}
		if s.NotifyOnImport && p.notifier != nil {
			p.notifier.NotifyDecision(msg, profile, score, d)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("lead %s: pipeline panic: %v", msg.ID, r)
			d = errorDecision(fmt.Sprintf("internal failure: %v", r))
			commit(Profile{RawText: msg.Text}, 0)
		}
	}()

	profile := Extract(msg.Text)
	score := Score(profile)

	d = p.engine.Evaluate(ctx, s, profile, score, start)

	if d.Kind == DecisionImported {
		ictx, cancel := context.WithTimeout(ctx, p.importTimeout)
		err := p.store.CreateContact(ictx, profile, Provenance{
			Source:      msg.Channel,
			MessageID:   msg.ID,
			FromAddress: msg.FromAddress,
			RawText:     msg.Text,
			Confidence:  score,
			ReceivedAt:  msg.ReceivedAt,
		})
		cancel()
		if err != nil {
			// Not retried here; replay is the decision log's job.
			d = errorDecision("contact import failed: " + err.Error())
		}
	}

	commit(profile, score)
	return d
}

// Dispatch processes a message on its own goroutine, tracked for Drain.
func (p *Pipeline) Dispatch(msg InboundMessage) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.ProcessMessage(context.Background(), msg)
	}()
}

// Drain waits for in-flight messages to reach a terminal decision, or for
// ctx to expire.
func (p *Pipeline) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
