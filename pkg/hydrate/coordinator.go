package hydrate

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errs "github.com/lumina-dev/lumina/internal/errors"
	"github.com/lumina-dev/lumina/pkg/deferred"
	"github.com/lumina-dev/lumina/pkg/routetree"
	"github.com/lumina-dev/lumina/pkg/wire"
)

const tracerName = "lumina/hydrate"

// State is the decoded hydration state: what the router resumes from.
// Route entries in LoaderData/ActionData are fields objects or
// *deferred.Deferred handles resolving to fields objects.
type State struct {
	Matches    []Match
	Errors     map[string]error
	LoaderData map[string]any
	ActionData map[string]any
}

// Handoff is what the coordinator exposes to the rendering runtime. The
// coordinator never calls into rendering itself.
type Handoff struct {
	Tree      *routetree.Node
	FileMap   routetree.FileMap
	ObjectMap routetree.ObjectMap
	State     *State
}

// RenderFunc commits the resumed page. It is scheduled as an interruptible
// background update, never run inside Bootstrap.
type RenderFunc func(*Handoff)

// Coordinator orchestrates client bootstrap: read the embedded payload,
// decode it, pre-resolve the lazy modules of the active routes, and hand
// the result to the rendering runtime.
type Coordinator struct {
	routes    *routetree.Result
	source    *Source
	decoder   *wire.Decoder
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	scheduler Scheduler
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithScheduler sets the commit scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) {
		c.scheduler = s
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Coordinator) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// New creates a Coordinator over a built route tree and a payload source.
// The route tree's error-deserialization hook, if any, is installed into the
// wire decoder.
func New(routes *routetree.Result, source *Source, opts ...Option) *Coordinator {
	c := &Coordinator{
		routes:    routes,
		source:    source,
		decoder:   &wire.Decoder{Override: routes.DecodeError},
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
		scheduler: DefaultScheduler,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReadPayload consumes the single-read payload source. An absent source or
// an empty source yields the empty payload; a payload can only ever be read
// once per bootstrap.
func (c *Coordinator) ReadPayload() (*Payload, error) {
	if c.source == nil {
		return EmptyPayload(), nil
	}

	p, err, ok := c.source.Take()
	if !ok {
		c.logger.Debug("hydration payload already consumed")
		return EmptyPayload(), nil
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.decodeFailures.Inc()
		}
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.payloadReads.Inc()
	}
	return p, nil
}

// Decode converts the wire payload into resumed state. Route errors decode
// through the error codec (override hook first); loader and action data
// decode through the route data codec. Decode degrades on malformed entries
// rather than failing: hydration stays resilient to partial payloads.
func (c *Coordinator) Decode(p *Payload) *State {
	if p == nil {
		p = EmptyPayload()
	}

	st := &State{Matches: p.Matches}

	if len(p.Errors) > 0 {
		st.Errors = make(map[string]error, len(p.Errors))
		for id, desc := range p.Errors {
			st.Errors[id] = c.decoder.DecodeError(desc)
		}
	}

	st.LoaderData = c.decoder.DecodeRouteData(p.LoaderData)
	st.ActionData = c.decoder.DecodeRouteData(p.ActionData)

	if c.metrics != nil {
		c.metrics.deferredFields.Add(float64(countPending(st.LoaderData) + countPending(st.ActionData)))
	}
	return st
}

// ResolveActiveLazyRoutes loads the modules of the matched routes that still
// carry a lazy placeholder, merging only the exports each module actually
// has and clearing the placeholder. Unknown match IDs and routes without a
// placeholder are skipped. Processing is sequential and fail-fast: the first
// rejection propagates, with no partial field application for the failing
// route, and routes not yet reached stay untouched.
func (c *Coordinator) ResolveActiveLazyRoutes(ctx context.Context, matches []Match) error {
	for _, m := range matches {
		node, ok := c.routes.ObjectMap[m.ID]
		if !ok || node.Lazy == nil {
			continue
		}

		start := time.Now()
		res, err := node.Lazy(ctx)
		if c.metrics != nil {
			c.metrics.lazyLoads.Inc()
			c.metrics.lazyDuration.Observe(time.Since(start).Seconds())
		}
		if err != nil {
			if c.metrics != nil {
				c.metrics.lazyFailures.Inc()
			}
			c.logger.Error("lazy route module failed to load",
				slog.String("route", m.ID),
				slog.Any("error", err))
			return errs.New("L041").WithRoute(m.ID).Wrap(err)
		}

		node.ApplyModule(res)
	}
	return nil
}

// Bootstrap runs the full resume sequence: read → decode → resolve active
// lazy routes → hand off. The render callback is scheduled as an
// interruptible background update; Bootstrap returns as soon as the handoff
// is ready.
func (c *Coordinator) Bootstrap(ctx context.Context, render RenderFunc) (*Handoff, error) {
	ctx, span := c.tracer.Start(ctx, "lumina.bootstrap")
	defer span.End()

	payload, err := c.ReadPayload()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read payload")
		return nil, err
	}
	span.AddEvent("payload read", trace.WithAttributes(
		attribute.Int("matches", len(payload.Matches)),
	))

	state := c.Decode(payload)
	span.AddEvent("payload decoded", trace.WithAttributes(
		attribute.Int("loader_routes", len(state.LoaderData)),
		attribute.Int("action_routes", len(state.ActionData)),
		attribute.Int("errors", len(state.Errors)),
	))

	if err := c.ResolveActiveLazyRoutes(ctx, state.Matches); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "resolve lazy routes")
		return nil, err
	}
	span.AddEvent("lazy routes resolved")

	handoff := &Handoff{
		Tree:      c.routes.Tree,
		FileMap:   c.routes.FileMap,
		ObjectMap: c.routes.ObjectMap,
		State:     state,
	}

	if render != nil {
		c.scheduler.Schedule(func() {
			render(handoff)
		})
	}

	c.logger.Debug("bootstrap complete",
		slog.Int("matches", len(state.Matches)),
		slog.Int("routes", len(c.routes.ObjectMap)))
	return handoff, nil
}

// countPending counts route entries decoded into pending handles.
func countPending(data map[string]any) int {
	n := 0
	for _, entry := range data {
		if _, ok := entry.(*deferred.Deferred); ok {
			n++
		}
	}
	return n
}
