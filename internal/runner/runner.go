package runner

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/jobward/jobward/internal/domain"
	"github.com/jobward/jobward/internal/job"
	"github.com/jobward/jobward/internal/metrics"
)

// tracerName is the instrumentation scope for job run spans.
const tracerName = "github.com/jobward/jobward/internal/runner"

// Executor runs a named unit of work and reports its outcome as a value.
// The synchronous Runner is the only implementation today; the interface
// exists so a queued/asynchronous executor can be substituted without
// touching the Runnable contract or the execution ledger schema.
type Executor interface {
	Run(ctx context.Context, name string, r job.Runnable) *domain.Result
}

var _ Executor = (*Runner)(nil)

// Runner executes jobs synchronously on the calling goroutine. Failures of
// the unit of work are captured into the returned Result and never escape
// this call frame; converting a failed Result back into an error is the
// caller's responsibility.
type Runner struct {
	logger *zap.Logger
	tracer trace.Tracer
}

// New creates a Runner. If no global TracerProvider is installed the spans
// are no-ops.
func New(logger *zap.Logger) *Runner {
	return &Runner{
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// Run invokes r under supervision and returns exactly one Result. The Result
// status is SUCCESS iff the unit of work returned normally and FAILED iff it
// returned an error or panicked; timing is recorded on both paths.
func (rn *Runner) Run(ctx context.Context, name string, r job.Runnable) *domain.Result {
	res := &domain.Result{
		JobName:   name,
		Status:    domain.StatusRunning,
		StartedAt: time.Now().UTC(),
	}

	ctx, span := rn.tracer.Start(ctx, "job.run",
		trace.WithAttributes(attribute.String("job.name", name)),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	rn.logger.Info("Job started", zap.String("job", name))
	metrics.RunsInFlight.Inc()

	output, err := rn.invoke(ctx, r)

	res.CompletedAt = time.Now().UTC()
	res.Duration = res.CompletedAt.Sub(res.StartedAt)

	metrics.RunsInFlight.Dec()
	metrics.RunDuration.WithLabelValues(name).Observe(res.Duration.Seconds())

	if err != nil {
		res.Status = domain.StatusFailed
		res.Err = err

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("job.status", string(domain.StatusFailed)))
		metrics.RunsTotal.WithLabelValues(name, string(domain.StatusFailed)).Inc()

		rn.logger.Error("Job failed",
			zap.String("job", name),
			zap.Duration("duration", res.Duration),
			zap.Error(err),
		)
		return res
	}

	res.Status = domain.StatusSuccess
	res.Output = output

	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attribute.String("job.status", string(domain.StatusSuccess)))
	metrics.RunsTotal.WithLabelValues(name, string(domain.StatusSuccess)).Inc()

	rn.logger.Info("Job succeeded",
		zap.String("job", name),
		zap.Duration("duration", res.Duration),
	)
	return res
}

// invoke runs the unit of work and converts panics into errors so that no
// failure mode can escape the Runner.
func (rn *Runner) invoke(ctx context.Context, r job.Runnable) (output any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("job panicked: %v", rec)
		}
	}()
	return r.Run(ctx)
}
