package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"net/http"
	"time"

	"github.com/sheikh-saqib/bulk-payouts/internal/batch"
	"github.com/sheikh-saqib/bulk-payouts/internal/config"
	"github.com/sheikh-saqib/bulk-payouts/internal/disburse"
	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	"github.com/sheikh-saqib/bulk-payouts/internal/events/kafka"
	"github.com/sheikh-saqib/bulk-payouts/internal/events/memory"
	"github.com/sheikh-saqib/bulk-payouts/internal/idgen"
	"github.com/sheikh-saqib/bulk-payouts/internal/input"
	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
	"github.com/sheikh-saqib/bulk-payouts/internal/logging"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
	"github.com/sheikh-saqib/bulk-payouts/internal/provider/paypal"
	"github.com/sheikh-saqib/bulk-payouts/internal/report"
	"github.com/sheikh-saqib/bulk-payouts/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const telemetryShutdownTimeout = 5 * time.Second

// Run executes one payout from the command line arguments (without argv[0])
// and returns the process exit code. Status lines go to stdout, diagnostics
// to stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	inv, err := ParseInvocation(args)
	if err != nil {
		fmt.Fprintf(stdout, "%v\n\n", err)
		Usage(stdout)
		return ExitCode(err)
	}
	if inv.Help {
		Usage(stdout)
		return ExitSuccess
	}

	reporter := report.New(stdout)

	cfg, err := config.Load()
	if err != nil {
		reporter.Error(err)
		return ExitCode(err)
	}

	logger, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		reporter.Error(&errs.ConfigurationError{Field: "LOG_LEVEL", Message: "invalid", Err: err})
		return ExitConfigError
	}
	defer func() { _ = logger.Sync() }()

	tp, err := telemetry.Setup(ctx, cfg.TracesExporter, stderr)
	if err != nil {
		reporter.Error(&errs.ConfigurationError{Field: "OTEL_TRACES_EXPORTER", Message: "tracer setup failed", Err: err})
		return ExitConfigError
	}
	defer func() {
		// flush even when ctx was cancelled by a signal
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryShutdownTimeout)
		defer cancel()
		if serr := tp.Shutdown(sctx); serr != nil {
			logger.Warn("shutdown tracer provider", zap.Error(serr))
		}
	}()

	result, err := execute(ctx, inv, cfg, tp, logger, reporter)
	if err != nil {
		logger.Error("payout run aborted", zap.Error(err))
		reporter.Error(err)
		return ExitCode(err)
	}
	if !result.Succeeded {
		return ExitPayoutFailed
	}
	return ExitSuccess
}

func execute(ctx context.Context, inv Invocation, cfg *config.Config, tp trace.TracerProvider, logger *zap.Logger, reporter *report.Reporter) (result models.BatchResult, err error) {
	creds, err := config.LoadCredentials(config.ResolveCredentialsPath(inv.CredentialsPath))
	if err != nil {
		return result, err
	}

	records, err := input.ReadFile(inv.InputPath)
	if err != nil {
		return result, err
	}

	client, err := paypal.NewClient(paypal.Config{
		ClientID:       creds.ClientID,
		ClientSecret:   creds.ClientSecret,
		Mode:           inv.Mode,
		BaseURL:        cfg.BaseURL,
		HTTPClient:     &http.Client{Timeout: cfg.HTTPTimeout},
		TracerProvider: tp,
	}, logger)
	if err != nil {
		return result, err
	}

	var publisher interfaces.EventPublisher = memory.NewPublisher()
	if cfg.EventsEnabled() {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if cerr := kp.Close(); cerr != nil {
				logger.Warn("close kafka publisher", zap.Error(cerr))
			}
		}()
		publisher = kp
	}

	svc := disburse.NewService(
		batch.NewBuilder(newIDGenerator(cfg.IDFormat)),
		client,
		publisher,
		reporter,
		logger,
		disburse.Options{Subject: cfg.Subject, Mode: inv.Mode, Topic: cfg.KafkaTopic},
	)
	return svc.Run(ctx, records)
}

func newIDGenerator(format string) *idgen.Generator {
	if format == config.IDFormatUUID {
		return idgen.NewUUID(rand.Reader)
	}
	return idgen.NewNumeric(mrand.New(mrand.NewSource(time.Now().UnixNano())))
}

// ExitCode maps an error from a run to the process exit code.
func ExitCode(err error) int {
	var invErr *InvocationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &invErr) && invErr != nil:
		if invErr.ExitCode != 0 {
			return invErr.ExitCode
		}
		return ExitInvalidInvocation
	case errors.Is(err, errs.ErrConfiguration):
		return ExitConfigError
	case errors.Is(err, errs.ErrInputParse):
		return ExitInputError
	default:
		return ExitInternalError
	}
}
