package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Setenv("PAYOUT_API_BASE_URL", baseURL)
	t.Setenv("PAYOUT_SUBJECT", "")
	t.Setenv("PAYOUT_HTTP_TIMEOUT", "")
	t.Setenv("PAYOUT_ID_FORMAT", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("OTEL_TRACES_EXPORTER", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
}

func writeInputs(t *testing.T, sheet string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "payees.csv")
	credPath := filepath.Join(dir, "creds")
	require.NoError(t, os.WriteFile(csvPath, []byte(sheet), 0o600))
	require.NoError(t, os.WriteFile(credPath, []byte("client\nsecret\n"), 0o600))
	return csvPath, credPath
}

func fakeProvider(t *testing.T, payoutStatus int, payoutBody string) (*httptest.Server, *int) {
	t.Helper()
	payouts := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"access_token":"tok"}`)
	})
	mux.HandleFunc("/v1/payments/payouts", func(w http.ResponseWriter, r *http.Request) {
		payouts++
		w.WriteHeader(payoutStatus)
		_, _ = io.WriteString(w, payoutBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &payouts
}

const sheet = "e-mail,payout,PO-number\na@example.com,5,x\nb@example.com,\"15,000\",y\n"

func TestRunSubmitsBatch(t *testing.T) {
	srv, payouts := fakeProvider(t, http.StatusCreated, `{"batch_header":{"payout_batch_id":"PB-9","batch_status":"PENDING"}}`)
	setupEnv(t, srv.URL)
	csvPath, credPath := writeInputs(t, sheet)

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, credPath, "--sandbox"}, &stdout, &stderr)

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 1, *payouts)
	out := stdout.String()
	assert.Contains(t, out, "Sending payment to a@example.com of amount 5.00 for PO: x")
	assert.Contains(t, out, "Sending payment to b@example.com of amount 10000.00 for PO: y")
	assert.Contains(t, out, "Sending payment to b@example.com of amount 5000.00 for PO: y")
	assert.Contains(t, out, "Payout Batch With ID: PB-9")
}

func TestRunProviderFailureExitsNonZero(t *testing.T) {
	srv, payouts := fakeProvider(t, http.StatusUnprocessableEntity, `{"name":"INSUFFICIENT_FUNDS","message":"Sender does not have sufficient funds."}`)
	setupEnv(t, srv.URL)
	csvPath, credPath := writeInputs(t, sheet)

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, credPath}, &stdout, &stderr)

	assert.Equal(t, ExitPayoutFailed, code)
	assert.Equal(t, 1, *payouts)
	assert.Contains(t, stdout.String(), "Payout failed due to: INSUFFICIENT_FUNDS: Sender does not have sufficient funds.")
	assert.Contains(t, stdout.String(), "sender_batch_id")
}

func TestRunMalformedAmountSendsNothing(t *testing.T) {
	srv, payouts := fakeProvider(t, http.StatusCreated, `{}`)
	setupEnv(t, srv.URL)
	csvPath, credPath := writeInputs(t, "e-mail,payout,PO-number\na@example.com,abc,x\n")

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, credPath}, &stdout, &stderr)

	assert.Equal(t, ExitInputError, code)
	assert.Zero(t, *payouts)
	assert.Contains(t, stdout.String(), "Input error: row 1")
	assert.NotContains(t, stdout.String(), "Sending payment")
}

func TestRunNothingToPayExitsZero(t *testing.T) {
	srv, payouts := fakeProvider(t, http.StatusCreated, `{}`)
	setupEnv(t, srv.URL)
	csvPath, credPath := writeInputs(t, "e-mail,payout,PO-number\na@example.com,0,x\nb@example.com,-12.50,y\n")

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, credPath}, &stdout, &stderr)

	assert.Equal(t, ExitSuccess, code)
	assert.Zero(t, *payouts)
	assert.Contains(t, stdout.String(), "Nothing to pay")
	assert.NotContains(t, stdout.String(), "Sending payment")
}

func TestRunExportsSubmitSpan(t *testing.T) {
	srv, _ := fakeProvider(t, http.StatusCreated, `{"batch_header":{"payout_batch_id":"PB-9","batch_status":"PENDING"}}`)
	setupEnv(t, srv.URL)
	t.Setenv("OTEL_TRACES_EXPORTER", "stdout")
	csvPath, credPath := writeInputs(t, sheet)

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, credPath, "--sandbox"}, &stdout, &stderr)

	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr.String(), "paypal.payouts.create")
	assert.Contains(t, stderr.String(), "PB-9")
	assert.NotContains(t, stdout.String(), "paypal.payouts.create")
}

func TestRunMissingCredentials(t *testing.T) {
	srv, payouts := fakeProvider(t, http.StatusCreated, `{}`)
	setupEnv(t, srv.URL)
	csvPath, _ := writeInputs(t, sheet)

	// no ./credentials in the package directory, so the fallback is missing too
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{csvPath, filepath.Join(t.TempDir(), "nope")}, &stdout, &stderr)

	assert.Equal(t, ExitConfigError, code)
	assert.Zero(t, *payouts)
	assert.Contains(t, stdout.String(), "couldn't find credentials file")
}

func TestRunHelpAndBadInvocation(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, ExitSuccess, Run(context.Background(), []string{"help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage: payout")

	stdout.Reset()
	assert.Equal(t, ExitInvalidInvocation, Run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "missing <csv file>")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitConfigError, ExitCode(errs.Configf("x", "y")))
	assert.Equal(t, ExitInputError, ExitCode(&errs.InputParseError{Err: errors.New("bad")}))
	assert.Equal(t, ExitInvalidInvocation, ExitCode(&InvocationError{Message: "m"}))
	assert.Equal(t, ExitInternalError, ExitCode(errors.New("boom")))
}
