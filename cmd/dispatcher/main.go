package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lostmode-dispatcher/cmd/config"
	"lostmode-dispatcher/cmd/dispatcher/wire"
	"lostmode-dispatcher/internal/control_plane/usecases"
	"lostmode-dispatcher/internal/infra/csvio"
	"lostmode-dispatcher/internal/infra/jamf"
	"lostmode-dispatcher/internal/infra/node"
	"lostmode-dispatcher/internal/shared_kernel/domain"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/term"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	csvPath := pflag.StringP("csv", "c", "", "path to the input CSV")
	mode := pflag.StringP("mode", "m", "", "enable or disable lost mode")
	pflag.Parse()

	appConfig := config.LoadConfig()

	level := logLevelMapping[appConfig.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	slog.Debug("config loaded", "data", appConfig)

	if *mode == "" {
		fmt.Fprintln(os.Stderr, "requires a mode be specified: either enable or disable (--mode or -m)")
		os.Exit(1)
	}
	operation, err := domain.ParseOperation(*mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mode needs to be either 'enable' or 'disable' (--mode or -m)")
		os.Exit(1)
	}

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "requires a CSV path (--csv or -c)")
		os.Exit(1)
	}
	file, err := os.Open(*csvPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "CSV doesn't exist, check path and try again")
		os.Exit(1)
	}
	defer file.Close()

	credentials, err := promptCredentials()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading credentials: %v\n", err)
		os.Exit(1)
	}

	records, err := csvio.ReadRecords(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading CSV: %v\n", err)
		os.Exit(1)
	}

	shutdownOtel := startOTel()
	defer func() {
		if err := shutdownOtel(); err != nil {
			slog.Warn("otel shutdown", slog.Any("error", err))
		}
	}()

	dispatcher := wire.InitializeBatchDispatcher(credentials)

	result, err := dispatcher.Dispatch(context.Background(), records, operation)
	if err != nil {
		if errors.Is(err, usecases.ErrEmptyBatch) {
			fmt.Fprintln(os.Stderr, "no devices listed in CSV, no commands to send")
		} else {
			fmt.Fprintf(os.Stderr, "dispatch: %v\n", err)
		}
		os.Exit(1)
	}

	var failed int
	for _, outcome := range result.Outcomes {
		if !outcome.Success {
			failed++
		}
	}
	slog.Info("dispatch complete",
		slog.Int("devices", len(result.Outcomes)),
		slog.Int("failed", failed),
	)
}

// promptCredentials asks for the API username and a hidden-input password.
// Credentials apply uniformly to every request of the run.
func promptCredentials() (jamf.Credentials, error) {
	fmt.Print("API Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, err := reader.ReadString('\n')
	if err != nil {
		return jamf.Credentials{}, fmt.Errorf("reading username: %w", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return jamf.Credentials{}, fmt.Errorf("reading password: %w", err)
	}

	return jamf.Credentials{
		Username: strings.TrimSpace(username),
		Password: string(password),
	}, nil
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

type ShutdownFunc func() error

const _defaultEndpoint = "localhost:4317"

func startOTel() ShutdownFunc {
	shutdown, err := startTraceProvider(context.Background())
	if err != nil {
		panic(err)
	}
	return shutdown
}

func startTraceProvider(ctx context.Context) (ShutdownFunc, error) {
	exp, err := newTraceExporter(ctx)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("lostmode-dispatcher"),
		)),
	)
	otel.SetTracerProvider(tp)

	return func() error {
		return tp.Shutdown(ctx)
	}, nil
}

func newTraceExporter(ctx context.Context) (trace.SpanExporter, error) {
	endpoint := _defaultEndpoint
	if value, ok := os.LookupEnv("LOSTMODE_DISPATCHER_OTELCOL_ENDPOINT"); ok {
		endpoint = value
	}

	return otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}
