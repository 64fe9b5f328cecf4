package usecases

import (
	"context"
	"errors"
	"log/slog"

	"lostmode-dispatcher/internal/data_plane/dto"
	"lostmode-dispatcher/internal/infra/csvio"
	"lostmode-dispatcher/internal/shared_kernel/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrEmptyBatch marks a run whose input had no data rows. It is terminal: no
// request is issued and no partial result exists.
var ErrEmptyBatch = errors.New("no devices to process")

func NewBatchDispatcher(sender CommandSender) *BatchDispatcher {
	return &BatchDispatcher{sender: sender}
}

// BatchDispatcher walks the input rows strictly in order, one device at a
// time: validate, build, send, record. Row failures of any kind become a
// DispatchOutcome and never stop the loop.
type BatchDispatcher struct {
	sender CommandSender
}

func (d *BatchDispatcher) Dispatch(ctx context.Context, records []csvio.Record, op domain.Operation) (domain.BatchResult, error) {
	if len(records) == 0 {
		return domain.BatchResult{}, ErrEmptyBatch
	}

	runID := uuid.NewString()
	ctx, span := otel.Tracer("lostmode_dispatcher").Start(ctx, "batch_dispatch",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("operation", string(op)),
			attribute.Int("devices", len(records)),
		))
	defer span.End()

	slog.Info("batch dispatch start",
		slog.String("run_id", runID),
		slog.String("operation", string(op)),
		slog.Int("devices", len(records)),
	)

	outcomes := make([]domain.DispatchOutcome, 0, len(records))
	for _, record := range records {
		outcomes = append(outcomes, d.dispatchOne(ctx, record, op))
	}

	slog.Info("batch dispatch did end",
		slog.String("run_id", runID),
		slog.Int("outcomes", len(outcomes)),
	)

	return domain.BatchResult{Outcomes: outcomes}, nil
}

func (d *BatchDispatcher) dispatchOne(ctx context.Context, record csvio.Record, op domain.Operation) domain.DispatchOutcome {
	serialNumber := record[ColumnSerialNumber]

	request, err := ValidateRow(record, op)
	if err != nil {
		slog.Warn("row failed validation",
			slog.String("serial_number", serialNumber),
			slog.Any("error", err),
		)
		return domain.DispatchOutcome{
			SerialNumber: serialNumber,
			Success:      false,
			Error:        err.Error(),
		}
	}

	payload, err := dto.FromDomain(request).ToXML()
	if err != nil {
		slog.Error("failed to send lost mode command",
			slog.String("serial_number", request.SerialNumber),
			slog.Any("error", err),
		)
		return domain.DispatchOutcome{
			SerialNumber: request.SerialNumber,
			Success:      false,
			Error:        "failed to send lost mode command",
		}
	}

	status, err := d.sender.SendCommand(ctx, payload)
	if err != nil {
		slog.Error("failed to send lost mode command",
			slog.String("serial_number", request.SerialNumber),
			slog.Int("status_code", status),
			slog.Any("error", err),
		)
		return domain.DispatchOutcome{
			SerialNumber: request.SerialNumber,
			Success:      false,
			StatusCode:   status,
			Error:        "failed to send lost mode command",
		}
	}

	slog.Debug("lost mode command sent",
		slog.String("serial_number", request.SerialNumber),
		slog.Int("status_code", status),
	)
	return domain.DispatchOutcome{
		SerialNumber: request.SerialNumber,
		Success:      true,
		StatusCode:   status,
	}
}
