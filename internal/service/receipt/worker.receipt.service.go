package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/rabbitmq"
	s3aws "pos-terminal/internal/pkg/storage/s3"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Printer writes a rendered receipt somewhere a person can pick it up.
type Printer interface {
	Print(ctx context.Context, job *PrintJob) error
}

type devicePrinter struct {
	mu     sync.Mutex
	device string
}

// NewDevicePrinter appends receipts to device, typically a character device
// or spool file. An empty device logs the receipt instead.
func NewDevicePrinter(device string) Printer {
	return &devicePrinter{device: device}
}

func (p *devicePrinter) Print(_ context.Context, job *PrintJob) error {
	if p.device == "" {
		logger.Info.Printf("receipt %s (terminal %s):\n%s", job.OrderID, job.TerminalID, job.Text)
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.device, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open printer %s: %w", p.device, err)
	}
	defer f.Close()

	if _, err := f.WriteString(job.Text + "\n\n\n"); err != nil {
		return fmt.Errorf("failed to write to printer %s: %w", p.device, err)
	}
	return nil
}

// ArchiveKey is where a printed receipt is stored in the archive bucket.
func ArchiveKey(job *PrintJob) string {
	terminal := job.TerminalID
	if terminal == "" {
		terminal = "unknown"
	}
	return path.Join("receipts", terminal, job.OrderID+".txt")
}

// NewPrintHandler consumes print jobs. A nil archive skips archiving. An
// archive failure is logged and does not fail the job.
func NewPrintHandler(printer Printer, archive s3aws.Is3) rabbitmq.MessageHandler {
	return func(ctx context.Context, msg *amqp.Delivery) error {
		var job PrintJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			return fmt.Errorf("failed to decode print job: %w", err)
		}
		if job.OrderID == "" || job.Text == "" {
			return fmt.Errorf("print job %s is incomplete", msg.MessageId)
		}

		if err := printer.Print(ctx, &job); err != nil {
			return err
		}

		if archive != nil {
			if err := archive.UploadFile(ctx, ArchiveKey(&job), []byte(job.Text), "text/plain; charset=utf-8"); err != nil {
				logger.Error.Printf("failed to archive receipt %s: %v", job.OrderID, err)
			}
		}
		return nil
	}
}
