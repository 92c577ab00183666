package serverApp

import (
	"fmt"
	config "pos-terminal/configs"
	"pos-terminal/internal/pkg/logger"
	"pos-terminal/internal/pkg/rabbitmq"
	receiptService "pos-terminal/internal/service/receipt"
)

// InitWorker starts the receipt print consumer. The returned subscriber must
// be stopped on shutdown.
func InitWorker(payload *config.SetupServerDto, publisher *rabbitmq.Publisher) (*rabbitmq.Subscriber, error) {
	env := payload.Env

	if err := publisher.DeclareQueue(env.ReceiptQueue, rabbitmq.DefaultQueueConfig()); err != nil {
		return nil, err
	}

	printer := receiptService.NewDevicePrinter(env.PrinterDevice)
	handler := receiptService.NewPrintHandler(printer, payload.S3)

	opts := rabbitmq.DefaultSubscribeOptions(env.ReceiptQueue)
	opts.WorkerCount = 1
	opts.PrefetchCount = 1

	sub, err := rabbitmq.NewSubscriber(*payload.Ctx, payload.Rb, handler, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt subscriber: %w", err)
	}
	if err := sub.Start(); err != nil {
		return nil, fmt.Errorf("failed to start receipt subscriber: %w", err)
	}

	logger.Info.Printf("Receipt printer listening on %s", env.ReceiptQueue)
	return sub, nil
}
