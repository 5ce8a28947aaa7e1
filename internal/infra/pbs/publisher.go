package pbs

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"commons-dinner/internal/pkg/config"
	"commons-dinner/internal/pkg/errs"
	"commons-dinner/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNotConfirmed = errs.New("broker did not confirm the invoice export")

// Publisher hands finalized invoices to the PBS export queue and waits for the broker's confirm.
// The connection is dialed on first use and redialed after the broker closes it.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.ExportQueue}
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, errs.Wrap(err, "dial amqp")
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, errs.Wrap(err, "open amqp channel")
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, errs.Wrap(err, "enable publisher confirms")
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, errs.Wrapf(err, "declare queue %s", p.queue)
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, inv shared.InvoiceExport) error {
	body, err := json.Marshal(inv)
	if err != nil {
		return errs.Wrap(err, "marshal invoice export")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	dc, err := ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    inv.InvoiceID.String(),
		Timestamp:    time.Now().UTC(),
		Type:         "invoice.export",
		Body:         body,
	})
	if err != nil {
		return errs.Wrapf(err, "publish invoice %s", inv.InvoiceID)
	}
	// the invoice is stamped as exported only once the broker has it
	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return errs.Wrapf(err, "await confirm for invoice %s", inv.InvoiceID)
	}
	if !acked {
		return errs.Wrapf(ErrNotConfirmed, "invoice %s", inv.InvoiceID)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
