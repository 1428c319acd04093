package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/lelang-masjid/internal/model"
)

// SettlementPublisher publishes settlements to a durable RabbitMQ queue.
// Each call dials the broker; completed auctions are rare enough that a
// pooled connection is not worth its reconnect handling.
type SettlementPublisher struct {
    url   string
    queue string
}

// NewSettlementPublisher returns a publisher for queue on the broker at url.
func NewSettlementPublisher(url, queue string) *SettlementPublisher {
    return &SettlementPublisher{url: url, queue: queue}
}

// Settle publishes s as a persistent JSON message.  The message id is the
// settlement's EventID.
func (p *SettlementPublisher) Settle(ctx context.Context, s model.Settlement) error {
    body, err := json.Marshal(NewSettlementEvent(s))
    if err != nil {
        return fmt.Errorf("marshal settlement: %w", err)
    }
    conn, err := amqp.Dial(p.url)
    if err != nil {
        return fmt.Errorf("dial broker: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("declare %s: %w", p.queue, err)
    }
    err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    s.EventID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    })
    if err != nil {
        return fmt.Errorf("publish to %s: %w", p.queue, err)
    }
    return nil
}
