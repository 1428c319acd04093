package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// StartSettlementConsumer is the reference kas intake: it consumes the
// settlement queue and appends one line per settlement to logPath.  It
// reconnects with backoff until ctx is cancelled and then returns nil.
// Malformed messages are rejected without requeue.
func StartSettlementConsumer(ctx context.Context, url, queue, logPath string) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            slog.Warn("settlement-consumer: dial failed", "err", err, "retry_in", backoff)
            if !sleep(ctx, backoff) {
                return nil
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = consume(ctx, conn, queue, logPath)
        _ = conn.Close()
        if ctx.Err() != nil {
            return nil
        }
        slog.Warn("settlement-consumer: reconnecting", "err", err)
        if !sleep(ctx, 2*time.Second) {
            return nil
        }
    }
}

func consume(ctx context.Context, conn *amqp.Connection, queue, logPath string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("open channel: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(20, 0, false); err != nil {
        slog.Warn("settlement-consumer: qos", "err", err)
    }
    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("declare %s: %w", queue, err)
    }
    msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("consume %s: %w", queue, err)
    }
    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := appendSettlement(logPath, d.Body); err != nil {
                slog.Error("settlement-consumer: rejected message", "err", err, "message_id", d.MessageId)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// appendSettlement decodes body and appends a single human-readable line
// to path, creating its directory if needed.
func appendSettlement(path string, body []byte) error {
    var ev SettlementEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.EventID == "" || ev.AuctionID == 0 {
        return errors.New("settlement without event_id or auction_id")
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return fmt.Errorf("mkdir: %w", err)
    }
    f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open ledger log: %w", err)
    }
    defer f.Close()

    line := fmt.Sprintf("[%s] Lelang settled | event_id=%s | auction_id=%d | item=%q | winner=%q | amount=%d\n",
        ev.SettledAt, ev.EventID, ev.AuctionID, ev.ItemName, ev.WinnerName, ev.Amount)
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write ledger log: %w", err)
    }
    return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
