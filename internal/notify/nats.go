// Package notify publishes finished generate and build operations to NATS so that other
// services (deployers, cache purgers) can react to new output.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/retry"
)

// publisher is the subset of *nats.Conn used by Notifier.
type publisher interface {
	Publish(subject string, data []byte) error
	FlushTimeout(timeout time.Duration) error
}

// Notifier publishes events to <prefix>.<event type>, e.g. sitebuilder.events.site.built.
type Notifier struct {
	conn    publisher
	closer  func()
	prefix  string
	timeout time.Duration
	policy  retry.Policy
}

// Connect dials the NATS server at url.
func Connect(url, subjectPrefix string) (*Notifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("sitebuilder"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryNetwork, "failed to connect to NATS").
			WithContext("url", url).
			Build()
	}
	slog.Info("NATS notifier connected", slog.String("url", url), slog.String("subject", subjectPrefix))
	return newNotifier(conn, conn.Close, subjectPrefix), nil
}

func newNotifier(conn publisher, closer func(), prefix string) *Notifier {
	return &Notifier{
		conn:    conn,
		closer:  closer,
		prefix:  strings.TrimSuffix(prefix, "."),
		timeout: 5 * time.Second,
		policy:  retry.NewPolicy(retry.BackoffFixed, 0, 0, 0),
	}
}

// WithRetry sets the backoff policy applied when publishing or flushing fails.
func (n *Notifier) WithRetry(p retry.Policy) *Notifier {
	n.policy = p
	return n
}

// Subject returns the subject an event of the given type is published on.
func (n *Notifier) Subject(eventType string) string {
	return n.prefix + "." + eventType
}

// Publish implements events.Sink. The event is flushed before returning so that failures
// surface to the caller.
func (n *Notifier) Publish(ctx context.Context, e events.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal event").Build()
	}
	subject := n.Subject(e.Type)
	err = n.policy.Do(ctx, func() error { return n.send(ctx, subject, data) })
	if err != nil {
		return err
	}
	slog.Debug("Published site event", slog.String("subject", subject), slog.String("site", e.Site))
	return nil
}

func (n *Notifier) send(ctx context.Context, subject string, data []byte) error {
	if err := n.conn.Publish(subject, data); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to publish event").
			WithContext("subject", subject).
			Build()
	}
	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if timeout = time.Until(deadline); timeout <= 0 {
			return context.DeadlineExceeded
		}
	}
	if err := n.conn.FlushTimeout(timeout); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to flush event").
			WithContext("subject", subject).
			Build()
	}
	return nil
}

// Close closes the connection.
func (n *Notifier) Close() {
	if n.closer != nil {
		n.closer()
	}
}
