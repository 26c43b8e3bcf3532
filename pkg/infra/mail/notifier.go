package mail

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/relwatchhq/relwatch/pkg/domain/model"
	"github.com/relwatchhq/relwatch/pkg/domain/types"
)

// Sender delivers a rendered message through one concrete provider
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Notifier renders release notifications and dispatches them through the
// configured provider. It implements interfaces.Notifier.
type Notifier struct {
	sender Sender
	from   string
	to     []string
}

// NewNotifier creates a notifier bound to one provider and a fixed
// sender/recipient set
func NewNotifier(sender Sender, from string, to []string) *Notifier {
	return &Notifier{
		sender: sender,
		from:   from,
		to:     to,
	}
}

// Notify sends the notification for a newly detected release
func (n *Notifier) Notify(ctx context.Context, repo model.RepoID, rel *model.Release) error {
	logger := ctxlog.From(ctx)

	msg := renderMessage(repo, rel, n.from, n.to)

	if err := n.sender.Send(ctx, msg); err != nil {
		return goerr.Wrap(err, "failed to send notification",
			goerr.V("repo", repo.String()),
			goerr.V("tag", rel.TagName),
		)
	}

	logger.Info("Sent release notification",
		"repo", repo.String(),
		"tag", rel.TagName,
		"recipients", len(n.to),
	)

	return nil
}

// unconfigured is the sender used when neither provider is configured. The
// error is deferred to the first send attempt so that runs which never
// detect a new release succeed without provider settings.
type unconfigured struct{}

// NewUnconfigured returns a sender that fails every send with
// types.ErrNoMailProvider
func NewUnconfigured() Sender {
	return &unconfigured{}
}

func (s *unconfigured) Send(ctx context.Context, msg *Message) error {
	return goerr.Wrap(types.ErrNoMailProvider, "cannot send notification",
		goerr.V("hint", "set RELWATCH_SENDGRID_API_KEY or RELWATCH_SMTP_HOST"),
	)
}
