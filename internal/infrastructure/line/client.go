package line

import (
	"context"
	"fmt"
	"hrreminder/internal/config"
	"hrreminder/internal/domain/constant"
	"hrreminder/internal/domain/entity"
	"hrreminder/internal/domain/reminder"
	appErrors "hrreminder/internal/pkg/errors"
	"hrreminder/internal/pkg/logger"
	"strings"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	log logger.Logger
}

// NewClient creates a LINE Bot client from cfg. It returns ErrLineDisabled
// when the credentials are not configured, push delivery is optional.
func NewClient(cfg config.LineConfig, log logger.Logger, options ...linebot.ClientOption) (*Client, error) {
	if !cfg.Enabled() {
		return nil, appErrors.ErrLineDisabled
	}

	bot, err := linebot.New(cfg.ChannelSecret, cfg.ChannelToken, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	log.Info("Successfully created LINE Bot client.")
	return &Client{
		Client: bot,
		log:    log,
	}, nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	_, err := c.PushMessage(to, messages...).WithContext(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrLineAPI, err)
	}
	c.log.Debug(fmt.Sprintf("Successfully sent push message to %s.", to))
	return nil
}

// NotifyReminder pushes r to the LINE user bound to session. Sessions without
// a LINE user are skipped silently.
func (c *Client) NotifyReminder(ctx context.Context, session *entity.Session, r reminder.ActiveReminder) error {
	to, ok := session.PushTarget()
	if !ok {
		return nil
	}
	return c.PushMessages(ctx, to, linebot.NewTextMessage(FormatReminder(r)))
}

// FormatReminder renders the text pushed for a reminder.
func FormatReminder(r reminder.ActiveReminder) string {
	var b strings.Builder
	name := r.Candidate.Name
	if name == "" {
		name = fmt.Sprintf("candidate #%d", r.Candidate.ID)
	}

	if r.Kind == constant.ReminderNow {
		fmt.Fprintf(&b, "⏰ Interview with %s is starting now", name)
	} else {
		fmt.Fprintf(&b, "🔔 Interview with %s in %d minutes", name, int(r.Key.Bucket.Minutes()))
	}
	fmt.Fprintf(&b, " (%s)", r.StartsAt.Format("15:04"))

	if iv := r.Candidate.Interview; iv != nil {
		if iv.Location != "" {
			fmt.Fprintf(&b, "\nLocation: %s", iv.Location)
		}
		if len(iv.Interviewers) > 0 {
			fmt.Fprintf(&b, "\nInterviewers: %s", strings.Join(iv.Interviewers, ", "))
		}
	}
	return b.String()
}
