package notify

import (
	"fmt"
	"time"

	"price-recorder/src/helpers"
	"price-recorder/src/logger"
	"price-recorder/src/models"

	"gopkg.in/gomail.v2"
)

// -----------------------------------------------------------------------------

// EmailNotifier sends an alert mail when a run fails fatally. When email
// notification is disabled in the configuration every call is a no-op.
type EmailNotifier struct {
	Config *models.MConfig
	Logger *logger.Logger

	// send is swappable in tests.
	send func(m *gomail.Message) error
}

// -----------------------------------------------------------------------------

func NewEmailNotifier(cfg *models.MConfig, log *logger.Logger) *EmailNotifier {
	n := &EmailNotifier{
		Config: cfg,
		Logger: log,
	}
	n.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(cfg.Notify.SMTPHost, cfg.Notify.SMTPPort, cfg.Notify.SMTPUser, cfg.Notify.SMTPPassword)
		return helpers.RetryWithBackoff("failure email", 3, 2*time.Second, log, func() error {
			return d.DialAndSend(m)
		})
	}
	return n
}

// -----------------------------------------------------------------------------

// NotifyError mails the fatal error of the run identified by runTimestamp.
func (n *EmailNotifier) NotifyError(runTimestamp string, runErr error) error {
	if !n.Config.Notify.EmailOnError || n.Config.Notify.EmailTo == "" {
		return nil
	}

	from := n.Config.Notify.EmailFrom
	if from == "" {
		from = n.Config.Notify.SMTPUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", n.Config.Notify.EmailTo)
	m.SetHeader("Subject", fmt.Sprintf("[%s] update run failed (%s)", n.Config.Name, runTimestamp))
	m.SetBody("text/plain", fmt.Sprintf(
		"The stock update run started at %s failed.\n\nError: %s\n\nSent at %s.\n",
		runTimestamp, runErr.Error(), time.Now().Format(models.TimestampLayout)))

	if err := n.send(m); err != nil {
		return helpers.NewNotifyError("failed to send failure email", err)
	}

	n.Logger.Info("Failure email sent to %s", n.Config.Notify.EmailTo)
	return nil
}
