package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"gavel/internal/domain/user"
	"gavel/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

// EmailExpiryNotifier sends subscription expiry notices over SMTP. It looks
// up the recipient address through the user repository at send time.
type EmailExpiryNotifier struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	userRepo user.Repository
	logger   logger.Interface
}

func NewEmailExpiryNotifier(config SMTPConfig, userRepo user.Repository, log logger.Interface) *EmailExpiryNotifier {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &EmailExpiryNotifier{
		config:   config,
		dialer:   dialer,
		userRepo: userRepo,
		logger:   log,
	}
}

// NotifyExpired sends an expiry notice for the given plan to the user's
// registered address.
func (n *EmailExpiryNotifier) NotifyExpired(ctx context.Context, userID uint, planName string) error {
	u, err := n.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for expiry notice: %w", err)
	}
	if u == nil {
		return fmt.Errorf("user %d not found for expiry notice", userID)
	}

	subject := "Your Subscription Has Expired"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Subscription Expired</h2>
			<p>Your %s subscription has expired and could not be renewed.</p>
			<p>Any remaining plan credits are no longer available.</p>
			<p>To keep using premium features, please update your payment method and resubscribe.</p>
		</body>
		</html>
	`, planName)

	plainBody := fmt.Sprintf(`
Subscription Expired

Your %s subscription has expired and could not be renewed.

Any remaining plan credits are no longer available.

To keep using premium features, please update your payment method and resubscribe.
	`, planName)

	if err := n.sendEmail(u.Email(), subject, htmlBody, plainBody); err != nil {
		return err
	}

	n.logger.Infow("expiry notice sent", "user_id", userID, "plan", planName)
	return nil
}

func (n *EmailExpiryNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
