package services

import (
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// EmailService sends group invite emails through Resend. When no API
// key is configured the service is constructed without a client and
// every send reports an error, which callers treat as non-fatal.
type EmailService struct {
	client *resend.Client
	from   string
}

func NewEmailService(apiKey string) *EmailService {
	if apiKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set, invite emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: resend.NewClient(apiKey),
		from:   "GatherPoint <invites@gatherpoint.app>",
	}
}

// SendGroupInviteEmail emails an invite code for a group.
func (s *EmailService) SendGroupInviteEmail(toEmail, groupName, inviteCode string, expiresAt time.Time) error {
	if s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333;">
    <h1 style="color: #5b8def; text-align: center;">GatherPoint</h1>
    <h2>You're invited to join %s</h2>
    <p>Use the invite code below in the app to request to join the group:</p>
    <div style="background-color: #f5f5f5; border: 2px solid #5b8def; border-radius: 8px; padding: 20px; text-align: center; margin: 20px 0;">
        <span style="font-size: 28px; font-weight: bold; letter-spacing: 4px; font-family: monospace; color: #5b8def;">%s</span>
    </div>
    <p><strong>This code expires on %s.</strong></p>
    <p style="font-size: 12px; color: #666;">If you weren't expecting this invitation, you can ignore this email.</p>
</body>
</html>`, groupName, inviteCode, expiresAt.Format("January 2, 2006"))

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Invitation to join %s on GatherPoint", groupName),
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send invite email: %v", err)
	}

	log.Info().Str("group_name", groupName).Msg("invite email sent")
	return nil
}
