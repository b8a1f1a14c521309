package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"os"

	"github.com/resend/resend-go/v2"

	"github.com/alaminShaheen/PrepTracker/internal/types/goal"
	"github.com/alaminShaheen/PrepTracker/internal/types/user"
)

type EmailService struct {
	client *resend.Client
	sender string
}

// NewEmailService builds the Resend-backed digest sender. With no
// RESEND_API_KEY the service stays in log-only mode, which is what local
// development wants.
func NewEmailService() *EmailService {
	var client *resend.Client
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey != "" {
		client = resend.NewClient(apiKey)
	} else {
		log.Println("RESEND_API_KEY not set, daily digest emails will only be logged")
	}

	sender := os.Getenv("SENDER_EMAIL")
	if sender == "" {
		sender = "PrepTracker <digest@preptracker.app>"
	}

	return &EmailService{client: client, sender: sender}
}

var digestTemplate = template.Must(template.New("digest").Parse(`
<html>
<body style="font-family: sans-serif;">
    <h2>Hi {{.Firstname}}, here is your day at a glance</h2>
    {{if .Daily}}
    <h3>Today's goals</h3>
    <ul>{{range .Daily}}<li>{{.Name}}</li>{{end}}</ul>
    {{end}}
    {{if .Weekly}}
    <h3>This week</h3>
    <ul>{{range .Weekly}}<li>{{.Name}}</li>{{end}}</ul>
    {{end}}
    {{if .OneTime}}
    <h3>One-time goals due</h3>
    <ul>{{range .OneTime}}<li>{{.Name}}</li>{{end}}</ul>
    {{end}}
    <p style="font-size: 12px; color: #6b7280;">
        You receive this because you subscribed to daily reminders.
        You can unsubscribe from your profile page.
    </p>
</body>
</html>
`))

type digestData struct {
	Firstname string
	Daily     []*goal.Goal
	Weekly    []*goal.Goal
	OneTime   []*goal.Goal
}

func renderDigest(u *user.User, daily, weekly, oneTime []*goal.Goal) (string, error) {
	var buf bytes.Buffer
	err := digestTemplate.Execute(&buf, digestData{
		Firstname: u.Firstname,
		Daily:     daily,
		Weekly:    weekly,
		OneTime:   oneTime,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}

// SendDailyDigest emails the user their goals due today.
func (s *EmailService) SendDailyDigest(ctx context.Context, u *user.User, daily, weekly, oneTime []*goal.Goal) error {
	html, err := renderDigest(u, daily, weekly, oneTime)
	if err != nil {
		return err
	}

	if s.client == nil {
		log.Printf("digest (log-only) to %s: %d daily, %d weekly, %d one-time goals",
			u.Email, len(daily), len(weekly), len(oneTime))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.sender,
		To:      []string{u.Email},
		Subject: "Your Tasks for Today",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send digest to %s: %w", u.Email, err)
	}
	return nil
}
