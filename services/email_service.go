package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/feedbackhq/feedback-backend/config"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/gomail.v2"
)

// MailSender dispatches a rendered message over the mail transport.
// *gomail.Dialer satisfies it.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService sends rejection notices over SMTP. The dialer is created once
// at startup and reused by every in-flight submission.
type EmailService struct {
	config  *config.EmailConfig
	sender  MailSender
	metrics *EmailMetrics
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return NewEmailServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service",
		"host", cfg.Host, "port", cfg.Port, "from", cfg.FromAddress)

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Secure()

	return newEmailService(cfg, dialer, reg)
}

// newEmailService allows tests to inject a fake sender.
func newEmailService(cfg *config.EmailConfig, sender MailSender, reg prometheus.Registerer) *EmailService {
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "feedback_email_send_duration_seconds",
			Help:    "Time taken to send rejection emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedback_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:  cfg,
		sender:  sender,
		metrics: metrics,
	}
}

// rejectionData is the substitution data for the rejection template.
type rejectionData struct {
	Name    string
	Service string
	Reason  string
}

// SendRejectionEmail renders the rejection notice and dispatches it to the
// submitter. Rendering is pure; dispatch is the only effectful step.
func (s *EmailService) SendRejectionEmail(ctx context.Context, to, name, service, reason string) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	htmlContent, err := renderRejectionEmail(rejectionData{
		Name:    name,
		Service: service,
		Reason:  reason,
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to render rejection email", "error", err)
		return fmt.Errorf("failed to render template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Feedback Rejection")
	m.SetBody("text/html", htmlContent)

	if err := s.sender.DialAndSend(m); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send rejection email",
			"error", err,
			"to", logger.MaskEmail(to))
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Rejection email sent",
		"to", logger.MaskEmail(to),
		"service", service)

	return nil
}

func renderRejectionEmail(data rejectionData) (string, error) {
	tmpl, err := template.New("rejection").Parse(rejectionEmailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Template constants
const rejectionEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Feedback Rejection</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #C0392B;
            font-size: 24px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 20px;
        }
        .reason {
            padding: 12px 16px;
            background-color: #fdf2f0;
            border-left: 4px solid #C0392B;
            font-style: italic;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Your feedback could not be accepted</h1>
        <p>Hi {{.Name}},</p>
        <p>Thank you for taking the time to share your thoughts about {{.Service}}.
        Unfortunately we could not accept your submission:</p>
        <p class="reason">{{.Reason}}</p>
        <p>Feel free to revise your feedback and submit it again.</p>
    </div>
</body>
</html>`
