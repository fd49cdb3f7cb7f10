package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"lunabay/config"
	"lunabay/infras/otel"
	"lunabay/shared/constant"
)

const otelAttrRecipient = "recipient"

// BookingSummary carries the booking details rendered into the guest
// confirmation email.
type BookingSummary struct {
	GuestName  string
	RoomName   string
	CheckIn    time.Time
	CheckOut   time.Time
	NumGuests  int
	TotalPrice int64
}

// ContactMessage is a message submitted through the contact form,
// forwarded to the resort inbox.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type Mailer interface {
	SendLoginCode(ctx context.Context, recipient, code string) error
	SendBookingConfirmation(ctx context.Context, recipient string, summary BookingSummary) error
	SendContactMessage(ctx context.Context, message ContactMessage) error
}

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		config: config,
		otel:   otel,
	}
}

func (m *mailerImpl) SendLoginCode(ctx context.Context, recipient, code string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".SendLoginCode")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, recipient)

	ttlMinutes := m.config.Admin.CodeTTLSeconds / 60

	body := fmt.Sprintf(`<p>Hello,</p>
<p>Your one-time sign-in code is: <strong>%s</strong></p>
<p>The code expires in %d minutes and can be used once.</p>
<p>If you did not request this code, you can safely ignore this email.</p>`, code, ttlMinutes)

	return m.send(recipient, "Your sign-in code", body)
}

func (m *mailerImpl) SendBookingConfirmation(ctx context.Context, recipient string, summary BookingSummary) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".SendBookingConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, recipient)

	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your reservation is confirmed. We look forward to welcoming you.</p>
<ul>
<li>Room: %s</li>
<li>Check-in: %s</li>
<li>Check-out: %s</li>
<li>Guests: %d</li>
<li>Total: $%.2f</li>
</ul>
<p>Warm regards,<br>The Reservations Team</p>`,
		summary.GuestName,
		summary.RoomName,
		summary.CheckIn.Format(constant.DateOnlyLayout),
		summary.CheckOut.Format(constant.DateOnlyLayout),
		summary.NumGuests,
		float64(summary.TotalPrice)/100,
	)

	return m.send(recipient, "Booking confirmation", body)
}

func (m *mailerImpl) SendContactMessage(ctx context.Context, message ContactMessage) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".SendContactMessage")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrRecipient, m.config.Admin.Email)

	body := fmt.Sprintf(`<p>New message from the contact form.</p>
<ul>
<li>Name: %s</li>
<li>Email: %s</li>
</ul>
<p>%s</p>`, message.Name, message.Email, message.Body)

	subject := "Contact form: " + message.Subject

	return m.send(m.config.Admin.Email, subject, body)
}

func (m *mailerImpl) send(recipient, subject, htmlBody string) error {
	smtpCfg := m.config.External.SMTP

	var msg strings.Builder
	msg.WriteString("From: " + smtpCfg.From + "\r\n")
	msg.WriteString("To: " + recipient + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	addr := net.JoinHostPort(smtpCfg.Host, smtpCfg.Port)

	err := smtp.SendMail(addr, auth, smtpCfg.From, []string{recipient}, []byte(msg.String()))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
