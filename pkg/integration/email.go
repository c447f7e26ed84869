package integration

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/feedrank/pkg/config"
	"github.com/umputun/feedrank/pkg/domain"
)

type deliverFunc func(ctx context.Context, srv config.SMTPConfig, timeout time.Duration, to string, msg []byte) error

type emailSender struct {
	smtp    config.SMTPConfig
	timeout time.Duration
	deliver deliverFunc
}

var emailTmpl = template.Must(template.New("email").Parse(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.article { border: 1px solid #ddd; margin: 10px 0; padding: 15px; border-radius: 5px; }
.title { font-size: 18px; font-weight: bold; margin-bottom: 10px; }
.summary { color: #666; margin-bottom: 10px; }
.meta { font-size: 12px; color: #999; }
.score { background: #f0f0f0; padding: 5px; border-radius: 3px; display: inline-block; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<p>Found {{len .Articles}} relevant articles:</p>
{{range .Articles}}<div class="article">
<div class="title">{{if .Link}}<a href="{{.Link}}">{{.Title}}</a>{{else}}{{.Title}}{{end}}</div>
<div class="summary">{{.Summary}}</div>
<div class="meta">Source: {{.Source}} | Published: {{.Published}} | <span class="score">Relevance: {{printf "%.1f" .RelevanceScore}}%</span></div>
<div class="analysis">{{.Analysis}}</div>
</div>
{{end}}</body>
</html>
`))

// send renders the articles as an html report and mails it to cfg["to_email"]
func (s *emailSender) send(ctx context.Context, articles []domain.Article, cfg map[string]string) (string, error) {
	to := strings.TrimSpace(cfg["to_email"])
	if to == "" {
		return "", errors.New("Email address required") //nolint:staticcheck // api response
	}
	subject := cfg["subject"]
	if subject == "" {
		subject = reportTitle
	}

	msg, err := buildEmail(s.smtp.Username, to, subject, articles)
	if err != nil {
		return "", err
	}
	if err := s.deliver(ctx, s.smtp, s.timeout, to, msg); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	return "Email sent to " + to, nil
}

func buildEmail(from, to, subject string, articles []domain.Article) ([]byte, error) {
	var body bytes.Buffer
	if err := emailTmpl.Execute(&body, struct {
		Title    string
		Articles []domain.Article
	}{Title: reportTitle, Articles: articles}); err != nil {
		return nil, fmt.Errorf("render email: %w", err)
	}

	var msg bytes.Buffer
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n")
	msg.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// smtpDeliver sends the message in a single smtp session, upgrading to TLS and authenticating when the server offers it
func smtpDeliver(ctx context.Context, srv config.SMTPConfig, timeout time.Duration, to string, msg []byte) error {
	if srv.Server == "" {
		return errors.New("smtp server not configured")
	}
	addr := net.JoinHostPort(srv.Server, strconv.Itoa(srv.Port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, srv.Server)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err = client.StartTLS(&tls.Config{ServerName: srv.Server, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if ok, _ := client.Extension("AUTH"); ok && srv.Username != "" {
		if err = client.Auth(smtp.PlainAuth("", srv.Username, srv.Password, srv.Server)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err = client.Mail(srv.Username); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}
