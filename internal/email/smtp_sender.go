package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"wellness-planner/internal/report"
)

// SMTPSender envia el plan por correo via SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		useTLS:   useTLS,
	}, nil
}

func (s *SMTPSender) SendPlan(_ context.Context, toEmail, clientName string, doc report.Document) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}

	subject := "Tu Plan de Bienestar Fuxion"
	if strings.TrimSpace(clientName) != "" {
		subject += " - " + strings.TrimSpace(clientName)
	}
	msg, err := buildMessage(s.from, s.fromName, toEmail, subject, doc)
	if err != nil {
		return err
	}
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if auth != nil {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
		if err := client.Mail(s.from); err != nil {
			return err
		}
		if err := client.Rcpt(toEmail); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.from, []string{toEmail}, []byte(msg))
}

// buildMessage arma un mensaje multipart/mixed: el plan en texto como cuerpo
// y el PDF como adjunto en base64. Sin PDF el mensaje es solo texto.
func buildMessage(from, fromName, to, subject string, doc report.Document) (string, error) {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", subject)),
		"MIME-Version: 1.0",
	}

	if len(doc.Body) == 0 {
		headers = append(headers,
			"Content-Type: text/plain; charset=\"UTF-8\"",
			"Content-Transfer-Encoding: 8bit",
		)
		return strings.Join(headers, "\r\n") + "\r\n\r\n" + doc.Text, nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	headers = append(headers, fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q", mw.Boundary()))

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"text/plain; charset=\"UTF-8\""},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return "", fmt.Errorf("create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(doc.Text)); err != nil {
		return "", fmt.Errorf("write text part: %w", err)
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	filePart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {contentType},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})},
	})
	if err != nil {
		return "", fmt.Errorf("create attachment part: %w", err)
	}
	if _, err := filePart.Write([]byte(wrapBase64(doc.Body))); err != nil {
		return "", fmt.Errorf("write attachment part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body.String(), nil
}

// wrapBase64 corta las líneas a 76 caracteres como pide RFC 2045.
func wrapBase64(data []byte) string {
	enc := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	for len(enc) > 76 {
		b.WriteString(enc[:76])
		b.WriteString("\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc)
	return b.String()
}
