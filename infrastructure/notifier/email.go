package notifier

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-anomaly-alerts/internal/config"
)

// SendFunc tem a assinatura de smtp.SendMail
type SendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier envia a notificação consolidada por SMTP
type EmailNotifier struct {
	cfg  config.SMTP
	send SendFunc
	now  func() time.Time
}

func NewEmailNotifier(cfg config.SMTP) *EmailNotifier {
	return &EmailNotifier{
		cfg:  cfg,
		send: smtp.SendMail,
		now:  time.Now,
	}
}

// WithSendFunc troca o envio, usado nos testes
func (n *EmailNotifier) WithSendFunc(send SendFunc) *EmailNotifier {
	n.send = send
	return n
}

func (n *EmailNotifier) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "envio cancelado")
	}

	recipients := splitRecipients(to)
	if len(recipients) == 0 {
		return errors.New("nenhum destinatário informado")
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}

	msg := n.buildMessage(recipients, subject, body)
	if err := n.send(addr, auth, n.cfg.From, recipients, msg); err != nil {
		return errors.Wrapf(err, "erro ao enviar email via %s", addr)
	}

	logrus.WithFields(logrus.Fields{
		"to":      strings.Join(recipients, ","),
		"subject": subject,
	}).Info("Email de alerta enviado")

	return nil
}

func (n *EmailNotifier) buildMessage(to []string, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", n.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	buf.WriteString("\r\n")
	return buf.Bytes()
}

// O campo de email aceita vários destinatários separados por vírgula
func splitRecipients(to string) []string {
	recipients := make([]string, 0)
	for _, r := range strings.Split(to, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}

// LogNotifier só registra a notificação no log; usado no modo dry-run
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, to string, subject string, body string) error {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Dry-run: email não enviado")
	fmt.Println(body)
	return nil
}
