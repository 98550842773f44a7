// mail отправляет OTP-коды на e-mail пользователя по SMTP.
// Подключение выполняется по implicit TLS (обычно порт 465).
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/Leplik500/rebuilder-user-service/internal/config"
)

// Sender — SMTP-отправитель одноразовых кодов.
type Sender struct {
	cfg    config.SMTPConfig
	otpTTL time.Duration
}

// NewSender создаёт отправитель поверх конфигурации SMTP.
// otpTTL попадает в текст письма ("expires in N minutes").
func NewSender(cfg config.SMTPConfig, otpTTL time.Duration) *Sender {
	return &Sender{cfg: cfg, otpTTL: otpTTL}
}

// buildMessage собирает тело письма с кодом и сроком его действия.
func buildMessage(from, to, code string, ttl time.Duration) []byte {
	return []byte(
		fmt.Sprintf("From: %s\r\n", from) +
			fmt.Sprintf("To: %s\r\n", to) +
			"Subject: Your verification code\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			fmt.Sprintf("Your one-time code is %s. It expires in %d minutes.\r\n", code, int(ttl.Minutes())),
	)
}

// SendOTP отправляет письмо с кодом на адрес to.
// Любая ошибка транспорта возвращается вызывающему как есть:
// решение о судьбе OTP принимает сервисный слой.
func (s *Sender) SendOTP(ctx context.Context, to, code string) error {
	const op = "mail.SendOTP"

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg := buildMessage(from, to, code, s.otpTTL)

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
