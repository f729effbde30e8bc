package mailer

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"adra/pkg/types"

	"github.com/sirupsen/logrus"
)

// Mailer is the best-effort notification dispatcher. Send failures are
// logged by callers and never block or roll back the triggering write.
//
// Three modes, resolved once at construction:
//   - disabled: SMTP settings missing, every send is a logged no-op
//   - development: EMAIL_MODE=development, sends are simulated via logs
//   - live: real SMTP delivery
type Mailer struct {
	config      *types.Config
	logger      *logrus.Logger
	enabled     bool
	development bool
}

func New(config *types.Config, logger *logrus.Logger) *Mailer {
	m := &Mailer{config: config, logger: logger}

	if config.SMTPHost == "" || config.SMTPUser == "" || config.SMTPPass == "" {
		logger.Warn("smtp settings missing, email notifications disabled")
		return m
	}

	m.enabled = true
	if config.EmailMode == "development" {
		m.development = true
		logger.Info("email development mode active, sends will be simulated")
	}

	return m
}

// SendNewBeneficiaryNotification alerts the configured admin addresses
// that a registration is waiting for review.
func (m *Mailer) SendNewBeneficiaryNotification(beneficiary *types.Beneficiary) error {
	if !m.enabled {
		m.logger.Debug("email not sent, dispatcher disabled")
		return nil
	}

	subject := "Novo Cadastro Pendente - ADRA"
	body := fmt.Sprintf(
		`<html><body>
		<h1>Novo cadastro pendente</h1>
		<p>Uma nova pessoa se cadastrou no sistema e precisa de validação:</p>
		<p><strong>Nome:</strong> %s<br>
		<strong>Email:</strong> %s<br>
		<strong>Telefone:</strong> %s<br>
		<strong>Cidade/UF:</strong> %s/%s</p>
		<p><a href="%s">Acessar Painel Admin</a></p>
		</body></html>`,
		html.EscapeString(beneficiary.Name),
		html.EscapeString(beneficiary.Email),
		html.EscapeString(beneficiary.Phone),
		html.EscapeString(beneficiary.Address.City),
		html.EscapeString(beneficiary.Address.State),
		m.config.AdminDashboardURL,
	)

	return m.send(m.config.AdminEmails, subject, body)
}

// SendBeneficiaryStatusUpdate reports an admin decision to the
// beneficiary's own address.
func (m *Mailer) SendBeneficiaryStatusUpdate(email string, approved bool, reason string) error {
	if !m.enabled {
		m.logger.Debug("email not sent, dispatcher disabled")
		return nil
	}

	var subject, body string
	if approved {
		subject = "Sua conta foi aprovada - ADRA"
		body = fmt.Sprintf(
			`<html><body>
			<h1>Conta aprovada!</h1>
			<p>Boa notícia! Sua conta foi aprovada e você já pode solicitar ajuda através do nosso sistema.</p>
			<p><a href="%s/pedir-doacao">Acessar Sistema</a></p>
			</body></html>`,
			m.config.FrontendURL,
		)
	} else {
		subject = "Atualização da sua solicitação - ADRA"
		reasonHTML := ""
		if strings.TrimSpace(reason) != "" {
			reasonHTML = fmt.Sprintf("<p><strong>Motivo:</strong> %s</p>", html.EscapeString(reason))
		}
		body = fmt.Sprintf(
			`<html><body>
			<h1>Atualização da sua solicitação</h1>
			<p>Infelizmente, não foi possível aprovar sua solicitação neste momento.</p>
			%s
			<p>Você pode revisar seus dados e tentar novamente.</p>
			</body></html>`,
			reasonHTML,
		)
	}

	return m.send([]string{email}, subject, body)
}

func (m *Mailer) send(to []string, subject, htmlBody string) error {
	if m.development {
		m.logger.WithFields(logrus.Fields{
			"to":      strings.Join(to, ", "),
			"subject": subject,
		}).Info("simulated email send")
		return nil
	}

	from := m.config.SMTPUser
	msg := []byte("From: \"ADRA Sistema\" <" + from + ">\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		htmlBody)

	addr := fmt.Sprintf("%s:%d", m.config.SMTPHost, m.config.SMTPPort)
	auth := smtp.PlainAuth("", from, m.config.SMTPPass, m.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, from, to, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}
