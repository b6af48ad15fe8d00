package notifications

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/models"
	"github.com/brtdigital/remesa-backend/pkg/config"
)

// EmailNotifier sends transaction lifecycle emails over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailNotifier creates a Notifier backed by the configured SMTP server.
func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

var _ portssvc.Notifier = (*EmailNotifier)(nil)

// SendTransactionReceived notifies the client their transfer was registered.
func (n *EmailNotifier) SendTransactionReceived(ctx context.Context, recipient string, recipientName string, txn *models.Transaction) error {
	subject := fmt.Sprintf("Hemos recibido tu operación %s", txn.TransactionID)
	body := renderTransactionBody(recipientName, txn,
		"Hemos registrado tu operación y la estamos verificando. Te avisaremos en cuanto avance.")
	return n.send(ctx, recipient, subject, body)
}

// SendTransactionCompleted notifies the client their transfer was paid out.
func (n *EmailNotifier) SendTransactionCompleted(ctx context.Context, recipient string, recipientName string, txn *models.Transaction) error {
	subject := fmt.Sprintf("Tu operación %s fue completada", txn.TransactionID)
	body := renderTransactionBody(recipientName, txn,
		"Tu operación fue completada y el pago fue realizado. Gracias por confiar en nosotros.")
	return n.send(ctx, recipient, subject, body)
}

func (n *EmailNotifier) send(ctx context.Context, recipient, subject, htmlBody string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}

func renderTransactionBody(recipientName string, txn *models.Transaction, message string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Hola %s,</p>", html.EscapeString(recipientName)))
	b.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(message)))
	b.WriteString("<table>")
	b.WriteString(fmt.Sprintf("<tr><td>Operación</td><td>%s</td></tr>", html.EscapeString(txn.TransactionID)))
	b.WriteString(fmt.Sprintf("<tr><td>Envías</td><td>%s %s</td></tr>", txn.CuponTotalSend, txn.SourceCurrencyCode))
	b.WriteString(fmt.Sprintf("<tr><td>Reciben</td><td>%s %s</td></tr>", txn.CuponDestinationAmount, txn.DestinationCurrencyCode))
	b.WriteString(fmt.Sprintf("<tr><td>Tipo de cambio</td><td>%s</td></tr>", txn.ExchangeRate))
	b.WriteString("</table>")
	return b.String()
}
