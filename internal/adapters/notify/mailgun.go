package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 20 * time.Second

// mailSender is the part of the mailgun client the notifier uses.
type mailSender interface {
	NewMessage(from, subject, text string, to ...string) *mailgun.Message
	Send(ctx context.Context, m *mailgun.Message) (string, string, error)
}

// MailgunNotifier mails a short posting summary to the notify-to address.
type MailgunNotifier struct {
	mg     mailSender
	sender string
}

var _ portssvc.Notifier = (*MailgunNotifier)(nil)

// NewMailgunNotifier creates a notifier sending from sender through the mailgun domain.
func NewMailgunNotifier(domainName, apiKey, sender string) *MailgunNotifier {
	return &MailgunNotifier{mg: mailgun.NewMailgun(domainName, apiKey), sender: sender}
}

func (n *MailgunNotifier) NotifyPosted(ctx context.Context, to string, txn domain.BankTransaction, receipt domain.PostingReceipt) error {
	subject, body := postedMessage(txn, receipt)
	message := n.mg.NewMessage(n.sender, subject, body, to)
	message.AddTag("manual-posting")

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, id, err := n.mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("mailgun send failed: %w. Response: %s", err, resp)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Posting notification sent",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("mailgun_id", id))
	return nil
}

// LogNotifier only logs. It is used when mailgun is not configured.
type LogNotifier struct{}

var _ portssvc.Notifier = LogNotifier{}

func (LogNotifier) NotifyPosted(ctx context.Context, _ string, txn domain.BankTransaction, receipt domain.PostingReceipt) error {
	middleware.GetLoggerFromCtx(ctx).Info("Mail notifications disabled, skipping posting notification",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("request_id", receipt.RequestID))
	return nil
}

// postedMessage renders the subject and plain text body. The CPR is never included.
func postedMessage(txn domain.BankTransaction, receipt domain.PostingReceipt) (string, string) {
	subject := fmt.Sprintf("Transaction %s posted", txn.TransactionID)

	var b strings.Builder
	fmt.Fprintf(&b, "The bank transaction %s was posted manually.\n\n", txn.TransactionID)
	fmt.Fprintf(&b, "Booking date: %s\n", txn.BookingDate.Format("2006-01-02"))
	if txn.BankAccountName != "" {
		fmt.Fprintf(&b, "Bank account: %s\n", txn.BankAccountName)
	}
	fmt.Fprintf(&b, "Amount: %s\n", txn.Amount.StringFixed(2))
	fmt.Fprintf(&b, "ERP request: %s\n", receipt.RequestID)
	fmt.Fprintf(&b, "File: %s\n", receipt.RemotePath)
	return subject, b.String()
}
