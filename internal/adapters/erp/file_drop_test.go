package erp

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDropSubmitter_SubmitPosting(t *testing.T) {
	dir := t.TempDir()
	s := NewFileDropSubmitter(filepath.Join(dir, "outbox"), "/inbound/postings")
	s.newID = func() string { return "req-123" }

	cpr := "0101901234"
	note := "checked by alice"
	submission := domain.PostingSubmission{
		TransactionID: "tx/42",
		RunID:         "run-1",
		BookingDate:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		Note:          &note,
		Lines: []domain.PostingLine{
			{Account: "9100", Side: domain.Debit, Amount: decimal.RequireFromString("250.5"), Text: "Husleje"},
			{
				Account: "4000", Side: domain.Credit, Amount: decimal.RequireFromString("250.5"), Text: "Husleje", Cpr: &cpr,
				Attachments: []domain.Attachment{{Name: "bilag.pdf", Type: "application/pdf", Data: "JVBERg=="}},
			},
		},
	}

	receipt, err := s.SubmitPosting(context.Background(), submission)
	require.NoError(t, err)

	assert.Equal(t, "req-123", receipt.RequestID)
	assert.Equal(t, "posting_tx_42_req-123.xml", receipt.Filename)
	assert.Equal(t, "/inbound/postings/posting_tx_42_req-123.xml", receipt.RemotePath)
	assert.Equal(t, 2, receipt.LineCount)

	raw, err := os.ReadFile(filepath.Join(dir, "outbox", receipt.Filename))
	require.NoError(t, err)

	var doc postingDocument
	require.NoError(t, xml.Unmarshal(raw, &doc))
	assert.Equal(t, "req-123", doc.RequestID)
	assert.Equal(t, "2025-02-28", doc.BookingDate)
	assert.Equal(t, note, doc.Note)
	require.Len(t, doc.Lines, 2)
	assert.Equal(t, "DEBIT", doc.Lines[0].Side)
	assert.Equal(t, "250.50", doc.Lines[0].Amount)
	assert.Empty(t, doc.Lines[0].Cpr)
	assert.Equal(t, cpr, doc.Lines[1].Cpr)
	require.Len(t, doc.Lines[1].Attachments, 1)
	assert.Equal(t, "bilag.pdf", doc.Lines[1].Attachments[0].Name)

	entries, err := os.ReadDir(filepath.Join(dir, "outbox"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not remain")
}

func TestFileDropSubmitter_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	s := NewFileDropSubmitter(dir, "/inbound")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SubmitPosting(ctx, domain.PostingSubmission{TransactionID: "tx-1"})

	assert.ErrorIs(t, err, context.Canceled)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
