package erp

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/SscSPs/bank_rules_app/internal/core/domain"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/google/uuid"
)

const bookingDateLayout = "2006-01-02"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type postingDocument struct {
	XMLName       xml.Name      `xml:"PostingRequest"`
	RequestID     string        `xml:"requestId,attr"`
	TransactionID string        `xml:"TransactionId"`
	RunID         string        `xml:"RunId,omitempty"`
	BookingDate   string        `xml:"BookingDate"`
	Note          string        `xml:"Note,omitempty"`
	Lines         []postingLine `xml:"Lines>Line"`
}

type postingLine struct {
	Side             string       `xml:"side,attr"`
	Account          string       `xml:"Account"`
	AccountSecondary string       `xml:"AccountSecondary,omitempty"`
	AccountTertiary  string       `xml:"AccountTertiary,omitempty"`
	Amount           string       `xml:"Amount"`
	Text             string       `xml:"Text"`
	Cpr              string       `xml:"Cpr,omitempty"`
	Attachments      []attachment `xml:"Attachment,omitempty"`
}

type attachment struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
	Data string `xml:",chardata"`
}

// FileDropSubmitter writes each posting as an XML document into a directory
// that the ERP transfer job picks up and ships to RemoteDir.
type FileDropSubmitter struct {
	Dir       string
	RemoteDir string
	newID     func() string
}

var _ portssvc.ErpSubmitter = (*FileDropSubmitter)(nil)

// NewFileDropSubmitter creates a submitter that drops documents into dir.
func NewFileDropSubmitter(dir, remoteDir string) *FileDropSubmitter {
	return &FileDropSubmitter{Dir: dir, RemoteDir: remoteDir, newID: uuid.NewString}
}

// SubmitPosting renders the submission and moves it into the drop directory
// in one rename, so the transfer job never sees a partial file.
func (s *FileDropSubmitter) SubmitPosting(ctx context.Context, submission domain.PostingSubmission) (*domain.PostingReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := s.newID()
	doc := toPostingDocument(requestID, submission)
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render posting document: %w", err)
	}

	if err := os.MkdirAll(s.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create drop directory: %w", err)
	}

	filename := fmt.Sprintf("posting_%s_%s.xml",
		unsafeFilenameChars.ReplaceAllString(submission.TransactionID, "_"), requestID)

	tmp, err := os.CreateTemp(s.Dir, ".posting-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create posting file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(xml.Header); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write posting file: %w", err)
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write posting file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write posting file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, filename)); err != nil {
		return nil, fmt.Errorf("failed to publish posting file: %w", err)
	}

	receipt := &domain.PostingReceipt{
		RequestID:  requestID,
		Filename:   filename,
		RemotePath: path.Join(s.RemoteDir, filename),
		LineCount:  len(submission.Lines),
	}
	middleware.GetLoggerFromCtx(ctx).Info("Posting document dropped",
		slog.String("request_id", requestID),
		slog.String("filename", filename),
		slog.Int("line_count", receipt.LineCount))
	return receipt, nil
}

func toPostingDocument(requestID string, s domain.PostingSubmission) postingDocument {
	doc := postingDocument{
		RequestID:     requestID,
		TransactionID: s.TransactionID,
		RunID:         s.RunID,
		BookingDate:   s.BookingDate.Format(bookingDateLayout),
		Lines:         make([]postingLine, 0, len(s.Lines)),
	}
	if s.Note != nil {
		doc.Note = *s.Note
	}
	for _, l := range s.Lines {
		line := postingLine{
			Side:    string(l.Side),
			Account: l.Account,
			Amount:  l.Amount.StringFixed(2),
			Text:    l.Text,
		}
		if l.AccountSecondary != nil {
			line.AccountSecondary = *l.AccountSecondary
		}
		if l.AccountTertiary != nil {
			line.AccountTertiary = *l.AccountTertiary
		}
		if l.Cpr != nil {
			line.Cpr = *l.Cpr
		}
		for _, a := range l.Attachments {
			line.Attachments = append(line.Attachments, attachment{Name: a.Name, Type: a.Type, Data: a.Data})
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}
