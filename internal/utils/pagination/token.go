package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position of the last row on a page, in (booking date, id) order.
type Cursor struct {
	BookingDate   time.Time
	TransactionID string
}

// EncodeToken creates a base64 encoded token from a booking date and transaction id.
func EncodeToken(c Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s", c.BookingDate.Format(timeFormat), c.TransactionID)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	bookingDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (booking date parse): %w", err)
	}

	return Cursor{BookingDate: bookingDate, TransactionID: parts[1]}, nil
}
