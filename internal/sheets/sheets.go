// Package sheets stores expense records in a Google Sheets spreadsheet,
// the remote document list the tracker syncs to when it is not running on
// the local store. One worksheet row per record; the account key sits in
// column A so a single spreadsheet can hold every user's records.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"expensevis/internal/core"
)

// Row layout: account | name | totalAmount | taxAmount | category | date | paymentType | comments | currency
const recordRange = "A2:I"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
}

// NewFromEnv builds a client from the environment.
// Required: SHEETS_SPREADSHEET_ID and service-account credentials via
// SHEETS_CREDENTIALS_JSON, SHEETS_CREDENTIALS_FILE or
// GOOGLE_APPLICATION_CREDENTIALS. Optional: SHEETS_WORKSHEET (default
// "Expenses").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("SHEETS_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing SHEETS_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("SHEETS_WORKSHEET"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	credentials, err := loadCredentials()
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentials),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	c := &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
	if err := c.resolveSheetID(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func loadCredentials() ([]byte, error) {
	if inline := strings.TrimSpace(os.Getenv("SHEETS_CREDENTIALS_JSON")); inline != "" {
		return []byte(inline), nil
	}
	file := strings.TrimSpace(os.Getenv("SHEETS_CREDENTIALS_FILE"))
	if file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if file == "" {
		return nil, errors.New("missing service account credentials (set SHEETS_CREDENTIALS_JSON, SHEETS_CREDENTIALS_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	creds, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return creds, nil
}

// resolveSheetID looks up the numeric worksheet id needed by row-deletion
// requests.
func (c *Client) resolveSheetID(ctx context.Context) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == c.sheetName {
			c.sheetID = s.Properties.SheetId
			return nil
		}
	}
	return fmt.Errorf("worksheet %q not found in spreadsheet", c.sheetName)
}

// AppendRecord appends one row and returns the row number as the record id.
func (c *Client) AppendRecord(ctx context.Context, account string, rec core.ExpenseRecord) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	vr := &gsheet.ValueRange{Values: [][]any{recordToRow(account, rec)}}
	resp, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, fmt.Sprintf("%s!%s", c.sheetName, recordRange), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append row to %s: %w", c.sheetName, err)
	}

	row, err := rowFromUpdatedRange(resp.Updates.UpdatedRange)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(row), nil
}

// ListRecords reads every row for the account in sheet order. Row numbers
// double as record ids, so ids are only stable until the next deletion,
// the same contract a delete-and-reload client already lives with.
func (c *Client) ListRecords(ctx context.Context, account string) ([]core.ExpenseRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!%s", c.sheetName, recordRange)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.ExpenseRecord
	for i, row := range resp.Values {
		rowNum := i + 2 // data starts on row 2
		cells := toStrings(row)
		if len(cells) == 0 || cells[0] != account {
			continue
		}
		rec, err := rowToRecord(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		rec.ID = strconv.Itoa(rowNum)
		out = append(out, rec)
	}
	return out, nil
}

// RemoveRecord deletes the row after verifying it still belongs to the
// account.
func (c *Client) RemoveRecord(ctx context.Context, account, id string) error {
	row, err := strconv.Atoi(id)
	if err != nil || row < 2 {
		return core.ErrNotFound
	}

	rng := fmt.Sprintf("%s!A%d:A%d", c.sheetName, row, row)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 || fmt.Sprint(resp.Values[0][0]) != account {
		return core.ErrNotFound
	}

	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    c.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row %d: %w", row, err)
	}
	return nil
}
