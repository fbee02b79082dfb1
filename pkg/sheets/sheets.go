package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"go-talent-sift-backend/config"
)

// appendRange is the sheet tab the submission log rows land in.
const appendRange = "Credits"

// Logger appends one row per successful submission to the audit spreadsheet:
// [case id, submitter email, resume count, local timestamp].
type Logger struct {
	spreadsheetID string
	service       *sheets.Service
	location      *time.Location
}

// NewLogger builds a Sheets logger from service-account credentials.
// Returns a nil Logger (not an error) when the integration is unconfigured,
// so callers can treat logging as optional.
func NewLogger(ctx context.Context, cfg *config.Config) (*Logger, error) {
	if cfg.GoogleClientEmail == "" || cfg.GooglePrivateKey == "" || cfg.GoogleSheetID == "" {
		return nil, nil
	}

	// Private keys delivered through env vars carry escaped newlines
	privateKey := strings.ReplaceAll(cfg.GooglePrivateKey, `\n`, "\n")

	jwtCfg := &jwt.Config{
		Email:      cfg.GoogleClientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to build service: %w", err)
	}

	location, err := time.LoadLocation(cfg.SheetsTimezone)
	if err != nil {
		location = time.UTC
	}

	return &Logger{
		spreadsheetID: cfg.GoogleSheetID,
		service:       service,
		location:      location,
	}, nil
}

// LogSubmission appends one submission record.
func (l *Logger) LogSubmission(ctx context.Context, caseID, email string, resumeCount int) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			caseID,
			email,
			resumeCount,
			time.Now().In(l.location).Format("02/01/2006, 15:04:05"),
		}},
	}

	_, err := l.service.Spreadsheets.Values.
		Append(l.spreadsheetID, appendRange, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append failed: %w", err)
	}
	return nil
}
