// Package sheetstore is the HTTP client for the spreadsheet script endpoint
// that owns the authoritative lead data. Every operation is a form POST with
// an `action` field; responses are JSON produced by the Apps Script runtime,
// so fields are decoded defensively (numbers where strings are expected,
// missing keys, blank rows).
package sheetstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/apperr"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
)

// Actions understood by the script endpoints.
const (
	actionGetLeads     = "getLeads"
	actionGetSheets    = "getSheets"
	actionSaveLead     = "saveToSheets"
	actionDeleteLead   = "deleteLead"
	actionGetSettings  = "getSettings"
	actionSaveSettings = "saveSettings"
)

// Bookkeeping sheets that are not teams.
const (
	SheetAllLeads = "All leads"
	SheetSettings = "Settings"
)

// Settings are the remote vocabulary settings stored next to the leads.
type Settings struct {
	LeadQualities      []string `json:"leadQualities"`
	BusinessIndustries []string `json:"businessIndustries"`
}

// Client talks to the sheet script endpoints.
type Client struct {
	http        *http.Client
	scriptURL   string
	settingsURL string
	log         *logger.Logger
}

// New creates a sheet store client.
func New(cfg config.SheetStoreConfig, log *logger.Logger) *Client {
	settingsURL := cfg.GetSettingsScriptURL()
	if settingsURL == "" {
		settingsURL = cfg.GetSheetScriptURL()
	}

	return &Client{
		http:        &http.Client{Timeout: cfg.GetSheetHTTPTimeout()},
		scriptURL:   cfg.GetSheetScriptURL(),
		settingsURL: settingsURL,
		log:         log,
	}
}

// FetchLeads loads every lead from the "All leads" sheet, normalized into
// domain records. Rows without a phone number are dropped; they are blank or
// half-deleted sheet rows, not leads.
func (c *Client) FetchLeads(ctx context.Context) ([]domain.Lead, error) {
	body, err := c.post(ctx, c.scriptURL, url.Values{"action": {actionGetLeads}})
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "sheet store returned malformed lead data", err)
	}

	leads := make([]domain.Lead, 0, len(rows))
	for i, row := range rows {
		lead := domain.Lead{
			UID:              str(row["uid"]),
			SlNo:             str(row["slNo"]),
			Phone:            str(row["phone"]),
			Country:          str(row["country"]),
			Place:            str(row["place"]),
			Name:             str(row["name"]),
			LeadQuality:      domain.ParseQuality(str(row["leadQuality"])),
			BusinessIndustry: str(row["businessIndustry"]),
			SpecialNotes:     str(row["specialNotes"]),
			CurrentStatus:    domain.ParseStatus(str(row["currentStatus"])),
			ForwardedTo:      str(row["forwardedTo"]),
			DateTime:         str(row["dateTime"]),
		}
		if strings.TrimSpace(lead.Phone) == "" {
			continue
		}
		if lead.UID == "" {
			lead.UID = fmt.Sprintf("uid-%d", i)
		}
		leads = append(leads, lead)
	}

	return leads, nil
}

// SheetNames returns every sheet name in the spreadsheet, including the
// bookkeeping sheets. Callers filter with IsTeamSheet.
func (c *Client) SheetNames(ctx context.Context) ([]string, error) {
	body, err := c.post(ctx, c.scriptURL, url.Values{"action": {actionGetSheets}})
	if err != nil {
		return nil, err
	}

	var names []string
	if err := json.Unmarshal(body, &names); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "sheet store returned malformed sheet list", err)
	}
	return names, nil
}

// IsTeamSheet reports whether a sheet name is a routable team rather than a
// bookkeeping sheet.
func IsTeamSheet(name string) bool {
	return name != SheetAllLeads && name != SheetSettings
}

// SaveLead upserts a lead by uid into "All leads" and, when routed, into the
// team's own sheet. The script does the fan-out; this is a single call.
func (c *Client) SaveLead(ctx context.Context, lead domain.Lead) error {
	values := url.Values{
		"action":           {actionSaveLead},
		"uid":              {lead.UID},
		"dateTime":         {lead.DateTime},
		"slNo":             {lead.SlNo},
		"phone":            {lead.Phone},
		"country":          {lead.Country},
		"place":            {lead.Place},
		"name":             {lead.Name},
		"leadQuality":      {string(lead.LeadQuality)},
		"businessIndustry": {lead.BusinessIndustry},
		"specialNotes":     {lead.SpecialNotes},
		"currentStatus":    {string(lead.CurrentStatus)},
		"forwardedTo":      {lead.ForwardedTo},
	}

	_, err := c.post(ctx, c.scriptURL, values)
	return err
}

// DeleteLead removes a lead by uid from every sheet.
func (c *Client) DeleteLead(ctx context.Context, uid string) error {
	_, err := c.post(ctx, c.scriptURL, url.Values{
		"action": {actionDeleteLead},
		"uid":    {uid},
	})
	return err
}

// FetchSettings loads the vocabulary settings.
func (c *Client) FetchSettings(ctx context.Context) (Settings, error) {
	body, err := c.post(ctx, c.settingsURL, url.Values{"action": {actionGetSettings}})
	if err != nil {
		return Settings{}, err
	}

	var settings Settings
	if err := json.Unmarshal(body, &settings); err != nil {
		return Settings{}, apperr.Wrap(apperr.KindUnavailable, "sheet store returned malformed settings", err)
	}
	return settings, nil
}

// SaveSettings stores the vocabulary settings. The script expects each list
// JSON-encoded into a single form field.
func (c *Client) SaveSettings(ctx context.Context, settings Settings) error {
	qualities, err := json.Marshal(settings.LeadQualities)
	if err != nil {
		return err
	}
	industries, err := json.Marshal(settings.BusinessIndustries)
	if err != nil {
		return err
	}

	_, err = c.post(ctx, c.settingsURL, url.Values{
		"action":             {actionSaveSettings},
		"leadQualities":      {string(qualities)},
		"businessIndustries": {string(industries)},
	})
	return err
}

func (c *Client) post(ctx context.Context, rawURL string, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.StoreError(values.Get("action"), err)
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, "sheet store unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed reading sheet store response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("sheet store returned status %d", resp.StatusCode)
		if c.log != nil {
			c.log.StoreError(values.Get("action"), err)
		}
		return nil, apperr.Wrap(apperr.KindUnavailable, err.Error(), err)
	}

	return body, nil
}

// str converts the loosely-typed JSON values the script emits (strings,
// numbers, booleans, nulls) into the string the domain expects.
func str(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
