// Package lumen is the Lumen (CenturyLink) carrier adapter. It is also the
// reference implementation for new adapters: token-exchange authentication,
// full enumeration, and cost, ticket and path synchronization mapped onto the
// local vocabulary.
package lumen

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"circuit-manager/core/carrier"
	"circuit-manager/core/provider"
	"circuit-manager/core/utils"
	"circuit-manager/feature/circuits/models"

	"go.uber.org/zap"
)

func init() {
	provider.Register("lumen", New)
}

// Adapter talks to the Lumen circuit API.
type Adapter struct {
	store  provider.Store
	logger *zap.Logger
}

// New creates a Lumen adapter. It is registered as the factory for the
// "lumen" provider type.
func New(deps provider.Deps) provider.Adapter {
	return &Adapter{store: deps.Store, logger: deps.Logger}
}

// session carries the authenticated carrier client between calls.
type session struct {
	client *carrier.Client
}

// Name returns the provider-type key.
func (a *Adapter) Name() string {
	return "lumen"
}

// Authenticate exchanges the configured key and secret for a bearer token.
func (a *Adapter) Authenticate(ctx context.Context, cfg provider.APIConfig) (provider.Session, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, &provider.AuthError{Kind: provider.AuthInvalid, Err: errors.New("api key and secret are required")}
	}

	client := carrier.New(carrier.Options{
		Endpoint: cfg.Endpoint,
		Name:     "lumen",
	})

	var token struct {
		AccessToken string `json:"access_token"`
	}
	payload := map[string]string{"api_key": cfg.APIKey, "api_secret": cfg.APISecret}
	if err := client.PostJSON(ctx, "/auth/token", payload, &token); err != nil {
		return nil, authError(err)
	}
	if token.AccessToken == "" {
		return nil, &provider.AuthError{Kind: provider.AuthInvalid, Err: errors.New("token response carried no access_token")}
	}

	client.SetToken(token.AccessToken)
	return &session{client: client}, nil
}

// ListRecords enumerates all circuits visible to the configured account.
func (a *Adapter) ListRecords(ctx context.Context, sess provider.Session) ([]provider.RemoteRecord, error) {
	s, err := asSession(sess)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Circuits []map[string]any `json:"circuits"`
	}
	if err := s.client.GetJSON(ctx, "/circuits", &resp); err != nil {
		return nil, &provider.FetchError{Kind: provider.FetchTotal, Err: err}
	}

	records := make([]provider.RemoteRecord, 0, len(resp.Circuits))
	for _, fields := range resp.Circuits {
		records = append(records, provider.RemoteRecord{
			ExternalID: utils.ToString(fields["circuit_id"]),
			Fields:     fields,
		})
	}
	return records, nil
}

// RecordDetail fetches the full payload for one circuit, including billing,
// tickets and path availability.
func (a *Adapter) RecordDetail(ctx context.Context, sess provider.Session, externalID string) (provider.RemoteRecord, error) {
	s, err := asSession(sess)
	if err != nil {
		return provider.RemoteRecord{}, err
	}

	var fields map[string]any
	if err := s.client.GetJSON(ctx, "/circuits/"+url.PathEscape(externalID), &fields); err != nil {
		return provider.RemoteRecord{}, &provider.FetchError{Kind: provider.FetchNetwork, Err: err}
	}
	return provider.RemoteRecord{ExternalID: externalID, Fields: fields}, nil
}

// SyncCost extracts the billing block and upserts it.
func (a *Adapter) SyncCost(ctx context.Context, sess provider.Session, entity provider.LocalEntity, rec provider.RemoteRecord) (bool, error) {
	billing, _ := rec.Fields["billing"].(map[string]any)

	fields := provider.CostFields{
		NRC:            charge(billing, "non_recurring_charge"),
		MRC:            charge(billing, "monthly_recurring_charge"),
		Currency:       "USD",
		BillingAccount: utils.ToString(billing["account_number"]),
	}
	if currency := utils.ToString(billing["currency"]); currency != "" {
		fields.Currency = currency
	}

	changed, err := a.store.UpsertCost(ctx, entity, fields)
	if err != nil {
		return false, &provider.SyncError{Kind: provider.SyncStorage, Step: "cost", Err: err}
	}
	return changed, nil
}

// SyncTickets upserts every ticket in the detail payload, mapping Lumen's
// status and priority vocabulary onto the local one.
func (a *Adapter) SyncTickets(ctx context.Context, sess provider.Session, entity provider.LocalEntity, rec provider.RemoteRecord) (bool, error) {
	tickets, _ := rec.Fields["tickets"].([]any)

	changed := false
	for _, raw := range tickets {
		data, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		number := utils.ToString(data["ticket_number"])
		if number == "" {
			a.logger.Debug("Skipping ticket without number", zap.String("circuit", rec.ExternalID))
			continue
		}

		fields := provider.TicketFields{
			Number:      number,
			Subject:     utils.ToString(data["subject"]),
			Status:      mapTicketStatus(utils.ToString(data["status"])),
			Priority:    mapTicketPriority(utils.ToString(data["priority"])),
			Description: utils.ToString(data["description"]),
			Resolution:  utils.ToString(data["resolution"]),
			ExternalURL: utils.ToString(data["url"]),
			ClosedAt:    parseDate(utils.ToString(data["closed_date"])),
		}

		wrote, err := a.store.UpsertTicket(ctx, entity, fields)
		if err != nil {
			return changed, &provider.SyncError{Kind: provider.SyncStorage, Step: "tickets", Err: err}
		}
		changed = changed || wrote
	}
	return changed, nil
}

// SyncPath downloads the circuit's path archive when the detail payload
// advertises one. The archive bytes are opaque here; the store fingerprints
// and keeps them.
func (a *Adapter) SyncPath(ctx context.Context, sess provider.Session, entity provider.LocalEntity, rec provider.RemoteRecord) (bool, error) {
	if available, _ := rec.Fields["path_available"].(bool); !available {
		return false, nil
	}
	s, err := asSession(sess)
	if err != nil {
		return false, err
	}

	payload, err := s.client.GetBytes(ctx, "/circuits/"+url.PathEscape(rec.ExternalID)+"/path")
	if err != nil {
		return false, &provider.SyncError{Kind: provider.SyncNetwork, Step: "path", Err: err}
	}
	if len(payload) == 0 {
		return false, &provider.SyncError{Kind: provider.SyncValidation, Step: "path", Err: errors.New("empty path archive")}
	}

	changed, err := a.store.UpsertPath(ctx, entity, payload)
	if err != nil {
		return false, &provider.SyncError{Kind: provider.SyncStorage, Step: "path", Err: err}
	}
	return changed, nil
}

func asSession(sess provider.Session) (*session, error) {
	s, ok := sess.(*session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type %T", sess)
	}
	return s, nil
}

// authError classifies a token-exchange failure. Credential rejections are
// invalid and never retried; everything else counts as a network failure.
func authError(err error) *provider.AuthError {
	var status *carrier.StatusError
	if errors.As(err, &status) {
		if status.Code == 401 || status.Code == 403 {
			return &provider.AuthError{Kind: provider.AuthInvalid, Err: err}
		}
	}
	return &provider.AuthError{Kind: provider.AuthNetwork, Err: err}
}

// charge reads an optional numeric charge. Absent values stay nil so the
// store can tell "not reported" from zero.
func charge(billing map[string]any, key string) *float64 {
	v, ok := billing[key]
	if !ok || v == nil {
		return nil
	}
	f := utils.ToFloat(v)
	return &f
}

func mapTicketStatus(status string) string {
	switch strings.ToLower(status) {
	case "new", "open":
		return models.TicketStatusOpen
	case "working":
		return models.TicketStatusInProgress
	case "pending_customer":
		return models.TicketStatusPending
	case "resolved":
		return models.TicketStatusResolved
	case "closed":
		return models.TicketStatusClosed
	default:
		return models.TicketStatusOpen
	}
}

func mapTicketPriority(priority string) string {
	switch strings.ToLower(priority) {
	case "p1":
		return models.TicketPriorityCritical
	case "p2":
		return models.TicketPriorityHigh
	case "p3":
		return models.TicketPriorityMedium
	case "p4":
		return models.TicketPriorityLow
	default:
		return models.TicketPriorityMedium
	}
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
