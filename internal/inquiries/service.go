package inquiries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/laskalegacy/storefront-backend/internal/pricing"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
	"github.com/laskalegacy/storefront-backend/pkg/storage/gcs"
)

const keyPrefix = "inquiries/"

// ObjectStore is the blob surface the inquiry store needs.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// Submission is a validated public inquiry payload.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Route   string
	Items   []pricing.Item
}

// Service persists inquiry documents as whole-document JSON blobs under
// inquiries/<id>.json. Updates are read-modify-rewrite with no concurrency
// check: two concurrent writers to the same id race and the later write wins.
type Service struct {
	store   ObjectStore
	pricing *pricing.Calculator
	logg    *logger.Logger
	now     func() time.Time
	suffix  func() string
}

func NewService(store ObjectStore, calc *pricing.Calculator, logg *logger.Logger) *Service {
	return &Service{
		store:   store,
		pricing: calc,
		logg:    logg,
		now:     time.Now,
		suffix:  randomSuffix,
	}
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

func inquiryKey(id string) string {
	return keyPrefix + id + ".json"
}

// Create prices the submission, freezes the document, and writes it. Nothing
// is persisted when pricing fails.
func (s *Service) Create(ctx context.Context, sub Submission) (*Inquiry, error) {
	quote, err := s.pricing.Quote(sub.Items, sub.Route)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inquiry := &Inquiry{
		ID:        fmt.Sprintf("inquiry-%d-%s", now.UnixMilli(), s.suffix()),
		Status:    enums.InquiryStatusPending,
		CreatedAt: now,
		Client: Client{
			Name:    sub.Name,
			Email:   sub.Email,
			Phone:   sub.Phone,
			Address: sub.Address,
		},
		Shipping: Shipping{
			Route: quote.Route,
			Size:  quote.LargestSize,
			Cost:  quote.ShippingCost,
		},
		Items: quote.Lines,
		Totals: Totals{
			Products: quote.ProductTotal,
			Shipping: quote.ShippingCost,
			Total:    quote.GrandTotal,
		},
	}

	if err := s.write(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// Get loads one inquiry by id.
func (s *Service) Get(ctx context.Context, id string) (*Inquiry, error) {
	data, err := s.store.Get(ctx, inquiryKey(id))
	if errors.Is(err, gcs.ErrObjectNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "reading inquiry")
	}

	var inquiry Inquiry
	if err := json.Unmarshal(data, &inquiry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "parsing inquiry document")
	}
	return &inquiry, nil
}

// List returns every stored inquiry, newest first. A document that fails to
// parse is logged and skipped rather than failing the whole listing.
func (s *Service) List(ctx context.Context) ([]Inquiry, error) {
	keys, err := s.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStore, err, "listing inquiries")
	}

	inquiries := make([]Inquiry, 0, len(keys))
	for _, key := range keys {
		data, err := s.store.Get(ctx, key)
		if err != nil {
			s.logSkip(ctx, key, err)
			continue
		}
		var inquiry Inquiry
		if err := json.Unmarshal(data, &inquiry); err != nil {
			s.logSkip(ctx, key, err)
			continue
		}
		inquiries = append(inquiries, inquiry)
	}

	sort.SliceStable(inquiries, func(i, j int) bool {
		return inquiries[i].CreatedAt.After(inquiries[j].CreatedAt)
	})
	return inquiries, nil
}

// SetStatus replaces the inquiry's status with one of the three known values.
func (s *Service) SetStatus(ctx context.Context, id, status string) (*Inquiry, error) {
	parsed, err := enums.ParseInquiryStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
			WithDetails(map[string]any{"status": status})
	}

	inquiry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inquiry.Status = parsed
	if err := s.write(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// SetInvoiceURL records the generated invoice location on the inquiry.
func (s *Service) SetInvoiceURL(ctx context.Context, id, url string) (*Inquiry, error) {
	inquiry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inquiry.InvoiceURL = url
	if err := s.write(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

func (s *Service) write(ctx context.Context, inquiry *Inquiry) error {
	data, err := json.MarshalIndent(inquiry, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding inquiry")
	}
	if _, err := s.store.Put(ctx, inquiryKey(inquiry.ID), "application/json", data); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStore, err, "writing inquiry")
	}
	return nil
}

func (s *Service) logSkip(ctx context.Context, key string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "object_key", key)
	s.logg.Error(ctx, "inquiry.skip_unreadable", err)
}
