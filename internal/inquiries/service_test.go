package inquiries

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/laskalegacy/storefront-backend/internal/catalog"
	"github.com/laskalegacy/storefront-backend/internal/pricing"
	"github.com/laskalegacy/storefront-backend/pkg/enums"
	pkgerrors "github.com/laskalegacy/storefront-backend/pkg/errors"
	"github.com/laskalegacy/storefront-backend/pkg/logger"
	"github.com/laskalegacy/storefront-backend/pkg/storage/gcs"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = append([]byte(nil), data...)
	return "mem://" + key, nil
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, gcs.ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}

func (f *fakeStore) List(_ context.Context, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func testService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	provider, err := catalog.New(
		[]catalog.Product{
			{Name: "Stock Bridle", Price: 650, PudoSize: enums.PudoSizeM},
			{Name: "Saddle Stand", Price: 500, PudoSize: enums.PudoSizeL},
		},
		catalog.ShippingTable{
			"locker-locker": {enums.PudoSizeM: 80, enums.PudoSizeL: 120},
		},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(store, pricing.NewCalculator(provider), logg)
}

func testSubmission() Submission {
	return Submission{
		Name:    "Anna Botha",
		Email:   "anna@example.com",
		Phone:   "+27 82 000 0000",
		Address: "14 Vlei Road, Howick, KZN",
		Route:   "locker-locker",
		Items:   []pricing.Item{{Name: "Stock Bridle", Qty: 1}},
	}
}

func TestCreatePersistsPricedDocument(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	inquiry, err := svc.Create(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(inquiry.ID, "inquiry-") {
		t.Fatalf("unexpected id %q", inquiry.ID)
	}
	if inquiry.Status != enums.InquiryStatusPending {
		t.Fatalf("expected pending status, got %q", inquiry.Status)
	}
	if inquiry.Totals.Products != 650 || inquiry.Totals.Shipping != 80 || inquiry.Totals.Total != 730 {
		t.Fatalf("unexpected totals %+v", inquiry.Totals)
	}
	if inquiry.Totals.Total != inquiry.Totals.Products+inquiry.Totals.Shipping {
		t.Fatalf("totals invariant broken: %+v", inquiry.Totals)
	}
	if inquiry.Shipping.Size != enums.PudoSizeM {
		t.Fatalf("unexpected shipping size %q", inquiry.Shipping.Size)
	}

	raw, ok := store.objects["inquiries/"+inquiry.ID+".json"]
	if !ok {
		t.Fatalf("expected document under inquiries/ prefix, have %v", store.objects)
	}
	var stored Inquiry
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored document unparsable: %v", err)
	}
	if stored.ID != inquiry.ID {
		t.Fatalf("stored id %q differs from returned %q", stored.ID, inquiry.ID)
	}
}

func TestCreateUnknownProductPersistsNothing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	sub := testSubmission()
	sub.Items = []pricing.Item{{Name: "Ghost Halter", Qty: 1}}

	_, err := svc.Create(context.Background(), sub)
	if !pkgerrors.IsCode(err, pkgerrors.CodeProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected no partial write, have %v", store.objects)
	}
}

func TestGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	created, err := svc.Create(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	createdJSON, _ := json.Marshal(created)
	fetchedJSON, _ := json.Marshal(fetched)
	if string(createdJSON) != string(fetchedJSON) {
		t.Fatalf("round trip mismatch:\n%s\n%s", createdJSON, fetchedJSON)
	}
}

func TestGetUnknownID(t *testing.T) {
	t.Parallel()

	svc := testService(t, newFakeStore())
	_, err := svc.Get(context.Background(), "inquiry-0-missing")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListNewestFirstAndSkipsUnreadable(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, suffix := range []string{"aaa", "bbb", "ccc"} {
		stamp := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return stamp }
		svc.suffix = func() string { return suffix }
		if _, err := svc.Create(context.Background(), testSubmission()); err != nil {
			t.Fatalf("create %s: %v", suffix, err)
		}
	}
	store.objects["inquiries/inquiry-0-corrupt.json"] = []byte("{not json")

	inquiries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(inquiries) != 3 {
		t.Fatalf("expected corrupt document skipped, got %d entries", len(inquiries))
	}
	for i := 1; i < len(inquiries); i++ {
		if inquiries[i].CreatedAt.After(inquiries[i-1].CreatedAt) {
			t.Fatalf("expected newest first ordering, got %v then %v", inquiries[i-1].CreatedAt, inquiries[i].CreatedAt)
		}
	}
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	created, err := svc.Create(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), created.ID, "reviewed")
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != enums.InquiryStatusReviewed {
		t.Fatalf("expected reviewed, got %q", updated.Status)
	}

	t.Run("invalid status leaves document unchanged", func(t *testing.T) {
		_, err := svc.SetStatus(context.Background(), created.ID, "shipped")
		if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		current, err := svc.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if current.Status != enums.InquiryStatusReviewed {
			t.Fatalf("status mutated to %q on rejected update", current.Status)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.SetStatus(context.Background(), "inquiry-0-missing", "reviewed")
		if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestSetInvoiceURL(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := testService(t, store)

	created, err := svc.Create(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.SetInvoiceURL(context.Background(), created.ID, "https://storage.example/invoices/x.pdf")
	if err != nil {
		t.Fatalf("set invoice url: %v", err)
	}
	if updated.InvoiceURL != "https://storage.example/invoices/x.pdf" {
		t.Fatalf("unexpected url %q", updated.InvoiceURL)
	}
	if updated.Status != created.Status || updated.Totals != created.Totals {
		t.Fatalf("unrelated fields mutated: %+v", updated)
	}
}
