package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adra/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeBeneficiaryStore struct {
	records   []*types.Beneficiary
	nextID    int
	insertErr error
	listErr   error
	allErr    error
}

func (f *fakeBeneficiaryStore) Beneficiary(_ context.Context, id string) (*types.Beneficiary, error) {
	for _, b := range f.records {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, types.ErrBeneficiaryNotFound
}

func (f *fakeBeneficiaryStore) FindByEmail(_ context.Context, email string) (*types.Beneficiary, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, b := range f.records {
		if strings.ToLower(b.Email) == needle {
			return b, nil
		}
	}
	return nil, types.ErrBeneficiaryNotFound
}

func (f *fakeBeneficiaryStore) Insert(_ context.Context, beneficiary *types.Beneficiary) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if beneficiary.ID == "" {
		f.nextID++
		beneficiary.ID = fmt.Sprintf("fake-beneficiary-%d", f.nextID)
	}
	f.records = append(f.records, beneficiary)
	return nil
}

func (f *fakeBeneficiaryStore) ApplyValidation(_ context.Context, id string, status types.BeneficiaryStatus, reason string, entry types.HistoryEntry) error {
	for _, b := range f.records {
		if b.ID != id {
			continue
		}
		b.Status = status
		if strings.TrimSpace(reason) != "" {
			b.Notes = reason
		}
		b.History = append(b.History, entry)
		return nil
	}
	return types.ErrBeneficiaryNotFound
}

func (f *fakeBeneficiaryStore) List(_ context.Context, q types.ListQuery) ([]*types.Beneficiary, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	filtered := make([]*types.Beneficiary, 0, len(f.records))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, b := range f.records {
		if q.Status != "" && string(b.Status) != q.Status {
			continue
		}
		if search != "" {
			hay := strings.ToLower(strings.Join([]string{b.ID, b.Name, b.Email, b.Phone, b.Address.City, b.Address.State}, " "))
			if !strings.Contains(hay, search) {
				continue
			}
		}
		filtered = append(filtered, b)
	}

	start := q.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], len(filtered), nil
}

func (f *fakeBeneficiaryStore) All(_ context.Context) ([]*types.Beneficiary, error) {
	if f.allErr != nil {
		return nil, f.allErr
	}
	return f.records, nil
}

type fakeDonationStore struct {
	records []*types.Donation
	listErr error
}

func (f *fakeDonationStore) Donation(_ context.Context, id string) (*types.Donation, error) {
	for _, d := range f.records {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, types.ErrDonationNotFound
}

func (f *fakeDonationStore) ApplyPatch(_ context.Context, id string, patch types.DonationPatch, entry *types.TimelineEntry) error {
	for _, d := range f.records {
		if d.ID != id {
			continue
		}
		if patch.Status != "" {
			d.Status = patch.Status
		}
		if entry != nil {
			d.Timeline = append(d.Timeline, *entry)
		}
		return nil
	}
	return types.ErrDonationNotFound
}

func (f *fakeDonationStore) List(_ context.Context, q types.ListQuery) ([]*types.Donation, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	filtered := make([]*types.Donation, 0, len(f.records))
	for _, d := range f.records {
		if q.Status != "" && d.Status != q.Status {
			continue
		}
		filtered = append(filtered, d)
	}

	start := q.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], len(filtered), nil
}

func (f *fakeDonationStore) All(_ context.Context) ([]*types.Donation, error) {
	return f.records, nil
}

type fakeScheduleStore struct {
	records   []*types.PickupSchedule
	insertErr error
}

func (f *fakeScheduleStore) Insert(_ context.Context, schedule *types.PickupSchedule) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if schedule.ID == "" {
		schedule.ID = "fake-schedule"
	}
	f.records = append(f.records, schedule)
	return nil
}

func (f *fakeScheduleStore) All(_ context.Context) ([]*types.PickupSchedule, error) {
	return f.records, nil
}

type fakeNecessidadeStore struct {
	records []*types.Necessidade
	nextID  int
}

func (f *fakeNecessidadeStore) Insert(_ context.Context, necessidade *types.Necessidade) error {
	f.nextID++
	if necessidade.ID == "" {
		necessidade.ID = fmt.Sprintf("fake-need-%d", f.nextID)
	}
	f.records = append(f.records, necessidade)
	return nil
}

func (f *fakeNecessidadeStore) ApplyPatch(_ context.Context, id string, status types.NecessidadeStatus, observacaoInterna string) error {
	for _, n := range f.records {
		if n.ID != id {
			continue
		}
		if status != "" {
			n.Status = status
		}
		if strings.TrimSpace(observacaoInterna) != "" {
			n.ObservacaoInterna = observacaoInterna
		}
		return nil
	}
	return types.ErrNecessidadeNotFound
}

func (f *fakeNecessidadeStore) List(_ context.Context, q types.NecessidadeListQuery) ([]*types.Necessidade, int, error) {
	filtered := make([]*types.Necessidade, 0, len(f.records))
	for _, n := range f.records {
		if q.Status != "" && string(n.Status) != q.Status {
			continue
		}
		if q.Prioridade != "" && n.Prioridade != q.Prioridade {
			continue
		}
		if q.Categoria != "" && n.Categoria != q.Categoria {
			continue
		}
		filtered = append(filtered, n)
	}

	start := q.Offset()
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + q.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], len(filtered), nil
}

func (f *fakeNecessidadeStore) All(_ context.Context) ([]*types.Necessidade, error) {
	return f.records, nil
}

type fakeUserStore struct {
	records []*types.User
}

func (f *fakeUserStore) User(_ context.Context, id string) (*types.User, error) {
	for _, u := range f.records {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*types.User, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.records {
		if strings.ToLower(u.Email) == needle {
			return u, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *types.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("fake-user-%d", len(f.records)+1)
	}
	f.records = append(f.records, user)
	return nil
}

type statusUpdateCall struct {
	Email    string
	Approved bool
	Reason   string
}

type fakeNotifier struct {
	newBeneficiaries []*types.Beneficiary
	statusUpdates    []statusUpdateCall
	err              error
}

func (f *fakeNotifier) SendNewBeneficiaryNotification(beneficiary *types.Beneficiary) error {
	f.newBeneficiaries = append(f.newBeneficiaries, beneficiary)
	return f.err
}

func (f *fakeNotifier) SendBeneficiaryStatusUpdate(email string, approved bool, reason string) error {
	f.statusUpdates = append(f.statusUpdates, statusUpdateCall{Email: email, Approved: approved, Reason: reason})
	return f.err
}

type testEnv struct {
	svc           *Service
	beneficiaries *fakeBeneficiaryStore
	donations     *fakeDonationStore
	schedules     *fakeScheduleStore
	necessidades  *fakeNecessidadeStore
	users         *fakeUserStore
	notifier      *fakeNotifier
}

func testConfig() *types.Config {
	key := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	return &types.Config{
		Environment:        "test",
		AdminPassword:      "correct-password",
		AdminSessionSecret: "test-session-secret",
		JWTSecret:          "test-jwt-secret",
		CookieHashKey:      key,
		CookieBlockKey:     key,
	}
}

func newTestEnv(t *testing.T, mutate func(*types.Config)) *testEnv {
	t.Helper()

	config := testConfig()
	if mutate != nil {
		mutate(config)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := &testEnv{
		beneficiaries: &fakeBeneficiaryStore{},
		donations:     &fakeDonationStore{},
		schedules:     &fakeScheduleStore{},
		necessidades:  &fakeNecessidadeStore{},
		users:         &fakeUserStore{},
		notifier:      &fakeNotifier{},
	}

	svc, err := New(
		config,
		logger,
		env.notifier,
		env.beneficiaries,
		env.donations,
		env.schedules,
		env.necessidades,
		env.users,
	)
	if err != nil {
		t.Fatalf("failed to build test service: %v", err)
	}

	env.svc = svc
	return env
}

// do runs a request through the full middleware and routing stack.
func (e *testEnv) do(t *testing.T, method, path string, body any, modify func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if modify != nil {
		modify(req)
	}

	rec := httptest.NewRecorder()
	e.svc.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}
