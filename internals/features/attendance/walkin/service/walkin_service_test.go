package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/errs"
	eventModel "hadirku_backend/internals/features/attendance/events/model"
	participantModel "hadirku_backend/internals/features/attendance/participants/model"
	"hadirku_backend/internals/features/attendance/walkin/model"
)

// fakeConsumeStore meniru semantik gormConsumeStore di memori: increment
// kondisional di bawah lock + dedupe email sebelum charge kuota.
type fakeConsumeStore struct {
	mu           sync.Mutex
	token        model.WalkInTokenModel
	event        eventModel.EventModel
	participants []participantModel.ParticipantModel
	consumeCalls int
}

func (f *fakeConsumeStore) TokenByValue(_ context.Context, token string) (*model.WalkInTokenModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.token.WalkInTokenToken {
		return nil, errs.ErrNotFound
	}
	cp := f.token
	return &cp, nil
}

func (f *fakeConsumeStore) EventByID(_ context.Context, id uuid.UUID) (*eventModel.EventModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.event.EventID {
		return nil, errs.ErrNotFound
	}
	cp := f.event
	return &cp, nil
}

func (f *fakeConsumeStore) ConsumeAndInsert(_ context.Context, tokenID uuid.UUID, p *participantModel.ParticipantModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumeCalls++

	if tokenID != f.token.WalkInTokenID {
		return errs.ErrNotFound
	}
	if !f.token.WalkInTokenIsActive {
		return errs.ErrInactive
	}
	if f.token.WalkInTokenMaxUses != nil && f.token.WalkInTokenCurrentUses >= *f.token.WalkInTokenMaxUses {
		return errs.ErrExhausted
	}
	// dedupe dicek SEBELUM charge — mencontoh rollback transaksi: insert
	// gagal berarti increment ikut batal
	for _, r := range f.participants {
		if r.EventParticipantEventID == p.EventParticipantEventID &&
			r.EventParticipantEmail == p.EventParticipantEmail {
			return errs.ErrAlreadyRegistered
		}
	}
	f.token.WalkInTokenCurrentUses++
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeConsumeStore) currentUses() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token.WalkInTokenCurrentUses
}

func (f *fakeConsumeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consumeCalls
}

func intPtr(n int) *int { return &n }

func newFakeStore(maxUses *int, active bool, open bool, paid bool) *fakeConsumeStore {
	eventID := uuid.New()
	status := eventModel.RegistrationStatusOpened
	if !open {
		status = eventModel.RegistrationStatusClosed
	}
	return &fakeConsumeStore{
		token: model.WalkInTokenModel{
			WalkInTokenID:       uuid.New(),
			WalkInTokenEventID:  eventID,
			WalkInTokenToken:    "tok-walkin-abc",
			WalkInTokenMaxUses:  maxUses,
			WalkInTokenIsActive: active,
		},
		event: eventModel.EventModel{
			EventID:                  eventID,
			EventTitle:               "Kajian Akbar",
			EventRegistrationStatus:  status,
			EventIsAttendanceEnabled: open,
			EventIsPaid:              paid,
			EventStartDatetime:       time.Now().Add(-time.Hour),
			EventEndDatetime:         time.Now().Add(time.Hour),
		},
	}
}

func TestConsumeCapUnderContention(t *testing.T) {
	const maxUses = 3
	const callers = 10

	fake := newFakeStore(intPtr(maxUses), true, true, false)
	svc := &WalkInService{store: fake}

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
				Name:  fmt.Sprintf("Peserta %d", i),
				Email: fmt.Sprintf("peserta%d@mail.com", i),
			}, nil)
			results[i] = err
		}(i)
	}
	wg.Wait()

	ok, exhausted := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errs.ErrExhausted):
			exhausted++
		default:
			t.Fatalf("error tak terduga: %v", err)
		}
	}
	if ok != maxUses {
		t.Fatalf("sukses = %d, mau tepat %d", ok, maxUses)
	}
	if exhausted != callers-maxUses {
		t.Fatalf("exhausted = %d, mau %d", exhausted, callers-maxUses)
	}
	if fake.currentUses() != maxUses {
		t.Fatalf("current_uses = %d, mau %d (tidak boleh over-charge)", fake.currentUses(), maxUses)
	}
}

func TestConsumeUnlimitedToken(t *testing.T) {
	fake := newFakeStore(nil, true, true, false)
	svc := &WalkInService{store: fake}

	for i := 0; i < 5; i++ {
		_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
			Name:  "Peserta",
			Email: fmt.Sprintf("p%d@mail.com", i),
		}, nil)
		if err != nil {
			t.Fatalf("token tanpa batas harus selalu bisa: %v", err)
		}
	}
	if fake.currentUses() != 5 {
		t.Fatalf("current_uses = %d, mau 5", fake.currentUses())
	}
}

func TestConsumeInactiveToken(t *testing.T) {
	fake := newFakeStore(intPtr(10), false, true, false)
	svc := &WalkInService{store: fake}

	_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Peserta", Email: "p@mail.com",
	}, nil)
	if !errors.Is(err, errs.ErrInactive) {
		t.Fatalf("mau ErrInactive, dapat %v", err)
	}
}

func TestConsumeUnknownToken(t *testing.T) {
	fake := newFakeStore(intPtr(10), true, true, false)
	svc := &WalkInService{store: fake}

	_, err := svc.ConsumeAndRegister(context.Background(), "tok-tidak-ada", Registrant{
		Name: "Peserta", Email: "p@mail.com",
	}, nil)
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("mau ErrNotFound, dapat %v", err)
	}
	if fake.calls() != 0 {
		t.Fatalf("token tak dikenal tidak boleh sampai ke consume, calls = %d", fake.calls())
	}
}

func TestConsumeWindowClosed(t *testing.T) {
	fake := newFakeStore(intPtr(10), true, false, false)
	svc := &WalkInService{store: fake}

	_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Peserta", Email: "p@mail.com",
	}, nil)
	if !errors.Is(err, errs.ErrWindowClosed) {
		t.Fatalf("mau ErrWindowClosed, dapat %v", err)
	}
	if fake.calls() != 0 {
		t.Fatalf("window tertutup = belum ada tulisan, calls = %d", fake.calls())
	}
}

func TestConsumePaidEventRequiresProof(t *testing.T) {
	fake := newFakeStore(intPtr(10), true, true, true)
	svc := &WalkInService{store: fake}

	_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Peserta", Email: "p@mail.com",
	}, nil)
	if !errors.Is(err, errs.ErrProofRequired) {
		t.Fatalf("mau ErrProofRequired, dapat %v", err)
	}
	if fake.calls() != 0 {
		t.Fatalf("tanpa bukti tidak boleh charge kuota, calls = %d", fake.calls())
	}

	// dengan bukti → lolos
	p, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Peserta", Email: "p@mail.com",
	}, &ProofMeta{URL: "/uploads/proofs/x.webp", Filename: "x.webp", UploadedAt: time.Now()})
	if err != nil {
		t.Fatalf("dengan bukti harus sukses: %v", err)
	}
	if len(p.EventParticipantPaymentProof) == 0 {
		t.Fatal("bukti pembayaran harus ikut tersimpan di peserta")
	}
}

func TestConsumeDuplicateEmailCaseInsensitive(t *testing.T) {
	fake := newFakeStore(intPtr(10), true, true, false)
	svc := &WalkInService{store: fake}

	if _, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Budi", Email: "Foo@x.com",
	}, nil); err != nil {
		t.Fatalf("registrasi pertama harus sukses: %v", err)
	}

	_, err := svc.ConsumeAndRegister(context.Background(), "tok-walkin-abc", Registrant{
		Name: "Budi Lagi", Email: "  foo@X.COM ",
	}, nil)
	if !errors.Is(err, errs.ErrAlreadyRegistered) {
		t.Fatalf("email beda case = orang yang sama, mau ErrAlreadyRegistered, dapat %v", err)
	}
	if fake.currentUses() != 1 {
		t.Fatalf("duplikat tidak boleh double-charge, current_uses = %d", fake.currentUses())
	}
}

func TestClassifyConsumeFailure(t *testing.T) {
	if err := classifyConsumeFailure(nil, gorm.ErrRecordNotFound); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("baris hilang → ErrNotFound, dapat %v", err)
	}

	inactive := &model.WalkInTokenModel{WalkInTokenIsActive: false}
	if err := classifyConsumeFailure(inactive, nil); !errors.Is(err, errs.ErrInactive) {
		t.Fatalf("token nonaktif → ErrInactive, dapat %v", err)
	}

	exhausted := &model.WalkInTokenModel{
		WalkInTokenIsActive:    true,
		WalkInTokenMaxUses:     intPtr(2),
		WalkInTokenCurrentUses: 2,
	}
	if err := classifyConsumeFailure(exhausted, nil); !errors.Is(err, errs.ErrExhausted) {
		t.Fatalf("kuota habis → ErrExhausted, dapat %v", err)
	}

	// race sempit: baca ulang terlihat aktif lagi — tetap exhausted supaya
	// caller retry, bukan error internal
	active := &model.WalkInTokenModel{WalkInTokenIsActive: true, WalkInTokenMaxUses: intPtr(5)}
	if err := classifyConsumeFailure(active, nil); !errors.Is(err, errs.ErrExhausted) {
		t.Fatalf("fallback klasifikasi → ErrExhausted, dapat %v", err)
	}
}

func TestValidateExhaustedTokenStillRenders(t *testing.T) {
	fake := newFakeStore(intPtr(1), true, true, false)
	fake.token.WalkInTokenCurrentUses = 1
	svc := &WalkInService{store: fake}

	snap, err := svc.Validate(context.Background(), "tok-walkin-abc")
	if err != nil {
		t.Fatalf("validate token habis tetap merender snapshot: %v", err)
	}
	if snap.TokenStatus != model.WalkInStatusExhausted {
		t.Fatalf("status = %q, mau %q", snap.TokenStatus, model.WalkInStatusExhausted)
	}
	if snap.RemainingUses == nil || *snap.RemainingUses != 0 {
		t.Fatal("sisa kuota harus 0")
	}
}
