package services

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yigit/hallsphere/internal/app/models"
	"github.com/yigit/hallsphere/internal/db"
	"github.com/yigit/hallsphere/internal/pkg/apperrors"
)

// fakeResidencyStore keeps residencies in memory and records effective
// expiry writes so tests can inspect what the engine persisted.
type fakeResidencyStore struct {
	mu          sync.Mutex
	residencies map[int64]*models.StudentResidency
	updateErr   error
	updateCount int
}

func newFakeResidencyStore() *fakeResidencyStore {
	return &fakeResidencyStore{residencies: make(map[int64]*models.StudentResidency)}
}

func (f *fakeResidencyStore) add(r *models.StudentResidency) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.residencies[r.UserID] = r
}

func (f *fakeResidencyStore) GetResidency(_ context.Context, studentID int64) (*models.StudentResidency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.residencies[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeResidencyStore) UpdateEffectiveExpiry(_ context.Context, studentID int64, effectiveExpiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	r, ok := f.residencies[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	d := effectiveExpiry
	r.EffectiveExpiryDate = &d
	f.updateCount++
	return nil
}

func (f *fakeResidencyStore) effective(studentID int64) *time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.residencies[studentID].EffectiveExpiryDate
}

// fakeExtensionStore is an in-memory ExtensionStore and
// ApprovedExtensionStore backed by a slice.
type fakeExtensionStore struct {
	mu      sync.Mutex
	records []*models.ResidencyExtension
	nextID  int64
}

func newFakeExtensionStore() *fakeExtensionStore {
	return &fakeExtensionStore{nextID: 1}
}

func (f *fakeExtensionStore) Create(_ context.Context, ext *models.ResidencyExtension) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.StudentID == ext.StudentID && r.Type == models.ExtensionIndividual && r.Status == models.ExtensionPending {
			return 0, apperrors.ErrDuplicatePendingRequest
		}
	}
	cp := *ext
	cp.ID = f.nextID
	f.nextID++
	f.records = append(f.records, &cp)
	return cp.ID, nil
}

func (f *fakeExtensionStore) BulkInsert(_ context.Context, exts []*models.ResidencyExtension) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ext := range exts {
		cp := *ext
		cp.ID = f.nextID
		f.nextID++
		f.records = append(f.records, &cp)
	}
	return nil
}

func (f *fakeExtensionStore) GetByID(_ context.Context, id int64) (*models.ResidencyExtension, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperrors.ErrExtensionNotFound
}

func (f *fakeExtensionStore) HasPendingIndividual(_ context.Context, studentID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.StudentID == studentID && r.Type == models.ExtensionIndividual && r.Status == models.ExtensionPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeExtensionStore) MarkProcessed(_ context.Context, id int64, status models.ExtensionStatus, rejectionReason *string, processedBy int64, processedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID != id {
			continue
		}
		if r.Status != models.ExtensionPending {
			return apperrors.ErrExtensionProcessed
		}
		r.Status = status
		r.RejectionReason = rejectionReason
		r.ProcessedBy = &processedBy
		t := processedAt
		r.ProcessedAt = &t
		return nil
	}
	return apperrors.ErrExtensionNotFound
}

func (f *fakeExtensionStore) ApprovedDatesByStudent(_ context.Context, studentID int64) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var dates []time.Time
	for _, r := range f.records {
		if r.StudentID == studentID && r.Status == models.ExtensionApproved {
			dates = append(dates, r.NewExpiryDate)
		}
	}
	return dates, nil
}

func (f *fakeExtensionStore) ListByStudent(_ context.Context, studentID int64) ([]*models.ResidencyExtension, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ResidencyExtension
	for _, r := range f.records {
		if r.StudentID == studentID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeExtensionStore) ListPendingByHall(_ context.Context, hallID int64) ([]*models.ResidencyExtension, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ResidencyExtension
	for _, r := range f.records {
		if r.HallID == hallID && r.Status == models.ExtensionPending {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeExtensionStore) GroupPolicyHistory(_ context.Context, hallID int64) ([]*models.GroupPolicyBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byBatch := make(map[string]*models.GroupPolicyBatch)
	var order []string
	for _, r := range f.records {
		if r.HallID != hallID || r.BatchID == nil {
			continue
		}
		key := r.BatchID.String()
		b, ok := byBatch[key]
		if !ok {
			b = &models.GroupPolicyBatch{
				BatchID:       *r.BatchID,
				NewExpiryDate: r.NewExpiryDate,
				Reason:        r.Reason,
				Departments:   r.Departments,
			}
			if r.AcademicSession != nil {
				b.AcademicSession = *r.AcademicSession
			}
			if r.ProcessedBy != nil {
				b.AppliedByID = *r.ProcessedBy
			}
			if r.ProcessedAt != nil {
				b.AppliedAt = *r.ProcessedAt
			}
			byBatch[key] = b
			order = append(order, key)
		}
		b.StudentCount++
	}
	out := make([]*models.GroupPolicyBatch, 0, len(order))
	for _, key := range order {
		out = append(out, byBatch[key])
	}
	return out, nil
}

func (f *fakeExtensionStore) record(id int64) *models.ResidencyExtension {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// fakeCohortStore returns a fixed cohort
type fakeCohortStore struct {
	studentIDs []int64
	err        error
}

func (f *fakeCohortStore) FindCohortStudentIDs(_ context.Context, _ int64, _ string, _ []string) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.studentIDs, nil
}

// fakeTxRunner executes the function directly with a nil transaction; the
// fake stores ignore the tx handle.
type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	if f.err != nil {
		return f.err
	}
	return fn(ctx, nil)
}

// fakeUserStore keeps users keyed by email
type fakeUserStore struct {
	mu         sync.Mutex
	byEmail    map[string]*models.User
	nextID     int64
	lastLogins []int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	f.byEmail[user.Email] = user
}

func (f *fakeUserStore) CreateUserTx(_ context.Context, _ pgx.Tx, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[user.Email]; exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}
	cp := *user
	cp.ID = f.nextID
	f.nextID++
	f.byEmail[cp.Email] = &cp
	return cp.ID, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLogins = append(f.lastLogins, id)
	return nil
}

// fakeProfileStore records created profiles and serves a configurable
// session peer expiry.
type fakeProfileStore struct {
	mu         sync.Mutex
	peerExpiry *time.Time
	peerErr    error
	created    []*models.StudentProfile
	profiles   map[int64]*models.StudentProfile
}

func (f *fakeProfileStore) CreateProfileTx(_ context.Context, _ pgx.Tx, profile *models.StudentProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *profile
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeProfileStore) FindSessionPeerExpiryTx(_ context.Context, _ pgx.Tx, _ int64, _ string) (*time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.peerErr != nil {
		return nil, f.peerErr
	}
	return f.peerExpiry, nil
}

func (f *fakeProfileStore) GetProfileByUserID(_ context.Context, userID int64) (*models.StudentProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *p
	return &cp, nil
}

// fakeHallStore serves halls by id
type fakeHallStore struct {
	halls map[int64]*models.Hall
}

func (f *fakeHallStore) GetHallByID(_ context.Context, id int64) (*models.Hall, error) {
	h, ok := f.halls[id]
	if !ok {
		return nil, apperrors.ErrHallNotFound
	}
	cp := *h
	return &cp, nil
}

// fakeRoomStore serves rooms by id
type fakeRoomStore struct {
	rooms map[int64]*models.Room
}

func (f *fakeRoomStore) GetRoomByID(_ context.Context, id int64) (*models.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

// fakeCounters backs the stats service with fixed totals
type fakeCounters struct {
	userCounts     map[string]int64
	hallCount      int64
	complaintCount int64
	noticeCount    int64
	err            error
}

func (f *fakeCounters) CountByRoleAndStatus(_ context.Context, role models.RoleType, status models.ApprovalStatus) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.userCounts[string(role)+"/"+string(status)], nil
}

func (f *fakeCounters) CountActive(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.hallCount, nil
}

func (f *fakeCounters) CountByStatus(_ context.Context, _ models.ComplaintStatus) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.complaintCount, nil
}

func (f *fakeCounters) Count(_ context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.noticeCount, nil
}
