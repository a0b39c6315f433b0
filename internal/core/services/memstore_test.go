package services_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chasseuragace/code-sub001/internal/apperrors"
	"github.com/chasseuragace/code-sub001/internal/core/domain"
	portsrepo "github.com/chasseuragace/code-sub001/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore is an in-memory stand-in for the pgsql repositories. Writes are buffered per
// transaction and applied on Commit; FindApplicationByIDForUpdate takes a row lock that is
// held until Commit or Rollback. Snapshot transactions read a copy taken at begin.
type memStore struct {
	mu         sync.Mutex
	apps       map[string]domain.JobApplication
	history    map[string][]domain.TransitionRecord
	interviews map[string]domain.InterviewRecord
	postings   map[string]domain.JobPosting
	positions  map[string]domain.JobPosition
	candidates map[string]domain.Candidate
	rowLocks   map[string]chan struct{}

	lockTimeout time.Duration
	beginErrs   []error
	appendErr   error

	begun     int
	committed int
}

var (
	_ portsrepo.TransactionManager          = (*memStore)(nil)
	_ portsrepo.ApplicationRepositoryFacade = (*memStore)(nil)
	_ portsrepo.HistoryRepositoryFacade     = (*memStore)(nil)
	_ portsrepo.InterviewRepositoryFacade   = (*memStore)(nil)
	_ portsrepo.CatalogReader               = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		apps:        make(map[string]domain.JobApplication),
		history:     make(map[string][]domain.TransitionRecord),
		interviews:  make(map[string]domain.InterviewRecord),
		postings:    make(map[string]domain.JobPosting),
		positions:   make(map[string]domain.JobPosition),
		candidates:  make(map[string]domain.Candidate),
		rowLocks:    make(map[string]chan struct{}),
		lockTimeout: 200 * time.Millisecond,
	}
}

type memTx struct {
	pgx.Tx
	store      *memStore
	locks      []string
	newApps    []domain.JobApplication
	updates    map[string]domain.JobApplication
	appends    []domain.TransitionRecord
	interviews map[string]domain.InterviewRecord
	snapshot   *memSnapshot
	done       bool
}

type memSnapshot struct {
	apps       map[string]domain.JobApplication
	history    map[string][]domain.TransitionRecord
	interviews map[string]domain.InterviewRecord
}

func (s *memStore) asTx(tx pgx.Tx) *memTx {
	mt, ok := tx.(*memTx)
	if !ok || mt.store != s {
		panic("foreign transaction")
	}
	return mt
}

// --- TransactionManager ---

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.begun++
	if len(s.beginErrs) > 0 {
		err := s.beginErrs[0]
		s.beginErrs = s.beginErrs[1:]
		return nil, err
	}
	return &memTx{
		store:      s,
		updates:    make(map[string]domain.JobApplication),
		interviews: make(map[string]domain.InterviewRecord),
	}, nil
}

func (s *memStore) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.Begin(ctx)
	if err != nil {
		return nil, err
	}
	mt := tx.(*memTx)

	s.mu.Lock()
	defer s.mu.Unlock()
	snap := &memSnapshot{
		apps:       make(map[string]domain.JobApplication, len(s.apps)),
		history:    make(map[string][]domain.TransitionRecord, len(s.history)),
		interviews: make(map[string]domain.InterviewRecord, len(s.interviews)),
	}
	for id, app := range s.apps {
		snap.apps[id] = app
	}
	for id, recs := range s.history {
		snap.history[id] = append([]domain.TransitionRecord(nil), recs...)
	}
	for id, rec := range s.interviews {
		snap.interviews[id] = rec
	}
	mt.snapshot = snap
	return mt, nil
}

func (s *memStore) Commit(ctx context.Context, tx pgx.Tx) error {
	mt := s.asTx(tx)
	if mt.done {
		return errors.New("transaction already closed")
	}
	s.mu.Lock()
	for _, app := range mt.newApps {
		s.apps[app.ApplicationID] = app
	}
	for id, app := range mt.updates {
		s.apps[id] = app
	}
	for _, rec := range mt.appends {
		s.history[rec.ApplicationID] = append(s.history[rec.ApplicationID], rec)
	}
	for id, rec := range mt.interviews {
		s.interviews[id] = rec
	}
	s.committed++
	s.mu.Unlock()
	s.finish(mt)
	return nil
}

func (s *memStore) Rollback(ctx context.Context, tx pgx.Tx) error {
	mt := s.asTx(tx)
	if mt.done {
		return nil
	}
	s.finish(mt)
	return nil
}

func (s *memStore) finish(mt *memTx) {
	mt.done = true
	for _, id := range mt.locks {
		<-s.rowLock(id)
	}
	mt.locks = nil
}

func (s *memStore) rowLock(id string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.rowLocks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.rowLocks[id] = ch
	}
	return ch
}

// --- ApplicationReader ---

func (s *memStore) FindApplicationByID(ctx context.Context, applicationID string) (*domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[applicationID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", applicationID))
	}
	return &app, nil
}

func (s *memStore) FindApplicationByIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error) {
	mt := s.asTx(tx)
	if mt.snapshot == nil {
		if pending, ok := mt.updates[applicationID]; ok {
			return &pending, nil
		}
		return s.FindApplicationByID(ctx, applicationID)
	}
	app, ok := mt.snapshot.apps[applicationID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("application %s not found", applicationID))
	}
	return &app, nil
}

func (s *memStore) FindApplicationsByPostingAndCandidate(ctx context.Context, jobPostingID, candidateID string) ([]domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.JobApplication
	for _, app := range s.apps {
		if app.JobPostingID == jobPostingID && app.CandidateID == candidateID {
			out = append(out, app)
		}
	}
	sortApplications(out)
	return out, nil
}

func (s *memStore) ListApplications(ctx context.Context, filter domain.ApplicationFilter, limit int, after *portsrepo.ApplicationCursor) ([]domain.JobApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []domain.JobApplication
	for _, app := range s.apps {
		if filter.AgencyID != "" && app.AgencyID != filter.AgencyID {
			continue
		}
		if filter.CandidateID != "" && app.CandidateID != filter.CandidateID {
			continue
		}
		if filter.JobPostingID != "" && app.JobPostingID != filter.JobPostingID {
			continue
		}
		if filter.PositionID != "" && app.PositionID != filter.PositionID {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		if after != nil {
			if app.CreatedAt.Before(after.CreatedAt) || (app.CreatedAt.Equal(after.CreatedAt) && app.ApplicationID <= after.ID) {
				continue
			}
		}
		all = append(all, app)
	}
	sortApplications(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func sortApplications(apps []domain.JobApplication) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].CreatedAt.Equal(apps[j].CreatedAt) {
			return apps[i].CreatedAt.Before(apps[j].CreatedAt)
		}
		return apps[i].ApplicationID < apps[j].ApplicationID
	})
}

// --- ApplicationWriter ---

func (s *memStore) SaveApplicationInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication) error {
	mt := s.asTx(tx)
	s.mu.Lock()
	defer s.mu.Unlock()
	same := func(other domain.JobApplication) bool {
		return other.CandidateID == app.CandidateID && other.JobPostingID == app.JobPostingID && other.PositionID == app.PositionID
	}
	for _, existing := range s.apps {
		if same(existing) {
			return apperrors.NewConflictError("application already exists")
		}
	}
	for _, pending := range mt.newApps {
		if same(pending) {
			return apperrors.NewConflictError("application already exists")
		}
	}
	mt.newApps = append(mt.newApps, app)
	return nil
}

func (s *memStore) FindApplicationByIDForUpdate(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.JobApplication, error) {
	mt := s.asTx(tx)
	if _, err := s.FindApplicationByID(ctx, applicationID); err != nil {
		return nil, err
	}

	lock := s.rowLock(applicationID)
	select {
	case lock <- struct{}{}:
		mt.locks = append(mt.locks, applicationID)
	case <-time.After(s.lockTimeout):
		return nil, apperrors.NewRetryableConflictError("application is locked by another operation", errors.New("lock timeout"))
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if pending, ok := mt.updates[applicationID]; ok {
		return &pending, nil
	}
	return s.FindApplicationByID(ctx, applicationID)
}

func (s *memStore) UpdateApplicationStatusInTx(ctx context.Context, tx pgx.Tx, app domain.JobApplication, expectedVersion int64) error {
	mt := s.asTx(tx)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.apps[app.ApplicationID]
	if !ok {
		return apperrors.NewNotFoundError("application not found")
	}
	if current.Version != expectedVersion {
		return apperrors.NewRetryableConflictError("application was modified concurrently", nil)
	}
	mt.updates[app.ApplicationID] = app
	return nil
}

// --- History ---

func (s *memStore) AppendTransitionInTx(ctx context.Context, tx pgx.Tx, rec *domain.TransitionRecord) error {
	mt := s.asTx(tx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	seq := int64(len(s.history[rec.ApplicationID]))
	for _, pending := range mt.appends {
		if pending.ApplicationID == rec.ApplicationID {
			seq++
		}
	}
	rec.Seq = seq + 1
	mt.appends = append(mt.appends, *rec)
	return nil
}

func (s *memStore) ListHistory(ctx context.Context, applicationID string) ([]domain.TransitionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TransitionRecord, len(s.history[applicationID]))
	copy(out, s.history[applicationID])
	return out, nil
}

func (s *memStore) ListHistoryInTx(ctx context.Context, tx pgx.Tx, applicationID string) ([]domain.TransitionRecord, error) {
	mt := s.asTx(tx)
	if mt.snapshot != nil {
		return append([]domain.TransitionRecord{}, mt.snapshot.history[applicationID]...), nil
	}
	out, _ := s.ListHistory(ctx, applicationID)
	for _, pending := range mt.appends {
		if pending.ApplicationID == applicationID {
			out = append(out, pending)
		}
	}
	return out, nil
}

// --- Interview ---

func (s *memStore) UpsertInterviewInTx(ctx context.Context, tx pgx.Tx, rec *domain.InterviewRecord) error {
	mt := s.asTx(tx)
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	rec.CreatedAt = now
	if existing, ok := s.interviews[rec.ApplicationID]; ok {
		rec.CreatedAt = existing.CreatedAt
	}
	rec.UpdatedAt = now
	mt.interviews[rec.ApplicationID] = *rec
	return nil
}

func (s *memStore) FindInterviewByApplicationID(ctx context.Context, applicationID string) (*domain.InterviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.interviews[applicationID]
	if !ok {
		return nil, apperrors.NewNotFoundError("interview not found")
	}
	return &rec, nil
}

func (s *memStore) FindInterviewByApplicationIDInTx(ctx context.Context, tx pgx.Tx, applicationID string) (*domain.InterviewRecord, error) {
	mt := s.asTx(tx)
	if mt.snapshot == nil {
		if pending, ok := mt.interviews[applicationID]; ok {
			return &pending, nil
		}
		return s.FindInterviewByApplicationID(ctx, applicationID)
	}
	rec, ok := mt.snapshot.interviews[applicationID]
	if !ok {
		return nil, apperrors.NewNotFoundError("interview not found")
	}
	return &rec, nil
}

// --- Catalog ---

func (s *memStore) FindJobPostingByID(ctx context.Context, jobPostingID string) (*domain.JobPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.postings[jobPostingID]
	if !ok {
		return nil, apperrors.NewNotFoundError("job posting not found")
	}
	return &p, nil
}

func (s *memStore) FindPositionByID(ctx context.Context, positionID string) (*domain.JobPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.positions[positionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("position not found")
	}
	return &p, nil
}

func (s *memStore) FindCandidateByID(ctx context.Context, candidateID string) (*domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[candidateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("candidate not found")
	}
	return &c, nil
}

// --- seeding and inspection helpers ---

var seedPaths = map[domain.ApplicationStatus][]domain.ApplicationStatus{
	domain.StatusApplied:              {domain.StatusApplied},
	domain.StatusShortlisted:          {domain.StatusApplied, domain.StatusShortlisted},
	domain.StatusInterviewScheduled:   {domain.StatusApplied, domain.StatusShortlisted, domain.StatusInterviewScheduled},
	domain.StatusInterviewRescheduled: {domain.StatusApplied, domain.StatusShortlisted, domain.StatusInterviewScheduled, domain.StatusInterviewRescheduled},
	domain.StatusInterviewPassed:      {domain.StatusApplied, domain.StatusShortlisted, domain.StatusInterviewScheduled, domain.StatusInterviewPassed},
	domain.StatusInterviewFailed:      {domain.StatusApplied, domain.StatusShortlisted, domain.StatusInterviewScheduled, domain.StatusInterviewFailed},
	domain.StatusWithdrawn:            {domain.StatusApplied, domain.StatusWithdrawn},
}

// seedApplication stores an application at status with a consistent history.
func (s *memStore) seedApplication(agencyID, candidateID string, status domain.ApplicationStatus) domain.JobApplication {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(len(s.apps)) * time.Minute)
	app := domain.JobApplication{
		ApplicationID: uuid.NewString(),
		CandidateID:   candidateID,
		JobPostingID:  "posting-1",
		PositionID:    "position-1",
		AgencyID:      agencyID,
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     created,
			CreatedBy:     candidateID,
			LastUpdatedAt: created,
			LastUpdatedBy: candidateID,
			Version:       int64(len(seedPaths[status])),
		},
	}
	if status == domain.StatusWithdrawn {
		at := created
		app.WithdrawnAt = &at
	}

	var prev *domain.ApplicationStatus
	for i, st := range seedPaths[status] {
		rec := domain.NewTransitionRecord(app.ApplicationID, prev, st, "seed", "", created.Add(time.Duration(i)*time.Second))
		rec.Seq = int64(i + 1)
		s.history[app.ApplicationID] = append(s.history[app.ApplicationID], rec)
		next := st
		prev = &next
	}
	s.apps[app.ApplicationID] = app
	return app
}

func (s *memStore) app(id string) domain.JobApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apps[id]
}

func (s *memStore) historyLen(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history[id])
}

func (s *memStore) counts() (begun, committed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.begun, s.committed
}
