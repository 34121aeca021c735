package services

import (
	"context"
	"sync"
	"time"

	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the content and usage repositories.
// CreateWithUsage mirrors the SQL path: the ceiling check and the increment
// happen under one lock, so concurrent commits can never exceed a limit.
type memStore struct {
	mu      sync.Mutex
	records []models.GeneratedContent
	daily   map[string]int
	monthly map[string]int

	createErr error
}

func newMemStore() *memStore {
	return &memStore{
		daily:   make(map[string]int),
		monthly: make(map[string]int),
	}
}

func dailyKey(userID uuid.UUID, t time.Time) string {
	return userID.String() + "|" + models.DayKey(t)
}

func monthlyKey(userID uuid.UUID, t time.Time) string {
	return userID.String() + "|" + models.MonthKey(t)
}

func (s *memStore) CreateWithUsage(ctx context.Context, content *models.GeneratedContent, dailyLimit, monthlyLimit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return s.createErr
	}

	now := time.Now()
	dk := dailyKey(content.UserID, now)
	mk := monthlyKey(content.UserID, now)

	if dailyLimit >= 0 && s.daily[dk] >= dailyLimit {
		return apperrors.ErrDailyLimitExceeded
	}
	if monthlyLimit >= 0 && s.monthly[mk] >= monthlyLimit {
		return apperrors.ErrMonthlyLimitExceeded
	}

	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = now
	}

	s.records = append(s.records, *content)
	s.daily[dk]++
	s.monthly[mk]++
	return nil
}

func (s *memStore) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.GeneratedContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.GeneratedContent
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		if s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *memStore) DeleteOwned(ctx context.Context, contentID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == contentID && s.records[i].UserID == userID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// UsageRepository side, used by the quota service's read checks.

func (s *memStore) DailyCount(ctx context.Context, userID uuid.UUID, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daily[userID.String()+"|"+day], nil
}

func (s *memStore) MonthlyCount(ctx context.Context, userID uuid.UUID, month string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.monthly[userID.String()+"|"+month], nil
}

func (s *memStore) IncrementTx(tx *gorm.DB, userID uuid.UUID, now time.Time, dailyLimit, monthlyLimit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dk := dailyKey(userID, now)
	mk := monthlyKey(userID, now)
	if dailyLimit >= 0 && s.daily[dk] >= dailyLimit {
		return apperrors.ErrDailyLimitExceeded
	}
	if monthlyLimit >= 0 && s.monthly[mk] >= monthlyLimit {
		return apperrors.ErrMonthlyLimitExceeded
	}
	s.daily[dk]++
	s.monthly[mk]++
	return nil
}

func (s *memStore) recordCount(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for i := range s.records {
		if s.records[i].UserID == userID {
			n++
		}
	}
	return n
}

// fakeSubscriptionRepo serves a fixed subscription per user.
type fakeSubscriptionRepo struct {
	subs map[uuid.UUID]*models.UserSubscription
	err  error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uuid.UUID]*models.UserSubscription)}
}

func (f *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error) {
	return f.GetActiveByUserID(ctx, userID)
}

func (f *fakeSubscriptionRepo) GetActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.UserSubscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	sub, ok := f.subs[userID]
	if !ok || !sub.IsActive(time.Now()) {
		return nil, repository.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (f *fakeSubscriptionRepo) Assign(ctx context.Context, userID, planID uuid.UUID) (*models.UserSubscription, error) {
	sub := &models.UserSubscription{
		ID:     uuid.New(),
		UserID: userID,
		PlanID: planID,
		Status: models.SubscriptionActive,
	}
	f.subs[userID] = sub
	return sub, nil
}

func (f *fakeSubscriptionRepo) Cancel(ctx context.Context, userID uuid.UUID) error {
	sub, ok := f.subs[userID]
	if !ok {
		return repository.ErrSubscriptionNotFound
	}
	sub.Status = models.SubscriptionCancelled
	return nil
}

func (f *fakeSubscriptionRepo) put(userID uuid.UUID, plan models.SubscriptionPlan) {
	f.subs[userID] = &models.UserSubscription{
		ID:     uuid.New(),
		UserID: userID,
		PlanID: plan.ID,
		Status: models.SubscriptionActive,
		Plan:   plan,
	}
}

// stubGenerator returns canned text or a canned error.
type stubGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (g *stubGenerator) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

// fakeUserRepo keeps users in a map keyed by id and email.
type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.byEmail[user.Email]; exists {
		return apperrors.ErrAlreadyExists
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) TouchLastSignedIn(ctx context.Context, id uuid.UUID) error {
	return nil
}

// fakePlanRepo serves a fixed catalog keyed by name.
type fakePlanRepo struct {
	plans map[string]*models.SubscriptionPlan
}

func newFakePlanRepo(plans ...models.SubscriptionPlan) *fakePlanRepo {
	repo := &fakePlanRepo{plans: make(map[string]*models.SubscriptionPlan)}
	for i := range plans {
		if plans[i].ID == uuid.Nil {
			plans[i].ID = uuid.New()
		}
		repo.plans[plans[i].Name] = &plans[i]
	}
	return repo
}

func (f *fakePlanRepo) List(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var out []models.SubscriptionPlan
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	for _, p := range f.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakePlanRepo) GetByName(ctx context.Context, name string) (*models.SubscriptionPlan, error) {
	p, ok := f.plans[name]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (f *fakePlanRepo) Update(ctx context.Context, id uuid.UUID, update repository.PlanUpdate) (*models.SubscriptionPlan, error) {
	plan, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.DisplayName != nil {
		plan.DisplayName = *update.DisplayName
	}
	if update.Description != nil {
		plan.Description = *update.Description
	}
	if update.Price != nil {
		plan.Price = *update.Price
	}
	if update.MonthlyLimit != nil {
		plan.MonthlyLimit = *update.MonthlyLimit
	}
	if update.DailyLimit != nil {
		plan.DailyLimit = *update.DailyLimit
	}
	if update.Features != nil {
		plan.Features = *update.Features
	}
	return plan, nil
}

func (f *fakePlanRepo) Seed(ctx context.Context, plans []models.SubscriptionPlan) error {
	for i := range plans {
		if _, ok := f.plans[plans[i].Name]; !ok {
			if plans[i].ID == uuid.Nil {
				plans[i].ID = uuid.New()
			}
			f.plans[plans[i].Name] = &plans[i]
		}
	}
	return nil
}

// fakePaymentRepo appends payments in order.
type fakePaymentRepo struct {
	payments []models.ManualPayment
	err      error
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.ManualPayment) error {
	if f.err != nil {
		return f.err
	}
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentRepo) ListRecent(ctx context.Context, limit int) ([]models.ManualPayment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.ManualPayment
	for i := len(f.payments) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.payments[i])
	}
	return out, nil
}

// fakeCache is a map-backed CacheService.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	val, ok := c.values[key]
	if !ok {
		return "", apperrors.ErrCacheMiss
	}
	return val, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}
