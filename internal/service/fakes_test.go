package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"liftai/coach-app/internal/domain"
	"liftai/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePlanRepo is an in-memory PlanRepository for service tests.
type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]*domain.Plan

	createErr error
	getErr    error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.Plan)}
}

func (f *fakePlanRepo) CreateActive(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	for _, p := range f.plans {
		if p.UserID == plan.UserID {
			p.IsActive = false
		}
	}
	stored := *plan
	stored.ID = primitive.NewObjectID()
	stored.IsActive = true
	f.plans[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	plan, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *plan
	return &cp, nil
}

func (f *fakePlanRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Plan
	for _, p := range f.plans {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePlanRepo) GetActiveByUserID(ctx context.Context, userID string) (*domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.plans {
		if p.UserID == userID && p.IsActive {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePlanRepo) GetAll(ctx context.Context) ([]domain.Plan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePlanRepo) ReplaceWorkoutPlan(ctx context.Context, id primitive.ObjectID, workout domain.WorkoutPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	plan.WorkoutPlan = workout
	return nil
}

func (f *fakePlanRepo) ReplaceSwapRequests(ctx context.Context, id primitive.ObjectID, kind domain.SwapKind, items []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	plan, ok := f.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	if kind == domain.SwapFood {
		plan.NewDietPlan = items
	} else {
		plan.NewWorkoutPlan = items
	}
	return nil
}

func (f *fakePlanRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.plans, id)
	return nil
}

func (f *fakePlanRepo) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for id, p := range f.plans {
		if p.UserID == userID {
			delete(f.plans, id)
			deleted++
		}
	}
	return deleted, nil
}

// seed inserts a plan directly, bypassing the active-plan bookkeeping.
func (f *fakePlanRepo) seed(plan domain.Plan) primitive.ObjectID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	f.plans[plan.ID] = &plan
	return plan.ID
}

func (f *fakePlanRepo) activeCount(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.plans {
		if p.UserID == userID && p.IsActive {
			n++
		}
	}
	return n
}

// fakeGenerator returns scripted responses in call order.
type fakeGenerator struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i >= len(f.responses) {
		return "", errors.New("no scripted response")
	}
	return f.responses[i], nil
}

// fakeArchive records saved transcripts.
type fakeArchive struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (f *fakeArchive) Save(ctx context.Context, objectKey string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, objectKey)
	f.bodies = append(f.bodies, body)
	return nil
}

// fakeUserRepo is an in-memory UserRepository keyed by external ID.
type fakeUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.users[user.ExternalID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	user, ok := f.users[externalID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) UpdateByExternalID(ctx context.Context, user *domain.User) error {
	existing, ok := f.users[user.ExternalID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.AvatarURL = user.AvatarURL
	return nil
}
