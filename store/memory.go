package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Yashgithub77/lifeeloopp/models"
)

// MemoryStore keeps everything in process memory. Used when the server
// runs with MONGO_URI=memory and as the store double in tests.
type MemoryStore struct {
	mu       sync.RWMutex
	patterns map[string][]models.BehaviorPattern // userID -> history
	insights map[string][]models.DailyInsight
	actions  map[string][]models.AgentAction
	tasks    map[string][]models.Task
	goals    map[string][]models.Goal
	fitness  map[string][]models.FitnessData
	users    map[string]models.User // userID -> user
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		patterns: make(map[string][]models.BehaviorPattern),
		insights: make(map[string][]models.DailyInsight),
		actions:  make(map[string][]models.AgentAction),
		tasks:    make(map[string][]models.Task),
		goals:    make(map[string][]models.Goal),
		fitness:  make(map[string][]models.FitnessData),
		users:    make(map[string]models.User),
	}
}

func (s *MemoryStore) AppendBehaviorPattern(_ context.Context, p models.BehaviorPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patterns[p.UserID] = append(s.patterns[p.UserID], p)
	return nil
}

func (s *MemoryStore) AppendDailyInsight(_ context.Context, in models.DailyInsight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insights[in.UserID] = append(s.insights[in.UserID], in)
	return nil
}

func (s *MemoryStore) AppendAgentAction(_ context.Context, a models.AgentAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions[a.UserID] = append(s.actions[a.UserID], a)
	return nil
}

func (s *MemoryStore) GetBehaviorPatterns(_ context.Context, userID string, limit int64) ([]models.BehaviorPattern, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.patterns[userID]
	out := make([]models.BehaviorPattern, 0, limit)
	for i := len(all) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemoryStore) GetDailyInsights(_ context.Context, userID string, limit int64) ([]models.DailyInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.insights[userID]
	out := make([]models.DailyInsight, 0, limit)
	for i := len(all) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemoryStore) GetAgentActions(_ context.Context, userID string, limit int64) ([]models.AgentAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.actions[userID]
	out := make([]models.AgentAction, 0, limit)
	for i := len(all) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (s *MemoryStore) GetTasks(_ context.Context, userID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Task, len(s.tasks[userID]))
	copy(out, s.tasks[userID])
	return out, nil
}

func (s *MemoryStore) GetTask(_ context.Context, userID, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks[userID] {
		if t.ID == taskID {
			cp := t
			return &cp, nil
		}
	}
	return nil, ErrTaskNotFound
}

func (s *MemoryStore) AddTask(_ context.Context, t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.UserID] = append(s.tasks[t.UserID], t)
	return nil
}

func (s *MemoryStore) UpdateTask(_ context.Context, t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.tasks[t.UserID]
	for i := range list {
		if list[i].ID == t.ID {
			list[i] = t
			return nil
		}
	}
	return ErrTaskNotFound
}

func (s *MemoryStore) GetGoals(_ context.Context, userID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Goal, len(s.goals[userID]))
	copy(out, s.goals[userID])
	return out, nil
}

func (s *MemoryStore) AddGoal(_ context.Context, g models.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.UserID] = append(s.goals[g.UserID], g)
	return nil
}

func (s *MemoryStore) UpdateGoal(_ context.Context, userID, goalID string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.goals[userID]
	for i := range list {
		if list[i].ID != goalID {
			continue
		}
		for k, v := range fields {
			switch k {
			case "currentValue":
				if n, ok := toInt(v); ok {
					list[i].CurrentValue = n
				}
			case "targetValue":
				if n, ok := toInt(v); ok {
					list[i].TargetValue = n
				}
			case "title":
				if sv, ok := v.(string); ok {
					list[i].Title = sv
				}
			case "description":
				if sv, ok := v.(string); ok {
					list[i].Description = sv
				}
			case "category":
				if sv, ok := v.(string); ok {
					list[i].Category = sv
				}
			}
		}
		return nil
	}
	return ErrGoalNotFound
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func (s *MemoryStore) AppendFitnessData(_ context.Context, d models.FitnessData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.fitness[d.UserID] {
		if existing.Date == d.Date {
			// A day's snapshot is immutable once recorded.
			return nil
		}
	}
	s.fitness[d.UserID] = append(s.fitness[d.UserID], d)
	sort.Slice(s.fitness[d.UserID], func(i, j int) bool {
		return s.fitness[d.UserID][i].Date < s.fitness[d.UserID][j].Date
	})
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, userID string, days int64) ([]models.FitnessData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.fitness[userID]
	start := 0
	if int64(len(all)) > days {
		start = len(all) - int(days)
	}
	out := make([]models.FitnessData, len(all)-start)
	copy(out, all[start:])
	return out, nil
}

func (s *MemoryStore) SaveUser(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.User_id] = u
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := u
	return &cp, nil
}

func (s *MemoryStore) UpdateUserTokens(_ context.Context, userID, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Token = &token
	u.Refresh_token = &refreshToken
	s.users[userID] = u
	return nil
}

func (s *MemoryStore) CountUsersByEmail(_ context.Context, email string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, u := range s.users {
		if u.Email != nil && strings.EqualFold(*u.Email, email) {
			n++
		}
	}
	return n, nil
}
