package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-journey"
	"github.com/goliatone/go-journey/pkg/store"
	"github.com/google/uuid"
)

// RemoveResult is the payload removeAchievement returns regardless of whether
// the id existed.
type RemoveResult struct {
	Success   bool   `json:"success"`
	RemovedID string `json:"removedId"`
}

// Service wires the profile domain record into agent capabilities. Profile
// mutations emit no activity or events; the emission policy covers safe
// transitions only.
type Service struct {
	domain *store.Domain[Record]
	now    func() time.Time
	newID  func() string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides achievement id generation. Intended for tests.
func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService constructs the profile service over domain.
func NewService(domain *store.Domain[Record], opts ...ServiceOption) *Service {
	s := &Service{
		domain: domain,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Capabilities returns the profile capability set.
func (s *Service) Capabilities() []journey.Capability {
	return []journey.Capability{
		{
			Name:        "getProfile",
			Description: "Return the full profile record.",
			Handler:     s.get,
		},
		{
			Name:        "setTitle",
			Description: "Replace the profile title.",
			Args: []journey.ArgSpec{
				{Name: "title", Description: "New profile title.", Type: journey.ArgString, Required: true},
			},
			Handler: s.setTitle,
		},
		{
			Name:        "setDescription",
			Description: "Replace the profile description.",
			Args: []journey.ArgSpec{
				{Name: "description", Description: "New profile description.", Type: journey.ArgString, Required: true},
			},
			Handler: s.setDescription,
		},
		{
			Name:        "addAchievement",
			Description: "Append a new achievement dated now.",
			Args: []journey.ArgSpec{
				{
					Name:        "title",
					Description: "Achievement title.",
					Type:        journey.ArgString,
					Required:    true,
					Rule:        `trim(args.title) != ""`,
				},
				{Name: "description", Description: "Achievement description.", Type: journey.ArgString},
			},
			Handler: s.addAchievement,
		},
		{
			Name:        "removeAchievement",
			Description: "Remove the achievement with the given id. Removing an unknown id is a no-op.",
			Args: []journey.ArgSpec{
				{Name: "id", Description: "Achievement id to remove.", Type: journey.ArgString, Required: true},
			},
			Handler: s.removeAchievement,
		},
		{
			Name:        "listAchievements",
			Description: "List achievements sorted by date, newest first.",
			Handler:     s.listAchievements,
		},
	}
}

func (s *Service) get(ctx context.Context, _ journey.Invocation) (journey.Result, error) {
	return journey.Result{Data: s.domain.Current(ctx)}, nil
}

func (s *Service) setTitle(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	title := inv.String("title")
	next, err := s.domain.Update(ctx, func(r *Record) error {
		*r = SetTitle(*r, title)
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}
	return journey.Result{
		Text: fmt.Sprintf("Profile title set to %q.", title),
		Data: next,
	}, nil
}

func (s *Service) setDescription(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	description := inv.String("description")
	next, err := s.domain.Update(ctx, func(r *Record) error {
		*r = SetDescription(*r, description)
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}
	return journey.Result{
		Text: "Profile description updated.",
		Data: next,
	}, nil
}

func (s *Service) addAchievement(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	title := inv.String("title")
	description := inv.String("description")

	var added Achievement
	_, err := s.domain.Update(ctx, func(r *Record) error {
		next, entry := AddAchievement(*r, s.newID(), title, description, s.now())
		*r = next
		added = entry
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}
	return journey.Result{
		Text: fmt.Sprintf("Achievement %q added.", added.Title),
		Data: added,
	}, nil
}

func (s *Service) removeAchievement(ctx context.Context, inv journey.Invocation) (journey.Result, error) {
	id := inv.String("id")
	_, err := s.domain.Update(ctx, func(r *Record) error {
		next, _ := RemoveAchievement(*r, id)
		*r = next
		return nil
	})
	if err != nil {
		return journey.Result{}, err
	}
	return journey.Result{
		Text: fmt.Sprintf("Achievement %s removed.", id),
		Data: RemoveResult{Success: true, RemovedID: id},
	}, nil
}

func (s *Service) listAchievements(ctx context.Context, _ journey.Invocation) (journey.Result, error) {
	record := s.domain.Current(ctx)
	return journey.Result{Data: SortedByDateDesc(record.Achievements)}, nil
}
