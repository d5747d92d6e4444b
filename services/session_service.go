package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"mealguard/models"
	"mealguard/utils"

	"github.com/google/uuid"
)

// ViewState is the single value describing what the UI is showing. Loading
// and Result are only reachable through the capture flow.
type ViewState string

const (
	ViewHome        ViewState = "home"
	ViewLoading     ViewState = "loading"
	ViewResult      ViewState = "result"
	ViewHistory     ViewState = "history"
	ViewProfileEdit ViewState = "profile_edit"
)

// ErrCaptureBusy is returned while an analysis is already in flight; the
// second attempt is dropped, never queued.
var ErrCaptureBusy = errors.New("an analysis is already in progress")

// CaptureOutcome reports where a capture attempt landed. Redirect means the
// profile precondition failed and the UI was sent to profile entry; that is
// guidance, not an error.
type CaptureOutcome struct {
	CaptureID string
	Redirect  bool
	Entry     *models.FoodLog
}

// SessionService drives the single user session: the view state machine, the
// profile precondition on capture, the one-in-flight analysis rule, and the
// combined read feeding the daily recommendation.
type SessionService struct {
	mu       sync.Mutex
	state    ViewState
	inFlight bool
	last     *models.FoodLog

	profiles *ProfileService
	logs     *LogService
	advisor  Advisor
}

func NewSessionService(profiles *ProfileService, logs *LogService, advisor Advisor) *SessionService {
	return &SessionService{
		state:    ViewHome,
		profiles: profiles,
		logs:     logs,
		advisor:  advisor,
	}
}

func (s *SessionService) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastEntry returns the entry behind the current result view, if any.
func (s *SessionService) LastEntry() *models.FoodLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Navigate moves directly to Home, History or ProfileEdit. Loading and Result
// are only reachable through the capture flow.
func (s *SessionService) Navigate(view ViewState) error {
	switch view {
	case ViewHome, ViewHistory, ViewProfileEdit:
	default:
		return fmt.Errorf("cannot navigate to %q", view)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrCaptureBusy
	}
	s.state = view
	return nil
}

// Acknowledge dismisses the result view and returns Home.
func (s *SessionService) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == ViewResult {
		s.state = ViewHome
		s.last = nil
	}
}

// Capture runs the full analysis flow for one photographed meal: precondition
// check, advisory call, log append. On any advisory failure nothing is
// persisted and the view returns Home.
func (s *SessionService) Capture(ctx context.Context, imageDataURI string) (*CaptureOutcome, error) {
	profile, ok, err := s.profiles.Get()
	if err != nil {
		return nil, err
	}
	if !ok {
		// Guided redirect, not an error: age and condition must be set
		// before the first capture. The advisor is never consulted here.
		s.mu.Lock()
		s.state = ViewProfileEdit
		s.mu.Unlock()
		return &CaptureOutcome{Redirect: true}, nil
	}

	image, err := utils.ParseImageDataURI(imageDataURI)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrCaptureBusy
	}
	s.inFlight = true
	s.state = ViewLoading
	s.mu.Unlock()

	captureID := uuid.NewString()
	log.Printf("analysis %s: requesting verdict (age=%d condition=%s)", captureID, profile.Age, profile.Condition)

	verdict, err := s.advisor.AnalyzeMeal(ctx, image, profile.Age, profile.Condition)
	if err != nil {
		s.mu.Lock()
		s.state = ViewHome
		s.inFlight = false
		s.mu.Unlock()
		log.Printf("analysis %s failed: %v", captureID, err)
		return nil, fmt.Errorf("meal analysis failed: %w", err)
	}

	analysis := verdict.Analysis
	if verdict.Tips != "" {
		analysis = analysis + "\n\nTip: " + verdict.Tips
	}

	entry, err := s.logs.Append(imageDataURI, verdict.FoodName, analysis, verdict.IsSafe)
	if err != nil {
		s.mu.Lock()
		s.state = ViewHome
		s.inFlight = false
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.state = ViewResult
	s.last = entry
	s.inFlight = false
	s.mu.Unlock()

	log.Printf("analysis %s: %q safe=%v", captureID, verdict.FoodName, verdict.IsSafe)
	return &CaptureOutcome{CaptureID: captureID, Entry: entry}, nil
}

// Recommendation performs one combined read (profile, then the five most
// recent logs) and asks for the daily suggestion. It returns empty without
// calling the advisor until a profile and at least one meal exist.
func (s *SessionService) Recommendation(ctx context.Context) (string, error) {
	profile, ok, err := s.profiles.Get()
	if err != nil {
		return "", err
	}
	if !ok || profile.Age <= 0 {
		return "", nil
	}

	logs, err := s.logs.ListRecent(5)
	if err != nil {
		return "", err
	}
	if len(logs) == 0 {
		return "", nil
	}

	meals := make([]MealSummary, 0, len(logs))
	for _, l := range logs {
		meals = append(meals, MealSummary{FoodName: l.FoodName, IsSafe: l.IsSafe})
	}

	return s.advisor.DailyRecommendation(ctx, meals, profile.Age, profile.Condition)
}
