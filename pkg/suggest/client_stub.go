package suggest

import (
	"context"
	"time"
)

type StubClient struct {
	Suggestion *Suggestion
	Err        error

	LastText      string
	LastReference time.Time
}

func (s *StubClient) Parse(ctx context.Context, text string, reference time.Time) (*Suggestion, error) {
	s.LastText = text
	s.LastReference = reference
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Suggestion, nil
}
