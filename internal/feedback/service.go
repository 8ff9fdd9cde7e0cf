package feedback

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, deviceID, userAgent string, cmd SubmitCommand) (*Feedback, error) {
	severity := cmd.Severity
	if severity == "" {
		severity = SeverityMedium
	}

	f := &Feedback{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		Type:      cmd.Type,
		Message:   strings.TrimSpace(cmd.Message),
		Severity:  severity,
		Feature:   cmd.Feature,
		PageURL:   cmd.PageURL,
		UserAgent: userAgent,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
