package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/talentdesk/internal/domain/locale"
	"github.com/okian/talentdesk/internal/domain/model"
	"github.com/okian/talentdesk/pkg/logger"
)

type message struct{ subject, body string }

// templates are keyed by locale code then kind. Bodies take the candidate's
// first name and a detail string.
var templates = map[string]map[model.NotificationKind]message{
	"en": {
		model.NotifyRejection: {
			"Update on your application",
			"Dear %s, thank you for your interest. We will not be moving forward at this time. %s",
		},
		model.NotifyOffer: {
			"Your offer letter",
			"Dear %s, we are delighted to extend you an offer. %s",
		},
		model.NotifyInterviewInvite: {
			"Interview invitation",
			"Dear %s, we would like to invite you to an interview. %s",
		},
		model.NotifyApplicationReceived: {
			"We received your application",
			"Dear %s, thank you for applying. %s",
		},
	},
	"ar": {
		model.NotifyRejection: {
			"تحديث بخصوص طلبك",
			"عزيزي %s، شكراً لاهتمامك. لن نتمكن من المضي قدماً في الوقت الحالي. %s",
		},
		model.NotifyOffer: {
			"عرض العمل الخاص بك",
			"عزيزي %s، يسعدنا أن نقدم لك عرض عمل. %s",
		},
		model.NotifyInterviewInvite: {
			"دعوة لمقابلة",
			"عزيزي %s، نود دعوتك لإجراء مقابلة. %s",
		},
		model.NotifyApplicationReceived: {
			"تم استلام طلبك",
			"عزيزي %s، شكراً لتقديمك. %s",
		},
	},
}

// notify composes a message in the request locale and queues it. A full
// queue drops the message; the triggering operation still succeeds.
func (s *Service) notify(ctx context.Context, kind model.NotificationKind, c model.Candidate, detail string) bool {
	loc := locale.FromContext(ctx)
	t, ok := templates[loc.Code][kind]
	if !ok {
		t = templates[locale.English.Code][kind]
	}
	n := model.Notification{
		ID:          uuid.NewString(),
		Kind:        kind,
		CandidateID: c.ID,
		To:          c.Email,
		Subject:     t.subject,
		Body:        fmt.Sprintf(t.body, c.FirstName, detail),
		Locale:      loc.Code,
		CreatedAt:   s.now(),
	}
	if !s.notifyQ.Enqueue(ctx, n) {
		reason := "queue_full"
		if s.notifyQ.IsClosed() {
			reason = "queue_closed"
		}
		s.logger.Warn(ctx, "notification dropped",
			logger.String("kind", string(kind)),
			logger.String("candidate", c.ID),
			logger.String("reason", reason),
		)
		return false
	}
	s.logger.Debug(ctx, "notification queued",
		logger.String("notification", n.ID),
		logger.String("kind", string(kind)),
		logger.String("candidate", c.ID),
	)
	return true
}

func (s *Service) record(ctx context.Context, candidateID string, kind model.ActivityKind, description string) {
	s.store.AddActivity(ctx, model.ActivityItem{
		ID:          uuid.NewString(),
		CandidateID: candidateID,
		Kind:        kind,
		Description: description,
		Actor:       s.actor,
		At:          s.now(),
	})
}
