package service

import (
	"testing"
	"time"

	"brandloop/internal/domain"
	"brandloop/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSubStatusForSchedule(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reg := base.Add(48 * time.Hour)
	start := base.Add(96 * time.Hour)
	submission := base.Add(168 * time.Hour)
	cam := &models.Campaign{
		Status:               domain.CampaignActive,
		RegistrationDeadline: &reg,
		StartDate:            &start,
		SubmissionDeadline:   &submission,
	}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before registration deadline", base, domain.SubStatusRegistrationOpen},
		{"after registration closes", reg.Add(time.Hour), domain.SubStatusStudentSelection},
		{"after start date", start.Add(time.Hour), domain.SubStatusContentSubmission},
		{"after submission deadline", submission.Add(time.Hour), domain.SubStatusPosting},
		{"long after everything", submission.Add(1000 * time.Hour), domain.SubStatusPosting},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SubStatusForSchedule(cam, tc.now))
		})
	}
}

func TestSubStatusForScheduleNilMilestones(t *testing.T) {
	// A campaign with no milestones set stays in registration.
	cam := &models.Campaign{Status: domain.CampaignActive}
	got := SubStatusForSchedule(cam, time.Now())
	assert.Equal(t, domain.SubStatusRegistrationOpen, got)

	// A missing start date stops progression at selection.
	reg := time.Now().Add(-time.Hour)
	cam = &models.Campaign{Status: domain.CampaignActive, RegistrationDeadline: &reg}
	assert.Equal(t, domain.SubStatusStudentSelection, SubStatusForSchedule(cam, time.Now()))
}

func TestSubStatusEvaluationIsIdempotent(t *testing.T) {
	reg := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	cam := &models.Campaign{
		Status:               domain.CampaignActive,
		SubStatus:            domain.SubStatusStudentSelection,
		RegistrationDeadline: &reg,
	}
	now := reg.Add(time.Hour)
	first := domain.LaterSubStatus(cam.SubStatus, SubStatusForSchedule(cam, now))
	second := domain.LaterSubStatus(first, SubStatusForSchedule(cam, now))
	assert.Equal(t, first, second)

	// Revision is operator-driven and must not be reverted by the calendar.
	cam.SubStatus = domain.SubStatusContentRevision
	assert.Equal(t, domain.SubStatusContentRevision,
		domain.LaterSubStatus(cam.SubStatus, SubStatusForSchedule(cam, now)))
}
