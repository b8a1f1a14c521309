// Package workers runs the midnight maintenance pass: expired-goal cleanup
// plus daily reminder delivery, the server-side version of the original
// "every day 00:00" scheduled function.
package workers

import (
	"context"
	"log"
	"time"

	"github.com/alaminShaheen/PrepTracker/internal/types/user"
	"github.com/alaminShaheen/PrepTracker/services"
)

// PushProvider abstracts FCM so the worker runs (and tests run) without
// firebase credentials.
type PushProvider interface {
	SendPush(ctx context.Context, tokens []user.DeviceToken, title, body string) error
}

type DailyWorker struct {
	goalService  *services.GoalService
	userService  *services.UserService
	emailService *services.EmailService
	push         PushProvider
	now          func() time.Time
}

func NewDailyWorker(goalService *services.GoalService, userService *services.UserService, emailService *services.EmailService) *DailyWorker {
	return &DailyWorker{
		goalService:  goalService,
		userService:  userService,
		emailService: emailService,
		now:          time.Now,
	}
}

// SetPushProvider injects the FCM sender. Without one the worker skips push
// reminders.
func (w *DailyWorker) SetPushProvider(p PushProvider) {
	w.push = p
}

// nextMidnight returns the duration until the next local midnight.
func nextMidnight(now time.Time) time.Duration {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

// Start launches the worker loop: first run at the next midnight, then every
// 24 hours, until ctx is cancelled.
func (w *DailyWorker) Start(ctx context.Context) {
	go func() {
		timer := time.NewTimer(nextMidnight(w.now()))
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
				w.runOnce(ctx)
				timer.Reset(24 * time.Hour)
			}
		}
	}()
}

// runOnce walks every user: cleans expired goals, then sends the email
// digest and push reminder to users with something due today. Per-user
// failures are logged and never abort the pass.
func (w *DailyWorker) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	users, err := w.userService.GetAllUsers(runCtx)
	if err != nil {
		log.Printf("daily worker: failed to list users: %v", err)
		return
	}

	for _, u := range users {
		removed, err := w.goalService.CleanExpiredGoals(runCtx, u.ID)
		if err != nil {
			log.Printf("daily worker: cleanup failed for user %s: %v", u.ID, err)
			continue
		}
		if removed > 0 {
			log.Printf("daily worker: removed %d expired goals for user %s", removed, u.ID)
		}

		daily, weekly, oneTime, err := w.goalService.EmailGoals(runCtx, u.ID)
		if err != nil {
			log.Printf("daily worker: failed to collect goals for user %s: %v", u.ID, err)
			continue
		}
		if len(daily)+len(weekly)+len(oneTime) == 0 {
			continue
		}

		if u.Subscribed {
			if err := w.emailService.SendDailyDigest(runCtx, u, daily, weekly, oneTime); err != nil {
				log.Printf("daily worker: digest failed for user %s: %v", u.ID, err)
			}
		}

		if w.push != nil {
			tokens, err := w.userService.GetDeviceTokens(runCtx, u.ID)
			if err != nil {
				log.Printf("daily worker: failed to fetch device tokens for user %s: %v", u.ID, err)
				continue
			}
			if err := w.push.SendPush(runCtx, tokens, "Your goals are waiting", "Check off today's goals in PrepTracker"); err != nil {
				log.Printf("daily worker: push failed for user %s: %v", u.ID, err)
			}
		}
	}
}
