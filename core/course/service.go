package course

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/kozi/core"
	"github.com/trezcool/kozi/core/user"
)

var (
	// errors
	ErrEmptyProgress = errors.New("video progress data is required")
)

type (
	// Repository persists per-user, per-video progress records.
	Repository interface {
		// UpsertProgress creates or overwrites the (userID, videoID)
		// record; percent is stored as-is, no clamping.
		UpsertProgress(ctx context.Context, userID, videoID string, percent float64) error
		// GetAllProgress returns the materialized progress map; videos
		// with no record are absent.
		GetAllProgress(ctx context.Context, userID string) (ProgressMap, error)
	}

	Service interface {
		ReportProgress(ctx context.Context, userID string, deltas ProgressMap) (ProgressReport, error)
		Progress(ctx context.Context, userID string) (ProgressMap, error)
		ContentAvailability(ctx context.Context, userID string) (Availability, error)
		CertificateStatus(ctx context.Context, userID string) (CertificateStatus, error)
	}

	service struct {
		conf    *core.Config
		catalog Catalog
		repo    Repository
		usrRepo user.Repository
		mailSvc core.EmailService
		nowFunc func() time.Time // mockable
	}
)

var _ Service = (*service)(nil)

func NewService(
	conf *core.Config,
	catalog Catalog,
	repo Repository,
	usrRepo user.Repository,
	mailSvc core.EmailService,
) Service {
	return &service{
		conf:    conf,
		catalog: catalog,
		repo:    repo,
		usrRepo: usrRepo,
		mailSvc: mailSvc,
		nowFunc: time.Now,
	}
}

// ReportProgress applies raw progress deltas and recomputes the user's
// completion state. Deltas are applied per-key, last write wins; a lower
// percent than the stored one is accepted as-is. The batch is not atomic:
// it aborts on the first failing entry, already-applied entries stay
// committed. Eligibility is always derived from a fresh re-read of the
// whole progress map, never from the deltas just written.
func (svc *service) ReportProgress(ctx context.Context, userID string, deltas ProgressMap) (ProgressReport, error) {
	if len(deltas) == 0 {
		return ProgressReport{}, core.NewValidationError(
			ErrEmptyProgress,
			core.FieldError{Field: "videoProgress", Error: ErrEmptyProgress.Error()},
		)
	}

	for videoID, pct := range deltas {
		if err := svc.repo.UpsertProgress(ctx, userID, videoID, pct); err != nil {
			return ProgressReport{}, errors.Wrapf(err, "upserting progress for video %q", videoID)
		}
	}

	progress, err := svc.repo.GetAllProgress(ctx, userID)
	if err != nil {
		return ProgressReport{}, errors.Wrap(err, "reading progress back")
	}
	summary := Aggregate(svc.catalog, progress, svc.conf.Course.CompletionThreshold)

	usr, err := svc.usrRepo.GetUser(ctx, user.GetFilter{ID: userID})
	if err != nil {
		return ProgressReport{}, errors.Wrap(err, "finding user")
	}

	eligible := usr.CertificateEligible
	if summary.AllCompleted && !eligible {
		if err := svc.usrRepo.MarkCertificateEligible(ctx, userID, svc.nowFunc().UTC()); err != nil {
			return ProgressReport{}, errors.Wrap(err, "marking certificate eligibility")
		}
		eligible = true
		svc.sendCertificateReadyMail(usr)
	}

	return ProgressReport{Progress: progress, CertificateEligible: eligible}, nil
}

func (svc *service) Progress(ctx context.Context, userID string) (ProgressMap, error) {
	progress, err := svc.repo.GetAllProgress(ctx, userID)
	return progress, errors.Wrap(err, "getting progress")
}

func (svc *service) ContentAvailability(ctx context.Context, userID string) (Availability, error) {
	usr, err := svc.usrRepo.GetUser(ctx, user.GetFilter{ID: userID})
	if err != nil {
		return Availability{}, errors.Wrap(err, "finding user")
	}
	return EvaluateUnlock(usr.CreatedAt, svc.nowFunc(), svc.conf.Course.UnlockDays), nil
}

func (svc *service) CertificateStatus(ctx context.Context, userID string) (CertificateStatus, error) {
	usr, err := svc.usrRepo.GetUser(ctx, user.GetFilter{ID: userID})
	if err != nil {
		return CertificateStatus{}, errors.Wrap(err, "finding user")
	}
	return CertificateStatus{Eligible: usr.CertificateEligible, CompletedAt: usr.CourseCompletedAt}, nil
}

func (svc *service) sendCertificateReadyMail(usr user.User) {
	body := fmt.Sprintf(
		"Congratulations %s,\n\nYou completed every video of the course; "+
			"your certificate is ready.\n\nGet it here: %s/certificado",
		usr.Name, svc.conf.FrontendBaseURL,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Your certificate is ready!",
		BodyStr: body,
	})
}
