package course

import (
	"time"

	"github.com/trezcool/kozi/core"
	"github.com/trezcool/kozi/core/user"
)

type serviceMock struct {
	service
}

// NewServiceMock returns a Service with a fixed clock so unlock-window and
// eligibility-timestamp assertions are deterministic.
func NewServiceMock(
	conf *core.Config,
	catalog Catalog,
	repo Repository,
	usrRepo user.Repository,
	mailSvc core.EmailService,
	now time.Time,
) Service {
	return &serviceMock{
		service: service{
			conf:    conf,
			catalog: catalog,
			repo:    repo,
			usrRepo: usrRepo,
			mailSvc: mailSvc,
			nowFunc: func() time.Time { return now },
		},
	}
}
