package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kozi/core/course"
	"github.com/trezcool/kozi/core/user"
)

type courseApi struct {
	svc    course.Service
	usrSvc user.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc course.Service, usrSvc user.Service) {
	api := courseApi{
		svc:    svc,
		usrSvc: usrSvc,
	}

	cg := g.Group("/course", jwt)
	cg.POST("/video-progress", api.reportProgress)
	cg.GET("/video-progress", api.progress)
	cg.GET("/content-availability", api.contentAvailability)
	cg.GET("/certificate-status", api.certificateStatus)
}

// Handlers

func (api *courseApi) reportProgress(ctx echo.Context) error {
	var data ProgressRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressRequest")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	report, err := api.svc.ReportProgress(ctx.Request().Context(), claims.Subject, data.Progress)
	if err != nil {
		return errors.Wrap(err, "reporting progress")
	}
	return ctx.JSON(http.StatusOK, report)
}

func (api *courseApi) progress(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	progress, err := api.svc.Progress(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting progress")
	}
	return ctx.JSON(http.StatusOK, ProgressRequest{Progress: progress})
}

func (api *courseApi) contentAvailability(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	availability, err := api.svc.ContentAvailability(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting content availability")
	}
	return ctx.JSON(http.StatusOK, availability)
}

func (api *courseApi) certificateStatus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	status, err := api.svc.CertificateStatus(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "getting certificate status")
	}
	return ctx.JSON(http.StatusOK, status)
}

// ProgressRequest doubles as the GET response body so both directions
// share the `videoProgress` key.
type ProgressRequest struct {
	Progress course.ProgressMap `json:"videoProgress"`
}
