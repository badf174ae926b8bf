package mapsession

import (
	"errors"

	"github.com/iamFear/mapty/internal/controller"
	"github.com/iamFear/mapty/internal/remote"
	"github.com/iamFear/mapty/internal/shared/geo"
	"github.com/iamFear/mapty/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req CreateRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}
		geolocation := req.Geolocation == nil || *req.Geolocation
		info, err := svc.Create(geolocation)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(info)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		info, err := svc.Get(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(info)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Close(c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/position", func(c *fiber.Ctx) error {
		var req PositionRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		var (
			snap controller.Snapshot
			err  error
		)
		switch {
		case req.Error != "":
			snap, err = svc.ReportLocationError(c.Params("id"), req.Error)
		case req.Lat != nil && req.Lng != nil:
			snap, err = svc.ReportPosition(c.Params("id"), geo.Coords{Lat: *req.Lat, Lng: *req.Lng})
		default:
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng, or error, required")
		}
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/:id/clicks", func(c *fiber.Ctx) error {
		var req ClickRequest
		if err := c.BodyParser(&req); err != nil || req.Lat == nil || req.Lng == nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		snap, err := svc.Click(c.Params("id"), geo.Coords{Lat: *req.Lat, Lng: *req.Lng})
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(snap)
	})

	r.Put("/:id/form/type", func(c *fiber.Ctx) error {
		var req TypeRequest
		if err := c.BodyParser(&req); err != nil || req.Type == "" {
			return fiber.NewError(fiber.StatusBadRequest, "type required")
		}
		groups, err := svc.ChangeType(c.Params("id"), req.Type)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(groups)
	})

	r.Delete("/:id/form", func(c *fiber.Ctx) error {
		if err := svc.Cancel(c.Params("id")); err != nil {
			return toHTTPError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/:id/workouts", func(c *fiber.Ctx) error {
		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		view, err := svc.Submit(c.Params("id"), req.FieldValues())
		var verr *workout.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  controller.NoticeInvalidInput,
				"field":  verr.Field,
				"reason": verr.Reason,
			})
		}
		if err != nil {
			return toHTTPError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	})

	r.Get("/:id/workouts", func(c *fiber.Ctx) error {
		views, err := svc.Workouts(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(views)
	})

	r.Get("/:id/workouts/:workoutID", func(c *fiber.Ctx) error {
		view, err := svc.Workout(c.Params("id"), c.Params("workoutID"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(view)
	})

	r.Post("/:id/workouts/:workoutID/activate", func(c *fiber.Ctx) error {
		view, err := svc.Activate(c.Params("id"), c.Params("workoutID"))
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(view)
	})

	r.Get("/:id/qr", func(c *fiber.Ctx) error {
		link, err := svc.ShareURL(c.Params("id"))
		if err != nil {
			return toHTTPError(err)
		}
		png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "image/png")
		return c.Send(png)
	})
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, workout.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, geo.ErrInvalidCoords), errors.Is(err, workout.ErrUnknownKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, controller.ErrMapNotReady),
		errors.Is(err, controller.ErrNoPendingClick),
		errors.Is(err, controller.ErrFormClosed),
		errors.Is(err, remote.ErrNotRequested),
		errors.Is(err, remote.ErrReported):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
