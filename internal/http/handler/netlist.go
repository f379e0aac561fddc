package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"netlister/internal/netlist"
	"netlister/internal/service"
)

const (
	msgNotFound     = "Netlist not found"
	msgNameRequired = "Netlist name is required"
)

// CreateNetlist stores a submitted netlist.
//
// @Summary  Create a netlist
// @Tags     netlists
// @Accept   json
// @Produce  json
// @Param    netlist  body      netlist.Payload  true  "Netlist"
// @Success  201      {object}  model.Netlist
// @Failure  400      {object}  errorPayload
// @Failure  415      {object}  errorPayload
// @Router   /api/netlists [post]
func CreateNetlist(svc service.NetlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.Create(c.UserContext(), c.Body())
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidNetlist):
				return writeError(c, fiber.StatusBadRequest, "INVALID_NETLIST", netlist.Message(err))
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", msgNameRequired)
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// ListNetlists returns a page of netlists, newest first.
//
// @Summary  List netlists
// @Tags     netlists
// @Produce  json
// @Param    limit   query     int  false  "Page size"  default(10)
// @Param    offset  query     int  false  "Offset"     default(0)
// @Success  200     {object}  service.NetlistListResult
// @Failure  400     {object}  errorPayload
// @Router   /api/netlists [get]
func ListNetlists(svc service.NetlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetNetlist returns one netlist.
//
// @Summary  Get a netlist
// @Tags     netlists
// @Produce  json
// @Param    id   path      string  true  "Netlist ID"
// @Success  200  {object}  model.Netlist
// @Failure  400  {object}  errorPayload
// @Failure  404  {object}  errorPayload
// @Router   /api/netlists/{id} [get]
func GetNetlist(svc service.NetlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		n, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(n)
	}
}

// GetNetlistRaw streams the document exactly as it was submitted.
//
// @Summary  Download the submitted document
// @Tags     netlists
// @Produce  json
// @Param    id   path  string  true  "Netlist ID"
// @Success  200
// @Failure  404  {object}  errorPayload
// @Router   /api/netlists/{id}/raw [get]
func GetNetlistRaw(svc service.NetlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, err := svc.Raw(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		c.Type("json")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+id+`.json"`)
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc)
	}
}

// GetNetlistDownloadURL returns a pre-signed link to the submitted document.
//
// @Summary  Pre-signed download link
// @Tags     netlists
// @Produce  json
// @Param    id   path      string  true  "Netlist ID"
// @Success  200  {object}  map[string]string
// @Failure  404  {object}  errorPayload
// @Router   /api/netlists/{id}/download [get]
func GetNetlistDownloadURL(svc service.NetlistService, expiry time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		u, err := svc.RawURL(c.UserContext(), id, expiry)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u, "expires_in": int(expiry.Seconds())})
	}
}

// DeleteNetlist removes a netlist and its archived document.
//
// @Summary  Delete a netlist
// @Tags     netlists
// @Param    id   path  string  true  "Netlist ID"
// @Success  204
// @Failure  404  {object}  errorPayload
// @Router   /api/netlists/{id} [delete]
func DeleteNetlist(svc service.NetlistService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if !validID(id) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func serviceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", msgNotFound)
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
