package httpapi

import (
	"errors"

	"github.com/dmitrijs2005/arondight/internal/common"
	"github.com/dmitrijs2005/arondight/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const (
	msgEmailExists    = "email already exists"
	msgNoSuchEmail    = "No user exists with that email"
	msgMismatch       = "password and email do not match"
	msgServerError    = "server error 500"
	msgUpdateFailed   = "Something went wrong with updating your account details"
	msgUserNotFound   = "user not found"
	msgUserDeleted    = "User deleted"
	msgAuthFailed     = "auth failed"
	msgInvalidBody    = "invalid request body"
	msgAuthLockedOpen = "welcome to the secret auth-locked route"
)

func msg(c *fiber.Ctx, status int, text string) error {
	return c.Status(status).JSON(fiber.Map{"msg": text})
}

func decodeBody(c *fiber.Ctx, v any) error {
	return c.App().Config().JSONDecoder(c.Body(), v)
}

func (s *HTTPServer) register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var in services.RegisterInput
	if err := decodeBody(c, &in); err != nil {
		return msg(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	token, err := s.accounts.Register(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateResource):
			return msg(c, fiber.StatusBadRequest, msgEmailExists)
		case common.IsValidationError(err):
			return msg(c, fiber.StatusBadRequest, err.Error())
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return msg(c, fiber.StatusInternalServerError, msgServerError)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (s *HTTPServer) login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var in services.LoginInput
	if err := decodeBody(c, &in); err != nil {
		return msg(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	token, err := s.accounts.Login(ctx, in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return msg(c, fiber.StatusBadRequest, msgNoSuchEmail)
		case errors.Is(err, common.ErrInvalidCredentials):
			return msg(c, fiber.StatusBadRequest, msgMismatch)
		case common.IsValidationError(err):
			return msg(c, fiber.StatusBadRequest, err.Error())
		}
		s.logger.Error(ctx, "login failed", "error", err)
		return msg(c, fiber.StatusInternalServerError, msgServerError)
	}

	return c.JSON(fiber.Map{"token": token})
}

func (s *HTTPServer) authLocked(c *fiber.Ctx) error {
	if claims, ok := IdentityFromContext(c.UserContext()); ok {
		s.logger.Debug(c.UserContext(), "auth-locked access", "account_id", claims.ID)
	}
	return msg(c, fiber.StatusOK, msgAuthLockedOpen)
}

func (s *HTTPServer) getUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	details, err := s.accounts.Get(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return msg(c, fiber.StatusNotFound, msgUserNotFound)
		}
		s.logger.Error(ctx, "get user failed", "error", err)
		return msg(c, fiber.StatusInternalServerError, msgServerError)
	}

	return c.JSON(details)
}

func (s *HTTPServer) updateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var in services.UpdateInput
	if err := decodeBody(c, &in); err != nil {
		return msg(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	token, err := s.accounts.Update(ctx, c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNotFound):
			return msg(c, fiber.StatusNotFound, msgUserNotFound)
		case errors.Is(err, common.ErrDuplicateResource):
			return msg(c, fiber.StatusBadRequest, msgEmailExists)
		case common.IsValidationError(err):
			return msg(c, fiber.StatusBadRequest, err.Error())
		}
		s.logger.Error(ctx, "update user failed", "error", err)
		return msg(c, fiber.StatusInternalServerError, msgUpdateFailed)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}

func (s *HTTPServer) deleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if err := s.accounts.Delete(ctx, c.Params("id")); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return msg(c, fiber.StatusNotFound, msgUserNotFound)
		}
		s.logger.Error(ctx, "delete user failed", "error", err)
		return msg(c, fiber.StatusInternalServerError, msgServerError)
	}

	return msg(c, fiber.StatusOK, msgUserDeleted)
}
