package controller

import (
	"net/url"

	"rental-marketplace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// queryValues copies the raw query string, keeping repeated keys.
func queryValues(ctx *fiber.Ctx) url.Values {
	params := url.Values{}
	ctx.Context().QueryArgs().VisitAll(func(k, v []byte) {
		params.Add(string(k), string(v))
	})
	return params
}

// callbackStatus is what providers see: only a bad signature is refused,
// everything else is acknowledged so they stop retrying.
func callbackStatus(err error) int {
	if err != nil && apperror.Is(err, apperror.KindInvalidSignature) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusOK
}
