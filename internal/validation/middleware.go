package validation

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

const localsKey = "validationErrors"

// Validate returns a middleware that runs the given rules against the
// request and stashes any failures for HandleInputErrors. The request
// always proceeds; only the gate stops it.
func Validate(rules ...*Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := map[string]interface{}{}
		if len(c.Body()) > 0 {
			// A malformed JSON body is treated as empty; the
			// required checks then report the missing fields.
			_ = json.Unmarshal(c.Body(), &body)
		}

		if failures := Run(rules, c.AllParams(), body); len(failures) > 0 {
			collected, _ := c.Locals(localsKey).([]FieldError)
			c.Locals(localsKey, append(collected, failures...))
		}
		return c.Next()
	}
}

// HandleInputErrors is the gate between the validation chain and the
// handler: it answers 400 with the full failure list when any declared
// rule failed, and passes the request through untouched otherwise.
func HandleInputErrors(c *fiber.Ctx) error {
	if failures, ok := c.Locals(localsKey).([]FieldError); ok && len(failures) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": failures,
		})
	}
	return c.Next()
}
