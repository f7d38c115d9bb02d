package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's API so they can be collected
// into a single fx group and registered against the fiber app.
type Route interface {
	Setup(app *fiber.App)
}
