package academic

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/remote"
)

// RegisterRoutes registers the academic year routes
func RegisterRoutes(app *fiber.App, client *remote.Client) {
	app.Get("/api/academic-years", GetAcademicYearsHandler(client))
	app.Post("/api/academic-years", RegisterAcademicYearHandler(client))
	app.Get("/api/academic-years/validate", ValidateYearHandler())
}
