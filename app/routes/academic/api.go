package academic

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	academicvalidator "github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/academic"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/remote"
)

// GetAcademicYearsHandler proxies the backend's list of academic years.
func GetAcademicYearsHandler(client *remote.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		years, err := client.FetchAcademicYears(c.UserContext())
		if err != nil {
			var network *remote.NetworkError
			if errors.As(err, &network) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "The statistics server is unreachable",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to retrieve academic years",
			})
		}
		return c.JSON(years)
	}
}

// RegisterAcademicYearHandler validates a new academic year locally, then
// forwards the registration to the backend.
func RegisterAcademicYearHandler(client *remote.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request struct {
			Year      string `json:"year"`
			IsCurrent bool   `json:"is_current"`
		}
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := academicvalidator.ValidateYear(request.Year); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := client.RegisterAcademicYear(c.UserContext(), request.Year, request.IsCurrent); err != nil {
			var network *remote.NetworkError
			if errors.As(err, &network) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "The statistics server is unreachable",
				})
			}
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"year":    request.Year,
		})
	}
}

// ValidateYearHandler checks a candidate academic year without registering
// it, for per-keystroke form feedback.
func ValidateYearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.Query("year")
		if err := academicvalidator.ValidateYear(year); err != nil {
			return c.JSON(fiber.Map{"valid": false, "error": err.Error()})
		}
		return c.JSON(fiber.Map{"valid": true})
	}
}
