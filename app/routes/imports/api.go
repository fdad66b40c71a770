package imports

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/history"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/importer"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/models"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/notify"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/remote"
)

// SelectFileHandler accepts the operator's file and runs it through format
// detection, parsing, and validation. Parse and validation problems come
// back in the session snapshot, not as HTTP errors.
func SelectFileHandler(session *importer.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No file provided",
			})
		}

		f, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to open uploaded file",
			})
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read uploaded file",
			})
		}

		source := models.SourceFile{
			Name: fileHeader.Filename,
			Size: fileHeader.Size,
			Data: data,
		}
		if err := session.SelectFile(source); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(session.Snapshot())
	}
}

// PreviewHandler returns the current session snapshot. The preview rows are
// only present once the record set passed validation.
func PreviewHandler(session *importer.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(session.Snapshot())
	}
}

// ConfirmUploadHandler submits the validated file for the academic year in
// the request body.
func ConfirmUploadHandler(session *importer.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request struct {
			Year string `json:"year"`
		}
		if err := c.BodyParser(&request); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		if err := session.ConfirmUpload(c.UserContext(), request.Year); err != nil {
			return uploadError(c, err)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "File imported successfully",
		})
	}
}

// ProgressHandler reports the in-flight upload percentage.
func ProgressHandler(session *importer.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap := session.Snapshot()
		return c.JSON(fiber.Map{
			"state":    snap.State,
			"progress": snap.Progress,
		})
	}
}

// ClearHandler drops the current selection, preview, and progress.
func ClearHandler(session *importer.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session.Clear()
		return c.JSON(fiber.Map{"success": true})
	}
}

// HistoryHandler refreshes the import history from the backend, falling back
// to the durable cache when the backend is unreachable.
func HistoryHandler(store *history.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		attempts := store.Refresh(c.UserContext())
		return c.JSON(fiber.Map{
			"attempts": attempts,
			"stale":    store.Stale(),
		})
	}
}

// ClearHistoryHandler drops the local history list and its cache entry.
func ClearHistoryHandler(store *history.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.Clear(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to clear import history",
			})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// TemplateHandler streams the generated one-row example workbook.
func TemplateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		workbook, err := importer.BuildTemplateWorkbook()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to generate template",
			})
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+importer.TemplateFilename+`"`)
		return c.Send(workbook)
	}
}

// NotificationsHandler drains the pending status messages for the UI.
func NotificationsHandler(sink *notify.Sink) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notifications := sink.Drain()
		if notifications == nil {
			notifications = []models.Notification{}
		}
		return c.JSON(notifications)
	}
}

// uploadError maps pipeline and backend errors to HTTP responses. Session
// guard errors stay 400s; classified backend refusals keep their meaning,
// including the re-authentication redirect on an expired session.
func uploadError(c *fiber.Ctx, err error) error {
	var rejected *remote.UploadRejectedError
	if errors.As(err, &rejected) {
		status := fiber.StatusBadGateway
		body := fiber.Map{"error": rejected.Error()}
		switch rejected.Kind {
		case remote.RejectPayloadTooLarge:
			status = fiber.StatusRequestEntityTooLarge
		case remote.RejectUnsupportedMedia:
			status = fiber.StatusUnsupportedMediaType
		case remote.RejectMalformedPayload:
			status = fiber.StatusBadRequest
		case remote.RejectSessionExpired:
			status = fiber.StatusUnauthorized
			body["redirect"] = "/login"
		case remote.RejectServerFault:
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(body)
	}

	var network *remote.NetworkError
	if errors.As(err, &network) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "The statistics server is unreachable, please try again",
		})
	}

	if errors.Is(err, importer.ErrUploadInFlight) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
