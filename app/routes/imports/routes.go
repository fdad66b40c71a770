package imports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/history"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/importer"
	"github.com/Layla-El-Amrani/SchoolPerfermances-sub000/app/notify"
)

// RegisterRoutes registers the import pipeline routes
func RegisterRoutes(app *fiber.App, session *importer.Session, store *history.Store, sink *notify.Sink) {
	app.Post("/api/imports/file", SelectFileHandler(session))
	app.Get("/api/imports/preview", PreviewHandler(session))
	app.Post("/api/imports/confirm", ConfirmUploadHandler(session))
	app.Get("/api/imports/progress", ProgressHandler(session))
	app.Post("/api/imports/clear", ClearHandler(session))

	app.Get("/api/imports/history", HistoryHandler(store))
	app.Delete("/api/imports/history", ClearHistoryHandler(store))

	app.Get("/api/imports/template", TemplateHandler())
	app.Get("/api/notifications", NotificationsHandler(sink))
}
