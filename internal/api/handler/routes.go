package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/sales-report-api/internal/api/handler/router"
	"github.com/vfg2006/sales-report-api/internal/usecases/attendance"
	"github.com/vfg2006/sales-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-report-api/internal/usecases/contacts"
	"github.com/vfg2006/sales-report-api/internal/usecases/inventory"
	"github.com/vfg2006/sales-report-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-report-api/pkg/middleware"
)

func Healthcheck(checks map[string]HealthCheck) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.Reporter, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/profiles",
			Method:      http.MethodGet,
			Handler:     ListProfiles(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:profile",
			Method:      http.MethodPost,
			Handler:     BuildReport(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/reports/:profile/export",
			Method:      http.MethodPost,
			Handler:     ExportReport(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Inventory(service inventory.InventoryService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/inventory",
			Method:      http.MethodGet,
			Handler:     ListInventory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/inventory/reorder",
			Method:      http.MethodGet,
			Handler:     ReorderInventory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/inventory/items/:sku",
			Method:      http.MethodGet,
			Handler:     GetInventoryItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/inventory/items/:sku",
			Method:      http.MethodPut,
			Handler:     PutInventoryItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/inventory/items/:sku",
			Method:      http.MethodDelete,
			Handler:     DeleteInventoryItem(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Contacts(service contacts.ContactsService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/contacts",
			Method:      http.MethodGet,
			Handler:     ListContacts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts",
			Method:      http.MethodPost,
			Handler:     SaveContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/:id",
			Method:      http.MethodGet,
			Handler:     GetContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/:id",
			Method:      http.MethodPut,
			Handler:     SaveContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/contacts/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteContact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Attendance(service attendance.AttendanceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/attendance",
			Method:      http.MethodGet,
			Handler:     ListAttendance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attendance/reset",
			Method:      http.MethodPost,
			Handler:     ResetAttendance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/attendance/entries",
			Method:      http.MethodPost,
			Handler:     SaveAttendanceEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attendance/entries/:id",
			Method:      http.MethodPut,
			Handler:     SaveAttendanceEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attendance/entries/:id/mark",
			Method:      http.MethodPost,
			Handler:     MarkAttendance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/attendance/entries/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteAttendanceEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Exports(collections map[string]Snapshotter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/exports/:collection",
			Method:      http.MethodGet,
			Handler:     ExportCollection(collections),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
