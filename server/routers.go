package logiproserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Roles restricts the route to callers carrying one of these roles.
	// Empty means unrestricted.
	Roles []string
}

// ApiHandleFunctions groups the per-context API handlers wired into the router.
type ApiHandleFunctions struct {
	JobsAPI      JobsAPI
	ShipmentsAPI ShipmentsAPI
	FleetAPI     FleetAPI
	InvoicesAPI  InvoicesAPI
	QuotesAPI    QuotesAPI
	UsersAPI     UsersAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if len(route.Roles) > 0 {
			handlers = []gin.HandlerFunc{requireRole(route.Roles...), route.HandlerFunc}
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handlers...)
		case http.MethodPost:
			router.POST(route.Pattern, handlers...)
		case http.MethodPut:
			router.PUT(route.Pattern, handlers...)
		case http.MethodPatch:
			router.PATCH(route.Pattern, handlers...)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handlers...)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "CreateJob",
			Method:      http.MethodPost,
			Pattern:     "/v1/jobs",
			HandlerFunc: handleFunctions.JobsAPI.CreateJob,
			Roles:       backOffice,
		},
		{
			Name:        "ListJobs",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs",
			HandlerFunc: handleFunctions.JobsAPI.ListJobs,
		},
		{
			Name:        "GetJob",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:jobId",
			HandlerFunc: handleFunctions.JobsAPI.GetJob,
		},
		{
			Name:        "DeleteJob",
			Method:      http.MethodDelete,
			Pattern:     "/v1/jobs/:jobId",
			HandlerFunc: handleFunctions.JobsAPI.DeleteJob,
			Roles:       backOffice,
		},
		{
			Name:        "GetJobStatus",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:jobId/status",
			HandlerFunc: handleFunctions.JobsAPI.GetJobStatus,
		},
		{
			Name:        "GetJobTimeline",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:jobId/timeline",
			HandlerFunc: handleFunctions.JobsAPI.GetJobTimeline,
		},
		{
			Name:        "ReportProgress",
			Method:      http.MethodPost,
			Pattern:     "/v1/jobs/:jobId/progress",
			HandlerFunc: handleFunctions.JobsAPI.ReportProgress,
			Roles:       driverFacing,
		},
		{
			Name:        "UpdateJobContacts",
			Method:      http.MethodPatch,
			Pattern:     "/v1/jobs/:jobId/contacts",
			HandlerFunc: handleFunctions.JobsAPI.UpdateJobContacts,
			Roles:       backOffice,
		},
		{
			Name:        "GetShipmentByJob",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:jobId/shipment",
			HandlerFunc: handleFunctions.ShipmentsAPI.GetShipmentByJob,
		},
		{
			Name:        "GetInvoiceByJob",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:jobId/invoice",
			HandlerFunc: handleFunctions.InvoicesAPI.GetInvoiceByJob,
		},
		{
			Name:        "ListShipments",
			Method:      http.MethodGet,
			Pattern:     "/v1/shipments",
			HandlerFunc: handleFunctions.ShipmentsAPI.ListShipments,
		},
		{
			Name:        "GetShipment",
			Method:      http.MethodGet,
			Pattern:     "/v1/shipments/:shipmentId",
			HandlerFunc: handleFunctions.ShipmentsAPI.GetShipment,
		},
		{
			Name:        "UpdateAssignment",
			Method:      http.MethodPatch,
			Pattern:     "/v1/shipments/:shipmentId/assignment",
			HandlerFunc: handleFunctions.ShipmentsAPI.UpdateAssignment,
			Roles:       backOffice,
		},
		{
			Name:        "AttachProof",
			Method:      http.MethodPost,
			Pattern:     "/v1/shipments/:shipmentId/proof",
			HandlerFunc: handleFunctions.ShipmentsAPI.AttachProof,
			Roles:       driverFacing,
		},
		{
			Name:        "CreateDriver",
			Method:      http.MethodPost,
			Pattern:     "/v1/drivers",
			HandlerFunc: handleFunctions.FleetAPI.CreateDriver,
			Roles:       backOffice,
		},
		{
			Name:        "ListDrivers",
			Method:      http.MethodGet,
			Pattern:     "/v1/drivers",
			HandlerFunc: handleFunctions.FleetAPI.ListDrivers,
		},
		{
			Name:        "GetDriver",
			Method:      http.MethodGet,
			Pattern:     "/v1/drivers/:driverId",
			HandlerFunc: handleFunctions.FleetAPI.GetDriver,
		},
		{
			Name:        "DeleteDriver",
			Method:      http.MethodDelete,
			Pattern:     "/v1/drivers/:driverId",
			HandlerFunc: handleFunctions.FleetAPI.DeleteDriver,
			Roles:       backOffice,
		},
		{
			Name:        "CreateVehicle",
			Method:      http.MethodPost,
			Pattern:     "/v1/vehicles",
			HandlerFunc: handleFunctions.FleetAPI.CreateVehicle,
			Roles:       backOffice,
		},
		{
			Name:        "ListVehicles",
			Method:      http.MethodGet,
			Pattern:     "/v1/vehicles",
			HandlerFunc: handleFunctions.FleetAPI.ListVehicles,
		},
		{
			Name:        "GetVehicle",
			Method:      http.MethodGet,
			Pattern:     "/v1/vehicles/:vehicleId",
			HandlerFunc: handleFunctions.FleetAPI.GetVehicle,
		},
		{
			Name:        "UpdateVehicleStatus",
			Method:      http.MethodPatch,
			Pattern:     "/v1/vehicles/:vehicleId/status",
			HandlerFunc: handleFunctions.FleetAPI.UpdateVehicleStatus,
			Roles:       backOffice,
		},
		{
			Name:        "DeleteVehicle",
			Method:      http.MethodDelete,
			Pattern:     "/v1/vehicles/:vehicleId",
			HandlerFunc: handleFunctions.FleetAPI.DeleteVehicle,
			Roles:       backOffice,
		},
		{
			Name:        "ListInvoices",
			Method:      http.MethodGet,
			Pattern:     "/v1/invoices",
			HandlerFunc: handleFunctions.InvoicesAPI.ListInvoices,
		},
		{
			Name:        "GetInvoice",
			Method:      http.MethodGet,
			Pattern:     "/v1/invoices/:invoiceId",
			HandlerFunc: handleFunctions.InvoicesAPI.GetInvoice,
		},
		{
			Name:        "SendInvoice",
			Method:      http.MethodPost,
			Pattern:     "/v1/invoices/:invoiceId/send",
			HandlerFunc: handleFunctions.InvoicesAPI.SendInvoice,
			Roles:       backOffice,
		},
		{
			Name:        "RecordPayment",
			Method:      http.MethodPost,
			Pattern:     "/v1/invoices/:invoiceId/payments",
			HandlerFunc: handleFunctions.InvoicesAPI.RecordPayment,
			Roles:       backOffice,
		},
		{
			Name:        "VoidInvoice",
			Method:      http.MethodPost,
			Pattern:     "/v1/invoices/:invoiceId/void",
			HandlerFunc: handleFunctions.InvoicesAPI.VoidInvoice,
			Roles:       backOffice,
		},
		{
			Name:        "CalculateQuote",
			Method:      http.MethodPost,
			Pattern:     "/v1/quotes/calculate",
			HandlerFunc: handleFunctions.QuotesAPI.CalculateQuote,
		},
		{
			Name:        "GetQuoteRateConfig",
			Method:      http.MethodGet,
			Pattern:     "/v1/quotes/config",
			HandlerFunc: handleFunctions.QuotesAPI.GetRateConfig,
			Roles:       adminOnly,
		},
		{
			Name:        "UpdateQuoteRateConfig",
			Method:      http.MethodPut,
			Pattern:     "/v1/quotes/config",
			HandlerFunc: handleFunctions.QuotesAPI.UpdateRateConfig,
			Roles:       adminOnly,
		},
		{
			Name:        "CreateUser",
			Method:      http.MethodPost,
			Pattern:     "/v1/users",
			HandlerFunc: handleFunctions.UsersAPI.CreateUser,
			Roles:       backOffice,
		},
		{
			Name:        "ListUsers",
			Method:      http.MethodGet,
			Pattern:     "/v1/users",
			HandlerFunc: handleFunctions.UsersAPI.ListUsers,
		},
		{
			Name:        "GetUser",
			Method:      http.MethodGet,
			Pattern:     "/v1/users/:userId",
			HandlerFunc: handleFunctions.UsersAPI.GetUser,
		},
		{
			Name:        "SetUserActive",
			Method:      http.MethodPatch,
			Pattern:     "/v1/users/:userId/active",
			HandlerFunc: handleFunctions.UsersAPI.SetUserActive,
			Roles:       backOffice,
		},
		{
			Name:        "DeleteUser",
			Method:      http.MethodDelete,
			Pattern:     "/v1/users/:userId",
			HandlerFunc: handleFunctions.UsersAPI.DeleteUser,
			Roles:       backOffice,
		},
	}
}
