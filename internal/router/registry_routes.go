package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/civil-registry/internal/authz"
	"github.com/iliyamo/civil-registry/internal/handler"
	"github.com/iliyamo/civil-registry/internal/middleware"
)

// geoNamespace holds the cached villes and arrondissements responses.
const geoNamespace = "geo"

// RegisterRegistry registers the protected /api resources. Every route
// names the operation it performs; middleware.Authorize checks it against
// the capability table before the handler runs.
func RegisterRegistry(api *echo.Group, d Deps) {
	g := api.Group("", middleware.JWTAuth(d.JWTSecret), middleware.LoadPrincipal(d.Auth))
	can := middleware.Authorize
	cached := middleware.NewRedisCache(d.Cache, d.Redis, geoNamespace)
	invalidate := middleware.InvalidateOnWrite(d.Cache, d.Redis, d.Logger, geoNamespace)

	dash := handler.NewDashboardHandler(d.Dashboard)
	g.GET("/dashboard", dash.Get, can(authz.DashboardRead))
	g.GET("/dashboard/stats", dash.Stats, can(authz.DashboardRead))

	users := handler.NewUserHandler(d.Users)
	g.GET("/users", users.List, can(authz.UserRead))
	g.POST("/users", users.Create, can(authz.UserWrite))
	g.GET("/users/:id", users.Get, can(authz.UserRead))
	g.PUT("/users/:id", users.Update, can(authz.UserWrite))
	g.DELETE("/users/:id", users.Delete, can(authz.UserWrite))
	g.POST("/users/:id/toggle-status", users.ToggleStatus, can(authz.UserWrite))

	geo := handler.NewGeographyHandler(d.Geography)
	g.GET("/villes", geo.ListVilles, can(authz.VilleRead), cached)
	g.POST("/villes", geo.CreateVille, can(authz.VilleWrite), invalidate)
	g.GET("/villes/:id", geo.GetVille, can(authz.VilleRead), cached)
	g.PUT("/villes/:id", geo.UpdateVille, can(authz.VilleWrite), invalidate)
	g.DELETE("/villes/:id", geo.DeleteVille, can(authz.VilleWrite), invalidate)

	g.GET("/arrondissements", geo.ListArrondissements, can(authz.ArrondissementRead), cached)
	g.POST("/arrondissements", geo.CreateArrondissement, can(authz.ArrondissementWrite), invalidate)
	g.GET("/arrondissements/:id", geo.GetArrondissement, can(authz.ArrondissementRead), cached)
	g.PUT("/arrondissements/:id", geo.UpdateArrondissement, can(authz.ArrondissementWrite), invalidate)
	g.DELETE("/arrondissements/:id", geo.DeleteArrondissement, can(authz.ArrondissementWrite), invalidate)

	// mairie lists are tenant scoped and therefore not cached, but mairie
	// writes change the nested arrondissement payloads.
	g.GET("/mairies", geo.ListMairies, can(authz.MairieRead))
	g.POST("/mairies", geo.CreateMairie, can(authz.MairieCreate), invalidate)
	g.GET("/mairies/:id", geo.GetMairie, can(authz.MairieRead))
	g.PUT("/mairies/:id", geo.UpdateMairie, can(authz.MairieUpdate), invalidate)
	g.DELETE("/mairies/:id", geo.DeleteMairie, can(authz.MairieDelete), invalidate)
	g.GET("/mairies/:id/stats", geo.MairieStats, can(authz.MairieStats))

	mariages := handler.NewMariageHandler(d.Mariages)
	g.GET("/mariages", mariages.List, can(authz.MariageRead))
	g.POST("/mariages", mariages.Create, can(authz.MariageCreate))
	g.GET("/mariages/:id", mariages.Get, can(authz.MariageRead))
	g.PUT("/mariages/:id", mariages.Update, can(authz.MariageUpdate))
	g.DELETE("/mariages/:id", mariages.Delete, can(authz.MariageDelete))
	g.POST("/mariages/:id/validate", mariages.Validate, can(authz.MariageValidate))

	actes := handler.NewActeHandler(d.Actes)
	g.GET("/actes", actes.List, can(authz.ActeRead))
	g.POST("/actes/generate", actes.Generate, can(authz.ActeGenerate))
	g.GET("/actes/:id", actes.Get, can(authz.ActeRead))
	g.POST("/actes/:id/validate", actes.Validate, can(authz.ActeValidate))
	g.POST("/actes/:id/print", actes.Print, can(authz.ActePrint))
	g.POST("/actes/:id/cancel", actes.Cancel, can(authz.ActeCancel))
}
