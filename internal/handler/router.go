package handler

import (
	"github.com/gin-gonic/gin"

	"roterize/internal/domain/repository"
	"roterize/internal/middleware"
)

// Handlers はルーティングに登録するハンドラーの一覧
type Handlers struct {
	Session   *SessionHandler
	Itinerary *ItineraryHandler
	Tip       *TipHandler
	Profile   *ProfileHandler
	Places    *PlacesHandler
	Catalog   *CatalogHandler
	Health    *HealthHandler
}

// RegisterRoutes はAPIのルーティングを設定する
func RegisterRoutes(r *gin.Engine, h *Handlers, auth repository.AuthProvider, observer middleware.UserObserver) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	api.POST("/auth/signup", h.Profile.SignUp)
	api.POST("/auth/login", h.Profile.SignIn)
	api.GET("/tips", h.Tip.ListTips)
	api.GET("/tips/categories", h.Tip.ListCategories)
	api.GET("/itineraries/public", h.Itinerary.ListPublicItineraries)
	api.GET("/catalog/places", h.Catalog.ListPlaces)
	api.GET("/catalog/categories", h.Catalog.ListCategories)

	authed := api.Group("")
	authed.Use(middleware.RequireAuth(auth, observer))
	{
		authed.GET("/places/autocomplete", h.Places.Autocomplete)

		sessions := authed.Group("/sessions")
		sessions.POST("", h.Session.CreateSession)
		sessions.GET("/:id", h.Session.GetSession)
		sessions.POST("/:id/places", h.Session.AddPlace)
		sessions.DELETE("/:id/places/:index", h.Session.RemovePlace)
		sessions.PUT("/:id/travel-mode", h.Session.SetTravelMode)
		sessions.PUT("/:id/view", h.Session.SetView)
		sessions.PUT("/:id/input", h.Session.Input)
		sessions.GET("/:id/suggestions", h.Session.GetSuggestions)
		sessions.POST("/:id/suggestions/select", h.Session.SelectSuggestion)
		sessions.POST("/:id/route", h.Session.GenerateRoute)
		sessions.POST("/:id/save", h.Session.SaveItinerary)
		sessions.POST("/:id/load", h.Session.LoadItinerary)

		itineraries := authed.Group("/itineraries")
		itineraries.GET("", h.Itinerary.ListItineraries)
		itineraries.GET("/:id", h.Itinerary.GetItinerary)
		itineraries.DELETE("/:id", h.Itinerary.DeleteItinerary)
		itineraries.PUT("/:id/visibility", h.Itinerary.SetVisibility)

		authed.POST("/tips", h.Tip.CreateTip)
		authed.POST("/catalog/places", h.Catalog.CreatePlace)

		authed.GET("/me", h.Profile.GetMe)
		authed.PUT("/me", h.Profile.UpdateMe)
		authed.POST("/me/avatar", h.Profile.UploadAvatar)
	}
}
