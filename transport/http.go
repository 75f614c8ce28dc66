package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	authapp "github.com/souqhub/marketplace/application/auth"
	chatapp "github.com/souqhub/marketplace/application/chat"
	currencyapp "github.com/souqhub/marketplace/application/currency"
	geoapp "github.com/souqhub/marketplace/application/geo"
	listingapp "github.com/souqhub/marketplace/application/listing"
	socialapp "github.com/souqhub/marketplace/application/social"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	AuthApp     authapp.AuthApp
	ListingApp  listingapp.ListingApp
	GeoApp      geoapp.GeoApp
	SocialApp   socialapp.SocialApp
	CurrencyApp currencyapp.CurrencyApp
	ChatApp     chatapp.ChatApp
}

func NewTransport(rh *RestHandler) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Auth
	mux.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	mux.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	mux.HandleFunc("/otp/send", rh.SendOTP).Methods(http.MethodPost)
	mux.HandleFunc("/otp/verify", rh.VerifyOTP).Methods(http.MethodPost)
	mux.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	mux.HandleFunc("/password", rh.UpdatePassword).Methods(http.MethodPut)
	mux.HandleFunc("/profile", rh.GetProfile).Methods(http.MethodGet)
	mux.HandleFunc("/profile", rh.UpdateProfile).Methods(http.MethodPut)

	// Listings
	mux.HandleFunc("/listings", rh.SearchListings).Methods(http.MethodGet)
	mux.HandleFunc("/listings", rh.CreateListing).Methods(http.MethodPost)
	mux.HandleFunc("/listings/{id:[0-9]+}", rh.GetListing).Methods(http.MethodGet)
	mux.HandleFunc("/listings/{id:[0-9]+}", rh.UpdateListing).Methods(http.MethodPut)
	mux.HandleFunc("/listings/{id:[0-9]+}", rh.DeleteListing).Methods(http.MethodDelete)
	mux.HandleFunc("/listings/{id:[0-9]+}/status", rh.UpdateListingStatus).Methods(http.MethodPatch)
	mux.HandleFunc("/featured-listings", rh.FeaturedListings).Methods(http.MethodGet)

	// Reference data
	mux.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	mux.HandleFunc("/governorates", rh.ListGovernorates).Methods(http.MethodGet)
	mux.HandleFunc("/governorates/{id:[0-9]+}/districts", rh.ListDistricts).Methods(http.MethodGet)
	mux.HandleFunc("/exchange-rate", rh.GetExchangeRate).Methods(http.MethodGet)
	mux.HandleFunc("/convert", rh.Convert).Methods(http.MethodGet)

	// Favorites, messages, reports
	mux.HandleFunc("/favorites", rh.ListFavorites).Methods(http.MethodGet)
	mux.HandleFunc("/favorites", rh.AddFavorite).Methods(http.MethodPost)
	mux.HandleFunc("/favorites/{listing_id:[0-9]+}", rh.RemoveFavorite).Methods(http.MethodDelete)
	mux.HandleFunc("/messages", rh.SendMessage).Methods(http.MethodPost)
	mux.HandleFunc("/messages/{peer_id:[0-9]+}", rh.ListConversation).Methods(http.MethodGet)
	mux.HandleFunc("/reports", rh.CreateReport).Methods(http.MethodPost)

	// Assistant widget
	mux.HandleFunc("/chat", rh.Chat).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(rh.AuthApp))

	return mux
}
