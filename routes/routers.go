package routes

import (
	"net/http"

	"travel-app/controllers"
	"travel-app/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies gom các controller đã khởi tạo cho router
type Dependencies struct {
	Tokens   middleware.TokenParser
	Listings *controllers.ListingController
	Bookings *controllers.BookingController
	Reviews  *controllers.ReviewController
	Payments *controllers.PaymentController
	WS       *controllers.WSController
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	auth := middleware.AuthMiddleware(deps.Tokens)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.WS != nil {
		router.GET("/ws", auth, deps.WS.HandleWS)
	}

	api := router.Group("/api")

	listings := api.Group("/listings")
	listings.GET("/", deps.Listings.GetListings)
	listings.POST("/", auth, deps.Listings.CreateListing)
	listings.GET("/search", deps.Listings.SearchListings)
	listings.GET("/:id/", deps.Listings.GetListingDetail)
	listings.PUT("/:id/", auth, deps.Listings.UpdateListing)
	listings.PATCH("/:id/", auth, deps.Listings.UpdateListing)
	listings.DELETE("/:id/", auth, deps.Listings.DeleteListing)
	listings.POST("/:id/image", auth, deps.Listings.UploadListingImage)
	listings.GET("/:id/reviews/", deps.Listings.GetListingReviews)

	bookings := api.Group("/bookings", auth)
	bookings.GET("/", deps.Bookings.GetBookings)
	bookings.POST("/", deps.Bookings.CreateBooking)
	bookings.GET("/:id/", deps.Bookings.GetBookingDetail)
	bookings.PUT("/:id/", deps.Bookings.UpdateBooking)
	bookings.PATCH("/:id/", deps.Bookings.UpdateBooking)
	bookings.DELETE("/:id/", deps.Bookings.DeleteBooking)

	reviews := api.Group("/reviews")
	reviews.GET("/", deps.Reviews.GetReviews)
	reviews.POST("/", auth, deps.Reviews.CreateReview)
	reviews.GET("/:id/", deps.Reviews.GetReviewDetail)
	reviews.PUT("/:id/", auth, deps.Reviews.UpdateReview)
	reviews.PATCH("/:id/", auth, deps.Reviews.UpdateReview)
	reviews.DELETE("/:id/", auth, deps.Reviews.DeleteReview)

	payment := api.Group("/payment")
	payment.POST("/initiate/", deps.Payments.InitiatePayment)
	payment.GET("/verify/:payment_id/", deps.Payments.VerifyPayment)
	payment.GET("/:payment_id/", auth, deps.Payments.GetPayment)
}
