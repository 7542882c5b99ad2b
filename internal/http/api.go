package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stayhub/internal/auth"
	"stayhub/internal/domain"
	"stayhub/internal/repository"
	"stayhub/internal/service"
	"stayhub/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	places   service.PlaceService
	bookings service.BookingService
	storage  storage.Service
	saveOpts storage.SaveOptions
	localDir string

	jwtSecret    []byte
	tokenTTL     time.Duration
	cookieName   string
	cookieDomain string
	cookieSecure bool
	corsOrigin   string

	logger *logrus.Logger
}

// Options carries the handler's configuration.
type Options struct {
	Users    service.UserService
	Places   service.PlaceService
	Bookings service.BookingService
	Storage  storage.Service
	SaveOpts storage.SaveOptions
	// LocalDir, when set, is served statically under /uploads.
	LocalDir string

	JWTSecret    string
	TokenTTL     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
	CORSOrigin   string

	Logger *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = "token"
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:        opts.Users,
		places:       opts.Places,
		bookings:     opts.Bookings,
		storage:      opts.Storage,
		saveOpts:     opts.SaveOpts,
		localDir:     opts.LocalDir,
		jwtSecret:    []byte(opts.JWTSecret),
		tokenTTL:     opts.TokenTTL,
		cookieName:   cookieName,
		cookieDomain: opts.CookieDomain,
		cookieSecure: opts.CookieSecure,
		corsOrigin:   opts.CORSOrigin,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigin))
	router.Use(loggingMiddleware(h.logger))

	if h.localDir != "" {
		router.Static("/uploads", h.localDir)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
		api.GET("/profile", h.optionalAuth(), h.profile)

		api.POST("/upload", h.requireAuth(), h.uploadPhotos)
		api.POST("/upload-by-link", h.requireAuth(), h.uploadByLink)
		api.GET("/photo-url", h.photoURL)

		api.GET("/places", h.listPlaces)
		api.GET("/places/:id", h.getPlace)
		api.POST("/places", h.requireAuth(), h.createPlace)
		api.PUT("/places/:id", h.requireAuth(), h.updatePlace)
		api.GET("/user-places", h.requireAuth(), h.listUserPlaces)

		api.POST("/bookings", h.requireAuth(), h.createBooking)
		api.GET("/bookings", h.requireAuth(), h.listBookings)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "name, email and password are required")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	token, err := auth.IssueToken(domain.Identity{UserID: user.ID, Email: user.Email}, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.WithError(err).Error("issue session token")
		writeError(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	maxAge := 0
	if h.tokenTTL > 0 {
		maxAge = int(h.tokenTTL / time.Second)
	}
	h.setSessionCookie(c, token, maxAge)
	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// profile is a privileged read with an anonymous fast path: no credential
// means a null profile, not an error.
func (h *Handler) profile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

type placeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Address     string   `json:"address" binding:"required"`
	Description string   `json:"description"`
	ExtraInfo   string   `json:"extraInfo"`
	Photos      []string `json:"photos"`
	Perks       []string `json:"perks"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int64    `json:"price"`
}

func (r placeRequest) toInput() service.PlaceInput {
	return service.PlaceInput{
		Title:       r.Title,
		Address:     r.Address,
		Description: r.Description,
		ExtraInfo:   r.ExtraInfo,
		Photos:      r.Photos,
		Perks:       r.Perks,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

func (h *Handler) createPlace(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "title and address are required")
		return
	}

	place, err := h.places.Create(c.Request.Context(), identity.UserID, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, placeToResponse(*place))
}

func (h *Handler) updatePlace(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "invalid place id")
		return
	}

	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "title and address are required")
		return
	}

	place, err := h.places.Update(c.Request.Context(), identity, id, req.toInput())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeToResponse(*place))
}

func (h *Handler) getPlace(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "invalid place id")
		return
	}

	place, err := h.places.Get(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, placeToResponse(*place))
}

func (h *Handler) listPlaces(c *gin.Context) {
	places, err := h.places.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]PlaceResponse, len(places))
	for i := range places {
		resp[i] = placeToResponse(places[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listUserPlaces(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	places, err := h.places.ListByOwner(c.Request.Context(), identity.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]PlaceResponse, len(places))
	for i := range places {
		resp[i] = placeToResponse(places[i])
	}
	c.JSON(http.StatusOK, resp)
}

type bookingRequest struct {
	Place    int64  `json:"place" binding:"required"`
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
	Guests   int    `json:"numberOfGuests" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Price    int64  `json:"price"`
}

func (h *Handler) createBooking(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "place, dates, guests and name are required")
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "invalid check-in date")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid_request", "invalid check-out date")
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), identity, service.BookingInput{
		PlaceID:  req.Place,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Name:     req.Name,
		Phone:    req.Phone,
		Price:    req.Price,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingToResponse(*booking))
}

func (h *Handler) listBookings(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	bookings, err := h.bookings.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = bookingToResponse(bookings[i])
	}
	c.JSON(http.StatusOK, resp)
}

// UserResponse is the client-visible projection of a user. It structurally
// has no hash field.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PlaceResponse struct {
	ID          int64    `json:"id"`
	Owner       int64    `json:"owner"`
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	ExtraInfo   string   `json:"extraInfo"`
	Photos      []string `json:"photos"`
	Perks       []string `json:"perks"`
	CheckIn     string   `json:"checkIn"`
	CheckOut    string   `json:"checkOut"`
	MaxGuests   int      `json:"maxGuests"`
	Price       int64    `json:"price"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type BookingResponse struct {
	ID        int64          `json:"id"`
	Place     int64          `json:"place"`
	User      int64          `json:"user"`
	CheckIn   string         `json:"checkIn"`
	CheckOut  string         `json:"checkOut"`
	Guests    int            `json:"numberOfGuests"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Price     int64          `json:"price"`
	CreatedAt string         `json:"created_at"`
	PlaceInfo *PlaceResponse `json:"placeInfo,omitempty"`
}

type errorResponse struct {
	Error responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func placeToResponse(place domain.Place) PlaceResponse {
	resp := PlaceResponse{
		ID:          place.ID,
		Owner:       place.OwnerID,
		Title:       place.Title,
		Address:     place.Address,
		Description: place.Description,
		ExtraInfo:   place.ExtraInfo,
		Photos:      place.Photos,
		Perks:       place.Perks,
		CheckIn:     place.CheckIn,
		CheckOut:    place.CheckOut,
		MaxGuests:   place.MaxGuests,
		Price:       place.Price,
		CreatedAt:   place.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   place.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	if resp.Perks == nil {
		resp.Perks = []string{}
	}
	return resp
}

func bookingToResponse(booking domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        booking.ID,
		Place:     booking.PlaceID,
		User:      booking.UserID,
		CheckIn:   booking.CheckIn.Format("2006-01-02"),
		CheckOut:  booking.CheckOut.Format("2006-01-02"),
		Guests:    booking.Guests,
		Name:      booking.Name,
		Phone:     booking.Phone,
		Price:     booking.Price,
		CreatedAt: booking.CreatedAt.Format(time.RFC3339),
	}
	if booking.Place != nil {
		place := placeToResponse(*booking.Place)
		resp.PlaceInfo = &place
	}
	return resp
}

// writeServiceError maps domain sentinels to HTTP statuses. Anything
// unrecognized is a generic retryable server error; internals never leak.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusUnprocessableEntity, "invalid_input", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(c, http.StatusUnprocessableEntity, "email_taken", "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
	case errors.Is(err, auth.ErrForbidden):
		writeError(c, http.StatusForbidden, "forbidden", "you are not the owner of this resource")
	case errors.Is(err, service.ErrDatesUnavailable):
		writeError(c, http.StatusConflict, "dates_unavailable", "the requested dates are not available")
	case errors.Is(err, repository.ErrNotFound):
		writeError(c, http.StatusNotFound, "not_found", "not found")
	default:
		h.logger.WithError(err).Error("request failed")
		writeError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{Error: responseError{Code: code, Message: message}})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
