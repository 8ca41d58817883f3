package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/lunchly/internal/model"
	"github.com/umalmyha/lunchly/internal/service"
)

type customerPayload struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

type customerResponse struct {
	ID              int64   `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FullName        string  `json:"fullName"`
	Phone           *string `json:"phone"`
	Notes           string  `json:"notes"`
	NumReservations int64   `json:"numReservations,omitempty"`
}

type reservationPayload struct {
	CustomerID int64   `json:"customerId" validate:"required"`
	NumGuests  int     `json:"numGuests"`
	StartAt    string  `json:"startAt" validate:"required"`
	Notes      *string `json:"notes"`
}

type reservationResponse struct {
	ID               int64     `json:"id"`
	CustomerID       int64     `json:"customerId"`
	NumGuests        int       `json:"numGuests"`
	StartAt          time.Time `json:"startAt"`
	FormattedStartAt string    `json:"formattedStartAt"`
	Notes            *string   `json:"notes"`
}

// CustomerHTTPHandler is http handler for customers endpoint
type CustomerHTTPHandler struct {
	customerSvc service.CustomerService
}

// NewCustomerHTTPHandler builds new CustomerHTTPHandler
func NewCustomerHTTPHandler(customerSvc service.CustomerService) *CustomerHTTPHandler {
	return &CustomerHTTPHandler{customerSvc: customerSvc}
}

// GetAll returns all customers ordered by name, or the result of name
// search when search query parameter is present
// @Summary     Get all customers
// @Description Returns all customers, optionally filtered by name search
// @Tags        customers
// @Produce     json
// @Param       search query    string false "Name search tokens"
// @Success     200    {array}  customerResponse
// @Failure     400    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers [get]
func (h *CustomerHTTPHandler) GetAll(c echo.Context) error {
	ctx := c.Request().Context()

	var customers []*model.Customer
	var err error
	if search := c.QueryParam("search"); search != "" {
		customers, err = h.customerSvc.SearchByName(ctx, search)
	} else {
		customers, err = h.customerSvc.FindAll(ctx)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customersResponse(customers))
}

// Get returns single customer by id
// @Summary     Get single customer by id
// @Description Returns single customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path     integer true "Customer id"
// @Success     200    {object} customerResponse
// @Failure     400    {object} echo.HTTPError
// @Failure     404    {object} echo.HTTPError
// @Router      /api/customers/{id} [get]
func (h *CustomerHTTPHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customerToResponse(customer))
}

// GetBest returns up to 10 customers with most reservations
// @Summary     Get best customers
// @Description Returns up to 10 customers ordered by reservation count
// @Tags        customers
// @Produce     json
// @Success     200    {array}  customerResponse
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/top [get]
func (h *CustomerHTTPHandler) GetBest(c echo.Context) error {
	customers, err := h.customerSvc.BestCustomers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customersResponse(customers))
}

// GetReservations returns all reservations of the customer
// @Summary     Get customer reservations
// @Description Returns all reservations of the customer with provided id
// @Tags        customers
// @Produce     json
// @Param       id     path     integer true "Customer id"
// @Success     200    {array}  reservationResponse
// @Failure     400    {object} echo.HTTPError
// @Failure     500    {object} echo.HTTPError
// @Router      /api/customers/{id}/reservations [get]
func (h *CustomerHTTPHandler) GetReservations(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	reservations, err := h.customerSvc.Reservations(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reservationsResponse(reservations))
}

// Post creates new customer
// @Summary     New customer
// @Description Creates new customer
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       customerPayload body     customerPayload true "Data for new customer"
// @Success     201             {object} customerResponse
// @Failure     400             {object} echo.HTTPError
// @Failure     500             {object} echo.HTTPError
// @Router      /api/customers [post]
func (h *CustomerHTTPHandler) Post(c echo.Context) error {
	var p customerPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&p); err != nil {
		return err
	}

	customer, err := h.customerSvc.Save(c.Request().Context(), model.NewCustomer(0, p.FirstName, p.LastName, p.Phone, p.Notes))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, customerToResponse(customer))
}

// Put updates all mutable fields of existing customer
// @Summary     Update customer
// @Description Rewrites all mutable fields of the customer with provided id
// @Tags        customers
// @Accept      json
// @Produce     json
// @Param       id              path     integer         true "Customer id"
// @Param       customerPayload body     customerPayload true "Customer data"
// @Success     200             {object} customerResponse
// @Failure     400             {object} echo.HTTPError
// @Failure     500             {object} echo.HTTPError
// @Router      /api/customers/{id} [put]
func (h *CustomerHTTPHandler) Put(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var p customerPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&p); err != nil {
		return err
	}

	customer, err := h.customerSvc.Save(c.Request().Context(), model.NewCustomer(id, p.FirstName, p.LastName, p.Phone, p.Notes))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, customerToResponse(customer))
}

// ReservationHTTPHandler is http handler for reservations endpoint
type ReservationHTTPHandler struct {
	reservationSvc service.ReservationService
}

// NewReservationHTTPHandler builds new ReservationHTTPHandler
func NewReservationHTTPHandler(reservationSvc service.ReservationService) *ReservationHTTPHandler {
	return &ReservationHTTPHandler{reservationSvc: reservationSvc}
}

// Post creates new reservation
// @Summary     New reservation
// @Description Creates new reservation for the customer
// @Tags        reservations
// @Accept      json
// @Produce     json
// @Param       reservationPayload body     reservationPayload true "Data for new reservation"
// @Success     201                {object} reservationResponse
// @Failure     400                {object} echo.HTTPError
// @Failure     500                {object} echo.HTTPError
// @Router      /api/reservations [post]
func (h *ReservationHTTPHandler) Post(c echo.Context) error {
	return h.save(c, 0, http.StatusCreated)
}

// Put updates all mutable fields of existing reservation
// @Summary     Update reservation
// @Description Rewrites start time, guest count and notes of the reservation
// @Tags        reservations
// @Accept      json
// @Produce     json
// @Param       id                 path     integer            true "Reservation id"
// @Param       reservationPayload body     reservationPayload true "Reservation data"
// @Success     200                {object} reservationResponse
// @Failure     400                {object} echo.HTTPError
// @Failure     500                {object} echo.HTTPError
// @Router      /api/reservations/{id} [put]
func (h *ReservationHTTPHandler) Put(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return h.save(c, id, http.StatusOK)
}

func (h *ReservationHTTPHandler) save(c echo.Context, id int64, okStatus int) error {
	var p reservationPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&p); err != nil {
		return err
	}

	// a failed parse leaves start time zero, which the model rejects
	// with the message naming the accepted format
	startAt, _ := time.Parse(model.StartAtLayout, strings.ToLower(p.StartAt))

	rsv, err := model.NewReservation(id, p.CustomerID, p.NumGuests, startAt, p.Notes)
	if err != nil {
		return err
	}

	rsv, err = h.reservationSvc.Save(c.Request().Context(), rsv)
	if err != nil {
		return err
	}

	return c.JSON(okStatus, reservationToResponse(rsv))
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func customerToResponse(c *model.Customer) *customerResponse {
	return &customerResponse{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		FullName:        c.FullName(),
		Phone:           c.Phone,
		Notes:           c.Notes,
		NumReservations: c.NumReservations,
	}
}

func customersResponse(customers []*model.Customer) []*customerResponse {
	resp := make([]*customerResponse, 0, len(customers))
	for _, c := range customers {
		resp = append(resp, customerToResponse(c))
	}
	return resp
}

func reservationToResponse(rsv *model.Reservation) *reservationResponse {
	return &reservationResponse{
		ID:               rsv.ID,
		CustomerID:       rsv.CustomerID(),
		NumGuests:        rsv.NumGuests,
		StartAt:          rsv.StartAt(),
		FormattedStartAt: rsv.FormattedStartAt(),
		Notes:            rsv.Notes,
	}
}

func reservationsResponse(reservations []*model.Reservation) []*reservationResponse {
	resp := make([]*reservationResponse, 0, len(reservations))
	for _, rsv := range reservations {
		resp = append(resp, reservationToResponse(rsv))
	}
	return resp
}
