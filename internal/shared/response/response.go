// Package response renders the wire formats the API guarantees: paginated
// list envelopes, {message, data} write envelopes, {"detail": ...} error
// bodies, and {field: [messages]} validation bodies.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-api/internal/shared/query"
	"library-api/pkg/logger"
)

const (
	authRequiredDetail = "Authentication credentials were not provided."
	notFoundDetail     = "Not found."
	serverErrorDetail  = "Internal server error."
	rateLimitedDetail  = "Request was throttled."
)

type detailBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

type messageDataBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// OK sends a plain 200 with the given payload.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 with the {message, data} write envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, messageDataBody{Message: message, Data: data})
}

// Updated sends 200 with the {message, data} write envelope.
func Updated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, messageDataBody{Message: message, Data: data})
}

// Deleted sends the {message} envelope. A 204 cannot carry a body, so deletes
// respond 200.
func Deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, messageBody{Message: message})
}

// BadRequest is for requests broken before field validation can run, e.g. an
// unparseable JSON body.
func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, detailBody{Detail: detail})
}

func AuthRequired(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, detailBody{Detail: authRequiredDetail})
}

func Unauthorized(c *gin.Context, detail string) {
	c.JSON(http.StatusUnauthorized, detailBody{Detail: detail})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, detailBody{Detail: notFoundDetail})
}

func Conflict(c *gin.Context, detail string) {
	c.JSON(http.StatusConflict, detailBody{Detail: detail})
}

func RateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, detailBody{Detail: rateLimitedDetail})
}

func ServerError(c *gin.Context, err error) {
	logger.Error("request failed", err)
	c.JSON(http.StatusInternalServerError, detailBody{Detail: serverErrorDetail})
}

// ValidationFailed renders a 400 whose body is the {field: [messages]} map.
func ValidationFailed(c *gin.Context, errs query.FieldErrors) {
	c.JSON(http.StatusBadRequest, errs)
}

// FromValidation maps a validation error of either flavor (the query layer's
// FieldErrors or ozzo's validation.Errors) onto the wire format. It reports
// whether the error was handled; anything else is the caller's problem.
func FromValidation(c *gin.Context, err error) bool {
	switch e := err.(type) {
	case query.FieldErrors:
		ValidationFailed(c, e)
		return true
	case validation.Errors:
		fields := query.FieldErrors{}
		for field, ferr := range e {
			fields.Add(field, ferr.Error())
		}
		ValidationFailed(c, fields)
		return true
	}
	return false
}
