package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"blog-platform/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError = `error`
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Logger     *zap.SugaredLogger
}

// NewHTTPHelper builds a helper whose validator reports json/query field names
// and English messages.
func NewHTTPHelper(logger *zap.SugaredLogger) *HTTPHelper {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(fieldName)
	validate.RegisterCustomTypeFunc(optionalValue,
		models.Optional[string]{},
		models.Optional[[]string]{},
		models.Optional[bool]{},
	)
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		logger.Warnw("Validation translations unavailable", "error", err)
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
		Logger:     logger,
	}
}

func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// optionalValue lets the validator see through Optional fields. Absent and null
// fields validate as nil, so omitempty skips them.
func optionalValue(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case models.Optional[string]:
		if v.Present() {
			return v.Value
		}
	case models.Optional[[]string]:
		if v.Present() {
			return v.Value
		}
	case models.Optional[bool]:
		if v.Present() {
			return v.Value
		}
	}
	return nil
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var notFound models.ErrorNotFound
	var invalid models.ErrorValidation
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// BindJSON decodes and validates the request body. On failure the error
// response has been written and false is returned.
func (u *HTTPHelper) BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		u.SendBadRequest(c, "Invalid request body", err.Error())
		return false
	}
	return u.validate(c, dst)
}

// BindQuery decodes and validates the query string.
func (u *HTTPHelper) BindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		u.SendBadRequest(c, "Invalid query parameters", err.Error())
		return false
	}
	return u.validate(c, dst)
}

func (u *HTTPHelper) validate(c *gin.Context, dst interface{}) bool {
	err := u.Validate.Struct(dst)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		u.SendValidationError(c, validationErrors)
		return false
	}
	u.SendBadRequest(c, "Invalid request", err.Error())
	return false
}

// SendError ...
// Send error response to consumers.
func (u *HTTPHelper) SendError(c *gin.Context, status int, message string, data interface{}, codeType string) {
	c.JSON(status, map[string]interface{}{
		"code":         status,
		"code_type":    codeType,
		"code_message": message,
		"status":       textError,
		"data":         data,
	})
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.SendError(c, http.StatusBadRequest, message, data, `badRequest`)
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	u.SendError(c, http.StatusBadRequest, "Validation failed", errorResponse, `validationError`)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.SendError(c, http.StatusNotFound, message, u.EmptyJsonMap(), `notFound`)
}

// SendServiceError maps an error returned by a service to its response.
func (u *HTTPHelper) SendServiceError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)
	switch status {
	case http.StatusNotFound:
		u.SendNotFoundError(c, err.Error())
	case http.StatusBadRequest:
		u.SendBadRequest(c, err.Error(), u.EmptyJsonMap())
	default:
		u.Logger.Errorw("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		u.SendError(c, http.StatusInternalServerError, "Internal server error", u.EmptyJsonMap(), `internalServerError`)
	}
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}
