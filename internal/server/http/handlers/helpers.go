package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
	"github.com/phan14/du-an-ss2/internal/server/http/dto"
	"github.com/phan14/du-an-ss2/internal/server/http/middleware"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	uploadFormField  = "file"
	internalErrorMsg = "internal error"
	importFormatHint = "Không đọc được file, vui lòng kiểm tra định dạng Excel"
)

// CurrentUser extracts the authenticated account from context.
func CurrentUser(c *gin.Context) model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return model.User{}
	}
	user, _ := val.(model.User)
	return user
}

// writeError maps domain errors to a status code and JSON body.
func writeError(c *gin.Context, err error) {
	var (
		validation *domainErrors.ValidationError
		dispatch   *domainErrors.DispatchError
		format     *domainErrors.ImportFormatError
	)
	switch {
	case errors.Is(err, domainErrors.ErrOverDelivery):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Field: validation.Field})
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden), errors.Is(err, domainErrors.ErrSelfDelete):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrEmptyEvent), errors.Is(err, domainErrors.ErrMissingDate):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &dispatch):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &format):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: importFormatHint})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMsg})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// sendWorkbook streams an xlsx attachment.
func sendWorkbook(c *gin.Context, name string, content []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, xlsxContentType, content)
}
