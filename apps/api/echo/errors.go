package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/problem"
	"github.com/berrycrepe/choco-chip/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountNotFound    = echo.NewHTTPError(http.StatusUnauthorized, "account not found")
	errWrongPassword      = echo.NewHTTPError(http.StatusUnauthorized, "wrong password")
	errRefreshExpired     = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden      = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errCustomBannerLocked = echo.NewHTTPError(http.StatusForbidden, "custom banners unlock at CLASS 5")

	invalidRequestMsg = "invalid request"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	OK      bool              `json:"ok"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(
	logger core.Logger,
	translator ut.Translator,
	signalShutdown func(),
) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		resp := ErrorResponse{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				resp.Message = errMessage(origErr.Message)
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			resp.Message = errMessage(origErr.Message)
		case validator.ValidationErrors:
			resp.Fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				resp.Fields[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			resp.Message = invalidRequestMsg
		case *core.ValidationError:
			if origErr.Fields != nil {
				resp.Fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					resp.Fields[fErr.Field] = fErr.Error
				}
			}
			resp.Message = origErr.Error()
			if resp.Message == "" {
				resp.Message = invalidRequestMsg
			}
			code = http.StatusBadRequest
		case *core.ConflictError:
			code = http.StatusConflict
			resp.Message = origErr.Error()
			resp.Fields = map[string]string{origErr.Field: origErr.Error()}
		default:
			if origErr == user.ErrNotFound || origErr == problem.ErrNotFound {
				code = http.StatusNotFound
				resp.Message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			resp.Message = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Handle = claims.Handle
			}
			logger.Error(msg, errors.Wrap(err, msg), usr, map[string]interface{}{
				"method":    ctx.Request().Method,
				"path":      ctx.Path(),
				"requestId": ctx.Response().Header().Get(echo.HeaderXRequestID),
			})

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}

			if ctx.Echo().Debug {
				resp.Message = err.Error()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func errMessage(m interface{}) string {
	if s, ok := m.(string); ok {
		return s
	}
	return http.StatusText(http.StatusInternalServerError)
}
