package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
)

/* ===============================
   Error taxonomy
=================================*/

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

func (k ErrorKind) Status() int {
	switch k {
	case KindValidation:
		return fiber.StatusBadRequest
	case KindAuthentication:
		return fiber.StatusUnauthorized
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is what services return; FromError turns it into a response.
type AppError struct {
	Kind    ErrorKind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ErrValidation(msg string, fields ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

func ErrUnauthenticated(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func ErrNotFound(what string) *AppError {
	return &AppError{Kind: KindNotFound, Message: what + " not found"}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func ErrInternal(msg string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Err: err}
}

// IsKind reports whether err is an AppError of kind k.
func IsKind(err error, k ErrorKind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == k
}

/* ===============================
   PG / driver error mapping
=================================*/

type pgSQLErr interface {
	SQLState() string
}

// SQLState extracts a SQLSTATE from pgx or lib/pq errors, "" otherwise.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var st pgSQLErr
	if errors.As(err, &st) {
		return st.SQLState()
	}
	return ""
}

// IsUniqueViolation also recognises sqlite's message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || SQLState(err) == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func mapDBError(err error) *AppError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &AppError{Kind: KindNotFound, Message: "resource not found", Err: err}
	case IsUniqueViolation(err):
		return &AppError{Kind: KindConflict, Message: "duplicate data (unique violation)", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &AppError{Kind: KindValidation, Message: "referenced record not found", Err: err}
	}
	switch SQLState(err) {
	case "23P01":
		return &AppError{Kind: KindConflict, Message: "schedule conflict: time range overlap", Err: err}
	case "23503":
		return &AppError{Kind: KindValidation, Message: "referenced record not found", Err: err}
	}
	return nil
}

/* ===============================
   Boundary mapper
=================================*/

// FromError writes err as the standard failure envelope.
func FromError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	var ae *AppError
	if !errors.As(err, &ae) {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonError(c, fe.Code, fe.Message)
		}
		if mapped := mapDBError(err); mapped != nil {
			ae = mapped
		} else {
			ae = ErrInternal("internal server error", err)
		}
	}

	status := ae.Kind.Status()
	if len(ae.Fields) > 0 {
		return JsonValidationError(c, ae.Message, ae.Fields)
	}
	if status >= fiber.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(err),
		)
		resp := ErrorResponse{
			Success:   false,
			Message:   ae.Message,
			ErrorCode: statusToErrorCode(status),
		}
		if configs.IsDevelopment() {
			resp.Error = err.Error()
		}
		return c.Status(status).JSON(resp)
	}
	return JsonError(c, status, ae.Message)
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so that nothing
// escapes as a framework error page.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromError(c, err)
}
