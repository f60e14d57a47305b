package util

import (
	"errors"
	"net/http"

	"skillpath_backend/pkg/llm"

	"github.com/gin-gonic/gin"
)

var (
	ErrUserNotFound          = errors.New("用户不存在")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrInvalidRole           = errors.New("role must be admin or employee")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrContentNotFound       = errors.New("content not found")
	ErrProgressNotFound      = errors.New("learning progress not found")
	ErrQuestionNotFound      = errors.New("question not found in the active session")
	ErrRoleProfileNotFound   = errors.New("role skill profile not found")
	ErrSkillExists           = errors.New("skill already exists")
	ErrInvalidCategory       = errors.New("category must be CORE or NICE_TO_HAVE")
	ErrInvalidContentType    = errors.New("content type must be VIDEO or ARTICLE")
	ErrUnsupportedMedia      = errors.New("unsupported media type")
	ErrNoActiveSession       = errors.New("no active assessment session")
	ErrNoAnswers             = errors.New("no answers submitted")
	ErrInvalidAnswerKey      = errors.New("answer keys must be numeric question ids")
	ErrNoCompletedAssessment = errors.New("no completed assessment found")
	ErrGenerationInProgress  = errors.New("generation already in progress for this employee")
	ErrInvalidEmployeeLink   = errors.New("linked employee does not exist")
	ErrEmployeeLinked        = errors.New("employee is already linked to an account")
	ErrInvalidInput          = errors.New("invalid input")
)

// RateLimitedMessage is returned to clients when the text-generation quota is exhausted.
const RateLimitedMessage = "You've reached the daily limit for this API. Please try again tomorrow or upgrade your plan."

var (
	badRequestErrors = []error{
		ErrInvalidRole, ErrInvalidCategory, ErrInvalidContentType, ErrUnsupportedMedia,
		ErrNoActiveSession, ErrNoAnswers, ErrInvalidAnswerKey, ErrNoCompletedAssessment,
		ErrInvalidEmployeeLink, ErrInvalidInput,
	}
	notFoundErrors = []error{
		ErrUserNotFound, ErrEmployeeNotFound, ErrContentNotFound, ErrProgressNotFound,
		ErrQuestionNotFound, ErrRoleProfileNotFound,
	}
	conflictErrors = []error{
		ErrEmailRegistered, ErrUsernameTaken, ErrSkillExists, ErrGenerationInProgress,
		ErrEmployeeLinked,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case llm.IsRateLimited(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes the envelope for err; unknown errors are logged and reported as 500.
func HandleError(c *gin.Context, err error) {
	status := StatusOf(err)
	switch status {
	case http.StatusInternalServerError:
		LogInternalError(c, err)
	case http.StatusTooManyRequests:
		Error(c, status, RateLimitedMessage)
	default:
		Error(c, status, err.Error())
	}
}
