package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/xgenie/xgenie-api/internal/api/shared"
	"github.com/xgenie/xgenie-api/internal/domain"
	"github.com/xgenie/xgenie-api/internal/generation"
	"github.com/xgenie/xgenie-api/internal/redact"
	"github.com/xgenie/xgenie-api/internal/service"
	"github.com/xgenie/xgenie-api/internal/service/auth"
	"github.com/xgenie/xgenie-api/internal/store"
)

// Key test messages shown to the user.
const (
	msgKeyRequired     = "APIキーを入力してください"
	msgKeyRejected     = "APIキーが認識されましたが、Google側でエラーが発生しました。\n詳細: %s"
	msgNoModels        = "APIキーは有効ですが、利用可能なモデルが1つも見つかりませんでした。Google AI Studioの設定（Planなど）を確認してください。"
	msgKeyProbeFailed  = "接続に失敗しました。ネットワーク設定またはキーを確認してください。\nエラー: %s"
	msgUnsupportedProv = "Unsupported provider"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, generation.ErrInvalidInput),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrUnsupportedProvider),
		errors.Is(err, service.ErrEmptyAPIKey):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrKeyRejected),
		errors.Is(err, generation.ErrNoModelsAvailable):
		return http.StatusForbidden

	case errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrAPIKeyNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, generation.ErrConfiguration),
		errors.Is(err, generation.ErrTransientProvider),
		errors.Is(err, generation.ErrCanceled):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrPermanentProvider):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err. Generation
// failures already carry a templated message and are returned as-is.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var genErr *service.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	var failure *generation.Failure
	if errors.As(err, &failure) {
		return failure.Message
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, generation.ErrInvalidInput):
		return "Missing required fields"
	case errors.Is(err, service.ErrDraftNotFound):
		return "Draft not found"
	case errors.Is(err, service.ErrAPIKeyNotFound):
		return "API key not found"
	case errors.Is(err, service.ErrUnsupportedProvider):
		return msgUnsupportedProv
	case errors.Is(err, service.ErrEmptyAPIKey):
		return msgKeyRequired
	case errors.Is(err, generation.ErrNoModelsAvailable):
		return msgNoModels
	case errors.Is(err, generation.ErrKeyRejected):
		return fmt.Sprintf(msgKeyRejected, providerDetail(err))
	case errors.Is(err, generation.ErrKeyProbeFailed):
		return fmt.Sprintf(msgKeyProbeFailed, providerDetail(err))
	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// providerDetail is the provider's own message for err, with credentials
// removed. It is meant for the owner of the key being tested.
func providerDetail(err error) string {
	var perr *generation.ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		return redact.Credentials(perr.Message)
	}

	msg := err.Error()
	for _, sentinel := range []error{generation.ErrKeyRejected, generation.ErrKeyProbeFailed} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return redact.Credentials(msg)
}

// HandleAPIError writes the status and safe message for err and logs the
// redacted details. A non-empty message overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return strings.ReplaceAll(tag, "_", " ") + " validation failed"
	}
}
