package generation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xgenie/xgenie-api/internal/generation"
)

func TestProviderError_Error(t *testing.T) {
	assert.Equal(t, "provider error 503 (UNAVAILABLE): busy",
		(&generation.ProviderError{StatusCode: 503, Status: "UNAVAILABLE", Message: "busy"}).Error())
	assert.Equal(t, "provider error 429: slow down",
		(&generation.ProviderError{StatusCode: 429, Message: "slow down"}).Error())
	assert.Equal(t, "provider error: boom",
		(&generation.ProviderError{Message: "boom"}).Error())

	cause := errors.New("cause")
	assert.ErrorIs(t, &generation.ProviderError{Err: cause}, cause)
}

func TestFailure_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	f := &generation.Failure{Kind: generation.ErrPermanentProvider, Message: "msg", Err: cause}

	assert.Equal(t, "msg", f.Error())
	assert.Equal(t, "cause", f.Detail())
	assert.ErrorIs(t, f, generation.ErrPermanentProvider)
	assert.ErrorIs(t, f, cause)
	assert.NotErrorIs(t, f, generation.ErrTransientProvider)

	empty := &generation.Failure{Kind: generation.ErrConfiguration}
	assert.Empty(t, empty.Detail())
	assert.ErrorIs(t, empty, generation.ErrConfiguration)
}
