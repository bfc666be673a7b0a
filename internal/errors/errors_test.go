package errors_test

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianforge/loadout-api/internal/errors"
)

func TestErrorString(t *testing.T) {
	err := errors.NotFound("equipment not found")
	assert.Equal(t, "NOT_FOUND: equipment not found", err.Error())

	wrapped := errors.Wrap(stderrors.New("boom"), "failed to load equipment")
	assert.Equal(t, "INTERNAL: failed to load equipment: boom", wrapped.Error())
}

func TestWrapPreservesCode(t *testing.T) {
	inner := errors.NotFoundf("equipment %s not found", "titan_helmet_001")
	outer := errors.Wrap(inner, "failed to hydrate inventory")

	assert.Equal(t, errors.CodeNotFound, errors.GetCode(outer))
	assert.True(t, errors.IsNotFound(outer))
	assert.Equal(t, inner, stderrors.Unwrap(outer))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "irrelevant"))
	assert.Nil(t, errors.WrapWithCode(nil, errors.CodeNotFound, "irrelevant"))
}

func TestWrapWithCode(t *testing.T) {
	err := errors.WrapWithCode(stderrors.New("redis: nil"), errors.CodeNotFound, "build not found")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
	assert.Equal(t, "build not found", errors.GetMessage(err))
}

func TestGetCodeUnknownError(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
}

func TestMeta(t *testing.T) {
	err := errors.InvalidArgument("bad attribute").WithMeta("attribute", "luck")
	meta := errors.GetMeta(err)
	require.NotNil(t, meta)
	assert.Equal(t, "luck", meta["attribute"])
}

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		code errors.Code
		want int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeFailedPrecondition, http.StatusPreconditionFailed},
		{errors.CodeOutOfRange, http.StatusBadRequest},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.code.HTTPStatus(), "code %s", tc.code)
	}
}

func TestValidationBuilder(t *testing.T) {
	vb := errors.NewValidationBuilder()
	assert.NoError(t, vb.Build())

	errors.ValidateRequired("name", "  ", vb)
	errors.ValidateRange("level", 7, 0, 5, vb)
	errors.ValidateEnum("class", "exo", []string{"titan", "hunter", "warlock"}, vb)

	err := vb.Build()
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	meta := errors.GetMeta(err)
	require.NotNil(t, meta)
	fields, ok := meta["validation_errors"].(map[string][]string)
	require.True(t, ok)
	assert.Len(t, fields, 3)
	assert.Contains(t, fields["name"], "is required")
}
