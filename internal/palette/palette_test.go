package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verustcode/reportng/pkg/errors"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   Color
		want string
	}{
		{Red, "danger"},
		{Green, "success"},
		{Yellow, "warning"},
		{Blue, "info"},
		{Light, "secondary"},
		{Primary, "primary"},
		{Secondary, "secondary"},
		{Success, "success"},
		{Danger, "danger"},
		{Warning, "warning"},
		{Info, "info"},
		{Dark, "dark"},
		{Default, "default"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.in))
		})
	}
}

func TestCanonical_TotalOverAccepted(t *testing.T) {
	for _, name := range Accepted() {
		assert.NotPanics(t, func() { Canonical(Color(name)) })
		assert.NotEmpty(t, Canonical(Color(name)))
	}
	assert.Len(t, Accepted(), 13)
}

func TestIsValid(t *testing.T) {
	for _, name := range Accepted() {
		assert.True(t, IsValid(name), name)
	}

	for _, bad := range []string{"", "purple", "Primary", "RED", " red", "bg-primary", "#ff0000"} {
		assert.False(t, IsValid(bad), "%q should be rejected", bad)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("red", Primary)
	require.NoError(t, err)
	assert.Equal(t, "danger", got)

	got, err = Parse("", Dark)
	require.NoError(t, err)
	assert.Equal(t, "dark", got)

	_, err = Parse("magenta", Primary)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidColor))

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	details, ok := appErr.Details.(errors.ColorDetails)
	require.True(t, ok)
	assert.Equal(t, "magenta", details.Value)
	assert.Equal(t, Accepted(), details.Accepted)
}
