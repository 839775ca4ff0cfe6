package serverutils

import (
	"testing"

	"agency-configurator-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionAction struct {
	Action string   `json:"action" validate:"required,oneof=create save"`
	Token  string   `json:"token" validate:"required_if=Action save,max=64"`
	Ids    []string `json:"ids" validate:"unique"`
}

func TestValidateRequestFieldMessages(t *testing.T) {
	tests := []struct {
		name  string
		req   sessionAction
		field string
		want  string
	}{
		{name: "conditional requirement", req: sessionAction{Action: "save"}, field: "token", want: "is required"},
		{name: "missing action", req: sessionAction{}, field: "action", want: "is required"},
		{name: "unknown action", req: sessionAction{Action: "drop"}, field: "action", want: "must be one of: create save"},
		{name: "duplicates", req: sessionAction{Action: "create", Ids: []string{"a", "a"}}, field: "ids", want: "must not contain duplicates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req)
			require.Error(t, err)

			var appErr *apperror.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.want, appErr.Fields[tt.field])
		})
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	assert.NoError(t, ValidateRequest(&sessionAction{Action: "create"}))
	assert.NoError(t, ValidateRequest(&sessionAction{Action: "save", Token: "abc"}))
}
