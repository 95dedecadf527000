package cast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartParamsValidate(t *testing.T) {
	assert.NoError(t, StartParams{SessionID: "s1", URL: "https://a.example/watch?v=1"}.Validate())

	for name, p := range map[string]StartParams{
		"missing session": {URL: "https://a.example"},
		"missing url":     {SessionID: "s1"},
		"malformed url":   {SessionID: "s1", URL: "not a url"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, p.Validate(), ErrInvalidParams)
		})
	}
}
