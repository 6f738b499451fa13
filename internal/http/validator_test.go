package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	type form struct {
		Name   string `validate:"required,min=3"`
		Email  string `validate:"required,email"`
		Rating int    `validate:"gte=1,lte=5"`
	}

	t.Run("valid input yields nil", func(t *testing.T) {
		details := ValidateStruct(form{Name: "Ananya", Email: "ananya@example.com", Rating: 4})
		assert.Nil(t, details)
	})

	t.Run("every failing field is reported", func(t *testing.T) {
		details := ValidateStruct(form{Name: "", Email: "nope", Rating: 9})
		require.Len(t, details, 3)

		byField := map[string]string{}
		for _, d := range details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "Name is required", byField["name"])
		assert.Equal(t, "Email must be a valid email address", byField["email"])
		assert.Equal(t, "Rating must be at most 5", byField["rating"])
	})

	t.Run("min length message carries the parameter", func(t *testing.T) {
		details := ValidateStruct(form{Name: "ab", Email: "a@b.co", Rating: 3})
		require.Len(t, details, 1)
		assert.Equal(t, "name", details[0].Field)
		assert.Equal(t, "Name must be at least 3 characters", details[0].Message)
	})
}
