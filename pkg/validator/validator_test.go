package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type askRequest struct {
	Question string `json:"question" validate:"required,max=10"`
}

type uploadQuery struct {
	Mode string `query:"mode" validate:"omitempty,oneof=stream batch"`
}

func TestValidateNamesClientFields(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&askRequest{Question: "why?"}))
	assert.EqualError(t, v.Validate(&askRequest{}), "question is required")
	assert.EqualError(t, v.Validate(&askRequest{Question: strings.Repeat("x", 11)}), "question must be at most 10 characters")

	assert.NoError(t, v.Validate(&uploadQuery{}))
	assert.EqualError(t, v.Validate(&uploadQuery{Mode: "live"}), "mode must be one of [stream batch]")
}
