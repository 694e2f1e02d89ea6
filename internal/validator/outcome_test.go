package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataquality/internal/validator"
)

func TestOutcome_ValidityDerivedFromErrors(t *testing.T) {
	assert.True(t, validator.Pass().Valid())
	assert.True(t, validator.NewOutcome(nil).Valid())
	assert.True(t, validator.NewOutcome([]string{}).Valid())
	assert.False(t, validator.Fail("x").Valid())
}

func TestOutcome_IsImmutable(t *testing.T) {
	msgs := []string{"a", "b"}
	out := validator.NewOutcome(msgs)
	msgs[0] = "changed"

	assert.Equal(t, []string{"a", "b"}, out.Errors())

	errs := out.Errors()
	errs[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, out.Errors())
}

func TestOutcome_JSON(t *testing.T) {
	data, err := json.Marshal(validator.Pass())
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":true,"errors":[]}`, string(data))

	data, err = json.Marshal(validator.Fail("bad"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"valid":false,"errors":["bad"]}`, string(data))
}

func TestOutcome_UnmarshalRederivesValidity(t *testing.T) {
	var out validator.Outcome
	require.NoError(t, json.Unmarshal([]byte(`{"valid":true,"errors":["contradiction"]}`), &out))

	assert.False(t, out.Valid())
	assert.Equal(t, []string{"contradiction"}, out.Errors())
}
