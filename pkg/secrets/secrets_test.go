package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "extendbee/pkg/domain-errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("tandoori-seed-token")
	require.NoError(t, err)
	assert.NotEqual(t, "tandoori-seed-token", hash)

	assert.NoError(t, Verify("tandoori-seed-token", hash))

	err = Verify("wrong-token", hash)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
