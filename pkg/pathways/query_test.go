package pathways

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsEncode(t *testing.T) {
	t.Parallel()

	params := NewParams()
	params.SetInt("page", 1)

	assert.Equal(t, "?page=1&", params.Encode())
}

func TestParamsEncodeInsertionOrder(t *testing.T) {
	t.Parallel()

	params := NewParams()
	params.SetInt("page", 2)
	params.SetBool("is_deleted", false)
	params.Set("owner_id", "owner-1")

	assert.Equal(t, "?page=2&is_deleted=false&owner_id=owner-1&", params.Encode())
}

func TestParamsEncodeEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", NewParams().Encode())

	var params *Params

	assert.Equal(t, "", params.Encode())
	assert.Equal(t, 0, params.Len())
}

func TestParamsEncodeEscapesValues(t *testing.T) {
	t.Parallel()

	params := NewParams()
	params.Set("identity_id", "user one+two")

	assert.Equal(t, "?identity_id=user+one%2Btwo&", params.Encode())
}
