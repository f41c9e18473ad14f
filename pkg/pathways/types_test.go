package pathways

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleIDsEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[4,5,6]", RuleIDs(4, 5, 6).Encode())
	assert.Equal(t, "[7]", RuleIDs(7).Encode())
	assert.Equal(t, "[]", RuleIDs().Encode())
}

func TestSerializedRuleIDsEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1, 2]", SerializedRuleIDs("[1, 2]").Encode())
	assert.Equal(t, "[]", SerializedRuleIDs("").Encode())
}

func TestRuleIDListZeroValue(t *testing.T) {
	t.Parallel()

	var list RuleIDList

	assert.Equal(t, "[]", list.Encode())
}
