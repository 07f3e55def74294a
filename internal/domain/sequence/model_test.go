package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeKey_String(t *testing.T) {
	assert.Equal(t, "letter:2026", NewYearScope(NamespaceLetter, 2026).String())
	assert.Equal(t, "agreement:2026", NewYearScope(NamespaceAgreement, 2026).String())
	assert.Equal(t, "letter:2026:org_1", NewOrganizationScope(NamespaceLetter, 2026, "org_1").String())

	// letters and agreements never share a counter
	assert.NotEqual(t, NewYearScope(NamespaceLetter, 2026).String(), NewYearScope(NamespaceAgreement, 2026).String())
}
