package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipal(t *testing.T) {
	p := Principal{Kind: PrincipalDoctor, ID: 7, Name: "Dr. House"}
	assert.True(t, p.IsDoctor())
	assert.False(t, p.IsStaff())
	assert.True(t, PrincipalStaff.IsValid())
	assert.False(t, PrincipalKind("patient").IsValid())
}
