package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionLevel_AtLeast(t *testing.T) {
	assert.True(t, PermissionOwner.AtLeast(PermissionWhitelisted))
	assert.True(t, PermissionOwner.AtLeast(PermissionOwner))
	assert.True(t, PermissionWhitelisted.AtLeast(PermissionMember))
	assert.False(t, PermissionWhitelisted.AtLeast(PermissionOwner))
	assert.False(t, PermissionMember.AtLeast(PermissionWhitelisted))
	assert.False(t, PermissionNone.AtLeast(PermissionMember))
}

func TestPermissionLevel_String(t *testing.T) {
	assert.Equal(t, "none", PermissionNone.String())
	assert.Equal(t, "member", PermissionMember.String())
	assert.Equal(t, "whitelisted", PermissionWhitelisted.String())
	assert.Equal(t, "owner", PermissionOwner.String())
}

func TestBuiltinSearchDefaults(t *testing.T) {
	d := BuiltinSearchDefaults()
	assert.Equal(t, 500, d.TopSites)
	assert.Equal(t, 30, d.TimeoutSeconds)
	assert.Equal(t, 50, d.MaxConnections)
	assert.Equal(t, 1, d.Retries)
	assert.True(t, d.ParsingEnabled)
	assert.False(t, d.IncludeSimilar)
	assert.Equal(t, DefaultIDType, d.IDType)

	// Builtins must already sit inside the hard limits.
	assert.Equal(t, d, d.Clamped())
}

func TestSearchDefaults_Clamped(t *testing.T) {
	d := SearchDefaults{
		TopSites:       -1,
		TimeoutSeconds: 9999,
		MaxConnections: 201,
		Retries:        6,
	}

	c := d.Clamped()
	assert.Equal(t, TopSitesMin, c.TopSites)
	assert.Equal(t, TimeoutMax, c.TimeoutSeconds)
	assert.Equal(t, MaxConnectionsMax, c.MaxConnections)
	assert.Equal(t, RetriesMax, c.Retries)
	assert.Equal(t, DefaultIDType, c.IDType)
}

func TestSearchDefaults_Options(t *testing.T) {
	d := SearchDefaults{
		TopSites:       200,
		TimeoutSeconds: 45,
		MaxConnections: 20,
		Retries:        2,
		ParsingEnabled: true,
		IncludeSimilar: true,
		IDType:         "email",
	}

	opts := d.Options()
	assert.Equal(t, 200, opts.TopSites)
	assert.Equal(t, 45, opts.TimeoutSeconds)
	assert.Equal(t, 20, opts.MaxConnections)
	assert.Equal(t, 2, opts.Retries)
	assert.True(t, opts.ParsingEnabled)
	assert.True(t, opts.IncludeSimilar)
	assert.Equal(t, "email", opts.IDType)
}
