package models

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderKindValid(t *testing.T) {
	for _, k := range AllProviders {
		assert.True(t, k.Valid(), k)
	}
	assert.False(t, ProviderKind("kickass").Valid())
	assert.False(t, ProviderKind("").Valid())
}

func TestTorrentRecordIdentifiable(t *testing.T) {
	assert.True(t, TorrentRecord{Identifier: "abc"}.Identifiable())
	assert.True(t, TorrentRecord{DisplayName: "X"}.Identifiable())
	assert.False(t, TorrentRecord{SeederCount: 10}.Identifiable())
}

func TestProviderQueryMatchKey(t *testing.T) {
	assert.Equal(t, "tt0133093", NewQuery("tt0133093").MatchKey())
	assert.Equal(t, "tt0133093", ProviderQuery{Term: "The Matrix", MatchID: "tt0133093"}.MatchKey())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search: %w", NewUpstreamError(ProviderYTS, cause))

	assert.True(t, IsUpstream(err))
	assert.False(t, IsUnknownProvider(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "UPSTREAM [yts]")

	unknown := NewUnknownProviderError("kickass")
	assert.True(t, IsUnknownProvider(unknown))
	assert.False(t, IsUpstream(unknown))
	assert.Contains(t, unknown.Error(), "provider kickass not found")
}

func TestUpstreamErrorKeepsCancellation(t *testing.T) {
	err := NewUpstreamError(ProviderLeetx, context.Canceled)

	assert.ErrorIs(t, err, context.Canceled)
}
