package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestScopeConstructors(t *testing.T) {
	familyID := uuid.New()
	userID := uuid.New()

	family := FamilyScope(familyID)
	require.True(t, family.IsFamily())
	require.False(t, family.IsPersonal())
	got, ok := family.FamilyID()
	require.True(t, ok)
	require.Equal(t, familyID, got)
	_, ok = family.UserID()
	require.False(t, ok)

	personal := PersonalScope(userID)
	require.True(t, personal.IsPersonal())
	got, ok = personal.UserID()
	require.True(t, ok)
	require.Equal(t, userID, got)
}

func TestScopeFromIDs(t *testing.T) {
	familyID := uuid.New()
	userID := uuid.New()

	scope, err := ScopeFromIDs(&familyID, nil)
	require.NoError(t, err)
	require.True(t, scope.IsFamily())

	scope, err = ScopeFromIDs(nil, &userID)
	require.NoError(t, err)
	require.True(t, scope.IsPersonal())

	_, err = ScopeFromIDs(&familyID, &userID)
	require.ErrorIs(t, err, ErrInvalidScope)

	_, err = ScopeFromIDs(nil, nil)
	require.ErrorIs(t, err, ErrInvalidScope)
}

func TestScopeIDsRoundTrip(t *testing.T) {
	familyID := uuid.New()
	userID := uuid.New()

	f, u := FamilyScope(familyID).IDs()
	require.NotNil(t, f)
	require.Nil(t, u)
	require.Equal(t, familyID, *f)

	f, u = PersonalScope(userID).IDs()
	require.Nil(t, f)
	require.NotNil(t, u)
	require.Equal(t, userID, *u)
}
