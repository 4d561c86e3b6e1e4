package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/target/mmk-mobile-client/internal/domain/auth"
)

func TestState_StartsEmpty(t *testing.T) {
	state := NewState()
	assert.True(t, state.Read().Empty())
}

func TestState_ReplaceAndRead(t *testing.T) {
	state := NewState()
	state.Replace(domainauth.Session{
		Token:   "abc",
		Profile: &domainauth.Profile{ID: "u1", Email: "a@x.com", Role: domainauth.RoleUser},
	})

	got := state.Read()
	require.True(t, got.Present())
	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, "a@x.com", got.Profile.Email)
}

func TestState_ReadReturnsCopy(t *testing.T) {
	state := NewState()
	state.Replace(domainauth.Session{Token: "abc", Profile: &domainauth.Profile{ID: "u1"}})

	got := state.Read()
	got.Profile.ID = "mutated"

	assert.Equal(t, "u1", state.Read().Profile.ID)
}

func TestState_ObserversNotifiedInSubscriptionOrder(t *testing.T) {
	state := NewState()

	var order []string
	state.Subscribe(func(domainauth.Session) { order = append(order, "first") })
	state.Subscribe(func(domainauth.Session) { order = append(order, "second") })
	state.Subscribe(func(domainauth.Session) { order = append(order, "third") })

	state.Replace(domainauth.Session{})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestState_ObserverSeesFullSession(t *testing.T) {
	state := NewState()

	var seen []domainauth.Session
	state.Subscribe(func(s domainauth.Session) { seen = append(seen, s) })

	state.Replace(domainauth.Session{Token: "abc", Profile: &domainauth.Profile{ID: "u1"}})
	state.Replace(domainauth.Session{})

	require.Len(t, seen, 2)
	// token and profile always appear together
	assert.Equal(t, "abc", seen[0].Token)
	require.NotNil(t, seen[0].Profile)
	assert.True(t, seen[1].Empty())
}

func TestState_NoOpReplaceStillNotifies(t *testing.T) {
	state := NewState()

	calls := 0
	state.Subscribe(func(domainauth.Session) { calls++ })

	state.Replace(domainauth.Session{})
	state.Replace(domainauth.Session{})

	assert.Equal(t, 2, calls)
}

func TestState_Unsubscribe(t *testing.T) {
	state := NewState()

	calls := 0
	unsubscribe := state.Subscribe(func(domainauth.Session) { calls++ })

	state.Replace(domainauth.Session{})
	unsubscribe()
	state.Replace(domainauth.Session{})

	assert.Equal(t, 1, calls)

	// unsubscribing twice is harmless
	unsubscribe()
}

func TestState_ObserverMayReadState(t *testing.T) {
	state := NewState()

	var observed string
	state.Subscribe(func(domainauth.Session) {
		observed = state.Read().Token
	})

	state.Replace(domainauth.Session{Token: "abc", Profile: &domainauth.Profile{ID: "u1"}})

	assert.Equal(t, "abc", observed)
}
