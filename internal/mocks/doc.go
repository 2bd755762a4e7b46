// Package mocks provides testify-based mock implementations of the store,
// token and verifier interfaces for use in tests outside their home packages.
//
// Each mock embeds mock.Mock; configure it with On(...).Return(...) and
// check it with AssertExpectations:
//
//	users := new(mocks.UserStore)
//	users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
//	defer users.AssertExpectations(t)
//
// Methods returning a pointer accept nil in Return for the "not found" case.
package mocks
