// Package mocks provides centralized mock implementations for testing.
//
// Each mock has one function field per interface method; a nil field falls
// back to the mock's default values. Mocks record the arguments of their
// last call where tests need to assert on them.
//
//	users := &mocks.MockUserService{
//	    GetUserFn: func(ctx context.Context, id int64) (*domain.User, error) {
//	        return nil, &service.NotFoundError{Entity: "user", ID: "7"}
//	    },
//	}
package mocks
