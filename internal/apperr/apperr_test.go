package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// AppErrSuite tests the error normalization chokepoint. Every screen's
// "show server message or generic fallback" decision rides on Normalize
// and Display, so their classification rules are pinned down here.
type AppErrSuite struct {
	suite.Suite
}

func TestAppErrSuite(t *testing.T) {
	suite.Run(t, new(AppErrSuite))
}

func (s *AppErrSuite) TestFromResponse() {
	s.Run("structured body with message is a domain error", func() {
		err := FromResponse(401, []byte(`{"message":"Invalid credentials"}`))
		s.True(err.Domain)
		s.Equal("Invalid credentials", err.Message)
		s.Equal(401, err.Status)
	})

	s.Run("empty body is a transport error", func() {
		err := FromResponse(502, nil)
		s.False(err.Domain)
		s.Empty(err.Message)
		s.Equal(502, err.Status)
	})

	s.Run("non-JSON body is a transport error", func() {
		err := FromResponse(500, []byte("<html>bad gateway</html>"))
		s.False(err.Domain)
	})

	s.Run("JSON body without message field is a transport error", func() {
		err := FromResponse(500, []byte(`{"error":"boom"}`))
		s.False(err.Domain)
	})
}

func (s *AppErrSuite) TestNormalize() {
	s.Run("nil stays nil", func() {
		s.Nil(Normalize(nil))
	})

	s.Run("bare network error becomes transport", func() {
		err := Normalize(errors.New("dial tcp: i/o timeout"))
		s.False(err.Domain)
		s.Empty(err.Message)
	})

	s.Run("already-normalized error passes through", func() {
		orig := &AppError{Message: "Duplicate email", Domain: true}
		s.Same(orig, Normalize(orig))
	})

	s.Run("wrapped AppError is unwrapped", func() {
		orig := &AppError{Message: "Duplicate email", Domain: true}
		wrapped := fmt.Errorf("sign up: %w", orig)
		s.Same(orig, Normalize(wrapped))
	})
}

func (s *AppErrSuite) TestDisplay() {
	s.Run("domain error shows server message verbatim", func() {
		err := &AppError{Message: "Invalid credentials", Domain: true}
		s.Equal("Invalid credentials", Display(err, "Could not sign in."))
	})

	s.Run("transport error shows caller fallback", func() {
		err := errors.New("connection refused")
		s.Equal("Could not sign in.", Display(err, "Could not sign in."))
	})

	s.Run("nil error shows nothing", func() {
		s.Empty(Display(nil, "unused"))
	})
}

func (s *AppErrSuite) TestIsDomain() {
	s.True(IsDomain(&AppError{Message: "taken", Domain: true}))
	s.False(IsDomain(&AppError{Err: errors.New("timeout")}))
	s.False(IsDomain(errors.New("plain")))
}
